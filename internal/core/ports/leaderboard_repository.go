package ports

import (
	"context"

	"github.com/owaspcebu/ctf-platform/internal/core/domain"
)

// LeaderboardRepository reads the global ranking.
type LeaderboardRepository interface {
	// Page returns users ordered by points desc, name asc, skipping offset rows,
	// together with the total number of users.
	Page(ctx context.Context, offset, limit int) ([]domain.LeaderboardRow, int64, error)
}
