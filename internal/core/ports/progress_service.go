package ports

import (
	"context"

	"github.com/owaspcebu/ctf-platform/internal/core/domain"
)

// ProgressService tracks when a user starts and solves a challenge.
type ProgressService interface {
	EnsureStarted(ctx context.Context, userID, challengeID string) (*domain.Progress, error)
	// Get returns a NotStarted (nil timestamps) progress when the pair has no row.
	Get(ctx context.Context, userID, challengeID string) (*domain.Progress, error)
}
