package ports

import (
	"context"

	"github.com/owaspcebu/ctf-platform/internal/core/domain"
)

// Stats is the admin dashboard summary.
type Stats struct {
	TotalChallenges int64
	TotalUsers      int64
}

// AdminService holds back-office operations that are not challenge CRUD.
type AdminService interface {
	Stats(ctx context.Context) (*Stats, error)
	Promote(ctx context.Context, email string) (*domain.User, error)
}
