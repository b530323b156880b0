package ports

import (
	"context"

	"github.com/owaspcebu/ctf-platform/internal/core/domain"
)

// ChallengeOrder selects the sort used by ChallengeRepository.List.
type ChallengeOrder int

const (
	// OrderNewest sorts by creation time, newest first (admin listing).
	OrderNewest ChallengeOrder = iota
	// OrderCategory sorts by category ascending, then score ascending (member listing).
	OrderCategory
)

// ChallengeRepository defines persistence operations for challenges.
type ChallengeRepository interface {
	Create(ctx context.Context, c *domain.Challenge) error
	FindByID(ctx context.Context, id string) (*domain.Challenge, error)
	List(ctx context.Context, order ChallengeOrder) ([]*domain.Challenge, error)
	// Update loads the stored challenge, lets apply modify it and persists the
	// result. In the same transaction it adds the difference between the new
	// and the stored score to the points of every user that already solved it.
	// An error from apply aborts the update. apply may run more than once when
	// the store retries a conflicting transaction.
	Update(ctx context.Context, id string, apply func(c *domain.Challenge) error) (*domain.Challenge, error)
	// Delete removes the challenge and its progress rows and deducts its score
	// from every solver, atomically. Submissions are kept.
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
