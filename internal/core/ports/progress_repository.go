package ports

import (
	"context"
	"time"

	"github.com/owaspcebu/ctf-platform/internal/core/domain"
)

// ProgressRepository persists per (user, challenge) timing and owns the
// atomic solve+score transition.
type ProgressRepository interface {
	// EnsureStarted creates the progress row with startedAt=at if none exists.
	// Existing rows are left untouched.
	EnsureStarted(ctx context.Context, userID, challengeID string, at time.Time) error

	// Find returns domain.ErrProgressNotFound when the pair was never started.
	Find(ctx context.Context, userID, challengeID string) (*domain.Progress, error)

	// SolvedChallengeIDs returns the ids of every challenge the user solved.
	SolvedChallengeIDs(ctx context.Context, userID string) (map[string]struct{}, error)

	// MarkSolved sets solvedAt=at only where it is still null (creating the
	// row with startedAt=at when missing) and, in the same unit of work,
	// increments the user's points by the challenge's current score. The score
	// is read inside that unit of work, so a concurrent edit or delete cannot
	// leave the user with a stale amount. It returns the points awarded and
	// false without changing anything when the pair was already solved, and
	// domain.ErrChallengeNotFound when the challenge no longer exists.
	MarkSolved(ctx context.Context, userID, challengeID string, at time.Time) (awarded int, solved bool, err error)

	// ListSolvers returns every solved row of the challenge with the solver's name.
	ListSolvers(ctx context.Context, challengeID string) ([]domain.SolveRecord, error)
}
