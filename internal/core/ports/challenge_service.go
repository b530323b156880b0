package ports

import (
	"context"
	"time"

	"github.com/owaspcebu/ctf-platform/internal/core/domain"
)

// ChallengeSummary is the member-facing list item. It never carries the flag.
type ChallengeSummary struct {
	ID          string
	Title       string
	Description string
	Hint        string
	Category    string
	Score       int
	Solved      bool
}

// ChallengeList is the member challenge board.
type ChallengeList struct {
	Challenges []ChallengeSummary
	UserPoints int
}

// ChallengeView is the member-facing detail of one challenge.
type ChallengeView struct {
	ID          string
	Title       string
	Description string
	Hint        string
	Category    string
	Score       int
	Link        string
	IsSolved    bool
	StartedAt   *time.Time
}

// CreateChallengeInput carries the fields of a new challenge.
type CreateChallengeInput struct {
	Title       string
	Description string
	Hint        string
	Link        string
	Category    string
	Flag        string
	Score       int
}

// UpdateChallengeInput is a partial update; nil fields are left unchanged.
type UpdateChallengeInput struct {
	Title       *string
	Description *string
	Hint        *string
	Link        *string
	Category    *string
	Flag        *string
	Score       *int
}

// ChallengeService covers both the member board and the admin back-office.
type ChallengeService interface {
	ListForUser(ctx context.Context, userID string) (*ChallengeList, error)
	// View returns the challenge detail and starts the user's progress clock.
	View(ctx context.Context, userID, challengeID string) (*ChallengeView, error)

	List(ctx context.Context) ([]*domain.Challenge, error)
	Get(ctx context.Context, id string) (*domain.Challenge, error)
	Create(ctx context.Context, input CreateChallengeInput) (*domain.Challenge, error)
	Update(ctx context.Context, id string, input UpdateChallengeInput) (*domain.Challenge, error)
	Delete(ctx context.Context, id string) error
}
