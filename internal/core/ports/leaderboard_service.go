package ports

import (
	"context"
	"time"

	"github.com/owaspcebu/ctf-platform/internal/core/domain"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// LeaderboardPage is one page of the global ranking.
type LeaderboardPage struct {
	Users   []domain.LeaderboardRow `json:"users"`
	Total   int64                   `json:"total"`
	Page    int                     `json:"page"`
	PerPage int                     `json:"perPage"`
}

// Solver is one line of a challenge's speed ranking.
type Solver struct {
	UserID           string
	UserName         string
	SolveTimeSeconds int64
	SolvedAt         time.Time
}

// LeaderboardService exposes the global and per-challenge rankings.
type LeaderboardService interface {
	Global(ctx context.Context, page, perPage int) (*LeaderboardPage, error)
	Solvers(ctx context.Context, challengeID string) ([]Solver, error)
}
