package domain

import "time"

// LeaderboardRow is a single user's line in the global ranking.
type LeaderboardRow struct {
	UserID           string     `json:"id"`
	Name             string     `json:"name"`
	Points           int        `json:"points"`
	SolvedChallenges int        `json:"solvedChallenges"`
	LastSolvedAt     *time.Time `json:"lastSubmission"`
}

// SolveStats aggregates a user's solved Progress rows.
type SolveStats struct {
	Solved       int
	LastSolvedAt *time.Time
}
