package domain

import "time"

// ProgressState is the lifecycle of a (user, challenge) pair.
type ProgressState string

const (
	ProgressNotStarted ProgressState = "not_started"
	ProgressStarted    ProgressState = "started"
	ProgressSolved     ProgressState = "solved"
)

// Progress records when a user first opened a challenge and when they solved
// it. SolvedAt is written once and never changes afterwards.
type Progress struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	ChallengeID string     `json:"challengeId"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	SolvedAt    *time.Time `json:"solvedAt,omitempty"`
}

// State derives the lifecycle state. A nil Progress is NotStarted.
func (p *Progress) State() ProgressState {
	switch {
	case p == nil:
		return ProgressNotStarted
	case p.SolvedAt != nil:
		return ProgressSolved
	case p.StartedAt != nil:
		return ProgressStarted
	default:
		return ProgressNotStarted
	}
}

// IsSolved reports whether the pair reached the terminal Solved state.
func (p *Progress) IsSolved() bool {
	return p.State() == ProgressSolved
}

// SolveTimeSeconds returns the whole seconds between start and solve, floored
// at one second. ok is false when either timestamp is missing.
func SolveTimeSeconds(startedAt, solvedAt *time.Time) (secs int64, ok bool) {
	if startedAt == nil || solvedAt == nil {
		return 0, false
	}
	secs = int64(solvedAt.Sub(*startedAt) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs, true
}

// SolveRecord is a solved Progress row joined with the solver's display name.
type SolveRecord struct {
	UserID    string
	UserName  string
	StartedAt *time.Time
	SolvedAt  time.Time
}
