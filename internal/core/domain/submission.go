package domain

import "time"

// Submission is an immutable audit entry for a single flag attempt.
type Submission struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	ChallengeID string    `json:"challengeId"`
	Flag        string    `json:"flag"`
	Correct     bool      `json:"correct"`
	SubmittedAt time.Time `json:"submittedAt"`
}
