package ports

import "context"

// SubmitFlagInput is the DTO passed from the transport layer to ScoringService.
type SubmitFlagInput struct {
	UserID      string
	ChallengeID string
	Flag        string
}

// SubmitResult is the verdict shown to the player.
type SubmitResult struct {
	Correct       bool
	AlreadySolved bool
	Awarded       int
	Message       string
}

// ScoringService validates flag submissions and awards points.
type ScoringService interface {
	Submit(ctx context.Context, input SubmitFlagInput) (*SubmitResult, error)
}
