package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/owaspcebu/ctf-platform/internal/core/domain"
	"github.com/owaspcebu/ctf-platform/internal/core/ports"
)

type ProgressService struct {
	repo ports.ProgressRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewProgressService(repo ports.ProgressRepository, log zerolog.Logger) *ProgressService {
	return &ProgressService{repo: repo, log: log, now: time.Now}
}

// EnsureStarted starts the clock for the pair on first view. Repeated calls
// return the existing row unchanged.
func (s *ProgressService) EnsureStarted(ctx context.Context, userID, challengeID string) (*domain.Progress, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := s.repo.EnsureStarted(ctx, userID, challengeID, s.now().UTC()); err != nil {
		return nil, fmt.Errorf("ensure started: %w", err)
	}
	p, err := s.repo.Find(ctx, userID, challengeID)
	if err != nil {
		return nil, fmt.Errorf("ensure started: %w", err)
	}
	return p, nil
}

func (s *ProgressService) Get(ctx context.Context, userID, challengeID string) (*domain.Progress, error) {
	p, err := s.repo.Find(ctx, userID, challengeID)
	if errors.Is(err, domain.ErrProgressNotFound) {
		return &domain.Progress{UserID: userID, ChallengeID: challengeID}, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
