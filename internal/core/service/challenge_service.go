package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/owaspcebu/ctf-platform/internal/core/domain"
	"github.com/owaspcebu/ctf-platform/internal/core/ports"
)

type ChallengeService struct {
	challenges  ports.ChallengeRepository
	users       ports.UserRepository
	progress    ports.ProgressRepository
	tracker     ports.ProgressService
	leaderboard LeaderboardInvalidator
	logger      zerolog.Logger
	now         func() time.Time
}

// NewChallengeService wires the challenge use cases. leaderboard may be nil
// when Redis is not configured.
func NewChallengeService(
	challenges ports.ChallengeRepository,
	users ports.UserRepository,
	progress ports.ProgressRepository,
	tracker ports.ProgressService,
	leaderboard LeaderboardInvalidator,
	logger zerolog.Logger,
) *ChallengeService {
	return &ChallengeService{
		challenges:  challenges,
		users:       users,
		progress:    progress,
		tracker:     tracker,
		leaderboard: leaderboard,
		logger:      logger,
		now:         time.Now,
	}
}

// ListForUser returns the member board ordered by category then score.
func (s *ChallengeService) ListForUser(ctx context.Context, userID string) (*ports.ChallengeList, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	all, err := s.challenges.List(ctx, ports.OrderCategory)
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}

	solved, err := s.progress.SolvedChallengeIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}

	items := make([]ports.ChallengeSummary, 0, len(all))
	for _, c := range all {
		_, ok := solved[c.ID]
		items = append(items, ports.ChallengeSummary{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			Hint:        c.Hint,
			Category:    c.Category,
			Score:       c.Score,
			Solved:      ok,
		})
	}

	return &ports.ChallengeList{Challenges: items, UserPoints: user.Points}, nil
}

// View returns the challenge detail and starts the user's progress clock.
func (s *ChallengeService) View(ctx context.Context, userID, challengeID string) (*ports.ChallengeView, error) {
	c, err := s.challenges.FindByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	p, err := s.tracker.EnsureStarted(ctx, userID, c.ID)
	if err != nil {
		return nil, err
	}

	return &ports.ChallengeView{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Hint:        c.Hint,
		Category:    c.Category,
		Score:       c.Score,
		Link:        c.Link,
		IsSolved:    p.IsSolved(),
		StartedAt:   p.StartedAt,
	}, nil
}

func (s *ChallengeService) List(ctx context.Context) ([]*domain.Challenge, error) {
	return s.challenges.List(ctx, ports.OrderNewest)
}

func (s *ChallengeService) Get(ctx context.Context, id string) (*domain.Challenge, error) {
	return s.challenges.FindByID(ctx, id)
}

func (s *ChallengeService) Create(ctx context.Context, in ports.CreateChallengeInput) (*domain.Challenge, error) {
	now := s.now().UTC()
	c := &domain.Challenge{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Hint:        strings.TrimSpace(in.Hint),
		Link:        strings.TrimSpace(in.Link),
		Category:    strings.TrimSpace(in.Category),
		Flag:        strings.TrimSpace(in.Flag),
		Score:       in.Score,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validateChallenge(c); err != nil {
		return nil, err
	}

	if err := s.challenges.Create(ctx, c); err != nil {
		s.logger.Error().Err(err).Msg("failed to create challenge")
		return nil, err
	}

	s.logger.Info().Str("challenge_id", c.ID).Str("category", c.Category).Int("score", c.Score).Msg("challenge created")
	return c, nil
}

// Update applies a partial update. A score change shifts the points of every
// user who already solved the challenge by the same delta; the repository
// computes that delta from the score it holds at write time.
func (s *ChallengeService) Update(ctx context.Context, id string, in ports.UpdateChallengeInput) (*domain.Challenge, error) {
	var delta int
	updated, err := s.challenges.Update(ctx, id, func(c *domain.Challenge) error {
		oldScore := c.Score
		patchChallenge(c, in)
		if err := validateChallenge(c); err != nil {
			return err
		}
		c.UpdatedAt = s.now().UTC()
		delta = c.Score - oldScore
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrValidation) && !errors.Is(err, domain.ErrChallengeNotFound) {
			s.logger.Error().Err(err).Str("challenge_id", id).Msg("failed to update challenge")
		}
		return nil, err
	}

	if delta != 0 {
		s.invalidateLeaderboard(ctx)
	}
	s.logger.Info().Str("challenge_id", id).Int("score_delta", delta).Msg("challenge updated")
	return updated, nil
}

func (s *ChallengeService) Delete(ctx context.Context, id string) error {
	if err := s.challenges.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateLeaderboard(ctx)
	s.logger.Info().Str("challenge_id", id).Msg("challenge deleted")
	return nil
}

// invalidateLeaderboard drops cached pages after solver points moved. A
// failure only delays the leaderboard until the cache TTL runs out.
func (s *ChallengeService) invalidateLeaderboard(ctx context.Context) {
	if s.leaderboard == nil {
		return
	}
	if err := s.leaderboard.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate leaderboard cache")
	}
}

func patchChallenge(c *domain.Challenge, in ports.UpdateChallengeInput) {
	if in.Title != nil {
		c.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		c.Description = strings.TrimSpace(*in.Description)
	}
	if in.Hint != nil {
		c.Hint = strings.TrimSpace(*in.Hint)
	}
	if in.Link != nil {
		c.Link = strings.TrimSpace(*in.Link)
	}
	if in.Category != nil {
		c.Category = strings.TrimSpace(*in.Category)
	}
	if in.Flag != nil {
		c.Flag = strings.TrimSpace(*in.Flag)
	}
	if in.Score != nil {
		c.Score = *in.Score
	}
}

func validateChallenge(c *domain.Challenge) error {
	switch {
	case c.Title == "":
		return domain.NewValidationError("title is required")
	case c.Description == "":
		return domain.NewValidationError("description is required")
	case c.Category == "":
		return domain.NewValidationError("category is required")
	case c.Flag == "":
		return domain.NewValidationError("flag is required")
	case c.Score < domain.MinChallengeScore:
		return domain.NewValidationError(fmt.Sprintf("score must be at least %d", domain.MinChallengeScore))
	case c.Score > domain.MaxChallengeScore:
		return domain.NewValidationError(fmt.Sprintf("score must be at most %d", domain.MaxChallengeScore))
	}
	return nil
}
