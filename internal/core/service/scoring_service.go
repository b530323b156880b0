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

const (
	MsgCorrect       = "Correct flag! Points awarded."
	MsgIncorrect     = "Incorrect flag. Try again."
	MsgAlreadySolved = "You have already solved this challenge"
)

// AttemptLimiter abstracts the flag-guessing throttle (Redis).
type AttemptLimiter interface {
	Allow(ctx context.Context, userID, challengeID string) (bool, error)
}

// LeaderboardInvalidator is told when a solve changes the ranking.
type LeaderboardInvalidator interface {
	Invalidate(ctx context.Context) error
}

type scoringService struct {
	challenges  ports.ChallengeRepository
	progress    ports.ProgressRepository
	submissions ports.SubmissionRepository
	limiter     AttemptLimiter
	leaderboard LeaderboardInvalidator
	log         zerolog.Logger
	now         func() time.Time
}

// NewScoringService returns a ScoringService. limiter and leaderboard may be
// nil when Redis is not configured.
func NewScoringService(
	challenges ports.ChallengeRepository,
	progress ports.ProgressRepository,
	submissions ports.SubmissionRepository,
	limiter AttemptLimiter,
	leaderboard LeaderboardInvalidator,
	log zerolog.Logger,
) ports.ScoringService {
	return &scoringService{
		challenges:  challenges,
		progress:    progress,
		submissions: submissions,
		limiter:     limiter,
		leaderboard: leaderboard,
		log:         log,
		now:         time.Now,
	}
}

// Submit checks a flag and awards the challenge score on the first correct
// attempt. Every attempt on an unsolved challenge is logged, right or wrong.
func (s *scoringService) Submit(ctx context.Context, in ports.SubmitFlagInput) (*ports.SubmitResult, error) {
	// 1. Reject before touching storage.
	if in.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(in.Flag) == "" {
		return nil, domain.NewValidationError("flag is required")
	}

	challenge, err := s.challenges.FindByID(ctx, in.ChallengeID)
	if err != nil {
		return nil, err
	}

	// 2. Already solved: nothing to score.
	p, err := s.progress.Find(ctx, in.UserID, challenge.ID)
	if err != nil && !errors.Is(err, domain.ErrProgressNotFound) {
		return nil, fmt.Errorf("submit: load progress: %w", err)
	}
	if p.IsSolved() {
		s.log.Info().
			Str("user_id", in.UserID).
			Str("challenge_id", challenge.ID).
			Bool("flag_matches", challenge.MatchesFlag(in.Flag)).
			Msg("submission on solved challenge")
		return alreadySolved(), nil
	}

	// 3. Throttle guessing. A limiter outage must not block players.
	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, in.UserID, challenge.ID)
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", in.UserID).Msg("attempt limiter failed, allowing submission")
		} else if !allowed {
			return nil, domain.ErrTooManyAttempts
		}
	}

	// 4. Audit every attempt, outside the solve transaction.
	now := s.now().UTC()
	correct := challenge.MatchesFlag(in.Flag)
	sub := &domain.Submission{
		ID:          uuid.NewString(),
		UserID:      in.UserID,
		ChallengeID: challenge.ID,
		Flag:        in.Flag,
		Correct:     correct,
		SubmittedAt: now,
	}
	if err := s.submissions.Insert(ctx, sub); err != nil {
		return nil, fmt.Errorf("submit: record submission: %w", err)
	}

	if !correct {
		return &ports.SubmitResult{Correct: false, Message: MsgIncorrect}, nil
	}

	// 5. Mark solved and award points in one conditional unit of work.
	// The score is read inside that unit, so an edit or delete racing this
	// submission is either fully before or fully after it.
	points, solved, err := s.progress.MarkSolved(ctx, in.UserID, challenge.ID, now)
	if errors.Is(err, domain.ErrChallengeNotFound) {
		return nil, err
	}
	if err != nil {
		s.log.Error().Err(err).
			Str("user_id", in.UserID).
			Str("challenge_id", challenge.ID).
			Str("submission_id", sub.ID).
			Msg("failed to record solve")
		return nil, fmt.Errorf("submit: mark solved: %w", err)
	}
	if !solved {
		// A concurrent submission for the same pair won the race.
		return alreadySolved(), nil
	}

	// 6. Ranking changed. A stale cache only delays the leaderboard.
	if s.leaderboard != nil {
		if err := s.leaderboard.Invalidate(ctx); err != nil {
			s.log.Warn().Err(err).Msg("failed to invalidate leaderboard cache")
		}
	}

	s.log.Info().
		Str("user_id", in.UserID).
		Str("challenge_id", challenge.ID).
		Int("points", points).
		Msg("challenge solved")

	return &ports.SubmitResult{Correct: true, Awarded: points, Message: MsgCorrect}, nil
}

func alreadySolved() *ports.SubmitResult {
	return &ports.SubmitResult{Correct: true, AlreadySolved: true, Message: MsgAlreadySolved}
}
