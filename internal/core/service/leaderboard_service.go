package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/owaspcebu/ctf-platform/internal/core/domain"
	"github.com/owaspcebu/ctf-platform/internal/core/ports"
)

// LeaderboardCache stores rendered leaderboard pages (Redis). Get reports the
// cache generation it looked in; Set writes under the generation it is given.
type LeaderboardCache interface {
	Get(ctx context.Context, page, perPage int) (*ports.LeaderboardPage, int64, bool, error)
	Set(ctx context.Context, gen int64, p *ports.LeaderboardPage) error
}

type leaderboardService struct {
	repo       ports.LeaderboardRepository
	progress   ports.ProgressRepository
	challenges ports.ChallengeRepository
	cache      LeaderboardCache
	sf         singleflight.Group
	log        zerolog.Logger
}

// NewLeaderboardService returns a LeaderboardService. cache may be nil.
func NewLeaderboardService(
	repo ports.LeaderboardRepository,
	progress ports.ProgressRepository,
	challenges ports.ChallengeRepository,
	cache LeaderboardCache,
	log zerolog.Logger,
) ports.LeaderboardService {
	return &leaderboardService{
		repo:       repo,
		progress:   progress,
		challenges: challenges,
		cache:      cache,
		log:        log,
	}
}

// Global returns one page of users ordered by points desc, name asc.
func (s *leaderboardService) Global(ctx context.Context, page, perPage int) (*ports.LeaderboardPage, error) {
	if page < 1 || perPage < 1 || perPage > ports.MaxPerPage {
		return nil, domain.NewValidationError("invalid pagination parameters")
	}

	// The generation is read before the database so a page built from rows
	// that predate an invalidation is never stored under the new generation.
	var gen int64
	cacheable := false
	if s.cache != nil {
		cached, g, ok, err := s.cache.Get(ctx, page, perPage)
		if err != nil {
			s.log.Warn().Err(err).Msg("leaderboard cache read failed")
		} else if ok {
			return cached, nil
		} else {
			gen, cacheable = g, true
		}
	}

	key := fmt.Sprintf("%d:%d:%d", gen, page, perPage)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		rows, total, err := s.repo.Page(ctx, (page-1)*perPage, perPage)
		if err != nil {
			return nil, fmt.Errorf("leaderboard page: %w", err)
		}
		if rows == nil {
			rows = []domain.LeaderboardRow{}
		}
		result := &ports.LeaderboardPage{Users: rows, Total: total, Page: page, PerPage: perPage}

		if cacheable {
			if err := s.cache.Set(ctx, gen, result); err != nil {
				s.log.Warn().Err(err).Msg("leaderboard cache write failed")
			}
		}
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ports.LeaderboardPage), nil
}

// Solvers ranks the users who solved a challenge by how long it took them.
// Rows without a start time are skipped.
func (s *leaderboardService) Solvers(ctx context.Context, challengeID string) ([]ports.Solver, error) {
	if _, err := s.challenges.FindByID(ctx, challengeID); err != nil {
		return nil, err
	}

	records, err := s.progress.ListSolvers(ctx, challengeID)
	if err != nil {
		return nil, fmt.Errorf("list solvers: %w", err)
	}

	return RankSolvers(records), nil
}

// RankSolvers converts solve records into a speed ranking: elapsed seconds
// ascending, then earliest solve, then name.
func RankSolvers(records []domain.SolveRecord) []ports.Solver {
	out := make([]ports.Solver, 0, len(records))
	for _, r := range records {
		solvedAt := r.SolvedAt
		secs, ok := domain.SolveTimeSeconds(r.StartedAt, &solvedAt)
		if !ok {
			continue
		}
		out = append(out, ports.Solver{
			UserID:           r.UserID,
			UserName:         r.UserName,
			SolveTimeSeconds: secs,
			SolvedAt:         r.SolvedAt,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SolveTimeSeconds != out[j].SolveTimeSeconds {
			return out[i].SolveTimeSeconds < out[j].SolveTimeSeconds
		}
		if !out[i].SolvedAt.Equal(out[j].SolvedAt) {
			return out[i].SolvedAt.Before(out[j].SolvedAt)
		}
		return out[i].UserName < out[j].UserName
	})
	return out
}
