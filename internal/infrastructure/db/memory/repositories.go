package memory

import (
	"context"
	"sort"
	"time"

	"github.com/owaspcebu/ctf-platform/internal/core/domain"
	"github.com/owaspcebu/ctf-platform/internal/core/ports"
)

// UserRepository implements ports.UserRepository on a Store.
type UserRepository struct{ s *Store }

func NewUserRepository(s *Store) *UserRepository { return &UserRepository{s: s} }

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.emails[user.Email]; ok {
		return nil, domain.ErrUserExists
	}
	stored := cloneUser(user)
	r.s.users[stored.ID] = stored
	r.s.emails[stored.Email] = stored.ID
	return cloneUser(stored), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(r.s.users[id]), nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) UpdateRole(_ context.Context, id, role string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (r *UserRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.users)), nil
}

// ChallengeRepository implements ports.ChallengeRepository on a Store.
type ChallengeRepository struct{ s *Store }

func NewChallengeRepository(s *Store) *ChallengeRepository { return &ChallengeRepository{s: s} }

func (r *ChallengeRepository) Create(_ context.Context, c *domain.Challenge) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.challenges[c.ID] = cloneChallenge(c)
	return nil
}

func (r *ChallengeRepository) FindByID(_ context.Context, id string) (*domain.Challenge, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.challenges[id]
	if !ok {
		return nil, domain.ErrChallengeNotFound
	}
	return cloneChallenge(c), nil
}

func (r *ChallengeRepository) List(_ context.Context, order ports.ChallengeOrder) ([]*domain.Challenge, error) {
	r.s.mu.RLock()
	out := make([]*domain.Challenge, 0, len(r.s.challenges))
	for _, c := range r.s.challenges {
		out = append(out, cloneChallenge(c))
	}
	r.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if order == ports.OrderCategory {
			if a.Category != b.Category {
				return a.Category < b.Category
			}
			if a.Score != b.Score {
				return a.Score < b.Score
			}
			return a.Title < b.Title
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return out, nil
}

// Update holds the write lock from the read of the stored score to the
// solver adjustment, so concurrent edits and solves see each other's writes.
func (r *ChallengeRepository) Update(_ context.Context, id string, apply func(c *domain.Challenge) error) (*domain.Challenge, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.challenges[id]
	if !ok {
		return nil, domain.ErrChallengeNotFound
	}
	next := cloneChallenge(stored)
	if err := apply(next); err != nil {
		return nil, err
	}
	next.ID = stored.ID
	next.CreatedAt = stored.CreatedAt

	if delta := next.Score - stored.Score; delta != 0 {
		for _, p := range r.s.solversLocked(id) {
			if u, ok := r.s.users[p.UserID]; ok {
				u.Points += delta
			}
		}
	}
	r.s.challenges[id] = next
	return cloneChallenge(next), nil
}

func (r *ChallengeRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.challenges[id]
	if !ok {
		return domain.ErrChallengeNotFound
	}
	for _, p := range r.s.solversLocked(id) {
		if u, ok := r.s.users[p.UserID]; ok {
			u.Points -= c.Score
		}
	}
	for key := range r.s.progress {
		if key.challengeID == id {
			delete(r.s.progress, key)
		}
	}
	delete(r.s.challenges, id)
	return nil
}

func (r *ChallengeRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.challenges)), nil
}

// ProgressRepository implements ports.ProgressRepository on a Store.
type ProgressRepository struct{ s *Store }

func NewProgressRepository(s *Store) *ProgressRepository { return &ProgressRepository{s: s} }

func (r *ProgressRepository) EnsureStarted(_ context.Context, userID, challengeID string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.progressLocked(userID, challengeID, at)
	return nil
}

func (r *ProgressRepository) Find(_ context.Context, userID, challengeID string) (*domain.Progress, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.progress[progressKey{userID: userID, challengeID: challengeID}]
	if !ok {
		return nil, domain.ErrProgressNotFound
	}
	return cloneProgress(p), nil
}

func (r *ProgressRepository) SolvedChallengeIDs(_ context.Context, userID string) (map[string]struct{}, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make(map[string]struct{})
	for key, p := range r.s.progress {
		if key.userID == userID && p.SolvedAt != nil {
			out[key.challengeID] = struct{}{}
		}
	}
	return out, nil
}

// MarkSolved holds the write lock across the check, the solve and the points
// increment, so exactly one of any number of concurrent callers wins and the
// score it awards is the one stored at that moment.
func (r *ProgressRepository) MarkSolved(_ context.Context, userID, challengeID string, at time.Time) (int, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.challenges[challengeID]
	if !ok {
		return 0, false, domain.ErrChallengeNotFound
	}
	u, ok := r.s.users[userID]
	if !ok {
		return 0, false, domain.ErrUserNotFound
	}

	p := r.s.progressLocked(userID, challengeID, at)
	if p.SolvedAt != nil {
		return 0, false, nil
	}
	solved := at
	p.SolvedAt = &solved
	u.Points += c.Score
	return c.Score, true, nil
}

func (r *ProgressRepository) ListSolvers(_ context.Context, challengeID string) ([]domain.SolveRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := r.s.solversLocked(challengeID)
	out := make([]domain.SolveRecord, 0, len(rows))
	for _, p := range rows {
		rec := domain.SolveRecord{UserID: p.UserID, SolvedAt: *p.SolvedAt}
		if p.StartedAt != nil {
			t := *p.StartedAt
			rec.StartedAt = &t
		}
		if u, ok := r.s.users[p.UserID]; ok {
			rec.UserName = u.Name
		}
		out = append(out, rec)
	}
	return out, nil
}

// SubmissionRepository implements ports.SubmissionRepository on a Store.
type SubmissionRepository struct{ s *Store }

func NewSubmissionRepository(s *Store) *SubmissionRepository { return &SubmissionRepository{s: s} }

func (r *SubmissionRepository) Insert(_ context.Context, sub *domain.Submission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.submissions = append(r.s.submissions, *sub)
	return nil
}

// LeaderboardRepository implements ports.LeaderboardRepository on a Store.
type LeaderboardRepository struct{ s *Store }

func NewLeaderboardRepository(s *Store) *LeaderboardRepository { return &LeaderboardRepository{s: s} }

func (r *LeaderboardRepository) Page(_ context.Context, offset, limit int) ([]domain.LeaderboardRow, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := r.s.sortedUsersLocked()
	total := int64(len(users))
	if offset >= len(users) {
		return []domain.LeaderboardRow{}, total, nil
	}
	end := offset + limit
	if end > len(users) {
		end = len(users)
	}

	stats := make(map[string]*domain.SolveStats)
	for key, p := range r.s.progress {
		if p.SolvedAt == nil {
			continue
		}
		st, ok := stats[key.userID]
		if !ok {
			st = &domain.SolveStats{}
			stats[key.userID] = st
		}
		st.Solved++
		if st.LastSolvedAt == nil || p.SolvedAt.After(*st.LastSolvedAt) {
			t := *p.SolvedAt
			st.LastSolvedAt = &t
		}
	}

	rows := make([]domain.LeaderboardRow, 0, end-offset)
	for _, u := range users[offset:end] {
		row := domain.LeaderboardRow{UserID: u.ID, Name: u.Name, Points: u.Points}
		if st, ok := stats[u.ID]; ok {
			row.SolvedChallenges = st.Solved
			row.LastSolvedAt = st.LastSolvedAt
		}
		rows = append(rows, row)
	}
	return rows, total, nil
}
