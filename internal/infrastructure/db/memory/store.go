// Package memory is an in-process implementation of the repository ports.
// It backs STORE_DRIVER=memory and the service tests. A single mutex guards
// every collection, so each repository call is one atomic unit of work.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/owaspcebu/ctf-platform/internal/core/domain"
)

type progressKey struct {
	userID      string
	challengeID string
}

// Store holds every collection.
type Store struct {
	mu          sync.RWMutex
	users       map[string]*domain.User
	emails      map[string]string
	challenges  map[string]*domain.Challenge
	progress    map[progressKey]*domain.Progress
	submissions []domain.Submission
}

func NewStore() *Store {
	return &Store{
		users:      make(map[string]*domain.User),
		emails:     make(map[string]string),
		challenges: make(map[string]*domain.Challenge),
		progress:   make(map[progressKey]*domain.Progress),
	}
}

// Submissions returns a copy of the audit log in insertion order.
func (s *Store) Submissions() []domain.Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Submission, len(s.submissions))
	copy(out, s.submissions)
	return out
}

// progressLocked returns the row for the pair, creating it with startedAt=at
// when absent. Callers hold the write lock.
func (s *Store) progressLocked(userID, challengeID string, at time.Time) *domain.Progress {
	key := progressKey{userID: userID, challengeID: challengeID}
	if p, ok := s.progress[key]; ok {
		return p
	}
	started := at
	p := &domain.Progress{
		ID:          uuid.NewString(),
		UserID:      userID,
		ChallengeID: challengeID,
		StartedAt:   &started,
	}
	s.progress[key] = p
	return p
}

func (s *Store) solversLocked(challengeID string) []*domain.Progress {
	var out []*domain.Progress
	for key, p := range s.progress {
		if key.challengeID == challengeID && p.SolvedAt != nil {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) sortedUsersLocked() []*domain.User {
	users := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Points != users[j].Points {
			return users[i].Points > users[j].Points
		}
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].ID < users[j].ID
	})
	return users
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func cloneChallenge(c *domain.Challenge) *domain.Challenge {
	out := *c
	return &out
}

func cloneProgress(p *domain.Progress) *domain.Progress {
	out := *p
	if p.StartedAt != nil {
		t := *p.StartedAt
		out.StartedAt = &t
	}
	if p.SolvedAt != nil {
		t := *p.SolvedAt
		out.SolvedAt = &t
	}
	return &out
}
