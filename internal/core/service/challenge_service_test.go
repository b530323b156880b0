package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/owaspcebu/ctf-platform/internal/core/domain"
	"github.com/owaspcebu/ctf-platform/internal/core/ports"
)

func (f *fixture) challengeService() *ChallengeService {
	return f.challengeServiceWith(nil)
}

func (f *fixture) challengeServiceWith(inv LeaderboardInvalidator) *ChallengeService {
	tracker := NewProgressService(f.progress, zerolog.Nop())
	return NewChallengeService(f.challenges, f.users, f.progress, tracker, inv, zerolog.Nop())
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func validInput() ports.CreateChallengeInput {
	return ports.CreateChallengeInput{
		Title:       " Baby XSS ",
		Description: "Pop an alert",
		Category:    "web",
		Flag:        " FLAG{xss} ",
		Score:       100,
	}
}

func TestChallengeService_Create(t *testing.T) {
	f := newFixture(t)
	svc := f.challengeService()

	c, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.ID == "" || c.Title != "Baby XSS" || c.Flag != "FLAG{xss}" || c.CreatedAt.IsZero() {
		t.Errorf("unexpected challenge %+v", c)
	}
	if _, err := f.challenges.FindByID(context.Background(), c.ID); err != nil {
		t.Errorf("challenge not stored: %v", err)
	}
}

func TestChallengeService_CreateValidation(t *testing.T) {
	svc := newFixture(t).challengeService()

	cases := map[string]func(in *ports.CreateChallengeInput){
		"missing title":    func(in *ports.CreateChallengeInput) { in.Title = "  " },
		"missing flag":     func(in *ports.CreateChallengeInput) { in.Flag = "" },
		"missing category": func(in *ports.CreateChallengeInput) { in.Category = "" },
		"negative score":   func(in *ports.CreateChallengeInput) { in.Score = -1 },
		"huge score":       func(in *ports.CreateChallengeInput) { in.Score = domain.MaxChallengeScore + 1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestChallengeService_UpdateShiftsSolverPoints(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u1", "alice")
	f.addUser(t, "u2", "bob")
	f.addChallenge(t, "c1", "FLAG{abc}", 100)
	submit(t, f.scoring(nil, nil), "u1", "c1", "FLAG{abc}")
	svc := f.challengeService()

	c, err := svc.Update(context.Background(), "c1", ports.UpdateChallengeInput{Score: intPtr(150), Hint: strPtr("look closer")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if c.Score != 150 || c.Hint != "look closer" || c.Flag != "FLAG{abc}" {
		t.Errorf("unexpected update result %+v", c)
	}
	if got := f.points(t, "u1"); got != 150 {
		t.Errorf("solver points should follow the score, got %d", got)
	}
	if got := f.points(t, "u2"); got != 0 {
		t.Errorf("non-solver points must not change, got %d", got)
	}

	if _, err := svc.Update(context.Background(), "c1", ports.UpdateChallengeInput{Score: intPtr(-5)}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "nope", ports.UpdateChallengeInput{}); !errors.Is(err, domain.ErrChallengeNotFound) {
		t.Errorf("expected ErrChallengeNotFound, got %v", err)
	}
}

func TestChallengeService_DeleteDeductsPoints(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u1", "alice")
	f.addChallenge(t, "c1", "FLAG{abc}", 100)
	f.addChallenge(t, "c2", "FLAG{def}", 50)
	scoring := f.scoring(nil, nil)
	submit(t, scoring, "u1", "c1", "FLAG{abc}")
	submit(t, scoring, "u1", "c2", "FLAG{def}")

	if err := f.challengeService().Delete(context.Background(), "c1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := f.points(t, "u1"); got != 50 {
		t.Errorf("expected 50 points left, got %d", got)
	}
	if err := f.challengeService().Delete(context.Background(), "c1"); !errors.Is(err, domain.ErrChallengeNotFound) {
		t.Errorf("expected ErrChallengeNotFound, got %v", err)
	}
}

func TestChallengeService_ViewStartsClockOnce(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u1", "alice")
	f.addChallenge(t, "c1", "FLAG{abc}", 100)
	svc := f.challengeService()
	ctx := context.Background()

	first, err := svc.View(ctx, "u1", "c1")
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if first.StartedAt == nil || first.IsSolved {
		t.Fatalf("expected a started, unsolved view, got %+v", first)
	}

	time.Sleep(5 * time.Millisecond)
	second, err := svc.View(ctx, "u1", "c1")
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if !second.StartedAt.Equal(*first.StartedAt) {
		t.Errorf("second view must not move the clock: %v != %v", second.StartedAt, first.StartedAt)
	}

	if _, err := svc.View(ctx, "u1", "missing"); !errors.Is(err, domain.ErrChallengeNotFound) {
		t.Errorf("expected ErrChallengeNotFound, got %v", err)
	}
}

func TestChallengeService_ListForUser(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u1", "alice")
	f.addChallenge(t, "c1", "FLAG{1}", 300)
	f.addChallenge(t, "c2", "FLAG{2}", 100)
	submit(t, f.scoring(nil, nil), "u1", "c1", "FLAG{1}")

	list, err := f.challengeService().ListForUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if list.UserPoints != 300 || len(list.Challenges) != 2 {
		t.Fatalf("unexpected list %+v", list)
	}
	if list.Challenges[0].ID != "c2" || list.Challenges[0].Solved {
		t.Errorf("expected unsolved c2 first by score, got %+v", list.Challenges[0])
	}
	if list.Challenges[1].ID != "c1" || !list.Challenges[1].Solved {
		t.Errorf("expected solved c1 second, got %+v", list.Challenges[1])
	}
}

func TestChallengeService_InvalidatesLeaderboardWhenPointsMove(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u1", "alice")
	f.addChallenge(t, "c1", "FLAG{abc}", 100)
	f.addChallenge(t, "c2", "FLAG{def}", 50)
	submit(t, f.scoring(nil, nil), "u1", "c1", "FLAG{abc}")
	inv := &stubInvalidator{}
	svc := f.challengeServiceWith(inv)
	ctx := context.Background()

	if _, err := svc.Update(ctx, "c1", ports.UpdateChallengeInput{Hint: strPtr("try harder")}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if inv.calls != 0 {
		t.Fatalf("an edit that keeps the score must not invalidate, got %d", inv.calls)
	}

	if _, err := svc.Update(ctx, "c1", ports.UpdateChallengeInput{Score: intPtr(250)}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if inv.calls != 1 {
		t.Fatalf("expected invalidation after score edit, got %d", inv.calls)
	}

	if _, err := svc.Update(ctx, "c1", ports.UpdateChallengeInput{Score: intPtr(-1)}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if inv.calls != 1 {
		t.Fatalf("a rejected edit must not invalidate, got %d", inv.calls)
	}

	if err := svc.Delete(ctx, "c1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if inv.calls != 2 {
		t.Fatalf("expected invalidation after delete, got %d", inv.calls)
	}
	if err := svc.Delete(ctx, "c1"); !errors.Is(err, domain.ErrChallengeNotFound) {
		t.Fatalf("expected ErrChallengeNotFound, got %v", err)
	}
	if inv.calls != 2 {
		t.Fatalf("a failed delete must not invalidate, got %d", inv.calls)
	}
}

func TestChallengeService_UpdateRejectedLeavesStoredChallenge(t *testing.T) {
	f := newFixture(t)
	f.addChallenge(t, "c1", "FLAG{abc}", 100)
	svc := f.challengeService()

	_, err := svc.Update(context.Background(), "c1", ports.UpdateChallengeInput{Title: strPtr("renamed"), Flag: strPtr("  ")})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	c, _ := f.challenges.FindByID(context.Background(), "c1")
	if c.Title != "c1" || c.Flag != "FLAG{abc}" {
		t.Errorf("rejected edit must not be stored, got %+v", c)
	}
}
