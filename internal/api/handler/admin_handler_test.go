package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/owaspcebu/ctf-platform/internal/core/domain"
	"github.com/owaspcebu/ctf-platform/internal/core/ports"
)

type stubAdminService struct {
	statsFn   func(ctx context.Context) (*ports.Stats, error)
	promoteFn func(ctx context.Context, email string) (*domain.User, error)
}

func (s *stubAdminService) Stats(ctx context.Context) (*ports.Stats, error) {
	return s.statsFn(ctx)
}

func (s *stubAdminService) Promote(ctx context.Context, email string) (*domain.User, error) {
	return s.promoteFn(ctx, email)
}

func TestAdminHandler_CreateChallenge(t *testing.T) {
	svc := &stubChallengeService{
		createFn: func(ctx context.Context, in ports.CreateChallengeInput) (*domain.Challenge, error) {
			if in.Title != "Baby XSS" || in.Flag != "FLAG{xss}" || in.Score != 100 {
				t.Fatalf("unexpected input %+v", in)
			}
			return &domain.Challenge{ID: "c1", Title: in.Title, Flag: in.Flag, Score: in.Score}, nil
		},
	}
	h := NewAdminHandler(svc, nil)

	c, rec := newContext(http.MethodPost, "/v1/admin/challenges",
		`{"title":"Baby XSS","description":"Pop an alert","category":"web","flag":"FLAG{xss}","score":100}`)
	if err := h.CreateChallenge(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp map[string]any
	decode(t, rec, &resp)
	if resp["flag"] != "FLAG{xss}" {
		t.Errorf("admin view should include the flag, got %+v", resp)
	}
}

func TestAdminHandler_CreateChallenge_Invalid(t *testing.T) {
	h := NewAdminHandler(&stubChallengeService{}, nil)

	cases := map[string]string{
		"missing flag":   `{"title":"t","description":"d","category":"web","score":10}`,
		"negative score": `{"title":"t","description":"d","category":"web","flag":"f","score":-1}`,
		"score too big":  `{"title":"t","description":"d","category":"web","flag":"f","score":1000000}`,
		"bad link":       `{"title":"t","description":"d","category":"web","flag":"f","score":1,"link":"not a url"}`,
	}
	for name, body := range cases {
		c, _ := newContext(http.MethodPost, "/v1/admin/challenges", body)
		if err := h.CreateChallenge(c); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestAdminHandler_UpdateChallenge(t *testing.T) {
	svc := &stubChallengeService{
		updateFn: func(ctx context.Context, id string, in ports.UpdateChallengeInput) (*domain.Challenge, error) {
			if id != "c1" || in.Score == nil || *in.Score != 250 || in.Title != nil {
				t.Fatalf("unexpected update %s %+v", id, in)
			}
			return &domain.Challenge{ID: id, Score: *in.Score}, nil
		},
	}
	h := NewAdminHandler(svc, nil)

	c, rec := newContext(http.MethodPut, "/v1/admin/challenges/c1", `{"score":250}`)
	c.SetParamNames("id")
	c.SetParamValues("c1")
	if err := h.UpdateChallenge(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAdminHandler_UpdateChallenge_RejectsBadLink(t *testing.T) {
	svc := &stubChallengeService{
		updateFn: func(ctx context.Context, id string, in ports.UpdateChallengeInput) (*domain.Challenge, error) {
			if in.Link != nil && *in.Link != "" && *in.Link != "https://ctf.example.com/web/1" {
				t.Fatalf("invalid link reached the service: %q", *in.Link)
			}
			return &domain.Challenge{ID: id}, nil
		},
	}
	h := NewAdminHandler(svc, nil)

	c, _ := newContext(http.MethodPut, "/v1/admin/challenges/c1", `{"link":"not a url"}`)
	c.SetParamNames("id")
	c.SetParamValues("c1")
	if err := h.UpdateChallenge(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// a real URL and an empty string (clearing the link) both pass
	for _, body := range []string{`{"link":"https://ctf.example.com/web/1"}`, `{"link":""}`} {
		c, rec := newContext(http.MethodPut, "/v1/admin/challenges/c1", body)
		c.SetParamNames("id")
		c.SetParamValues("c1")
		if err := h.UpdateChallenge(c); err != nil {
			t.Fatalf("%s: handler error: %v", body, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", body, rec.Code)
		}
	}
}

func TestAdminHandler_DeleteChallenge(t *testing.T) {
	svc := &stubChallengeService{
		deleteFn: func(ctx context.Context, id string) error {
			if id == "missing" {
				return domain.ErrChallengeNotFound
			}
			return nil
		},
	}
	h := NewAdminHandler(svc, nil)

	c, rec := newContext(http.MethodDelete, "/v1/admin/challenges/c1", "")
	c.SetParamNames("id")
	c.SetParamValues("c1")
	if err := h.DeleteChallenge(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	c, _ = newContext(http.MethodDelete, "/v1/admin/challenges/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")
	if err := h.DeleteChallenge(c); !errors.Is(err, domain.ErrChallengeNotFound) {
		t.Fatalf("expected ErrChallengeNotFound, got %v", err)
	}
}

func TestAdminHandler_Stats(t *testing.T) {
	admin := &stubAdminService{
		statsFn: func(ctx context.Context) (*ports.Stats, error) {
			return &ports.Stats{TotalChallenges: 3, TotalUsers: 7}, nil
		},
	}
	h := NewAdminHandler(nil, admin)

	c, rec := newContext(http.MethodGet, "/v1/admin/stats", "")
	if err := h.Stats(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp statsResponse
	decode(t, rec, &resp)
	if resp.TotalChallenges != 3 || resp.TotalUsers != 7 {
		t.Fatalf("unexpected stats %+v", resp)
	}
}

func TestAdminHandler_Promote(t *testing.T) {
	admin := &stubAdminService{
		promoteFn: func(ctx context.Context, email string) (*domain.User, error) {
			if email == "ghost@example.com" {
				return nil, domain.ErrUserNotFound
			}
			return &domain.User{ID: "u1", Email: email, Role: domain.RoleAdmin}, nil
		},
	}
	h := NewAdminHandler(nil, admin)

	c, rec := newContext(http.MethodPost, "/v1/admin/promote", `{"email":"bob@example.com"}`)
	if err := h.Promote(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]any
	decode(t, rec, &resp)
	if resp["role"] != domain.RoleAdmin {
		t.Fatalf("unexpected user %+v", resp)
	}

	c, _ = newContext(http.MethodPost, "/v1/admin/promote", `{"email":"ghost@example.com"}`)
	if err := h.Promote(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	c, _ = newContext(http.MethodPost, "/v1/admin/promote", `{"email":""}`)
	if err := h.Promote(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
