package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/owaspcebu/ctf-platform/internal/api/metrics"
	"github.com/owaspcebu/ctf-platform/internal/core/domain"
	"github.com/owaspcebu/ctf-platform/internal/core/ports"
)

// ChallengeHandler serves the member-facing challenge board.
type ChallengeHandler struct {
	challenges  ports.ChallengeService
	scoring     ports.ScoringService
	leaderboard ports.LeaderboardService
}

func NewChallengeHandler(
	challenges ports.ChallengeService,
	scoring ports.ScoringService,
	leaderboard ports.LeaderboardService,
) *ChallengeHandler {
	return &ChallengeHandler{challenges: challenges, scoring: scoring, leaderboard: leaderboard}
}

// List handles GET /v1/challenges.
//
// @Summary      List challenges with the caller's solve status
// @Tags         challenges
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  challengeListResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/challenges [get]
func (h *ChallengeHandler) List(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	list, err := h.challenges.ListForUser(c.Request().Context(), id.UserID)
	if err != nil {
		return err
	}

	resp := challengeListResponse{
		Challenges: make([]challengeSummaryResponse, 0, len(list.Challenges)),
		UserPoints: list.UserPoints,
	}
	for _, s := range list.Challenges {
		resp.Challenges = append(resp.Challenges, challengeSummaryResponse{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			Hint:        s.Hint,
			Category:    s.Category,
			Score:       s.Score,
			Solved:      s.Solved,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /v1/challenges/:id. The first view starts the solve clock.
//
// @Summary      Get a challenge
// @Tags         challenges
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Challenge ID"
// @Success      200  {object}  challengeDetailResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/challenges/{id} [get]
func (h *ChallengeHandler) Get(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	v, err := h.challenges.View(c.Request().Context(), id.UserID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, challengeDetailResponse{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Hint:        v.Hint,
		Category:    v.Category,
		Score:       v.Score,
		Link:        v.Link,
		IsSolved:    v.IsSolved,
		StartedAt:   v.StartedAt,
	})
}

// Submit handles POST /v1/challenges/:id/submit.
//
// @Summary      Submit a flag
// @Tags         challenges
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Challenge ID"
// @Param        body  body      submitFlagRequest  true  "Flag attempt"
// @Success      200   {object}  submitFlagResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /v1/challenges/{id}/submit [post]
func (h *ChallengeHandler) Submit(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.SubmitDuration.Observe(time.Since(start).Seconds()) }()

	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req submitFlagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.scoring.Submit(c.Request().Context(), ports.SubmitFlagInput{
		UserID:      id.UserID,
		ChallengeID: c.Param("id"),
		Flag:        req.Flag,
	})
	if err != nil {
		recordSubmitError(err)
		return err
	}

	recordSubmitResult(result)
	return c.JSON(http.StatusOK, submitFlagResponse{Correct: result.Correct, Message: result.Message})
}

func recordSubmitResult(r *ports.SubmitResult) {
	switch {
	case r.AlreadySolved:
		metrics.SubmissionsTotal.WithLabelValues(metrics.VerdictAlreadySolved).Inc()
	case r.Correct:
		metrics.SubmissionsTotal.WithLabelValues(metrics.VerdictCorrect).Inc()
		metrics.SolvesTotal.Inc()
		metrics.PointsAwardedTotal.Add(float64(r.Awarded))
	default:
		metrics.SubmissionsTotal.WithLabelValues(metrics.VerdictIncorrect).Inc()
	}
}

func recordSubmitError(err error) {
	switch {
	case errors.Is(err, domain.ErrTooManyAttempts):
		metrics.SubmissionsTotal.WithLabelValues(metrics.VerdictThrottled).Inc()
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrChallengeNotFound):
		// rejected input, not a verdict
	default:
		metrics.SubmissionsTotal.WithLabelValues(metrics.VerdictError).Inc()
	}
}

// Solvers handles GET /v1/challenges/:id/solvers.
//
// @Summary      Speed ranking of a challenge
// @Tags         challenges
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Challenge ID"
// @Success      200  {object}  solversResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/challenges/{id}/solvers [get]
func (h *ChallengeHandler) Solvers(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	solvers, err := h.leaderboard.Solvers(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	resp := solversResponse{Solvers: make([]solverResponse, 0, len(solvers))}
	for _, s := range solvers {
		resp.Solvers = append(resp.Solvers, solverResponse{
			UserID:           s.UserID,
			UserName:         s.UserName,
			SolveTimeSeconds: s.SolveTimeSeconds,
			SolvedAt:         s.SolvedAt,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
