package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/owaspcebu/ctf-platform/internal/api/metrics"
	"github.com/owaspcebu/ctf-platform/internal/core/ports"
)

// AdminHandler serves the /v1/admin back-office. Role checks happen once in
// the RBAC middleware on the route group.
type AdminHandler struct {
	challenges ports.ChallengeService
	admin      ports.AdminService
}

func NewAdminHandler(challenges ports.ChallengeService, admin ports.AdminService) *AdminHandler {
	return &AdminHandler{challenges: challenges, admin: admin}
}

// ListChallenges handles GET /v1/admin/challenges. Flags are included.
//
// @Summary      List all challenges (newest first)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Challenge
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/challenges [get]
func (h *AdminHandler) ListChallenges(c echo.Context) error {
	list, err := h.challenges.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// GetChallenge handles GET /v1/admin/challenges/:id.
//
// @Summary      Get a challenge including its flag
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Challenge ID"
// @Success      200  {object}  domain.Challenge
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/challenges/{id} [get]
func (h *AdminHandler) GetChallenge(c echo.Context) error {
	ch, err := h.challenges.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ch)
}

// CreateChallenge handles POST /v1/admin/challenges.
//
// @Summary      Create a challenge
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createChallengeRequest  true  "Challenge"
// @Success      201   {object}  domain.Challenge
// @Failure      400   {object}  errorResponse
// @Router       /v1/admin/challenges [post]
func (h *AdminHandler) CreateChallenge(c echo.Context) error {
	var req createChallengeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ch, err := h.challenges.Create(c.Request().Context(), ports.CreateChallengeInput{
		Title:       req.Title,
		Description: req.Description,
		Hint:        req.Hint,
		Link:        req.Link,
		Category:    req.Category,
		Flag:        req.Flag,
		Score:       req.Score,
	})
	if err != nil {
		return err
	}

	metrics.ChallengeChangesTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, ch)
}

// UpdateChallenge handles PUT /v1/admin/challenges/:id. Omitted fields are kept.
//
// @Summary      Update a challenge
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Challenge ID"
// @Param        body  body      updateChallengeRequest  true  "Fields to change"
// @Success      200   {object}  domain.Challenge
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/challenges/{id} [put]
func (h *AdminHandler) UpdateChallenge(c echo.Context) error {
	var req updateChallengeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ch, err := h.challenges.Update(c.Request().Context(), c.Param("id"), ports.UpdateChallengeInput{
		Title:       req.Title,
		Description: req.Description,
		Hint:        req.Hint,
		Link:        req.Link,
		Category:    req.Category,
		Flag:        req.Flag,
		Score:       req.Score,
	})
	if err != nil {
		return err
	}

	metrics.ChallengeChangesTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, ch)
}

// DeleteChallenge handles DELETE /v1/admin/challenges/:id.
//
// @Summary      Delete a challenge
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "Challenge ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/challenges/{id} [delete]
func (h *AdminHandler) DeleteChallenge(c echo.Context) error {
	if err := h.challenges.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.ChallengeChangesTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Stats handles GET /v1/admin/stats.
//
// @Summary      Platform counters
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Router       /v1/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	st, err := h.admin.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statsResponse{TotalChallenges: st.TotalChallenges, TotalUsers: st.TotalUsers})
}

// Promote handles POST /v1/admin/promote.
//
// @Summary      Grant the ADMIN role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      promoteRequest  true  "Account to promote"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/promote [post]
func (h *AdminHandler) Promote(c echo.Context) error {
	var req promoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	u, err := h.admin.Promote(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}
