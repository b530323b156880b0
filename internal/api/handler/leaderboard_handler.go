package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/owaspcebu/ctf-platform/internal/api/metrics"
	"github.com/owaspcebu/ctf-platform/internal/core/ports"
)

type LeaderboardHandler struct {
	leaderboard ports.LeaderboardService
}

func NewLeaderboardHandler(leaderboard ports.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard}
}

// Global handles GET /v1/leaderboard.
//
// @Summary      Global leaderboard
// @Tags         leaderboard
// @Produce      json
// @Security     BearerAuth
// @Param        page     query     int  false  "Page number (default 1)"
// @Param        perPage  query     int  false  "Rows per page, 1-100 (default 20)"
// @Success      200      {object}  ports.LeaderboardPage
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Router       /v1/leaderboard [get]
func (h *LeaderboardHandler) Global(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	q := leaderboardQuery{Page: 1, PerPage: ports.DefaultPerPage}
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid pagination parameters")
	}

	metrics.LeaderboardRequestsTotal.Inc()

	page, err := h.leaderboard.Global(c.Request().Context(), q.Page, q.PerPage)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}
