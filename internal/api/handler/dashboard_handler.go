package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cliplink/affiliate-system/internal/core/ports"
)

// DashboardHandler serves the authenticated user's own record and links.
type DashboardHandler struct {
	rewards ports.RewardService
}

func NewDashboardHandler(rewards ports.RewardService) *DashboardHandler {
	return &DashboardHandler{rewards: rewards}
}

// Get returns the caller's record with the link list resolved. There is no
// cross-user read path: the user ID always comes from the verified token.
//
// @Summary      Get the caller's dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	result, err := h.rewards.Dashboard(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		User:  result.User,
		Links: result.Links,
	})
}
