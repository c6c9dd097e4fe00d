package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cliplink/affiliate-system/internal/api/metrics"
	"github.com/cliplink/affiliate-system/internal/core/ports"
)

// TrackHandler serves the public click-tracking redirect.
type TrackHandler struct {
	rewards ports.RewardService
}

func NewTrackHandler(rewards ports.RewardService) *TrackHandler {
	return &TrackHandler{rewards: rewards}
}

// Redirect handles GET /l/:id. It counts the click and 302s to the link's
// destination URL.
//
// @Summary      Follow an affiliate link
// @Tags         tracking
// @Param        id   path  string  true  "Link ID"
// @Success      302
// @Failure      404  {object}  errorResponse
// @Router       /l/{id} [get]
func (h *TrackHandler) Redirect(c echo.Context) error {
	destination, err := h.rewards.TrackClick(c.Request().Context(), ports.TrackClickInput{
		LinkID:     c.Param("id"),
		ClientAddr: c.RealIP(),
	})
	if err != nil {
		return err
	}

	metrics.ClicksTrackedTotal.Inc()
	return c.Redirect(http.StatusFound, destination)
}
