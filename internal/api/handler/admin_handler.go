package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cliplink/affiliate-system/internal/api/metrics"
	"github.com/cliplink/affiliate-system/internal/core/ports"
)

// AdminHandler handles the admin-only reward ledger operations.
type AdminHandler struct {
	rewards ports.RewardService
}

func NewAdminHandler(rewards ports.RewardService) *AdminHandler {
	return &AdminHandler{rewards: rewards}
}

// GenerateLink mints an affiliate link for a target user.
//
// @Summary      Generate an affiliate link for a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      generateLinkRequest  true  "Link details"
// @Success      201   {object}  domain.AffiliateLink
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/links [post]
func (h *AdminHandler) GenerateLink(c echo.Context) error {
	acting, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req generateLinkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	link, err := h.rewards.GenerateLink(c.Request().Context(), ports.GenerateLinkInput{
		ActingRole:     acting.Role,
		VideoID:        req.VideoID,
		DestinationURL: req.DestinationURL,
		TargetUserID:   req.TargetUserID,
	})
	if err != nil {
		return err
	}

	metrics.LinksGeneratedTotal.Inc()
	return c.JSON(http.StatusCreated, link)
}

// CreditEntries adds reward entries to a target user.
//
// @Summary      Credit entries to a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      creditEntriesRequest  true  "Credit details"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/entries [post]
func (h *AdminHandler) CreditEntries(c echo.Context) error {
	acting, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req creditEntriesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.rewards.CreditEntries(c.Request().Context(), ports.CreditEntriesInput{
		ActingRole:   acting.Role,
		TargetUserID: req.TargetUserID,
		Amount:       req.Amount,
	})
	if err != nil {
		return err
	}

	metrics.EntriesCreditedTotal.Add(float64(req.Amount))
	return c.JSON(http.StatusOK, user)
}
