package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/synchub/attendance/internal/core/ports"
)

type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// profileRequest leaves a field unchanged when it is omitted.
type profileRequest struct {
	Bio                  *string `json:"bio"`
	Theme                *string `json:"theme" validate:"omitempty,oneof=light dark"`
	NotificationsEnabled *bool   `json:"notifications_enabled"`
}

// Get handles GET /profile/.
//
// @Summary      Current member's profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  errorResponse
// @Router       /profile/ [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	profile, err := h.service.Get(c.Request().Context(), p.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Update handles PUT /profile/.
//
// @Summary      Update the current member's profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Profile fields"
// @Success      200   {object}  domain.Profile
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /profile/ [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	current, err := h.service.Get(ctx, p.UserID)
	if err != nil {
		return err
	}
	if req.Bio != nil {
		current.Bio = *req.Bio
	}
	if req.Theme != nil {
		current.Theme = *req.Theme
	}
	if req.NotificationsEnabled != nil {
		current.NotificationsEnabled = *req.NotificationsEnabled
	}

	updated, err := h.service.Update(ctx, *current)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}
