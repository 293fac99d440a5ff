package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/synchub/attendance/internal/core/ports"
)

// OfficerHandler manages the identity store.
type OfficerHandler struct {
	service ports.IdentityService
}

func NewOfficerHandler(service ports.IdentityService) *OfficerHandler {
	return &OfficerHandler{service: service}
}

type officerRequest struct {
	Identifier string `json:"identifier" form:"identifier"`
	Name       string `json:"name" form:"name" validate:"max=100"`
	Position   string `json:"position" form:"position" validate:"max=100"`
}

func (r officerRequest) input() ports.IdentityInput {
	return ports.IdentityInput{Identifier: r.Identifier, Name: r.Name, Position: r.Position}
}

// List handles GET /rfid_login/officers/.
//
// @Summary      List officers
// @Tags         officers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Identity
// @Failure      403  {object}  errorResponse
// @Router       /rfid_login/officers/ [get]
func (h *OfficerHandler) List(c echo.Context) error {
	officers, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, officers)
}

// Create handles POST /rfid_login/officers/.
//
// @Summary      Register an officer
// @Tags         officers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      officerRequest  true  "Officer"
// @Success      201   {object}  domain.Identity
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /rfid_login/officers/ [post]
func (h *OfficerHandler) Create(c echo.Context) error {
	var req officerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	officer, err := h.service.Register(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, officer)
}

// Update handles PUT /rfid_login/officers/:id. The identifier cannot change.
//
// @Summary      Edit an officer
// @Tags         officers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Officer ID"
// @Param        body  body      officerRequest  true  "Officer"
// @Success      200   {object}  domain.Identity
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /rfid_login/officers/{id} [put]
func (h *OfficerHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req officerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	officer, err := h.service.Edit(c.Request().Context(), id, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, officer)
}

// Delete handles DELETE /rfid_login/officers/:id together with its time logs.
//
// @Summary      Delete an officer
// @Tags         officers
// @Security     BearerAuth
// @Param        id   path  int  true  "Officer ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /rfid_login/officers/{id} [delete]
func (h *OfficerHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Remove(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
