package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/synchub/attendance/internal/core/ports"
)

type InventoryHandler struct {
	service ports.InventoryService
}

func NewInventoryHandler(service ports.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

type itemRequest struct {
	Name        string `json:"name" form:"name" validate:"required,max=100"`
	Description string `json:"description" form:"description"`
	Quantity    uint   `json:"quantity" form:"quantity"`
	Location    string `json:"location" form:"location" validate:"max=100"`
}

func (r itemRequest) input() ports.ItemInput {
	return ports.ItemInput{Name: r.Name, Description: r.Description, Quantity: r.Quantity, Location: r.Location}
}

// List handles GET /inventory/.
//
// @Summary      List inventory items
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  domain.Item
// @Router       /inventory/ [get]
func (h *InventoryHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Create handles POST /inventory/.
//
// @Summary      Add an inventory item
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      itemRequest  true  "Item"
// @Success      201   {object}  domain.Item
// @Failure      422   {object}  errorResponse
// @Router       /inventory/ [post]
func (h *InventoryHandler) Create(c echo.Context) error {
	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	item, err := h.service.Add(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// Update handles PUT /inventory/:id.
//
// @Summary      Edit an inventory item
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Item ID"
// @Param        body  body      itemRequest  true  "Item"
// @Success      200   {object}  domain.Item
// @Failure      404   {object}  errorResponse
// @Router       /inventory/{id} [put]
func (h *InventoryHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	item, err := h.service.Edit(c.Request().Context(), id, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /inventory/:id.
//
// @Summary      Delete an inventory item
// @Tags         inventory
// @Security     BearerAuth
// @Param        id   path  int  true  "Item ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /inventory/{id} [delete]
func (h *InventoryHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Remove(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
