package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"veloservice/internal/apierror"
	"veloservice/internal/dto"
	"veloservice/internal/middleware"
	"veloservice/internal/service"
)

// ComponentsHandler serves the tenant-private spare part inventory.
type ComponentsHandler struct{ svc service.ComponentService }

func NewComponentsHandler(svc service.ComponentService) *ComponentsHandler {
	return &ComponentsHandler{svc: svc}
}

// List godoc
// @Summary      List own components
// @Tags         components
// @Produce      json
// @Security     BearerAuth
// @Param        name         query string false "Name substring filter"
// @Param        manufacturer query string false "Manufacturer substring filter"
// @Param        active       query string false "false | all (default: active only)"
// @Param        page         query int    false "Page (default 1)"
// @Param        limit        query int    false "Page size (default 20)"
// @Success      200 {object} dto.ComponentListResponse
// @Router       /v1/components [get]
func (h *ComponentsHandler) List(c *gin.Context) {
	var filter dto.ComponentFilter
	if !bindQuery(c, &filter) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.List(c.Request.Context(), *claims.ServiceCenterID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list components"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Component details
// @Tags         components
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Component id"
// @Success      200 {object} dto.ComponentResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/components/{id} [get]
func (h *ComponentsHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.GetByID(c.Request.Context(), *claims.ServiceCenterID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary      Create a component
// @Tags         components
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateComponentRequest true "Component"
// @Success      201 {object} dto.ComponentResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/components [post]
func (h *ComponentsHandler) Create(c *gin.Context) {
	var req dto.CreateComponentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Create(c.Request.Context(), *claims.ServiceCenterID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary      Update own component
// @Tags         components
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int                        true "Component id"
// @Param        body body dto.UpdateComponentRequest true "Fields to change"
// @Success      200 {object} dto.ComponentResponse
// @Failure      403 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /v1/components/{id} [put]
func (h *ComponentsHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateComponentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Update(c.Request.Context(), *claims.ServiceCenterID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Deactivate own component
// @Tags         components
// @Security     BearerAuth
// @Param        id path int true "Component id"
// @Success      204
// @Failure      403 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /v1/components/{id} [delete]
func (h *ComponentsHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.Delete(c.Request.Context(), *claims.ServiceCenterID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
