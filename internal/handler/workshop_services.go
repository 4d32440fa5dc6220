package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"veloservice/internal/apierror"
	"veloservice/internal/dto"
	"veloservice/internal/middleware"
	"veloservice/internal/service"
)

type WorkshopServicesHandler struct {
	svc service.WorkshopServiceService
}

func NewWorkshopServicesHandler(svc service.WorkshopServiceService) *WorkshopServicesHandler {
	return &WorkshopServicesHandler{svc: svc}
}

// List godoc
// @Summary      Browse workshop services (no authentication)
// @Tags         workshop-services
// @Produce      json
// @Param        name              query string false "Name substring filter"
// @Param        category          query string false "Exact category"
// @Param        service_center_id query int    false "Provider filter"
// @Param        active            query string false "false | all (default: active only)"
// @Param        page              query int    false "Page (default 1)"
// @Param        limit             query int    false "Page size (default 20)"
// @Success      200 {object} dto.WorkshopServiceListResponse
// @Router       /v1/workshop-services [get]
func (h *WorkshopServicesHandler) List(c *gin.Context) {
	var filter dto.WorkshopServiceFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list workshop services"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Workshop service details with component usages
// @Tags         workshop-services
// @Produce      json
// @Param        id path int true "Workshop service id"
// @Success      200 {object} dto.WorkshopServiceResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/workshop-services/{id} [get]
func (h *WorkshopServicesHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary      Create a workshop service
// @Description  Component usages are validated against the caller's inventory and written atomically with the service.
// @Tags         workshop-services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateWorkshopServiceRequest true "Workshop service"
// @Success      201 {object} dto.WorkshopServiceResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/workshop-services [post]
func (h *WorkshopServicesHandler) Create(c *gin.Context) {
	var req dto.CreateWorkshopServiceRequest
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
// @Summary      Update own workshop service
// @Description  Sending component_usages replaces the full set; omitting it leaves usages untouched.
// @Tags         workshop-services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int                              true "Workshop service id"
// @Param        body body dto.UpdateWorkshopServiceRequest true "Fields to change"
// @Success      200 {object} dto.WorkshopServiceResponse
// @Failure      403 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /v1/workshop-services/{id} [put]
func (h *WorkshopServicesHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateWorkshopServiceRequest
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
// @Summary      Deactivate own workshop service
// @Tags         workshop-services
// @Security     BearerAuth
// @Param        id path int true "Workshop service id"
// @Success      204
// @Failure      403 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /v1/workshop-services/{id} [delete]
func (h *WorkshopServicesHandler) Delete(c *gin.Context) {
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
