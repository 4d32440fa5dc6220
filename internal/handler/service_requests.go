package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"veloservice/internal/apierror"
	"veloservice/internal/dto"
	"veloservice/internal/middleware"
	"veloservice/internal/service"
)

type ServiceRequestsHandler struct{ svc service.ServiceRequestService }

func NewServiceRequestsHandler(svc service.ServiceRequestService) *ServiceRequestsHandler {
	return &ServiceRequestsHandler{svc: svc}
}

// Create godoc
// @Summary      Book a repair at a service center
// @Tags         service-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateServiceRequestRequest true "Request details"
// @Success      201 {object} dto.ServiceRequestResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/service-requests [post]
func (h *ServiceRequestsHandler) Create(c *gin.Context) {
	var req dto.CreateServiceRequestRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Create(c.Request.Context(), *claims.UserID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      List service requests of the caller
// @Description  Users see their bookings; service centers see incoming requests.
// @Tags         service-requests
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Status filter"
// @Param        page   query int    false "Page (default 1)"
// @Param        limit  query int    false "Page size (default 20)"
// @Success      200 {object} dto.ServiceRequestListResponse
// @Router       /v1/service-requests [get]
func (h *ServiceRequestsHandler) List(c *gin.Context) {
	var filter dto.ServiceRequestFilter
	if !bindQuery(c, &filter) {
		return
	}
	claims := middleware.GetClaims(c)
	var (
		resp *dto.ServiceRequestListResponse
		err  error
	)
	switch {
	case claims.IsUser():
		resp, err = h.svc.ListByUser(c.Request.Context(), *claims.UserID, filter)
	case claims.IsServiceCenter():
		resp, err = h.svc.ListByCenter(c.Request.Context(), *claims.ServiceCenterID, filter)
	default:
		c.JSON(http.StatusUnauthorized, apierror.New("authentication required"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list service requests"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Service request details
// @Description  Visible to the requester and the receiving service center only.
// @Tags         service-requests
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Service request id"
// @Success      200 {object} dto.ServiceRequestResponse
// @Failure      403 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /v1/service-requests/{id} [get]
func (h *ServiceRequestsHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.GetByID(c.Request.Context(), claims.UserID, claims.ServiceCenterID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Edit own service request
// @Description  Allowed only while the request is still in its initial status.
// @Tags         service-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int                             true "Service request id"
// @Param        body body dto.UpdateServiceRequestRequest true "Fields to change"
// @Success      200 {object} dto.ServiceRequestResponse
// @Failure      400 {object} apierror.APIError
// @Failure      403 {object} apierror.APIError
// @Router       /v1/service-requests/{id} [put]
func (h *ServiceRequestsHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateServiceRequestRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Update(c.Request.Context(), *claims.UserID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus godoc
// @Summary      Change request status (receiving center only)
// @Tags         service-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int                            true "Service request id"
// @Param        body body dto.UpdateRequestStatusRequest true "New status"
// @Success      200 {object} dto.ServiceRequestResponse
// @Failure      403 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /v1/service-requests/{id}/status [put]
func (h *ServiceRequestsHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateRequestStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.UpdateStatus(c.Request.Context(), *claims.ServiceCenterID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
