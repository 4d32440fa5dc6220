package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"veloservice/internal/apierror"
	"veloservice/internal/dto"
	"veloservice/internal/middleware"
	"veloservice/internal/service"
)

type WarrantiesHandler struct{ svc service.WarrantyService }

func NewWarrantiesHandler(svc service.WarrantyService) *WarrantiesHandler {
	return &WarrantiesHandler{svc: svc}
}

// List godoc
// @Summary      List own repair warranties
// @Tags         warranties
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "active | expired | void"
// @Param        page   query int    false "Page (default 1)"
// @Param        limit  query int    false "Page size (default 20)"
// @Success      200 {object} dto.WarrantyListResponse
// @Router       /v1/warranties [get]
func (h *WarrantiesHandler) List(c *gin.Context) {
	var filter dto.WarrantyFilter
	if !bindQuery(c, &filter) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.List(c.Request.Context(), *claims.ServiceCenterID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list warranties"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Warranty details
// @Tags         warranties
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Warranty id"
// @Success      200 {object} dto.WarrantyResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/warranties/{id} [get]
func (h *WarrantiesHandler) Get(c *gin.Context) {
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
// @Summary      Issue a repair warranty
// @Tags         warranties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateWarrantyRequest true "Warranty"
// @Success      201 {object} dto.WarrantyResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/warranties [post]
func (h *WarrantiesHandler) Create(c *gin.Context) {
	var req dto.CreateWarrantyRequest
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
// @Summary      Update own warranty
// @Tags         warranties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int                       true "Warranty id"
// @Param        body body dto.UpdateWarrantyRequest true "Fields to change"
// @Success      200 {object} dto.WarrantyResponse
// @Failure      403 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /v1/warranties/{id} [put]
func (h *WarrantiesHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateWarrantyRequest
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
// @Summary      Delete own warranty
// @Tags         warranties
// @Security     BearerAuth
// @Param        id path int true "Warranty id"
// @Success      204
// @Failure      403 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /v1/warranties/{id} [delete]
func (h *WarrantiesHandler) Delete(c *gin.Context) {
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

// GenerateCertificate godoc
// @Summary      Request PDF certificate rendering
// @Description  Enqueues the certificate job; the PDF becomes downloadable once the worker finishes.
// @Tags         warranties
// @Security     BearerAuth
// @Param        id path int true "Warranty id"
// @Success      202
// @Failure      403 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /v1/warranties/{id}/certificate [post]
func (h *WarrantiesHandler) GenerateCertificate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.RequestCertificate(c.Request.Context(), *claims.ServiceCenterID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// DownloadCertificate godoc
// @Summary      Download the rendered certificate PDF
// @Tags         warranties
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path int true "Warranty id"
// @Success      200
// @Failure      404 {object} apierror.APIError
// @Router       /v1/warranties/{id}/certificate [get]
func (h *WarrantiesHandler) DownloadCertificate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	path, err := h.svc.CertificatePath(c.Request.Context(), *claims.ServiceCenterID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, "warranty_certificate.pdf")
}
