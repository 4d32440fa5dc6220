package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"veloservice/internal/apierror"
	"veloservice/internal/dto"
	"veloservice/internal/infra"
	"veloservice/internal/middleware"
	"veloservice/internal/service"
)

const maxProductImageSize = 5 << 20

type ProductsHandler struct {
	svc     service.ProductService
	storage *infra.FileStorage
}

func NewProductsHandler(svc service.ProductService, storage *infra.FileStorage) *ProductsHandler {
	return &ProductsHandler{svc: svc, storage: storage}
}

// List godoc
// @Summary      Browse products (no authentication)
// @Tags         products
// @Produce      json
// @Param        name              query string false "Name substring filter"
// @Param        category          query string false "Exact category"
// @Param        service_center_id query int    false "Seller filter"
// @Param        active            query string false "false | all (default: active only)"
// @Param        page              query int    false "Page (default 1)"
// @Param        limit             query int    false "Page size (default 20)"
// @Success      200 {object} dto.ProductListResponse
// @Router       /v1/products [get]
func (h *ProductsHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list products"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Product details
// @Tags         products
// @Produce      json
// @Param        id path int true "Product id"
// @Success      200 {object} dto.ProductResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/products/{id} [get]
func (h *ProductsHandler) Get(c *gin.Context) {
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
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateProductRequest true "Product"
// @Success      201 {object} dto.ProductResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/products [post]
func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
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
// @Summary      Update own product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int                      true "Product id"
// @Param        body body dto.UpdateProductRequest true "Fields to change"
// @Success      200 {object} dto.ProductResponse
// @Failure      403 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /v1/products/{id} [put]
func (h *ProductsHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
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
// @Summary      Deactivate own product
// @Tags         products
// @Security     BearerAuth
// @Param        id path int true "Product id"
// @Success      204
// @Failure      403 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /v1/products/{id} [delete]
func (h *ProductsHandler) Delete(c *gin.Context) {
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

// UploadImage godoc
// @Summary      Upload a product image
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     int  true "Product id"
// @Param        file formData file true "Image"
// @Success      200 {object} dto.ProductResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/products/{id}/image [post]
func (h *ProductsHandler) UploadImage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	url, ok := saveUpload(c, h.storage, "products", maxProductImageSize)
	if !ok {
		return
	}
	resp, err := h.svc.SetImageURL(c.Request.Context(), *claims.ServiceCenterID, id, url)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
