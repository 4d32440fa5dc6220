package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"veloservice/internal/apierror"
	"veloservice/internal/dto"
	"veloservice/internal/middleware"
	"veloservice/internal/service"
)

// PriceListsHandler serves the tenant-side price list management. The public
// storefront view lives on the service-centers handler.
type PriceListsHandler struct {
	svc service.PriceListService
	rdb *redis.Client
}

func NewPriceListsHandler(svc service.PriceListService, rdb *redis.Client) *PriceListsHandler {
	return &PriceListsHandler{svc: svc, rdb: rdb}
}

// List godoc
// @Summary      List own price lists
// @Tags         price-lists
// @Produce      json
// @Security     BearerAuth
// @Param        list_type query string false "services | components | products | combined"
// @Param        page      query int    false "Page (default 1)"
// @Param        limit     query int    false "Page size (default 20)"
// @Success      200 {object} dto.PriceListListResponse
// @Router       /v1/price-lists [get]
func (h *PriceListsHandler) List(c *gin.Context) {
	var filter dto.PriceListFilter
	if !bindQuery(c, &filter) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.List(c.Request.Context(), *claims.ServiceCenterID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list price lists"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Price list details with items
// @Tags         price-lists
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Price list id"
// @Success      200 {object} dto.PriceListResponse
// @Failure      403 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /v1/price-lists/{id} [get]
func (h *PriceListsHandler) Get(c *gin.Context) {
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
// @Summary      Create a price list
// @Description  Items are resolved against the caller's catalog (services, components, products) and written atomically with the list. One unresolved reference rejects the whole request.
// @Tags         price-lists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreatePriceListRequest true "Price list"
// @Success      201 {object} dto.PriceListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/price-lists [post]
func (h *PriceListsHandler) Create(c *gin.Context) {
	var req dto.CreatePriceListRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Create(c.Request.Context(), *claims.ServiceCenterID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	InvalidateDefaultPriceListCache(c.Request.Context(), h.rdb, *claims.ServiceCenterID)
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary      Update own price list
// @Description  Sending items replaces the full set; omitting it leaves items untouched. Setting is_default clears the flag on every other list of the tenant.
// @Tags         price-lists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int                        true "Price list id"
// @Param        body body dto.UpdatePriceListRequest true "Fields to change"
// @Success      200 {object} dto.PriceListResponse
// @Failure      403 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /v1/price-lists/{id} [put]
func (h *PriceListsHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePriceListRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Update(c.Request.Context(), *claims.ServiceCenterID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	InvalidateDefaultPriceListCache(c.Request.Context(), h.rdb, *claims.ServiceCenterID)
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Delete own price list with its items
// @Tags         price-lists
// @Security     BearerAuth
// @Param        id path int true "Price list id"
// @Success      204
// @Failure      403 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /v1/price-lists/{id} [delete]
func (h *PriceListsHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.Delete(c.Request.Context(), *claims.ServiceCenterID, id); err != nil {
		respondError(c, err)
		return
	}
	InvalidateDefaultPriceListCache(c.Request.Context(), h.rdb, *claims.ServiceCenterID)
	c.Status(http.StatusNoContent)
}
