package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"veloservice/internal/apierror"
	"veloservice/internal/dto"
	"veloservice/internal/infra"
	"veloservice/internal/middleware"
	"veloservice/internal/service"
)

const (
	defaultPriceListCacheTTL = 10 * time.Minute
	maxLogoSize              = 5 << 20 // 5 MiB
)

// ServiceCentersHandler serves the public storefront catalog plus the
// owner-side profile endpoints.
type ServiceCentersHandler struct {
	centers    service.ServiceCenterService
	priceLists service.PriceListService
	reviews    service.ReviewService
	storage    *infra.FileStorage
	rdb        *redis.Client
}

func NewServiceCentersHandler(centers service.ServiceCenterService, priceLists service.PriceListService, reviews service.ReviewService, storage *infra.FileStorage, rdb *redis.Client) *ServiceCentersHandler {
	return &ServiceCentersHandler{
		centers:    centers,
		priceLists: priceLists,
		reviews:    reviews,
		storage:    storage,
		rdb:        rdb,
	}
}

// List godoc
// @Summary      Browse service centers (no authentication)
// @Tags         service-centers
// @Produce      json
// @Param        name  query string false "Name substring filter"
// @Param        page  query int    false "Page (default 1)"
// @Param        limit query int    false "Page size (default 20)"
// @Success      200 {object} dto.ServiceCenterListResponse
// @Router       /v1/service-centers [get]
func (h *ServiceCentersHandler) List(c *gin.Context) {
	var filter dto.ServiceCenterFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.centers.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list service centers"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Service center public profile
// @Tags         service-centers
// @Produce      json
// @Param        id path int true "Service center id"
// @Success      200 {object} dto.ServiceCenterResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/service-centers/{id} [get]
func (h *ServiceCentersHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.centers.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reviews godoc
// @Summary      Reviews of a service center with average rating
// @Tags         service-centers
// @Produce      json
// @Param        id path int true "Service center id"
// @Success      200 {object} dto.ReviewListResponse
// @Router       /v1/service-centers/{id}/reviews [get]
func (h *ServiceCentersHandler) Reviews(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.reviews.ListByCenter(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list reviews"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DefaultPriceList godoc
// @Summary      Published default price list of a service center (no authentication)
// @Tags         service-centers
// @Produce      json
// @Param        id path int true "Service center id"
// @Success      200 {object} dto.PriceListResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/service-centers/{id}/price-list [get]
func (h *ServiceCentersHandler) DefaultPriceList(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	cacheKey := defaultPriceListCacheKey(id)

	// 1. Try Redis cache — the storefront hits this hard
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.PriceListResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — query DB
	resp, err := h.priceLists.GetDefault(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, defaultPriceListCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateProfile godoc
// @Summary      Update own service center profile
// @Tags         service-centers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.UpdateCenterProfileRequest true "Profile fields"
// @Success      200 {object} dto.ServiceCenterResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/profile [put]
func (h *ServiceCentersHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateCenterProfileRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.centers.UpdateProfile(c.Request.Context(), *claims.ServiceCenterID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UploadLogo godoc
// @Summary      Upload a service center logo
// @Tags         service-centers
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "Logo image"
// @Success      200 {object} dto.ServiceCenterResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/profile/logo [post]
func (h *ServiceCentersHandler) UploadLogo(c *gin.Context) {
	claims := middleware.GetClaims(c)
	url, ok := saveUpload(c, h.storage, "logos", maxLogoSize)
	if !ok {
		return
	}
	resp, err := h.centers.SetLogoURL(c.Request.Context(), *claims.ServiceCenterID, url)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// InvalidateDefaultPriceListCache drops the cached storefront price list of a
// center after a write. Best effort.
func InvalidateDefaultPriceListCache(ctx context.Context, rdb *redis.Client, centerID uint) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, defaultPriceListCacheKey(centerID)).Err(); err != nil {
		log.Warn().Err(err).Uint("center_id", centerID).Msg("failed to invalidate price list cache")
	}
}

func defaultPriceListCacheKey(centerID uint) string {
	return "pricelist:default:" + strconv.FormatUint(uint64(centerID), 10)
}

// saveUpload reads one multipart file field named "file" and stores it.
// Returns the public URL.
func saveUpload(c *gin.Context, storage *infra.FileStorage, subdir string, maxSize int64) (string, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("file field is required"))
		return "", false
	}
	if fh.Size > maxSize {
		c.JSON(http.StatusBadRequest, apierror.New("file is too large"))
		return "", false
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("failed to read file"))
		return "", false
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil || int64(len(data)) > maxSize {
		c.JSON(http.StatusBadRequest, apierror.New("failed to read file"))
		return "", false
	}
	url, err := storage.Save(subdir, fh.Filename, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to store file"))
		return "", false
	}
	return url, true
}
