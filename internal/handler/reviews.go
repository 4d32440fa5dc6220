package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"veloservice/internal/dto"
	"veloservice/internal/middleware"
	"veloservice/internal/service"
)

type ReviewsHandler struct{ svc service.ReviewService }

func NewReviewsHandler(svc service.ReviewService) *ReviewsHandler {
	return &ReviewsHandler{svc: svc}
}

// Create godoc
// @Summary      Review a service center
// @Description  One review per user per service center.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateReviewRequest true "Rating and comment"
// @Success      201 {object} dto.ReviewResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/reviews [post]
func (h *ReviewsHandler) Create(c *gin.Context) {
	var req dto.CreateReviewRequest
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

// Update godoc
// @Summary      Edit own review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int                     true "Review id"
// @Param        body body dto.UpdateReviewRequest true "Fields to change"
// @Success      200 {object} dto.ReviewResponse
// @Failure      403 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /v1/reviews/{id} [put]
func (h *ReviewsHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateReviewRequest
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

// Delete godoc
// @Summary      Delete own review
// @Tags         reviews
// @Security     BearerAuth
// @Param        id path int true "Review id"
// @Success      204
// @Failure      403 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /v1/reviews/{id} [delete]
func (h *ReviewsHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.Delete(c.Request.Context(), *claims.UserID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
