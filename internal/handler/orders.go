package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"veloservice/internal/apierror"
	"veloservice/internal/dto"
	"veloservice/internal/middleware"
	"veloservice/internal/service"
)

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler { return &OrdersHandler{svc: svc} }

// Create godoc
// @Summary      Checkout the cart into an order
// @Description  Runs atomically: creates the order with price snapshots, decrements product stock and clears the cart. Insufficient stock of any item rejects the whole checkout.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateOrderRequest true "Delivery details"
// @Success      201 {object} dto.OrderResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/orders [post]
func (h *OrdersHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
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
// @Summary      List orders of the caller
// @Description  Users see their purchases; service centers see their sales.
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "pending | processing | shipped | delivered | cancelled"
// @Param        page   query int    false "Page (default 1)"
// @Param        limit  query int    false "Page size (default 20)"
// @Success      200 {object} dto.OrderListResponse
// @Router       /v1/orders [get]
func (h *OrdersHandler) List(c *gin.Context) {
	var filter dto.OrderFilter
	if !bindQuery(c, &filter) {
		return
	}
	claims := middleware.GetClaims(c)
	var (
		resp *dto.OrderListResponse
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
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list orders"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Order details
// @Description  Visible to the buyer and the selling service center only.
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Order id"
// @Success      200 {object} dto.OrderResponse
// @Failure      403 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /v1/orders/{id} [get]
func (h *OrdersHandler) Get(c *gin.Context) {
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

// UpdateStatus godoc
// @Summary      Change order status (selling center only)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int                          true "Order id"
// @Param        body body dto.UpdateOrderStatusRequest true "New status"
// @Success      200 {object} dto.OrderResponse
// @Failure      403 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /v1/orders/{id}/status [put]
func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
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
