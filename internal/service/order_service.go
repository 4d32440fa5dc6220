package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"veloservice/internal/dto"
	"veloservice/internal/model"
	"veloservice/internal/repository"
	"veloservice/internal/worker"
)

// OrderService turns a cart into an order. Checkout runs in one transaction:
// the order with its item snapshots, the stock decrements, and the cart wipe
// commit together or roll back together.
type OrderService interface {
	Create(ctx context.Context, userID uint, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	GetByID(ctx context.Context, claimsUserID, claimsCenterID *uint, id uint) (*dto.OrderResponse, error)
	ListByUser(ctx context.Context, userID uint, filter dto.OrderFilter) (*dto.OrderListResponse, error)
	ListByCenter(ctx context.Context, centerID uint, filter dto.OrderFilter) (*dto.OrderListResponse, error)
	UpdateStatus(ctx context.Context, centerID, id uint, req dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error)
}

type orderService struct {
	orders     repository.OrderRepository
	carts      repository.CartRepository
	products   repository.ProductRepository
	users      repository.UserRepository
	dispatcher *worker.Dispatcher
}

func NewOrderService(orders repository.OrderRepository, carts repository.CartRepository, products repository.ProductRepository, users repository.UserRepository, dispatcher *worker.Dispatcher) OrderService {
	return &orderService{
		orders:     orders,
		carts:      carts,
		products:   products,
		users:      users,
		dispatcher: dispatcher,
	}
}

func (s *orderService) Create(ctx context.Context, userID uint, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	cart, err := s.carts.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, invalid("cart is empty")
	}

	var centerID uint
	total := decimal.Zero
	items := make([]model.OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		if it.Product == nil {
			return nil, invalidf("product %d no longer exists", it.ProductID)
		}
		if !it.Product.IsActive {
			return nil, invalidf("product %q is no longer available", it.Product.Name)
		}
		if it.Product.Stock < it.Quantity {
			return nil, invalidf("insufficient stock for %q", it.Product.Name)
		}
		if centerID == 0 {
			centerID = it.Product.ServiceCenterID
		} else if centerID != it.Product.ServiceCenterID {
			return nil, invalid("cart may only contain products of a single service center")
		}
		subtotal := it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(subtotal)
		items = append(items, model.OrderItem{
			ProductID: it.ProductID,
			ItemName:  it.Product.Name,
			UnitPrice: it.Product.Price,
			Quantity:  it.Quantity,
		})
	}

	order := model.Order{
		UserID:          userID,
		ServiceCenterID: centerID,
		Status:          model.OrderStatusPending,
		TotalPrice:      total,
		DeliveryAddress: req.DeliveryAddress,
		Comment:         req.Comment,
		Items:           items,
	}

	err = runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		if err := s.orders.CreateTx(tx, &order); err != nil {
			return err
		}
		for _, it := range order.Items {
			if err := s.products.UpdateStockTx(tx, it.ProductID, -it.Quantity); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					return invalidf("insufficient stock for %q", it.ItemName)
				}
				return err
			}
		}
		return s.carts.ClearTx(tx, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	s.notifyOrderCreated(ctx, &order)
	return toOrderResponse(&order), nil
}

func (s *orderService) GetByID(ctx context.Context, claimsUserID, claimsCenterID *uint, id uint) (*dto.OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// Visible to the buyer and the selling center only.
	switch {
	case claimsUserID != nil && *claimsUserID == order.UserID:
	case claimsCenterID != nil && *claimsCenterID == order.ServiceCenterID:
	default:
		return nil, ErrForbidden
	}
	return toOrderResponse(order), nil
}

func (s *orderService) ListByUser(ctx context.Context, userID uint, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	orders, total, err := s.orders.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return toOrderListResponse(orders, total, filter), nil
}

func (s *orderService) ListByCenter(ctx context.Context, centerID uint, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	orders, total, err := s.orders.ListByCenter(ctx, centerID, filter)
	if err != nil {
		return nil, err
	}
	return toOrderListResponse(orders, total, filter), nil
}

func (s *orderService) UpdateStatus(ctx context.Context, centerID, id uint, req dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.ServiceCenterID != centerID {
		return nil, ErrForbidden
	}
	if err := s.orders.UpdateStatus(ctx, id, req.Status); err != nil {
		return nil, err
	}
	order.Status = req.Status
	s.notifyStatusChanged(ctx, order)
	return toOrderResponse(order), nil
}

func (s *orderService) notifyOrderCreated(ctx context.Context, order *model.Order) {
	email := s.buyerEmail(ctx, order.UserID)
	if email == "" {
		return
	}
	s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
		ToEmail: email,
		Subject: fmt.Sprintf("Order #%d received", order.ID),
		Body: fmt.Sprintf("We received your order #%d for a total of %s. We'll let you know when it ships.",
			order.ID, order.TotalPrice.StringFixed(2)),
	})
}

func (s *orderService) notifyStatusChanged(ctx context.Context, order *model.Order) {
	email := s.buyerEmail(ctx, order.UserID)
	if email == "" {
		return
	}
	s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
		ToEmail: email,
		Subject: fmt.Sprintf("Order #%d status update", order.ID),
		Body:    fmt.Sprintf("Your order #%d is now %s.", order.ID, order.Status),
	})
}

func (s *orderService) buyerEmail(ctx context.Context, userID uint) string {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return ""
	}
	return user.Email
}

func toOrderResponse(order *model.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			ItemName:  it.ItemName,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}
	return &dto.OrderResponse{
		ID:              order.ID,
		UserID:          order.UserID,
		ServiceCenterID: order.ServiceCenterID,
		Status:          order.Status,
		TotalPrice:      order.TotalPrice,
		DeliveryAddress: order.DeliveryAddress,
		Comment:         order.Comment,
		Items:           items,
		CreatedAt:       order.CreatedAt,
	}
}

func toOrderListResponse(orders []model.Order, total int64, filter dto.OrderFilter) *dto.OrderListResponse {
	resp := dto.OrderListResponse{
		Data:  make([]dto.OrderResponse, 0, len(orders)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range orders {
		resp.Data = append(resp.Data, *toOrderResponse(&orders[i]))
	}
	return &resp
}
