package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"veloservice/internal/dto"
	"veloservice/internal/model"
	"veloservice/internal/repository"
)

// CartService manages a user's single pending cart. All items must reference
// products of one service center; mixing sellers is rejected at add time.
type CartService interface {
	Get(ctx context.Context, userID uint) (*dto.CartResponse, error)
	AddItem(ctx context.Context, userID uint, req dto.AddCartItemRequest) (*dto.CartResponse, error)
	UpdateItem(ctx context.Context, userID, itemID uint, req dto.UpdateCartItemRequest) (*dto.CartResponse, error)
	RemoveItem(ctx context.Context, userID, itemID uint) (*dto.CartResponse, error)
	Clear(ctx context.Context, userID uint) error
}

type cartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository) CartService {
	return &cartService{carts: carts, products: products}
}

func (s *cartService) Get(ctx context.Context, userID uint) (*dto.CartResponse, error) {
	cart, err := s.carts.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

func (s *cartService) AddItem(ctx context.Context, userID uint, req dto.AddCartItemRequest) (*dto.CartResponse, error) {
	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid("product not found")
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, invalid("product is not available")
	}

	cart, err := s.carts.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, it := range cart.Items {
		if it.Product != nil && it.Product.ServiceCenterID != product.ServiceCenterID {
			return nil, invalid("cart may only contain products of a single service center")
		}
	}

	existing, err := s.carts.FindItemByProduct(ctx, cart.ID, req.ProductID)
	switch {
	case err == nil:
		existing.Quantity += req.Quantity
		if err := s.carts.UpdateItem(ctx, existing); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := model.CartItem{
			CartID:    cart.ID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
		}
		if err := s.carts.AddItem(ctx, &item); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.Get(ctx, userID)
}

func (s *cartService) UpdateItem(ctx context.Context, userID, itemID uint, req dto.UpdateCartItemRequest) (*dto.CartResponse, error) {
	if _, err := s.findOwnedItem(ctx, userID, itemID); err != nil {
		return nil, err
	}
	item, err := s.carts.FindItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	item.Quantity = req.Quantity
	if err := s.carts.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

func (s *cartService) RemoveItem(ctx context.Context, userID, itemID uint) (*dto.CartResponse, error) {
	if _, err := s.findOwnedItem(ctx, userID, itemID); err != nil {
		return nil, err
	}
	if err := s.carts.DeleteItem(ctx, itemID); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

func (s *cartService) Clear(ctx context.Context, userID uint) error {
	cart, err := s.carts.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return err
	}
	return s.carts.Clear(ctx, cart.ID)
}

func (s *cartService) findOwnedItem(ctx context.Context, userID, itemID uint) (*model.CartItem, error) {
	item, err := s.carts.FindItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	cart, err := s.carts.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if item.CartID != cart.ID {
		return nil, ErrForbidden
	}
	return item, nil
}

func toCartResponse(cart *model.Cart) *dto.CartResponse {
	resp := dto.CartResponse{
		ID:    cart.ID,
		Items: make([]dto.CartItemResponse, 0, len(cart.Items)),
		Total: decimal.Zero,
	}
	for _, it := range cart.Items {
		item := dto.CartItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		}
		if it.Product != nil {
			item.Name = it.Product.Name
			item.UnitPrice = it.Product.Price
			item.Subtotal = it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
			resp.Total = resp.Total.Add(item.Subtotal)
			if resp.ServiceCenterID == nil {
				id := it.Product.ServiceCenterID
				resp.ServiceCenterID = &id
			}
		}
		resp.Items = append(resp.Items, item)
	}
	return &resp
}
