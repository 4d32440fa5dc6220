package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"veloservice/internal/dto"
	"veloservice/internal/model"
	"veloservice/internal/repository"
)

type ProductService interface {
	Create(ctx context.Context, centerID uint, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Update(ctx context.Context, centerID, id uint, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Delete(ctx context.Context, centerID, id uint) error
	SetImageURL(ctx context.Context, centerID, id uint, url string) (*dto.ProductResponse, error)
}

type productService struct {
	products repository.ProductRepository
}

func NewProductService(products repository.ProductRepository) ProductService {
	return &productService{products: products}
}

func (s *productService) Create(ctx context.Context, centerID uint, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if req.Price.IsNegative() {
		return nil, invalid("price must not be negative")
	}
	p := model.Product{
		ServiceCenterID: centerID,
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Price:           *req.Price,
		Stock:           req.Stock,
		IsActive:        true,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if err := s.products.Create(ctx, &p); err != nil {
		return nil, err
	}
	return toProductResponse(&p), nil
}

func (s *productService) Update(ctx context.Context, centerID, id uint, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.findOwned(ctx, centerID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, invalid("price must not be negative")
		}
		p.Price = *req.Price
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

func (s *productService) GetByID(ctx context.Context, id uint) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toProductResponse(p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := dto.ProductListResponse{
		Data:  make([]dto.ProductResponse, 0, len(products)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range products {
		resp.Data = append(resp.Data, *toProductResponse(&products[i]))
	}
	return &resp, nil
}

func (s *productService) Delete(ctx context.Context, centerID, id uint) error {
	if _, err := s.findOwned(ctx, centerID, id); err != nil {
		return err
	}
	return s.products.SoftDelete(ctx, id)
}

func (s *productService) SetImageURL(ctx context.Context, centerID, id uint, url string) (*dto.ProductResponse, error) {
	p, err := s.findOwned(ctx, centerID, id)
	if err != nil {
		return nil, err
	}
	p.ImageURL = &url
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

func (s *productService) findOwned(ctx context.Context, centerID, id uint) (*model.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.ServiceCenterID != centerID {
		return nil, ErrForbidden
	}
	return p, nil
}

func toProductResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:              p.ID,
		ServiceCenterID: p.ServiceCenterID,
		Name:            p.Name,
		Description:     p.Description,
		Category:        p.Category,
		Price:           p.Price,
		Stock:           p.Stock,
		ImageURL:        p.ImageURL,
		IsActive:        p.IsActive,
	}
}
