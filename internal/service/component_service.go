package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gorm.io/datatypes"

	"veloservice/internal/dto"
	"veloservice/internal/model"
	"veloservice/internal/repository"
)

// ComponentService manages a tenant's spare part inventory. Components are
// tenant-private: every operation, reads included, is scoped to the owner.
type ComponentService interface {
	Create(ctx context.Context, centerID uint, req dto.CreateComponentRequest) (*dto.ComponentResponse, error)
	Update(ctx context.Context, centerID, id uint, req dto.UpdateComponentRequest) (*dto.ComponentResponse, error)
	GetByID(ctx context.Context, centerID, id uint) (*dto.ComponentResponse, error)
	List(ctx context.Context, centerID uint, filter dto.ComponentFilter) (*dto.ComponentListResponse, error)
	Delete(ctx context.Context, centerID, id uint) error
}

type componentService struct {
	components repository.ComponentRepository
}

func NewComponentService(components repository.ComponentRepository) ComponentService {
	return &componentService{components: components}
}

func (s *componentService) Create(ctx context.Context, centerID uint, req dto.CreateComponentRequest) (*dto.ComponentResponse, error) {
	if req.UnitPrice.IsNegative() {
		return nil, invalid("unit_price must not be negative")
	}
	c := model.Component{
		ServiceCenterID:         centerID,
		Name:                    req.Name,
		Manufacturer:            req.Manufacturer,
		Supplier:                req.Supplier,
		PartNumber:              req.PartNumber,
		CompatibleManufacturers: datatypes.NewJSONSlice(req.CompatibleManufacturers),
		CompatibleModels:        datatypes.NewJSONSlice(req.CompatibleModels),
		Stock:                   req.Stock,
		Unit:                    req.Unit,
		UnitPrice:               *req.UnitPrice,
		IsActive:                true,
	}
	if c.Unit == "" {
		c.Unit = "pcs"
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if err := s.components.Create(ctx, &c); err != nil {
		return nil, err
	}
	return toComponentResponse(&c), nil
}

func (s *componentService) Update(ctx context.Context, centerID, id uint, req dto.UpdateComponentRequest) (*dto.ComponentResponse, error) {
	c, err := s.findOwned(ctx, centerID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Manufacturer != nil {
		c.Manufacturer = *req.Manufacturer
	}
	if req.Supplier != nil {
		c.Supplier = req.Supplier
	}
	if req.PartNumber != nil {
		c.PartNumber = req.PartNumber
	}
	if req.CompatibleManufacturers != nil {
		c.CompatibleManufacturers = datatypes.NewJSONSlice(*req.CompatibleManufacturers)
	}
	if req.CompatibleModels != nil {
		c.CompatibleModels = datatypes.NewJSONSlice(*req.CompatibleModels)
	}
	if req.Stock != nil {
		c.Stock = *req.Stock
	}
	if req.Unit != nil {
		c.Unit = *req.Unit
	}
	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			return nil, invalid("unit_price must not be negative")
		}
		c.UnitPrice = *req.UnitPrice
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.components.Update(ctx, c); err != nil {
		return nil, err
	}
	return toComponentResponse(c), nil
}

func (s *componentService) GetByID(ctx context.Context, centerID, id uint) (*dto.ComponentResponse, error) {
	c, err := s.findOwned(ctx, centerID, id)
	if err != nil {
		return nil, err
	}
	return toComponentResponse(c), nil
}

func (s *componentService) List(ctx context.Context, centerID uint, filter dto.ComponentFilter) (*dto.ComponentListResponse, error) {
	components, total, err := s.components.List(ctx, centerID, filter)
	if err != nil {
		return nil, err
	}
	resp := dto.ComponentListResponse{
		Data:  make([]dto.ComponentResponse, 0, len(components)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range components {
		resp.Data = append(resp.Data, *toComponentResponse(&components[i]))
	}
	return &resp, nil
}

func (s *componentService) Delete(ctx context.Context, centerID, id uint) error {
	if _, err := s.findOwned(ctx, centerID, id); err != nil {
		return err
	}
	return s.components.SoftDelete(ctx, id)
}

func (s *componentService) findOwned(ctx context.Context, centerID, id uint) (*model.Component, error) {
	c, err := s.components.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if c.ServiceCenterID != centerID {
		return nil, ErrForbidden
	}
	return c, nil
}

func toComponentResponse(c *model.Component) *dto.ComponentResponse {
	return &dto.ComponentResponse{
		ID:                      c.ID,
		ServiceCenterID:         c.ServiceCenterID,
		Name:                    c.Name,
		Manufacturer:            c.Manufacturer,
		Supplier:                c.Supplier,
		PartNumber:              c.PartNumber,
		CompatibleManufacturers: []string(c.CompatibleManufacturers),
		CompatibleModels:        []string(c.CompatibleModels),
		Stock:                   c.Stock,
		Unit:                    c.Unit,
		UnitPrice:               c.UnitPrice,
		IsActive:                c.IsActive,
	}
}
