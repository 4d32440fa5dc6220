package service

import (
	"context"
	"errors"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"veloservice/internal/dto"
	"veloservice/internal/model"
	"veloservice/internal/repository"
)

// WorkshopServiceService manages a tenant's repair offerings together with
// the components they consume. Like price lists, component usages are
// validated up front and written in the same transaction as the service row.
type WorkshopServiceService interface {
	Create(ctx context.Context, centerID uint, req dto.CreateWorkshopServiceRequest) (*dto.WorkshopServiceResponse, error)
	Update(ctx context.Context, centerID, id uint, req dto.UpdateWorkshopServiceRequest) (*dto.WorkshopServiceResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.WorkshopServiceResponse, error)
	List(ctx context.Context, filter dto.WorkshopServiceFilter) (*dto.WorkshopServiceListResponse, error)
	Delete(ctx context.Context, centerID, id uint) error
}

type workshopServiceService struct {
	services   repository.WorkshopServiceRepository
	components repository.ComponentRepository
}

func NewWorkshopServiceService(services repository.WorkshopServiceRepository, components repository.ComponentRepository) WorkshopServiceService {
	return &workshopServiceService{services: services, components: components}
}

func (s *workshopServiceService) Create(ctx context.Context, centerID uint, req dto.CreateWorkshopServiceRequest) (*dto.WorkshopServiceResponse, error) {
	var usages []model.ServiceComponent
	if req.ComponentUsages != nil {
		var err error
		usages, err = s.resolveUsages(ctx, centerID, *req.ComponentUsages)
		if err != nil {
			return nil, err
		}
	}

	ws := model.WorkshopService{
		ServiceCenterID: centerID,
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		BasePrice:       *req.BasePrice,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
		ComponentUsages: usages,
	}
	if req.IsActive != nil {
		ws.IsActive = *req.IsActive
	}

	err := runTx(ctx, s.services.DB(), func(tx *gorm.DB) error {
		return s.services.CreateTx(tx, &ws)
	})
	if err != nil {
		return nil, err
	}

	full, err := s.services.FindByID(ctx, ws.ID)
	if err != nil {
		return nil, err
	}
	return toWorkshopServiceResponse(full), nil
}

func (s *workshopServiceService) Update(ctx context.Context, centerID, id uint, req dto.UpdateWorkshopServiceRequest) (*dto.WorkshopServiceResponse, error) {
	ws, err := s.findOwned(ctx, centerID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		ws.Name = *req.Name
	}
	if req.Description != nil {
		ws.Description = req.Description
	}
	if req.Category != nil {
		ws.Category = req.Category
	}
	if req.BasePrice != nil {
		if req.BasePrice.IsNegative() {
			return nil, invalid("base_price must not be negative")
		}
		ws.BasePrice = *req.BasePrice
	}
	if req.DurationMinutes != nil {
		ws.DurationMinutes = req.DurationMinutes
	}
	if req.IsActive != nil {
		ws.IsActive = *req.IsActive
	}

	var usages []model.ServiceComponent
	if req.ComponentUsages != nil {
		usages, err = s.resolveUsages(ctx, centerID, *req.ComponentUsages)
		if err != nil {
			return nil, err
		}
	}

	err = runTx(ctx, s.services.DB(), func(tx *gorm.DB) error {
		if err := s.services.UpdateTx(tx, ws); err != nil {
			return err
		}
		if req.ComponentUsages != nil {
			return s.services.ReplaceUsagesTx(tx, ws.ID, usages)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	full, err := s.services.FindByID(ctx, ws.ID)
	if err != nil {
		return nil, err
	}
	return toWorkshopServiceResponse(full), nil
}

func (s *workshopServiceService) GetByID(ctx context.Context, id uint) (*dto.WorkshopServiceResponse, error) {
	ws, err := s.services.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toWorkshopServiceResponse(ws), nil
}

func (s *workshopServiceService) List(ctx context.Context, filter dto.WorkshopServiceFilter) (*dto.WorkshopServiceListResponse, error) {
	services, total, err := s.services.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := dto.WorkshopServiceListResponse{
		Data:  make([]dto.WorkshopServiceResponse, 0, len(services)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range services {
		resp.Data = append(resp.Data, *toWorkshopServiceResponse(&services[i]))
	}
	return &resp, nil
}

func (s *workshopServiceService) Delete(ctx context.Context, centerID, id uint) error {
	if _, err := s.findOwned(ctx, centerID, id); err != nil {
		return err
	}
	return s.services.SoftDelete(ctx, id)
}

// resolveUsages checks every referenced component exists and belongs to the
// tenant; one bad reference rejects the whole set.
func (s *workshopServiceService) resolveUsages(ctx context.Context, centerID uint, inputs []dto.ComponentUsageInput) ([]model.ServiceComponent, error) {
	for i, in := range inputs {
		if in.Quantity <= 0 {
			return nil, invalidf("component usage %d: quantity must be positive", i+1)
		}
	}
	if len(inputs) == 0 {
		return []model.ServiceComponent{}, nil
	}

	ids := lo.Uniq(lo.Map(inputs, func(in dto.ComponentUsageInput, _ int) uint { return in.ComponentID }))
	found, err := s.components.FindOwned(ctx, ids, centerID)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, invalid("not all components belong to the service center")
	}
	byID := lo.KeyBy(found, func(c model.Component) uint { return c.ID })

	usages := make([]model.ServiceComponent, 0, len(inputs))
	for _, in := range inputs {
		unit := in.Unit
		if unit == "" {
			unit = byID[in.ComponentID].Unit
		}
		usages = append(usages, model.ServiceComponent{
			ComponentID: in.ComponentID,
			Quantity:    in.Quantity,
			Unit:        unit,
		})
	}
	return usages, nil
}

func (s *workshopServiceService) findOwned(ctx context.Context, centerID, id uint) (*model.WorkshopService, error) {
	ws, err := s.services.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if ws.ServiceCenterID != centerID {
		return nil, ErrForbidden
	}
	return ws, nil
}

func toWorkshopServiceResponse(ws *model.WorkshopService) *dto.WorkshopServiceResponse {
	usages := make([]dto.ComponentUsageResponse, 0, len(ws.ComponentUsages))
	for _, u := range ws.ComponentUsages {
		resp := dto.ComponentUsageResponse{
			ID:          u.ID,
			ComponentID: u.ComponentID,
			Quantity:    u.Quantity,
			Unit:        u.Unit,
		}
		if u.Component != nil {
			resp.ComponentName = u.Component.Name
		}
		usages = append(usages, resp)
	}
	return &dto.WorkshopServiceResponse{
		ID:              ws.ID,
		ServiceCenterID: ws.ServiceCenterID,
		Name:            ws.Name,
		Description:     ws.Description,
		Category:        ws.Category,
		BasePrice:       ws.BasePrice,
		DurationMinutes: ws.DurationMinutes,
		IsActive:        ws.IsActive,
		ComponentUsages: usages,
	}
}
