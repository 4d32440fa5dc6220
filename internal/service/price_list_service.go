package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"veloservice/internal/dto"
	"veloservice/internal/model"
	"veloservice/internal/repository"
)

// PriceListService composes price lists out of heterogeneous items. Writes
// resolve references up front and then run in a single transaction, so a
// list and its items land together or not at all.
type PriceListService interface {
	Create(ctx context.Context, centerID uint, req dto.CreatePriceListRequest) (*dto.PriceListResponse, error)
	Update(ctx context.Context, centerID, id uint, req dto.UpdatePriceListRequest) (*dto.PriceListResponse, error)
	GetByID(ctx context.Context, centerID, id uint) (*dto.PriceListResponse, error)
	List(ctx context.Context, centerID uint, filter dto.PriceListFilter) (*dto.PriceListListResponse, error)
	Delete(ctx context.Context, centerID, id uint) error
	// GetDefault serves the public storefront view of a tenant's default list.
	GetDefault(ctx context.Context, centerID uint) (*dto.PriceListResponse, error)
}

type priceListService struct {
	lists    repository.PriceListRepository
	resolver *ItemResolver
}

func NewPriceListService(lists repository.PriceListRepository, resolver *ItemResolver) PriceListService {
	return &priceListService{lists: lists, resolver: resolver}
}

func (s *priceListService) Create(ctx context.Context, centerID uint, req dto.CreatePriceListRequest) (*dto.PriceListResponse, error) {
	var resolved []model.PriceListItem
	if req.Items != nil {
		var err error
		resolved, err = s.resolver.Resolve(ctx, centerID, *req.Items)
		if err != nil {
			return nil, err
		}
	}

	pl := model.PriceList{
		ServiceCenterID: centerID,
		Name:            req.Name,
		Description:     req.Description,
		ListType:        req.ListType,
		EffectiveFrom:   req.EffectiveFrom,
		EffectiveTo:     req.EffectiveTo,
		IsDefault:       req.IsDefault,
		Items:           resolved,
	}

	err := runTx(ctx, s.lists.DB(), func(tx *gorm.DB) error {
		if pl.IsDefault {
			if err := s.lists.ClearDefaultTx(tx, centerID, 0); err != nil {
				return err
			}
		}
		return s.lists.CreateTx(tx, &pl)
	})
	if err != nil {
		return nil, err
	}

	full, err := s.lists.FindByID(ctx, pl.ID)
	if err != nil {
		return nil, err
	}
	return toPriceListResponse(full), nil
}

func (s *priceListService) Update(ctx context.Context, centerID, id uint, req dto.UpdatePriceListRequest) (*dto.PriceListResponse, error) {
	pl, err := s.findOwned(ctx, centerID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		pl.Name = *req.Name
	}
	if req.Description != nil {
		pl.Description = req.Description
	}
	if req.ListType != nil {
		pl.ListType = *req.ListType
	}
	if req.EffectiveFrom != nil {
		pl.EffectiveFrom = req.EffectiveFrom
	}
	if req.EffectiveTo != nil {
		pl.EffectiveTo = req.EffectiveTo
	}
	if req.IsDefault != nil {
		pl.IsDefault = *req.IsDefault
	}

	// nil means leave the existing items alone; an empty slice replaces them
	// with nothing.
	var resolved []model.PriceListItem
	if req.Items != nil {
		resolved, err = s.resolver.Resolve(ctx, centerID, *req.Items)
		if err != nil {
			return nil, err
		}
	}

	err = runTx(ctx, s.lists.DB(), func(tx *gorm.DB) error {
		if pl.IsDefault {
			if err := s.lists.ClearDefaultTx(tx, centerID, pl.ID); err != nil {
				return err
			}
		}
		if err := s.lists.UpdateTx(tx, pl); err != nil {
			return err
		}
		if req.Items != nil {
			return s.lists.ReplaceItemsTx(tx, pl.ID, resolved)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	full, err := s.lists.FindByID(ctx, pl.ID)
	if err != nil {
		return nil, err
	}
	return toPriceListResponse(full), nil
}

func (s *priceListService) GetByID(ctx context.Context, centerID, id uint) (*dto.PriceListResponse, error) {
	pl, err := s.findOwned(ctx, centerID, id)
	if err != nil {
		return nil, err
	}
	return toPriceListResponse(pl), nil
}

func (s *priceListService) List(ctx context.Context, centerID uint, filter dto.PriceListFilter) (*dto.PriceListListResponse, error) {
	lists, total, err := s.lists.List(ctx, centerID, filter)
	if err != nil {
		return nil, err
	}
	resp := dto.PriceListListResponse{
		Data:  make([]dto.PriceListResponse, 0, len(lists)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range lists {
		resp.Data = append(resp.Data, *toPriceListResponse(&lists[i]))
	}
	return &resp, nil
}

func (s *priceListService) Delete(ctx context.Context, centerID, id uint) error {
	if _, err := s.findOwned(ctx, centerID, id); err != nil {
		return err
	}
	return s.lists.Delete(ctx, id)
}

func (s *priceListService) GetDefault(ctx context.Context, centerID uint) (*dto.PriceListResponse, error) {
	pl, err := s.lists.FindDefault(ctx, centerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toPriceListResponse(pl), nil
}

func (s *priceListService) findOwned(ctx context.Context, centerID, id uint) (*model.PriceList, error) {
	pl, err := s.lists.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if pl.ServiceCenterID != centerID {
		return nil, ErrForbidden
	}
	return pl, nil
}

func toPriceListResponse(pl *model.PriceList) *dto.PriceListResponse {
	items := make([]dto.PriceListItemResponse, 0, len(pl.Items))
	for _, it := range pl.Items {
		items = append(items, dto.PriceListItemResponse{
			ID:              it.ID,
			ItemType:        it.ItemType,
			ReferenceID:     it.ReferenceID,
			ItemName:        it.ItemName,
			Description:     it.Description,
			Unit:            it.Unit,
			UnitPrice:       it.UnitPrice,
			DurationMinutes: it.DurationMinutes,
			WarrantyMonths:  it.WarrantyMonths,
			IsActive:        it.IsActive,
		})
	}
	return &dto.PriceListResponse{
		ID:              pl.ID,
		ServiceCenterID: pl.ServiceCenterID,
		Name:            pl.Name,
		Description:     pl.Description,
		ListType:        pl.ListType,
		EffectiveFrom:   pl.EffectiveFrom,
		EffectiveTo:     pl.EffectiveTo,
		IsDefault:       pl.IsDefault,
		Items:           items,
	}
}
