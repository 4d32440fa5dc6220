package service

import (
	"context"

	"github.com/samber/lo"

	"veloservice/internal/dto"
	"veloservice/internal/model"
	"veloservice/internal/repository"
)

// ItemResolver turns raw price-list item specifications into persistable
// rows. Validation runs in a fixed order — item type, numeric ranges, then
// reference existence — so the first failure reported is deterministic, and
// any failure rejects the whole batch.
type ItemResolver struct {
	services   repository.WorkshopServiceRepository
	components repository.ComponentRepository
	products   repository.ProductRepository
}

func NewItemResolver(services repository.WorkshopServiceRepository, components repository.ComponentRepository, products repository.ProductRepository) *ItemResolver {
	return &ItemResolver{services: services, components: components, products: products}
}

// Resolve validates every input against centerID's catalog and returns the
// denormalized item rows. Snapshot fields (name, price, description, unit,
// duration) missing from the input are copied from the referenced entity;
// explicit input values always win.
func (r *ItemResolver) Resolve(ctx context.Context, centerID uint, inputs []dto.PriceListItemInput) ([]model.PriceListItem, error) {
	for i, in := range inputs {
		switch in.ItemType {
		case model.ItemTypeService, model.ItemTypeComponent, model.ItemTypeProduct:
			if in.ReferenceID == nil {
				return nil, invalidf("item %d: reference_id is required for %s items", i+1, in.ItemType)
			}
		case model.ItemTypeCustom:
			if in.ItemName == nil || *in.ItemName == "" {
				return nil, invalidf("item %d: custom items require item_name", i+1)
			}
			if in.UnitPrice == nil {
				return nil, invalidf("item %d: custom items require unit_price", i+1)
			}
		default:
			return nil, invalidf("item %d: unknown item type %q", i+1, in.ItemType)
		}

		if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
			return nil, invalidf("item %d: unit_price must not be negative", i+1)
		}
		if in.DurationMinutes != nil && *in.DurationMinutes <= 0 {
			return nil, invalidf("item %d: duration_minutes must be positive", i+1)
		}
		if in.WarrantyMonths != nil && *in.WarrantyMonths < 0 {
			return nil, invalidf("item %d: warranty_months must not be negative", i+1)
		}
	}

	serviceByID, err := r.lookupServices(ctx, centerID, referenceIDs(inputs, model.ItemTypeService))
	if err != nil {
		return nil, err
	}
	componentByID, err := r.lookupComponents(ctx, centerID, referenceIDs(inputs, model.ItemTypeComponent))
	if err != nil {
		return nil, err
	}
	productByID, err := r.lookupProducts(ctx, centerID, referenceIDs(inputs, model.ItemTypeProduct))
	if err != nil {
		return nil, err
	}

	items := make([]model.PriceListItem, 0, len(inputs))
	for i, in := range inputs {
		item := model.PriceListItem{
			ItemType:        in.ItemType,
			ReferenceID:     in.ReferenceID,
			Description:     in.Description,
			Unit:            in.Unit,
			DurationMinutes: in.DurationMinutes,
			WarrantyMonths:  in.WarrantyMonths,
			IsActive:        true,
		}
		if in.ItemName != nil {
			item.ItemName = *in.ItemName
		}
		if in.UnitPrice != nil {
			item.UnitPrice = *in.UnitPrice
		}
		if in.IsActive != nil {
			item.IsActive = *in.IsActive
		}

		switch in.ItemType {
		case model.ItemTypeService:
			ws := serviceByID[*in.ReferenceID]
			fillFromService(&item, in, ws)
		case model.ItemTypeComponent:
			comp := componentByID[*in.ReferenceID]
			fillFromComponent(&item, in, comp)
		case model.ItemTypeProduct:
			prod := productByID[*in.ReferenceID]
			fillFromProduct(&item, in, prod)
		}

		if item.ItemName == "" {
			return nil, invalidf("item %d: item name could not be determined", i+1)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *ItemResolver) lookupServices(ctx context.Context, centerID uint, ids []uint) (map[uint]model.WorkshopService, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	found, err := r.services.FindOwned(ctx, ids, centerID)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, invalid("not all referenced services belong to the service center")
	}
	return lo.KeyBy(found, func(ws model.WorkshopService) uint { return ws.ID }), nil
}

func (r *ItemResolver) lookupComponents(ctx context.Context, centerID uint, ids []uint) (map[uint]model.Component, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	found, err := r.components.FindOwned(ctx, ids, centerID)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, invalid("not all referenced components belong to the service center")
	}
	return lo.KeyBy(found, func(c model.Component) uint { return c.ID }), nil
}

func (r *ItemResolver) lookupProducts(ctx context.Context, centerID uint, ids []uint) (map[uint]model.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	found, err := r.products.FindOwned(ctx, ids, centerID)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, invalid("not all referenced products belong to the service center")
	}
	return lo.KeyBy(found, func(p model.Product) uint { return p.ID }), nil
}

// referenceIDs collects the distinct reference ids of one item type.
func referenceIDs(inputs []dto.PriceListItemInput, itemType string) []uint {
	ids := lo.FilterMap(inputs, func(in dto.PriceListItemInput, _ int) (uint, bool) {
		if in.ItemType != itemType || in.ReferenceID == nil {
			return 0, false
		}
		return *in.ReferenceID, true
	})
	return lo.Uniq(ids)
}

func fillFromService(item *model.PriceListItem, in dto.PriceListItemInput, ws model.WorkshopService) {
	if in.ItemName == nil {
		item.ItemName = ws.Name
	}
	if in.UnitPrice == nil {
		item.UnitPrice = ws.BasePrice
	}
	if in.Description == nil {
		item.Description = ws.Description
	}
	if in.DurationMinutes == nil {
		item.DurationMinutes = ws.DurationMinutes
	}
}

func fillFromComponent(item *model.PriceListItem, in dto.PriceListItemInput, comp model.Component) {
	if in.ItemName == nil {
		item.ItemName = comp.Name
	}
	if in.UnitPrice == nil {
		item.UnitPrice = comp.UnitPrice
	}
	if in.Unit == nil {
		unit := comp.Unit
		item.Unit = &unit
	}
}

func fillFromProduct(item *model.PriceListItem, in dto.PriceListItemInput, prod model.Product) {
	if in.ItemName == nil {
		item.ItemName = prod.Name
	}
	if in.UnitPrice == nil {
		item.UnitPrice = prod.Price
	}
	if in.Description == nil {
		item.Description = prod.Description
	}
}
