package tests

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veloservice/internal/dto"
	"veloservice/internal/model"
	"veloservice/internal/service"
)

func ptr[T any](v T) *T { return &v }

func buildPriceListSvc() (service.PriceListService, *stubPriceListRepo, *stubWorkshopRepo, *stubComponentRepo, *stubProductRepo) {
	lists := newStubPriceListRepo()
	workshops := newStubWorkshopRepo()
	components := newStubComponentRepo()
	products := newStubProductRepo()
	resolver := service.NewItemResolver(workshops, components, products)
	return service.NewPriceListService(lists, resolver), lists, workshops, components, products
}

func TestPriceListCreateResolvesReferences(t *testing.T) {
	svc, _, workshops, components, products := buildPriceListSvc()
	ctx := context.Background()

	ws := seedWorkshopService(workshops, 1, "Tune-up", 50)
	comp := seedComponent(components, 1, "Brake pads", 12.5)
	prod := seedProduct(products, 1, "Chain lube", 8.99, 20)

	resp, err := svc.Create(ctx, 1, dto.CreatePriceListRequest{
		Name:     "Summer price list",
		ListType: model.ListTypeCombined,
		Items: &[]dto.PriceListItemInput{
			{ItemType: model.ItemTypeService, ReferenceID: &ws.ID},
			{ItemType: model.ItemTypeComponent, ReferenceID: &comp.ID},
			{ItemType: model.ItemTypeProduct, ReferenceID: &prod.ID},
			{ItemType: model.ItemTypeCustom, ItemName: ptr("Pickup"), UnitPrice: ptr(decimal.NewFromInt(15))},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 4)

	// the re-read returns items sorted by name, not in input order
	names := make([]string, 0, len(resp.Items))
	for _, it := range resp.Items {
		names = append(names, it.ItemName)
	}
	assert.Equal(t, []string{"Brake pads", "Chain lube", "Pickup", "Tune-up"}, names)

	// snapshots default from the referenced entities
	assert.Equal(t, "Brake pads", resp.Items[0].ItemName)
	require.NotNil(t, resp.Items[0].Unit)
	assert.Equal(t, "pcs", *resp.Items[0].Unit)

	assert.Equal(t, "Chain lube", resp.Items[1].ItemName)
	assert.True(t, resp.Items[1].UnitPrice.Equal(decimal.NewFromFloat(8.99)))

	assert.Equal(t, "Pickup", resp.Items[2].ItemName)
	assert.Nil(t, resp.Items[2].ReferenceID)

	assert.Equal(t, "Tune-up", resp.Items[3].ItemName)
	assert.True(t, resp.Items[3].UnitPrice.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, ws.DurationMinutes, resp.Items[3].DurationMinutes)
}

func TestPriceListExplicitInputWinsOverSnapshot(t *testing.T) {
	svc, _, workshops, _, _ := buildPriceListSvc()
	ctx := context.Background()

	ws := seedWorkshopService(workshops, 1, "Wheel truing", 30)

	resp, err := svc.Create(ctx, 1, dto.CreatePriceListRequest{
		Name:     "Promo",
		ListType: model.ListTypeServices,
		Items: &[]dto.PriceListItemInput{
			{
				ItemType:    model.ItemTypeService,
				ReferenceID: &ws.ID,
				ItemName:    ptr("Wheel truing (promo)"),
				UnitPrice:   ptr(decimal.NewFromInt(25)),
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Wheel truing (promo)", resp.Items[0].ItemName)
	assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.NewFromInt(25)))
}

func TestPriceListZeroPriceAccepted(t *testing.T) {
	svc, _, _, _, _ := buildPriceListSvc()

	resp, err := svc.Create(context.Background(), 1, dto.CreatePriceListRequest{
		Name:     "Free checks",
		ListType: model.ListTypeServices,
		Items: &[]dto.PriceListItemInput{
			{ItemType: model.ItemTypeCustom, ItemName: ptr("Safety check"), UnitPrice: ptr(decimal.Zero)},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Items[0].UnitPrice.IsZero())
}

func TestPriceListRejectsInvalidItems(t *testing.T) {
	svc, _, _, _, _ := buildPriceListSvc()
	ctx := context.Background()

	cases := []struct {
		name    string
		item    dto.PriceListItemInput
		wantErr string
	}{
		{
			name:    "unknown type",
			item:    dto.PriceListItemInput{ItemType: "bundle"},
			wantErr: `unknown item type "bundle"`,
		},
		{
			name:    "reference missing",
			item:    dto.PriceListItemInput{ItemType: model.ItemTypeService},
			wantErr: "reference_id is required for service items",
		},
		{
			name:    "custom without name",
			item:    dto.PriceListItemInput{ItemType: model.ItemTypeCustom, UnitPrice: ptr(decimal.NewFromInt(5))},
			wantErr: "custom items require item_name",
		},
		{
			name:    "custom without price",
			item:    dto.PriceListItemInput{ItemType: model.ItemTypeCustom, ItemName: ptr("Courier")},
			wantErr: "custom items require unit_price",
		},
		{
			name: "negative price",
			item: dto.PriceListItemInput{
				ItemType:  model.ItemTypeCustom,
				ItemName:  ptr("Courier"),
				UnitPrice: ptr(decimal.NewFromInt(-1)),
			},
			wantErr: "unit_price must not be negative",
		},
		{
			name: "zero duration",
			item: dto.PriceListItemInput{
				ItemType:        model.ItemTypeCustom,
				ItemName:        ptr("Courier"),
				UnitPrice:       ptr(decimal.NewFromInt(5)),
				DurationMinutes: ptr(0),
			},
			wantErr: "duration_minutes must be positive",
		},
		{
			name: "negative warranty",
			item: dto.PriceListItemInput{
				ItemType:       model.ItemTypeCustom,
				ItemName:       ptr("Courier"),
				UnitPrice:      ptr(decimal.NewFromInt(5)),
				WarrantyMonths: ptr(-1),
			},
			wantErr: "warranty_months must not be negative",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, 1, dto.CreatePriceListRequest{
				Name:     "Broken",
				ListType: model.ListTypeCombined,
				Items:    &[]dto.PriceListItemInput{tc.item},
			})
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestPriceListRejectsForeignReferences(t *testing.T) {
	svc, lists, workshops, _, _ := buildPriceListSvc()
	ctx := context.Background()

	// belongs to center 2, caller is center 1
	ws := seedWorkshopService(workshops, 2, "Fork service", 80)

	_, err := svc.Create(ctx, 1, dto.CreatePriceListRequest{
		Name:     "Stolen catalog",
		ListType: model.ListTypeServices,
		Items: &[]dto.PriceListItemInput{
			{ItemType: model.ItemTypeService, ReferenceID: &ws.ID},
		},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "not all referenced services belong to the service center")
	assert.Empty(t, lists.lists, "nothing may be persisted when resolution fails")
}

func TestPriceListDefaultExclusivity(t *testing.T) {
	svc, lists, _, _, _ := buildPriceListSvc()
	ctx := context.Background()

	first, err := svc.Create(ctx, 1, dto.CreatePriceListRequest{
		Name:      "Winter",
		ListType:  model.ListTypeServices,
		IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, first.IsDefault)

	second, err := svc.Create(ctx, 1, dto.CreatePriceListRequest{
		Name:      "Spring",
		ListType:  model.ListTypeServices,
		IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, second.IsDefault)

	reread, err := svc.GetByID(ctx, 1, first.ID)
	require.NoError(t, err)
	assert.False(t, reread.IsDefault, "previous default must be cleared")

	// a default in another tenant is untouched
	other, err := svc.Create(ctx, 2, dto.CreatePriceListRequest{
		Name:      "Other tenant",
		ListType:  model.ListTypeServices,
		IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, other.IsDefault)
	assert.True(t, lists.lists[second.ID].IsDefault)
}

func TestPriceListUpdateItemsTriState(t *testing.T) {
	svc, _, _, components, _ := buildPriceListSvc()
	ctx := context.Background()

	comp := seedComponent(components, 1, "Cassette", 45)
	created, err := svc.Create(ctx, 1, dto.CreatePriceListRequest{
		Name:     "Parts",
		ListType: model.ListTypeComponents,
		Items: &[]dto.PriceListItemInput{
			{ItemType: model.ItemTypeComponent, ReferenceID: &comp.ID},
		},
	})
	require.NoError(t, err)
	require.Len(t, created.Items, 1)

	// nil Items: rename only, items untouched
	renamed, err := svc.Update(ctx, 1, created.ID, dto.UpdatePriceListRequest{Name: ptr("Parts 2024")})
	require.NoError(t, err)
	assert.Equal(t, "Parts 2024", renamed.Name)
	assert.Len(t, renamed.Items, 1)

	// empty slice: delete all items
	emptied, err := svc.Update(ctx, 1, created.ID, dto.UpdatePriceListRequest{Items: &[]dto.PriceListItemInput{}})
	require.NoError(t, err)
	assert.Empty(t, emptied.Items)
}

func TestPriceListUpdateReplacesItems(t *testing.T) {
	svc, _, _, components, _ := buildPriceListSvc()
	ctx := context.Background()

	old := seedComponent(components, 1, "Old part", 10)
	neu := seedComponent(components, 1, "New part", 20)

	created, err := svc.Create(ctx, 1, dto.CreatePriceListRequest{
		Name:     "Parts",
		ListType: model.ListTypeComponents,
		Items: &[]dto.PriceListItemInput{
			{ItemType: model.ItemTypeComponent, ReferenceID: &old.ID},
		},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, 1, created.ID, dto.UpdatePriceListRequest{
		Items: &[]dto.PriceListItemInput{
			{ItemType: model.ItemTypeComponent, ReferenceID: &neu.ID},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "New part", updated.Items[0].ItemName)
}

func TestPriceListUpdateSameItemsIsIdempotent(t *testing.T) {
	svc, _, workshops, components, _ := buildPriceListSvc()
	ctx := context.Background()

	ws := seedWorkshopService(workshops, 1, "Bleed brakes", 55)
	comp := seedComponent(components, 1, "Brake fluid", 9)

	items := []dto.PriceListItemInput{
		{ItemType: model.ItemTypeService, ReferenceID: &ws.ID},
		{ItemType: model.ItemTypeComponent, ReferenceID: &comp.ID},
	}

	created, err := svc.Create(ctx, 1, dto.CreatePriceListRequest{
		Name:     "Brakes",
		ListType: model.ListTypeCombined,
		Items:    &items,
	})
	require.NoError(t, err)

	first, err := svc.Update(ctx, 1, created.ID, dto.UpdatePriceListRequest{Items: &items})
	require.NoError(t, err)
	second, err := svc.Update(ctx, 1, created.ID, dto.UpdatePriceListRequest{Items: &items})
	require.NoError(t, err)

	require.Len(t, second.Items, len(created.Items))
	assert.Equal(t, "Brake fluid", second.Items[0].ItemName)
	assert.Equal(t, "Bleed brakes", second.Items[1].ItemName)
	for i := range second.Items {
		assert.Equal(t, first.Items[i].ItemName, second.Items[i].ItemName)
		assert.True(t, first.Items[i].UnitPrice.Equal(second.Items[i].UnitPrice))
	}
}

func TestPriceListTenantIsolation(t *testing.T) {
	svc, _, _, _, _ := buildPriceListSvc()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, dto.CreatePriceListRequest{
		Name:     "Mine",
		ListType: model.ListTypeServices,
	})
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, 2, created.ID)
	assert.ErrorIs(t, err, service.ErrForbidden)

	_, err = svc.Update(ctx, 2, created.ID, dto.UpdatePriceListRequest{Name: ptr("Hijacked")})
	assert.ErrorIs(t, err, service.ErrForbidden)

	err = svc.Delete(ctx, 2, created.ID)
	assert.ErrorIs(t, err, service.ErrForbidden)

	_, err = svc.GetByID(ctx, 1, 999)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestPriceListGetDefault(t *testing.T) {
	svc, _, _, _, _ := buildPriceListSvc()
	ctx := context.Background()

	_, err := svc.GetDefault(ctx, 1)
	assert.ErrorIs(t, err, service.ErrNotFound)

	created, err := svc.Create(ctx, 1, dto.CreatePriceListRequest{
		Name:      "Storefront",
		ListType:  model.ListTypeCombined,
		IsDefault: true,
	})
	require.NoError(t, err)

	got, err := svc.GetDefault(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}
