package tests

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veloservice/internal/dto"
	"veloservice/internal/service"
)

func buildWorkshopSvc() (service.WorkshopServiceService, *stubWorkshopRepo, *stubComponentRepo) {
	workshops := newStubWorkshopRepo()
	components := newStubComponentRepo()
	return service.NewWorkshopServiceService(workshops, components), workshops, components
}

func TestWorkshopServiceCreateWithUsages(t *testing.T) {
	svc, _, components := buildWorkshopSvc()
	ctx := context.Background()

	pads := seedComponent(components, 1, "Brake pads", 12.5)
	cable := seedComponent(components, 1, "Brake cable", 4)

	resp, err := svc.Create(ctx, 1, dto.CreateWorkshopServiceRequest{
		Name:      "Brake service",
		BasePrice: ptr(decimal.NewFromInt(40)),
		ComponentUsages: &[]dto.ComponentUsageInput{
			{ComponentID: pads.ID, Quantity: 2},
			{ComponentID: cable.ID, Quantity: 1, Unit: "m"},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.ComponentUsages, 2)

	// unit defaults from the component when omitted
	assert.Equal(t, "pcs", resp.ComponentUsages[0].Unit)
	assert.Equal(t, 2, resp.ComponentUsages[0].Quantity)
	assert.Equal(t, "m", resp.ComponentUsages[1].Unit)
	assert.True(t, resp.IsActive)
}

func TestWorkshopServiceRejectsBadUsages(t *testing.T) {
	svc, _, components := buildWorkshopSvc()
	ctx := context.Background()

	mine := seedComponent(components, 1, "Chain", 25)
	foreign := seedComponent(components, 2, "Foreign chain", 25)

	_, err := svc.Create(ctx, 1, dto.CreateWorkshopServiceRequest{
		Name:      "Drivetrain swap",
		BasePrice: ptr(decimal.NewFromInt(60)),
		ComponentUsages: &[]dto.ComponentUsageInput{
			{ComponentID: mine.ID, Quantity: 0},
		},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "component usage 1: quantity must be positive")

	_, err = svc.Create(ctx, 1, dto.CreateWorkshopServiceRequest{
		Name:      "Drivetrain swap",
		BasePrice: ptr(decimal.NewFromInt(60)),
		ComponentUsages: &[]dto.ComponentUsageInput{
			{ComponentID: mine.ID, Quantity: 1},
			{ComponentID: foreign.ID, Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "not all components belong to the service center")
}

func TestWorkshopServiceUpdateUsagesTriState(t *testing.T) {
	svc, _, components := buildWorkshopSvc()
	ctx := context.Background()

	pads := seedComponent(components, 1, "Brake pads", 12.5)
	created, err := svc.Create(ctx, 1, dto.CreateWorkshopServiceRequest{
		Name:      "Brake service",
		BasePrice: ptr(decimal.NewFromInt(40)),
		ComponentUsages: &[]dto.ComponentUsageInput{
			{ComponentID: pads.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	// nil usages: price changes, usages stay
	repriced, err := svc.Update(ctx, 1, created.ID, dto.UpdateWorkshopServiceRequest{
		BasePrice: ptr(decimal.NewFromInt(45)),
	})
	require.NoError(t, err)
	assert.True(t, repriced.BasePrice.Equal(decimal.NewFromInt(45)))
	assert.Len(t, repriced.ComponentUsages, 1)

	// empty slice: usages removed
	stripped, err := svc.Update(ctx, 1, created.ID, dto.UpdateWorkshopServiceRequest{
		ComponentUsages: &[]dto.ComponentUsageInput{},
	})
	require.NoError(t, err)
	assert.Empty(t, stripped.ComponentUsages)
}

func TestWorkshopServiceUpdateRejectsNegativePrice(t *testing.T) {
	svc, _, _ := buildWorkshopSvc()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, dto.CreateWorkshopServiceRequest{
		Name:      "Basic tune-up",
		BasePrice: ptr(decimal.NewFromInt(30)),
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, 1, created.ID, dto.UpdateWorkshopServiceRequest{
		BasePrice: ptr(decimal.NewFromInt(-5)),
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "base_price must not be negative")
}

func TestWorkshopServiceOwnership(t *testing.T) {
	svc, workshops, _ := buildWorkshopSvc()
	ctx := context.Background()

	ws := seedWorkshopService(workshops, 1, "Fork service", 80)

	_, err := svc.Update(ctx, 2, ws.ID, dto.UpdateWorkshopServiceRequest{Name: ptr("Hijacked")})
	assert.ErrorIs(t, err, service.ErrForbidden)

	err = svc.Delete(ctx, 2, ws.ID)
	assert.ErrorIs(t, err, service.ErrForbidden)

	_, err = svc.GetByID(ctx, 999)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestWorkshopServiceDeleteIsSoft(t *testing.T) {
	svc, workshops, _ := buildWorkshopSvc()
	ctx := context.Background()

	ws := seedWorkshopService(workshops, 1, "Hub overhaul", 55)
	require.NoError(t, svc.Delete(ctx, 1, ws.ID))

	// row survives, only deactivated
	got, err := svc.GetByID(ctx, ws.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}
