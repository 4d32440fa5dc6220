package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veloservice/internal/dto"
	"veloservice/internal/model"
	"veloservice/internal/service"
)

func buildRequestSvc() (service.ServiceRequestService, *stubRequestRepo, *stubCenterRepo, *stubWorkshopRepo) {
	requests := newStubRequestRepo()
	centers := newStubCenterRepo()
	workshops := newStubWorkshopRepo()
	svc := service.NewServiceRequestService(requests, centers, workshops, nil)
	return svc, requests, centers, workshops
}

func seedCenter(r *stubCenterRepo, name string) *model.ServiceCenter {
	sc := &model.ServiceCenter{
		Email:        name + "@example.com",
		PasswordHash: "x",
		Name:         name,
		Address:      "Pushkina 10",
	}
	_ = r.Create(context.Background(), sc)
	return sc
}

func TestServiceRequestCreate(t *testing.T) {
	svc, _, centers, workshops := buildRequestSvc()
	ctx := context.Background()

	center := seedCenter(centers, "VeloFix")
	ws := seedWorkshopService(workshops, center.ID, "Tune-up", 50)

	resp, err := svc.Create(ctx, 7, dto.CreateServiceRequestRequest{
		ServiceCenterID:    center.ID,
		WorkshopServiceID:  &ws.ID,
		BikeManufacturer:   "Trek",
		BikeModel:          "Marlin 7",
		ProblemDescription: "Shifting skips under load",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusNew, resp.Status)
	assert.Equal(t, uint(7), resp.UserID)
	require.NotNil(t, resp.WorkshopServiceID)
	assert.Equal(t, ws.ID, *resp.WorkshopServiceID)
}

func TestServiceRequestCreateValidatesReferences(t *testing.T) {
	svc, _, centers, workshops := buildRequestSvc()
	ctx := context.Background()

	center := seedCenter(centers, "VeloFix")
	foreign := seedWorkshopService(workshops, center.ID+1, "Foreign tune-up", 50)

	_, err := svc.Create(ctx, 7, dto.CreateServiceRequestRequest{
		ServiceCenterID:    999,
		BikeManufacturer:   "Trek",
		BikeModel:          "Marlin 7",
		ProblemDescription: "Broken spoke",
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "service center not found")

	_, err = svc.Create(ctx, 7, dto.CreateServiceRequestRequest{
		ServiceCenterID:    center.ID,
		WorkshopServiceID:  &foreign.ID,
		BikeManufacturer:   "Trek",
		BikeModel:          "Marlin 7",
		ProblemDescription: "Broken spoke",
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "workshop service does not belong to the chosen service center")
}

func TestServiceRequestEditOnlyWhileNew(t *testing.T) {
	svc, _, centers, _ := buildRequestSvc()
	ctx := context.Background()

	center := seedCenter(centers, "VeloFix")
	created, err := svc.Create(ctx, 7, dto.CreateServiceRequestRequest{
		ServiceCenterID:    center.ID,
		BikeManufacturer:   "Trek",
		BikeModel:          "Marlin 7",
		ProblemDescription: "Broken spoke",
	})
	require.NoError(t, err)

	// owner edits while still new
	updated, err := svc.Update(ctx, 7, created.ID, dto.UpdateServiceRequestRequest{
		ProblemDescription: ptr("Broken spoke, rear wheel"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Broken spoke, rear wheel", updated.ProblemDescription)

	// another user may not
	_, err = svc.Update(ctx, 8, created.ID, dto.UpdateServiceRequestRequest{BikeModel: ptr("X-Caliber")})
	assert.ErrorIs(t, err, service.ErrForbidden)

	// once taken into work, edits are locked
	_, err = svc.UpdateStatus(ctx, center.ID, created.ID, dto.UpdateRequestStatusRequest{Status: model.RequestStatusInProgress})
	require.NoError(t, err)

	_, err = svc.Update(ctx, 7, created.ID, dto.UpdateServiceRequestRequest{BikeModel: ptr("X-Caliber")})
	require.Error(t, err)
	assert.ErrorContains(t, err, "request can no longer be edited")
}

func TestServiceRequestStatusByCenterOnly(t *testing.T) {
	svc, _, centers, _ := buildRequestSvc()
	ctx := context.Background()

	center := seedCenter(centers, "VeloFix")
	created, err := svc.Create(ctx, 7, dto.CreateServiceRequestRequest{
		ServiceCenterID:    center.ID,
		BikeManufacturer:   "Trek",
		BikeModel:          "Marlin 7",
		ProblemDescription: "Broken spoke",
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, center.ID+1, created.ID, dto.UpdateRequestStatusRequest{Status: model.RequestStatusDone})
	assert.ErrorIs(t, err, service.ErrForbidden)

	done, err := svc.UpdateStatus(ctx, center.ID, created.ID, dto.UpdateRequestStatusRequest{Status: model.RequestStatusDone})
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusDone, done.Status)
}

func TestServiceRequestVisibility(t *testing.T) {
	svc, _, centers, _ := buildRequestSvc()
	ctx := context.Background()

	center := seedCenter(centers, "VeloFix")
	created, err := svc.Create(ctx, 7, dto.CreateServiceRequestRequest{
		ServiceCenterID:    center.ID,
		BikeManufacturer:   "Trek",
		BikeModel:          "Marlin 7",
		ProblemDescription: "Broken spoke",
	})
	require.NoError(t, err)

	ownerID := uint(7)
	_, err = svc.GetByID(ctx, &ownerID, nil, created.ID)
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, nil, &center.ID, created.ID)
	assert.NoError(t, err)

	strangerID := uint(8)
	_, err = svc.GetByID(ctx, &strangerID, nil, created.ID)
	assert.ErrorIs(t, err, service.ErrForbidden)

	otherCenter := center.ID + 1
	_, err = svc.GetByID(ctx, nil, &otherCenter, created.ID)
	assert.ErrorIs(t, err, service.ErrForbidden)
}
