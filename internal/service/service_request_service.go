package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"veloservice/internal/dto"
	"veloservice/internal/model"
	"veloservice/internal/repository"
	"veloservice/internal/worker"
)

// ServiceRequestService handles repair bookings. The requester may edit
// content fields only while the request is still in its initial status;
// status itself is changed exclusively by the service center.
type ServiceRequestService interface {
	Create(ctx context.Context, userID uint, req dto.CreateServiceRequestRequest) (*dto.ServiceRequestResponse, error)
	Update(ctx context.Context, userID, id uint, req dto.UpdateServiceRequestRequest) (*dto.ServiceRequestResponse, error)
	UpdateStatus(ctx context.Context, centerID, id uint, req dto.UpdateRequestStatusRequest) (*dto.ServiceRequestResponse, error)
	GetByID(ctx context.Context, claimsUserID, claimsCenterID *uint, id uint) (*dto.ServiceRequestResponse, error)
	ListByUser(ctx context.Context, userID uint, filter dto.ServiceRequestFilter) (*dto.ServiceRequestListResponse, error)
	ListByCenter(ctx context.Context, centerID uint, filter dto.ServiceRequestFilter) (*dto.ServiceRequestListResponse, error)
}

type serviceRequestService struct {
	requests   repository.ServiceRequestRepository
	centers    repository.ServiceCenterRepository
	services   repository.WorkshopServiceRepository
	dispatcher *worker.Dispatcher
}

func NewServiceRequestService(requests repository.ServiceRequestRepository, centers repository.ServiceCenterRepository, services repository.WorkshopServiceRepository, dispatcher *worker.Dispatcher) ServiceRequestService {
	return &serviceRequestService{
		requests:   requests,
		centers:    centers,
		services:   services,
		dispatcher: dispatcher,
	}
}

func (s *serviceRequestService) Create(ctx context.Context, userID uint, req dto.CreateServiceRequestRequest) (*dto.ServiceRequestResponse, error) {
	if _, err := s.centers.FindByID(ctx, req.ServiceCenterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid("service center not found")
		}
		return nil, err
	}
	if err := s.checkWorkshopService(ctx, req.ServiceCenterID, req.WorkshopServiceID); err != nil {
		return nil, err
	}

	sr := model.ServiceRequest{
		UserID:             userID,
		ServiceCenterID:    req.ServiceCenterID,
		WorkshopServiceID:  req.WorkshopServiceID,
		BikeManufacturer:   req.BikeManufacturer,
		BikeModel:          req.BikeModel,
		ProblemDescription: req.ProblemDescription,
		PreferredDate:      req.PreferredDate,
		Status:             model.RequestStatusNew,
	}
	if err := s.requests.Create(ctx, &sr); err != nil {
		return nil, err
	}

	full, err := s.requests.FindByID(ctx, sr.ID)
	if err != nil {
		return nil, err
	}
	return toServiceRequestResponse(full), nil
}

func (s *serviceRequestService) Update(ctx context.Context, userID, id uint, req dto.UpdateServiceRequestRequest) (*dto.ServiceRequestResponse, error) {
	sr, err := s.requests.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if sr.UserID != userID {
		return nil, ErrForbidden
	}
	if sr.Status != model.RequestStatusNew {
		return nil, invalid("request can no longer be edited")
	}

	if req.WorkshopServiceID != nil {
		if err := s.checkWorkshopService(ctx, sr.ServiceCenterID, req.WorkshopServiceID); err != nil {
			return nil, err
		}
		sr.WorkshopServiceID = req.WorkshopServiceID
	}
	if req.BikeManufacturer != nil {
		sr.BikeManufacturer = *req.BikeManufacturer
	}
	if req.BikeModel != nil {
		sr.BikeModel = *req.BikeModel
	}
	if req.ProblemDescription != nil {
		sr.ProblemDescription = *req.ProblemDescription
	}
	if req.PreferredDate != nil {
		sr.PreferredDate = req.PreferredDate
	}

	if err := s.requests.Update(ctx, sr); err != nil {
		return nil, err
	}
	full, err := s.requests.FindByID(ctx, sr.ID)
	if err != nil {
		return nil, err
	}
	return toServiceRequestResponse(full), nil
}

func (s *serviceRequestService) UpdateStatus(ctx context.Context, centerID, id uint, req dto.UpdateRequestStatusRequest) (*dto.ServiceRequestResponse, error) {
	sr, err := s.requests.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if sr.ServiceCenterID != centerID {
		return nil, ErrForbidden
	}

	sr.Status = req.Status
	if err := s.requests.Update(ctx, sr); err != nil {
		return nil, err
	}

	if sr.User != nil && sr.User.Email != "" {
		s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
			ToEmail: sr.User.Email,
			Subject: fmt.Sprintf("Service request #%d update", sr.ID),
			Body:    fmt.Sprintf("The status of your service request #%d changed to %q.", sr.ID, sr.Status),
		})
	}
	return toServiceRequestResponse(sr), nil
}

func (s *serviceRequestService) GetByID(ctx context.Context, claimsUserID, claimsCenterID *uint, id uint) (*dto.ServiceRequestResponse, error) {
	sr, err := s.requests.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	switch {
	case claimsUserID != nil && *claimsUserID == sr.UserID:
	case claimsCenterID != nil && *claimsCenterID == sr.ServiceCenterID:
	default:
		return nil, ErrForbidden
	}
	return toServiceRequestResponse(sr), nil
}

func (s *serviceRequestService) ListByUser(ctx context.Context, userID uint, filter dto.ServiceRequestFilter) (*dto.ServiceRequestListResponse, error) {
	requests, total, err := s.requests.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return toServiceRequestListResponse(requests, total, filter), nil
}

func (s *serviceRequestService) ListByCenter(ctx context.Context, centerID uint, filter dto.ServiceRequestFilter) (*dto.ServiceRequestListResponse, error) {
	requests, total, err := s.requests.ListByCenter(ctx, centerID, filter)
	if err != nil {
		return nil, err
	}
	return toServiceRequestListResponse(requests, total, filter), nil
}

// checkWorkshopService verifies the optional referenced service exists and is
// offered by the chosen center.
func (s *serviceRequestService) checkWorkshopService(ctx context.Context, centerID uint, serviceID *uint) error {
	if serviceID == nil {
		return nil
	}
	ws, err := s.services.FindByID(ctx, *serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalid("workshop service not found")
		}
		return err
	}
	if ws.ServiceCenterID != centerID {
		return invalid("workshop service does not belong to the chosen service center")
	}
	return nil
}

func toServiceRequestResponse(sr *model.ServiceRequest) *dto.ServiceRequestResponse {
	resp := dto.ServiceRequestResponse{
		ID:                 sr.ID,
		UserID:             sr.UserID,
		ServiceCenterID:    sr.ServiceCenterID,
		WorkshopServiceID:  sr.WorkshopServiceID,
		BikeManufacturer:   sr.BikeManufacturer,
		BikeModel:          sr.BikeModel,
		ProblemDescription: sr.ProblemDescription,
		PreferredDate:      sr.PreferredDate,
		Status:             sr.Status,
		CreatedAt:          sr.CreatedAt,
	}
	if sr.WorkshopService != nil {
		name := sr.WorkshopService.Name
		resp.WorkshopService = &name
	}
	return &resp
}

func toServiceRequestListResponse(requests []model.ServiceRequest, total int64, filter dto.ServiceRequestFilter) *dto.ServiceRequestListResponse {
	resp := dto.ServiceRequestListResponse{
		Data:  make([]dto.ServiceRequestResponse, 0, len(requests)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range requests {
		resp.Data = append(resp.Data, *toServiceRequestResponse(&requests[i]))
	}
	return &resp
}
