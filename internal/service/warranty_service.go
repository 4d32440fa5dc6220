package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"veloservice/internal/dto"
	"veloservice/internal/model"
	"veloservice/internal/repository"
	"veloservice/internal/worker"
)

// WarrantyService manages repair warranties and their PDF certificates.
// Certificate rendering is asynchronous: the request enqueues a job and the
// worker records the file path once the PDF exists.
type WarrantyService interface {
	Create(ctx context.Context, centerID uint, req dto.CreateWarrantyRequest) (*dto.WarrantyResponse, error)
	Update(ctx context.Context, centerID, id uint, req dto.UpdateWarrantyRequest) (*dto.WarrantyResponse, error)
	GetByID(ctx context.Context, centerID, id uint) (*dto.WarrantyResponse, error)
	List(ctx context.Context, centerID uint, filter dto.WarrantyFilter) (*dto.WarrantyListResponse, error)
	Delete(ctx context.Context, centerID, id uint) error
	// RequestCertificate enqueues PDF rendering for the warranty.
	RequestCertificate(ctx context.Context, centerID, id uint) error
	// CertificatePath returns the rendered PDF location, ErrNotFound if the
	// certificate has not been generated yet.
	CertificatePath(ctx context.Context, centerID, id uint) (string, error)
}

type warrantyService struct {
	warranties repository.WarrantyRepository
	requests   repository.ServiceRequestRepository
	dispatcher *worker.Dispatcher
}

func NewWarrantyService(warranties repository.WarrantyRepository, requests repository.ServiceRequestRepository, dispatcher *worker.Dispatcher) WarrantyService {
	return &warrantyService{warranties: warranties, requests: requests, dispatcher: dispatcher}
}

func (s *warrantyService) Create(ctx context.Context, centerID uint, req dto.CreateWarrantyRequest) (*dto.WarrantyResponse, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, invalid("end_date must be after start_date")
	}
	if req.ServiceRequestID != nil {
		sr, err := s.requests.FindByID(ctx, *req.ServiceRequestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, invalid("service request not found")
			}
			return nil, err
		}
		if sr.ServiceCenterID != centerID {
			return nil, invalid("service request does not belong to the service center")
		}
	}

	w := model.RepairWarranty{
		ServiceCenterID:  centerID,
		ServiceRequestID: req.ServiceRequestID,
		CustomerName:     req.CustomerName,
		BikeManufacturer: req.BikeManufacturer,
		BikeModel:        req.BikeModel,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Terms:            req.Terms,
		Status:           model.WarrantyStatusActive,
	}
	if err := s.warranties.Create(ctx, &w); err != nil {
		return nil, err
	}
	return toWarrantyResponse(&w), nil
}

func (s *warrantyService) Update(ctx context.Context, centerID, id uint, req dto.UpdateWarrantyRequest) (*dto.WarrantyResponse, error) {
	w, err := s.findOwned(ctx, centerID, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerName != nil {
		w.CustomerName = *req.CustomerName
	}
	if req.BikeManufacturer != nil {
		w.BikeManufacturer = *req.BikeManufacturer
	}
	if req.BikeModel != nil {
		w.BikeModel = *req.BikeModel
	}
	if req.StartDate != nil {
		w.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		w.EndDate = *req.EndDate
	}
	if req.Terms != nil {
		w.Terms = req.Terms
	}
	if req.Status != nil {
		w.Status = *req.Status
	}
	if !w.EndDate.After(w.StartDate) {
		return nil, invalid("end_date must be after start_date")
	}

	if err := s.warranties.Update(ctx, w); err != nil {
		return nil, err
	}
	return toWarrantyResponse(w), nil
}

func (s *warrantyService) GetByID(ctx context.Context, centerID, id uint) (*dto.WarrantyResponse, error) {
	w, err := s.findOwned(ctx, centerID, id)
	if err != nil {
		return nil, err
	}
	return toWarrantyResponse(w), nil
}

func (s *warrantyService) List(ctx context.Context, centerID uint, filter dto.WarrantyFilter) (*dto.WarrantyListResponse, error) {
	warranties, total, err := s.warranties.ListByCenter(ctx, centerID, filter)
	if err != nil {
		return nil, err
	}
	resp := dto.WarrantyListResponse{
		Data:  make([]dto.WarrantyResponse, 0, len(warranties)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range warranties {
		resp.Data = append(resp.Data, *toWarrantyResponse(&warranties[i]))
	}
	return &resp, nil
}

func (s *warrantyService) Delete(ctx context.Context, centerID, id uint) error {
	if _, err := s.findOwned(ctx, centerID, id); err != nil {
		return err
	}
	return s.warranties.Delete(ctx, id)
}

func (s *warrantyService) RequestCertificate(ctx context.Context, centerID, id uint) error {
	if _, err := s.findOwned(ctx, centerID, id); err != nil {
		return err
	}
	s.dispatcher.EnqueueCertificate(ctx, worker.CertificateJobPayload{WarrantyID: id})
	return nil
}

func (s *warrantyService) CertificatePath(ctx context.Context, centerID, id uint) (string, error) {
	w, err := s.findOwned(ctx, centerID, id)
	if err != nil {
		return "", err
	}
	if w.CertificatePath == nil || *w.CertificatePath == "" {
		return "", ErrNotFound
	}
	return *w.CertificatePath, nil
}

func (s *warrantyService) findOwned(ctx context.Context, centerID, id uint) (*model.RepairWarranty, error) {
	w, err := s.warranties.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if w.ServiceCenterID != centerID {
		return nil, ErrForbidden
	}
	return w, nil
}

func toWarrantyResponse(w *model.RepairWarranty) *dto.WarrantyResponse {
	return &dto.WarrantyResponse{
		ID:               w.ID,
		ServiceCenterID:  w.ServiceCenterID,
		ServiceRequestID: w.ServiceRequestID,
		CustomerName:     w.CustomerName,
		BikeManufacturer: w.BikeManufacturer,
		BikeModel:        w.BikeModel,
		StartDate:        w.StartDate,
		EndDate:          w.EndDate,
		Terms:            w.Terms,
		Status:           w.Status,
		HasCertificate:   w.CertificatePath != nil && *w.CertificatePath != "",
	}
}
