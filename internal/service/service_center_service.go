package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"veloservice/internal/dto"
	"veloservice/internal/model"
	"veloservice/internal/repository"
)

// ServiceCenterService covers the public catalog view of service centers and
// the owner's profile management.
type ServiceCenterService interface {
	List(ctx context.Context, filter dto.ServiceCenterFilter) (*dto.ServiceCenterListResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.ServiceCenterResponse, error)
	UpdateProfile(ctx context.Context, centerID uint, req dto.UpdateCenterProfileRequest) (*dto.ServiceCenterResponse, error)
	SetLogoURL(ctx context.Context, centerID uint, url string) (*dto.ServiceCenterResponse, error)
}

type serviceCenterService struct {
	centers repository.ServiceCenterRepository
}

func NewServiceCenterService(centers repository.ServiceCenterRepository) ServiceCenterService {
	return &serviceCenterService{centers: centers}
}

func (s *serviceCenterService) List(ctx context.Context, filter dto.ServiceCenterFilter) (*dto.ServiceCenterListResponse, error) {
	centers, total, err := s.centers.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := dto.ServiceCenterListResponse{
		Data:  make([]dto.ServiceCenterResponse, 0, len(centers)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range centers {
		resp.Data = append(resp.Data, *toServiceCenterResponse(&centers[i]))
	}
	return &resp, nil
}

func (s *serviceCenterService) GetByID(ctx context.Context, id uint) (*dto.ServiceCenterResponse, error) {
	center, err := s.centers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toServiceCenterResponse(center), nil
}

func (s *serviceCenterService) UpdateProfile(ctx context.Context, centerID uint, req dto.UpdateCenterProfileRequest) (*dto.ServiceCenterResponse, error) {
	center, err := s.centers.FindByID(ctx, centerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		center.Name = *req.Name
	}
	if req.Description != nil {
		center.Description = req.Description
	}
	if req.Address != nil {
		center.Address = *req.Address
	}
	if req.Phone != nil {
		center.Phone = req.Phone
	}

	if err := s.centers.Update(ctx, center); err != nil {
		return nil, err
	}
	return toServiceCenterResponse(center), nil
}

func (s *serviceCenterService) SetLogoURL(ctx context.Context, centerID uint, url string) (*dto.ServiceCenterResponse, error) {
	center, err := s.centers.FindByID(ctx, centerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	center.LogoURL = &url
	if err := s.centers.Update(ctx, center); err != nil {
		return nil, err
	}
	return toServiceCenterResponse(center), nil
}

func toServiceCenterResponse(sc *model.ServiceCenter) *dto.ServiceCenterResponse {
	return &dto.ServiceCenterResponse{
		ID:          sc.ID,
		Name:        sc.Name,
		Description: sc.Description,
		Address:     sc.Address,
		Phone:       sc.Phone,
		LogoURL:     sc.LogoURL,
	}
}
