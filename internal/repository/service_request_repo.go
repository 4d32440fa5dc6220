package repository

import (
	"context"

	"veloservice/internal/dto"
	"veloservice/internal/model"

	"gorm.io/gorm"
)

type ServiceRequestRepository interface {
	Create(ctx context.Context, sr *model.ServiceRequest) error
	FindByID(ctx context.Context, id uint) (*model.ServiceRequest, error)
	ListByUser(ctx context.Context, userID uint, filter dto.ServiceRequestFilter) ([]model.ServiceRequest, int64, error)
	ListByCenter(ctx context.Context, centerID uint, filter dto.ServiceRequestFilter) ([]model.ServiceRequest, int64, error)
	Update(ctx context.Context, sr *model.ServiceRequest) error
}

type serviceRequestRepo struct{ db *gorm.DB }

func NewServiceRequestRepository(db *gorm.DB) ServiceRequestRepository {
	return &serviceRequestRepo{db: db}
}

func (r *serviceRequestRepo) Create(ctx context.Context, sr *model.ServiceRequest) error {
	return r.db.WithContext(ctx).Create(sr).Error
}

func (r *serviceRequestRepo) FindByID(ctx context.Context, id uint) (*model.ServiceRequest, error) {
	var sr model.ServiceRequest
	err := r.db.WithContext(ctx).
		Preload("WorkshopService").
		Preload("User").
		First(&sr, id).Error
	return &sr, err
}

func (r *serviceRequestRepo) list(ctx context.Context, where string, ownerID uint, filter dto.ServiceRequestFilter) ([]model.ServiceRequest, int64, error) {
	var requests []model.ServiceRequest
	var total int64

	q := r.db.WithContext(ctx).Model(&model.ServiceRequest{}).Where(where, ownerID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("WorkshopService").Preload("User").
		Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&requests).Error
	return requests, total, err
}

func (r *serviceRequestRepo) ListByUser(ctx context.Context, userID uint, filter dto.ServiceRequestFilter) ([]model.ServiceRequest, int64, error) {
	return r.list(ctx, "user_id = ?", userID, filter)
}

func (r *serviceRequestRepo) ListByCenter(ctx context.Context, centerID uint, filter dto.ServiceRequestFilter) ([]model.ServiceRequest, int64, error) {
	return r.list(ctx, "service_center_id = ?", centerID, filter)
}

func (r *serviceRequestRepo) Update(ctx context.Context, sr *model.ServiceRequest) error {
	return r.db.WithContext(ctx).Save(sr).Error
}
