package repository

import (
	"context"

	"veloservice/internal/dto"
	"veloservice/internal/model"

	"gorm.io/gorm"
)

type WarrantyRepository interface {
	Create(ctx context.Context, w *model.RepairWarranty) error
	FindByID(ctx context.Context, id uint) (*model.RepairWarranty, error)
	ListByCenter(ctx context.Context, centerID uint, filter dto.WarrantyFilter) ([]model.RepairWarranty, int64, error)
	Update(ctx context.Context, w *model.RepairWarranty) error
	Delete(ctx context.Context, id uint) error
}

type warrantyRepo struct{ db *gorm.DB }

func NewWarrantyRepository(db *gorm.DB) WarrantyRepository { return &warrantyRepo{db: db} }

func (r *warrantyRepo) Create(ctx context.Context, w *model.RepairWarranty) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *warrantyRepo) FindByID(ctx context.Context, id uint) (*model.RepairWarranty, error) {
	var w model.RepairWarranty
	err := r.db.WithContext(ctx).First(&w, id).Error
	return &w, err
}

func (r *warrantyRepo) ListByCenter(ctx context.Context, centerID uint, filter dto.WarrantyFilter) ([]model.RepairWarranty, int64, error) {
	var warranties []model.RepairWarranty
	var total int64

	q := r.db.WithContext(ctx).Model(&model.RepairWarranty{}).Where("service_center_id = ?", centerID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&warranties).Error
	return warranties, total, err
}

func (r *warrantyRepo) Update(ctx context.Context, w *model.RepairWarranty) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *warrantyRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.RepairWarranty{}, id).Error
}
