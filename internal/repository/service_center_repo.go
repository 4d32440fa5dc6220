package repository

import (
	"context"

	"veloservice/internal/dto"
	"veloservice/internal/model"

	"gorm.io/gorm"
)

type ServiceCenterRepository interface {
	Create(ctx context.Context, sc *model.ServiceCenter) error
	FindByID(ctx context.Context, id uint) (*model.ServiceCenter, error)
	FindByEmail(ctx context.Context, email string) (*model.ServiceCenter, error)
	List(ctx context.Context, filter dto.ServiceCenterFilter) ([]model.ServiceCenter, int64, error)
	Update(ctx context.Context, sc *model.ServiceCenter) error
}

type serviceCenterRepo struct{ db *gorm.DB }

func NewServiceCenterRepository(db *gorm.DB) ServiceCenterRepository {
	return &serviceCenterRepo{db: db}
}

func (r *serviceCenterRepo) Create(ctx context.Context, sc *model.ServiceCenter) error {
	return r.db.WithContext(ctx).Create(sc).Error
}

func (r *serviceCenterRepo) FindByID(ctx context.Context, id uint) (*model.ServiceCenter, error) {
	var sc model.ServiceCenter
	err := r.db.WithContext(ctx).First(&sc, id).Error
	return &sc, err
}

func (r *serviceCenterRepo) FindByEmail(ctx context.Context, email string) (*model.ServiceCenter, error) {
	var sc model.ServiceCenter
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&sc).Error
	return &sc, err
}

func (r *serviceCenterRepo) List(ctx context.Context, filter dto.ServiceCenterFilter) ([]model.ServiceCenter, int64, error) {
	var centers []model.ServiceCenter
	var total int64

	q := r.db.WithContext(ctx).Model(&model.ServiceCenter{})
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&centers).Error
	return centers, total, err
}

func (r *serviceCenterRepo) Update(ctx context.Context, sc *model.ServiceCenter) error {
	return r.db.WithContext(ctx).Save(sc).Error
}
