package repository

import (
	"context"

	"veloservice/internal/dto"
	"veloservice/internal/model"

	"gorm.io/gorm"
)

type ComponentRepository interface {
	Create(ctx context.Context, c *model.Component) error
	FindByID(ctx context.Context, id uint) (*model.Component, error)
	// FindOwned returns the components among ids that belong to centerID.
	FindOwned(ctx context.Context, ids []uint, centerID uint) ([]model.Component, error)
	List(ctx context.Context, centerID uint, filter dto.ComponentFilter) ([]model.Component, int64, error)
	Update(ctx context.Context, c *model.Component) error
	SoftDelete(ctx context.Context, id uint) error
	DB() *gorm.DB
}

type componentRepo struct{ db *gorm.DB }

func NewComponentRepository(db *gorm.DB) ComponentRepository { return &componentRepo{db: db} }

func (r *componentRepo) Create(ctx context.Context, c *model.Component) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *componentRepo) FindByID(ctx context.Context, id uint) (*model.Component, error) {
	var c model.Component
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *componentRepo) FindOwned(ctx context.Context, ids []uint, centerID uint) ([]model.Component, error) {
	var components []model.Component
	err := r.db.WithContext(ctx).
		Where("id IN ? AND service_center_id = ?", ids, centerID).
		Find(&components).Error
	return components, err
}

func (r *componentRepo) List(ctx context.Context, centerID uint, filter dto.ComponentFilter) ([]model.Component, int64, error) {
	var components []model.Component
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Component{}).Where("service_center_id = ?", centerID)

	switch filter.Active {
	case "false":
		q = q.Where("is_active = false")
	case "all":
	default:
		q = q.Where("is_active = true")
	}

	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Manufacturer != "" {
		q = q.Where("manufacturer ILIKE ?", "%"+filter.Manufacturer+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&components).Error
	return components, total, err
}

func (r *componentRepo) Update(ctx context.Context, c *model.Component) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *componentRepo) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Component{}).Where("id = ?", id).Update("is_active", false).Error
}

func (r *componentRepo) DB() *gorm.DB { return r.db }
