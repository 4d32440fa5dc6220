package repository

import (
	"context"

	"veloservice/internal/dto"
	"veloservice/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	// CreateTx inserts the order together with its Items association.
	CreateTx(tx *gorm.DB, o *model.Order) error
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	ListByUser(ctx context.Context, userID uint, filter dto.OrderFilter) ([]model.Order, int64, error)
	ListByCenter(ctx context.Context, centerID uint, filter dto.OrderFilter) ([]model.Order, int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) CreateTx(tx *gorm.DB, o *model.Order) error {
	return tx.Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error
	return &o, err
}

func (r *orderRepo) list(ctx context.Context, where string, ownerID uint, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Order{}).Where(where, ownerID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").
		Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&orders).Error
	return orders, total, err
}

func (r *orderRepo) ListByUser(ctx context.Context, userID uint, filter dto.OrderFilter) ([]model.Order, int64, error) {
	return r.list(ctx, "user_id = ?", userID, filter)
}

func (r *orderRepo) ListByCenter(ctx context.Context, centerID uint, filter dto.OrderFilter) ([]model.Order, int64, error) {
	return r.list(ctx, "service_center_id = ?", centerID, filter)
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).Update("status", status).Error
}

func (r *orderRepo) DB() *gorm.DB { return r.db }
