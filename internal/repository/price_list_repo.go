package repository

import (
	"context"

	"veloservice/internal/dto"
	"veloservice/internal/model"

	"gorm.io/gorm"
)

type PriceListRepository interface {
	// CreateTx inserts the price list together with its Items association.
	CreateTx(tx *gorm.DB, pl *model.PriceList) error
	UpdateTx(tx *gorm.DB, pl *model.PriceList) error
	// ReplaceItemsTx deletes every item of the list and bulk-inserts the
	// resolved replacement set. Full replace, not a patch.
	ReplaceItemsTx(tx *gorm.DB, listID uint, items []model.PriceListItem) error
	// ClearDefaultTx clears is_default on every other list of the tenant.
	ClearDefaultTx(tx *gorm.DB, centerID, exceptID uint) error
	// FindByID eagerly loads items ordered by item name ascending.
	FindByID(ctx context.Context, id uint) (*model.PriceList, error)
	FindDefault(ctx context.Context, centerID uint) (*model.PriceList, error)
	List(ctx context.Context, centerID uint, filter dto.PriceListFilter) ([]model.PriceList, int64, error)
	Delete(ctx context.Context, id uint) error
	DB() *gorm.DB
}

type priceListRepo struct{ db *gorm.DB }

func NewPriceListRepository(db *gorm.DB) PriceListRepository { return &priceListRepo{db: db} }

func (r *priceListRepo) CreateTx(tx *gorm.DB, pl *model.PriceList) error {
	return tx.Create(pl).Error
}

func (r *priceListRepo) UpdateTx(tx *gorm.DB, pl *model.PriceList) error {
	return tx.Omit("Items").Save(pl).Error
}

func (r *priceListRepo) ReplaceItemsTx(tx *gorm.DB, listID uint, items []model.PriceListItem) error {
	if err := tx.Where("price_list_id = ?", listID).
		Delete(&model.PriceListItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ID = 0
		items[i].PriceListID = listID
	}
	return tx.Create(&items).Error
}

func (r *priceListRepo) ClearDefaultTx(tx *gorm.DB, centerID, exceptID uint) error {
	return tx.Model(&model.PriceList{}).
		Where("service_center_id = ? AND id <> ? AND is_default = true", centerID, exceptID).
		Update("is_default", false).Error
}

func (r *priceListRepo) FindByID(ctx context.Context, id uint) (*model.PriceList, error) {
	var pl model.PriceList
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("price_list_items.item_name ASC")
		}).
		First(&pl, id).Error
	return &pl, err
}

func (r *priceListRepo) FindDefault(ctx context.Context, centerID uint) (*model.PriceList, error) {
	var pl model.PriceList
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("price_list_items.item_name ASC")
		}).
		Where("service_center_id = ? AND is_default = true", centerID).
		First(&pl).Error
	return &pl, err
}

func (r *priceListRepo) List(ctx context.Context, centerID uint, filter dto.PriceListFilter) ([]model.PriceList, int64, error) {
	var lists []model.PriceList
	var total int64

	q := r.db.WithContext(ctx).Model(&model.PriceList{}).Where("service_center_id = ?", centerID)
	if filter.ListType != "" {
		q = q.Where("list_type = ?", filter.ListType)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("price_list_items.item_name ASC")
	}).
		Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&lists).Error
	return lists, total, err
}

func (r *priceListRepo) Delete(ctx context.Context, id uint) error {
	// Items go with the parent via the FK cascade.
	return r.db.WithContext(ctx).Delete(&model.PriceList{}, id).Error
}

func (r *priceListRepo) DB() *gorm.DB { return r.db }
