package repository

import (
	"context"

	"veloservice/internal/dto"
	"veloservice/internal/model"

	"gorm.io/gorm"
)

type WorkshopServiceRepository interface {
	// CreateTx inserts the service together with its ComponentUsages association.
	CreateTx(tx *gorm.DB, ws *model.WorkshopService) error
	FindByID(ctx context.Context, id uint) (*model.WorkshopService, error)
	// FindOwned returns the services among ids that belong to centerID.
	FindOwned(ctx context.Context, ids []uint, centerID uint) ([]model.WorkshopService, error)
	List(ctx context.Context, filter dto.WorkshopServiceFilter) ([]model.WorkshopService, int64, error)
	UpdateTx(tx *gorm.DB, ws *model.WorkshopService) error
	// ReplaceUsagesTx deletes every usage row of the service and bulk-inserts
	// the replacement set. Full replace, not a patch.
	ReplaceUsagesTx(tx *gorm.DB, serviceID uint, usages []model.ServiceComponent) error
	SoftDelete(ctx context.Context, id uint) error
	DB() *gorm.DB
}

type workshopServiceRepo struct{ db *gorm.DB }

func NewWorkshopServiceRepository(db *gorm.DB) WorkshopServiceRepository {
	return &workshopServiceRepo{db: db}
}

func (r *workshopServiceRepo) CreateTx(tx *gorm.DB, ws *model.WorkshopService) error {
	return tx.Create(ws).Error
}

func (r *workshopServiceRepo) FindByID(ctx context.Context, id uint) (*model.WorkshopService, error) {
	var ws model.WorkshopService
	err := r.db.WithContext(ctx).
		Preload("ComponentUsages.Component").
		First(&ws, id).Error
	return &ws, err
}

func (r *workshopServiceRepo) FindOwned(ctx context.Context, ids []uint, centerID uint) ([]model.WorkshopService, error) {
	var services []model.WorkshopService
	err := r.db.WithContext(ctx).
		Where("id IN ? AND service_center_id = ?", ids, centerID).
		Find(&services).Error
	return services, err
}

func (r *workshopServiceRepo) List(ctx context.Context, filter dto.WorkshopServiceFilter) ([]model.WorkshopService, int64, error) {
	var services []model.WorkshopService
	var total int64

	q := r.db.WithContext(ctx).Model(&model.WorkshopService{})

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
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.ServiceCenterID != 0 {
		q = q.Where("service_center_id = ?", filter.ServiceCenterID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("ComponentUsages.Component").
		Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&services).Error
	return services, total, err
}

func (r *workshopServiceRepo) UpdateTx(tx *gorm.DB, ws *model.WorkshopService) error {
	return tx.Omit("ComponentUsages").Save(ws).Error
}

func (r *workshopServiceRepo) ReplaceUsagesTx(tx *gorm.DB, serviceID uint, usages []model.ServiceComponent) error {
	if err := tx.Where("workshop_service_id = ?", serviceID).
		Delete(&model.ServiceComponent{}).Error; err != nil {
		return err
	}
	if len(usages) == 0 {
		return nil
	}
	for i := range usages {
		usages[i].WorkshopServiceID = serviceID
	}
	return tx.Create(&usages).Error
}

func (r *workshopServiceRepo) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.WorkshopService{}).
		Where("id = ?", id).Update("is_active", false).Error
}

func (r *workshopServiceRepo) DB() *gorm.DB { return r.db }
