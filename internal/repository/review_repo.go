package repository

import (
	"context"

	"veloservice/internal/model"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *model.Review) error
	FindByID(ctx context.Context, id uint) (*model.Review, error)
	FindByUserAndCenter(ctx context.Context, userID, centerID uint) (*model.Review, error)
	// ListByCenter returns all reviews of the center, newest first, with the
	// average rating computed in the same query set.
	ListByCenter(ctx context.Context, centerID uint) ([]model.Review, float64, error)
	Update(ctx context.Context, rv *model.Review) error
	Delete(ctx context.Context, id uint) error
}

type reviewRepo struct{ db *gorm.DB }

func NewReviewRepository(db *gorm.DB) ReviewRepository { return &reviewRepo{db: db} }

func (r *reviewRepo) Create(ctx context.Context, rv *model.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *reviewRepo) FindByID(ctx context.Context, id uint) (*model.Review, error) {
	var rv model.Review
	err := r.db.WithContext(ctx).First(&rv, id).Error
	return &rv, err
}

func (r *reviewRepo) FindByUserAndCenter(ctx context.Context, userID, centerID uint) (*model.Review, error) {
	var rv model.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND service_center_id = ?", userID, centerID).
		First(&rv).Error
	return &rv, err
}

func (r *reviewRepo) ListByCenter(ctx context.Context, centerID uint) ([]model.Review, float64, error) {
	var reviews []model.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("service_center_id = ?", centerID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	var avg float64
	if len(reviews) > 0 {
		row := r.db.WithContext(ctx).Model(&model.Review{}).
			Where("service_center_id = ?", centerID).
			Select("AVG(rating)").Row()
		if scanErr := row.Scan(&avg); scanErr != nil {
			avg = 0
		}
	}
	return reviews, avg, nil
}

func (r *reviewRepo) Update(ctx context.Context, rv *model.Review) error {
	return r.db.WithContext(ctx).Save(rv).Error
}

func (r *reviewRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Review{}, id).Error
}
