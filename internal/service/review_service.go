package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"veloservice/internal/dto"
	"veloservice/internal/model"
	"veloservice/internal/repository"
)

// ReviewService manages user ratings of service centers, one review per
// (user, center) pair.
type ReviewService interface {
	Create(ctx context.Context, userID uint, req dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	Update(ctx context.Context, userID, id uint, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, userID, id uint) error
	ListByCenter(ctx context.Context, centerID uint) (*dto.ReviewListResponse, error)
}

type reviewService struct {
	reviews repository.ReviewRepository
	centers repository.ServiceCenterRepository
}

func NewReviewService(reviews repository.ReviewRepository, centers repository.ServiceCenterRepository) ReviewService {
	return &reviewService{reviews: reviews, centers: centers}
}

func (s *reviewService) Create(ctx context.Context, userID uint, req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if _, err := s.centers.FindByID(ctx, req.ServiceCenterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid("service center not found")
		}
		return nil, err
	}
	if _, err := s.reviews.FindByUserAndCenter(ctx, userID, req.ServiceCenterID); err == nil {
		return nil, invalid("you have already reviewed this service center")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	rv := model.Review{
		UserID:          userID,
		ServiceCenterID: req.ServiceCenterID,
		Rating:          req.Rating,
		Comment:         req.Comment,
	}
	if err := s.reviews.Create(ctx, &rv); err != nil {
		return nil, err
	}
	return toReviewResponse(&rv), nil
}

func (s *reviewService) Update(ctx context.Context, userID, id uint, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	rv, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if req.Rating != nil {
		rv.Rating = *req.Rating
	}
	if req.Comment != nil {
		rv.Comment = req.Comment
	}
	if err := s.reviews.Update(ctx, rv); err != nil {
		return nil, err
	}
	return toReviewResponse(rv), nil
}

func (s *reviewService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.findOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.reviews.Delete(ctx, id)
}

func (s *reviewService) ListByCenter(ctx context.Context, centerID uint) (*dto.ReviewListResponse, error) {
	reviews, avg, err := s.reviews.ListByCenter(ctx, centerID)
	if err != nil {
		return nil, err
	}
	resp := dto.ReviewListResponse{
		Data:          make([]dto.ReviewResponse, 0, len(reviews)),
		AverageRating: avg,
		Total:         int64(len(reviews)),
	}
	for i := range reviews {
		resp.Data = append(resp.Data, *toReviewResponse(&reviews[i]))
	}
	return &resp, nil
}

func (s *reviewService) findOwned(ctx context.Context, userID, id uint) (*model.Review, error) {
	rv, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if rv.UserID != userID {
		return nil, ErrForbidden
	}
	return rv, nil
}

func toReviewResponse(rv *model.Review) *dto.ReviewResponse {
	resp := dto.ReviewResponse{
		ID:              rv.ID,
		UserID:          rv.UserID,
		ServiceCenterID: rv.ServiceCenterID,
		Rating:          rv.Rating,
		Comment:         rv.Comment,
		CreatedAt:       rv.CreatedAt,
	}
	if rv.User != nil {
		resp.UserName = rv.User.FirstName + " " + rv.User.LastName
	}
	return &resp
}
