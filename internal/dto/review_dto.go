package dto

import "time"

type CreateReviewRequest struct {
	ServiceCenterID uint    `json:"service_center_id" validate:"required"`
	Rating          int     `json:"rating"            validate:"required,min=1,max=5"`
	Comment         *string `json:"comment"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}

type ReviewResponse struct {
	ID              uint      `json:"id"`
	UserID          uint      `json:"user_id"`
	UserName        string    `json:"user_name"`
	ServiceCenterID uint      `json:"service_center_id"`
	Rating          int       `json:"rating"`
	Comment         *string   `json:"comment"`
	CreatedAt       time.Time `json:"created_at"`
}

type ReviewListResponse struct {
	Data          []ReviewResponse `json:"data"`
	AverageRating float64          `json:"average_rating"`
	Total         int64            `json:"total"`
}
