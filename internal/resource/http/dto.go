package http

import (
	"time"

	"github.com/fsdcampus/campus-booking-backend/internal/resource"
)

type ResourceResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Capacity  int       `json:"capacity"`
	Status    string    `json:"status"`
	HasPhoto  bool      `json:"hasPhoto"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewResponse(r *resource.Resource) ResourceResponse {
	return ResourceResponse{
		ID:        r.ID,
		Name:      r.Name,
		Type:      r.Type,
		Capacity:  r.Capacity,
		Status:    r.Status,
		HasPhoto:  r.PhotoPath != nil,
		CreatedAt: r.CreatedAt,
	}
}

type CreateRequest struct {
	Name     string `json:"name" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
}

type UpdateRequest struct {
	Name     *string `json:"name"`
	Type     *string `json:"type"`
	Capacity *int    `json:"capacity" binding:"omitempty,gt=0"`
	Status   *string `json:"status" binding:"omitempty,oneof=AVAILABLE MAINTENANCE BOOKED"`
}
