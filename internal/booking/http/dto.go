package http

import (
	"time"

	"github.com/fsdcampus/campus-booking-backend/internal/booking"
)

// CreateBookingRequest is the submission payload. Times use "HH:MM" and the
// date uses "2006-01-02", matching the browser client.
type CreateBookingRequest struct {
	ResourceID        string `json:"resourceId" binding:"required,uuid"`
	BookingDate       string `json:"bookingDate" binding:"required"`
	StartTime         string `json:"startTime" binding:"required"`
	EndTime           string `json:"endTime" binding:"required"`
	Purpose           string `json:"purpose"`
	EmergencyOverride bool   `json:"emergencyOverride"`
}

// RejectBookingRequest carries the mandatory rejection reason.
type RejectBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// BookingResponse is the denormalized booking shape returned to clients.
type BookingResponse struct {
	ID                string  `json:"id"`
	ResourceID        string  `json:"resourceId"`
	ResourceName      string  `json:"resourceName"`
	UserID            string  `json:"userId"`
	UserName          string  `json:"userName"`
	UserRole          string  `json:"userRole"`
	BookingDate       string  `json:"bookingDate"`
	StartTime         string  `json:"startTime"`
	EndTime           string  `json:"endTime"`
	Purpose           string  `json:"purpose,omitempty"`
	Status            string  `json:"status"`
	EmergencyOverride bool    `json:"emergencyOverride"`
	RejectionReason   *string `json:"rejectionReason,omitempty"`
	DurationMinutes   int     `json:"duration"`
	CreatedAt         string  `json:"createdAt"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:                b.ID,
		ResourceID:        b.ResourceID,
		ResourceName:      b.ResourceName,
		UserID:            b.UserID,
		UserName:          b.UserName,
		UserRole:          string(b.UserRole),
		BookingDate:       b.BookingDate.Format("2006-01-02"),
		StartTime:         b.StartTime.String(),
		EndTime:           b.EndTime.String(),
		Purpose:           b.Purpose,
		Status:            string(b.Status),
		EmergencyOverride: b.EmergencyOverride,
		RejectionReason:   b.RejectionReason,
		DurationMinutes:   (b.EndTime - b.StartTime).Minutes(),
		CreatedAt:         b.CreatedAt.Format(time.RFC3339),
	}
}

// SlotResponse mirrors booking.Slot with string times.
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

func NewSlotResponses(slots []booking.Slot) []SlotResponse {
	out := make([]SlotResponse, len(slots))
	for i, s := range slots {
		out[i] = SlotResponse{
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			Available: s.Available,
		}
	}
	return out
}
