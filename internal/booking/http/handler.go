package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fsdcampus/campus-booking-backend/internal/auth"
	"github.com/fsdcampus/campus-booking-backend/internal/booking"
	"github.com/fsdcampus/campus-booking-backend/internal/pkg/request"
	"github.com/fsdcampus/campus-booking-backend/internal/pkg/response"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// AvailableSlots returns the annotated slot grid for a resource and date.
func (h *Handler) AvailableSlots(c *gin.Context) {
	resourceID := c.Query("resourceId")
	if _, err := uuid.Parse(resourceID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resourceId must be a valid UUID"})
		return
	}

	date, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
		return
	}

	slots, err := h.service.AvailableSlots(c.Request.Context(), resourceID, date)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSlotResponses(slots))
}

// Create submits a booking for the authenticated user.
func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	date, err := time.Parse(dateLayout, req.BookingDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bookingDate must be formatted as YYYY-MM-DD"})
		return
	}
	start, err := booking.ParseTimeOfDay(req.StartTime)
	if err != nil {
		response.Error(c, err)
		return
	}
	end, err := booking.ParseTimeOfDay(req.EndTime)
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.Submit(c.Request.Context(), auth.GetActor(c), booking.SubmitRequest{
		ResourceID:        req.ResourceID,
		BookingDate:       date,
		StartTime:         start,
		EndTime:           end,
		Purpose:           req.Purpose,
		EmergencyOverride: req.EmergencyOverride,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// ListMine returns the authenticated user's bookings.
func (h *Handler) ListMine(c *gin.Context) {
	bookings, err := h.service.ListOwn(c.Request.Context(), auth.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponses(bookings))
}

// ListAll returns every booking; admin only.
func (h *Handler) ListAll(c *gin.Context) {
	bookings, err := h.service.ListAll(c.Request.Context(), auth.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponses(bookings))
}

// Approve transitions a PENDING booking to APPROVED.
func (h *Handler) Approve(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := h.service.Approve(c.Request.Context(), auth.GetActor(c), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Reject transitions a PENDING booking to REJECTED with a reason.
func (h *Handler) Reject(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var req RejectBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reason is required"})
		return
	}

	b, err := h.service.Reject(c.Request.Context(), auth.GetActor(c), uri.ID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Cancel cancels the caller's own PENDING booking (admins may cancel any).
func (h *Handler) Cancel(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), auth.GetActor(c), uri.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toResponses(bookings []*booking.Booking) []BookingResponse {
	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	return items
}
