package http

import (
	"github.com/gin-gonic/gin"

	"github.com/fsdcampus/campus-booking-backend/internal/auth"
)

// RegisterRoutes registers booking routes. All require authentication; the
// admin-only operations are additionally gated by the capability matrix
// (the services enforce the same capabilities as defense in depth).
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")
	group.Use(authMiddleware)
	{
		group.GET("/available-slots", h.AvailableSlots)
		group.POST("", h.Create)
		group.GET("/my", h.ListMine)
		group.GET("/all", auth.RequireCapability(auth.CapListAllBookings), h.ListAll)
		group.PUT("/:id/approve", auth.RequireCapability(auth.CapApproveBooking), h.Approve)
		group.PUT("/:id/reject", auth.RequireCapability(auth.CapRejectBooking), h.Reject)
		group.DELETE("/:id", h.Cancel)
	}
}
