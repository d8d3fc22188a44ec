package http

import (
	"github.com/gin-gonic/gin"

	"github.com/fsdcampus/campus-booking-backend/internal/auth"
)

// RegisterRoutes registers resource routes: admin CRUD under /admin/resources,
// read-only role-scoped listings, and public photo serving.
// cacheMiddleware caches the read-only listings for a short TTL.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, cacheMiddleware gin.HandlerFunc) {
	admin := g.Group("/admin/resources")
	admin.Use(authMiddleware, auth.RequireCapability(auth.CapManageResources))
	{
		admin.GET("", h.List)
		admin.GET("/:id", h.Get)
		admin.POST("", h.Create)
		admin.PUT("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
		admin.PUT("/:id/photo", h.UploadPhoto)
	}

	// The client uses role-specific paths for read-only listings.
	view := auth.RequireCapability(auth.CapViewResources)
	g.GET("/student/resources", authMiddleware, view, cacheMiddleware, h.List)
	g.GET("/staff/resources", authMiddleware, view, cacheMiddleware, h.List)

	// Photos are public so listing pages can embed them without a token.
	g.GET("/resources/:id/photo", h.Photo)
}
