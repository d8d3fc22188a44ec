package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/fsdcampus/campus-booking-backend/internal/auth"
	"github.com/fsdcampus/campus-booking-backend/internal/booking"
	bookingHttp "github.com/fsdcampus/campus-booking-backend/internal/booking/http"
	"github.com/fsdcampus/campus-booking-backend/internal/resource"
	resourceHttp "github.com/fsdcampus/campus-booking-backend/internal/resource/http"
	"github.com/fsdcampus/campus-booking-backend/internal/user"
	userHttp "github.com/fsdcampus/campus-booking-backend/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction    bool
	ProdOrigins     string
	UserService     user.Service
	ResourceService resource.Service
	BookingService  booking.Service
	JWTManager      *auth.JWTManager
	RateLimitPerSec float64
	RateLimitBurst  int
	CacheTTL        time.Duration
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, Logger, Auth) and registers routes for all modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:5173", // Vite dev server
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware validates the bearer token and normalizes the role claim.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	rateLimitMiddleware := RateLimit(cfg.RateLimitPerSec, cfg.RateLimitBurst)
	cacheMiddleware := ResponseCache(cfg.CacheTTL)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	resourceHandler := resourceHttp.NewHandler(cfg.ResourceService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	// Register API routes under /api, matching the browser client.
	apiGroup := r.Group("/api")
	{
		userHttp.RegisterRoutes(apiGroup, userHandler, authMiddleware, rateLimitMiddleware)
		resourceHttp.RegisterRoutes(apiGroup, resourceHandler, authMiddleware, cacheMiddleware)
		bookingHttp.RegisterRoutes(apiGroup, bookingHandler, authMiddleware)
	}

	return r
}
