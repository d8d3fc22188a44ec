package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fsdcampus/campus-booking-backend/internal/api"
	"github.com/fsdcampus/campus-booking-backend/internal/auth"
	"github.com/fsdcampus/campus-booking-backend/internal/booking"
	"github.com/fsdcampus/campus-booking-backend/internal/pkg/storage"
	"github.com/fsdcampus/campus-booking-backend/internal/resource"
	"github.com/fsdcampus/campus-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int

	DayStart    string
	DayEnd      string
	SlotMinutes int
	LeadDays    int

	UploadDir       string
	RateLimitPerSec float64
	RateLimitBurst  int
	CacheTTL        time.Duration
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	dayStart, err := booking.ParseTimeOfDay(cfg.DayStart)
	if err != nil {
		return nil, fmt.Errorf("invalid day start: %w", err)
	}
	dayEnd, err := booking.ParseTimeOfDay(cfg.DayEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid day end: %w", err)
	}
	if dayStart >= dayEnd {
		return nil, fmt.Errorf("day start %s must be before day end %s", dayStart, dayEnd)
	}
	window := booking.Window{
		DayStart:    dayStart,
		DayEnd:      dayEnd,
		SlotMinutes: cfg.SlotMinutes,
		LeadDays:    cfg.LeadDays,
	}

	// Photo storage
	store, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init photo storage: %w", err)
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Resource Module
	resRepo := resource.NewPgxRepository(cfg.DBPool)
	resService := resource.NewService(resRepo, store, storage.NewImageProcessor())

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, resService, window)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		UserService:     userService,
		ResourceService: resService,
		BookingService:  bookingService,
		JWTManager:      jwtManager,
		RateLimitPerSec: cfg.RateLimitPerSec,
		RateLimitBurst:  cfg.RateLimitBurst,
		CacheTTL:        cfg.CacheTTL,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
