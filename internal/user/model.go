package user

import (
	"time"

	"github.com/fsdcampus/campus-booking-backend/internal/auth"
	"github.com/fsdcampus/campus-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(apperror.KindNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(apperror.KindConflict, "email already exists")
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthorized, "invalid email or password")
	ErrAccountLocked      = apperror.New(apperror.KindForbidden, "account is locked due to too many failed attempts")
	ErrInvalidRole        = apperror.New(apperror.KindInvalidArgument, "invalid role, must be ADMIN, STUDENT or STAFF")
	ErrNameRequired       = apperror.New(apperror.KindInvalidArgument, "name is required")
	ErrEmailRequired      = apperror.New(apperror.KindInvalidArgument, "email is required")
	ErrPasswordTooShort   = apperror.New(apperror.KindInvalidArgument, "password is too short")
)

// Account status values.
const (
	StatusActive = "ACTIVE"
	StatusLocked = "LOCKED"
)

// User represents an account in the campus booking system.
type User struct {
	ID             string // UUID
	Name           string
	Email          string
	PasswordHash   string
	Role           auth.Role
	Status         string // ACTIVE or LOCKED
	FailedAttempts int
	LockTime       *time.Time
	CreatedAt      time.Time
}
