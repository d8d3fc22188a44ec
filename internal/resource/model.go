package resource

import (
	"time"

	"github.com/fsdcampus/campus-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(apperror.KindNotFound, "resource not found")
	ErrEmptyName       = apperror.New(apperror.KindInvalidArgument, "resource name is required")
	ErrInvalidType     = apperror.New(apperror.KindInvalidArgument, "invalid resource type")
	ErrInvalidCapacity = apperror.New(apperror.KindInvalidArgument, "capacity must be positive")
	ErrInvalidStatus   = apperror.New(apperror.KindInvalidArgument, "invalid resource status")
	ErrNoPhoto         = apperror.New(apperror.KindNotFound, "resource has no photo")
)

// ValidTypes enumerates the bookable resource categories.
var ValidTypes = []string{"LAB", "CLASSROOM", "HALL", "SEMINAR", "MEETING", "LECTURE_HALL"}

// Resource status values. Status is informational for listings; per-slot
// availability is always computed from bookings.
const (
	StatusAvailable   = "AVAILABLE"
	StatusMaintenance = "MAINTENANCE"
	StatusBooked      = "BOOKED"
)

// Resource represents a bookable campus unit (e.g., Physics Lab 2, Main Hall).
type Resource struct {
	ID        string // UUID
	Name      string
	Type      string
	Capacity  int
	Status    string
	PhotoPath *string // storage key of the uploaded photo, nil if none
	CreatedAt time.Time
}

// ValidType reports whether t is a known resource type.
func ValidType(t string) bool {
	for _, v := range ValidTypes {
		if t == v {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known resource status.
func ValidStatus(s string) bool {
	return s == StatusAvailable || s == StatusMaintenance || s == StatusBooked
}
