package booking

import (
	"time"

	"github.com/fsdcampus/campus-booking-backend/internal/auth"
	"github.com/fsdcampus/campus-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(apperror.KindNotFound, "booking not found")
	ErrResourceNotFound   = apperror.New(apperror.KindNotFound, "resource not found")
	ErrInvalidTimeRange   = apperror.New(apperror.KindInvalidArgument, "start time must be before end time")
	ErrOutsideHours       = apperror.New(apperror.KindInvalidArgument, "booking must fall within operating hours")
	ErrNotOnGrid          = apperror.New(apperror.KindInvalidArgument, "booking times must align to the slot grid")
	ErrDateOutOfWindow    = apperror.New(apperror.KindInvalidArgument, "booking date must be within the allowed window")
	ErrTimeConflict       = apperror.New(apperror.KindConflict, "time slot is already booked")
	ErrOverrideNotAllowed = apperror.New(apperror.KindForbidden, "only an admin may override an existing booking")
	ErrPermissionDenied   = apperror.New(apperror.KindForbidden, "permission denied")
	ErrInvalidState       = apperror.New(apperror.KindInvalidState, "booking state does not allow this transition")
	ErrReasonRequired     = apperror.New(apperror.KindInvalidArgument, "rejection reason is required")
	ErrStudentDailyLimit  = apperror.New(apperror.KindInvalidArgument, "students may hold only one booking per day")
	ErrStudentMaxDuration = apperror.New(apperror.KindInvalidArgument, "students can book for at most 1 hour")
	ErrStaffMaxDuration   = apperror.New(apperror.KindInvalidArgument, "staff can book for at most 8 hours")
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusApproved   Status = "APPROVED"
	StatusRejected   Status = "REJECTED"
	StatusCancelled  Status = "CANCELLED"
	StatusOverridden Status = "OVERRIDDEN"
)

// Terminal reports whether the status permits no further transitions.
func (s Status) Terminal() bool {
	switch s {
	case StatusRejected, StatusCancelled, StatusOverridden:
		return true
	}
	return false
}

// Blocks reports whether a booking in this status claims its interval:
// PENDING and APPROVED bookings make slots unavailable and cause conflicts.
func (s Status) Blocks() bool {
	return s == StatusPending || s == StatusApproved
}

// Booking represents a reservation of a resource for a time interval on a
// calendar day. ResourceName and UserName are denormalized display fields
// populated by read queries.
type Booking struct {
	ID                string // UUID
	ResourceID        string
	ResourceName      string
	UserID            string
	UserName          string
	UserRole          auth.Role // role of the creator, captured at submission
	BookingDate       time.Time // calendar date, midnight UTC
	StartTime         TimeOfDay
	EndTime           TimeOfDay
	Purpose           string
	Status            Status
	EmergencyOverride bool
	RejectionReason   *string // set iff Status is REJECTED
	CreatedAt         time.Time
}

// Overlaps reports whether the booking's half-open interval intersects
// [start, end).
func (b *Booking) Overlaps(start, end TimeOfDay) bool {
	return b.StartTime < end && start < b.EndTime
}
