package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fsdcampus/campus-booking-backend/internal/auth"
	"github.com/fsdcampus/campus-booking-backend/internal/resource"
)

// Role-based booking limits, in minutes.
const (
	studentMaxMinutes = 60
	staffMaxMinutes   = 8 * 60
)

// SubmitRequest carries a booking submission.
type SubmitRequest struct {
	ResourceID        string
	BookingDate       time.Time
	StartTime         TimeOfDay
	EndTime           TimeOfDay
	Purpose           string
	EmergencyOverride bool
}

type Service interface {
	// AvailableSlots returns the annotated slot grid for a resource and date.
	// Read-only; dates outside the lead-time window are still computable.
	AvailableSlots(ctx context.Context, resourceID string, date time.Time) ([]Slot, error)

	// Submit validates and creates a booking for the actor. Admin submissions
	// are auto-approved; with explicit override intent an admin displaces
	// every conflicting booking atomically.
	Submit(ctx context.Context, actor auth.Actor, req SubmitRequest) (*Booking, error)

	Approve(ctx context.Context, actor auth.Actor, id string) (*Booking, error)
	Reject(ctx context.Context, actor auth.Actor, id string, reason string) (*Booking, error)
	Cancel(ctx context.Context, actor auth.Actor, id string) error

	// ListOwn returns the actor's bookings; ListAll returns everyone's and is
	// admin-only.
	ListOwn(ctx context.Context, actor auth.Actor) ([]*Booking, error)
	ListAll(ctx context.Context, actor auth.Actor) ([]*Booking, error)
}

type service struct {
	repo       Repository
	resService resource.Service
	window     Window

	now func() time.Time // injectable clock for the lead-time window
}

func NewService(repo Repository, resService resource.Service, window Window) Service {
	return &service{
		repo:       repo,
		resService: resService,
		window:     window,
		now:        time.Now,
	}
}

func (s *service) AvailableSlots(ctx context.Context, resourceID string, date time.Time) ([]Slot, error) {
	if _, err := s.resService.GetByID(ctx, resourceID); err != nil {
		if errors.Is(err, resource.ErrNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}

	bookings, err := s.repo.ListBlocking(ctx, resourceID, normalizeDate(date))
	if err != nil {
		return nil, err
	}

	return ComputeSlots(s.window, bookings), nil
}

func (s *service) Submit(ctx context.Context, actor auth.Actor, req SubmitRequest) (*Booking, error) {
	if !auth.Can(actor.Role, auth.CapCreateBooking) {
		return nil, ErrPermissionDenied
	}

	// 1. Shape: ordering, operating hours, grid alignment.
	if req.StartTime >= req.EndTime {
		return nil, ErrInvalidTimeRange
	}
	if req.StartTime < s.window.DayStart || req.EndTime > s.window.DayEnd {
		return nil, ErrOutsideHours
	}
	if !s.window.fitsGrid(req.StartTime, req.EndTime) {
		return nil, ErrNotOnGrid
	}

	// 2. Lead-time window: [today, today+LeadDays].
	date := normalizeDate(req.BookingDate)
	today := normalizeDate(s.now().UTC())
	if date.Before(today) || date.After(today.AddDate(0, 0, s.window.LeadDays)) {
		return nil, ErrDateOutOfWindow
	}

	// 3. Resource must exist.
	if _, err := s.resService.GetByID(ctx, req.ResourceID); err != nil {
		if errors.Is(err, resource.ErrNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}

	// 4. Role quotas.
	duration := (req.EndTime - req.StartTime).Minutes()
	switch actor.Role {
	case auth.RoleStudent:
		if duration > studentMaxMinutes {
			return nil, ErrStudentMaxDuration
		}
		active, err := s.repo.CountBlockingForUser(ctx, actor.UserID, date)
		if err != nil {
			return nil, err
		}
		if active > 0 {
			return nil, ErrStudentDailyLimit
		}
	case auth.RoleStaff:
		if duration > staffMaxMinutes {
			return nil, ErrStaffMaxDuration
		}
	}

	// 5. Override intent requires the capability; the override itself is only
	// applied when a conflict actually exists.
	overrideIntent := req.EmergencyOverride
	if overrideIntent && !auth.Can(actor.Role, auth.CapOverrideBooking) {
		return nil, ErrOverrideNotAllowed
	}

	status := StatusPending
	if auth.Can(actor.Role, auth.CapAutoApproveOnBook) {
		status = StatusApproved
	}

	b := &Booking{
		ResourceID:  req.ResourceID,
		UserID:      actor.UserID,
		UserRole:    actor.Role,
		BookingDate: date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Purpose:     strings.TrimSpace(req.Purpose),
		Status:      status,
	}

	// 6. Atomic conflict check and write.
	if _, err := s.repo.CreateAtomic(ctx, b, overrideIntent); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) Approve(ctx context.Context, actor auth.Actor, id string) (*Booking, error) {
	if !auth.Can(actor.Role, auth.CapApproveBooking) {
		return nil, ErrPermissionDenied
	}
	// Guarded transition: approving anything but a PENDING booking fails with
	// InvalidState so stale admin views are detectable.
	return s.repo.Transition(ctx, id, StatusPending, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, actor auth.Actor, id string, reason string) (*Booking, error) {
	if !auth.Can(actor.Role, auth.CapRejectBooking) {
		return nil, ErrPermissionDenied
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}
	return s.repo.Transition(ctx, id, StatusPending, StatusRejected, &reason)
}

func (s *service) Cancel(ctx context.Context, actor auth.Actor, id string) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	isOwner := b.UserID == actor.UserID
	if !isOwner && !auth.Can(actor.Role, auth.CapCancelAnyBooking) {
		return ErrPermissionDenied
	}

	if b.Status.Terminal() {
		return ErrInvalidState
	}

	// Only PENDING bookings may be cancelled; an APPROVED booking's state is
	// changed solely by admin action or the override path.
	_, err = s.repo.Transition(ctx, id, StatusPending, StatusCancelled, nil)
	return err
}

func (s *service) ListOwn(ctx context.Context, actor auth.Actor) ([]*Booking, error) {
	return s.repo.ListForUser(ctx, actor.UserID)
}

func (s *service) ListAll(ctx context.Context, actor auth.Actor) ([]*Booking, error) {
	if !auth.Can(actor.Role, auth.CapListAllBookings) {
		return nil, ErrPermissionDenied
	}
	return s.repo.ListAll(ctx)
}

// normalizeDate truncates a timestamp to its UTC calendar date.
func normalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
