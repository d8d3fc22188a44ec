package booking

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fsdcampus/campus-booking-backend/internal/pkg/apperror"
)

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
// Booking intervals are half-open [start, end) on this scale, which keeps
// the overlap arithmetic free of date and timezone concerns.
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM" (seconds are accepted and ignored, so
// "08:00:00" also works).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, apperror.New(apperror.KindInvalidArgument, fmt.Sprintf("invalid time of day %q", s))
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, apperror.New(apperror.KindInvalidArgument, fmt.Sprintf("invalid time of day %q", s))
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, apperror.New(apperror.KindInvalidArgument, fmt.Sprintf("invalid time of day %q", s))
	}

	return TimeOfDay(hours*60 + minutes), nil
}

// MustParseTimeOfDay is ParseTimeOfDay that panics on error, for constants
// and tests.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Minutes returns the raw minutes-since-midnight value.
func (t TimeOfDay) Minutes() int {
	return int(t)
}

// String formats the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// MarshalJSON encodes the time as a "HH:MM" JSON string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

// UnmarshalJSON decodes a "HH:MM" JSON string.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("time of day must be a string: %w", err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
