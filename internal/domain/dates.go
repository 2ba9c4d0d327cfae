package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the MM/DD/YYYY form used at the edges of the system.
const DateLayout = "01/02/2006"

// FallbackShift is how far a search window moves when nothing is free in the requested one.
const FallbackShift = 7

// Day truncates t to its calendar day at UTC midnight.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q is not MM/DD/YYYY: %w", s, ErrInvalidDateRange)
	}
	return t, nil
}

func FormatDay(t time.Time) string { return t.Format(DateLayout) }

// ShiftWindow moves both ends of a window forward by FallbackShift days.
// It is the only place the fallback offset is applied.
func ShiftWindow(checkIn, checkOut time.Time) (time.Time, time.Time) {
	return checkIn.AddDate(0, 0, FallbackShift), checkOut.AddDate(0, 0, FallbackShift)
}

// ValidateRange requires checkIn to be strictly before checkOut.
func ValidateRange(checkIn, checkOut time.Time) error {
	if !checkIn.Before(checkOut) {
		return fmt.Errorf("check-in %s must be before check-out %s: %w",
			FormatDay(checkIn), FormatDay(checkOut), ErrInvalidDateRange)
	}
	return nil
}
