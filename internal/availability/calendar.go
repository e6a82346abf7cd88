package availability

import (
	"errors"
	"os"
	"strconv"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

// DateLayout is the wire format for collection dates.
const DateLayout = "2006-01-02"

// BlackoutRange is an inclusive interval of dates during which no new
// bookings are taken. Overlapping ranges are harmless, any match blocks.
type BlackoutRange struct {
	Start  time.Time
	End    time.Time
	Reason string
}

// Calendar answers whether a collection date may be booked at all.
// Capacity against existing orders is a separate, store-backed check.
type Calendar struct {
	Ranges    []BlackoutRange
	FirstYear int
	LastYear  int
	Now       func() time.Time
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func blackout(start, end time.Time, reason string) BlackoutRange {
	return BlackoutRange{Start: start, End: end, Reason: reason}
}

// defaultRanges is the known fully-booked calendar for the 2025 season.
var defaultRanges = []BlackoutRange{
	blackout(day(2025, time.July, 12), day(2025, time.July, 20), "fully booked"),
	blackout(day(2025, time.July, 25), day(2025, time.July, 25), "fully booked"),
	blackout(day(2025, time.August, 8), day(2025, time.August, 20), "fully booked"),
	blackout(day(2025, time.September, 17), day(2025, time.September, 19), "fully booked"),
	blackout(day(2025, time.October, 27), day(2025, time.October, 31), "fully booked"),
	blackout(day(2025, time.November, 21), day(2025, time.November, 23), "fully booked"),
	blackout(day(2025, time.December, 19), day(2025, time.December, 31), "fully booked"),
}

// Default builds the calendar from the static blackout table and the
// BOOKING_YEAR_FROM / BOOKING_YEAR_TO horizon (default: this year only).
func Default() *Calendar {
	thisYear := time.Now().UTC().Year()

	first := thisYear
	if v, err := strconv.Atoi(os.Getenv("BOOKING_YEAR_FROM")); err == nil && v > 0 {
		first = v
	}
	last := first
	if v, err := strconv.Atoi(os.Getenv("BOOKING_YEAR_TO")); err == nil && v >= first {
		last = v
	}

	return &Calendar{
		Ranges:    defaultRanges,
		FirstYear: first,
		LastYear:  last,
		Now:       time.Now,
	}
}

// ParseDate parses a YYYY-MM-DD string to a UTC midnight date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t.UTC(), nil
}

// IsBlocked reports whether a date cannot be booked: it is in the past,
// outside the bookable horizon, or inside a blackout range (both ends
// inclusive).
func (c *Calendar) IsBlocked(date time.Time) bool {
	_, blocked := c.BlockReason(date)
	return blocked
}

// BlockReason is IsBlocked with the reason attached.
func (c *Calendar) BlockReason(date time.Time) (string, bool) {
	now := c.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	if date.Before(today) {
		return "date is in the past", true
	}
	if date.Year() < c.FirstYear || date.Year() > c.LastYear {
		return "date is outside the booking window", true
	}
	for _, r := range c.Ranges {
		if !date.Before(r.Start) && !date.After(r.End) {
			return r.Reason, true
		}
	}
	return "", false
}
