// Package availability implements the room availability calendar: date
// window generation, per-date override merging, status derivation, and the
// single-date and bulk range edit flows.
package availability

import (
	"errors"
	"fmt"
	"time"
)

// DayFormat is the wire format for calendar dates.
const DayFormat = "2006-01-02"

// ErrInvalidRange means the start date is after the end date. Rejected
// before any expansion or network use.
var ErrInvalidRange = errors.New("availability: start date must not be after end date")

// ParseDay parses an ISO calendar date.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// DateRange generates the inclusive, ordered sequence of ISO dates from
// start to end. Windows are UI-bounded (typically at most 90 days), so the
// whole sequence is produced eagerly.
func DateRange(start, end string) ([]string, error) {
	from, err := ParseDay(start)
	if err != nil {
		return nil, err
	}
	to, err := ParseDay(end)
	if err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, ErrInvalidRange
	}

	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DayFormat))
	}
	return dates, nil
}

// AddDays shifts an ISO date by n days.
func AddDays(date string, n int) (string, error) {
	d, err := ParseDay(date)
	if err != nil {
		return "", err
	}
	return d.AddDate(0, 0, n).Format(DayFormat), nil
}

// Nights returns the number of nights between a check-in and a check-out
// date.
func Nights(checkIn, checkOut string) (int, error) {
	from, err := ParseDay(checkIn)
	if err != nil {
		return 0, err
	}
	to, err := ParseDay(checkOut)
	if err != nil {
		return 0, err
	}
	return int(to.Sub(from) / (24 * time.Hour)), nil
}

// Today returns the current date in ISO format.
func Today() string {
	return time.Now().Format(DayFormat)
}
