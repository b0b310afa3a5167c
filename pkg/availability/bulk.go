package availability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DateRecord is one per-date entry of an availability update. Nil numeric
// fields are omitted from the JSON entirely so a backend merge only
// overwrites fields the operator explicitly set; Closed is a plain boolean
// with no unset state and is always included.
type DateRecord struct {
	Date           string   `json:"date"`
	AvailableRooms *int     `json:"available_rooms,omitempty"`
	PriceModifier  *float64 `json:"price_modifier,omitempty"`
	Closed         bool     `json:"closed"`
}

// BulkEdit is a range update request. Nil optional fields were left blank
// by the operator and stay untouched on every date in the range.
type BulkEdit struct {
	StartDate      string
	EndDate        string
	AvailableRooms *int
	PriceModifier  *float64
	Closed         bool
}

// Validate checks the request before any expansion or network use. A bulk
// apply that changes nothing is tolerated.
func (b BulkEdit) Validate() error {
	if b.StartDate == "" || b.EndDate == "" {
		return errors.New("availability: start and end dates are required")
	}
	from, err := ParseDay(b.StartDate)
	if err != nil {
		return err
	}
	to, err := ParseDay(b.EndDate)
	if err != nil {
		return err
	}
	if from.After(to) {
		return ErrInvalidRange
	}
	if b.AvailableRooms != nil && *b.AvailableRooms < 0 {
		return errors.New("availability: available rooms must not be negative")
	}
	return nil
}

// Expand validates the request and generates one record per date in the
// inclusive range, each carrying the same filtered field set.
func (b BulkEdit) Expand() ([]DateRecord, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	dates, err := DateRange(b.StartDate, b.EndDate)
	if err != nil {
		return nil, err
	}

	records := make([]DateRecord, 0, len(dates))
	for _, date := range dates {
		records = append(records, DateRecord{
			Date:           date,
			AvailableRooms: b.AvailableRooms,
			PriceModifier:  b.PriceModifier,
			Closed:         b.Closed,
		})
	}
	return records, nil
}

// ParseBulkEdit builds a BulkEdit from form-layer string inputs, where an
// empty string means "leave this field untouched". Numeric fields are
// parsed, never coerced: "" stays nil rather than becoming 0.
func ParseBulkEdit(startDate, endDate, availableRooms, priceModifier string, closed bool) (BulkEdit, error) {
	edit := BulkEdit{
		StartDate: startDate,
		EndDate:   endDate,
		Closed:    closed,
	}

	if s := strings.TrimSpace(availableRooms); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return BulkEdit{}, fmt.Errorf("parsing available rooms %q: %w", s, err)
		}
		edit.AvailableRooms = &n
	}
	if s := strings.TrimSpace(priceModifier); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return BulkEdit{}, fmt.Errorf("parsing price modifier %q: %w", s, err)
		}
		edit.PriceModifier = &f
	}

	if err := edit.Validate(); err != nil {
		return BulkEdit{}, err
	}
	return edit, nil
}
