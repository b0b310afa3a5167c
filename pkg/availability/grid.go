package availability

import (
	"context"
	"fmt"
)

// Override is a per-date availability record. Dates without an override
// fall back to the room's full capacity with a 0% price modifier.
type Override struct {
	ID             int     `json:"id,omitempty"`
	RoomID         int     `json:"room_id,omitempty"`
	Date           string  `json:"date"`
	AvailableRooms int     `json:"available_rooms"`
	PriceModifier  float64 `json:"price_modifier"`
	Closed         bool    `json:"closed"`
}

// Status is the derived state of a calendar date.
type Status int

const (
	StatusAvailable Status = iota
	StatusSoldOut
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusSoldOut:
		return "Sold Out"
	case StatusClosed:
		return "Closed"
	default:
		return "Available"
	}
}

// Band is the presentational intensity tier for an available date. It
// drives rendering only; no further logic depends on it.
type Band int

const (
	BandNone Band = iota
	BandHigh
	BandMedium
	BandLow
)

func (b Band) String() string {
	switch b {
	case BandHigh:
		return "high"
	case BandMedium:
		return "medium"
	case BandLow:
		return "low"
	default:
		return ""
	}
}

// DayStatus is the rendered state of one calendar date.
type DayStatus struct {
	Date           string
	Status         Status
	AvailableRooms int
	PriceModifier  float64
	Band           Band
	Overridden     bool
}

// DateEdit is the editable record for a single date. All three fields are
// always sent; the edit form is seeded from the current state so untouched
// fields round-trip unchanged.
type DateEdit struct {
	AvailableRooms int     `json:"available_rooms"`
	PriceModifier  float64 `json:"price_modifier"`
	Closed         bool    `json:"closed"`
}

// API is the backend surface the grid needs. *Service implements it.
type API interface {
	FetchRange(ctx context.Context, propertyID, roomID int, startDate, endDate string) ([]Override, error)
	Submit(ctx context.Context, propertyID, roomID int, records []DateRecord) error
}

// Grid is the availability calendar for one room over a visible window:
// the generated date sequence plus the fetched per-date overrides.
type Grid struct {
	api        API
	propertyID int
	roomID     int
	totalRooms int

	startDate string
	endDate   string
	dates     []string
	overrides map[string]Override
}

// NewGrid creates a grid for the given room and window. The window is
// validated and the date sequence generated eagerly.
func NewGrid(api API, propertyID, roomID, totalRooms int, startDate, endDate string) (*Grid, error) {
	g := &Grid{
		api:        api,
		propertyID: propertyID,
		roomID:     roomID,
		totalRooms: totalRooms,
		overrides:  map[string]Override{},
	}
	if err := g.SetWindow(startDate, endDate); err != nil {
		return nil, err
	}
	return g, nil
}

// SetWindow moves the visible window. Changing either bound regenerates
// the full date sequence; previously fetched overrides are kept until the
// next Load.
func (g *Grid) SetWindow(startDate, endDate string) error {
	dates, err := DateRange(startDate, endDate)
	if err != nil {
		return err
	}
	g.startDate = startDate
	g.endDate = endDate
	g.dates = dates
	return nil
}

// Load fetches the overrides for the visible window and rebuilds the
// per-date map. Duplicate dates from the backend should not happen;
// last-write-wins keeps them from crashing anything.
func (g *Grid) Load(ctx context.Context) error {
	rows, err := g.api.FetchRange(ctx, g.propertyID, g.roomID, g.startDate, g.endDate)
	if err != nil {
		return fmt.Errorf("fetching availability window: %w", err)
	}

	overrides := make(map[string]Override, len(rows))
	for _, row := range rows {
		overrides[row.Date] = row
	}
	g.overrides = overrides
	return nil
}

// Dates returns the generated date sequence for the window.
func (g *Grid) Dates() []string {
	return g.dates
}

// Override returns the fetched override for a date, if any.
func (g *Grid) Override(date string) (Override, bool) {
	o, ok := g.overrides[date]
	return o, ok
}

// StatusFor derives the displayed state of a date from its override and
// the room defaults, in priority order: no override means available at
// full capacity, closed wins over any availableRooms value, zero rooms is
// sold out, anything else is available with an intensity band.
func (g *Grid) StatusFor(date string) DayStatus {
	o, ok := g.overrides[date]
	if !ok {
		return DayStatus{
			Date:           date,
			Status:         StatusAvailable,
			AvailableRooms: g.totalRooms,
			Band:           bandFor(g.totalRooms, g.totalRooms),
		}
	}

	ds := DayStatus{
		Date:           date,
		AvailableRooms: o.AvailableRooms,
		PriceModifier:  o.PriceModifier,
		Overridden:     true,
	}
	switch {
	case o.Closed:
		ds.Status = StatusClosed
	case o.AvailableRooms == 0:
		ds.Status = StatusSoldOut
	default:
		ds.Status = StatusAvailable
		ds.Band = bandFor(o.AvailableRooms, g.totalRooms)
	}
	return ds
}

// Rows derives the status of every date in the window, in order.
func (g *Grid) Rows() []DayStatus {
	rows := make([]DayStatus, 0, len(g.dates))
	for _, date := range g.dates {
		rows = append(rows, g.StatusFor(date))
	}
	return rows
}

// EditSeed returns the editable record for a date, seeded from the current
// override or the room defaults when no override exists.
func (g *Grid) EditSeed(date string) DateEdit {
	if o, ok := g.overrides[date]; ok {
		return DateEdit{
			AvailableRooms: o.AvailableRooms,
			PriceModifier:  o.PriceModifier,
			Closed:         o.Closed,
		}
	}
	return DateEdit{AvailableRooms: g.totalRooms}
}

// SetDate submits a single-date edit and merges it into the local map on
// success. The common case needs no refetch; on failure the window is
// refetched so local state never silently diverges from the backend.
func (g *Grid) SetDate(ctx context.Context, date string, edit DateEdit) error {
	if _, err := ParseDay(date); err != nil {
		return err
	}

	rooms := edit.AvailableRooms
	modifier := edit.PriceModifier
	record := DateRecord{
		Date:           date,
		AvailableRooms: &rooms,
		PriceModifier:  &modifier,
		Closed:         edit.Closed,
	}
	if err := g.api.Submit(ctx, g.propertyID, g.roomID, []DateRecord{record}); err != nil {
		if loadErr := g.Load(ctx); loadErr != nil {
			return fmt.Errorf("updating %s: %w (refetch also failed: %v)", date, err, loadErr)
		}
		return fmt.Errorf("updating %s: %w", date, err)
	}

	prev := g.overrides[date]
	prev.Date = date
	prev.RoomID = g.roomID
	prev.AvailableRooms = edit.AvailableRooms
	prev.PriceModifier = edit.PriceModifier
	prev.Closed = edit.Closed
	g.overrides[date] = prev
	return nil
}

// BulkApply validates and expands a bulk edit, submits it as one batched
// call, and refetches the whole window: the range may reach dates outside
// the cached map, so a local merge is not enough.
func (g *Grid) BulkApply(ctx context.Context, edit BulkEdit) error {
	records, err := edit.Expand()
	if err != nil {
		return err
	}
	if err := g.api.Submit(ctx, g.propertyID, g.roomID, records); err != nil {
		return fmt.Errorf("applying bulk edit: %w", err)
	}
	return g.Load(ctx)
}

func bandFor(rooms, totalRooms int) Band {
	if totalRooms <= 0 {
		return BandLow
	}
	pct := float64(rooms) / float64(totalRooms) * 100
	switch {
	case pct > 70:
		return BandHigh
	case pct > 30:
		return BandMedium
	default:
		return BandLow
	}
}
