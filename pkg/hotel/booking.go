package hotel

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dotprogrammers/walc-admin/pkg/client"
)

// BookingService manages bookings.
type BookingService struct {
	api *client.Client
}

// NewBookingService creates a BookingService.
func NewBookingService(api *client.Client) *BookingService {
	return &BookingService{api: api}
}

func pageQuery(page, perPage int) url.Values {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		query.Set("per_page", strconv.Itoa(perPage))
	}
	return query
}

// List returns all bookings with pagination metadata when present.
func (s *BookingService) List(ctx context.Context, page, perPage int) ([]Booking, *client.Page, error) {
	body, err := s.api.Do(ctx, http.MethodGet, "/admin/bookings", pageQuery(page, perPage), nil)
	if err != nil {
		return nil, nil, err
	}
	return client.DecodeList[Booking](body)
}

// ListForProperty returns the bookings of one property.
func (s *BookingService) ListForProperty(ctx context.Context, propertyID, page, perPage int) ([]Booking, *client.Page, error) {
	body, err := s.api.Do(ctx, http.MethodGet, client.PropertyBookingsPath(propertyID), pageQuery(page, perPage), nil)
	if err != nil {
		return nil, nil, err
	}
	return client.DecodeList[Booking](body)
}

// ListForRoom returns the bookings of one room.
func (s *BookingService) ListForRoom(ctx context.Context, propertyID, roomID, page, perPage int) ([]Booking, *client.Page, error) {
	body, err := s.api.Do(ctx, http.MethodGet, client.RoomBookingsPath(propertyID, roomID), pageQuery(page, perPage), nil)
	if err != nil {
		return nil, nil, err
	}
	return client.DecodeList[Booking](body)
}

// Get returns a single booking.
func (s *BookingService) Get(ctx context.Context, id int) (*Booking, error) {
	body, err := s.api.Do(ctx, http.MethodGet, client.BookingPath(id), nil, nil)
	if err != nil {
		return nil, err
	}
	b, err := client.DecodeObject[Booking](body)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create creates a booking.
func (s *BookingService) Create(ctx context.Context, b Booking) (*Booking, error) {
	body, err := s.api.Do(ctx, http.MethodPost, "/admin/bookings", nil, b)
	if err != nil {
		return nil, err
	}
	created, err := client.DecodeObject[Booking](body)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update updates a booking.
func (s *BookingService) Update(ctx context.Context, id int, b Booking) (*Booking, error) {
	body, err := s.api.Do(ctx, http.MethodPut, client.BookingPath(id), nil, b)
	if err != nil {
		return nil, err
	}
	updated, err := client.DecodeObject[Booking](body)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Cancel cancels a booking with a reason.
func (s *BookingService) Cancel(ctx context.Context, id int, reason string) error {
	payload := map[string]string{"reason": reason}
	return s.api.Put(ctx, client.BookingPath(id)+"/cancel", payload, nil)
}

// CurrentUser returns the account behind the current access token.
func CurrentUser(ctx context.Context, api *client.Client) (*User, error) {
	body, err := api.Do(ctx, http.MethodGet, client.PathUsers, nil, nil)
	if err != nil {
		return nil, err
	}
	u, err := client.DecodeObject[User](body)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
