package hotel

import (
	"context"
	"net/http"

	"github.com/dotprogrammers/walc-admin/pkg/client"
)

// RoomService manages the rooms of a property. All room routes are admin
// routes.
type RoomService struct {
	api *client.Client
}

// NewRoomService creates a RoomService.
func NewRoomService(api *client.Client) *RoomService {
	return &RoomService{api: api}
}

// List returns all rooms of a property.
func (s *RoomService) List(ctx context.Context, propertyID int) ([]Room, error) {
	body, err := s.api.Do(ctx, http.MethodGet, client.RoomsPath(propertyID), nil, nil)
	if err != nil {
		return nil, err
	}
	rooms, _, err := client.DecodeList[Room](body)
	return rooms, err
}

// Get returns a single room.
func (s *RoomService) Get(ctx context.Context, propertyID, roomID int) (*Room, error) {
	body, err := s.api.Do(ctx, http.MethodGet, client.RoomPath(propertyID, roomID), nil, nil)
	if err != nil {
		return nil, err
	}
	room, err := client.DecodeObject[Room](body)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Create adds a room to a property. Blank fields get the backend's
// expected defaults.
func (s *RoomService) Create(ctx context.Context, propertyID int, r Room) (*Room, error) {
	applyRoomDefaults(&r)

	body, err := s.api.Do(ctx, http.MethodPost, client.RoomsPath(propertyID), nil, r)
	if err != nil {
		return nil, err
	}
	created, err := client.DecodeObject[Room](body)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update updates a room. Like property updates, the backend takes these
// as POST on the resource path.
func (s *RoomService) Update(ctx context.Context, propertyID, roomID int, r Room) (*Room, error) {
	body, err := s.api.Do(ctx, http.MethodPost, client.RoomPath(propertyID, roomID), nil, r)
	if err != nil {
		return nil, err
	}
	updated, err := client.DecodeObject[Room](body)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a room.
func (s *RoomService) Delete(ctx context.Context, propertyID, roomID int) error {
	return s.api.Delete(ctx, client.RoomPath(propertyID, roomID))
}

func applyRoomDefaults(r *Room) {
	if r.RoomType == "" {
		r.RoomType = "Standard"
	}
	if r.TotalRooms == 0 {
		r.TotalRooms = 1
	}
	if r.MaxAdults == 0 {
		r.MaxAdults = 2
	}
	if r.BedType == "" {
		r.BedType = "Queen"
	}
	if r.Amenities == nil {
		r.Amenities = []string{}
	}
}
