package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		path string
		want RouteClass
	}{
		{"login is public", "/login", RoutePublic},
		{"refresh is public", "/refresh", RoutePublic},
		{"logout carries credentials", "/logout", RouteProtected},
		{"current user carries credentials", "/users", RouteProtected},
		{"public property list", "/properties", RoutePublic},
		{"public property detail", "/properties/3", RoutePublic},
		{"admin root", "/admin", RouteProtected},
		{"admin property", "/admin/properties/3", RouteProtected},
		{"nested admin path", "/admin/properties/3/rooms/7/availability", RouteProtected},
		{"admin segment mid-path", "/v2/admin/bookings", RouteProtected},
		{"query string ignored", "/admin/bookings?page=2", RouteProtected},
		{"query string on public path", "/properties?page=2", RoutePublic},
		{"fragment ignored", "/admin/properties#top", RouteProtected},
		{"admin-like prefix without separator", "/administrators", RoutePublic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.path))
		})
	}
}

func TestClassify_ProtectedTakesPrecedence(t *testing.T) {
	// A path that contains /admin/ is protected no matter what else it
	// looks like.
	assert.Equal(t, RouteProtected, Classify("/properties/admin/3"))
}

func TestRouteClassString(t *testing.T) {
	assert.Equal(t, "public", RoutePublic.String())
	assert.Equal(t, "protected", RouteProtected.String())
}

func TestPathHelpers(t *testing.T) {
	assert.Equal(t, "/admin/properties/3", PropertyPath(3))
	assert.Equal(t, "/properties/3", PublicPropertyPath(3))
	assert.Equal(t, "/admin/properties/3/rooms", RoomsPath(3))
	assert.Equal(t, "/admin/properties/3/rooms/7", RoomPath(3, 7))
	assert.Equal(t, "/admin/properties/3/rooms/7/availability", AvailabilityPath(3, 7))
	assert.Equal(t, "/admin/properties/3/rooms/7/close", ClosePath(3, 7))
	assert.Equal(t, "/admin/bookings/11", BookingPath(11))
	assert.Equal(t, "/admin/properties/3/bookings", PropertyBookingsPath(3))
	assert.Equal(t, "/admin/properties/3/rooms/7/bookings", RoomBookingsPath(3, 7))
}

func TestPathHelpers_AreProtected(t *testing.T) {
	paths := []string{
		PropertyPath(1),
		RoomsPath(1),
		RoomPath(1, 2),
		AvailabilityPath(1, 2),
		ClosePath(1, 2),
		BookingPath(1),
		PropertyBookingsPath(1),
		RoomBookingsPath(1, 2),
	}
	for _, p := range paths {
		assert.Equal(t, RouteProtected, Classify(p), "path %s", p)
	}
	assert.Equal(t, RoutePublic, Classify(PublicPropertyPath(1)))
}
