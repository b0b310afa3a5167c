package client

import (
	"strconv"
	"strings"

	"github.com/yosida95/uritemplate/v3"
)

// RouteClass determines whether a request carries credentials.
type RouteClass int

const (
	// RoutePublic routes never receive an Authorization header, even when a
	// token is available, so stale credentials don't leak to anonymous
	// endpoints.
	RoutePublic RouteClass = iota

	// RouteProtected routes receive a bearer token when one is available.
	RouteProtected
)

func (c RouteClass) String() string {
	if c == RouteProtected {
		return "protected"
	}
	return "public"
}

// Well-known endpoint paths.
const (
	PathLogin   = "/login"
	PathRefresh = "/refresh"
	PathLogout  = "/logout"
	PathUsers   = "/users"
)

// credentialedPaths are non-/admin/ endpoints that still require the access
// token: logging out revokes the current token, and the current-user lookup
// is scoped to it.
var credentialedPaths = map[string]bool{
	PathLogout: true,
	PathUsers:  true,
}

// Classify maps a request path to its route class. A protected-prefix match
// takes precedence over any public match, so a path that is ambiguous
// resolves deterministically to protected.
func Classify(path string) RouteClass {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if strings.Contains(path, "/admin/") || path == "/admin" {
		return RouteProtected
	}
	if credentialedPaths[path] {
		return RouteProtected
	}
	return RoutePublic
}

// Endpoint templates (RFC 6570). Templates are static and expanded with
// plain string values, so expansion cannot fail at runtime.
var (
	tmplProperty         = uritemplate.MustNew("/admin/properties/{id}")
	tmplPropertyPublic   = uritemplate.MustNew("/properties/{id}")
	tmplRooms            = uritemplate.MustNew("/admin/properties/{pid}/rooms")
	tmplRoom             = uritemplate.MustNew("/admin/properties/{pid}/rooms/{rid}")
	tmplAvailability     = uritemplate.MustNew("/admin/properties/{pid}/rooms/{rid}/availability")
	tmplClose            = uritemplate.MustNew("/admin/properties/{pid}/rooms/{rid}/close")
	tmplBooking          = uritemplate.MustNew("/admin/bookings/{id}")
	tmplPropertyBookings = uritemplate.MustNew("/admin/properties/{pid}/bookings")
	tmplRoomBookings     = uritemplate.MustNew("/admin/properties/{pid}/rooms/{rid}/bookings")
)

func expand(tmpl *uritemplate.Template, vars map[string]int) string {
	values := uritemplate.Values{}
	for name, v := range vars {
		values[name] = uritemplate.String(strconv.Itoa(v))
	}
	path, err := tmpl.Expand(values)
	if err != nil {
		// Unreachable with static templates and string values.
		panic(err)
	}
	return path
}

// PropertyPath returns the admin path for a single property.
func PropertyPath(id int) string {
	return expand(tmplProperty, map[string]int{"id": id})
}

// PublicPropertyPath returns the anonymous path for a single property.
func PublicPropertyPath(id int) string {
	return expand(tmplPropertyPublic, map[string]int{"id": id})
}

// RoomsPath returns the room collection path for a property.
func RoomsPath(propertyID int) string {
	return expand(tmplRooms, map[string]int{"pid": propertyID})
}

// RoomPath returns the path for a single room.
func RoomPath(propertyID, roomID int) string {
	return expand(tmplRoom, map[string]int{"pid": propertyID, "rid": roomID})
}

// AvailabilityPath returns the availability collection path for a room.
func AvailabilityPath(propertyID, roomID int) string {
	return expand(tmplAvailability, map[string]int{"pid": propertyID, "rid": roomID})
}

// ClosePath returns the close/open range path for a room.
func ClosePath(propertyID, roomID int) string {
	return expand(tmplClose, map[string]int{"pid": propertyID, "rid": roomID})
}

// BookingPath returns the path for a single booking.
func BookingPath(id int) string {
	return expand(tmplBooking, map[string]int{"id": id})
}

// PropertyBookingsPath returns the booking collection path for a property.
func PropertyBookingsPath(propertyID int) string {
	return expand(tmplPropertyBookings, map[string]int{"pid": propertyID})
}

// RoomBookingsPath returns the booking collection path for a room.
func RoomBookingsPath(propertyID, roomID int) string {
	return expand(tmplRoomBookings, map[string]int{"pid": propertyID, "rid": roomID})
}
