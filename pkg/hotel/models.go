// Package hotel provides the property, room and booking resource services.
// They are thin CRUD collaborators over the gateway; all response decoding
// goes through the defensive envelope normalization in pkg/client.
package hotel

// Policies holds a property's stay policies.
type Policies struct {
	Cancellation string `json:"cancellation,omitempty"`
	Payment      string `json:"payment,omitempty"`
	Other        string `json:"other,omitempty"`
	CheckInTime  string `json:"check_in_time,omitempty"`
	CheckOutTime string `json:"check_out_time,omitempty"`
}

// CheckInOptions holds a property's check-in terms.
type CheckInOptions struct {
	TimeRange       string  `json:"time_range,omitempty"`
	EarlyCheckIn    bool    `json:"early_check_in"`
	EarlyCheckInFee float64 `json:"early_check_in_fee"`
}

// CheckOutOptions holds a property's check-out terms.
type CheckOutOptions struct {
	Time            string  `json:"time,omitempty"`
	LateCheckOut    bool    `json:"late_check_out"`
	LateCheckOutFee float64 `json:"late_check_out_fee"`
}

// Property is a bookable property.
type Property struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	Featured      bool     `json:"featured"`
	Description   string   `json:"description"`
	Rating        float64  `json:"rating"`
	Location      string   `json:"location"`
	Price         float64  `json:"price"`
	PriceType     string   `json:"price_type"`
	RoomCount     int      `json:"room_count"`
	Capacity      int      `json:"capacity"`
	Amenities     []string `json:"amenities"`
	Highlights    []string `json:"highlights,omitempty"`
	Lat           float64  `json:"lat"`
	Lon           float64  `json:"lon"`
	Date          string   `json:"date,omitempty"`
	ImagePath     string   `json:"image_path,omitempty"`
	MinStayNights int      `json:"min_stay_nights"`
	HouseRules    []string `json:"house_rules,omitempty"`

	Policies        Policies        `json:"policies"`
	CheckInOptions  CheckInOptions  `json:"check_in_options"`
	CheckOutOptions CheckOutOptions `json:"check_out_options"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`

	Rooms []Room `json:"rooms,omitempty"`
}

// Room is a room type within a property. TotalRooms is the capacity
// ceiling the availability calendar falls back to on dates without an
// override.
type Room struct {
	ID                int      `json:"id"`
	PropertyID        int      `json:"property_id"`
	Name              string   `json:"name"`
	RoomType          string   `json:"room_type"`
	Description       string   `json:"description,omitempty"`
	TotalRooms        int      `json:"total_rooms"`
	Price             float64  `json:"price"`
	MaxAdults         int      `json:"max_adults"`
	MaxChildren       int      `json:"max_children"`
	MaxInfants        int      `json:"max_infants"`
	BreakfastIncluded bool     `json:"breakfast_included"`
	FreeCancellation  bool     `json:"free_cancellation"`
	Amenities         []string `json:"amenities,omitempty"`
	SizeSqm           float64  `json:"size_sqm"`
	BedType           string   `json:"bed_type,omitempty"`
	ImagePath         string   `json:"image_path,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Booking is a guest reservation.
type Booking struct {
	ID              int     `json:"id"`
	PropertyID      int     `json:"property_id"`
	RoomID          int     `json:"room_id"`
	GuestName       string  `json:"guest_name"`
	GuestEmail      string  `json:"guest_email"`
	GuestPhone      string  `json:"guest_phone,omitempty"`
	CheckInDate     string  `json:"check_in_date"`
	CheckOutDate    string  `json:"check_out_date"`
	Nights          int     `json:"nights"`
	TotalGuests     int     `json:"total_guests"`
	Adults          int     `json:"adults"`
	Children        int     `json:"children"`
	BasePrice       float64 `json:"base_price"`
	TotalPrice      float64 `json:"total_price"`
	Status          string  `json:"status"`
	PaymentStatus   string  `json:"payment_status,omitempty"`
	SpecialRequests string  `json:"special_requests,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// User is the authenticated backend account.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
