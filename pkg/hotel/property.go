package hotel

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dotprogrammers/walc-admin/pkg/client"
)

// Backend defaults applied to new properties when the operator leaves the
// corresponding fields blank.
const (
	defaultCheckInTime  = "14:00-22:00"
	defaultCheckOutTime = "11:00"
	defaultPriceType    = "nightly"
)

// PropertyService manages properties. Listing and fetching are public
// routes; mutations go through the admin routes.
type PropertyService struct {
	api *client.Client
}

// NewPropertyService creates a PropertyService.
func NewPropertyService(api *client.Client) *PropertyService {
	return &PropertyService{api: api}
}

// List returns properties with pagination metadata when the backend
// provides it.
func (s *PropertyService) List(ctx context.Context, page, perPage int) ([]Property, *client.Page, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		query.Set("per_page", strconv.Itoa(perPage))
	}

	body, err := s.api.Do(ctx, http.MethodGet, "/properties", query, nil)
	if err != nil {
		return nil, nil, err
	}
	return client.DecodeList[Property](body)
}

// Get returns a single property by ID via the public route.
func (s *PropertyService) Get(ctx context.Context, id int) (*Property, error) {
	body, err := s.api.Do(ctx, http.MethodGet, client.PublicPropertyPath(id), nil, nil)
	if err != nil {
		return nil, err
	}
	p, err := client.DecodeObject[Property](body)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create creates a property. Blank policy fields get the backend's
// expected defaults before dispatch.
func (s *PropertyService) Create(ctx context.Context, p Property) (*Property, error) {
	applyPropertyDefaults(&p)

	body, err := s.api.Do(ctx, http.MethodPost, "/admin/properties", nil, p)
	if err != nil {
		return nil, err
	}
	created, err := client.DecodeObject[Property](body)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update updates a property. The backend takes updates as POST on the
// resource path, not PUT.
func (s *PropertyService) Update(ctx context.Context, id int, p Property) (*Property, error) {
	body, err := s.api.Do(ctx, http.MethodPost, client.PropertyPath(id), nil, p)
	if err != nil {
		return nil, err
	}
	updated, err := client.DecodeObject[Property](body)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a property.
func (s *PropertyService) Delete(ctx context.Context, id int) error {
	return s.api.Delete(ctx, client.PropertyPath(id))
}

func applyPropertyDefaults(p *Property) {
	if p.PriceType == "" {
		p.PriceType = defaultPriceType
	}
	if p.MinStayNights == 0 {
		p.MinStayNights = 1
	}
	if p.Policies.CheckInTime == "" {
		p.Policies.CheckInTime = defaultCheckInTime
	}
	if p.Policies.CheckOutTime == "" {
		p.Policies.CheckOutTime = defaultCheckOutTime
	}
	if p.CheckInOptions.TimeRange == "" {
		p.CheckInOptions.TimeRange = p.Policies.CheckInTime
	}
	if p.CheckOutOptions.Time == "" {
		p.CheckOutOptions.Time = p.Policies.CheckOutTime
	}
	if p.Amenities == nil {
		p.Amenities = []string{}
	}
}
