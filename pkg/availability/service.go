package availability

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dotprogrammers/walc-admin/pkg/client"
)

// Service talks to the availability endpoints through the gateway.
type Service struct {
	api *client.Client
}

// NewService creates a Service.
func NewService(api *client.Client) *Service {
	return &Service{api: api}
}

// FetchRange returns all overrides for a room between startDate and
// endDate inclusive.
func (s *Service) FetchRange(ctx context.Context, propertyID, roomID int, startDate, endDate string) ([]Override, error) {
	query := url.Values{}
	query.Set("start_date", startDate)
	query.Set("end_date", endDate)

	body, err := s.api.Do(ctx, http.MethodGet, client.AvailabilityPath(propertyID, roomID), query, nil)
	if err != nil {
		return nil, err
	}

	rows, _, err := client.DecodeList[Override](body)
	if err != nil {
		return nil, fmt.Errorf("decoding availability rows: %w", err)
	}
	return rows, nil
}

// Submit posts a batch of per-date records as a single call. Single-date
// edits arrive here as a one-element batch.
func (s *Service) Submit(ctx context.Context, propertyID, roomID int, records []DateRecord) error {
	payload := map[string][]DateRecord{"dates": records}
	return s.api.Post(ctx, client.AvailabilityPath(propertyID, roomID), payload, nil)
}

// closePayload is the body of the close/open range endpoint.
type closePayload struct {
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	ClosedReason string `json:"closed_reason,omitempty"`
	IsClosed     bool   `json:"is_closed"`
}

// CloseRange marks a room closed for the inclusive date range.
func (s *Service) CloseRange(ctx context.Context, propertyID, roomID int, startDate, endDate, reason string) error {
	if _, err := DateRange(startDate, endDate); err != nil {
		return err
	}
	payload := closePayload{
		StartDate:    startDate,
		EndDate:      endDate,
		ClosedReason: reason,
		IsClosed:     true,
	}
	return s.api.Put(ctx, client.ClosePath(propertyID, roomID), payload, nil)
}

// OpenRange reopens a room for the inclusive date range.
func (s *Service) OpenRange(ctx context.Context, propertyID, roomID int, startDate, endDate string) error {
	if _, err := DateRange(startDate, endDate); err != nil {
		return err
	}
	payload := closePayload{
		StartDate: startDate,
		EndDate:   endDate,
		IsClosed:  false,
	}
	return s.api.Put(ctx, client.ClosePath(propertyID, roomID), payload, nil)
}

// Verify interface compliance.
var _ API = (*Service)(nil)
