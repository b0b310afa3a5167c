package client

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Page carries pagination metadata when the backend returns the paginated
// envelope shape. Nil when the response carried no pagination.
type Page struct {
	Total       int `json:"total"`
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	LastPage    int `json:"last_page"`
}

// envelope is the generic wrapper some deployments of the backend put
// around payloads. Data is kept raw because its shape varies.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// pagedData is the innermost paginated shape:
// {"data": {"data": [...], "total": N, "current_page": N}}.
type pagedData struct {
	Data        json.RawMessage `json:"data"`
	Total       int             `json:"total"`
	CurrentPage int             `json:"current_page"`
	PerPage     int             `json:"per_page"`
	LastPage    int             `json:"last_page"`
}

// DecodeList normalizes the three list shapes the backend has been observed
// to return: a bare array, {"data": [...]}, and the doubly nested paginated
// form. All three are permanently supported; the backend contract was never
// pinned to one of them.
func DecodeList[T any](body []byte) ([]T, *Page, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil, nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, nil, fmt.Errorf("decoding list body: %w", err)
		}
		return items, nil, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, nil, fmt.Errorf("decoding response envelope: %w", err)
	}
	inner := bytes.TrimSpace(env.Data)
	if len(inner) == 0 || bytes.Equal(inner, []byte("null")) {
		return nil, nil, nil
	}

	if inner[0] == '[' {
		var items []T
		if err := json.Unmarshal(inner, &items); err != nil {
			return nil, nil, fmt.Errorf("decoding enveloped list: %w", err)
		}
		return items, nil, nil
	}

	var paged pagedData
	if err := json.Unmarshal(inner, &paged); err != nil {
		return nil, nil, fmt.Errorf("decoding paginated envelope: %w", err)
	}
	var items []T
	if len(paged.Data) > 0 && !bytes.Equal(bytes.TrimSpace(paged.Data), []byte("null")) {
		if err := json.Unmarshal(paged.Data, &items); err != nil {
			return nil, nil, fmt.Errorf("decoding paginated list: %w", err)
		}
	}
	page := &Page{
		Total:       paged.Total,
		CurrentPage: paged.CurrentPage,
		PerPage:     paged.PerPage,
		LastPage:    paged.LastPage,
	}
	return items, page, nil
}

// DecodeObject normalizes a single-object response that may arrive bare or
// wrapped in {"data": {...}}.
func DecodeObject[T any](body []byte) (T, error) {
	var zero T
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return zero, fmt.Errorf("decoding object: empty response body")
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err == nil && len(env.Data) > 0 {
		inner := bytes.TrimSpace(env.Data)
		if !bytes.Equal(inner, []byte("null")) {
			var out T
			if err := json.Unmarshal(inner, &out); err != nil {
				return zero, fmt.Errorf("decoding enveloped object: %w", err)
			}
			return out, nil
		}
	}

	var out T
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return zero, fmt.Errorf("decoding object body: %w", err)
	}
	return out, nil
}
