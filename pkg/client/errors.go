package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is returned when a request ends the 401 cascade without
// recovering: the refresh either failed or was not possible, and the local
// session has been expired.
var ErrUnauthorized = errors.New("client: unauthorized")

// APIError is a non-2xx response from the backend that is not part of the
// authorization cascade. The server message is extracted from the body when
// one is present.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("client: backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("client: backend returned %d (%s)", e.StatusCode, http.StatusText(e.StatusCode))
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// apiErrorFromBody builds an APIError, pulling a display message out of the
// common error body shapes ({"message": ...} or {"error": ...}).
func apiErrorFromBody(status int, requestID string, body []byte) *APIError {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(body, &envelope); err == nil {
		msg = envelope.Message
		if msg == "" {
			msg = envelope.Error
		}
	}
	return &APIError{StatusCode: status, Message: msg, RequestID: requestID}
}
