package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNetwork matches every *NetworkError.
	ErrNetwork = errors.New("network error")
	// ErrSessionExpired is returned when the refresh-and-retry protocol gives
	// up. The stored credentials have been cleared by then.
	ErrSessionExpired = errors.New("session expired, please login again")
	// ErrNoRefresher is reported when a 401 arrives before a refresher was
	// attached to the gateway.
	ErrNoRefresher = errors.New("no refresher configured")
)

// NetworkError is a transport failure: no HTTP response was received.
type NetworkError struct {
	Method  string
	URL     string
	Timeout bool
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s %s: request timed out", e.Method, e.URL)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// APIError is a non-2xx response. Message is the server-provided text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}

// newAPIError picks the message from the body: "detail" first, then
// "message", then a generic "HTTP <status>". A FastAPI style detail list
// contributes the "msg" of its first item.
func newAPIError(status int, body []byte) *APIError {
	return &APIError{Status: status, Message: errorMessage(status, body)}
}

func errorMessage(status int, body []byte) string {
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := detailText(payload.Detail); msg != "" {
			return msg
		}
		var msg string
		if json.Unmarshal(payload.Message, &msg) == nil && strings.TrimSpace(msg) != "" {
			return msg
		}
	}
	return fmt.Sprintf("HTTP %d", status)
}

func detailText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return strings.TrimSpace(s)
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal(raw, &items) == nil && len(items) > 0 {
		return strings.TrimSpace(items[0].Msg)
	}
	return ""
}
