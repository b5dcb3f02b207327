package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
)

var (
	ErrNoRefreshToken   = errors.New("no refresh token stored")
	ErrRefresh          = errors.New("failed to refresh access token")
	ErrEmptyQuery       = errors.New("search query is required")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrMissingField     = errors.New("required field is empty")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrNoToken          = errors.New("login response did not contain a token")
	errClientInit       = errors.New("failed to create api client")
	errRequest          = errors.New("failed to build request")
)

// HTTPError is returned for every failed request. Status is 0 when no response was received.
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Status == 0 {
		return "network error: " + e.Message
	}

	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) Network() bool {
	return e.Status == 0
}

// StatusCode extracts the http status of err, 0 when err carries none.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}

	return 0
}

// Message returns the user facing text of err.
func Message(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}

	return err.Error()
}

// errorMessage pulls a readable message out of the error bodies the api produces:
// {"error": ".."}, {"detail": ".."}, {"non_field_errors": [".."]} or {"field": [".."]}.
func errorMessage(status int, body []byte) string {
	fallback := http.StatusText(status)
	if fallback == "" {
		fallback = "request failed"
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		return fallback
	}

	for _, key := range []string{"error", "detail", "non_field_errors", "message"} {
		if raw, found := fields[key]; found {
			if msg := flatten(raw); msg != "" {
				return msg
			}
		}
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	parts := make([]string, 0, len(keys))

	for _, key := range keys {
		if msg := flatten(fields[key]); msg != "" {
			parts = append(parts, key+": "+msg)
		}
	}

	if len(parts) == 0 {
		return fallback
	}

	return strings.Join(parts, "; ")
}

func flatten(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, " ")
	}

	return ""
}
