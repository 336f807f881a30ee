package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Fixed messages for the client-side upload gates. These are checked before
// any network call is made.
var (
	ErrNotPDF       = errors.New("only PDF files are allowed")
	ErrFileTooLarge = errors.New("file is too large (max 50MB)")
)

// Error represents an error response from the HelpDesk API.
type Error struct {
	StatusCode int
	Code       string // short error name from the server, e.g. "Resource Not Found"
	Message    string
	Op         string // operation that failed, e.g. "SendMessage"
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %d %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%d %s", e.StatusCode, e.Message)
}

// errorBody is the standard error payload the server returns.
type errorBody struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// parseError builds an *Error from a non-2xx response body. The server
// sends {status, error, message, timestamp}; anything else falls back to
// the raw body or the HTTP status text.
func parseError(statusCode int, body []byte) *Error {
	apiErr := &Error{StatusCode: statusCode}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Message != "" {
		apiErr.Code = eb.Error
		apiErr.Message = eb.Message
		return apiErr
	}

	if len(body) > 0 {
		apiErr.Message = string(body)
	} else {
		apiErr.Message = http.StatusText(statusCode)
	}
	return apiErr
}

// IsNotFound reports whether err is a 404 response, typically a stale
// document or conversation id.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 response (bad credentials or
// a token the server no longer accepts).
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsConflict reports whether err is a 409 response, e.g. registering an
// email that already exists.
func IsConflict(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}

// ErrorMessage extracts the human-readable server message from err, or
// returns fallback when the error carries none. Views use this to show the
// server text verbatim with a fixed string as the last resort.
func ErrorMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// wrapError records the operation name on API errors and wraps everything
// else untranslated.
func wrapError(err error, op string) error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		apiErr.Op = op
		return apiErr
	}
	return fmt.Errorf("%s: %w", op, err)
}
