package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned for any response whose status is not the one the call
// expected. Body is decoded when the server sent its usual error shape.
type APIError struct {
	StatusCode int
	Body       ErrorResponse

	// WWWAuthenticate is the challenge sent with 401 responses
	WWWAuthenticate string
}

func (e *APIError) Error() string {
	if e.Body.Message == "" {
		return fmt.Sprintf("authsdk: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("authsdk: %d %s: %s", e.StatusCode, e.Body.Name, e.Body.Message)
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not an
// *APIError.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// parseErrorResponse turns a non-2xx response into an *APIError. Bodies that
// are not JSON still produce an error carrying the status.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{
		StatusCode:      resp.StatusCode,
		WWWAuthenticate: resp.Header.Get("WWW-Authenticate"),
	}
	_ = json.Unmarshal(body, &apiErr.Body)
	return apiErr
}
