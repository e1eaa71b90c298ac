package dashsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/holidash/pkg/httpx"
)

const (
	ErrorCodeInvalidRequest        = "invalid_request"
	ErrorCodeAuthenticationFailed  = "authentication_failed"
	ErrorCodeInvalidCountry        = "invalid_country"
	ErrorCodeUpstreamUnavailable   = "upstream_unavailable"
	ErrorCodeServerError           = "server_error"
	ErrorCodeRateLimitExceeded     = "rate_limit_exceeded"
	ErrorCodeDirectoryNotAvailable = "directory_unavailable"
)

// APIError is an error response of the holidash API. Handlers write it with
// WriteError; the client returns it for any non-2xx response.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes e as a JSON response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteError(w, e.StatusCode, e.Code, e.Description)
}

var (
	ErrInvalidFormBody = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "invalid form body",
	}

	// ErrAuthenticationFailed is the only answer to a failed login. It does
	// not say whether the identifier or the password was wrong.
	ErrAuthenticationFailed = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeAuthenticationFailed,
		Description: "Authentication failed",
	}

	ErrInvalidCountry = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidCountry,
		Description: "country must be a supported ISO 3166-1 alpha-2 code",
	}

	ErrUpstreamUnavailable = &APIError{
		StatusCode:  http.StatusBadGateway,
		Code:        ErrorCodeUpstreamUnavailable,
		Description: "an upstream service could not be reached",
	}

	ErrDirectoryNotAvailable = &APIError{
		StatusCode:  http.StatusServiceUnavailable,
		Code:        ErrorCodeDirectoryNotAvailable,
		Description: "the user directory has not been loaded yet",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// IsCode reports whether err is an *APIError with the given code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// parseErrorResponse builds an *APIError from a non-2xx response.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
