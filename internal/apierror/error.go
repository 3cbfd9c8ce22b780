package apierror

import (
	"encoding/json"
	"net/http"
)

const genericInternalMessage = "Internal server error while processing the conversion."

type HTTPPart struct {
	Code    int    `json:"-"`
	Message string `json:"-"`
}

type Error struct {
	Message string `json:"message"`
	// Upstream is the conversions API error body, passed through on rejection.
	Upstream json.RawMessage `json:"error,omitempty"`
	HTTP     HTTPPart        `json:"-"`
}

func (e Error) Error() string {
	return e.Message
}

func (e Error) StatusCode() int {
	return e.HTTP.Code
}

func NewAPIError(msg string, status int) Error {
	return Error{
		Message: msg,
		HTTP: HTTPPart{
			Code:    status,
			Message: http.StatusText(status),
		},
	}
}

// NewConfigurationError reports credentials or destination that were not loaded at startup.
func NewConfigurationError(msg string) Error {
	return NewAPIError(msg, http.StatusInternalServerError)
}

func NewValidationError(msg string) Error {
	return NewAPIError(msg, http.StatusBadRequest)
}

// NewUpstreamRejection wraps a non-success answer of the conversions API.
func NewUpstreamRejection(body json.RawMessage) Error {
	e := NewAPIError("Conversions API rejected the event.", http.StatusBadGateway)
	e.Upstream = body
	return e
}

// NewInternalError never carries the cause; log it before returning this.
func NewInternalError() Error {
	return NewAPIError(genericInternalMessage, http.StatusInternalServerError)
}
