package service

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/leshachaplin/convrelay/internal/apierror"
	"github.com/leshachaplin/convrelay/internal/domain"
)

const (
	msgBodyRequired = "Request body is required."
	msgInvalidJSON  = "Request body must be a JSON object."
	msgMissingField = "Missing required fields: "
)

// DecodeEvent parses the request body. A missing body or JSON null yields a nil event
// and no error; Validate reports it. Only a body that is not a JSON object fails here.
func DecodeEvent(body []byte) (*domain.InboundEvent, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}

	var event *domain.InboundEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, apierror.NewValidationError(msgInvalidJSON)
	}
	return event, nil
}

// Validate checks presence only. Field types and URL or PII formats are never
// rejected: DecodeEvent stringifies whatever JSON type a field carries.
func Validate(event *domain.InboundEvent) error {
	if event == nil {
		return apierror.NewValidationError(msgBodyRequired)
	}

	var missing []string
	if _, ok := event.EventName.Value(); !ok {
		missing = append(missing, "event_name")
	}
	if !event.UserData.Present() {
		missing = append(missing, "user_data")
	}
	if _, ok := event.EventSourceURL.Value(); !ok {
		missing = append(missing, "event_source_url")
	}

	if len(missing) > 0 {
		return apierror.NewValidationError(msgMissingField + strings.Join(missing, ", ") + ".")
	}
	return nil
}
