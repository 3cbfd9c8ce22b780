package service

import (
	"bytes"
	"encoding/json"

	"github.com/leshachaplin/convrelay/internal/domain"
	"github.com/leshachaplin/convrelay/internal/hasher"
)

// BuildPayload assembles the batch-of-one request body for a validated event.
func BuildPayload(event domain.InboundEvent, meta domain.RequestMeta) domain.OutboundPayload {
	ud := event.UserData

	userData := domain.NormalizedUserData{
		Email:           hashPII(ud.Email),
		Phone:           hashPII(ud.Phone),
		FirstName:       hashPII(ud.FirstName),
		LastName:        hashPII(ud.LastName),
		ExternalID:      passthrough(event.ExternalID),
		ClientIPAddress: optional(meta.ClientIP),
		ClientUserAgent: optional(meta.UserAgent),
	}
	if fbp, ok := event.FBP.Value(); ok && fbp != domain.FBPAbsent {
		userData.FBP = optional(fbp)
	}

	return domain.OutboundPayload{
		Data: []domain.ServerEvent{{
			EventName:      event.EventName.String(),
			EventTime:      meta.ReceivedAt.Unix(),
			ActionSource:   domain.ActionSourceWebsite,
			EventSourceURL: event.EventSourceURL.String(),
			UserData:       userData,
		}},
	}
}

func hashPII(p domain.Text) *string {
	v, ok := p.Value()
	if !ok {
		return nil
	}
	return hasher.HashPtr(v)
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

var (
	jsonNull        = []byte("null")
	jsonEmptyString = []byte(`""`)
)

func passthrough(raw json.RawMessage) json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) || bytes.Equal(raw, jsonEmptyString) {
		return nil
	}
	return raw
}
