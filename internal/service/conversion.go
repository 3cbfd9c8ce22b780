package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/leshachaplin/convrelay/internal/apierror"
	"github.com/leshachaplin/convrelay/internal/domain"
	"github.com/leshachaplin/convrelay/internal/upstream"
)

const msgNotConfigured = "Server configuration error: conversions API credentials are not set."

// Track validates the body, builds the payload and sends it upstream once.
// Returned errors are always apierror.Error.
func (s *Service) Track(ctx context.Context, body []byte, meta domain.RequestMeta) (json.RawMessage, error) {
	l := s.log(ctx)

	if !s.upstreamCfg.Configured() {
		l.Error().Msg("pixel id or access token not loaded")
		return nil, apierror.NewConfigurationError(msgNotConfigured)
	}

	event, err := DecodeEvent(body)
	if err != nil {
		l.Warn().Err(err).Msg("invalid conversion body")
		return nil, err
	}
	if err = Validate(event); err != nil {
		l.Warn().Err(err).Msg("invalid conversion event")
		return nil, err
	}

	payload := BuildPayload(*event, meta)
	l.Info().
		Str("event_name", event.EventName.String()).
		Time("received_at", meta.ReceivedAt).
		Msg("forwarding conversion")

	resp, err := s.sender.Send(ctx, payload)
	if err != nil {
		var rejection *upstream.RejectionError
		if errors.As(err, &rejection) {
			l.Error().
				Str("url", s.sender.RedactedEndpoint()).
				Int("upstream_status", rejection.StatusCode).
				RawJSON("upstream_error", rejection.Body).
				Msg("conversions api rejected event")
			return nil, apierror.NewUpstreamRejection(rejection.Body)
		}

		l.Error().Stack().Err(err).
			Str("url", s.sender.RedactedEndpoint()).
			Msg("conversion delivery failed")
		return nil, apierror.NewInternalError()
	}

	l.Info().Str("event_name", event.EventName.String()).Msg("conversion delivered")
	return resp, nil
}
