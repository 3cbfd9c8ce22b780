package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/leshachaplin/convrelay/internal/domain"
	"github.com/leshachaplin/convrelay/internal/upstream"
)

// Sender delivers one payload to the conversions API.
type Sender interface {
	Send(ctx context.Context, payload domain.OutboundPayload) (json.RawMessage, error)
	// RedactedEndpoint is the target URL with the access token masked, safe to log.
	RedactedEndpoint() string
}

// Conversion turns a raw request body into exactly one upstream delivery.
type Conversion interface {
	Track(ctx context.Context, body []byte, meta domain.RequestMeta) (json.RawMessage, error)
}

type Service struct {
	upstreamCfg upstream.Config
	sender      Sender
	logger      zerolog.Logger
}

func New(upstreamCfg upstream.Config, sender Sender, logger zerolog.Logger) *Service {
	return &Service{
		upstreamCfg: upstreamCfg,
		sender:      sender,
		logger:      logger,
	}
}

func (s *Service) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &s.logger
}
