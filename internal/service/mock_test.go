package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/leshachaplin/convrelay/internal/domain"
)

type senderStub struct {
	mu       sync.Mutex
	payloads []domain.OutboundPayload
	resp     json.RawMessage
	err      error
}

func (s *senderStub) Send(_ context.Context, payload domain.OutboundPayload) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads = append(s.payloads, payload)
	return s.resp, s.err
}

func (s *senderStub) RedactedEndpoint() string {
	return "https://graph.example.com/v19.0/1234567890/events?access_token=REDACTED"
}

func (s *senderStub) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payloads)
}
