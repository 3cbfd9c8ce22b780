package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/leshachaplin/convrelay/internal/apierror"
	"github.com/leshachaplin/convrelay/internal/domain"
)

const (
	maxBodyBytes      = 1 << 20
	userAgentLogLimit = 50
	msgDelivered      = "Event sent to the Conversions API."
)

type conversionResponse struct {
	Message    string          `json:"message"`
	FBResponse json.RawMessage `json:"fb_response"`
}

func (h *Handler) Conversion(w http.ResponseWriter, r *http.Request) {
	receivedAt := time.Now()
	meta := domain.RequestMeta{
		ClientIP:   getClientIP(r),
		UserAgent:  r.UserAgent(),
		ReceivedAt: receivedAt,
	}

	l := zerolog.Ctx(r.Context())
	l.Info().Time("received_at", receivedAt).Msg("conversion request")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.error(apierror.NewAPIError("Request body too large.", http.StatusRequestEntityTooLarge), w, r)
			return
		}
		h.error(apierror.NewValidationError("Could not read request body."), w, r)
		return
	}

	resp, err := h.conversion.Track(r.Context(), body, meta)
	if err != nil {
		h.error(err, w, r)
		return
	}

	if err = encodeJSONResponse(w, http.StatusOK, conversionResponse{
		Message:    msgDelivered,
		FBResponse: resp,
	}); err != nil {
		l.Error().Err(err).Msg("write response")
	}
}
