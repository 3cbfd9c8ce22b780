package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/leshachaplin/convrelay/internal/apierror"
	"github.com/leshachaplin/convrelay/internal/service"
)

type Handler struct {
	conversion service.Conversion
	logger     zerolog.Logger
}

func NewHandler(conversion service.Conversion, logger zerolog.Logger) *Handler {
	return &Handler{
		conversion: conversion,
		logger:     logger,
	}
}

// error writes err as JSON. Anything that is not an apierror.Error becomes the generic 500.
func (h *Handler) error(err error, w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	var apiErr apierror.Error
	if !errors.As(err, &apiErr) {
		l.Error().Err(err).Msg("unexpected error")
		apiErr = apierror.NewInternalError()
	}

	w.WriteHeader(apiErr.StatusCode())
	if err = json.NewEncoder(w).Encode(apiErr); err != nil {
		l.Error().Err(err).Msg("write error response")
	}
}

// log is the request scoped logger, or the handler's own when the request has none.
func (h *Handler) log(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &h.logger
}
