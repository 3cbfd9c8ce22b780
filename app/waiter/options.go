package waiter

import (
	"os"

	"github.com/rs/zerolog"
)

type Option func(*waiterCfg)

// WithSignals replaces the default SIGINT/SIGTERM set.
func WithSignals(signals ...os.Signal) Option {
	return func(cfg *waiterCfg) {
		cfg.signals = signals
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *waiterCfg) {
		cfg.logger = logger
	}
}
