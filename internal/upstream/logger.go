package upstream

import (
	"fmt"

	"github.com/rs/zerolog"
)

// leveledLogger adapts zerolog to retryablehttp.LeveledLogger and masks the
// access token in every value it prints.
type leveledLogger struct {
	logger zerolog.Logger
	redact func(string) string
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.fields(l.logger.Error(), keysAndValues).Msg(msg)
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.fields(l.logger.Info(), keysAndValues).Msg(msg)
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.fields(l.logger.Debug(), keysAndValues).Msg(msg)
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.fields(l.logger.Warn(), keysAndValues).Msg(msg)
}

func (l *leveledLogger) fields(e *zerolog.Event, keysAndValues []interface{}) *zerolog.Event {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		e = e.Str(key, l.redact(fmt.Sprint(keysAndValues[i+1])))
	}
	return e
}
