package state

import (
	"github.com/rs/zerolog"

	"libraryapi/internal/logging"
)

// Notifier surfaces short user facing messages about container operations.
type Notifier interface {
	Success(msg string)
	Failure(msg string, err error)
}

// LogNotifier writes notices to a zerolog logger.
type LogNotifier struct {
	Log zerolog.Logger
}

func NewLogNotifier() LogNotifier {
	return LogNotifier{Log: logging.With("state")}
}

func (n LogNotifier) Success(msg string) {
	n.Log.Info().Msg(msg)
}

func (n LogNotifier) Failure(msg string, err error) {
	n.Log.Error().Err(err).Msg(msg)
}
