package testlog

import (
	"testing"

	"github.com/danmuck/dot11dec/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Start configures test logging and marks the beginning of t.
func Start(t *testing.T) {
	t.Helper()
	logging.ConfigureTests()
	log.Info().Str("test", t.Name()).Msg("start")
}

// Logger writes through t.Log so output is attached to the failing test.
func Logger(t *testing.T) zerolog.Logger {
	t.Helper()
	w := zerolog.NewTestWriter(t)
	return zerolog.New(&w).Level(zerolog.DebugLevel)
}
