package shared

import (
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/rs/zerolog"
)

// SetupLogger configures the human-facing console logger used by commands
// and the TUI.
func SetupLogger(debug bool) *charmlog.Logger {
	logger := charmlog.New(os.Stderr)
	if debug {
		logger.SetLevel(charmlog.DebugLevel)
	}
	return logger
}

// SetupStoreLogger configures the structured logger the persistence store
// writes through.
func SetupStoreLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
