// Package logger configures the application-wide structured logger.
package logger

import (
	"os"

	"github.com/rs/zerolog"

	"sokoni/internal/config"
)

// New returns the process logger. Production logs JSON to stderr; anything
// else gets the console writer.
func New() zerolog.Logger {
	if config.IsProduction() {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
