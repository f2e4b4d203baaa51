package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns the console logger used before configuration is loaded.
func New() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}

	return zerolog.New(output).
		With().
		Timestamp().
		Str("service", "training-site").
		Logger().
		Level(zerolog.InfoLevel)
}

func NewWithConfig(level string, pretty, noColor bool) zerolog.Logger {
	return newLogger(os.Stdout, level, pretty, noColor)
}

func newLogger(out io.Writer, level string, pretty, noColor bool) zerolog.Logger {
	if pretty {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    noColor,
		}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(out).
		With().
		Timestamp().
		Str("service", "training-site").
		Logger().
		Level(lvl)
}
