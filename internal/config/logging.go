package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds a logger from the logging settings. Output goes to the
// configured file, or to fallback when no file is set. The returned closer
// releases the file and is never nil.
//
// Unknown levels fall back to info.
func (c LoggingConfig) NewLogger(fallback io.Writer) (zerolog.Logger, io.Closer, error) {
	lvl, err := zerolog.ParseLevel(c.Level)
	if err != nil || c.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var (
		out    io.Writer = fallback
		closer io.Closer = nopCloser{}
	)
	if c.File != "" {
		f, err := os.OpenFile(c.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return zerolog.Nop(), closer, err
		}
		out, closer = f, f
	} else if fallback == nil {
		return zerolog.Nop(), closer, nil
	} else {
		out = zerolog.ConsoleWriter{Out: fallback, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(out)).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
