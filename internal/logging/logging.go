// Package logging bootstraps the process-wide structured logger. Grounded
// on the teacher's declared (zerolog) logging dependency: log lines carry
// structured fields rather than formatted strings — dropped messages log a
// "reason" field via errs.LogAndDrop, startup and shutdown log "addr" and
// "signal" — so drops and rejections (§7) stay greppable.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the base logger. levelName is one of zerolog's level strings
// ("debug", "info", "warn", "error"); an unrecognized value falls back to
// info. pretty selects the human-readable console writer (for local
// development) over structured JSON (for production log shipping).
func New(levelName string, pretty bool) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(levelName))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if pretty {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
