// Package logger builds the service's zerolog logger and its echo request
// logging middleware.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var callerMarshalOnce sync.Once

// New creates a logger writing to stdout at level. If pretty is true,
// output is formatted for human readability. Unknown levels fall back to info.
func New(level string, pretty bool) zerolog.Logger {
	return NewWithWriter(os.Stdout, level, pretty)
}

// NewWithWriter is like New but writes to w.
func NewWithWriter(w io.Writer, level string, pretty bool) zerolog.Logger {
	callerMarshalOnce.Do(func() {
		zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
			return filepath.Base(filepath.Dir(file)) + "/" + filepath.Base(file) + ":" + strconv.Itoa(line)
		}
	})

	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	zLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		zLevel = zerolog.InfoLevel
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(zLevel)
}
