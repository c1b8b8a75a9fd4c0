// Package logger wraps zerolog behind a process-wide singleton.
// Call Setup once from main, then Get from any package that needs to log.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu       sync.Mutex
	instance zerolog.Logger
	ready    bool
)

// Setup builds the singleton logger. The first call wins; later calls
// return the already-built instance unchanged.
//
// level accepts debug, info, warn and error; anything else falls back to
// info. When pretty is true output goes through zerolog's console writer,
// otherwise raw JSON is written to out (os.Stdout when out is nil).
func Setup(level string, pretty bool, out io.Writer) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if ready {
		return instance
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	if out == nil {
		out = os.Stdout
	}
	if pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl := parseLevel(level)
	zerolog.SetGlobalLevel(lvl)

	instance = zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "publishing-api").
		Logger()
	ready = true
	return instance
}

// Get returns the singleton. Panics when Setup has not run; configuration
// bugs like that should surface at startup, not be papered over.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !ready {
		panic("logger: Get called before Setup")
	}
	return instance
}

// Reset discards the singleton so tests can rebuild it with other options.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	instance = zerolog.Logger{}
	ready = false
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
