// Package logger holds the process-wide zerolog logger. main calls Init
// once; code without an injected logger calls Get.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ServiceName is attached to every log line.
const ServiceName = "course-catalog"

type Options struct {
	// Level accepts zerolog level names plus "warning". Anything else
	// means info.
	Level string
	// Pretty selects the console writer instead of JSON lines.
	Pretty bool
	Output io.Writer // os.Stdout when nil
}

var (
	mu      sync.Mutex
	current *zerolog.Logger
)

// Init builds the logger on first use and returns it. Once built, later
// calls ignore opts.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if current != nil {
		return *current
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	l := zerolog.New(writer(opts)).
		Level(parseLevel(opts.Level)).
		With().
		Timestamp().
		Str("service", ServiceName).
		Logger()
	current = &l
	return l
}

func writer(opts Options) io.Writer {
	w := opts.Output
	if w == nil {
		w = os.Stdout
	}
	if !opts.Pretty {
		return w
	}
	return zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
}

// Get panics when called before Init.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		panic("logger: not initialised")
	}
	return *current
}

// Reset forgets the logger. Used by tests.
func Reset() {
	mu.Lock()
	current = nil
	mu.Unlock()
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return zerolog.WarnLevel
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
