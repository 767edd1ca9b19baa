package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// log is the process-wide logger. Init replaces it at startup.
var log = zerolog.New(os.Stdout).With().Timestamp().Logger()

type ctxKey struct{}

// Init configures the global logger. Development environments get the
// console writer, everything else emits JSON lines.
func Init(env string, logLevel string) {
	InitWriter(outputFor(env), logLevel)
}

// InitWriter is Init with an explicit sink.
func InitWriter(w io.Writer, logLevel string) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(ParseLevel(logLevel))
	log = zerolog.New(w).With().Timestamp().Caller().Logger()
}

func outputFor(env string) io.Writer {
	switch strings.ToLower(env) {
	case "", "dev", "development":
		return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	default:
		return os.Stdout
	}
}

// ParseLevel maps a config string to a zerolog level. Unknown or empty
// values fall back to info.
func ParseLevel(logLevel string) zerolog.Level {
	s := strings.ToLower(strings.TrimSpace(logLevel))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func Get() *zerolog.Logger {
	return &log
}

// WithContext returns the request-scoped logger, or the global one.
func WithContext(ctx context.Context) *zerolog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zerolog.Logger); ok {
		return l
	}
	return &log
}

func NewContext(ctx context.Context, l *zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// WithRequestID derives the per-request logger.
func WithRequestID(requestID string) zerolog.Logger {
	return log.With().Str("request_id", requestID).Logger()
}

// Component returns a child logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func ServiceStart(name, port string) {
	log.Info().Str("service", name).Str("port", port).Msg("Service Started")
}

func ServiceStop(name string) {
	log.Info().Str("service", name).Msg("Service Stopped")
}
