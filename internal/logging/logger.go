package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/radutopala/switchboard/internal/interval"
)

// Redacted replaces the value of any attribute that may carry a credential.
const Redacted = "[redacted]"

// secretKeys are attribute keys whose values are never written. Interaction
// tokens stay valid for follow-up webhooks for fifteen minutes.
var secretKeys = map[string]bool{
	"token":             true,
	"bot_token":         true,
	"discord_token":     true,
	"interaction_token": true,
	"authorization":     true,
}

// NewLogger builds the switchboard logger on stderr. level is one of debug,
// info, warn (or warning) and error; format is text or json.
func NewLogger(level, format string) *slog.Logger {
	return NewLoggerWithWriter(level, format, os.Stderr)
}

// NewLoggerWithWriter is NewLogger with an explicit destination. Every
// record carries app=switchboard and credential attributes are masked. The
// text format prints durations of a second or more in words.
func NewLoggerWithWriter(level, format string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl <= slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		opts.ReplaceAttr = redact
		handler = slog.NewJSONHandler(w, opts)
	} else {
		opts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			return readableDuration(groups, redact(groups, a))
		}
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With("app", "switchboard")
}

// Discard is the logger tests hand to components that require one.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel reads a level name from config. Unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func redact(_ []string, a slog.Attr) slog.Attr {
	if secretKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, Redacted)
	}
	return a
}

func readableDuration(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindDuration {
		return a
	}
	d := a.Value.Duration()
	if d < time.Second {
		return a
	}
	return slog.String(a.Key, interval.Duration(d, interval.DefaultGranularity))
}
