package logger

import (
	"log/slog"
	"os"
	"strings"
)

func levelFromString(s string) (l slog.Level, ok bool) {
	switch strings.ToLower(s) {
	case "debug", "dbg":
		return slog.LevelDebug, true
	case "info", "inf":
		return slog.LevelInfo, true
	case "warn", "wrn":
		return slog.LevelWarn, true
	case "error", "err":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Init installs a text slog handler on stderr at the given level and makes
// it the default logger.
func Init(level string) {
	loglevel, _ := levelFromString(level)

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: loglevel})
	slog.SetDefault(slog.New(handler))
}
