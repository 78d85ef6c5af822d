package logging

import (
	"log/slog"
	"os"

	"github.com/go-chi/httplog/v3"
)

// New returns a JSON logger whose attributes follow the ECS schema used by the request logger.
func New(level, env string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env == "development")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       parseLevel(level),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-compensation"),
		slog.String("env", env),
	)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
