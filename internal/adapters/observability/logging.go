package observability

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog Logger. APP_ENV=dev (or development) uses a
// human-friendly console writer; LOG_LEVEL overrides the default info level.
func NewLogger(env string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		if p, err := zerolog.ParseLevel(s); err == nil {
			lvl = p
		}
	}
	l := zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
	if env == "dev" || env == "development" {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			Level(lvl).With().Timestamp().Logger()
	}
	return l
}
