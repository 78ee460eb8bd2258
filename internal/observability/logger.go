package observability

import (
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/college-tracker/internal/config"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

// NewLogger builds the service logger on stdout in the configured format.
func NewLogger(cfg *config.Config) *slog.Logger {
	return sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
}

// NewCLILogger builds a text logger on stderr so command output on stdout
// stays machine-readable. The shared logger always writes to stdout, so
// only the level is taken from it.
func NewCLILogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cliLevel(cfg.LogLevel)}))
}

func cliLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
