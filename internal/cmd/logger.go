package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/runger/redact/internal/config"
	"github.com/runger/redact/internal/logging"
)

// newLogger builds the structured logger from the config file's log
// settings. REDACT_DEBUG=1 forces debug level regardless of the configured
// level. When log.file is set the returned closer is non-nil and the caller
// must close it.
func newLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	lcfg := logging.DefaultConfig()
	lcfg.Level = logging.ParseLevel(cfg.Log.Level)
	if os.Getenv("REDACT_DEBUG") == "1" {
		lcfg.Debug = true
	}

	var closer io.Closer
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		lcfg.Output = f
		closer = f
	}
	return logging.New(lcfg), closer, nil
}
