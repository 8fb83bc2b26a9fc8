// Package config handles frontend configuration and setup.
package config

import (
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with the level derived from the frontend
// flags.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
