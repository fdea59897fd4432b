// Package tracelog wires the diagnostic logger shared by the equation
// driver and the noodlifier. Grounded on
// matzehuels-stacktower/internal/cli/log.go's newLogger
// (log.NewWithOptions with ReportTimestamp/TimeFormat), retargeted from a
// per-command verbosity flag to a package-level default since this core
// has no CLI surface to thread a --verbose flag through (spec.md §6).
package tracelog

import (
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	once   sync.Once
	logger *log.Logger
)

// Default returns the package's shared logger, lazily created at Warn
// level so a library caller that never opts into tracing sees no output.
func Default() *log.Logger {
	once.Do(func() {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           log.WarnLevel,
			Prefix:          "noodlify",
		})
	})
	return logger
}

// SetLevel adjusts the shared logger's level, for callers (and tests) that
// want Debug-level tracing of segmentation and enumeration counts.
func SetLevel(level log.Level) {
	Default().SetLevel(level)
}
