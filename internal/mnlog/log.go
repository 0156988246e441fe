// Package mnlog holds the subsystem logger for the masternode package,
// following the same UseLogger/DisableLog idiom the rest of the codebase
// uses for its btclog subsystems.
package mnlog

import (
	"github.com/btcsuite/btclog"
)

// Log is the package-level subsystem logger. It is disabled by default
// until the host application calls UseLogger.
var Log btclog.Logger = btclog.Disabled

// DisableLog disables all library log output.
func DisableLog() {
	Log = btclog.Disabled
}

// UseLogger sets logger as the subsystem logger.
func UseLogger(logger btclog.Logger) {
	Log = logger
}
