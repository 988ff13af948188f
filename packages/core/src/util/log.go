package util

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the shared diagnostics logger. Compilers use it unless another
// logger is supplied through their options.
var Log = logrus.New()

// SetLogLevel sets the level of Log from its name.
func SetLogLevel(level string) error {
	// trace and panic levels are not used
	switch strings.ToLower(level) {
	case "debug":
		Log.SetLevel(logrus.DebugLevel)
	case "info":
		Log.SetLevel(logrus.InfoLevel)
	case "warning", "warn":
		Log.SetLevel(logrus.WarnLevel)
	case "error":
		Log.SetLevel(logrus.ErrorLevel)
	case "fatal":
		Log.SetLevel(logrus.FatalLevel)
	default:
		return fmt.Errorf("unknown log level %q", level)
	}
	return nil
}

// Truncate shortens s to at most max runes for log fields.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
