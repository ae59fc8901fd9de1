// Package logger holds the application-wide logrus logger.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the global logger. It is usable before Init with logrus defaults.
var Log = logrus.New()

// Init configures the global logger from the environment. Call it once at
// startup.
//
// LOG_LEVEL selects the level (default "info"); LOG_FORMAT=json switches to
// JSON output, anything else gives colored text.
func Init() {
	level, err := logrus.ParseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// File returns an entry tagged with the kind of file being read or written
// ("rules", "points", "png", "svg", "settings") and its path.
func File(kind, path string) *logrus.Entry {
	return Log.WithFields(logrus.Fields{
		"file": kind,
		"path": path,
	})
}

// Counts adds tallies such as rules or points to an entry. Zero counts are
// kept so a cleared session still logs them.
func Counts(entry *logrus.Entry, counts map[string]int) *logrus.Entry {
	fields := make(logrus.Fields, len(counts))
	for k, v := range counts {
		fields[k] = v
	}
	return entry.WithFields(fields)
}
