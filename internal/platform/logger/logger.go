package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Setup configura el logger global de logrus desde env:
// - LOG_LEVEL=debug|info|warn|error (default info)
// - LOG_FORMAT=text|json (default text)
// - APP_NAME (opcional, se agrega como campo fijo)
// El resto del código usa logrus directamente (mismo logger global).
func Setup() *logrus.Entry {
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(parseLevel(os.Getenv("LOG_LEVEL")))

	switch strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT"))) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	entry := logrus.NewEntry(logrus.StandardLogger())
	if app := strings.TrimSpace(os.Getenv("APP_NAME")); app != "" {
		entry = entry.WithField("app", app)
	}
	return entry
}

func parseLevel(s string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return logrus.DebugLevel
	case "info", "":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
