package handlers

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// ConfigureLogging sets level and format of the standard logrus logger.
// Logs always go to stderr so stdout stays clean for reports.
func ConfigureLogging(level, format string) error {
	return configureLogger(logrus.StandardLogger(), level, format)
}

func configureLogger(logger *logrus.Logger, level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)
	logger.SetOutput(os.Stderr)

	switch format {
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format %q (want text or json)", format)
	}
	return nil
}
