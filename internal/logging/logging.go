package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Init configures the standard logrus logger.
func Init(level, format string) {
	Configure(logrus.StandardLogger(), level, format, os.Stdout)
}

// Configure applies level, formatter and output to l.
func Configure(l *logrus.Logger, level, format string, out io.Writer) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		l.Warnf("Invalid log level '%s', using 'info' instead. Error: %v", level, err)
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
	l.SetOutput(out)
}
