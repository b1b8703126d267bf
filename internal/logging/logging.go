package logging

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger and returns it. Unknown
// levels fall back to debug.
func Setup(level string) *log.Logger {
	logger := log.StandardLogger()
	logger.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetOutput(os.Stdout)

	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.SetLevel(log.DebugLevel)
		logger.WithField("level", level).Warn("Unknown log level, using debug")
		return logger
	}
	logger.SetLevel(lvl)
	return logger
}
