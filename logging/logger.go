package logging

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
)

// NewLogger creates and returns a pre-configured logger for a specific component.
// It uses a singleton pattern per component to avoid re-initializing.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	// Configure Level
	levelStr := "info"
	if os.Getenv("IICS_LOG_LEVEL") != "" {
		levelStr = os.Getenv("IICS_LOG_LEVEL")
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	// Configure Formatter. JSON is useful when CI log collectors scrape
	// the workflow output.
	switch os.Getenv("IICS_LOG_FORMAT") {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&TextFormatter{})
	}

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}

// Configure applies command-line logging choices to every component logger,
// cached and future. Called once during command startup.
func Configure(verbose, jsonFormat bool) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if verbose {
		os.Setenv("IICS_LOG_LEVEL", "debug")
	}
	if jsonFormat {
		os.Setenv("IICS_LOG_FORMAT", "json")
	}

	for _, entry := range loggers {
		if verbose {
			entry.Logger.SetLevel(logrus.DebugLevel)
		}
		if jsonFormat {
			entry.Logger.SetFormatter(&logrus.JSONFormatter{})
		}
	}
}

// Reset clears the per-component logger cache. Intended for tests that
// change IICS_LOG_LEVEL or IICS_LOG_FORMAT between cases.
func Reset() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	loggers = make(map[string]*logrus.Entry)
}
