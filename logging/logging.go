// Package logging builds the logrus loggers used across dupfinder.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	logFile *os.File
	mu      sync.Mutex
)

// SetupLogger creates a logger writing to stderr and, when logFilePath is set,
// to the given file as well. Debug enables debug level output.
func SetupLogger(logFilePath string, debug bool) (*logrus.Logger, error) {
	mu.Lock()
	defer mu.Unlock()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetLevel(logrus.InfoLevel)
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	if logFilePath == "" {
		logger.SetOutput(os.Stderr)
		return logger, nil
	}

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}

	f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logFile = f

	logger.SetOutput(io.MultiWriter(os.Stderr, logFile))
	logger.Debugf("--- dupfinder debug log started at %s ---", time.Now().Format(time.RFC3339))

	return logger, nil
}

// CloseLogger closes the log file opened by SetupLogger, if any
func CloseLogger() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// Discard returns a logger that drops everything
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// LogImageProcessed logs the outcome of fingerprinting a single image
func LogImageProcessed(log logrus.FieldLogger, path string, err error) {
	if err != nil {
		log.WithField("path", path).WithError(err).Error("failed to process image")
		return
	}
	log.WithField("path", path).Debug("processed image")
}
