// Package logging configures the shared logrus logger every munin binary
// uses, grounded on location-service's internal/utils.NewSanitizedLogger
// (JSON formatter, env-driven level) minus its PII-masking layer: munin's
// documents are public transit/address data, not user PII, so there is
// nothing for a masker to redact.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a logrus.Logger with JSON output and a level chosen from the
// environment, the same fields/format the teacher's logger emits so log
// aggregation tooling built against it keeps working unchanged.
func New(environment string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	logger.SetOutput(os.Stdout)

	switch environment {
	case "production", "release":
		logger.SetLevel(logrus.InfoLevel)
	default:
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}
