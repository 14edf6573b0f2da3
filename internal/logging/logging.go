// Package logging builds the logrus logger used across a session.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Options struct {
	Level string
	JSON  bool
	Out   io.Writer
}

func New(opts Options) (*logrus.Logger, error) {
	log := logrus.New()

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	log.SetOutput(out)

	level := logrus.InfoLevel
	if opts.Level != "" {
		l, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = l
	}
	log.SetLevel(level)

	if opts.JSON {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05.000"})
	}
	return log, nil
}

// Session returns an entry tagged with a fresh run id.
func Session(log logrus.FieldLogger) *logrus.Entry {
	return log.WithField("run_id", NewRunID())
}

func NewRunID() string {
	return uuid.New().String()
}
