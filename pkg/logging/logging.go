// Package logging builds the logrus logger used by the editor.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/Fepozopo/snapedit/pkg/config"
)

// New returns a logger writing to w with the configured level and format.
func New(cfg config.LoggingConfig, w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging.level: %w", err)
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	if cfg.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return l, nil
}
