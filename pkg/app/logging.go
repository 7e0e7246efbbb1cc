package app

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"tableflip.dev/memories/pkg/store"
)

// ConfigureLogging sets the logrus level and output from cfg. With quiet set
// and no log file, logs are discarded so they do not draw over a full screen
// UI. The returned closer releases the log file.
func ConfigureLogging(cfg store.Config, quiet bool) (io.Closer, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel())
	if err != nil {
		return nil, err
	}
	logrus.SetLevel(level)

	if path := cfg.LogFile(); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, err
		}
		logrus.SetOutput(f)
		return f, nil
	}
	if quiet {
		logrus.SetOutput(io.Discard)
	} else {
		logrus.SetOutput(os.Stderr)
	}
	return nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
