// Package logging holds the process-wide logger shared by every system.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger. Systems derive entries from it with WithFields.
var Log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Configure sets the level and output of Log. An empty level keeps the
// current one.
func Configure(level string, out io.Writer) error {
	if level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return err
		}
		Log.SetLevel(lvl)
	}
	if out != nil {
		Log.SetOutput(out)
	}
	return nil
}

// For returns an entry tagged with the owning component.
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}
