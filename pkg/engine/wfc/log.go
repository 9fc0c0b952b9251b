package wfc

import (
	"os"

	"github.com/sirupsen/logrus"
)

// log is silent below warning level until a driver installs its own logger.
var log = newDefaultLogger()

func newDefaultLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	return l
}

// SetLogger replaces the logger used by the engine. Passing nil restores the
// default warn-level stderr logger.
func SetLogger(l *logrus.Logger) {
	if l == nil {
		l = newDefaultLogger()
	}
	log = l
}

// Logger returns the logger currently used by the engine.
func Logger() *logrus.Logger {
	return log
}
