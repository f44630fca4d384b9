package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type defaultLogger struct {
	entry *logrus.Entry
}

// NewLogger creates a logger writing to stderr. The level is one of debug,
// info, warning, error or silence; anything else falls back to info.
func NewLogger(level string) *defaultLogger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if level == "silence" {
		l.SetOutput(io.Discard)
	} else if lvl, err := logrus.ParseLevel(level); err == nil {
		l.SetLevel(lvl)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}

	return &defaultLogger{entry: logrus.NewEntry(l)}
}

// With returns a child logger which attaches the given field to every entry.
func (l *defaultLogger) With(key string, value any) *defaultLogger {
	return &defaultLogger{entry: l.entry.WithField(key, value)}
}

func (l *defaultLogger) Debugf(msg string, a ...any) {
	l.entry.Debugf(msg, a...)
}

func (l *defaultLogger) Infof(msg string, a ...any) {
	l.entry.Infof(msg, a...)
}

func (l *defaultLogger) Warnf(msg string, a ...any) {
	l.entry.Warnf(msg, a...)
}

func (l *defaultLogger) Errorf(msg string, a ...any) {
	l.entry.Errorf(msg, a...)
}
