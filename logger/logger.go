package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level-specific loggers shared by every package. They are usable before
// InitLoggers runs (stdout, text format) so tests and init code can log.
var (
	InfoLogger  = newLogger(logrus.InfoLevel, os.Stdout)
	WarnLogger  = newLogger(logrus.WarnLevel, os.Stdout)
	ErrorLogger = newLogger(logrus.ErrorLevel, os.Stderr)
	DebugLogger = newLogger(logrus.DebugLevel, os.Stdout)
)

// Options controls where InitLoggers sends output.
type Options struct {
	// LogFile enables a rotated JSON log file in addition to stdout/stderr.
	LogFile string
	// Debug turns on DebugLogger output; otherwise debug lines are dropped.
	Debug bool
}

func newLogger(level logrus.Level, out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// InitLoggers configures the shared loggers for a running service.
func InitLoggers(opts ...Options) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}

	var rotated io.Writer
	if o.LogFile != "" {
		rotated = &lumberjack.Logger{
			Filename:   o.LogFile,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}
	}

	configure := func(l *logrus.Logger, std io.Writer) {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
		if rotated != nil {
			l.SetOutput(io.MultiWriter(std, rotated))
		} else {
			l.SetOutput(std)
		}
	}

	configure(InfoLogger, os.Stdout)
	configure(WarnLogger, os.Stdout)
	configure(ErrorLogger, os.Stderr)
	configure(DebugLogger, os.Stdout)

	if o.Debug {
		DebugLogger.SetLevel(logrus.DebugLevel)
	} else {
		DebugLogger.SetLevel(logrus.InfoLevel)
	}
}
