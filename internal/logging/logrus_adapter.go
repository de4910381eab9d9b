package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// LogrusAdapter implements Logger on top of logrus. Child loggers created
// with WithError, WithField and WithFields share the parent's output, level
// and formatter; only the attached fields differ.
type LogrusAdapter struct {
	logger *logrus.Logger
	entry  *logrus.Entry
}

// NewLogrusAdapter creates a Logger writing to stderr.
//
// level is a logrus level name ("debug", "info", "warn", "error"); unknown
// values fall back to info. format is "json" or "text".
func NewLogrusAdapter(level, format string) Logger {
	return NewLogrusAdapterWithOutput(level, format, nil)
}

// NewLogrusAdapterWithOutput is like NewLogrusAdapter but sends entries to
// out. A nil out keeps the logrus default (stderr).
func NewLogrusAdapterWithOutput(level, format string, out io.Writer) Logger {
	logger := logrus.New()
	if out != nil {
		logger.SetOutput(out)
	}

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return &LogrusAdapter{
		logger: logger,
		entry:  logrus.NewEntry(logger),
	}
}

// NewLogrusAdapterFromLogger wraps an existing logrus.Logger, keeping its
// output, level and formatter. A nil logger gets a fresh logrus default.
func NewLogrusAdapterFromLogger(logger *logrus.Logger) Logger {
	if logger == nil {
		logger = logrus.New()
	}
	return &LogrusAdapter{
		logger: logger,
		entry:  logrus.NewEntry(logger),
	}
}

// Debug logs a debug-level message with optional fields.
func (l *LogrusAdapter) Debug(msg string, fields ...Field) {
	l.log(logrus.DebugLevel, msg, fields)
}

// Info logs an info-level message with optional fields.
func (l *LogrusAdapter) Info(msg string, fields ...Field) {
	l.log(logrus.InfoLevel, msg, fields)
}

// Warn logs a warning-level message with optional fields.
func (l *LogrusAdapter) Warn(msg string, fields ...Field) {
	l.log(logrus.WarnLevel, msg, fields)
}

// Error logs an error-level message with optional fields.
func (l *LogrusAdapter) Error(msg string, fields ...Field) {
	l.log(logrus.ErrorLevel, msg, fields)
}

// WithError returns a child logger that carries err under logrus' "error" key.
func (l *LogrusAdapter) WithError(err error) Logger {
	return l.derive(l.entry.WithError(err))
}

// WithField returns a child logger that carries one extra field.
func (l *LogrusAdapter) WithField(key string, value interface{}) Logger {
	return l.derive(l.entry.WithField(key, value))
}

// WithFields returns a child logger that carries all given fields.
func (l *LogrusAdapter) WithFields(fields ...Field) Logger {
	return l.derive(l.entry.WithFields(convertFields(fields)))
}

// Fatal logs a fatal-level message and exits the process with status 1.
func (l *LogrusAdapter) Fatal(msg string, fields ...Field) {
	l.entry.WithFields(convertFields(fields)).Fatal(msg)
}

// Fatalf is the printf-style variant of Fatal.
func (l *LogrusAdapter) Fatalf(msg string, args ...interface{}) {
	l.entry.Fatalf(msg, args...)
}

// log writes one entry at level, skipping field conversion when level is
// disabled.
func (l *LogrusAdapter) log(level logrus.Level, msg string, fields []Field) {
	if !l.logger.IsLevelEnabled(level) {
		return
	}
	l.entry.WithFields(convertFields(fields)).Log(level, msg)
}

// derive wraps entry in an adapter sharing the parent's logger.
func (l *LogrusAdapter) derive(entry *logrus.Entry) Logger {
	return &LogrusAdapter{logger: l.logger, entry: entry}
}

// convertFields turns Field values into the logrus.Fields map.
func convertFields(fields []Field) logrus.Fields {
	logrusFields := make(logrus.Fields, len(fields))
	for _, field := range fields {
		logrusFields[field.Key] = field.Value
	}
	return logrusFields
}
