// Package logging defines the structured logger used by every component of
// bank-insights. Components receive a Logger through their constructors; the
// concrete backend is chosen once, at container construction.
package logging

// Logger is the structured logging contract shared by all packages.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a child logger carrying err as a field.
	WithError(err error) Logger

	// WithField returns a child logger carrying a single field.
	WithField(key string, value interface{}) Logger

	// WithFields returns a child logger carrying all given fields.
	WithFields(fields ...Field) Logger

	// Fatal logs at fatal level and terminates the process.
	Fatal(msg string, fields ...Field)

	// Fatalf is the printf-style variant of Fatal.
	Fatalf(msg string, args ...interface{})
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F is a shorthand constructor for Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}
