package core

// Logger reports application events to the configured backend(s).
// Args may carry an error, context maps or a student snapshot for person
// tagging; implementations decide what to do with each kind.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
