package logger

// LogFormat is the format of log output.
type LogFormat string

const (
	TextFormat LogFormat = "text"
	JSONFormat LogFormat = "json"
)

// LogLevel is the level of log output.
type LogLevel string

const (
	TraceLevel LogLevel = "trace"
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

// ILogger interface
type ILogger interface {
	Trace(args ...any)
	Tracef(format string, args ...any)
	Debug(args ...any)
	Debugf(format string, args ...any)
	Info(args ...any)
	Infof(format string, args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
	Fatal(args ...any)
	Fatalf(format string, args ...any)
}

var defaultLogger ILogger = nop{}

// Default returns the process-wide logger.
func Default() ILogger {
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger ILogger) {
	defaultLogger = logger
}

// nop discards everything; it keeps this package free of a logging backend.
type nop struct{}

func (nop) Trace(...any)          {}
func (nop) Tracef(string, ...any) {}
func (nop) Debug(...any)          {}
func (nop) Debugf(string, ...any) {}
func (nop) Info(...any)           {}
func (nop) Infof(string, ...any)  {}
func (nop) Warn(...any)           {}
func (nop) Warnf(string, ...any)  {}
func (nop) Error(...any)          {}
func (nop) Errorf(string, ...any) {}
func (nop) Fatal(...any)          {}
func (nop) Fatalf(string, ...any) {}
