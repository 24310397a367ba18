package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/jxo-me/dyndns/core/logger"
)

// LoggerOptions holds the settings a logger is built from.
type LoggerOptions struct {
	Output io.Writer
	Format logger.LogFormat
	Level  logger.LogLevel
}

// LoggerOption allows a common way to set logger options.
type LoggerOption func(opts *LoggerOptions)

// OutputLoggerOption sets the output writer, default os.Stderr.
func OutputLoggerOption(out io.Writer) LoggerOption {
	return func(opts *LoggerOptions) {
		opts.Output = out
	}
}

// FormatLoggerOption sets the output format, default text.
func FormatLoggerOption(format logger.LogFormat) LoggerOption {
	return func(opts *LoggerOptions) {
		opts.Format = format
	}
}

// LevelLoggerOption sets the log level, default info.
func LevelLoggerOption(level logger.LogLevel) LoggerOption {
	return func(opts *LoggerOptions) {
		opts.Level = level
	}
}

type zeroLogger struct {
	logger zerolog.Logger
}

// NewLogger creates a zerolog backed logger.
func NewLogger(opts ...LoggerOption) logger.ILogger {
	var options LoggerOptions
	for _, opt := range opts {
		opt(&options)
	}

	out := options.Output
	if out == nil {
		out = os.Stderr
	}

	var zl zerolog.Logger
	switch options.Format {
	case logger.JSONFormat:
		zl = zerolog.New(out)
	default:
		zl = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: "2006-01-02 15:04:05"})
	}
	zl = zl.With().Timestamp().Logger()

	switch options.Level {
	case logger.TraceLevel:
		zl = zl.Level(zerolog.TraceLevel)
	case logger.DebugLevel:
		zl = zl.Level(zerolog.DebugLevel)
	case logger.WarnLevel:
		zl = zl.Level(zerolog.WarnLevel)
	case logger.ErrorLevel:
		zl = zl.Level(zerolog.ErrorLevel)
	case logger.FatalLevel:
		zl = zl.Level(zerolog.FatalLevel)
	default:
		zl = zl.Level(zerolog.InfoLevel)
	}

	return &zeroLogger{logger: zl}
}

// Nop returns a logger that discards everything.
func Nop() logger.ILogger {
	return &zeroLogger{logger: zerolog.Nop()}
}

func (l *zeroLogger) Trace(args ...any) {
	l.logger.Trace().Msg(fmt.Sprint(args...))
}

func (l *zeroLogger) Tracef(format string, args ...any) {
	l.logger.Trace().Msgf(format, args...)
}

func (l *zeroLogger) Debug(args ...any) {
	l.logger.Debug().Msg(fmt.Sprint(args...))
}

func (l *zeroLogger) Debugf(format string, args ...any) {
	l.logger.Debug().Msgf(format, args...)
}

func (l *zeroLogger) Info(args ...any) {
	l.logger.Info().Msg(fmt.Sprint(args...))
}

func (l *zeroLogger) Infof(format string, args ...any) {
	l.logger.Info().Msgf(format, args...)
}

func (l *zeroLogger) Warn(args ...any) {
	l.logger.Warn().Msg(fmt.Sprint(args...))
}

func (l *zeroLogger) Warnf(format string, args ...any) {
	l.logger.Warn().Msgf(format, args...)
}

func (l *zeroLogger) Error(args ...any) {
	l.logger.Error().Msg(fmt.Sprint(args...))
}

func (l *zeroLogger) Errorf(format string, args ...any) {
	l.logger.Error().Msgf(format, args...)
}

func (l *zeroLogger) Fatal(args ...any) {
	l.logger.Fatal().Msg(fmt.Sprint(args...))
}

func (l *zeroLogger) Fatalf(format string, args ...any) {
	l.logger.Fatal().Msgf(format, args...)
}
