package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type (
	Level  = zapcore.Level
	Field  = zap.Field
	Option = zap.Option
)

const (
	DebugLevel Level = zap.DebugLevel
	InfoLevel  Level = zap.InfoLevel
	WarnLevel  Level = zap.WarnLevel
	ErrorLevel Level = zap.ErrorLevel
	FatalLevel Level = zap.FatalLevel
)

// field constructors, re-exported so callers don't need to import zap
var (
	Any        = zap.Any
	String     = zap.String
	Strings    = zap.Strings
	Int        = zap.Int
	Ints       = zap.Ints
	Int64      = zap.Int64
	Uint       = zap.Uint
	Float64    = zap.Float64
	Float32    = zap.Float32
	Bool       = zap.Bool
	Time       = zap.Time
	Duration   = zap.Duration
	Stringer   = zap.Stringer
	ErrorField = zap.Error
)

var (
	WithCaller    = zap.WithCaller
	AddCallerSkip = zap.AddCallerSkip
	AddStacktrace = zap.AddStacktrace
)

type Logger struct {
	l     *zap.Logger
	level zap.AtomicLevel
}

func (l *Logger) Debug(msg string, fields ...Field) { l.l.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...Field)  { l.l.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.l.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...Field) { l.l.Error(msg, fields...) }
func (l *Logger) Fatal(msg string, fields ...Field) { l.l.Fatal(msg, fields...) }

func (l *Logger) Fatalf(template string, args ...any) {
	l.l.Sugar().Fatalf(template, args...)
}

func (l *Logger) Debugw(msg string, keysAndValues ...any) {
	l.l.Sugar().Debugw(msg, keysAndValues...)
}

// Named returns a child logger. The level is shared with the parent.
func (l *Logger) Named(name string) *Logger {
	return &Logger{l: l.l.Named(name), level: l.level}
}

func (l *Logger) WithFields(fields ...Field) *Logger {
	return &Logger{l: l.l.With(fields...), level: l.level}
}

func (l *Logger) Level() Level {
	return l.level.Level()
}

func (l *Logger) SetLevel(level Level) {
	l.level.SetLevel(level)
}

func (l *Logger) Sync() error {
	return l.l.Sync()
}

// Zap exposes the underlying logger for libraries requiring a *zap.Logger
func (l *Logger) Zap() *zap.Logger {
	return l.l
}

func ParseLevel(text string) (Level, error) {
	return zapcore.ParseLevel(text)
}

var std = DevLogger(nil, InfoLevel, WithCaller(true), AddCallerSkip(1))

func Default() *Logger {
	return std
}

// ResetDefault replaces the default logger used by the package level functions.
// not safe for concurrent use
func ResetDefault(l *Logger) {
	std = l
	Debug = std.Debug
	Info = std.Info
	Warn = std.Warn
	Error = std.Error
	Fatal = std.Fatal
	Fatalf = std.Fatalf
	Debugw = std.Debugw
}

var (
	Debug  = std.Debug
	Info   = std.Info
	Warn   = std.Warn
	Error  = std.Error
	Fatal  = std.Fatal
	Fatalf = std.Fatalf
	Debugw = std.Debugw
)

func Sync() error {
	if std != nil {
		return std.Sync()
	}
	return nil
}
