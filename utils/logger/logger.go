package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	global *zap.Logger
)

type options struct {
	level   string
	outputs []string
}

type Option func(*options)

// WithLevel overrides the environment's default level ("debug", "info", ...).
// An unparseable level is ignored.
func WithLevel(level string) Option {
	return func(o *options) { o.level = level }
}

// WithOutput sends log lines to the given paths instead of stderr. The CLI
// uses it to keep logs off the terminal it renders to.
func WithOutput(paths ...string) Option {
	return func(o *options) {
		for _, p := range paths {
			if p != "" {
				o.outputs = append(o.outputs, p)
			}
		}
	}
}

// Init builds the global logger. "production" logs JSON, "test" discards
// everything, other environments log colored console output.
func Init(environment string, opts ...Option) error {
	if environment == "test" {
		Replace(zap.NewNop())
		return nil
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if environment == "production" {
		cfg = zap.NewProductionConfig()
	}
	if o.level != "" {
		if lvl, err := zap.ParseAtomicLevel(o.level); err == nil {
			cfg.Level = lvl
		}
	}
	if len(o.outputs) > 0 {
		cfg.OutputPaths = o.outputs
		cfg.ErrorOutputPaths = o.outputs
		// colour escapes are noise in a file
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	Replace(l)
	return nil
}

// Replace swaps the global logger, mainly for tests.
func Replace(l *zap.Logger) {
	mu.Lock()
	global = l
	mu.Unlock()
}

func Get() *zap.Logger {
	mu.RLock()
	l := global
	mu.RUnlock()
	if l == nil {
		l, _ = zap.NewProduction()
		Replace(l)
	}
	return l
}

// Named returns a child of the global logger tagged with a component name.
func Named(component string) *zap.Logger {
	return Get().Named(component)
}

// Close flushes buffered entries.
func Close() error {
	mu.RLock()
	l := global
	mu.RUnlock()
	if l == nil {
		return nil
	}
	return l.Sync()
}

// Info logs at info level
func Info(msg string, fields ...zap.Field) {
	Get().Info(msg, fields...)
}

// Error logs at error level
func Error(msg string, fields ...zap.Field) {
	Get().Error(msg, fields...)
}

// Debug logs at debug level
func Debug(msg string, fields ...zap.Field) {
	Get().Debug(msg, fields...)
}

// Warn logs at warn level
func Warn(msg string, fields ...zap.Field) {
	Get().Warn(msg, fields...)
}

// Fatal logs at fatal level and exits
func Fatal(msg string, fields ...zap.Field) {
	Get().Fatal(msg, fields...)
}
