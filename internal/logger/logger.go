package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger *zap.Logger
	sugar  *zap.SugaredLogger
)

// Options selects the level ("debug", "info", "warn", "error") and the
// encoding ("console" or "json").
type Options struct {
	Level  string
	Format string
}

// Init installs a console logger at info level unless Configure ran first.
func Init() {
	if current() != nil {
		return
	}
	if err := Configure(Options{Level: "info", Format: "console"}); err != nil {
		set(zap.NewNop())
	}
}

// Configure builds the process logger. Output goes to stderr so command
// output on stdout stays clean.
func Configure(opts Options) error {
	var cfg zap.Config
	if opts.Format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	if opts.Level != "" {
		level, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return err
		}
		cfg.Level.SetLevel(level)
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	set(l)
	return nil
}

// SetForTest replaces the process logger and returns a restore func.
func SetForTest(l *zap.Logger) func() {
	prev := current()
	set(l)
	return func() { set(prev) }
}

// L returns the structured logger.
func L() *zap.Logger {
	if l := current(); l != nil {
		return l
	}
	Init()
	return current()
}

// Sync flushes buffered entries.
func Sync() {
	if l := current(); l != nil {
		_ = l.Sync()
	}
}

func set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
	if l == nil {
		sugar = nil
		return
	}
	sugar = l.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

func current() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func sugared() *zap.SugaredLogger {
	mu.RLock()
	s := sugar
	mu.RUnlock()
	if s != nil {
		return s
	}
	Init()
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func Info(message string, v ...interface{}) {
	sugared().Infof(message, v...)
}

func Warn(message string, v ...interface{}) {
	sugared().Warnf(message, v...)
}

func Error(message string, v ...interface{}) {
	sugared().Errorf(message, v...)
}

func Debug(message string, v ...interface{}) {
	sugared().Debugf(message, v...)
}
