package rlog

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = newLogger("info")
)

func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level.SetLevel(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	lg, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return lg
}

// SetLevel rebuilds the package logger at the given level (debug, info, warn, error)
func SetLevel(level string) {
	lg := newLogger(level)
	mu.Lock()
	defer mu.Unlock()
	logger = lg
}

// SetLogger replaces the package logger
func SetLogger(lg *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = lg
}

// L returns the package logger
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Named returns a child logger for a component
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// Println logs the arguments at info level
func Println(v ...interface{}) {
	L().Sugar().Info(v...)
}

// Infow logs a message with key value pairs
func Infow(msg string, kv ...interface{}) {
	L().Sugar().Infow(msg, kv...)
}

// Debugw logs a message with key value pairs
func Debugw(msg string, kv ...interface{}) {
	L().Sugar().Debugw(msg, kv...)
}

// Warnw logs a message with key value pairs
func Warnw(msg string, kv ...interface{}) {
	L().Sugar().Warnw(msg, kv...)
}

// Fatal logs the arguments and exits the process
func Fatal(v ...interface{}) {
	L().Sugar().Fatal(v...)
}

// Fatalln is equivalent to Fatal
func Fatalln(v ...interface{}) {
	L().Sugar().Fatal(v...)
}

// Sync flushes buffered entries
func Sync() error {
	return L().Sync()
}
