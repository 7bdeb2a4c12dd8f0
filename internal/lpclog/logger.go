// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package lpclog provides the structured, dual console+rotating-file
// logger used throughout the pipeline execution engine.
package lpclog

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls where and how verbosely the logger writes.
type Config struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string
	// FilePath is the rotating log file; file logging is disabled when empty.
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// DefaultConfig returns sensible defaults for local/interactive runs.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		MaxSizeMB:  50,
		MaxBackups: 5,
		MaxAgeDays: 28,
	}
}

// Logger wraps a *zap.Logger with a mutable console level, so command
// output can be "elevated to verbose" for the duration of a single
// in-container command the way spec.md §4.5 step 8 describes.
type Logger struct {
	*zap.Logger
	consoleLevel zap.AtomicLevel
}

// New builds a Logger that writes human-readable output to stderr
// and, when FilePath is set, JSON records to a rotating file.
func New(component string, cfg Config) (*Logger, error) {
	consoleLevel := zap.NewAtomicLevel()
	if err := consoleLevel.UnmarshalText([]byte(cfg.Level)); err != nil {
		consoleLevel.SetLevel(zapcore.InfoLevel)
	}

	consoleEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), consoleLevel),
	}

	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o750); err != nil {
			return nil, err
		}
		rotator := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    orDefault(cfg.MaxSizeMB, 50),
			MaxBackups: orDefault(cfg.MaxBackups, 5),
			MaxAge:     orDefault(cfg.MaxAgeDays, 28),
			Compress:   true,
			LocalTime:  true,
		}
		jsonEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		// The file sink always records debug and above regardless of the
		// console's current verbosity, matching the teacher's dual-output
		// rationale (console for humans, file for later diagnosis).
		cores = append(cores, zapcore.NewCore(jsonEncoder, zapcore.AddSync(rotator), zapcore.DebugLevel))
	}

	logger := zap.New(zapcore.NewTee(cores...)).With(zap.String("component", component))
	return &Logger{Logger: logger, consoleLevel: consoleLevel}, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Verbose lowers the console level to debug and returns a restore func
// that puts it back, bracketing a single streamed command's output.
func (l *Logger) Verbose() func() {
	previous := l.consoleLevel.Level()
	l.consoleLevel.SetLevel(zapcore.DebugLevel)
	return func() { l.consoleLevel.SetLevel(previous) }
}
