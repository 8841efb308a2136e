// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const appID = "finance-tracker"

// Logger is the structured logger used across the service.
// It embeds a sugared zap logger and carries a dedicated security event logger.
type Logger struct {
	*zap.SugaredLogger

	security *SecurityLogger
}

func (l *Logger) Security() SecurityLoggerInterface {
	return l.security
}

// NewLogger creates a new default logger
// it will need to be closed with
// ```
// defer logger.Desugar().Sync()
// ```
// to make sure all has been piped out before terminating
func NewLogger(l string) *Logger {
	var lvl string

	val := strings.ToLower(l)

	switch val {
	case "debug", "info", "warn", "error":
		lvl = val
	default:
		lvl = "error"
	}

	c := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(lvl)),
		Encoding:         "json",
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    encoderConfig(),
	}

	logger := zap.Must(c.Build())

	return NewFromZap(logger)
}

// NewFromZap wraps an already built zap logger, security events share its core.
func NewFromZap(logger *zap.Logger) *Logger {
	security := logger.With(zap.String("type", "security"), zap.String("appid", appID))

	return &Logger{
		SugaredLogger: logger.Sugar(),
		security:      &SecurityLogger{l: security},
	}
}

func parseLevel(lvl string) zapcore.Level {
	level, err := zapcore.ParseLevel(lvl)
	if err != nil {
		return zapcore.ErrorLevel
	}

	return level
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "@timestamp"
	cfg.MessageKey = "message"
	cfg.LevelKey = "severity"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg
}
