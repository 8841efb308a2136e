// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerLevels(t *testing.T) {
	testCases := []struct {
		input    string
		expected zapcore.Level
	}{
		{input: "DEBUG", expected: zapcore.DebugLevel},
		{input: "info", expected: zapcore.InfoLevel},
		{input: "Warn", expected: zapcore.WarnLevel},
		{input: "error", expected: zapcore.ErrorLevel},
		{input: "invalid", expected: zapcore.ErrorLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			logger := NewLogger(tc.input)

			if !logger.Desugar().Core().Enabled(tc.expected) {
				t.Errorf("expected level %s to be enabled", tc.expected)
			}

			if tc.expected > zapcore.DebugLevel && logger.Desugar().Core().Enabled(tc.expected-1) {
				t.Errorf("expected level %s to be disabled", tc.expected-1)
			}
		})
	}
}

func TestSecurityLoggerEvents(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := &SecurityLogger{l: zap.New(core)}

	s.AuthzFailure("user-1", "accounts:delete", WithRequestID("req-1"))
	s.AdminAction("user-1", "create", "account", "acc-1")
	s.InvitationSent("user-1", "org-1", "carol@x.com")

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	if entries[0].Level != zapcore.WarnLevel {
		t.Errorf("expected authz failure at warn level, got %s", entries[0].Level)
	}

	fields := entries[0].ContextMap()
	if fields["event"] != "authz_fail:user-1,accounts:delete" {
		t.Errorf("unexpected event %v", fields["event"])
	}

	if fields["request_id"] != "req-1" {
		t.Errorf("expected request id label, got %v", fields["request_id"])
	}

	if entries[1].ContextMap()["event"] != "authz_admin:user-1,create,account,acc-1" {
		t.Errorf("unexpected admin event %v", entries[1].ContextMap()["event"])
	}
}

func TestNoopLogger(t *testing.T) {
	logger := NewNoopLogger()

	logger.Infof("discarded %s", "entry")
	logger.Security().SystemStartup()
}
