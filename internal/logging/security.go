// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Option adds extra fields to a security event.
type Option func([]zap.Field) []zap.Field

func WithLabel(key, value string) Option {
	return func(fields []zap.Field) []zap.Field {
		return append(fields, zap.String(key, value))
	}
}

func WithRequestID(id string) Option {
	return WithLabel("request_id", id)
}

type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) SystemStartup(opts ...Option) {
	s.log(zap.InfoLevel, "sys_startup", "application started", opts...)
}

func (s *SecurityLogger) SystemShutdown(opts ...Option) {
	s.log(zap.InfoLevel, "sys_shutdown", "application stopped", opts...)
}

func (s *SecurityLogger) AuthzFailure(userID, resource string, opts ...Option) {
	s.log(
		zap.WarnLevel,
		fmt.Sprintf("authz_fail:%s,%s", userID, resource),
		fmt.Sprintf("user %s attempted to access %s without entitlement", userID, resource),
		opts...,
	)
}

func (s *SecurityLogger) AdminAction(userID, action, resourceType, resource string, opts ...Option) {
	s.log(
		zap.InfoLevel,
		fmt.Sprintf("authz_admin:%s,%s,%s,%s", userID, action, resourceType, resource),
		fmt.Sprintf("user %s performed %s on %s %s", userID, action, resourceType, resource),
		opts...,
	)
}

func (s *SecurityLogger) InvitationSent(userID, organizationID, email string, opts ...Option) {
	s.log(
		zap.InfoLevel,
		fmt.Sprintf("invitation_sent:%s,%s", userID, organizationID),
		fmt.Sprintf("user %s invited %s to organization %s", userID, email, organizationID),
		opts...,
	)
}

func (s *SecurityLogger) InvitationAccepted(userID, organizationID string, opts ...Option) {
	s.log(
		zap.InfoLevel,
		fmt.Sprintf("invitation_accepted:%s,%s", userID, organizationID),
		fmt.Sprintf("user %s joined organization %s", userID, organizationID),
		opts...,
	)
}

func (s *SecurityLogger) InvitationRevoked(userID, organizationID, invitationID string, opts ...Option) {
	s.log(
		zap.InfoLevel,
		fmt.Sprintf("invitation_revoked:%s,%s,%s", userID, organizationID, invitationID),
		fmt.Sprintf("user %s revoked invitation %s", userID, invitationID),
		opts...,
	)
}

func (s *SecurityLogger) log(level zapcore.Level, event, description string, opts ...Option) {
	fields := []zap.Field{zap.String("event", event)}
	for _, opt := range opts {
		fields = opt(fields)
	}

	if ce := s.l.Check(level, description); ce != nil {
		ce.Write(fields...)
	}
}
