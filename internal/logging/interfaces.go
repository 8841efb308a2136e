// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

type LoggerInterface interface {
	Errorf(string, ...interface{})
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Debugf(string, ...interface{})
	Fatalf(string, ...interface{})
	Error(...interface{})
	Info(...interface{})
	Warn(...interface{})
	Debug(...interface{})
	Fatal(...interface{})
	Errorw(string, ...interface{})
	Infow(string, ...interface{})
	Warnw(string, ...interface{})
	Debugw(string, ...interface{})
	Sync() error

	Security() SecurityLoggerInterface
}

// SecurityLoggerInterface emits OWASP style security events.
type SecurityLoggerInterface interface {
	SystemStartup(...Option)
	SystemShutdown(...Option)
	AuthzFailure(userID, resource string, opts ...Option)
	AdminAction(userID, action, resourceType, resource string, opts ...Option)
	InvitationSent(userID, organizationID, email string, opts ...Option)
	InvitationAccepted(userID, organizationID string, opts ...Option)
	InvitationRevoked(userID, organizationID, invitationID string, opts ...Option)
}
