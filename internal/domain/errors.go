package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a session id cannot be resolved.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionClosed is returned when an operation is attempted against a
	// COMPLETED session that does not accept it.
	ErrSessionClosed = errors.New("session is closed")

	// ErrAgentNotFound is returned when a session has no agent for the
	// requested role.
	ErrAgentNotFound = errors.New("agent role not found")
)
