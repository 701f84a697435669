package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind is the closed set of failure classes the views react to.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindNetwork means the transport call itself failed.
	KindNetwork
	// KindAuth forces a full session clear in every caller.
	KindAuth
	KindValidation
	// KindConflict covers already-registered and duplicate-email.
	KindConflict
	// KindCapacity means the event has reached its attendee limit.
	KindCapacity
	// KindForbidden means the organizer tried to join their own event.
	KindForbidden
	// KindNotRegistered is a cancel for a registration that does not exist.
	KindNotRegistered
	KindServer
)

// Error is what every client method returns on failure. Message is
// human-readable; Status is zero when the request never reached the server.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// Kind extracts the classification from any error chain.
func Kind(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

const connectivityMessage = "could not reach the server"

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: fmt.Sprintf("%s: %v", connectivityMessage, err)}
}

func classify(status int, message string) ErrorKind {
	switch {
	case status == 401:
		return KindAuth
	case status >= 500:
		return KindServer
	}
	if kind := classifyMessage(message); kind != KindUnknown {
		return kind
	}
	if status == 400 {
		return KindValidation
	}
	return KindUnknown
}

// classifyMessage is the legacy fallback: the backend reports business rule
// violations as free text, so the literal substrings below are part of the
// de facto contract. Keep in sync with the server's domain errors.
func classifyMessage(message string) ErrorKind {
	switch {
	case strings.Contains(message, "already exists"),
		strings.Contains(message, "duplicate"):
		return KindConflict
	case strings.Contains(message, "limit reached"):
		return KindCapacity
	case strings.Contains(message, "Organizer cannot"):
		return KindForbidden
	case strings.Contains(message, "not subscribed"),
		strings.Contains(message, "not registered"):
		return KindNotRegistered
	}
	return KindUnknown
}
