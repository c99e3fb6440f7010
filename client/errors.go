package client

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed request. Call sites branch on the kind:
// network failures get a connectivity message, server-reported failures are
// shown verbatim, precondition failures prompt the user to sign in or pick
// a house again before anything is sent over the wire.
type ErrorKind int

const (
	// KindNetwork means no HTTP response was received at all.
	KindNetwork ErrorKind = iota + 1
	// KindHTTP means a response arrived with a status outside 2xx.
	KindHTTP
	// KindServer means HTTP 200 with a success:false body.
	KindServer
	// KindPrecondition means a required session value was missing and the
	// request was never issued.
	KindPrecondition
)

// Error is the normalized failure returned by every client operation.
type Error struct {
	Kind    ErrorKind
	Status  int // HTTP status code, set for KindHTTP only
	Message string
	Err     error // underlying cause, set for KindNetwork only
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNetwork:
		return fmt.Sprintf("network error: %v", e.Err)
	case KindHTTP:
		if e.Message != "" {
			return fmt.Sprintf("server returned status %d: %s", e.Status, e.Message)
		}
		return fmt.Sprintf("server returned status %d", e.Status)
	case KindServer:
		return e.Message
	case KindPrecondition:
		return e.Message
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func kindOf(err error) ErrorKind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}

// IsNetwork reports whether err is a connectivity failure.
func IsNetwork(err error) bool { return kindOf(err) == KindNetwork }

// IsHTTP reports whether err is a non-2xx HTTP response.
func IsHTTP(err error) bool { return kindOf(err) == KindHTTP }

// IsServer reports whether err is an application-level success:false reply.
func IsServer(err error) bool { return kindOf(err) == KindServer }

// IsPrecondition reports whether err was raised before any network call.
func IsPrecondition(err error) bool { return kindOf(err) == KindPrecondition }

func preconditionError(message string) *Error {
	return &Error{Kind: KindPrecondition, Message: message}
}
