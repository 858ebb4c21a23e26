package tinify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Kind classifies why a request failed.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindAccount
	KindClient
	KindServer
	KindConnection
)

func (k Kind) String() string {
	switch k {
	case KindAccount:
		return "AccountError"
	case KindClient:
		return "ClientError"
	case KindServer:
		return "ServerError"
	case KindConnection:
		return "ConnectionError"
	default:
		return "Error"
	}
}

// ParseError is the Type of errors whose response body was not valid JSON.
const ParseError = "ParseError"

// Error is a failed request. Status is zero for connection errors.
type Error struct {
	Kind    Kind
	Message string
	Type    string
	Status  int

	timeout bool
	cause   error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (HTTP %d/%s)", e.Message, e.Status, e.Type)
	}

	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Timeout reports a connection error caused by a timeout.
func (e *Error) Timeout() bool { return e.timeout }

// newStatusError classifies a failure response by its status code.
func newStatusError(message, tag string, status int, cause error) *Error {
	e := &Error{
		Message: message,
		Type:    tag,
		Status:  status,
		cause:   cause,
	}

	switch {
	case status == http.StatusUnauthorized, status == http.StatusTooManyRequests:
		e.Kind = KindAccount
	case status >= 400 && status < 500:
		e.Kind = KindClient
	case status >= 500 && status < 600:
		e.Kind = KindServer
	default:
		e.Kind = KindUnknown
	}

	return e
}

func newConnectionError(cause error) *Error {
	var nerr net.Error

	if errors.Is(cause, context.DeadlineExceeded) || (errors.As(cause, &nerr) && nerr.Timeout()) {
		return &Error{
			Kind:    KindConnection,
			Message: fmt.Sprintf("Timeout while connecting: %s", cause),
			timeout: true,
			cause:   cause,
		}
	}

	return &Error{
		Kind:    KindConnection,
		Message: fmt.Sprintf("Error while connecting: %s", cause),
		cause:   cause,
	}
}

func isKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func IsAccountError(err error) bool    { return isKind(err, KindAccount) }
func IsClientError(err error) bool     { return isKind(err, KindClient) }
func IsServerError(err error) bool     { return isKind(err, KindServer) }
func IsConnectionError(err error) bool { return isKind(err, KindConnection) }
