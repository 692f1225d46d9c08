package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNotConfigured signals that no store endpoint is set.
	ErrNotConfigured = errors.New("store endpoint not configured")
	// ErrInvalidInput signals malformed caller input caught before any network call.
	ErrInvalidInput = errors.New("invalid input")
	// ErrTransport signals a non-2xx store response.
	ErrTransport = errors.New("store request failed")
	// ErrProtocol signals a 2xx store response with an unexpected shape.
	ErrProtocol = errors.New("unexpected store response")
	// ErrCollectionNotFound signals a missing collection in the store schema.
	ErrCollectionNotFound = errors.New("collection not found")
	// ErrEmbeddingProvider signals a failed query vectorization.
	ErrEmbeddingProvider = errors.New("embedding provider error")
)

// ConfigurationError is returned when the connection has no usable endpoint.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason == "" {
		return ErrNotConfigured.Error()
	}
	return ErrNotConfigured.Error() + ": " + e.Reason
}

func (e *ConfigurationError) Unwrap() error { return ErrNotConfigured }

// ValidationError describes rejected caller input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidation creates a ValidationError.
func NewValidation(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// TransportError carries the HTTP status of a failed store call and the
// best-effort human-readable message extracted from the body.
type TransportError struct {
	Op      string
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *TransportError) Error() string {
	var b strings.Builder
	b.WriteString(ErrTransport.Error())
	if e.Method != "" {
		fmt.Fprintf(&b, ": %s %s", e.Method, e.Path)
	}
	fmt.Fprintf(&b, ": status %d", e.Status)
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

func (e *TransportError) Unwrap() error { return ErrTransport }

// NotFound reports whether the store answered 404.
func (e *TransportError) NotFound() bool { return e.Status == http.StatusNotFound }

// ProtocolError signals that the store answered successfully but not in the
// expected envelope.
type ProtocolError struct {
	Op     string
	Detail string
}

func (e *ProtocolError) Error() string {
	if e.Op == "" {
		return ErrProtocol.Error() + ": " + e.Detail
	}
	return fmt.Sprintf("%s: %s: %s", ErrProtocol.Error(), e.Op, e.Detail)
}

func (e *ProtocolError) Unwrap() error { return ErrProtocol }

// NewProtocol creates a ProtocolError.
func NewProtocol(op, format string, args ...any) error {
	return &ProtocolError{Op: op, Detail: fmt.Sprintf(format, args...)}
}

// DeleteError reports a bulk deletion that stopped at ID.
// Deleted holds the identities removed before the failure, in order.
type DeleteError struct {
	ID      string
	Deleted []string
	Err     error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("delete object %q (after %d deleted): %v", e.ID, len(e.Deleted), e.Err)
}

func (e *DeleteError) Unwrap() error { return e.Err }
