package service

import (
	"fmt"
)

// ValidationKind identifies which upload check rejected the file
type ValidationKind int

const (
	EmptyFile ValidationKind = iota
	FileTooLarge
	UnsupportedType
)

// ValidationError rejects an upload before any document record is created
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ExtractionError reports a text-extraction failure. It is recorded on the
// document, not raised to the upload caller.
type ExtractionError struct {
	Message string
}

func (e *ExtractionError) Error() string {
	return e.Message
}

// GatewayError wraps any failure of the external AI call, preserving the
// underlying cause for logging
type GatewayError struct {
	Message string
	Cause   error
}

func (e *GatewayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *GatewayError) Unwrap() error {
	return e.Cause
}
