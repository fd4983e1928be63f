package config

import (
	"fmt"
	"strings"
)

// ErrorKind classifies configuration errors.
type ErrorKind int

const (
	// KindParse means a document could not be read or decoded.
	KindParse ErrorKind = iota
	// KindInvalid means the merged configuration failed validation.
	KindInvalid
	// KindNotFound means a referenced model does not exist.
	KindNotFound
	// KindInvalidField means an update named an unknown field.
	KindInvalidField
	// KindIO means a filesystem operation failed.
	KindIO
)

func (k ErrorKind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindInvalid:
		return "invalid"
	case KindNotFound:
		return "not found"
	case KindInvalidField:
		return "invalid field"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is a configuration error tied to a document and optionally a field.
type Error struct {
	Kind    ErrorKind
	Doc     string
	Message string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("config")
	if e.Doc != "" {
		fmt.Fprintf(&b, " %s", e.Doc)
	}
	fmt.Fprintf(&b, ": %s", e.Kind)
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func parseErr(doc string, err error) *Error {
	return &Error{Kind: KindParse, Doc: doc, Err: err}
}

func ioErr(doc string, err error) *Error {
	return &Error{Kind: KindIO, Doc: doc, Err: err}
}

// ValidationError reports one invalid configuration value.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation: %s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}
