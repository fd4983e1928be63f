package command

import "fmt"

// ErrorKind classifies command-line errors.
type ErrorKind int

const (
	// KindParseFailure means the argument vector could not be parsed.
	KindParseFailure ErrorKind = iota
	// KindValidationFailure means the parsed request violated a constraint.
	KindValidationFailure
	// KindNoValidFiles means a non-empty file list resolved to nothing usable.
	KindNoValidFiles
)

func (k ErrorKind) String() string {
	switch k {
	case KindParseFailure:
		return "parse failure"
	case KindValidationFailure:
		return "validation failure"
	case KindNoValidFiles:
		return "no valid files"
	default:
		return "unknown"
	}
}

// Error is a command-line error.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

func validationErr(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidationFailure, Message: fmt.Sprintf(format, args...)}
}
