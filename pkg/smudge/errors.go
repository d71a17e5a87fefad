package smudge

import (
	"errors"
	"fmt"
)

// Kind classifies a fatal error by the stage that produced it.
type Kind string

const (
	KindArgument   Kind = "argument"
	KindInputPath  Kind = "input"
	KindOutputPath Kind = "output"
	KindDecode     Kind = "decode"
	KindEncode     Kind = "encode"
)

// Error is a fatal error raised while resolving or running a smudge.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Sentinel causes. Match them with errors.Is.
var (
	ErrUnrecognizedArgument = errors.New("unrecognized argument")
	ErrMissingValue         = errors.New("missing value")

	ErrNoInputPath   = errors.New("no input path was specified")
	ErrInputNotFound = errors.New("input file does not exist")
	ErrInputIsDir    = errors.New("expected file in input path, found directory")

	ErrNoOutputPath   = errors.New("no output path was specified")
	ErrOutputNotFound = errors.New("output directory does not exist")
	ErrOutputNotDir   = errors.New("output path needs to be a directory")
)

func newError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// KindOf extracts the error kind, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Stage returns the human-readable stage name for err, used as
// "ERROR whilst <stage>".
func Stage(err error) string {
	switch KindOf(err) {
	case KindArgument:
		return "reading arguments"
	case KindInputPath:
		return "reading input"
	case KindOutputPath:
		return "reading output"
	case KindDecode:
		return "processing image"
	case KindEncode:
		return "saving image"
	default:
		return "running"
	}
}

// ParseWarning records a flag value that failed to parse. The resolver
// substitutes Default and carries on.
type ParseWarning struct {
	Flag    string
	Value   string
	Default string
}

func (w ParseWarning) String() string {
	return fmt.Sprintf("invalid value %q for %s; using default %s", w.Value, w.Flag, w.Default)
}
