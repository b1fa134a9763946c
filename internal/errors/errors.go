package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/planme/internal/logger"
)

// Kind classifies failures the services know how to report.
type Kind int

const (
	// KindUnknown is any error that was not raised through this package.
	KindUnknown Kind = iota
	// KindCredentialMissing means the LLM provider credential is not configured.
	KindCredentialMissing
	// KindUpstreamCallFailed means the call to the LLM provider did not succeed.
	KindUpstreamCallFailed
	// KindSchemaValidationFailed means the provider answered with output that
	// does not match the plan schema.
	KindSchemaValidationFailed
)

func (k Kind) String() string {
	switch k {
	case KindCredentialMissing:
		return "credential_missing"
	case KindUpstreamCallFailed:
		return "upstream_call_failed"
	case KindSchemaValidationFailed:
		return "schema_validation_failed"
	default:
		return "unknown"
	}
}

// Error is a failure tagged with its Kind and the operation that raised it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err with the given kind and operation name
func New(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf builds a tagged error from a format string
func Newf(kind Kind, op string, format string, args ...interface{}) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the first tagged error in err's chain
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err, "kind", KindOf(err))
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
