package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedVariable is wrapped by MalformedVariableError.
	ErrMalformedVariable = errors.New("variable name cannot be embedded in a pattern")
	// ErrUnsupportedDialect is returned when no extractor is registered for a dialect.
	ErrUnsupportedDialect = errors.New("unsupported dialect")
	// ErrUnsupportedLocation is returned by fetchers that cannot address a location.
	ErrUnsupportedLocation = errors.New("unsupported source location")
)

// MalformedVariableError reports a captured variable name that the resolver
// cannot safely turn into a match pattern. It is fatal for the file it names.
type MalformedVariableError struct {
	Location string
	Token    string
	Err      error
}

func (e *MalformedVariableError) Error() string {
	return fmt.Sprintf("for version %s found at %s: %v", e.Token, e.Location, e.Err)
}

func (e *MalformedVariableError) Unwrap() []error {
	return []error{ErrMalformedVariable, e.Err}
}
