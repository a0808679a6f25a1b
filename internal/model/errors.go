package model

import (
	"errors"
	"strings"

	"github.com/rotisserie/eris"
)

// Structural error kinds. They abort the enclosing operation.
var (
	ErrInvalidMeasurement = eris.New("invalid measurement")
	ErrShapeMismatch      = eris.New("shape mismatch")
	ErrUnitMismatch       = eris.New("unit mismatch")
)

// ErrMissingPrice is the soft pricing gap. It is only ever reported as a
// warning with CodeMissingPrice.
var ErrMissingPrice = eris.New("missing price")

// PathError is a structural error located at a key path in a quantity or
// price tree.
type PathError struct {
	Kind   error
	Path   []string
	Detail string
}

// NewPathError builds a PathError, copying path.
func NewPathError(kind error, path []string, detail string) *PathError {
	return &PathError{Kind: kind, Path: append([]string(nil), path...), Detail: detail}
}

func (e *PathError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	b.WriteString(" at ")
	if len(e.Path) == 0 {
		b.WriteString("<root>")
	} else {
		b.WriteString(JoinPath(e.Path))
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *PathError) Unwrap() error {
	return e.Kind
}

// IsStructural reports whether err carries one of the fatal structural kinds.
func IsStructural(err error) bool {
	return errors.Is(err, ErrInvalidMeasurement) ||
		errors.Is(err, ErrShapeMismatch) ||
		errors.Is(err, ErrUnitMismatch)
}

// JoinPath renders a key path as dotted text.
func JoinPath(path []string) string {
	return strings.Join(path, ".")
}

// SplitPath parses dotted text into a key path.
func SplitPath(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ".")
}
