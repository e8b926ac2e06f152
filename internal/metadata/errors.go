package metadata

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedModel matches every UnsupportedModelError.
var ErrUnsupportedModel = errors.New("unsupported model")

// UnsupportedModelError aborts a build. Type and Property locate the
// offending part of the model.
type UnsupportedModelError struct {
	Type     string
	Property string
	Reason   string
}

func (e *UnsupportedModelError) Error() string {
	var b strings.Builder
	b.WriteString("unsupported model")
	if e.Type != "" {
		b.WriteString(": type ")
		b.WriteString(e.Type)
	}
	if e.Property != "" {
		b.WriteString(", property ")
		b.WriteString(e.Property)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

// Is implements errors.Is support for ErrUnsupportedModel.
func (e *UnsupportedModelError) Is(target error) bool {
	return target == ErrUnsupportedModel
}

func unsupported(typeName, property, format string, args ...any) error {
	return &UnsupportedModelError{
		Type:     typeName,
		Property: property,
		Reason:   fmt.Sprintf(format, args...),
	}
}
