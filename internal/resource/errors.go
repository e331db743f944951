package resource

import (
	"fmt"
	"strings"
)

// UnknownAttributeError is returned when a configuration key is outside
// the attribute allow-list. Matching is case-sensitive and exact.
type UnknownAttributeError struct {
	Attribute   string
	Suggestions []string
}

// Error implements the error interface
func (e *UnknownAttributeError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "unknown attribute %q", e.Attribute)

	if len(e.Suggestions) > 0 {
		b.WriteString("\n  hint: did you mean ")
		for i, s := range e.Suggestions {
			if i > 0 {
				b.WriteString(" or ")
			}
			fmt.Fprintf(&b, "%q", s)
		}
		b.WriteString("?")
	}

	return b.String()
}

// TypeMismatchError is returned when a supplied value cannot be coerced
// to the attribute's declared kind.
type TypeMismatchError struct {
	Attribute string
	Expected  Kind
	Got       interface{}
}

// Error implements the error interface
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("attribute %q: expected %s, got %T (%v)",
		e.Attribute, e.Expected, e.Got, e.Got)
}
