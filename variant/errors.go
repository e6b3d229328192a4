package variant

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for variant operations.
var (
	// ErrTemplate is returned when a family's body template is malformed,
	// references an undeclared flag or parameter, or reaches an error tag.
	ErrTemplate = errors.New("template error")

	// ErrConfiguration is returned for invalid descriptors and family name
	// collisions.
	ErrConfiguration = errors.New("configuration error")

	// ErrLookup is returned when a variant is requested for an unknown
	// family, name or flag assignment.
	ErrLookup = errors.New("variant not found")

	// ErrArgs is returned when a variant is called with the wrong arguments.
	ErrArgs = errors.New("invalid variant arguments")
)

// TemplateError reports a generation failure for one family. Generation
// stops at the first failing subset and nothing from the family is
// registered.
type TemplateError struct {
	Family     string   // Family being generated
	Flags      []string // Declared flag names
	Assignment []bool   // Subset under evaluation when the failure surfaced
	Line       int      // 1-based line of the offending tag
	Column     int      // 1-based column of the offending tag
	Msg        string
	Err        error // Underlying parser error, if any
}

// Error implements the error interface.
func (e *TemplateError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "family %q", e.Family)
	if len(e.Assignment) > 0 {
		fmt.Fprintf(&b, " [%s]", describe(e.Flags, e.Assignment))
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " at %d:%d", e.Line, e.Column)
	}
	fmt.Fprintf(&b, ": %s", e.Msg)
	return b.String()
}

// Unwrap returns ErrTemplate and the underlying error for errors.Is/As.
func (e *TemplateError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrTemplate, e.Err}
	}
	return []error{ErrTemplate}
}

// ConfigurationError reports an invalid descriptor or a name collision.
type ConfigurationError struct {
	Family string
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("family %q: %s", e.Family, e.Reason)
}

// Unwrap returns ErrConfiguration.
func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// LookupError reports a request for a variant that was never generated.
// It usually means a lookup ran before generation or the caller's flag
// set does not match the family's.
type LookupError struct {
	Family string
	Name   string
	Reason string
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	switch {
	case e.Name != "" && e.Family != "":
		return fmt.Sprintf("variant %q of family %q: %s", e.Name, e.Family, e.Reason)
	case e.Name != "":
		return fmt.Sprintf("variant %q: %s", e.Name, e.Reason)
	default:
		return fmt.Sprintf("family %q: %s", e.Family, e.Reason)
	}
}

// Unwrap returns ErrLookup.
func (e *LookupError) Unwrap() error {
	return ErrLookup
}

// describe renders an assignment as "a=true,b=false".
func describe(flags []string, assignment []bool) string {
	parts := make([]string, len(assignment))
	for i, v := range assignment {
		name := fmt.Sprintf("#%d", i)
		if i < len(flags) {
			name = flags[i]
		}
		parts[i] = fmt.Sprintf("%s=%t", name, v)
	}
	return strings.Join(parts, ",")
}
