package variant

import (
	"fmt"
	"slices"
	"strings"
)

// MaxFlags is the largest flag set a family may declare. A family produces
// 2^len(Flags) variants.
const MaxFlags = 16

// Separator joins the base name and the rendered flag values in a variant
// name.
const Separator = "_"

// reserved are words of the template and expression syntax that cannot be
// used as flag names.
var reserved = map[string]bool{
	"true":  true,
	"false": true,
	"not":   true,
	"and":   true,
	"or":    true,
	"if":    true,
	"elsif": true,
	"else":  true,
	"end":   true,
	"error": true,
}

// Descriptor declares one operation family.
type Descriptor struct {
	// Name is the base name of every variant in the family.
	Name string `json:"name" yaml:"name" toml:"name" jsonschema:"minLength=1,description=Base name of every variant in the family"`

	// Params are the call parameters, in call order. The template refers to
	// them as ${param}.
	Params []string `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty" jsonschema:"uniqueItems=true,description=Call parameters in call order"`

	// Flags are the boolean axes, in declaration order. The order fixes both
	// the assignment key and the variant name.
	Flags []string `json:"flags,omitempty" yaml:"flags,omitempty" toml:"flags,omitempty" jsonschema:"uniqueItems=true,maxItems=16,description=Boolean configuration axes in declaration order"`

	// Template is the body, written in the variant template language.
	Template string `json:"template" yaml:"template" toml:"template" jsonschema:"description=Body template resolved once per flag assignment"`
}

// Validate checks names and sizes. It does not parse the template.
func (d Descriptor) Validate() error {
	if !isIdentifier(d.Name) {
		return &ConfigurationError{Family: d.Name, Reason: "name must be an identifier"}
	}
	if len(d.Flags) > MaxFlags {
		return &ConfigurationError{Family: d.Name, Reason: fmt.Sprintf("%d flags exceed the limit of %d", len(d.Flags), MaxFlags)}
	}
	if err := checkNames(d.Name, "flag", d.Flags); err != nil {
		return err
	}
	for _, f := range d.Flags {
		if reserved[f] {
			return &ConfigurationError{Family: d.Name, Reason: fmt.Sprintf("flag %q is a reserved word", f)}
		}
	}
	return checkNames(d.Name, "parameter", d.Params)
}

func checkNames(family, kind string, names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if !isIdentifier(n) {
			return &ConfigurationError{Family: family, Reason: fmt.Sprintf("%s %q is not an identifier", kind, n)}
		}
		if seen[n] {
			return &ConfigurationError{Family: family, Reason: fmt.Sprintf("duplicate %s %q", kind, n)}
		}
		seen[n] = true
	}
	return nil
}

// Equal reports whether two descriptors declare the same family.
func (d Descriptor) Equal(o Descriptor) bool {
	return d.Name == o.Name &&
		d.Template == o.Template &&
		slices.Equal(d.Params, o.Params) &&
		slices.Equal(d.Flags, o.Flags)
}

// Name returns the variant name for a flag assignment: the base name
// followed by each value rendered as true or false, in declaration order.
//
//	Name("greet", true)         // "greet_true"
//	Name("render", false, true) // "render_false_true"
func Name(base string, assignment ...bool) string {
	var b strings.Builder
	b.WriteString(base)
	for _, v := range assignment {
		b.WriteString(Separator)
		if v {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	}
	return b.String()
}

// assignmentAt returns subset k of an n-flag powerset in counting order.
// The first flag is the most significant bit, so k=0 is all false.
func assignmentAt(k, n int) []bool {
	a := make([]bool, n)
	for i := 0; i < n; i++ {
		a[i] = k&(1<<(n-1-i)) != 0
	}
	return a
}

// indexOf is the inverse of assignmentAt.
func indexOf(assignment []bool) int {
	k := 0
	for _, v := range assignment {
		k <<= 1
		if v {
			k |= 1
		}
	}
	return k
}
