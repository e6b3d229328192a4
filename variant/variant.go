package variant

import (
	"fmt"
	"slices"
	"strings"
)

// Variant is one family member with every flag fixed. Its body holds only
// literal text and parameter references; no conditional survives
// generation.
type Variant struct {
	family     string
	name       string
	flags      []string
	params     []string
	assignment []bool
	parts      []part
}

// part is either literal text or the index of a call parameter.
type part struct {
	text  string
	param int // -1 for literal text
}

// Family returns the family name.
func (v *Variant) Family() string { return v.family }

// Name returns the variant name, as built by Name.
func (v *Variant) Name() string { return v.name }

// Params returns the call parameters in call order.
func (v *Variant) Params() []string { return slices.Clone(v.params) }

// Assignment returns the flag values in declaration order.
func (v *Variant) Assignment() []bool { return slices.Clone(v.assignment) }

// Enabled reports whether the named flag is true in this variant.
func (v *Variant) Enabled(flag string) bool {
	i := slices.Index(v.flags, flag)
	return i >= 0 && v.assignment[i]
}

// Body returns the resolved body with ${param} references left in place.
func (v *Variant) Body() string {
	var b strings.Builder
	for _, p := range v.parts {
		if p.param < 0 {
			b.WriteString(p.text)
			continue
		}
		b.WriteString("${" + v.params[p.param] + "}")
	}
	return b.String()
}

// Call runs the variant with positional arguments, one per parameter.
// Arguments are formatted with fmt.Sprint.
func (v *Variant) Call(args ...any) (string, error) {
	if len(args) != len(v.params) {
		return "", fmt.Errorf("%w: %s takes %d arguments, got %d", ErrArgs, v.name, len(v.params), len(args))
	}
	return v.exec(func(i int) string { return fmt.Sprint(args[i]) }), nil
}

// MustCall is like Call but panics on error.
// Use only when the arity is fixed by the caller's code.
func (v *Variant) MustCall(args ...any) string {
	out, err := v.Call(args...)
	if err != nil {
		panic(fmt.Sprintf("variant.MustCall: %v", err))
	}
	return out
}

// Render runs the variant with named arguments. Every parameter must be
// present; extra keys are ignored.
func (v *Variant) Render(args map[string]any) (string, error) {
	for _, p := range v.params {
		if _, ok := args[p]; !ok {
			return "", fmt.Errorf("%w: %s: missing parameter %q", ErrArgs, v.name, p)
		}
	}
	return v.exec(func(i int) string { return fmt.Sprint(args[v.params[i]]) }), nil
}

func (v *Variant) exec(arg func(int) string) string {
	var b strings.Builder
	for _, p := range v.parts {
		if p.param < 0 {
			b.WriteString(p.text)
			continue
		}
		b.WriteString(arg(p.param))
	}
	return b.String()
}

// evaluator resolves a parsed template against one fixed subset.
type evaluator struct {
	env    map[string]bool
	params map[string]int
	parts  []part
}

func (e *evaluator) run(nodes []node) error {
	for _, n := range nodes {
		switch n := n.(type) {
		case *textNode:
			e.emitText(n.text)
		case *paramNode:
			e.parts = append(e.parts, part{param: e.params[n.name]})
		case *errorNode:
			return &syntaxError{pos: n.pos, msg: n.msg}
		case *condNode:
			if err := e.run(e.choose(n)); err != nil {
				return err
			}
		}
	}
	return nil
}

// choose returns the body of the first true branch, or the else body.
func (e *evaluator) choose(c *condNode) []node {
	for _, b := range c.branches {
		if b.cond.eval(e.env) {
			return b.body
		}
	}
	return c.orElse
}

// emitText appends literal text, merging it with a preceding literal.
func (e *evaluator) emitText(s string) {
	if s == "" {
		return
	}
	if n := len(e.parts); n > 0 && e.parts[n-1].param < 0 {
		e.parts[n-1].text += s
		return
	}
	e.parts = append(e.parts, part{text: s, param: -1})
}
