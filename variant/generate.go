package variant

import (
	"errors"
	"fmt"
	"slices"
)

// Set is the complete, immutable collection of variants of one family:
// exactly one variant per flag assignment.
type Set struct {
	desc     Descriptor
	variants []*Variant // counting order, see assignmentAt
	byName   map[string]*Variant
}

// Name returns the family name.
func (s *Set) Name() string { return s.desc.Name }

// Descriptor returns a copy of the descriptor the set was generated from.
func (s *Set) Descriptor() Descriptor {
	d := s.desc
	d.Params = slices.Clone(d.Params)
	d.Flags = slices.Clone(d.Flags)
	return d
}

// Len returns the number of variants, 2^len(flags).
func (s *Set) Len() int { return len(s.variants) }

// Variants returns every variant, all-false first and all-true last.
func (s *Set) Variants() []*Variant { return slices.Clone(s.variants) }

// Lookup returns the variant for an assignment given in declaration order.
func (s *Set) Lookup(assignment ...bool) (*Variant, error) {
	if len(assignment) != len(s.desc.Flags) {
		return nil, &LookupError{
			Family: s.desc.Name,
			Name:   Name(s.desc.Name, assignment...),
			Reason: fmt.Sprintf("family declares %d flags, got %d values", len(s.desc.Flags), len(assignment)),
		}
	}
	return s.variants[indexOf(assignment)], nil
}

// Assign converts named flag values into an assignment. Flags missing from
// the map are false; names the family does not declare are an error.
func (s *Set) Assign(flags map[string]bool) ([]bool, error) {
	for name := range flags {
		if !slices.Contains(s.desc.Flags, name) {
			return nil, &LookupError{Family: s.desc.Name, Reason: fmt.Sprintf("undeclared flag %q", name)}
		}
	}
	assignment := make([]bool, len(s.desc.Flags))
	for i, name := range s.desc.Flags {
		assignment[i] = flags[name]
	}
	return assignment, nil
}

// Select is Assign followed by Lookup.
func (s *Set) Select(flags map[string]bool) (*Variant, error) {
	assignment, err := s.Assign(flags)
	if err != nil {
		return nil, err
	}
	return s.Lookup(assignment...)
}

// build generates every variant of a family without registering anything.
// It fails on the first subset that cannot be evaluated.
func build(d Descriptor) (*Set, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	d.Params = slices.Clone(d.Params)
	d.Flags = slices.Clone(d.Flags)

	n := len(d.Flags)
	total := 1 << n

	nodes, err := parseTemplate(d.Template)
	if err == nil {
		err = checkReferences(nodes, d.Flags, d.Params)
	}
	if err != nil {
		return nil, templateError(d, assignmentAt(0, n), err)
	}

	params := make(map[string]int, len(d.Params))
	for i, p := range d.Params {
		params[p] = i
	}

	set := &Set{
		desc:     d,
		variants: make([]*Variant, 0, total),
		byName:   make(map[string]*Variant, total),
	}
	for k := 0; k < total; k++ {
		assignment := assignmentAt(k, n)
		env := make(map[string]bool, n)
		for i, f := range d.Flags {
			env[f] = assignment[i]
		}

		ev := &evaluator{env: env, params: params}
		if err := ev.run(nodes); err != nil {
			return nil, templateError(d, assignment, err)
		}

		v := &Variant{
			family:     d.Name,
			name:       Name(d.Name, assignment...),
			flags:      d.Flags,
			params:     d.Params,
			assignment: assignment,
			parts:      ev.parts,
		}
		set.variants = append(set.variants, v)
		set.byName[v.name] = v
	}
	return set, nil
}

func templateError(d Descriptor, assignment []bool, err error) error {
	te := &TemplateError{
		Family:     d.Name,
		Flags:      d.Flags,
		Assignment: assignment,
		Msg:        err.Error(),
	}
	var se *syntaxError
	if errors.As(err, &se) {
		te.Line, te.Column = se.pos.line, se.pos.col
		te.Msg = se.msg
		te.Err = se.err
	}
	return te
}
