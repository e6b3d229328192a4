// Package haml is a toolbox of building blocks for a template engine.
//
// Each subpackage can be used independently:
//
//   - lcs: longest common subsequence of two slices under a caller-supplied
//     equivalence, with index pairs and edit scripts
//   - variant: pre-generated, flag-specialized implementations of an
//     operation, one per combination of its boolean flags
//   - textnorm: BOM, UTF-16 and line-ending cleanup for raw input
//
// # Quick Start
//
// Subsequence matching:
//
//	import "github.com/matid/haml/lcs"
//	common := lcs.Match([]int{1, 2, 3}, []int{2, 1, 3}) // [2 3]
//
// Variant generation:
//
//	import "github.com/matid/haml/variant"
//	variant.MustGenerate(variant.Descriptor{
//	    Name:     "greet",
//	    Params:   []string{"name"},
//	    Flags:    []string{"formal"},
//	    Template: "{% if formal %}Good day, ${name}.{% else %}Hi ${name}!{% end %}",
//	})
//	v, _ := variant.LookupName("greet_false")
//	out, _ := v.Call("Ana") // "Hi Ana!"
//
// The hamlkit command (cmd/hamlkit) generates Go source from descriptor
// files and diffs text files with the lcs package.
package haml
