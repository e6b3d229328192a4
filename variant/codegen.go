package variant

import (
	"bytes"
	"fmt"
	"go/format"
	gotoken "go/token"
	"strconv"
	"strings"
	"text/template"
)

// GenerateGo emits Go source for the given families: one function per
// variant, named by the variant naming convention, plus a selector per
// family that maps flag values to the matching function.
//
// For the family greet(name) with flag formal it emits
//
//	func greet_false(name string) string { return "Hi " + name + "!" }
//	func greet_true(name string) string  { return "Good day, " + name + "." }
//	func greetVariant(formal bool) func(name string) string
//
// Base names, parameters and flags must be valid Go identifiers and not Go
// keywords.
func GenerateGo(pkg string, ds ...Descriptor) ([]byte, error) {
	if !gotoken.IsIdentifier(pkg) {
		return nil, fmt.Errorf("%w: invalid package name %q", ErrConfiguration, pkg)
	}

	data := goFile{Package: pkg}
	names := make(map[string]string)

	for _, d := range ds {
		if err := checkGoNames(d); err != nil {
			return nil, err
		}
		set, err := build(d)
		if err != nil {
			return nil, err
		}

		fam := goFamily{
			Name:      d.Name,
			Signature: goSignature(d.Params),
			FuncType:  "func(" + goSignature(d.Params) + ") string",
			Selector:  d.Name + "Variant",
			FlagArgs:  strings.Join(d.Flags, ", "),
		}
		if len(d.Flags) > 0 {
			fam.FlagParams = strings.Join(d.Flags, ", ") + " bool"
		}
		if err := claimGoName(names, d.Name, fam.Selector); err != nil {
			return nil, err
		}
		if err := claimGoName(names, d.Name, d.Name+"Variants"); err != nil {
			return nil, err
		}
		for _, v := range set.variants {
			if err := claimGoName(names, d.Name, v.name); err != nil {
				return nil, err
			}
			fam.Variants = append(fam.Variants, goVariant{
				Name:  v.name,
				Flags: describe(d.Flags, v.assignment),
				Expr:  goExpr(v),
			})
		}
		data.Families = append(data.Families, fam)
	}

	var buf bytes.Buffer
	if err := goTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render go source: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format go source: %w", err)
	}
	return src, nil
}

type goFile struct {
	Package  string
	Families []goFamily
}

type goFamily struct {
	Name       string
	Signature  string // "name string, title string"
	FuncType   string
	Selector   string
	FlagParams string // "formal, compact bool"
	FlagArgs   string // "formal, compact"
	Variants   []goVariant
}

type goVariant struct {
	Name  string
	Flags string
	Expr  string
}

var goTemplate = template.Must(template.New("variants").Parse(`// Code generated by hamlkit. DO NOT EDIT.

package {{.Package}}
{{range $f := .Families}}
// {{$f.Selector}} returns the {{$f.Name}} variant for the given flags.
func {{$f.Selector}}({{$f.FlagParams}}) {{$f.FuncType}} {
	return {{$f.Name}}Variants[variantIndex({{$f.FlagArgs}})]
}

var {{$f.Name}}Variants = [...]{{$f.FuncType}}{
{{- range $f.Variants}}
	{{.Name}},
{{- end}}
}
{{range $f.Variants}}
{{- if .Flags}}
// {{.Name}} is {{$f.Name}} with {{.Flags}}.
{{- end}}
func {{.Name}}({{$f.Signature}}) string {
	return {{.Expr}}
}
{{end}}
{{- end}}
// variantIndex packs flag values into a variant table index, first flag
// most significant.
func variantIndex(flags ...bool) int {
	i := 0
	for _, f := range flags {
		i <<= 1
		if f {
			i |= 1
		}
	}
	return i
}
`))

// goSignature renders parameters as "a string, b string".
func goSignature(params []string) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p + " string"
	}
	return strings.Join(parts, ", ")
}

// goExpr renders a variant body as a string concatenation.
func goExpr(v *Variant) string {
	if len(v.parts) == 0 {
		return `""`
	}
	terms := make([]string, len(v.parts))
	for i, p := range v.parts {
		if p.param < 0 {
			terms[i] = strconv.Quote(p.text)
			continue
		}
		terms[i] = v.params[p.param]
	}
	return strings.Join(terms, " + ")
}

// claimGoName records a package-level identifier for family, failing when
// another family already declared it.
func claimGoName(names map[string]string, family, name string) error {
	if owner, taken := names[name]; taken {
		return &ConfigurationError{
			Family: family,
			Reason: fmt.Sprintf("go identifier %q already belongs to family %q", name, owner),
		}
	}
	names[name] = family
	return nil
}

func checkGoNames(d Descriptor) error {
	check := func(kind, name string) error {
		if gotoken.IsKeyword(name) || name == "variantIndex" {
			return &ConfigurationError{Family: d.Name, Reason: fmt.Sprintf("%s %q is reserved in Go source", kind, name)}
		}
		return nil
	}
	if err := check("name", d.Name); err != nil {
		return err
	}
	for _, f := range d.Flags {
		if err := check("flag", f); err != nil {
			return err
		}
	}
	for _, p := range d.Params {
		if err := check("parameter", p); err != nil {
			return err
		}
	}
	return nil
}
