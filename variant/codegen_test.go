package variant_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matid/haml/variant"
)

func funcNames(t *testing.T, src []byte) map[string]*ast.FuncDecl {
	t.Helper()
	file, err := parser.ParseFile(token.NewFileSet(), "variants.go", src, parser.ParseComments)
	require.NoError(t, err, "generated source:\n%s", src)

	funcs := make(map[string]*ast.FuncDecl)
	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok {
			funcs[fn.Name.Name] = fn
		}
	}
	return funcs
}

// typeCheck parses and type-checks generated source as a standalone package.
func typeCheck(t *testing.T, src []byte) {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "variants.go", src, 0)
	require.NoError(t, err, "generated source:\n%s", src)

	var conf types.Config
	_, err = conf.Check(file.Name.Name, fset, []*ast.File{file}, nil)
	require.NoError(t, err, "generated source:\n%s", src)
}

func TestGenerateGo_Greet(t *testing.T) {
	src, err := variant.GenerateGo("greetings", greet)
	require.NoError(t, err)

	text := string(src)
	assert.Contains(t, text, "// Code generated by hamlkit. DO NOT EDIT.")
	assert.Contains(t, text, "package greetings")
	assert.Contains(t, text, `return "Good day, " + name + "."`)
	assert.Contains(t, text, `return "Hi " + name + "!"`)
	assert.Contains(t, text, "// greet_true is greet with formal=true.")

	funcs := funcNames(t, src)
	for _, name := range []string{"greet_false", "greet_true", "greetVariant", "variantIndex"} {
		assert.Contains(t, funcs, name)
	}
	typeCheck(t, src)
}

func TestGenerateGo_MultipleFamilies(t *testing.T) {
	src, err := variant.GenerateGo("views",
		variant.Descriptor{
			Name:     "tag",
			Params:   []string{"name", "body"},
			Flags:    []string{"xhtml", "ugly"},
			Template: "<${name}>{% if !ugly %}\n{% end %}${body}{% if xhtml %}</${name}>{% end %}",
		},
		variant.Descriptor{Name: "banner", Template: ""},
	)
	require.NoError(t, err)

	funcs := funcNames(t, src)
	for _, name := range []string{
		"tag_false_false", "tag_false_true", "tag_true_false", "tag_true_true",
		"tagVariant", "banner", "bannerVariant",
	} {
		assert.Contains(t, funcs, name)
	}
	assert.Contains(t, string(src), `return ""`)
	typeCheck(t, src)
}

func TestGenerateGo_HelperNameCollisions(t *testing.T) {
	tag := variant.Descriptor{Name: "tag", Flags: []string{"xhtml", "ugly"}, Template: "<br>"}
	banner := variant.Descriptor{Name: "banner", Template: "="}

	tests := []struct {
		name   string
		family variant.Descriptor
	}{
		{name: "selector", family: variant.Descriptor{Name: "bannerVariant", Template: "-"}},
		{name: "table", family: variant.Descriptor{Name: "bannerVariants", Template: "-"}},
		{name: "variant of other family", family: variant.Descriptor{Name: "tag_true_false", Template: "-"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := variant.GenerateGo("views", tag, banner, tt.family)
			require.ErrorIs(t, err, variant.ErrConfiguration)

			var cfgErr *variant.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.family.Name, cfgErr.Family)
		})
	}

	src, err := variant.GenerateGo("views", tag, banner)
	require.NoError(t, err)
	typeCheck(t, src)
}

func TestGenerateGo_Errors(t *testing.T) {
	_, err := variant.GenerateGo("bad package", greet)
	assert.ErrorIs(t, err, variant.ErrConfiguration)

	_, err = variant.GenerateGo("p", variant.Descriptor{Name: "func", Template: "x"})
	assert.ErrorIs(t, err, variant.ErrConfiguration)

	_, err = variant.GenerateGo("p", variant.Descriptor{Name: "f", Params: []string{"type"}, Template: "x"})
	assert.ErrorIs(t, err, variant.ErrConfiguration)

	_, err = variant.GenerateGo("p", variant.Descriptor{Name: "f", Flags: []string{"a"}, Template: "{% if b %}{% end %}"})
	assert.ErrorIs(t, err, variant.ErrTemplate)

	_, err = variant.GenerateGo("p",
		variant.Descriptor{Name: "a", Flags: []string{"x", "y"}, Template: "1"},
		variant.Descriptor{Name: "a_true", Flags: []string{"z"}, Template: "2"},
	)
	assert.ErrorIs(t, err, variant.ErrConfiguration)
}
