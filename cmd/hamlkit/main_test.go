package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matid/haml/variant"
)

const greetYAML = `families:
  - name: greet
    params: [name]
    flags: [formal]
    template: "{% if formal %}Good day, ${name}.{% else %}Hi ${name}!{% end %}"
`

// execute runs hamlkit with args and returns what it wrote to stdout and
// stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var cli CLI
	var stdout, stderr bytes.Buffer
	parser, err := newParser(&cli,
		kong.Writers(&stdout, &stderr),
		kong.Exit(func(code int) { t.Fatalf("hamlkit exited with code %d: %s", code, stderr.String()) }),
	)
	require.NoError(t, err)

	err = run(parser, &cli, args, &stderr)
	return stdout.String(), stderr.String(), err
}

func writeGreet(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "greet.yaml"), []byte(greetYAML), 0o644))
	return dir
}

func TestVariantsList(t *testing.T) {
	dir := writeGreet(t)

	out, _, err := execute(t, "variants", "list", dir)
	require.NoError(t, err)
	assert.Equal(t, "greet_false\ngreet_true\n", out)

	out, _, err = execute(t, "variants", "list", "--body", dir)
	require.NoError(t, err)
	assert.Equal(t, "greet_false\t\"Hi ${name}!\"\ngreet_true\t\"Good day, ${name}.\"\n", out)
}

func TestVariantsList_TemplateError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(`families:
  - name: bad
    flags: [a]
    template: "{% if b %}x{% end %}"
`), 0o644))

	_, _, err := execute(t, "variants", "list", dir)
	assert.ErrorIs(t, err, variant.ErrTemplate)
}

func TestVariantsGenerate_Stdout(t *testing.T) {
	dir := writeGreet(t)

	out, _, err := execute(t, "variants", "generate", "--package", "views", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "package views")
	assert.Contains(t, out, "func greet_true(name string) string")
	assert.Contains(t, out, "func greetVariant(formal bool) func(name string) string")
}

func TestVariantsGenerate_OutFile(t *testing.T) {
	dir := writeGreet(t)
	outPath := filepath.Join(t.TempDir(), "greet_gen.go")

	out, logs, err := execute(t, "-v", "variants", "generate", "-p", "views", "-o", outPath, filepath.Join(dir, "greet.yaml"))
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, logs, "generated variants")
	assert.Contains(t, logs, "families=1")

	src, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(src), "package views")
	assert.Contains(t, string(src), `return "Hi " + name + "!"`)
}

func TestVariantsSchema(t *testing.T) {
	out, _, err := execute(t, "variants", "schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"families"`)
	assert.Contains(t, out, `"template"`)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "hamlkit "+version+"\n", out)
}

func TestDiff(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.haml")
	newPath := filepath.Join(dir, "new.haml")
	require.NoError(t, os.WriteFile(oldPath, []byte("%p\r\n  = A\r\n%br\r\n"), 0o644))
	require.NoError(t, os.WriteFile(newPath, []byte("%p\n= a\n%hr\n"), 0o644))

	out, _, err := execute(t, "diff", "-i", "-w", oldPath, newPath)
	require.NoError(t, err)
	assert.Equal(t, " %p\n   = A\n-%br\n+%hr\n", out)
}

func TestWriteDiff(t *testing.T) {
	var buf bytes.Buffer
	cmd := &DiffCmd{IgnoreSpace: true}

	err := writeDiff(&buf, []string{"%p", "  = a", "%br"}, []string{"%p", "= a", "%hr"}, cmd.equal)
	require.NoError(t, err)
	assert.Equal(t, " %p\n   = a\n-%br\n+%hr\n", buf.String())
}

func TestDiffCmd_Equal(t *testing.T) {
	assert.False(t, (&DiffCmd{}).equal("A", "a"))
	assert.True(t, (&DiffCmd{IgnoreCase: true}).equal("A", "a"))
	assert.True(t, (&DiffCmd{IgnoreSpace: true}).equal(" a ", "a"))
}

func TestLoadDescriptors(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "greet.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(greetYAML), 0o644))

	fromFile, err := loadDescriptors([]string{yamlPath})
	require.NoError(t, err)
	fromDir, err := loadDescriptors([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, fromFile, fromDir)
	require.Len(t, fromFile, 1)

	src, err := variant.GenerateGo("views", fromFile...)
	require.NoError(t, err)
	assert.Contains(t, string(src), "func greet_true(name string) string")

	_, err = loadDescriptors([]string{filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, false).Debug("hidden")
	assert.Empty(t, buf.String())

	newLogger(&buf, true).Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}
