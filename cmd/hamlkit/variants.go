package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/matid/haml/variant"
)

// VariantsGroup contains descriptor file operations.
type VariantsGroup struct {
	Generate GenerateCmd `cmd:"" help:"Emit Go source with one function per flag assignment"`
	List     ListCmd     `cmd:"" help:"Print every variant name"`
	Schema   SchemaCmd   `cmd:"" help:"Print the descriptor file JSON Schema"`
}

// GenerateCmd emits Go source for descriptor files.
type GenerateCmd struct {
	Package string   `short:"p" default:"variants" help:"Package name of the generated file"`
	Out     string   `short:"o" type:"path" help:"Output file (stdout when empty)"`
	Paths   []string `arg:"" type:"path" help:"Descriptor files or directories"`
}

// Run executes the generate command.
func (c *GenerateCmd) Run(ctx *kong.Context, logger *slog.Logger) error {
	ds, err := loadDescriptors(c.Paths)
	if err != nil {
		return err
	}

	src, err := variant.GenerateGo(c.Package, ds...)
	if err != nil {
		return err
	}

	if c.Out == "" {
		_, err = ctx.Stdout.Write(src)
		return err
	}
	if err := os.WriteFile(c.Out, src, 0o644); err != nil {
		return fmt.Errorf("write generated source: %w", err)
	}
	logger.Info("generated variants",
		slog.String("out", c.Out),
		slog.Int("families", len(ds)))
	return nil
}

// ListCmd prints variant names.
type ListCmd struct {
	Body  bool     `help:"Also print each resolved body"`
	Paths []string `arg:"" type:"path" help:"Descriptor files or directories"`
}

// Run executes the list command.
func (c *ListCmd) Run(ctx *kong.Context, logger *slog.Logger) error {
	ds, err := loadDescriptors(c.Paths)
	if err != nil {
		return err
	}

	r := variant.NewRegistry(variant.WithLogger(logger))
	for _, d := range ds {
		set, err := r.Generate(d)
		if err != nil {
			return err
		}
		for _, v := range set.Variants() {
			if c.Body {
				fmt.Fprintf(ctx.Stdout, "%s\t%q\n", v.Name(), v.Body())
			} else {
				fmt.Fprintln(ctx.Stdout, v.Name())
			}
		}
	}
	return nil
}

// SchemaCmd prints the descriptor schema.
type SchemaCmd struct{}

// Run executes the schema command.
func (c *SchemaCmd) Run(ctx *kong.Context) error {
	data, err := variant.SchemaJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.Stdout, string(data))
	return err
}

// loadDescriptors reads files and every descriptor file inside directories.
func loadDescriptors(paths []string) ([]variant.Descriptor, error) {
	var all []variant.Descriptor
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}

		var ds []variant.Descriptor
		if info.IsDir() {
			ds, err = variant.LoadDir(p)
		} else {
			ds, err = variant.LoadFile(p)
		}
		if err != nil {
			return nil, err
		}
		all = append(all, ds...)
	}
	return all, nil
}
