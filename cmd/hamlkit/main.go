// Command hamlkit exposes the toolbox from the command line.
// It generates Go source from variant descriptor files, lists variant names,
// prints the descriptor schema and diffs text files line by line.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

const version = "0.1.0"

// CLI defines the command-line interface for hamlkit.
type CLI struct {
	// Global flags
	Verbose bool `short:"v" help:"Enable debug logging"`

	Variants VariantsGroup `cmd:"" help:"Variant descriptor operations (generate, list, schema)"`
	Diff     DiffCmd       `cmd:"" help:"Diff two text files line by line"`
	Version  VersionCmd    `cmd:"" help:"Print version information"`
}

// VersionCmd prints the version.
type VersionCmd struct{}

// Run executes the version command.
func (c *VersionCmd) Run(ctx *kong.Context) error {
	_, err := fmt.Fprintf(ctx.Stdout, "hamlkit %s\n", version)
	return err
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	return kong.New(cli, append([]kong.Option{
		kong.Name("hamlkit"),
		kong.Description("Subsequence matching and flag-specialized variant generation"),
		kong.UsageOnError(),
	}, options...)...)
}

// run parses args and executes the selected command with a logger
// writing to stderr.
func run(parser *kong.Kong, cli *CLI, args []string, stderr io.Writer) error {
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	return ctx.Run(newLogger(stderr, cli.Verbose))
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}

	err = run(parser, &cli, os.Args[1:], os.Stderr)
	parser.FatalIfErrorf(err)
}
