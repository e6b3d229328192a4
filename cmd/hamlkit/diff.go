package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/matid/haml/lcs"
	"github.com/matid/haml/textnorm"
)

// DiffCmd prints a line diff of two files.
type DiffCmd struct {
	IgnoreCase  bool   `short:"i" help:"Compare lines case-insensitively"`
	IgnoreSpace bool   `short:"w" help:"Ignore leading and trailing whitespace"`
	Old         string `arg:"" type:"existingfile" help:"Original file"`
	New         string `arg:"" type:"existingfile" help:"Changed file"`
}

// Run executes the diff command.
func (c *DiffCmd) Run(ctx *kong.Context) error {
	oldRaw, err := os.ReadFile(c.Old)
	if err != nil {
		return err
	}
	newRaw, err := os.ReadFile(c.New)
	if err != nil {
		return err
	}

	return writeDiff(ctx.Stdout, textnorm.Lines(oldRaw), textnorm.Lines(newRaw), c.equal)
}

func (c *DiffCmd) equal(a, b string) bool {
	if c.IgnoreSpace {
		a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	}
	if c.IgnoreCase {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// writeDiff prints one line per edit, prefixed with " ", "-" or "+".
func writeDiff(w io.Writer, before, after []string, equal func(a, b string) bool) error {
	for _, e := range lcs.Edits(before, after, equal) {
		line := e.X
		if e.Op == lcs.OpInsert {
			line = e.Y
		}
		if _, err := fmt.Fprintf(w, "%s%s\n", e.Op, line); err != nil {
			return err
		}
	}
	return nil
}
