// Package report renders rewrite progress and the final change report.
package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/Sumatoshi-tech/themefix/internal/rewrite"
)

const (
	markOK   = "✓"
	markFail = "✗"
)

// Console prints per-file progress lines. It implements [rewrite.Observer].
type Console struct {
	out    io.Writer
	errOut io.Writer
	diff   bool
	quiet  bool

	okColor   *color.Color
	failColor *color.Color
	delColor  *color.Color
	addColor  *color.Color
}

// ConsoleOptions tunes what a Console prints.
type ConsoleOptions struct {
	// Diff follows every changed file with its line diff.
	Diff bool
	// NoColor disables ANSI colors.
	NoColor bool
	// Quiet drops the found and changed lines. Failures are always printed.
	Quiet bool
}

// NewConsole creates a Console writing progress to out and failures to errOut.
func NewConsole(out, errOut io.Writer, opts ConsoleOptions) *Console {
	c := &Console{
		out:       out,
		errOut:    errOut,
		diff:      opts.Diff,
		quiet:     opts.Quiet,
		okColor:   color.New(color.FgGreen),
		failColor: color.New(color.FgRed),
		delColor:  color.New(color.FgRed),
		addColor:  color.New(color.FgGreen),
	}

	if opts.NoColor {
		for _, col := range []*color.Color{c.okColor, c.failColor, c.delColor, c.addColor} {
			col.DisableColor()
		}
	}

	return c
}

// Found prints the number of candidate files.
func (c *Console) Found(count int) {
	if c.quiet {
		return
	}

	fmt.Fprintf(c.out, "Found %d Dart files\n\n", count)
}

// Changed prints the confirmation line for a rewritten file.
func (c *Console) Changed(res rewrite.FileResult) {
	if c.quiet {
		return
	}

	c.okColor.Fprint(c.out, markOK)
	fmt.Fprintf(c.out, " %s: %d replacements\n", filepath.Base(res.Path), res.Replacements)

	if c.diff {
		c.writeDiff(res)
	}
}

// Failed prints a processing error to the error stream.
func (c *Console) Failed(path string, err error) {
	c.failColor.Fprint(c.errOut, markFail)
	fmt.Fprintf(c.errOut, " Error processing %s: %v\n", path, err)
}

func (c *Console) writeDiff(res rewrite.FileResult) {
	fmt.Fprintf(c.out, "--- %s\n+++ %s\n", res.Path, res.Path)

	for _, line := range LineDiff(res.Original, res.Rewritten) {
		switch line.Op {
		case OpDelete:
			c.delColor.Fprintf(c.out, "-%s\n", line.Text)
		case OpInsert:
			c.addColor.Fprintf(c.out, "+%s\n", line.Text)
		case OpEqual:
		}
	}
}
