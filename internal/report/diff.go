package report

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of a diff line.
type Op int

// Diff line kinds.
const (
	OpEqual Op = iota
	OpDelete
	OpInsert
)

// DiffLine is one line of a line-level diff.
type DiffLine struct {
	Op   Op
	Text string
}

// LineDiff returns the deleted and inserted lines turning before into after.
// Unchanged lines are omitted.
func LineDiff(before, after string) []DiffLine {
	dmp := diffmatchpatch.New()

	beforeChars, afterChars, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(beforeChars, afterChars, false), lines)

	var out []DiffLine

	for _, d := range diffs {
		var op Op

		switch d.Type {
		case diffmatchpatch.DiffDelete:
			op = OpDelete
		case diffmatchpatch.DiffInsert:
			op = OpInsert
		case diffmatchpatch.DiffEqual:
			continue
		}

		for _, line := range splitLines(d.Text) {
			out = append(out, DiffLine{Op: op, Text: line})
		}
	}

	return out
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")

	return strings.Split(text, "\n")
}
