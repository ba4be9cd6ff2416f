// Package splitscan locates the page classes inside an oversized Dart file
// and reports how large each of them is. It never modifies the file.
package splitscan

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/themefix/internal/fsutil"
)

// Section names.
const (
	SectionMessagesList = "MessagesListPage"
	SectionChat         = "ChatPage"
)

const ruleWidth = 60

// ErrNotFound indicates the target file does not exist.
var ErrNotFound = errors.New("target not found")

var (
	// From the list page class up to the first chat page class, or EOF.
	messagesListRe = regexp.MustCompile(`(?s)class MessagesListPage.*?(class ChatPage|class _ChatPageState|\z)`)
	// From the chat page class to the first closing brace at column zero.
	chatRe = regexp.MustCompile(`(?s)class ChatPage.*?\n\}`)

	newlineNormalizer = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// Section is one located class span.
type Section struct {
	Name string
	// Chars is the span length in code points.
	Chars int
	// StartLine and EndLine are 1-based and inclusive.
	StartLine int
	EndLine   int
}

// Result summarizes one analyzed file.
type Result struct {
	Path     string
	Chars    int
	Lines    int
	Bytes    int
	Sections []Section
}

// Section returns the section with the given name.
func (r Result) Section(name string) (Section, bool) {
	for _, s := range r.Sections {
		if s.Name == name {
			return s, true
		}
	}

	return Section{}, false
}

// Analyze reads path and locates its sections. A missing file yields
// ErrNotFound.
func Analyze(path string) (Result, error) {
	absPath, resolveErr := fsutil.ResolveFile(path)
	if resolveErr != nil {
		if errors.Is(resolveErr, fs.ErrNotExist) {
			return Result{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}

		return Result{}, resolveErr
	}

	data, err := os.ReadFile(absPath) //nolint:gosec // user-selected target.
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}

	return AnalyzeContent(path, string(data)), nil
}

// AnalyzeContent locates the sections in content. Line endings are
// translated to \n first, so character counts do not depend on them.
// Bytes is the untranslated size.
func AnalyzeContent(path, content string) Result {
	raw := len(content)
	content = newlineNormalizer.Replace(content)

	res := Result{
		Path:  path,
		Chars: utf8.RuneCountInString(content),
		Lines: CountLines(content),
		Bytes: raw,
	}

	if loc := messagesListRe.FindStringSubmatchIndex(content); loc != nil {
		// The terminator is not part of the section.
		res.Sections = append(res.Sections, newSection(SectionMessagesList, content, loc[0], loc[2]))
	}

	if loc := chatRe.FindStringIndex(content); loc != nil {
		res.Sections = append(res.Sections, newSection(SectionChat, content, loc[0], loc[1]))
	}

	return res
}

func newSection(name, content string, start, end int) Section {
	span := content[start:end]

	last := end
	if last > start {
		last--
	}

	return Section{
		Name:      name,
		Chars:     utf8.RuneCountInString(span),
		StartLine: strings.Count(content[:start], "\n") + 1,
		EndLine:   strings.Count(content[:last], "\n") + 1,
	}
}

// CountLines counts lines the way universal newline splitting does: \n, \r\n,
// \r and the Unicode line separators all end a line, and a trailing
// terminator does not open a new one.
func CountLines(content string) int {
	lines := 0
	pending := false

	for i := 0; i < len(content); {
		r, size := utf8.DecodeRuneInString(content[i:])

		switch r {
		case '\r':
			if i+1 < len(content) && content[i+1] == '\n' {
				size++
			}

			lines++
			pending = false
		case '\n', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
			lines++
			pending = false
		default:
			pending = true
		}

		i += size
	}

	if pending {
		lines++
	}

	return lines
}

// Run prints the full analysis of path to w. A missing target is reported on
// w and is not an error.
func Run(w io.Writer, path string) error {
	fmt.Fprintln(w, "Large File Splitter")
	fmt.Fprintln(w, strings.Repeat("=", ruleWidth))

	res, err := Analyze(path)

	switch {
	case errors.Is(err, ErrNotFound):
		fmt.Fprintf(w, "Error: %s not found\n", path)
	case err != nil:
		return err
	default:
		Print(w, res)
	}

	fmt.Fprintln(w, strings.Repeat("=", ruleWidth))
	fmt.Fprintln(w, "Analysis complete. Manual refactoring recommended.")

	return nil
}

// Print writes the body of the analysis for res.
func Print(w io.Writer, res Result) {
	fmt.Fprintf(w, "Analyzing %s...\n", res.Path)
	fmt.Fprintf(w, "File size: %d characters, %d lines\n", res.Chars, res.Lines)
	fmt.Fprintf(w, "On disk: %s\n", humanize.Bytes(uint64(res.Bytes))) //nolint:gosec // len is never negative.

	for _, s := range res.Sections {
		fmt.Fprintf(w, "Found %s: %d chars\n", s.Name, s.Chars)
		fmt.Fprintf(w, "  lines %d-%d\n", s.StartLine, s.EndLine)
	}
}
