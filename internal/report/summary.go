package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/themefix/internal/config"
	"github.com/Sumatoshi-tech/themefix/internal/rewrite"
)

// Report layout constants.
const (
	Title      = "HARDCODED VALUE REPLACEMENT REPORT"
	ruleWidth  = 60
	colChanges = "Changes"
	colFile    = "File"
)

// DryRunHint is printed after the report in dry-run mode.
const DryRunHint = "Run without --dry-run to apply changes"

// ErrUnknownFormat indicates an unsupported report format.
var ErrUnknownFormat = errors.New("unknown report format")

// Rule is the horizontal separator around the text report.
func Rule() string {
	return strings.Repeat("=", ruleWidth)
}

// Summary is the serializable form of a finished run.
type Summary struct {
	DryRun            bool                 `json:"dry_run"            yaml:"dry_run"`
	FilesScanned      int                  `json:"files_scanned"      yaml:"files_scanned"`
	FilesSkipped      int                  `json:"files_skipped"      yaml:"files_skipped"`
	FilesModified     int                  `json:"files_modified"     yaml:"files_modified"`
	TotalReplacements int                  `json:"total_replacements" yaml:"total_replacements"`
	ImportsAdded      int                  `json:"imports_added"      yaml:"imports_added"`
	FileErrors        int                  `json:"file_errors"        yaml:"file_errors"`
	TopFiles          []rewrite.FileChange `json:"top_files"          yaml:"top_files"`
}

// NewSummary snapshots tracker, keeping the topN most changed files.
func NewSummary(tracker *rewrite.Tracker, topN int, dryRun bool) Summary {
	top := tracker.TopFiles(topN)
	if top == nil {
		top = []rewrite.FileChange{}
	}

	return Summary{
		DryRun:            dryRun,
		FilesScanned:      tracker.FilesScanned,
		FilesSkipped:      tracker.FilesSkipped,
		FilesModified:     tracker.FilesModified,
		TotalReplacements: tracker.TotalReplacements,
		ImportsAdded:      tracker.ImportsAdded,
		FileErrors:        tracker.FileErrors,
		TopFiles:          top,
	}
}

// Write renders s in the given format.
func Write(w io.Writer, s Summary, format string, topN int) error {
	switch format {
	case "", config.FormatText:
		_, err := io.WriteString(w, FormatText(s, topN))
		if err != nil {
			return fmt.Errorf("write text report: %w", err)
		}

		return nil
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		err := enc.Encode(s)
		if err != nil {
			return fmt.Errorf("encode json report: %w", err)
		}

		return nil
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()

		err := enc.Encode(s)
		if err != nil {
			return fmt.Errorf("encode yaml report: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// FormatText renders the human-readable report block.
func FormatText(s Summary, topN int) string {
	var sb strings.Builder

	sb.WriteString("\n" + Rule() + "\n")
	sb.WriteString(Title + "\n")
	sb.WriteString(Rule() + "\n")
	fmt.Fprintf(&sb, "Files Modified: %d\n", s.FilesModified)
	fmt.Fprintf(&sb, "Total Replacements: %d\n", s.TotalReplacements)
	fmt.Fprintf(&sb, "Imports Added: %d\n", s.ImportsAdded)

	if s.FileErrors > 0 {
		fmt.Fprintf(&sb, "Files With Errors: %d\n", s.FileErrors)
	}

	fmt.Fprintf(&sb, "\nTop %d Files by Changes:\n", topN)

	if len(s.TopFiles) > 0 {
		sb.WriteString(topFilesTable(s.TopFiles) + "\n")
	}

	sb.WriteString(Rule() + "\n")

	return sb.String()
}

func topFilesTable(rows []rewrite.FileChange) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
	})

	tbl.AppendHeader(table.Row{colChanges, colFile})

	for _, row := range rows {
		tbl.AppendRow(table.Row{row.Replacements, row.Path})
	}

	return tbl.Render()
}
