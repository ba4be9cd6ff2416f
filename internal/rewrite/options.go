// Package rewrite walks a source tree and replaces hardcoded color literals
// with theme constant references.
package rewrite

import (
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/themefix/internal/palette"
)

// Extension selects the files a run looks at.
const Extension = ".dart"

// GeneratedMarkers are path fragments of machine-generated sources that are
// never edited.
//
//nolint:gochecknoglobals // fixed marker list.
var GeneratedMarkers = []string{".g.dart", ".freezed.dart"}

// Options configures a run.
type Options struct {
	// DryRun performs every step except writing files.
	DryRun bool

	// Mapping is the replacement table. Nil selects palette.Default.
	Mapping palette.Mapping

	// Exclude lists doublestar globs matched against root-relative,
	// slash-separated paths.
	Exclude []string

	// SkipVendor drops paths that look vendored.
	SkipVendor bool

	// MaxFileSize skips files larger than this many bytes. Zero disables.
	MaxFileSize uint64

	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger

	// Tracer creates the run and per-file spans. Nil uses a no-op tracer.
	Tracer trace.Tracer

	// Observer is told about discovered, changed and failed files.
	// Nil ignores these events.
	Observer Observer
}

// Observer receives progress events from a run in processing order.
type Observer interface {
	// Found is called once with the number of candidate files.
	Found(count int)
	// Changed is called for every file with at least one replacement.
	Changed(res FileResult)
	// Failed is called for every file that could not be read or written.
	Failed(path string, err error)
}

func (o Options) mapping() palette.Mapping {
	if o.Mapping == nil {
		return palette.Default
	}

	return o.Mapping
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return o.Logger
}

func (o Options) tracer() trace.Tracer {
	if o.Tracer == nil {
		return nooptrace.NewTracerProvider().Tracer("themefix")
	}

	return o.Tracer
}

func (o Options) observer() Observer {
	if o.Observer == nil {
		return nopObserver{}
	}

	return o.Observer
}

type nopObserver struct{}

func (nopObserver) Found(int)            {}
func (nopObserver) Changed(FileResult)   {}
func (nopObserver) Failed(string, error) {}
