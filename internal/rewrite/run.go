package rewrite

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/themefix/internal/fsutil"
	"github.com/Sumatoshi-tech/themefix/internal/observability"
	"github.com/Sumatoshi-tech/themefix/internal/palette"
)

// ErrRootNotFound indicates the scan root does not exist.
var ErrRootNotFound = errors.New("scan root does not exist")

// Run rewrites every eligible file under root and returns the accumulated
// tracker. A missing root is the only fatal error; per-file failures are
// reported to the observer, counted, and the run moves on. Cancelling ctx
// stops the run between files.
func Run(ctx context.Context, root string, opts Options) (*Tracker, error) {
	logger := opts.logger()
	observer := opts.observer()
	mapping := opts.mapping()

	_, _, statErr := fsutil.Resolve(root)
	if statErr != nil {
		return nil, errRootNotFound(root, statErr)
	}

	ctx, runSpan := opts.tracer().Start(ctx, observability.SpanRun, trace.WithAttributes(
		attribute.String("themefix.root", root),
		attribute.Bool("themefix.dry_run", opts.DryRun),
	))
	defer runSpan.End()

	files, err := Discover(root, logger)
	if err != nil {
		runSpan.RecordError(err)
		runSpan.SetStatus(codes.Error, "discover failed")

		return nil, err
	}

	tracker := &Tracker{FilesScanned: len(files)}
	observer.Found(len(files))

	for _, path := range files {
		ctxErr := ctx.Err()
		if ctxErr != nil {
			return tracker, ctxErr
		}

		reason := classify(root, path, opts)
		if reason != skipNone {
			logger.DebugContext(ctx, "skip file", "path", path, "reason", string(reason))
			tracker.Skip()

			continue
		}

		res, procErr := processTraced(ctx, path, mapping, opts)
		if procErr != nil {
			logger.DebugContext(ctx, "file failed", "path", path, "error", procErr)
			tracker.Fail()
			observer.Failed(path, procErr)

			continue
		}

		if res.Replacements == 0 {
			continue
		}

		tracker.Record(res)
		observer.Changed(res)
	}

	runSpan.SetAttributes(
		attribute.Int("themefix.files_modified", tracker.FilesModified),
		attribute.Int("themefix.replacements", tracker.TotalReplacements),
	)

	logger.InfoContext(ctx, "run complete",
		"files", tracker.FilesScanned,
		"modified", tracker.FilesModified,
		"replacements", tracker.TotalReplacements,
		"imports_added", tracker.ImportsAdded,
		"errors", tracker.FileErrors,
	)

	return tracker, nil
}

func processTraced(ctx context.Context, path string, mapping palette.Mapping, opts Options) (FileResult, error) {
	_, span := opts.tracer().Start(ctx, observability.SpanFile, trace.WithAttributes(
		attribute.String("file.path", path),
	))
	defer span.End()

	res, err := ProcessFile(path, mapping, opts.DryRun)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "process failed")

		return res, err
	}

	span.SetAttributes(
		attribute.Int("themefix.replacements", res.Replacements),
		attribute.Bool("themefix.import_added", res.ImportAdded),
	)

	return res, nil
}
