package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/Sumatoshi-tech/themefix/internal/observability"
)

func TestInit_NoEndpointIsNoop(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer

	providers, err := observability.Init(observability.DefaultConfig(), &logs)
	require.NoError(t, err)

	_, span := providers.Tracer.Start(context.Background(), observability.SpanRun)
	assert.False(t, span.SpanContext().IsValid())
	span.End()

	providers.Logger.Info("hidden")
	providers.Logger.Warn("shown")

	assert.NotContains(t, logs.String(), "hidden")
	assert.Contains(t, logs.String(), "shown")
	assert.Contains(t, logs.String(), "service=themefix")

	require.NoError(t, providers.Shutdown(context.Background()))
}

func TestNewLogger_JSONAndLevel(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer

	cfg := observability.DefaultConfig()
	cfg.LogJSON = true
	cfg.LogLevel = slog.LevelDebug

	observability.NewLogger(cfg, &logs).Debug("details", "path", "lib/a.dart")

	assert.Contains(t, logs.String(), `"msg":"details"`)
	assert.Contains(t, logs.String(), `"path":"lib/a.dart"`)
}

func TestBuildResource_Attributes(t *testing.T) {
	t.Parallel()

	cfg := observability.DefaultConfig()
	cfg.ServiceVersion = "1.0.0"

	res, err := observability.ProbeBuildResource(cfg)
	require.NoError(t, err)

	name, ok := res.Set().Value(semconv.ServiceNameKey)
	require.True(t, ok)
	assert.Equal(t, "themefix", name.AsString())

	version, ok := res.Set().Value(semconv.ServiceVersionKey)
	require.True(t, ok)
	assert.Equal(t, "1.0.0", version.AsString())
}

func TestSampler(t *testing.T) {
	t.Parallel()

	assert.True(t, observability.ProbeSamplerSpan(observability.DefaultConfig()))

	cfg := observability.DefaultConfig()
	cfg.SampleRatio = 1

	assert.True(t, observability.ProbeSamplerSpan(cfg))
}

func TestParseOTLPHeaders(t *testing.T) {
	t.Parallel()

	assert.Nil(t, observability.ParseOTLPHeaders(""))
	assert.Nil(t, observability.ParseOTLPHeaders("garbage"))
	assert.Equal(t,
		map[string]string{"api-key": "secret", "team": "mobile"},
		observability.ParseOTLPHeaders(" api-key = secret ,team=mobile"))
}
