package oteltplocate

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/goleak"

	"github.com/skosovsky/tplocate"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func setup(t *testing.T) (*Source, *tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.tpl"), []byte("hi"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "about.tpl"), []byte("about"), 0600))
	loc, err := tplocate.NewSingle(dir)
	require.NoError(t, err)
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return Wrap(loc, WithTracerProvider(tp)), sr, tp
}

func attrs(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestSource_ReadSource(t *testing.T) {
	t.Parallel()
	src, sr, _ := setup(t)
	data, _, err := src.ReadSource("index")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "tplocate.ReadSource", spans[0].Name())
	assert.Equal(t, "index", attrs(spans[0])[AttrTemplateName].AsString())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
}

func TestSource_ReadSource_NotFound(t *testing.T) {
	t.Parallel()
	src, sr, _ := setup(t)
	_, _, err := src.ReadSource("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, tplocate.ErrNotFound)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestSource_LastModifiedAndVerify(t *testing.T) {
	t.Parallel()
	src, sr, _ := setup(t)
	mtime, err := src.LastModified("about")
	require.NoError(t, err)
	assert.True(t, src.Verify(map[string]time.Time{"about": mtime}))
	assert.False(t, src.Verify(map[string]time.Time{"about": mtime, "nope": mtime}))

	spans := sr.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, "tplocate.LastModified", spans[0].Name())
	assert.Equal(t, "tplocate.Verify", spans[1].Name())
	assert.True(t, attrs(spans[1])[AttrVerifyResult].AsBool())
	assert.Equal(t, int64(1), attrs(spans[1])[AttrTemplateCount].AsInt64())
	assert.False(t, attrs(spans[2])[AttrVerifyResult].AsBool())
	assert.Equal(t, int64(2), attrs(spans[2])[AttrTemplateCount].AsInt64())
}

func TestSource_ExistsAndList(t *testing.T) {
	t.Parallel()
	src, sr, _ := setup(t)
	assert.True(t, src.Exists("index"))
	assert.False(t, src.Exists("nope"))
	names, err := src.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"about.tpl", "index.tpl"}, names)

	spans := sr.Ended()
	require.Len(t, spans, 3)
	assert.True(t, attrs(spans[0])[AttrExists].AsBool())
	assert.False(t, attrs(spans[1])[AttrExists].AsBool())
	assert.Equal(t, "tplocate.List", spans[2].Name())
	assert.Equal(t, int64(2), attrs(spans[2])[AttrTemplateCount].AsInt64())
}

func TestSource_WithContext_Parent(t *testing.T) {
	t.Parallel()
	src, sr, tp := setup(t)
	ctx, parent := tp.Tracer("test").Start(context.Background(), "render")
	assert.True(t, src.WithContext(ctx).Exists("index"))
	parent.End()

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "tplocate.Exists", spans[0].Name())
	assert.Equal(t, parent.SpanContext().SpanID(), spans[0].Parent().SpanID())
	assert.Equal(t, parent.SpanContext().TraceID(), spans[0].SpanContext().TraceID())
}

func TestSource_WithContext_LeavesReceiverUntouched(t *testing.T) {
	t.Parallel()
	src, sr, tp := setup(t)
	ctx, parent := tp.Tracer("test").Start(context.Background(), "render")
	child := src.WithContext(ctx)
	assert.NotSame(t, src, child)
	assert.True(t, src.Exists("index"))
	parent.End()

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "tplocate.Exists", spans[0].Name())
	assert.False(t, spans[0].Parent().IsValid(), "original wrapper must still start root spans")
}
