// Package oteltplocate traces template lookups with OpenTelemetry.
// Wrap any tplocate.Source; every call becomes one span named "tplocate.<Method>".
package oteltplocate

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/skosovsky/tplocate"
)

const instrumentationName = "github.com/skosovsky/tplocate/ext/oteltplocate"

// Span attribute keys.
const (
	AttrTemplateName  = attribute.Key("tplocate.template.name")
	AttrTemplateCount = attribute.Key("tplocate.template.count")
	AttrVerifyResult  = attribute.Key("tplocate.verify.result")
	AttrExists        = attribute.Key("tplocate.template.exists")
)

var _ tplocate.Source = (*Source)(nil)

// Source is a tplocate.Source that records a span around each call to the wrapped Source.
type Source struct {
	next   tplocate.Source
	tracer trace.Tracer
	ctx    context.Context // parent for new spans, set by WithContext
}

// Option configures Wrap.
type Option func(*options)

type options struct {
	tp trace.TracerProvider
}

// WithTracerProvider sets the provider. Default is otel.GetTracerProvider(). Nil is ignored.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		if tp != nil {
			o.tp = tp
		}
	}
}

// Wrap returns a traced view of src. Spans have no parent until WithContext is used.
func Wrap(src tplocate.Source, opts ...Option) *Source {
	o := options{tp: otel.GetTracerProvider()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Source{
		next:   src,
		tracer: o.tp.Tracer(instrumentationName),
		ctx:    context.Background(),
	}
}

// WithContext returns a copy whose spans are children of the span in ctx.
// tplocate.Source methods take no context, so the parent is carried by the wrapper instead.
// Only the span is used: ctx cancellation and deadlines do not affect the wrapped calls.
// Make a fresh copy per request and do not keep it beyond that request; s is not modified.
func (s *Source) WithContext(ctx context.Context) *Source {
	c := *s
	c.ctx = ctx
	return &c
}

// ReadSource implements tplocate.Source.
func (s *Source) ReadSource(name string) ([]byte, time.Time, error) {
	_, span := s.tracer.Start(s.ctx, "tplocate.ReadSource", trace.WithAttributes(AttrTemplateName.String(name)))
	defer span.End()
	data, mtime, err := s.next.ReadSource(name)
	recordErr(span, err)
	return data, mtime, err
}

// LastModified implements tplocate.Source.
func (s *Source) LastModified(name string) (time.Time, error) {
	_, span := s.tracer.Start(s.ctx, "tplocate.LastModified", trace.WithAttributes(AttrTemplateName.String(name)))
	defer span.End()
	mtime, err := s.next.LastModified(name)
	recordErr(span, err)
	return mtime, err
}

// Verify implements tplocate.Source.
func (s *Source) Verify(expect map[string]time.Time) bool {
	_, span := s.tracer.Start(s.ctx, "tplocate.Verify", trace.WithAttributes(AttrTemplateCount.Int(len(expect))))
	defer span.End()
	ok := s.next.Verify(expect)
	span.SetAttributes(AttrVerifyResult.Bool(ok))
	return ok
}

// Exists implements tplocate.Source.
func (s *Source) Exists(name string) bool {
	_, span := s.tracer.Start(s.ctx, "tplocate.Exists", trace.WithAttributes(AttrTemplateName.String(name)))
	defer span.End()
	ok := s.next.Exists(name)
	span.SetAttributes(AttrExists.Bool(ok))
	return ok
}

// List implements tplocate.Source.
func (s *Source) List() ([]string, error) {
	_, span := s.tracer.Start(s.ctx, "tplocate.List")
	defer span.End()
	names, err := s.next.List()
	if err != nil {
		recordErr(span, err)
		return nil, err
	}
	span.SetAttributes(AttrTemplateCount.Int(len(names)))
	return names, nil
}

func recordErr(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
