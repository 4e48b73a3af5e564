package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/expire-issues/expire-issues/internal/tracker"
)

// InstrumentedRemote wraps tracker.Remote with OTel tracing and metrics.
// Every call gets a span and is counted in expire_issues.remote.* metrics.
type InstrumentedRemote struct {
	inner  tracker.Remote
	tracer trace.Tracer
	ops    metric.Int64Counter
	dur    metric.Float64Histogram
	errs   metric.Int64Counter
	closed metric.Int64Counter
}

// WrapRemote returns r decorated with OTel instrumentation.
// When telemetry is disabled, r is returned as-is.
func WrapRemote(r tracker.Remote) tracker.Remote {
	if !Enabled() {
		return r
	}
	return newInstrumentedRemote(r)
}

func newInstrumentedRemote(r tracker.Remote) *InstrumentedRemote {
	m := meter()
	ops, _ := m.Int64Counter("expire_issues.remote.operations",
		metric.WithDescription("Total remote API calls"),
	)
	dur, _ := m.Float64Histogram("expire_issues.remote.operation.duration",
		metric.WithDescription("Remote API call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	errs, _ := m.Int64Counter("expire_issues.remote.errors",
		metric.WithDescription("Total failed remote API calls"),
	)
	closed, _ := m.Int64Counter("expire_issues.closed",
		metric.WithDescription("Issues reported closed by the API"),
	)
	return &InstrumentedRemote{
		inner:  r,
		tracer: tracer(),
		ops:    ops,
		dur:    dur,
		errs:   errs,
		closed: closed,
	}
}

// op starts a span and counts the named remote operation.
func (r *InstrumentedRemote) op(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span, time.Time) {
	all := append([]attribute.KeyValue{attribute.String("remote.operation", name)}, attrs...)
	ctx, span := r.tracer.Start(ctx, "remote."+name,
		trace.WithAttributes(all...),
		trace.WithSpanKind(trace.SpanKindClient),
	)
	r.ops.Add(ctx, 1, metric.WithAttributes(all...))
	return ctx, span, time.Now()
}

// done ends the span, records duration and optional error.
func (r *InstrumentedRemote) done(ctx context.Context, span trace.Span, start time.Time, err error, attrs ...attribute.KeyValue) {
	ms := float64(time.Since(start).Milliseconds())
	r.dur.Record(ctx, ms, metric.WithAttributes(attrs...))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.errs.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	span.End()
}

func (r *InstrumentedRemote) QueryResource(ctx context.Context, url string) (*tracker.Resource, error) {
	attrs := []attribute.KeyValue{attribute.String("issue.url", url)}
	ctx, span, t := r.op(ctx, "QueryResource", attrs...)
	res, err := r.inner.QueryResource(ctx, url)
	if res != nil {
		span.SetAttributes(attribute.String("resource.type", res.TypeName))
	}
	r.done(ctx, span, t, err, attrs...)
	return res, err
}

func (r *InstrumentedRemote) CloseIssue(ctx context.Context, issueID string) (*tracker.CloseResponse, error) {
	attrs := []attribute.KeyValue{attribute.String("issue.id", issueID)}
	ctx, span, t := r.op(ctx, "CloseIssue", attrs...)
	resp, err := r.inner.CloseIssue(ctx, issueID)
	if resp != nil && resp.Issue != nil {
		span.SetAttributes(attribute.String("issue.state", string(resp.Issue.State)))
		if resp.Issue.State.IsClosed() {
			r.closed.Add(ctx, 1)
		}
	}
	r.done(ctx, span, t, err, attrs...)
	return resp, err
}
