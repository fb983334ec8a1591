// Package tracing provides evreg middleware that records an OpenTelemetry
// span for every callback invocation.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nkcmr/evreg"
)

const instrumentationName = "github.com/nkcmr/evreg/tracing"

// SpanName is the name of every span the middleware starts.
const SpanName = "evreg.callback"

var (
	eventKey    = attribute.Key("evreg.event")
	callbackKey = attribute.Key("evreg.callback")
	indexKey    = attribute.Key("evreg.callback.index")
)

type config struct {
	provider trace.TracerProvider
}

type Option func(*config)

// WithTracerProvider sets the provider spans are created from. Defaults to the
// global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) {
		c.provider = tp
	}
}

// Middleware returns evreg middleware that wraps each callback in a span. A
// failing callback marks its span with an error status.
func Middleware[K comparable, A any](opts ...Option) evreg.Middleware[K, A] {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.provider == nil {
		cfg.provider = otel.GetTracerProvider()
	}
	tracer := cfg.provider.Tracer(instrumentationName)

	return func(ctx context.Context, call evreg.Call[K, A], next func(context.Context) error) error {
		ctx, span := tracer.Start(ctx, SpanName,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(
				eventKey.String(fmt.Sprint(call.Event)),
				callbackKey.String(call.Callback.String()),
				indexKey.Int(call.Index),
			),
		)
		defer span.End()

		err := next(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	}
}
