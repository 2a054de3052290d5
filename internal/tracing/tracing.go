// Package tracing wraps pipeline stages and the risk engine's Predict call
// in otel spans. An ambient concern carried regardless of spec.md's
// non-goals (none of which name observability) — the teacher declares
// go.opentelemetry.io/otel as a dependency without exercising it in the
// retrieved slice; this gives it an actual call site.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/freifahren/sichtungskern"

func tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// StartStage opens a span for one pipeline stage. Callers must call the
// returned end func exactly once, passing the error the stage returned (if
// any) so the span's status reflects it.
func StartStage(ctx context.Context, stageName string) (context.Context, func(error)) {
	ctx, span := tracer().Start(ctx, "pipeline."+stageName,
		trace.WithAttributes(attribute.String("pipeline.stage", stageName)))
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}

// StartRiskPredict opens a span around one Engine.Predict call.
func StartRiskPredict(ctx context.Context, reportCount int) (context.Context, func(segmentCount int)) {
	ctx, span := tracer().Start(ctx, "risk.Predict",
		trace.WithAttributes(attribute.Int("risk.report_count", reportCount)))
	return ctx, func(segmentCount int) {
		span.SetAttributes(attribute.Int("risk.segment_count", segmentCount))
		span.End()
	}
}
