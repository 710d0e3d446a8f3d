package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/daily-report-api/internal/domain/entity"
)

var tracer = otel.Tracer("github.com/jhoicas/daily-report-api/internal/application/usecase")

// startSpan abre un span con la identidad del usuario. Sin TracerProvider configurado es no-op.
func startSpan(ctx context.Context, name string, user entity.AuthUser) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.Int64("user.id", user.ID),
		attribute.String("user.role", string(user.Role)),
	))
}

// endSpan registra el error (si hay) y cierra el span.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
