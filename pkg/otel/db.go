package otel

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Traced 在一个 client span 里执行数据库操作 fn，span 名为 db.<operation>。
// 没有结果行和调用方取消不算 span 错误
func Traced(ctx context.Context, operation, table string, fn func(context.Context) error) error {
	ctx, span := Tracer().Start(ctx, "db."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.operation", operation),
			attribute.String("db.sql.table", table),
		),
	)
	defer span.End()

	err := fn(ctx)
	switch {
	case err == nil:
	case errors.Is(err, pgx.ErrNoRows):
		span.SetAttributes(attribute.Bool("db.no_rows", true))
	case errors.Is(err, context.Canceled):
		span.SetAttributes(attribute.Bool("canceled", true))
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
