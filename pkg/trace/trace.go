package trace

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	oteltrace "go.opentelemetry.io/otel/trace"
)

type ctxKey struct{}

// HeaderName 请求/响应中携带 trace ID 的 header
const HeaderName = "X-Trace-ID"

const maxHeaderLen = 64

// GenerateTraceID 生成 32 位十六进制 ID（与 W3C trace-id 同格式）
func GenerateTraceID() string {
	var id oteltrace.TraceID
	_, _ = rand.Read(id[:])
	return hex.EncodeToString(id[:])
}

// FromContext 返回 context 中的 trace ID。
// 没有显式设置时，退回到当前 OpenTelemetry span 的 trace ID
func FromContext(ctx context.Context) string {
	if traceID, ok := ctx.Value(ctxKey{}).(string); ok && traceID != "" {
		return traceID
	}
	if sc := oteltrace.SpanContextFromContext(ctx); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	return ""
}

func WithContext(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, traceID)
}

// FromHeader 接受上游传入的 trace ID（可打印 ASCII，不超过 64 字节），否则生成新的
func FromHeader(headerValue string) string {
	if validHeader(headerValue) {
		return headerValue
	}
	return GenerateTraceID()
}

func validHeader(v string) bool {
	if v == "" || len(v) > maxHeaderLen {
		return false
	}
	for i := 0; i < len(v); i++ {
		if v[i] < 0x21 || v[i] > 0x7e {
			return false
		}
	}
	return true
}
