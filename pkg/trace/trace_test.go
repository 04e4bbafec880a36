package trace

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	oteltrace "go.opentelemetry.io/otel/trace"
)

func TestContextRoundTrip(t *testing.T) {
	ctx := WithContext(context.Background(), "abc123")
	assert.Equal(t, "abc123", FromContext(ctx))
	assert.Empty(t, FromContext(context.Background()))
}

func TestFromContextFallsBackToSpan(t *testing.T) {
	tid, err := oteltrace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	assert.NoError(t, err)
	sc := oteltrace.NewSpanContext(oteltrace.SpanContextConfig{
		TraceID: tid,
		SpanID:  oteltrace.SpanID{1},
	})
	ctx := oteltrace.ContextWithSpanContext(context.Background(), sc)

	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", FromContext(ctx))
	assert.Equal(t, "explicit", FromContext(WithContext(ctx, "explicit")))
}

func TestFromHeader(t *testing.T) {
	assert.Equal(t, "upstream-id", FromHeader("upstream-id"))

	for _, bad := range []string{"", strings.Repeat("x", 100), "has space", "tab\there"} {
		got := FromHeader(bad)
		assert.Len(t, got, 32, bad)
		assert.NotEqual(t, bad, got)
	}
}
