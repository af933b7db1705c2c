package kafka

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func TestHeaderCarrier_InjectExtract(t *testing.T) {
	tid, _ := trace.TraceIDFromHex("0af7651916cd43dd8448eb211c80319c")
	sid, _ := trace.SpanIDFromHex("b7ad6b7169203331")
	parent := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: tid, SpanID: sid, TraceFlags: trace.FlagsSampled,
	}))

	var headers []kafka.Header
	prop := propagation.TraceContext{}
	prop.Inject(parent, headerCarrier{headers: &headers})
	require.Len(t, headers, 1)
	require.Equal(t, "traceparent", headers[0].Key)

	// повторный Inject заменяет заголовок, а не дублирует
	prop.Inject(parent, headerCarrier{headers: &headers})
	require.Len(t, headers, 1)

	got := trace.SpanContextFromContext(prop.Extract(context.Background(), headerCarrier{headers: &headers}))
	require.Equal(t, tid, got.TraceID())
	require.True(t, got.IsRemote())
	require.Equal(t, []string{"traceparent"}, headerCarrier{headers: &headers}.Keys())
}
