package tracing

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
)

// TestInitTracer 测试Tracer初始化
func TestInitTracer(t *testing.T) {
	shutdown, err := InitTracer("wms-test", "localhost:4317")
	if err != nil {
		t.Fatalf("初始化Tracer失败: %v", err)
	}
	defer shutdown(context.Background())

	// 验证全局TracerProvider已设置
	tracer := otel.Tracer("test")
	if tracer == nil {
		t.Error("全局TracerProvider未设置")
	}
}

// TestStartSpan 测试Span创建
func TestStartSpan(t *testing.T) {
	shutdown, err := InitTracer("wms-test", "localhost:4317")
	if err != nil {
		t.Fatalf("初始化Tracer失败: %v", err)
	}
	defer shutdown(context.Background())

	ctx := context.Background()
	ctx, span := StartSpan(ctx, "wms-test", "ReleaseOrder")
	defer span.End()

	if !span.SpanContext().IsValid() {
		t.Error("Span无效")
	}

	// 子Span应该继承TraceID
	_, child := StartSpan(ctx, "wms-test", "LockPartition")
	defer child.End()

	if child.SpanContext().TraceID() != span.SpanContext().TraceID() {
		t.Error("子Span未继承父Span的TraceID")
	}

	// 从Context提取TraceID
	if ExtractTraceID(ctx) != span.SpanContext().TraceID().String() {
		t.Error("ExtractTraceID与Span不一致")
	}
}

// TestExtractTraceID_NoSpan 无Span时应返回空串
func TestExtractTraceID_NoSpan(t *testing.T) {
	if id := ExtractTraceID(context.Background()); id != "" {
		t.Errorf("期望空TraceID，实际%s", id)
	}
}
