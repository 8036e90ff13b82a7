package tracer

import (
	"context"
	"sync"

	"github.com/Layr-Labs/rewards-claimer/internal/config"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/mocktracer"
	ddTracer "gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

const serviceName = "rewards-claimer"

var (
	mu sync.Mutex
	// mock is the tracer started when tracing is disabled
	mock mocktracer.Tracer
)

// StartTracer initializes the DataDog tracer.
// If enabled is false, it starts a mock tracer instead.
func StartTracer(enabled bool, network config.Network) {
	if !enabled {
		mu.Lock()
		mock = mocktracer.Start()
		mu.Unlock()
		return
	}
	ddTracer.Start(
		ddTracer.WithEnv(network.String()),
		ddTracer.WithServiceName(serviceName),
		ddTracer.WithGlobalServiceName(true),
		ddTracer.WithDebugMode(false),
		ddTracer.WithLogStartup(false),
	)
}

func StopTracer() {
	mu.Lock()
	defer mu.Unlock()
	if mock != nil {
		mock.Stop()
		mock = nil
		return
	}
	ddTracer.Stop()
}

// DiscardFinishedSpans drops the spans held by the mock tracer. Long running commands
// call it after each cycle; it is a no-op when tracing is enabled.
func DiscardFinishedSpans() {
	mu.Lock()
	defer mu.Unlock()
	if mock != nil {
		mock.Reset()
	}
}

// StartSpan opens a span named operation as a child of any span already in ctx.
func StartSpan(ctx context.Context, operation string, tags map[string]interface{}) (ddtrace.Span, context.Context) {
	opts := make([]ddTracer.StartSpanOption, 0, len(tags)+1)
	opts = append(opts, ddTracer.ServiceName(serviceName))
	for k, v := range tags {
		opts = append(opts, ddTracer.Tag(k, v))
	}
	return ddTracer.StartSpanFromContext(ctx, operation, opts...)
}
