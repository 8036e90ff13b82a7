package tracer

import (
	"context"
	"testing"

	"github.com/Layr-Labs/rewards-claimer/internal/config"
	"github.com/stretchr/testify/assert"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/mocktracer"
)

func Test_StartSpan(t *testing.T) {
	mt := mocktracer.Start()
	defer mt.Stop()

	parent, ctx := StartSpan(context.Background(), "claims.pending", map[string]interface{}{"network": "mainnet"})
	child, _ := StartSpan(ctx, "claims.fetchReports", nil)
	child.Finish()
	parent.Finish()

	spans := mt.FinishedSpans()
	assert.Len(t, spans, 2)
	assert.Equal(t, "claims.fetchReports", spans[0].OperationName())
	assert.Equal(t, spans[1].SpanID(), spans[0].ParentID())
	assert.Equal(t, "mainnet", spans[1].Tag("network"))
}

func Test_DiscardFinishedSpans(t *testing.T) {
	StartTracer(false, config.Network_Mainnet)
	defer StopTracer()

	span, _ := StartSpan(context.Background(), "claims.pendingClaims", nil)
	span.Finish()
	assert.Len(t, mock.FinishedSpans(), 1)

	DiscardFinishedSpans()
	assert.Len(t, mock.FinishedSpans(), 0)
}
