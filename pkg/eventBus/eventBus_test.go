package eventBus

import (
	"context"
	"testing"

	"github.com/Layr-Labs/rewards-claimer/pkg/eventBus/eventBusTypes"
	"github.com/Layr-Labs/rewards-claimer/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func Test_EventBus(t *testing.T) {
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	assert.Nil(t, err)

	t.Run("Should deliver events to every consumer", func(t *testing.T) {
		eb := NewEventBus(l)
		a := eventBusTypes.NewConsumer(context.Background(), 1)
		b := eventBusTypes.NewConsumer(context.Background(), 1)
		eb.Subscribe(a)
		eb.Subscribe(b)
		assert.NotEqual(t, a.Id, b.Id)

		event := eventBusTypes.NewEvent(eventBusTypes.Event_ClaimSubmitted, &eventBusTypes.ClaimSubmittedData{
			Network:         "mainnet",
			TransactionHash: "0x01",
		})
		eb.Publish(event)

		for _, c := range []*eventBusTypes.Consumer{a, b} {
			received := <-c.Channel
			assert.Equal(t, event.Id, received.Id)
			assert.Equal(t, "0x01", received.Data.(*eventBusTypes.ClaimSubmittedData).TransactionHash)
		}
	})
	t.Run("Should not block on a full channel", func(t *testing.T) {
		eb := NewEventBus(l)
		c := eventBusTypes.NewConsumer(context.Background(), 1)
		eb.Subscribe(c)

		eb.Publish(eventBusTypes.NewEvent(eventBusTypes.Event_ClaimFailed, nil))
		eb.Publish(eventBusTypes.NewEvent(eventBusTypes.Event_ClaimFailed, nil))
		assert.Len(t, c.Channel, 1)
	})
	t.Run("Should skip unsubscribed and cancelled consumers", func(t *testing.T) {
		eb := NewEventBus(l)
		ctx, cancel := context.WithCancel(context.Background())
		cancelled := eventBusTypes.NewConsumer(ctx, 1)
		removed := eventBusTypes.NewConsumer(context.Background(), 1)
		eb.Subscribe(cancelled)
		eb.Subscribe(removed)
		eb.Unsubscribe(removed)
		cancel()

		eb.Publish(eventBusTypes.NewEvent(eventBusTypes.Event_PendingClaimsComputed, nil))
		assert.Len(t, cancelled.Channel, 0)
		assert.Len(t, removed.Channel, 0)
	})
}
