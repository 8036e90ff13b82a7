// Package eventBus delivers claim lifecycle events to subscribed consumers.
package eventBus

import (
	"github.com/Layr-Labs/rewards-claimer/pkg/eventBus/eventBusTypes"
	"go.uber.org/zap"
)

// EventBus fans claim lifecycle events out to registered consumers.
// It is safe for concurrent use; publishing never waits on a slow consumer.
type EventBus struct {
	// consumers is the thread-safe list of subscribed consumers
	consumers *eventBusTypes.ConsumerList
	// logger records subscriptions and delivery outcomes
	logger *zap.Logger
}

var _ eventBusTypes.IEventBus = (*EventBus)(nil)

// NewEventBus creates an EventBus with no consumers.
func NewEventBus(l *zap.Logger) *EventBus {
	return &EventBus{
		consumers: eventBusTypes.NewConsumerList(),
		logger:    l,
	}
}

// Subscribe registers a consumer. Events published afterwards are delivered to its channel.
func (eb *EventBus) Subscribe(consumer *eventBusTypes.Consumer) {
	eb.consumers.Add(consumer)
	eb.logger.Sugar().Debugw("Subscribed consumer", zap.String("consumerId", string(consumer.Id)))
}

// Unsubscribe removes a consumer; it receives no further events.
func (eb *EventBus) Unsubscribe(consumer *eventBusTypes.Consumer) {
	eb.consumers.Remove(consumer)
	eb.logger.Sugar().Infow("Unsubscribed consumer", zap.String("consumerId", string(consumer.Id)))
}

// Publish never blocks: consumers whose channel is full, nil or whose context is done miss the event.
func (eb *EventBus) Publish(event *eventBusTypes.Event) {
	eb.logger.Sugar().Debugw("Publishing event",
		zap.String("eventName", string(event.Name)),
		zap.String("eventId", event.Id),
	)
	for _, consumer := range eb.consumers.GetAll() {
		if consumer.Context != nil && consumer.Context.Err() != nil {
			eb.logger.Sugar().Debugw("Consumer context is done", zap.String("consumerId", string(consumer.Id)))
			continue
		}
		if consumer.Channel != nil {
			select {
			case consumer.Channel <- event:
				eb.logger.Sugar().Debugw("Published event to consumer",
					zap.String("consumerId", string(consumer.Id)),
					zap.String("eventName", event.Name.String()),
				)
			default:
				eb.logger.Sugar().Debugw("No receiver available, or channel is full",
					zap.String("consumerId", string(consumer.Id)),
					zap.String("eventName", event.Name.String()),
				)
			}
		} else {
			eb.logger.Sugar().Debugw("Consumer channel is nil", zap.String("consumerId", string(consumer.Id)))
		}
	}
}
