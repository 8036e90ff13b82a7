// Package eventBusTypes defines the types and interfaces used by the eventBus package.
package eventBusTypes

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventName is a string type that identifies different types of events.
type EventName string

func (en *EventName) String() string {
	return string(*en)
}

var (
	// Event_PendingClaimsComputed is emitted after pending claims were reconciled for an account.
	Event_PendingClaimsComputed EventName = "pending_claims_computed"
	// Event_ClaimSubmitted is emitted once a claimWeeks transaction was accepted by the node.
	Event_ClaimSubmitted EventName = "claim_submitted"
	// Event_ClaimFailed is emitted when building or sending a claim failed.
	Event_ClaimFailed EventName = "claim_failed"
)

// Event represents a message that is published to the event bus.
type Event struct {
	Id        string
	Name      EventName
	Timestamp time.Time
	Data      any
}

func NewEvent(name EventName, data any) *Event {
	return &Event{
		Id:        uuid.New().String(),
		Name:      name,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// ConsumerId is a string type that uniquely identifies an event consumer.
type ConsumerId string

// Consumer represents a subscriber to the event bus.
type Consumer struct {
	Id      ConsumerId
	Context context.Context
	Channel chan *Event
}

// NewConsumer creates a consumer with a random id and a channel buffered to bufferSize.
func NewConsumer(ctx context.Context, bufferSize int) *Consumer {
	return &Consumer{
		Id:      ConsumerId(uuid.New().String()),
		Context: ctx,
		Channel: make(chan *Event, bufferSize),
	}
}

// ConsumerList is a thread-safe collection of consumers.
type ConsumerList struct {
	mu        sync.Mutex
	consumers []*Consumer
}

func NewConsumerList() *ConsumerList {
	return &ConsumerList{
		consumers: make([]*Consumer, 0),
	}
}

func (cl *ConsumerList) Add(consumer *Consumer) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cl.consumers = append(cl.consumers, consumer)
}

// Remove removes the consumer with the same Id.
func (cl *ConsumerList) Remove(consumer *Consumer) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	for i, c := range cl.consumers {
		if c.Id == consumer.Id {
			cl.consumers = append(cl.consumers[:i], cl.consumers[i+1:]...)
			break
		}
	}
}

// GetAll returns a copy of all consumers in the list.
func (cl *ConsumerList) GetAll() []*Consumer {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	out := make([]*Consumer, len(cl.consumers))
	copy(out, cl.consumers)
	return out
}

// IEventBus defines the interface for an event bus.
type IEventBus interface {
	Subscribe(consumer *Consumer)
	Unsubscribe(consumer *Consumer)
	Publish(event *Event)
}

// PendingClaimsComputedData is the payload of Event_PendingClaimsComputed.
type PendingClaimsComputedData struct {
	Network string
	Account string
	// AvailableToClaim is keyed by token address
	AvailableToClaim map[string]string
	Claims           int
}

// ClaimSubmittedData is the payload of Event_ClaimSubmitted.
type ClaimSubmittedData struct {
	Network         string
	Account         string
	TransactionHash string
	Weeks           []uint64
}

// ClaimFailedData is the payload of Event_ClaimFailed.
type ClaimFailedData struct {
	Network string
	Account string
	Error   error
}
