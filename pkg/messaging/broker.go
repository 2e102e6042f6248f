package messaging

import (
	"context"
	"time"
)

// Broker defines the interface for message brokers. Publish/Subscribe carry
// presence fan-out; Enqueue/Dequeue back the checkout handoff queue.
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Enqueue(ctx context.Context, queue string, message interface{}) error
	Dequeue(ctx context.Context, queue string, timeout time.Duration) ([]byte, error)
	Close() error
}

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
