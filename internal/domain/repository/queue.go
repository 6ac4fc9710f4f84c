package repository

import (
	"context"
	"time"
)

// RenewalTask asks the renewal worker to run one full catalog sweep.
// The sweep is idempotent, so duplicate or overlapping tasks are harmless.
type RenewalTask struct {
	RequestedAt time.Time `json:"requested_at"`
	Reason      string    `json:"reason"`
}

// MessageQueue defines the interface for message queue operations.
// Implementations should be provided by the infrastructure layer (e.g., RabbitMQ).
type MessageQueue interface {
	// PublishRenewalTask enqueues a link-renewal sweep request.
	PublishRenewalTask(ctx context.Context, task RenewalTask) error

	// ConsumeRenewalTasks starts consuming renewal tasks from the queue.
	// The handler function is called for each received task.
	// Blocks until the context is cancelled or the channel closes.
	ConsumeRenewalTasks(ctx context.Context, handler func(task RenewalTask) error) error

	// Close gracefully closes the connection to the message queue.
	Close() error
}
