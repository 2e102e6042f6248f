package handoff

import (
	"context"

	"github.com/salonhq/scheduler-api/internal/model"
	"github.com/salonhq/scheduler-api/pkg/messaging"
)

// QueueName is the checkout queue drained by the worker binary.
const QueueName = "scheduler:checkout:handoffs"

// Queue pushes completed appointments to the external checkout collaborator.
// Fire and forget: the scheduler never consumes a reply.
type Queue struct {
	broker messaging.Broker
}

func NewQueue(broker messaging.Broker) *Queue {
	return &Queue{broker: broker}
}

func (q *Queue) Enqueue(ctx context.Context, h *model.CheckoutHandoff) error {
	return q.broker.Enqueue(ctx, QueueName, h)
}
