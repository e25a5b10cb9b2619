package audit

import (
	"context"

	"costmanager/internal/amqp"
	"costmanager/internal/core"
)

// AMQPRecorder publishes entries to the audit exchange instead of
// writing them directly; the audit worker persists them out-of-band.
type AMQPRecorder struct {
	client *amqp.Client
}

func NewAMQPRecorder(client *amqp.Client) *AMQPRecorder {
	return &AMQPRecorder{client: client}
}

func (r *AMQPRecorder) Record(ctx context.Context, entry core.AccessLog) error {
	requestID, _ := ctx.Value(RequestIDKey).(string)
	return r.client.PublishAudit(ctx, amqp.NewAuditMessage(entry, requestID))
}
