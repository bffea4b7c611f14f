package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/bqmanh/marketplace-be/internal/events"
	"github.com/bqmanh/marketplace-be/internal/worker/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// processEvent decodes a delivery and records it into the audit table.
func (w *Worker) processEvent(ctx context.Context, delivery amqp.Delivery) error {
	var event events.BidEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		w.logger.Error("Failed to decode bid event",
			slog.Uint64("delivery_tag", delivery.DeliveryTag),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}

	if event.EventID == "" || event.BidID == "" {
		return fmt.Errorf("%w: missing event_id or bid_id", domain.ErrInvalidPayload)
	}

	recorded, err := w.storage.RecordBidEvent(ctx, &event)
	if err != nil {
		// Database errors are assumed transient; redelivery is safe because
		// RecordBidEvent is idempotent on event_id.
		return domain.NewRetryableError(fmt.Errorf("failed to record bid event: %w", err))
	}

	if !recorded {
		w.logger.Debug("Duplicate bid event dropped",
			slog.String("event_id", event.EventID),
		)
		return nil
	}

	w.logger.Info("Bid event recorded",
		slog.String("event_id", event.EventID),
		slog.String("event_type", event.EventType),
		slog.String("bid_id", event.BidID),
		slog.String("job_id", event.JobID),
	)

	return nil
}
