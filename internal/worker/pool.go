package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bqmanh/marketplace-be/internal/worker/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// spawnWorkerPool spawns N worker goroutines based on concurrency configuration
func (w *Worker) spawnWorkerPool(ctx context.Context) {
	w.logger.Info("Spawning worker pool",
		slog.Int("concurrency", w.concurrency),
		slog.String("worker_id", w.workerID),
	)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.workerLoop(ctx, i)
	}
}

// workerLoop is the main processing loop for each worker goroutine
func (w *Worker) workerLoop(ctx context.Context, workerNum int) {
	defer w.wg.Done()

	workerName := fmt.Sprintf("%s-%d", w.workerID, workerNum)
	w.logger.Info("Worker goroutine started",
		slog.String("worker_name", workerName),
	)

	for {
		select {
		case <-w.stopChan:
			w.logger.Info("Worker goroutine stopping - stopChan closed",
				slog.String("worker_name", workerName),
			)
			return

		case <-ctx.Done():
			w.logger.Info("Worker goroutine stopping - context canceled",
				slog.String("worker_name", workerName),
			)
			return

		case delivery, ok := <-w.eventsChan:
			if !ok {
				w.logger.Info("Worker goroutine stopping - eventsChan closed",
					slog.String("worker_name", workerName),
				)
				return
			}

			err := w.processEvent(ctx, delivery)
			w.settle(workerName, delivery, err)
		}
	}
}

// settle ACKs or NACKs the delivery based on the processing result.
func (w *Worker) settle(workerName string, delivery amqp.Delivery, err error) {
	if err == nil {
		if ackErr := delivery.Ack(false); ackErr != nil {
			w.logger.Error("Failed to ACK event",
				slog.String("worker_name", workerName),
				slog.String("error", ackErr.Error()),
			)
		}
		return
	}

	requeue := w.shouldRequeue(err)
	w.logger.Error("Event processing failed",
		slog.String("worker_name", workerName),
		slog.Bool("requeue", requeue),
		slog.String("error", err.Error()),
	)

	if nackErr := delivery.Nack(false, requeue); nackErr != nil {
		w.logger.Error("Failed to NACK event",
			slog.String("worker_name", workerName),
			slog.String("error", nackErr.Error()),
		)
	}
}

// shouldRequeue determines if an event should be redelivered based on the
// error type.
func (w *Worker) shouldRequeue(err error) bool {
	// Malformed payloads never become valid on redelivery
	if errors.Is(err, domain.ErrInvalidPayload) {
		return false
	}

	// Already recorded: recording is idempotent, drop the duplicate
	if errors.Is(err, domain.ErrDuplicateEvent) {
		return false
	}

	// Requeue for transient/retryable errors
	var retryableErr *domain.RetryableError
	if errors.As(err, &retryableErr) {
		return true
	}

	// Default: don't requeue for unknown errors
	return false
}
