package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bqmanh/marketplace-be/internal/worker/storage"
	"github.com/bqmanh/marketplace-be/shared/postgresql"
	"github.com/bqmanh/marketplace-be/shared/rabbitmq"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Config holds worker configuration
type Config struct {
	Logger        *slog.Logger
	DBClient      *postgresql.Client
	RabbitClient  *rabbitmq.Client
	Concurrency   int
	PrefetchCount int
}

// Worker consumes bid events from RabbitMQ and records them into the
// bid_events audit table.
type Worker struct {
	logger        *slog.Logger
	rabbitClient  *rabbitmq.Client
	storage       *storage.Storage
	concurrency   int
	prefetchCount int
	workerID      string
	wg            sync.WaitGroup
	eventsChan    chan amqp.Delivery
	stopChan      chan struct{}
}

// NewWorker creates a new worker instance
func NewWorker(cfg *Config) *Worker {
	return &Worker{
		logger:        cfg.Logger,
		rabbitClient:  cfg.RabbitClient,
		storage:       storage.NewStorage(cfg.DBClient.GetDB(), cfg.Logger),
		concurrency:   cfg.Concurrency,
		prefetchCount: cfg.PrefetchCount,
		workerID:      fmt.Sprintf("bid-event-worker-%s", uuid.New().String()[:8]),
		eventsChan:    make(chan amqp.Delivery),
		stopChan:      make(chan struct{}),
	}
}

// Start begins consuming and recording bid events. It blocks until the
// context is canceled or the delivery stream closes.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Int("prefetch_count", w.prefetchCount),
	)

	deliveries, err := w.setupConsumer()
	if err != nil {
		return fmt.Errorf("failed to set up consumer: %w", err)
	}

	w.spawnWorkerPool(ctx)

	return w.dispatch(ctx, deliveries)
}

// Stop gracefully stops the worker
func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...",
		slog.String("worker_id", w.workerID),
	)
	close(w.stopChan)
	w.wg.Wait()
	w.logger.Info("Worker stopped")
}
