package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bqmanh/marketplace-be/internal/events"
	"github.com/jmoiron/sqlx"
)

// Storage handles all database operations for the worker
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStorage creates a new Storage instance
func NewStorage(db *sqlx.DB, logger *slog.Logger) *Storage {
	return &Storage{
		db:     db,
		logger: logger,
	}
}

// RecordBidEvent writes a bid event into the audit table. Redelivered
// messages hit the event_id conflict and report recorded=false without
// inserting a second row.
func (s *Storage) RecordBidEvent(ctx context.Context, event *events.BidEvent) (bool, error) {
	query := `
		INSERT INTO bid_events (
			event_id, event_type, bid_id, job_id, bidder_email,
			buyer_email, price, status, occurred_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9
		)
		ON CONFLICT (event_id) DO NOTHING
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		event.EventID,
		event.EventType,
		event.BidID,
		event.JobID,
		event.BidderEmail,
		event.BuyerEmail,
		event.Price,
		event.Status,
		event.OccurredAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to record bid event: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if inserted == 0 {
		s.logger.Warn("Bid event already recorded, skipping",
			slog.String("event_id", event.EventID),
		)
		return false, nil
	}

	return true, nil
}
