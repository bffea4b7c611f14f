package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bqmanh/marketplace-be/internal/api/domain"
	"github.com/bqmanh/marketplace-be/internal/api/model"
	"github.com/lib/pq"
)

const bidColumns = `
	bid_id, job_id, bidder_email, buyer_email, price,
	status, comment, created_at, updated_at
`

// pq class 23505 is unique_violation; the (bidder_email, job_id) index turns
// a lost duplicate-check race into this error instead of a second row.
const uniqueViolation = pq.ErrorCode("23505")

// BidExists reports whether the bidder already has a bid on the job. This is
// the friendly pre-insert check; the unique index is the authoritative one.
func (s *Storage) BidExists(ctx context.Context, bidderEmail, jobID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM bids WHERE bidder_email = $1 AND job_id = $2)`

	if err := s.db.GetContext(ctx, &exists, query, bidderEmail, jobID); err != nil {
		return false, fmt.Errorf("failed to check for existing bid: %w", err)
	}

	return exists, nil
}

func (s *Storage) CreateBid(ctx context.Context, bid *model.Bid) error {
	query := `
		INSERT INTO bids (
			bid_id, job_id, bidder_email, buyer_email, price,
			status, comment, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		bid.BidID,
		bid.JobID,
		bid.BidderEmail,
		bid.BuyerEmail,
		bid.Price,
		bid.Status,
		bid.Comment,
		bid.CreatedAt,
		bid.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateBid
		}
		return fmt.Errorf("failed to create bid: %w", err)
	}

	return nil
}

func (s *Storage) GetBidByID(ctx context.Context, bidID string) (*model.Bid, error) {
	var bid model.Bid
	query := `SELECT ` + bidColumns + ` FROM bids WHERE bid_id = $1`

	err := s.db.GetContext(ctx, &bid, query, bidID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBidNotFound
		}
		return nil, fmt.Errorf("failed to get bid: %w", err)
	}

	return &bid, nil
}

func (s *Storage) ListBids(ctx context.Context) ([]model.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bids ORDER BY created_at DESC`

	var bids []model.Bid
	if err := s.db.SelectContext(ctx, &bids, query); err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}

	return bids, nil
}

func (s *Storage) ListBidsByBidder(ctx context.Context, email string) ([]model.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bids WHERE bidder_email = $1 ORDER BY created_at DESC`

	var bids []model.Bid
	if err := s.db.SelectContext(ctx, &bids, query, email); err != nil {
		return nil, fmt.Errorf("failed to list bids by bidder: %w", err)
	}

	return bids, nil
}

// ListBidsByBuyer returns the bids received on jobs posted by the buyer,
// using the buyer email snapshotted onto each bid at creation.
func (s *Storage) ListBidsByBuyer(ctx context.Context, email string) ([]model.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bids WHERE buyer_email = $1 ORDER BY created_at DESC`

	var bids []model.Bid
	if err := s.db.SelectContext(ctx, &bids, query, email); err != nil {
		return nil, fmt.Errorf("failed to list bids by buyer: %w", err)
	}

	return bids, nil
}

func (s *Storage) UpdateBidStatus(ctx context.Context, bidID, status string) (int64, error) {
	query := `UPDATE bids SET status = $1, updated_at = NOW() WHERE bid_id = $2`

	result, err := s.db.ExecContext(ctx, query, status, bidID)
	if err != nil {
		return 0, fmt.Errorf("failed to update bid status: %w", err)
	}

	modified, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return modified, nil
}
