package dto

import (
	"time"

	"github.com/bqmanh/marketplace-be/internal/api/model"
)

type CreateBidRequest struct {
	JobID       string  `json:"job_id" binding:"required,uuid"`
	Email       string  `json:"email" binding:"required,email"`
	BuyerEmail  string  `json:"buyer_email" binding:"required,email"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Status      string  `json:"status"`
	Comment     string  `json:"comment"`
}

type UpdateBidStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BidDTO struct {
	BidID       string  `json:"_id"`
	JobID       string  `json:"job_id"`
	BidderEmail string  `json:"email"`
	BuyerEmail  string  `json:"buyer_email"`
	Price       float64 `json:"price"`
	Status      string  `json:"status"`
	Comment     string  `json:"comment,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// BidFromModel maps a stored bid row to its wire shape.
func BidFromModel(b *model.Bid) BidDTO {
	out := BidDTO{
		BidID:       b.BidID,
		JobID:       b.JobID,
		BidderEmail: b.BidderEmail,
		BuyerEmail:  b.BuyerEmail,
		Price:       b.Price,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   b.UpdatedAt.Format(time.RFC3339),
	}
	if b.Comment.Valid {
		out.Comment = b.Comment.String
	}
	return out
}

// BidsFromModels maps a result set, never returning nil so the JSON stays
// an array.
func BidsFromModels(bids []model.Bid) []BidDTO {
	out := make([]BidDTO, len(bids))
	for i := range bids {
		out[i] = BidFromModel(&bids[i])
	}
	return out
}
