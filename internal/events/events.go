package events

import "time"

// Bid event types published by the API service and consumed by the worker.
const (
	TypeBidCreated       = "bid.created"
	TypeBidStatusChanged = "bid.status_changed"
)

// BidEvent is the message body carried on the bid events queue.
type BidEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	BidID       string    `json:"bid_id"`
	JobID       string    `json:"job_id"`
	BidderEmail string    `json:"bidder_email"`
	BuyerEmail  string    `json:"buyer_email"`
	Price       float64   `json:"price"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}
