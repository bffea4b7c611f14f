package domain

import (
	"errors"
)

// Bid status values are free-form strings set by the client; these are the
// ones the web client actually sends.
const (
	BidStatusPending  = "pending"
	BidStatusAccepted = "accepted"
	BidStatusRejected = "rejected"
)

var (
	ErrBidNotFound = errors.New("bid not found")

	// ErrDuplicateBid signals a second bid from the same bidder on the same job
	ErrDuplicateBid = errors.New("bid already exists for this bidder and job")
)
