package model

import (
	"database/sql"
	"time"
)

type Job struct {
	JobID       string          `db:"job_id"`
	Title       string          `db:"title"`
	Category    string          `db:"category"`
	Description string          `db:"description"`
	Deadline    sql.NullTime    `db:"deadline"`
	MinPrice    sql.NullFloat64 `db:"min_price"`
	MaxPrice    sql.NullFloat64 `db:"max_price"`
	BuyerName   string          `db:"buyer_name"`
	BuyerEmail  string          `db:"buyer_email"`
	BuyerPhoto  string          `db:"buyer_photo"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

type Bid struct {
	BidID       string         `db:"bid_id"`
	JobID       string         `db:"job_id"`
	BidderEmail string         `db:"bidder_email"`
	BuyerEmail  string         `db:"buyer_email"`
	Price       float64        `db:"price"`
	Status      string         `db:"status"`
	Comment     sql.NullString `db:"comment"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}
