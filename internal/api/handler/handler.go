package handler

import (
	"context"
	"log/slog"

	"github.com/bqmanh/marketplace-be/internal/api/model"
	"github.com/bqmanh/marketplace-be/internal/api/storage"
	"github.com/bqmanh/marketplace-be/internal/config"
)

// JobStore is the job persistence surface the handlers depend on.
// *storage.Storage implements it; tests substitute fakes.
type JobStore interface {
	CreateJob(ctx context.Context, job *model.Job) error
	GetJobByID(ctx context.Context, jobID string) (*model.Job, error)
	ListJobs(ctx context.Context) ([]model.Job, error)
	ListJobsByBuyer(ctx context.Context, email string) ([]model.Job, error)
	ListFilteredJobs(ctx context.Context, filter storage.JobFilter) ([]model.Job, error)
	CountJobs(ctx context.Context, filter storage.JobFilter) (int, error)
	DeleteJob(ctx context.Context, jobID string) (int64, error)
	UpsertJob(ctx context.Context, jobID string, patch storage.JobPatch) error
}

// BidStore is the bid persistence surface the handlers depend on.
type BidStore interface {
	BidExists(ctx context.Context, bidderEmail, jobID string) (bool, error)
	CreateBid(ctx context.Context, bid *model.Bid) error
	GetBidByID(ctx context.Context, bidID string) (*model.Bid, error)
	ListBids(ctx context.Context) ([]model.Bid, error)
	ListBidsByBidder(ctx context.Context, email string) ([]model.Bid, error)
	ListBidsByBuyer(ctx context.Context, email string) ([]model.Bid, error)
	UpdateBidStatus(ctx context.Context, bidID, status string) (int64, error)
}

// EventPublisher pushes bid-activity events onto the broker.
// *rabbitmq.Client implements it.
type EventPublisher interface {
	PublishWithRetry(ctx context.Context, body []byte, contentType string) error
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger    *slog.Logger
	Jobs      JobStore
	Bids      BidStore
	Publisher EventPublisher
	Auth      config.AuthConfig
	Prod      bool
}

// JobHandler handles job-related HTTP requests
type JobHandler struct {
	logger *slog.Logger
	jobs   JobStore
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{
		logger: deps.Logger,
		jobs:   deps.Jobs,
	}
}

// BidHandler handles bid-related HTTP requests
type BidHandler struct {
	logger    *slog.Logger
	bids      BidStore
	publisher EventPublisher
}

// NewBidHandler creates a new BidHandler instance
func NewBidHandler(deps *Dependencies) *BidHandler {
	return &BidHandler{
		logger:    deps.Logger,
		bids:      deps.Bids,
		publisher: deps.Publisher,
	}
}

// AuthHandler handles session issuance and logout
type AuthHandler struct {
	logger *slog.Logger
	auth   config.AuthConfig
	prod   bool
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(deps *Dependencies) *AuthHandler {
	return &AuthHandler{
		logger: deps.Logger,
		auth:   deps.Auth,
		prod:   deps.Prod,
	}
}
