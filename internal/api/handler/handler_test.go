package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bqmanh/marketplace-be/internal/api/handler"
	"github.com/bqmanh/marketplace-be/internal/api/model"
	"github.com/bqmanh/marketplace-be/internal/api/storage"
	"github.com/bqmanh/marketplace-be/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockJobStore implements handler.JobStore
type MockJobStore struct {
	mock.Mock
}

func (m *MockJobStore) CreateJob(ctx context.Context, job *model.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobStore) GetJobByID(ctx context.Context, jobID string) (*model.Job, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Job), args.Error(1)
}

func (m *MockJobStore) ListJobs(ctx context.Context) ([]model.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Job), args.Error(1)
}

func (m *MockJobStore) ListJobsByBuyer(ctx context.Context, email string) ([]model.Job, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Job), args.Error(1)
}

func (m *MockJobStore) ListFilteredJobs(ctx context.Context, filter storage.JobFilter) ([]model.Job, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Job), args.Error(1)
}

func (m *MockJobStore) CountJobs(ctx context.Context, filter storage.JobFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockJobStore) DeleteJob(ctx context.Context, jobID string) (int64, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobStore) UpsertJob(ctx context.Context, jobID string, patch storage.JobPatch) error {
	args := m.Called(ctx, jobID, patch)
	return args.Error(0)
}

// MockBidStore implements handler.BidStore
type MockBidStore struct {
	mock.Mock
}

func (m *MockBidStore) BidExists(ctx context.Context, bidderEmail, jobID string) (bool, error) {
	args := m.Called(ctx, bidderEmail, jobID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBidStore) CreateBid(ctx context.Context, bid *model.Bid) error {
	args := m.Called(ctx, bid)
	return args.Error(0)
}

func (m *MockBidStore) GetBidByID(ctx context.Context, bidID string) (*model.Bid, error) {
	args := m.Called(ctx, bidID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bid), args.Error(1)
}

func (m *MockBidStore) ListBids(ctx context.Context) ([]model.Bid, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Bid), args.Error(1)
}

func (m *MockBidStore) ListBidsByBidder(ctx context.Context, email string) ([]model.Bid, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Bid), args.Error(1)
}

func (m *MockBidStore) ListBidsByBuyer(ctx context.Context, email string) ([]model.Bid, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Bid), args.Error(1)
}

func (m *MockBidStore) UpdateBidStatus(ctx context.Context, bidID, status string) (int64, error) {
	args := m.Called(ctx, bidID, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockPublisher implements handler.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithRetry(ctx context.Context, body []byte, contentType string) error {
	args := m.Called(ctx, body, contentType)
	return args.Error(0)
}

func testDeps(jobs *MockJobStore, bids *MockBidStore, publisher *MockPublisher) *handler.Dependencies {
	deps := &handler.Dependencies{
		Logger: slog.Default(),
		Auth: config.AuthConfig{
			Secret:     "test-secret",
			CookieName: "session_token",
			TokenTTL:   time.Hour,
		},
	}
	if jobs != nil {
		deps.Jobs = jobs
	}
	if bids != nil {
		deps.Bids = bids
	}
	if publisher != nil {
		deps.Publisher = publisher
	}
	return deps
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
