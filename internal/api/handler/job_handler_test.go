package handler_test

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bqmanh/marketplace-be/internal/api/domain"
	"github.com/bqmanh/marketplace-be/internal/api/dto"
	"github.com/bqmanh/marketplace-be/internal/api/handler"
	"github.com/bqmanh/marketplace-be/internal/api/model"
	"github.com/bqmanh/marketplace-be/internal/api/storage"
)

const testJobID = "7f3c2b9a-1111-4a2b-9c3d-000000000001"

func jobRouter(jobs *MockJobStore) *gin.Engine {
	h := handler.NewJobHandler(testDeps(jobs, nil, nil))

	r := gin.New()
	r.POST("/jobs", h.CreateJob)
	r.GET("/jobs", h.ListJobs)
	r.GET("/jobs/:id", h.GetJob)
	r.GET("/filtered-jobs", h.ListFilteredJobs)
	r.GET("/total-jobs", h.CountJobs)
	r.GET("/my-jobs/:email", h.ListMyJobs)
	r.DELETE("/jobs/:id", h.DeleteJob)
	r.PUT("/update-job/:id", h.UpdateJob)
	return r
}

func TestJobHandler_CreateJob(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		jobs := new(MockJobStore)
		jobs.On("CreateJob", mock.Anything, mock.MatchedBy(func(j *model.Job) bool {
			return j.Title == "Build landing page" &&
				j.Category == "web-development" &&
				j.BuyerEmail == "alice@example.com" &&
				j.Deadline.Valid &&
				j.JobID != ""
		})).Return(nil)

		minPrice := 100.0
		req := jsonRequest(t, http.MethodPost, "/jobs", dto.CreateJobRequest{
			Title:    "Build landing page",
			Category: "web-development",
			Deadline: "2026-10-01",
			MinPrice: &minPrice,
			Buyer: dto.BuyerDTO{
				Name:  "Alice",
				Email: "alice@example.com",
			},
		})

		w := serve(jobRouter(jobs), req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.JobDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.JobID)
		assert.Equal(t, "Build landing page", resp.Title)
		assert.Equal(t, "2026-10-01", resp.Deadline)
		jobs.AssertExpectations(t)
	})

	t.Run("missing title", func(t *testing.T) {
		jobs := new(MockJobStore)

		req := jsonRequest(t, http.MethodPost, "/jobs", gin.H{
			"category": "web-development",
			"buyer":    gin.H{"email": "alice@example.com"},
		})

		w := serve(jobRouter(jobs), req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		jobs.AssertNotCalled(t, "CreateJob")
	})

	t.Run("malformed deadline", func(t *testing.T) {
		jobs := new(MockJobStore)

		req := jsonRequest(t, http.MethodPost, "/jobs", gin.H{
			"title":    "Build landing page",
			"category": "web-development",
			"deadline": "01-10-2026",
			"buyer":    gin.H{"email": "alice@example.com"},
		})

		w := serve(jobRouter(jobs), req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "YYYY-MM-DD")
		jobs.AssertNotCalled(t, "CreateJob")
	})
}

func TestJobHandler_GetJob(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		jobs := new(MockJobStore)
		jobs.On("GetJobByID", mock.Anything, testJobID).Return(&model.Job{
			JobID:      testJobID,
			Title:      "Build landing page",
			Category:   "web-development",
			BuyerEmail: "alice@example.com",
			Deadline:   sql.NullTime{Time: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), Valid: true},
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}, nil)

		req := jsonRequest(t, http.MethodGet, "/jobs/"+testJobID, nil)
		w := serve(jobRouter(jobs), req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.JobDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, testJobID, resp.JobID)
		assert.Equal(t, "2026-10-01", resp.Deadline)
	})

	t.Run("invalid id", func(t *testing.T) {
		jobs := new(MockJobStore)

		req := jsonRequest(t, http.MethodGet, "/jobs/not-a-uuid", nil)
		w := serve(jobRouter(jobs), req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		jobs.AssertNotCalled(t, "GetJobByID")
	})

	t.Run("not found", func(t *testing.T) {
		jobs := new(MockJobStore)
		jobs.On("GetJobByID", mock.Anything, testJobID).Return(nil, domain.ErrJobNotFound)

		req := jsonRequest(t, http.MethodGet, "/jobs/"+testJobID, nil)
		w := serve(jobRouter(jobs), req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestJobHandler_ListJobs(t *testing.T) {
	t.Run("empty result is a JSON array", func(t *testing.T) {
		jobs := new(MockJobStore)
		jobs.On("ListJobs", mock.Anything).Return([]model.Job{}, nil)

		req := jsonRequest(t, http.MethodGet, "/jobs", nil)
		w := serve(jobRouter(jobs), req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})

	t.Run("storage failure", func(t *testing.T) {
		jobs := new(MockJobStore)
		jobs.On("ListJobs", mock.Anything).Return(nil, errors.New("connection reset"))

		req := jsonRequest(t, http.MethodGet, "/jobs", nil)
		w := serve(jobRouter(jobs), req)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestJobHandler_ListFilteredJobs(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantFilter storage.JobFilter
	}{
		{
			name:       "defaults applied",
			query:      "",
			wantStatus: http.StatusOK,
			wantFilter: storage.JobFilter{Page: 1, Size: 20},
		},
		{
			name:       "explicit paging and filters",
			query:      "?page=3&size=10&filter=web-development&sort=asc&search=landing",
			wantStatus: http.StatusOK,
			wantFilter: storage.JobFilter{
				Search:   "landing",
				Category: "web-development",
				Sort:     "asc",
				Page:     3,
				Size:     10,
			},
		},
		{
			name:       "size capped",
			query:      "?size=500",
			wantStatus: http.StatusOK,
			wantFilter: storage.JobFilter{Page: 1, Size: 100},
		},
		{
			name:       "non-numeric page rejected",
			query:      "?page=abc",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs := new(MockJobStore)
			if tt.wantStatus == http.StatusOK {
				jobs.On("ListFilteredJobs", mock.Anything, tt.wantFilter).Return([]model.Job{}, nil)
			}

			req := jsonRequest(t, http.MethodGet, "/filtered-jobs"+tt.query, nil)
			w := serve(jobRouter(jobs), req)
			assert.Equal(t, tt.wantStatus, w.Code)
			jobs.AssertExpectations(t)
		})
	}
}

func TestJobHandler_CountJobs(t *testing.T) {
	jobs := new(MockJobStore)
	jobs.On("CountJobs", mock.Anything, storage.JobFilter{
		Search:   "landing",
		Category: "web-development",
		Page:     1,
		Size:     20,
	}).Return(7, nil)

	req := jsonRequest(t, http.MethodGet, "/total-jobs?search=landing&filter=web-development", nil)
	w := serve(jobRouter(jobs), req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count": 7}`, w.Body.String())
}

func TestJobHandler_ListMyJobs(t *testing.T) {
	jobs := new(MockJobStore)
	jobs.On("ListJobsByBuyer", mock.Anything, "alice@example.com").Return([]model.Job{
		{JobID: testJobID, Title: "Build landing page", BuyerEmail: "alice@example.com"},
	}, nil)

	req := jsonRequest(t, http.MethodGet, "/my-jobs/alice@example.com", nil)
	w := serve(jobRouter(jobs), req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []dto.JobDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "alice@example.com", resp[0].Buyer.Email)
}

func TestJobHandler_DeleteJob(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		jobs := new(MockJobStore)
		jobs.On("DeleteJob", mock.Anything, testJobID).Return(int64(1), nil)

		req := jsonRequest(t, http.MethodDelete, "/jobs/"+testJobID, nil)
		w := serve(jobRouter(jobs), req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"deleted": 1}`, w.Body.String())
	})

	t.Run("missing job still reports a count", func(t *testing.T) {
		jobs := new(MockJobStore)
		jobs.On("DeleteJob", mock.Anything, testJobID).Return(int64(0), nil)

		req := jsonRequest(t, http.MethodDelete, "/jobs/"+testJobID, nil)
		w := serve(jobRouter(jobs), req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"deleted": 0}`, w.Body.String())
	})

	t.Run("invalid id", func(t *testing.T) {
		jobs := new(MockJobStore)

		req := jsonRequest(t, http.MethodDelete, "/jobs/not-a-uuid", nil)
		w := serve(jobRouter(jobs), req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		jobs.AssertNotCalled(t, "DeleteJob")
	})
}

func TestJobHandler_UpdateJob(t *testing.T) {
	t.Run("partial patch", func(t *testing.T) {
		jobs := new(MockJobStore)
		jobs.On("UpsertJob", mock.Anything, testJobID, mock.MatchedBy(func(p storage.JobPatch) bool {
			return p.Title != nil && *p.Title == "Redesign landing page" &&
				p.Category == nil && p.Deadline == nil
		})).Return(nil)

		title := "Redesign landing page"
		req := jsonRequest(t, http.MethodPut, "/update-job/"+testJobID, dto.UpdateJobRequest{
			Title: &title,
		})

		w := serve(jobRouter(jobs), req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"updated": true}`, w.Body.String())
		jobs.AssertExpectations(t)
	})

	t.Run("malformed deadline", func(t *testing.T) {
		jobs := new(MockJobStore)

		deadline := "next week"
		req := jsonRequest(t, http.MethodPut, "/update-job/"+testJobID, dto.UpdateJobRequest{
			Deadline: &deadline,
		})

		w := serve(jobRouter(jobs), req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		jobs.AssertNotCalled(t, "UpsertJob")
	})
}
