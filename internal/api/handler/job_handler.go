package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bqmanh/marketplace-be/internal/api/domain"
	"github.com/bqmanh/marketplace-be/internal/api/dto"
	"github.com/bqmanh/marketplace-be/internal/api/model"
	"github.com/bqmanh/marketplace-be/internal/api/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// CreateJob handles POST /jobs
// Creates a new job posting on behalf of the buyer in the body.
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	job := model.Job{
		JobID:       uuid.New().String(),
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		BuyerName:   req.Buyer.Name,
		BuyerEmail:  req.Buyer.Email,
		BuyerPhoto:  req.Buyer.Photo,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if req.Deadline != "" {
		deadline, err := time.Parse(dto.DeadlineLayout, req.Deadline)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "deadline must be formatted as YYYY-MM-DD",
			})
			return
		}
		job.Deadline = sql.NullTime{Time: deadline, Valid: true}
	}
	if req.MinPrice != nil {
		job.MinPrice = sql.NullFloat64{Float64: *req.MinPrice, Valid: true}
	}
	if req.MaxPrice != nil {
		job.MaxPrice = sql.NullFloat64{Float64: *req.MaxPrice, Valid: true}
	}

	if err := h.jobs.CreateJob(c.Request.Context(), &job); err != nil {
		h.logger.Error("Failed to create job", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create job",
		})
		return
	}

	h.logger.Info("Job created",
		slog.String("job_id", job.JobID),
		slog.String("buyer_email", job.BuyerEmail),
	)

	c.JSON(http.StatusOK, dto.JobFromModel(&job))
}

// GetJob handles GET /jobs/:id
// Retrieves a single job posting.
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID := c.Param("id")
	if _, err := uuid.Parse(jobID); err != nil {
		h.logger.Error("Invalid job id format", slog.String("id", jobID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "id must be a valid UUID",
		})
		return
	}

	job, err := h.jobs.GetJobByID(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Job not found",
			})
			return
		}
		h.logger.Error("Failed to get job", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get job",
		})
		return
	}

	c.JSON(http.StatusOK, dto.JobFromModel(job))
}

// ListJobs handles GET /jobs
// Lists every job posting.
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.jobs.ListJobs(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list jobs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list jobs",
		})
		return
	}

	c.JSON(http.StatusOK, dto.JobsFromModels(jobs))
}

// jobFilterFromQuery normalizes browse parameters: page is 1-based, size is
// defaulted and capped. Non-numeric values fail gin's query binding upstream.
func jobFilterFromQuery(req *dto.ListFilteredJobsRequest) storage.JobFilter {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Size <= 0 {
		req.Size = defaultPageSize
	}
	if req.Size > maxPageSize {
		req.Size = maxPageSize
	}

	return storage.JobFilter{
		Search:   req.Search,
		Category: req.Filter,
		Sort:     req.Sort,
		Page:     req.Page,
		Size:     req.Size,
	}
}

// ListFilteredJobs handles GET /filtered-jobs
// Lists jobs with filtering, sorting, and pagination.
func (h *JobHandler) ListFilteredJobs(c *gin.Context) {
	var req dto.ListFilteredJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("Invalid query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	filter := jobFilterFromQuery(&req)

	jobs, err := h.jobs.ListFilteredJobs(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list filtered jobs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list jobs",
		})
		return
	}

	c.JSON(http.StatusOK, dto.JobsFromModels(jobs))
}

// CountJobs handles GET /total-jobs
// Counts the jobs matching the same filter as /filtered-jobs.
func (h *JobHandler) CountJobs(c *gin.Context) {
	var req dto.ListFilteredJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("Invalid query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	count, err := h.jobs.CountJobs(c.Request.Context(), jobFilterFromQuery(&req))
	if err != nil {
		h.logger.Error("Failed to count jobs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to count jobs",
		})
		return
	}

	c.JSON(http.StatusOK, dto.CountJobsResponse{Count: count})
}

// ListMyJobs handles GET /my-jobs/:email
// Lists the jobs posted by the authenticated buyer.
func (h *JobHandler) ListMyJobs(c *gin.Context) {
	email := c.Param("email")

	jobs, err := h.jobs.ListJobsByBuyer(c.Request.Context(), email)
	if err != nil {
		h.logger.Error("Failed to list jobs by buyer", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list jobs",
		})
		return
	}

	c.JSON(http.StatusOK, dto.JobsFromModels(jobs))
}

// DeleteJob handles DELETE /jobs/:id
// Deletes a job posting.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	jobID := c.Param("id")
	if _, err := uuid.Parse(jobID); err != nil {
		h.logger.Error("Invalid job id format", slog.String("id", jobID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "id must be a valid UUID",
		})
		return
	}

	deleted, err := h.jobs.DeleteJob(c.Request.Context(), jobID)
	if err != nil {
		h.logger.Error("Failed to delete job", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete job",
		})
		return
	}

	h.logger.Info("Job deleted",
		slog.String("job_id", jobID),
		slog.Int64("deleted", deleted),
	)

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// UpdateJob handles PUT /update-job/:id
// Upserts the provided fields: a missing id inserts a new job instead of failing.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	jobID := c.Param("id")
	if _, err := uuid.Parse(jobID); err != nil {
		h.logger.Error("Invalid job id format", slog.String("id", jobID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "id must be a valid UUID",
		})
		return
	}

	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	patch := storage.JobPatch{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
	}

	if req.Deadline != nil {
		deadline, err := time.Parse(dto.DeadlineLayout, *req.Deadline)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "deadline must be formatted as YYYY-MM-DD",
			})
			return
		}
		patch.Deadline = &deadline
	}
	if req.Buyer != nil {
		patch.BuyerName = &req.Buyer.Name
		patch.BuyerEmail = &req.Buyer.Email
		patch.BuyerPhoto = &req.Buyer.Photo
	}

	if err := h.jobs.UpsertJob(c.Request.Context(), jobID, patch); err != nil {
		h.logger.Error("Failed to upsert job", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update job",
		})
		return
	}

	h.logger.Info("Job upserted",
		slog.String("job_id", jobID),
	)

	c.JSON(http.StatusOK, gin.H{"updated": true})
}
