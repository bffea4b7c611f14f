package dto

import (
	"time"

	"github.com/bqmanh/marketplace-be/internal/api/model"
)

// DeadlineLayout is the wire format for job deadlines.
const DeadlineLayout = "2006-01-02"

// BuyerDTO is the embedded buyer sub-record on a job.
type BuyerDTO struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"required,email"`
	Photo string `json:"photo"`
}

type CreateJobRequest struct {
	Title       string   `json:"title" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Description string   `json:"description"`
	Deadline    string   `json:"deadline"`
	MinPrice    *float64 `json:"min_price"`
	MaxPrice    *float64 `json:"max_price"`
	Buyer       BuyerDTO `json:"buyer" binding:"required"`
}

// UpdateJobRequest carries the partial document for PUT /update-job/:id.
// Only non-nil fields are written; absent fields keep their stored values.
type UpdateJobRequest struct {
	Title       *string   `json:"title"`
	Category    *string   `json:"category"`
	Description *string   `json:"description"`
	Deadline    *string   `json:"deadline"`
	MinPrice    *float64  `json:"min_price"`
	MaxPrice    *float64  `json:"max_price"`
	Buyer       *BuyerDTO `json:"buyer"`
}

type ListFilteredJobsRequest struct {
	Size   int    `form:"size"`
	Page   int    `form:"page"`
	Filter string `form:"filter"`
	Sort   string `form:"sort"`
	Search string `form:"search"`
}

type JobDTO struct {
	JobID       string   `json:"_id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Deadline    string   `json:"deadline,omitempty"`
	MinPrice    *float64 `json:"min_price,omitempty"`
	MaxPrice    *float64 `json:"max_price,omitempty"`
	Buyer       BuyerDTO `json:"buyer"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type CountJobsResponse struct {
	Count int `json:"count"`
}

// JobFromModel maps a stored job row to its wire shape.
func JobFromModel(j *model.Job) JobDTO {
	out := JobDTO{
		JobID:       j.JobID,
		Title:       j.Title,
		Category:    j.Category,
		Description: j.Description,
		Buyer: BuyerDTO{
			Name:  j.BuyerName,
			Email: j.BuyerEmail,
			Photo: j.BuyerPhoto,
		},
		CreatedAt: j.CreatedAt.Format(time.RFC3339),
		UpdatedAt: j.UpdatedAt.Format(time.RFC3339),
	}

	if j.Deadline.Valid {
		out.Deadline = j.Deadline.Time.Format(DeadlineLayout)
	}
	if j.MinPrice.Valid {
		v := j.MinPrice.Float64
		out.MinPrice = &v
	}
	if j.MaxPrice.Valid {
		v := j.MaxPrice.Float64
		out.MaxPrice = &v
	}

	return out
}

// JobsFromModels maps a result set, never returning nil so the JSON stays
// an array.
func JobsFromModels(jobs []model.Job) []JobDTO {
	out := make([]JobDTO, len(jobs))
	for i := range jobs {
		out[i] = JobFromModel(&jobs[i])
	}
	return out
}
