package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bqmanh/marketplace-be/internal/api/domain"
	"github.com/bqmanh/marketplace-be/internal/api/model"
	"github.com/bqmanh/marketplace-be/shared/postgresql"
	"github.com/jmoiron/sqlx"
)

const jobColumns = `
	job_id, title, category, description, deadline,
	min_price, max_price, buyer_name, buyer_email, buyer_photo,
	created_at, updated_at
`

type Storage struct {
	db *sqlx.DB
}

func NewStorage(pg *postgresql.Client) *Storage {
	return &Storage{
		db: pg.GetDB(),
	}
}

func (s *Storage) CreateJob(ctx context.Context, job *model.Job) error {
	query := `
		INSERT INTO jobs (
			job_id, title, category, description, deadline,
			min_price, max_price, buyer_name, buyer_email, buyer_photo,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			$11, $12
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		job.JobID,
		job.Title,
		job.Category,
		job.Description,
		job.Deadline,
		job.MinPrice,
		job.MaxPrice,
		job.BuyerName,
		job.BuyerEmail,
		job.BuyerPhoto,
		job.CreatedAt,
		job.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

func (s *Storage) GetJobByID(ctx context.Context, jobID string) (*model.Job, error) {
	var job model.Job
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE job_id = $1`

	err := s.db.GetContext(ctx, &job, query, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

func (s *Storage) ListJobs(ctx context.Context) ([]model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC`

	var jobs []model.Job
	if err := s.db.SelectContext(ctx, &jobs, query); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}

func (s *Storage) ListJobsByBuyer(ctx context.Context, email string) ([]model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE buyer_email = $1 ORDER BY created_at DESC`

	var jobs []model.Job
	if err := s.db.SelectContext(ctx, &jobs, query, email); err != nil {
		return nil, fmt.Errorf("failed to list jobs by buyer: %w", err)
	}

	return jobs, nil
}

// JobFilter is the browse contract for the public job list: a case-insensitive
// title substring, an optional exact category match, an optional deadline sort
// and 1-based page/size pagination.
type JobFilter struct {
	Search   string
	Category string
	Sort     string // "asc" or "desc" on deadline; empty means no sort
	Page     int
	Size     int
}

// whereClause builds the shared filter predicate for listing and counting.
// An empty search degenerates to ILIKE '%%' which matches every title.
func (f JobFilter) whereClause() (string, []interface{}) {
	clause := " WHERE title ILIKE $1"
	args := []interface{}{"%" + f.Search + "%"}

	if f.Category != "" {
		clause += fmt.Sprintf(" AND category = $%d", len(args)+1)
		args = append(args, f.Category)
	}

	return clause, args
}

func (s *Storage) ListFilteredJobs(ctx context.Context, filter JobFilter) ([]model.Job, error) {
	where, args := filter.whereClause()
	query := `SELECT ` + jobColumns + ` FROM jobs` + where

	switch strings.ToLower(filter.Sort) {
	case "asc":
		query += " ORDER BY deadline ASC"
	case "desc":
		query += " ORDER BY deadline DESC"
	}

	offset := (filter.Page - 1) * filter.Size
	query += fmt.Sprintf(" OFFSET $%d LIMIT $%d", len(args)+1, len(args)+2)
	args = append(args, offset, filter.Size)

	var jobs []model.Job
	if err := s.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list filtered jobs: %w", err)
	}

	return jobs, nil
}

// CountJobs counts the rows matching the filter, ignoring sort and pagination.
// The client uses it to compute its page count.
func (s *Storage) CountJobs(ctx context.Context, filter JobFilter) (int, error) {
	where, args := filter.whereClause()
	query := `SELECT COUNT(*) FROM jobs` + where

	var count int
	if err := s.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	return count, nil
}

func (s *Storage) DeleteJob(ctx context.Context, jobID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE job_id = $1`, jobID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete job: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

// JobPatch is a partial job document: nil fields are left untouched on
// update and fall back to column defaults on insert.
type JobPatch struct {
	Title       *string
	Category    *string
	Description *string
	Deadline    *time.Time
	MinPrice    *float64
	MaxPrice    *float64
	BuyerName   *string
	BuyerEmail  *string
	BuyerPhoto  *string
}

// UpsertJob writes the provided fields for jobID, inserting a fresh row when
// no job with that id exists. The single INSERT ... ON CONFLICT statement
// keeps the insert-if-absent decision atomic.
func (s *Storage) UpsertJob(ctx context.Context, jobID string, patch JobPatch) error {
	cols := []string{"job_id"}
	args := []interface{}{jobID}

	add := func(col string, value interface{}) {
		cols = append(cols, col)
		args = append(args, value)
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Deadline != nil {
		add("deadline", *patch.Deadline)
	}
	if patch.MinPrice != nil {
		add("min_price", *patch.MinPrice)
	}
	if patch.MaxPrice != nil {
		add("max_price", *patch.MaxPrice)
	}
	if patch.BuyerName != nil {
		add("buyer_name", *patch.BuyerName)
	}
	if patch.BuyerEmail != nil {
		add("buyer_email", *patch.BuyerEmail)
	}
	if patch.BuyerPhoto != nil {
		add("buyer_photo", *patch.BuyerPhoto)
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	sets := []string{"updated_at = NOW()"}
	for _, col := range cols[1:] {
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}

	query := fmt.Sprintf(
		"INSERT INTO jobs (%s) VALUES (%s) ON CONFLICT (job_id) DO UPDATE SET %s",
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(sets, ", "),
	)

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert job: %w", err)
	}

	return nil
}
