package data

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/nguyenvanlong0501/job-portal/internal/errors"
	"github.com/nguyenvanlong0501/job-portal/internal/data/pgxutil"
	"github.com/nguyenvanlong0501/job-portal/internal/domain/model"
)

const jobColumns = `id, company_id, title, description, location, level, category,
		salary, quantity, visible, approved, created_at, updated_at`

// JobRepo provides database operations for job postings.
type JobRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewJobRepo creates a new JobRepo with real time provider.
func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewJobRepoWithTimeProvider creates a new JobRepo with a custom time provider (useful for tests).
func NewJobRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *JobRepo {
	return &JobRepo{DB: db, timeProvider: tp}
}

// Create inserts a new job posting.
func (r *JobRepo) Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	if req == nil {
		return nil, apperrors.Validation("create job request is required")
	}

	var out model.Job
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO jobs (
				company_id, title, description, location, level, category, salary, quantity, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9
			) RETURNING `+jobColumns,
			req.CompanyID,
			req.Title,
			req.Description,
			req.Location,
			req.Level,
			req.Category,
			req.Salary,
			req.Quantity,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a job by ID.
func (r *JobRepo) GetByID(ctx context.Context, id string) (*model.Job, error) {
	var out model.Job
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListPublic retrieves jobs shown on the public board: visible, approved, and
// with remaining headcount.
func (r *JobRepo) ListPublic(ctx context.Context) ([]*model.Job, error) {
	return r.list(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE visible = true AND approved = true AND quantity > 0
		ORDER BY created_at DESC`)
}

// ListAll retrieves every job regardless of visibility; used by the admin console.
func (r *JobRepo) ListAll(ctx context.Context) ([]*model.Job, error) {
	return r.list(ctx, `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC`)
}

func (r *JobRepo) list(ctx context.Context, query string, args ...any) ([]*model.Job, error) {
	var rowsOut []model.Job
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Job])
		return err
	}); err != nil {
		return nil, fmt.Errorf("list jobs: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.Job, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// ListByCompany retrieves a company's jobs with per-job applicant counts.
func (r *JobRepo) ListByCompany(ctx context.Context, companyID string) ([]*model.JobWithApplicantCount, error) {
	var rowsOut []model.JobWithApplicantCount
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT j.id, j.company_id, j.title, j.description, j.location, j.level, j.category,
				j.salary, j.quantity, j.visible, j.approved, j.created_at, j.updated_at,
				COUNT(a.id)::int AS applicants
			FROM jobs j
			LEFT JOIN job_applications a ON a.job_id = j.id
			WHERE j.company_id = $1
			GROUP BY j.id
			ORDER BY j.created_at DESC`, companyID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.JobWithApplicantCount])
		return err
	}); err != nil {
		return nil, fmt.Errorf("list company jobs: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.JobWithApplicantCount, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update applies a partial update and stamps updated_at. Nil request fields are
// left unchanged.
func (r *JobRepo) Update(ctx context.Context, id string, req model.UpdateJobRequest) (*model.Job, error) {
	sets := []string{}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}

	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.Location != nil {
		add("location", *req.Location)
	}
	if req.Level != nil {
		add("level", *req.Level)
	}
	if req.Category != nil {
		add("category", *req.Category)
	}
	if req.Salary != nil {
		add("salary", *req.Salary)
	}
	if req.Quantity != nil {
		add("quantity", *req.Quantity)
	}
	if req.Visible != nil {
		add("visible", *req.Visible)
	}
	add("updated_at", r.timeProvider.Now().UTC())

	args = append(args, id)
	query := `UPDATE jobs SET ` + strings.Join(sets, ", ") +
		` WHERE id = $` + strconv.Itoa(len(args)) + ` RETURNING ` + jobColumns

	var out model.Job
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// SetVisibility sets the public-listing flag. Returns false when the job does not exist.
func (r *JobRepo) SetVisibility(ctx context.Context, id string, visible bool) (bool, error) {
	return r.setFlag(ctx, "visible", id, visible)
}

// SetApproved sets the admin moderation flag. Returns false when the job does not exist.
func (r *JobRepo) SetApproved(ctx context.Context, id string, approved bool) (bool, error) {
	return r.setFlag(ctx, "approved", id, approved)
}

func (r *JobRepo) setFlag(ctx context.Context, column, id string, value bool) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE jobs SET `+column+` = $1 WHERE id = $2`, value, id)
	if err != nil {
		return false, apperrors.MapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// Delete removes a job. Applications cascade at the schema level.
func (r *JobRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return false, apperrors.MapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// ConsumeSlot atomically claims one unit of headcount. The filter predicate and
// the decrement execute as a single statement so concurrent acceptances against
// the same job serialize at the storage engine and quantity can never go
// negative. A job that is already exhausted, hidden, or missing yields no row,
// which maps to NotFound for the caller to translate.
func (r *JobRepo) ConsumeSlot(ctx context.Context, id string) (*model.Job, error) {
	var out model.Job
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE jobs
			SET quantity = quantity - 1
			WHERE id = $1 AND quantity > 0 AND visible = true
			RETURNING `+jobColumns, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Count returns the total number of jobs.
func (r *JobRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count jobs: %w", apperrors.MapDBError(err))
	}
	return n, nil
}
