package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nguyenvanlong0501/job-portal/internal/data/pgxutil"
	"github.com/nguyenvanlong0501/job-portal/internal/domain/model"
	apperrors "github.com/nguyenvanlong0501/job-portal/internal/errors"
)

const applicationColumns = `id, job_id, user_id, company_id, status, applied_at`

const applicationDetailQuery = `
	SELECT a.id, a.job_id, a.user_id, a.company_id, a.status, a.applied_at,
		j.title AS job_title,
		j.location AS job_location,
		u.name AS applicant_name,
		u.email AS applicant_email,
		u.image AS applicant_image,
		u.resume AS resume,
		c.name AS company_name,
		c.email AS company_email
	FROM job_applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN accounts u ON u.id = a.user_id
	JOIN accounts c ON c.id = a.company_id`

// ApplicationRepo provides database operations for job applications.
type ApplicationRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewApplicationRepo creates a new ApplicationRepo with real time provider.
func NewApplicationRepo(db *sql.DB) *ApplicationRepo {
	return &ApplicationRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// Create inserts a new application in Pending status. The unique constraint on
// (user_id, job_id) rejects a second application for the same job, which
// surfaces as Conflict without a read-before-write race.
func (r *ApplicationRepo) Create(ctx context.Context, req *model.CreateApplicationRequest) (*model.Application, error) {
	if req == nil {
		return nil, apperrors.Validation("create application request is required")
	}

	var out model.Application
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO job_applications (job_id, user_id, company_id, applied_at)
			VALUES ($1, $2, $3, $4)
			RETURNING `+applicationColumns,
			req.JobID, req.UserID, req.CompanyID, r.timeProvider.Now().UTC())
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves an application by ID.
func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (*model.Application, error) {
	var out model.Application
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+applicationColumns+` FROM job_applications WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetDetail retrieves an application joined with its job and both accounts.
func (r *ApplicationRepo) GetDetail(ctx context.Context, id string) (*model.ApplicationDetail, error) {
	var out model.ApplicationDetail
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, applicationDetailQuery+` WHERE a.id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ApplicationDetail])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// UpdateStatus records a status transition. The stored value keeps the caller's
// casing; consumption checks compare case-insensitively upstream.
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id string, status string) (*model.Application, error) {
	var out model.Application
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE job_applications SET status = $2 WHERE id = $1
			RETURNING `+applicationColumns,
			id, status)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListByUser retrieves a candidate's applications with job details, newest first.
func (r *ApplicationRepo) ListByUser(ctx context.Context, userID string) ([]*model.ApplicationDetail, error) {
	return r.listDetail(ctx, applicationDetailQuery+
		` WHERE a.user_id = $1 ORDER BY a.applied_at DESC`, userID)
}

// ListByCompany retrieves applications for a company's jobs, newest first.
func (r *ApplicationRepo) ListByCompany(ctx context.Context, companyID string) ([]*model.ApplicationDetail, error) {
	return r.listDetail(ctx, applicationDetailQuery+
		` WHERE a.company_id = $1 ORDER BY a.applied_at DESC`, companyID)
}

func (r *ApplicationRepo) listDetail(ctx context.Context, query string, args ...any) ([]*model.ApplicationDetail, error) {
	var rowsOut []model.ApplicationDetail
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.ApplicationDetail])
		return err
	}); err != nil {
		return nil, fmt.Errorf("list applications: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.ApplicationDetail, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Count returns the total number of applications.
func (r *ApplicationRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM job_applications`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count applications: %w", apperrors.MapDBError(err))
	}
	return n, nil
}
