package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nguyenvanlong0501/job-portal/internal/core"
	"github.com/nguyenvanlong0501/job-portal/internal/data/pgxutil"
	"github.com/nguyenvanlong0501/job-portal/internal/domain/model"
	apperrors "github.com/nguyenvanlong0501/job-portal/internal/errors"
)

const accountColumns = `id, role, name, email, password_hash, image, resume,
		is_verified, verification_token, token_expires_at, locked, created_at`

// AccountRepo provides database operations for candidate and company accounts.
type AccountRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAccountRepo creates a new AccountRepo with real time provider.
func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewAccountRepoWithTimeProvider creates a new AccountRepo with a custom time provider (useful for tests).
func NewAccountRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *AccountRepo {
	return &AccountRepo{DB: db, timeProvider: tp}
}

// Create inserts a new account. Duplicate (role, email) pairs surface as Conflict.
func (r *AccountRepo) Create(ctx context.Context, req *model.CreateAccountRequest) (*model.Account, error) {
	if req == nil {
		return nil, apperrors.Validation("create account request is required")
	}

	var token *string
	var tokenExpiry *time.Time
	if req.VerificationToken != "" {
		token = &req.VerificationToken
		if !req.TokenExpiresAt.IsZero() {
			tokenExpiry = &req.TokenExpiresAt
		}
	}

	var out model.Account
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO accounts (
				role, name, email, password_hash, image, verification_token, token_expires_at, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8
			) RETURNING `+accountColumns,
			req.Role,
			req.Name,
			req.Email,
			req.PasswordHash,
			req.Image,
			token,
			tokenExpiry,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Account])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*model.Account, error) {
	return r.get(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

// GetByEmail retrieves an account by role and email. The same address may hold
// both a candidate and a company account.
func (r *AccountRepo) GetByEmail(ctx context.Context, role model.AccountRole, email string) (*model.Account, error) {
	return r.get(ctx, `SELECT `+accountColumns+` FROM accounts WHERE role = $1 AND email = $2`, role, email)
}

func (r *AccountRepo) get(ctx context.Context, query string, args ...any) (*model.Account, error) {
	var out model.Account
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Account])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// List retrieves all accounts of a role, newest first.
func (r *AccountRepo) List(ctx context.Context, role model.AccountRole) ([]*model.Account, error) {
	var rowsOut []model.Account
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+accountColumns+` FROM accounts WHERE role = $1 ORDER BY created_at DESC`, role)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Account])
		return err
	}); err != nil {
		return nil, fmt.Errorf("list accounts: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.Account, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// MarkVerified flips the account to verified and clears its token. The token
// must match and must not be expired; otherwise the update yields NotFound.
func (r *AccountRepo) MarkVerified(ctx context.Context, token string) (*model.Account, error) {
	var out model.Account
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE accounts
			SET is_verified = true, verification_token = NULL, token_expires_at = NULL
			WHERE verification_token = $1
			  AND (token_expires_at IS NULL OR token_expires_at > $2)
			RETURNING `+accountColumns,
			token, r.timeProvider.Now().UTC())
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Account])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// RotateVerificationToken replaces the pending token so a resent email
// invalidates earlier ones. Verified accounts are not touched.
func (r *AccountRepo) RotateVerificationToken(ctx context.Context, params core.RotateTokenParams) (*model.Account, error) {
	var out model.Account
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE accounts
			SET verification_token = $2, token_expires_at = $3
			WHERE id = $1 AND is_verified = false
			RETURNING `+accountColumns,
			params.AccountID, params.Token, params.ExpiresAt.UTC())
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Account])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// SetLocked toggles the moderation lock. Returns false when the account does not exist.
func (r *AccountRepo) SetLocked(ctx context.Context, id string, locked bool) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE accounts SET locked = $1 WHERE id = $2`, locked, id)
	if err != nil {
		return false, apperrors.MapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// SetResume stores the candidate's resume location.
func (r *AccountRepo) SetResume(ctx context.Context, id string, resume string) (*model.Account, error) {
	var out model.Account
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE accounts SET resume = $2 WHERE id = $1
			RETURNING `+accountColumns,
			id, resume)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Account])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete removes an account. Jobs and applications cascade at the schema level.
func (r *AccountRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return false, apperrors.MapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// Count returns the number of accounts of a role.
func (r *AccountRepo) Count(ctx context.Context, role model.AccountRole) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM accounts WHERE role = $1`, role).Scan(&n); err != nil {
		return 0, fmt.Errorf("count accounts: %w", apperrors.MapDBError(err))
	}
	return n, nil
}
