// Package core defines repository interfaces (ports in hexagonal architecture).
// Service implementations depend on these contracts, not on internal/data.
package core

import (
	"context"
	"time"

	"github.com/nguyenvanlong0501/job-portal/internal/domain/model"
)

// AccountRepository defines data operations for candidate and company accounts.
type AccountRepository interface {
	Create(ctx context.Context, req *model.CreateAccountRequest) (*model.Account, error)
	GetByID(ctx context.Context, id string) (*model.Account, error)
	GetByEmail(ctx context.Context, role model.AccountRole, email string) (*model.Account, error)
	List(ctx context.Context, role model.AccountRole) ([]*model.Account, error)
	// MarkVerified flags the account holding this unexpired token verified and
	// clears the token. A stale or unknown token maps to NotFound.
	MarkVerified(ctx context.Context, token string) (*model.Account, error)
	// RotateVerificationToken replaces the token on an unverified account.
	RotateVerificationToken(ctx context.Context, params RotateTokenParams) (*model.Account, error)
	SetLocked(ctx context.Context, id string, locked bool) (bool, error)
	SetResume(ctx context.Context, id, resume string) (*model.Account, error)
	// Delete removes the account; jobs and applications cascade at the schema level.
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context, role model.AccountRole) (int, error)
}

// RotateTokenParams groups parameters for RotateVerificationToken to keep param count ≤3.
type RotateTokenParams struct {
	AccountID string
	Token     string
	ExpiresAt time.Time
}

// JobRepository defines data operations for job postings.
type JobRepository interface {
	Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error)
	GetByID(ctx context.Context, id string) (*model.Job, error)
	// ListPublic returns jobs that are visible, approved, and still have open slots.
	ListPublic(ctx context.Context) ([]*model.Job, error)
	ListByCompany(ctx context.Context, companyID string) ([]*model.JobWithApplicantCount, error)
	ListAll(ctx context.Context) ([]*model.Job, error)
	Update(ctx context.Context, id string, req model.UpdateJobRequest) (*model.Job, error)
	SetVisibility(ctx context.Context, id string, visible bool) (bool, error)
	SetApproved(ctx context.Context, id string, approved bool) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	// ConsumeSlot atomically decrements quantity by one, matching only jobs with
	// quantity > 0 and visible = true, and returns the post-decrement row.
	// It returns a NotFound-mapped error when no row matches the predicate.
	ConsumeSlot(ctx context.Context, id string) (*model.Job, error)
	Count(ctx context.Context) (int, error)
}

// ApplicationRepository defines data operations for job applications.
type ApplicationRepository interface {
	Create(ctx context.Context, req *model.CreateApplicationRequest) (*model.Application, error)
	GetByID(ctx context.Context, id string) (*model.Application, error)
	// GetDetail returns the application joined with job and account fields,
	// as needed by notification emails.
	GetDetail(ctx context.Context, id string) (*model.ApplicationDetail, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.Application, error)
	ListByUser(ctx context.Context, userID string) ([]*model.ApplicationDetail, error)
	ListByCompany(ctx context.Context, companyID string) ([]*model.ApplicationDetail, error)
	Count(ctx context.Context) (int, error)
}

// CacheRepository defines the byte-oriented cache contract backed by Redis.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) (bool, error)
}
