package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nguyenvanlong0501/job-portal/internal/core"
	"github.com/nguyenvanlong0501/job-portal/internal/domain/model"
	apperrors "github.com/nguyenvanlong0501/job-portal/internal/errors"
)

// publicJobsCacheKey holds the serialized public listing.
const publicJobsCacheKey = "jobs:public"

// publicJobsCacheTTL keeps the listing fresh enough that an exhausted job
// disappears quickly even if invalidation is missed.
const publicJobsCacheTTL = 30 * time.Second

// JobServiceOptions groups dependencies for JobService.
type JobServiceOptions struct {
	Jobs   core.JobRepository   // Required: job repository
	Cache  core.CacheRepository // Optional: public-listing cache
	CacheTTL time.Duration      // Optional: public-listing cache TTL, defaults to 30s
	Logger *slog.Logger         // Optional: structured logger
}

// JobService orchestrates company-side job CRUD and the cached public listing.
type JobService struct {
	jobs     core.JobRepository
	cache    core.CacheRepository
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewJobService constructs a new JobService.
func NewJobService(opts JobServiceOptions) *JobService {
	if opts.Jobs == nil {
		panic("JobService requires a job repository")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = publicJobsCacheTTL
	}
	return &JobService{jobs: opts.Jobs, cache: opts.Cache, cacheTTL: ttl, logger: logger}
}

// Create posts a new job for the owning company.
func (s *JobService) Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	job, err := s.jobs.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.invalidatePublicListing(ctx)
	return job, nil
}

// GetByID retrieves a single job.
func (s *JobService) GetByID(ctx context.Context, id string) (*model.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

// Update applies a partial update after checking the caller owns the job.
func (s *JobService) Update(ctx context.Context, params OwnedJobParams, req model.UpdateJobRequest) (*model.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if req.IsEmpty() {
		return nil, apperrors.Validation("no fields to update")
	}
	if err := s.checkOwnership(ctx, params); err != nil {
		return nil, err
	}

	job, err := s.jobs.Update(ctx, params.JobID, req)
	if err != nil {
		return nil, err
	}
	s.invalidatePublicListing(ctx)
	return job, nil
}

// OwnedJobParams names a job together with the company acting on it.
// Empty CompanyID skips the ownership check (admin path).
type OwnedJobParams struct {
	CompanyID string
	JobID     string
}

// SetVisibility toggles whether the job shows on the public board.
func (s *JobService) SetVisibility(ctx context.Context, params OwnedJobParams, visible bool) error {
	if err := s.checkOwnership(ctx, params); err != nil {
		return err
	}

	ok, err := s.jobs.SetVisibility(ctx, params.JobID, visible)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("job")
	}
	s.invalidatePublicListing(ctx)
	return nil
}

// Delete removes a job and, through the schema, its applications.
func (s *JobService) Delete(ctx context.Context, params OwnedJobParams) error {
	if err := s.checkOwnership(ctx, params); err != nil {
		return err
	}

	ok, err := s.jobs.Delete(ctx, params.JobID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("job")
	}
	s.invalidatePublicListing(ctx)
	return nil
}

// ListPublic returns the public board: visible, approved jobs with open slots.
// Served from cache when possible; a cache fault falls back to the database.
func (s *JobService) ListPublic(ctx context.Context) ([]*model.Job, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, publicJobsCacheKey); err != nil {
			s.logger.Warn("public listing cache read failed", "error", err)
		} else if raw != nil {
			var jobs []*model.Job
			if jsonErr := json.Unmarshal(raw, &jobs); jsonErr == nil {
				return jobs, nil
			}
			s.logger.Warn("discarding unreadable public listing cache entry")
		}
	}

	jobs, err := s.jobs.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("list public jobs: %w", err)
	}

	if s.cache != nil {
		if raw, err := json.Marshal(jobs); err == nil {
			if setErr := s.cache.Set(ctx, publicJobsCacheKey, raw, s.cacheTTL); setErr != nil {
				s.logger.Warn("public listing cache write failed", "error", setErr)
			}
		}
	}

	return jobs, nil
}

// ListForCompany returns a company's jobs with applicant counts.
func (s *JobService) ListForCompany(ctx context.Context, companyID string) ([]*model.JobWithApplicantCount, error) {
	return s.jobs.ListByCompany(ctx, companyID)
}

func (s *JobService) checkOwnership(ctx context.Context, params OwnedJobParams) error {
	if params.JobID == "" {
		return apperrors.Validation("job id is required")
	}
	if params.CompanyID == "" {
		return nil
	}
	job, err := s.jobs.GetByID(ctx, params.JobID)
	if err != nil {
		return fmt.Errorf("load job: %w", err)
	}
	if job.CompanyID != params.CompanyID {
		return apperrors.Unauthorized("job belongs to another company")
	}
	return nil
}

func (s *JobService) invalidatePublicListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Delete(ctx, publicJobsCacheKey); err != nil {
		s.logger.Warn("public listing cache invalidation failed", "error", err)
	}
}
