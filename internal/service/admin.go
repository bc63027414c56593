package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/nguyenvanlong0501/job-portal/internal/core"
	"github.com/nguyenvanlong0501/job-portal/internal/domain/model"
	apperrors "github.com/nguyenvanlong0501/job-portal/internal/errors"
)

// AdminRepositories groups the repositories the admin console reads and writes.
type AdminRepositories struct {
	Accounts core.AccountRepository
	Jobs     core.JobRepository
	Apps     core.ApplicationRepository
}

// AdminServiceOptions groups dependencies for AdminService.
type AdminServiceOptions struct {
	Repos  AdminRepositories
	Cache  core.CacheRepository // Optional: public listing cache to invalidate on job mutations
	Logger *slog.Logger         // Optional: structured logger
}

// AdminService implements the moderation console: portal stats, account
// lock/unlock and removal, and job approval.
type AdminService struct {
	accounts core.AccountRepository
	jobs     core.JobRepository
	apps     core.ApplicationRepository
	cache    core.CacheRepository
	logger   *slog.Logger
}

// NewAdminService constructs a new AdminService.
func NewAdminService(opts AdminServiceOptions) *AdminService {
	if opts.Repos.Accounts == nil || opts.Repos.Jobs == nil || opts.Repos.Apps == nil {
		panic("AdminService requires account, job, and application repositories")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminService{
		accounts: opts.Repos.Accounts,
		jobs:     opts.Repos.Jobs,
		apps:     opts.Repos.Apps,
		cache:    opts.Cache,
		logger:   logger,
	}
}

// Stats returns the aggregate counts for the dashboard. The four counts run
// concurrently against independent tables.
func (s *AdminService) Stats(ctx context.Context) (*model.PortalStats, error) {
	var stats model.PortalStats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.accounts.Count(ctx, model.RoleCandidate)
		stats.Users = n
		return err
	})
	g.Go(func() error {
		n, err := s.accounts.Count(ctx, model.RoleCompany)
		stats.Companies = n
		return err
	})
	g.Go(func() error {
		n, err := s.jobs.Count(ctx)
		stats.Jobs = n
		return err
	})
	g.Go(func() error {
		n, err := s.apps.Count(ctx)
		stats.Applications = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("collect stats: %w", err)
	}
	return &stats, nil
}

// ListAccounts returns the moderation view of every account, candidates first.
func (s *AdminService) ListAccounts(ctx context.Context) ([]*model.AccountSummary, error) {
	var out []*model.AccountSummary
	for _, role := range []model.AccountRole{model.RoleCandidate, model.RoleCompany} {
		accounts, err := s.accounts.List(ctx, role)
		if err != nil {
			return nil, fmt.Errorf("list %s accounts: %w", role, err)
		}
		for _, a := range accounts {
			out = append(out, &model.AccountSummary{
				ID:     a.ID,
				Role:   a.Role,
				Name:   a.Name,
				Email:  a.Email,
				Image:  a.Image,
				Locked: a.Locked,
			})
		}
	}
	return out, nil
}

// SetAccountLock locks or unlocks an account.
func (s *AdminService) SetAccountLock(ctx context.Context, id string, locked bool) error {
	ok, err := s.accounts.SetLocked(ctx, id, locked)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("account")
	}
	s.logger.Info("account lock changed", "account_id", id, "locked", locked)
	return nil
}

// DeleteAccount removes an account. The schema cascades a company's jobs and
// every dependent application.
func (s *AdminService) DeleteAccount(ctx context.Context, id string) error {
	ok, err := s.accounts.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("account")
	}
	// A deleted company takes its jobs with it, so the cached listing is stale.
	s.invalidatePublicListing(ctx)
	s.logger.Info("account deleted", "account_id", id)
	return nil
}

// ListJobs returns every job regardless of visibility or approval.
func (s *AdminService) ListJobs(ctx context.Context) ([]*model.Job, error) {
	return s.jobs.ListAll(ctx)
}

// SetJobApproval flips the moderation flag on a job. Unapproved jobs stay off
// the public board until re-approved.
func (s *AdminService) SetJobApproval(ctx context.Context, id string, approved bool) error {
	ok, err := s.jobs.SetApproved(ctx, id, approved)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("job")
	}
	s.invalidatePublicListing(ctx)
	return nil
}

// DeleteJob removes a job and its applications.
func (s *AdminService) DeleteJob(ctx context.Context, id string) error {
	ok, err := s.jobs.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("job")
	}
	s.invalidatePublicListing(ctx)
	return nil
}

func (s *AdminService) invalidatePublicListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Delete(ctx, publicJobsCacheKey); err != nil {
		s.logger.Warn("public listing cache invalidation failed", "error", err)
	}
}
