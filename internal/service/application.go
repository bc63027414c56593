package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nguyenvanlong0501/job-portal/internal/core"
	"github.com/nguyenvanlong0501/job-portal/internal/domain/model"
	apperrors "github.com/nguyenvanlong0501/job-portal/internal/errors"
	"github.com/nguyenvanlong0501/job-portal/internal/observability/notify"
)

// ApplicationRepositories groups the repositories ApplicationService reads and writes.
type ApplicationRepositories struct {
	Apps core.ApplicationRepository
	Jobs core.JobRepository
}

// ApplicationServiceOptions groups dependencies for ApplicationService.
type ApplicationServiceOptions struct {
	Repos     ApplicationRepositories
	Inventory *InventoryService
	Notify    NotifyOptions
}

// ApplicationService owns the application lifecycle: submission and the status
// machine, including the slot hand-off to InventoryService on accept-equivalent
// transitions.
type ApplicationService struct {
	apps      core.ApplicationRepository
	jobs      core.JobRepository
	inventory *InventoryService
	mailer    notify.Mailer
	logger    *slog.Logger
}

// NewApplicationService constructs a new ApplicationService.
func NewApplicationService(opts ApplicationServiceOptions) *ApplicationService {
	if opts.Repos.Apps == nil || opts.Repos.Jobs == nil {
		panic("ApplicationService requires application and job repositories")
	}
	if opts.Inventory == nil {
		panic("ApplicationService requires an inventory service")
	}
	logger := opts.Notify.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ApplicationService{
		apps:      opts.Repos.Apps,
		jobs:      opts.Repos.Jobs,
		inventory: opts.Inventory,
		mailer:    opts.Notify.Mailer,
		logger:    logger,
	}
}

// Submit files a new application for userID against jobID. The job must exist;
// a repeat application for the same job surfaces as Conflict from the storage
// constraint, not from a read-then-write check. The company is notified by a
// best-effort email.
func (s *ApplicationService) Submit(ctx context.Context, userID, jobID string) (*model.Application, error) {
	if userID == "" || jobID == "" {
		return nil, apperrors.Validation("user id and job id are required")
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("load job: %w", err)
	}

	app, err := s.apps.Create(ctx, &model.CreateApplicationRequest{
		JobID:     job.ID,
		UserID:    userID,
		CompanyID: job.CompanyID,
	})
	if err != nil {
		return nil, err
	}

	s.notifyApplication(ctx, app.ID, func(d *model.ApplicationDetail) notify.Message {
		return notify.Message{
			To:      d.CompanyEmail,
			Subject: fmt.Sprintf("New application for %s", d.JobTitle),
			Body: fmt.Sprintf("%s has applied for the %s position.",
				d.ApplicantName, d.JobTitle),
		}
	})

	return app, nil
}

// StatusChangeParams identifies the transition a company requests.
// CompanyID is the acting company; empty skips the ownership check (admin path).
type StatusChangeParams struct {
	CompanyID     string
	ApplicationID string
	Status        string
}

// ChangeStatus moves an application to a new status. Entering the consuming set
// from outside it claims a job slot first; if no slot is available the status
// does not change and the caller gets a Conflict. Every other transition is
// recorded unconditionally, and leaving a consuming status never returns the
// slot. The applicant is notified by a best-effort email.
func (s *ApplicationService) ChangeStatus(ctx context.Context, params StatusChangeParams) (*model.StatusChangeResult, error) {
	status := strings.TrimSpace(params.Status)
	if status == "" {
		return nil, apperrors.Validation("status is required")
	}

	app, err := s.apps.GetByID(ctx, params.ApplicationID)
	if err != nil {
		return nil, fmt.Errorf("load application: %w", err)
	}
	if params.CompanyID != "" && app.CompanyID != params.CompanyID {
		return nil, apperrors.Unauthorized("application belongs to another company")
	}

	var job *model.Job
	if !model.IsConsumingStatus(app.Status) && model.IsConsumingStatus(status) {
		job, err = s.inventory.ConsumeSlot(ctx, app.JobID)
		if err != nil {
			return nil, err
		}
	}

	updated, err := s.apps.UpdateStatus(ctx, app.ID, status)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	s.notifyApplication(ctx, updated.ID, func(d *model.ApplicationDetail) notify.Message {
		return notify.Message{
			To:      d.ApplicantEmail,
			Subject: fmt.Sprintf("Update on your application for %s", d.JobTitle),
			Body: fmt.Sprintf("Your application for %s at %s is now: %s.",
				d.JobTitle, d.CompanyName, d.Status),
		}
	})

	return &model.StatusChangeResult{Application: updated, Job: job}, nil
}

// GetDetail returns one application with its joined job and account fields.
func (s *ApplicationService) GetDetail(ctx context.Context, id string) (*model.ApplicationDetail, error) {
	return s.apps.GetDetail(ctx, id)
}

// ListForUser returns a candidate's applications, newest first.
func (s *ApplicationService) ListForUser(ctx context.Context, userID string) ([]*model.ApplicationDetail, error) {
	return s.apps.ListByUser(ctx, userID)
}

// ListForCompany returns the applications filed against a company's jobs.
func (s *ApplicationService) ListForCompany(ctx context.Context, companyID string) ([]*model.ApplicationDetail, error) {
	return s.apps.ListByCompany(ctx, companyID)
}

// notifyApplication loads the joined detail row and fires one email from it.
// Both the lookup and the send are best effort.
func (s *ApplicationService) notifyApplication(ctx context.Context, appID string, build func(*model.ApplicationDetail) notify.Message) {
	if s.mailer == nil {
		return
	}
	detail, err := s.apps.GetDetail(ctx, appID)
	if err != nil {
		s.logger.Warn("skipping notification, detail lookup failed",
			"application_id", appID,
			"error", err)
		return
	}
	sendMailAsync(s.logger, s.mailer, build(detail))
}
