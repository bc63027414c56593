package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nguyenvanlong0501/job-portal/internal/core"
	"github.com/nguyenvanlong0501/job-portal/internal/domain/model"
	apperrors "github.com/nguyenvanlong0501/job-portal/internal/errors"
)

// InventoryServiceOptions groups dependencies for InventoryService.
type InventoryServiceOptions struct {
	Jobs   core.JobRepository // Required: job repository
	Logger *slog.Logger       // Optional: structured logger
}

// InventoryService owns job-slot accounting. Claiming a slot is a single atomic
// decrement at the repository; this service layers the auto-hide follow-up and
// the domain error on top.
type InventoryService struct {
	jobs   core.JobRepository
	logger *slog.Logger
}

// NewInventoryService constructs a new InventoryService.
func NewInventoryService(opts InventoryServiceOptions) *InventoryService {
	if opts.Jobs == nil {
		panic("InventoryService requires a job repository")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &InventoryService{jobs: opts.Jobs, logger: logger}
}

// ConsumeSlot claims one unit of headcount on a job. Jobs that are exhausted,
// hidden, or missing yield a Conflict; quantity can never go below zero because
// the predicate and decrement run as one statement. When the claim drains the
// last slot, the job is hidden from the public board on a best-effort basis:
// the claimed slot stands even if the hide fails.
func (s *InventoryService) ConsumeSlot(ctx context.Context, jobID string) (*model.Job, error) {
	if jobID == "" {
		return nil, apperrors.Validation("job id is required")
	}

	job, err := s.jobs.ConsumeSlot(ctx, jobID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Conflict("This job has no remaining openings.")
		}
		return nil, fmt.Errorf("consume slot: %w", err)
	}

	if job.Quantity == 0 {
		if _, hideErr := s.jobs.SetVisibility(ctx, job.ID, false); hideErr != nil {
			s.logger.Warn("failed to hide exhausted job",
				"job_id", job.ID,
				"error", hideErr)
		} else {
			job.Visible = false
		}
	}

	return job, nil
}
