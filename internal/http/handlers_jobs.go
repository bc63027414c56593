// Package httpx provides the HTTP handlers and routing for the job portal API.
package httpx

import (
	"errors"
	"net/http"

	"github.com/nguyenvanlong0501/job-portal/internal/service"
)

// JobHandlers provides the public, unauthenticated job browsing endpoints.
type JobHandlers struct {
	Svc *service.JobService
}

// ListJobs handles HTTP requests for the public job listing.
func (h *JobHandlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Svc.ListPublic(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, jobs)
}

// GetJob handles HTTP requests for a single public job posting. Hidden and
// unapproved jobs are indistinguishable from missing ones.
func (h *JobHandlers) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")})
		return
	}

	job, err := h.Svc.GetByID(r.Context(), jobID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if !job.Visible || !job.Approved {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("job not found")})
		return
	}

	WriteJSON(w, http.StatusOK, job)
}
