package httpx

import (
	"errors"
	"net/http"

	domainauth "github.com/nguyenvanlong0501/job-portal/internal/domain/auth"
	"github.com/nguyenvanlong0501/job-portal/internal/domain/model"
	"github.com/nguyenvanlong0501/job-portal/internal/service"
)

// CompanyHandlers provides the company-only endpoints: managing job postings
// and reviewing applicants.
type CompanyHandlers struct {
	Jobs         *service.JobService
	Applications *service.ApplicationService
}

// CreateJob handles HTTP requests to post a new job for the authenticated company.
func (h *CompanyHandlers) CreateJob(w http.ResponseWriter, r *http.Request) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		writeAuthRequired(w)
		return
	}

	var req model.CreateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.CompanyID = principal.AccountID

	job, err := h.Jobs.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, job)
}

// ListMyJobs handles HTTP requests listing the company's jobs with applicant counts.
func (h *CompanyHandlers) ListMyJobs(w http.ResponseWriter, r *http.Request) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		writeAuthRequired(w)
		return
	}

	jobs, err := h.Jobs.ListForCompany(r.Context(), principal.AccountID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, jobs)
}

// UpdateJob handles HTTP requests to edit one of the company's jobs.
func (h *CompanyHandlers) UpdateJob(w http.ResponseWriter, r *http.Request) {
	principal, jobID, ok := h.ownedJob(w, r)
	if !ok {
		return
	}

	var req model.UpdateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	job, err := h.Jobs.Update(r.Context(), service.OwnedJobParams{
		CompanyID: principal.AccountID,
		JobID:     jobID,
	}, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, job)
}

type visibilityRequest struct {
	Visible bool `json:"visible"`
}

// SetJobVisibility handles HTTP requests to show or hide one of the company's jobs.
func (h *CompanyHandlers) SetJobVisibility(w http.ResponseWriter, r *http.Request) {
	principal, jobID, ok := h.ownedJob(w, r)
	if !ok {
		return
	}

	var req visibilityRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	err := h.Jobs.SetVisibility(r.Context(), service.OwnedJobParams{
		CompanyID: principal.AccountID,
		JobID:     jobID,
	}, req.Visible)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"visible": req.Visible})
}

// DeleteJob handles HTTP requests to delete one of the company's jobs.
// Applications cascade with the job.
func (h *CompanyHandlers) DeleteJob(w http.ResponseWriter, r *http.Request) {
	principal, jobID, ok := h.ownedJob(w, r)
	if !ok {
		return
	}

	err := h.Jobs.Delete(r.Context(), service.OwnedJobParams{
		CompanyID: principal.AccountID,
		JobID:     jobID,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListApplicants handles HTTP requests listing applications across the
// company's jobs, applicant details joined in.
func (h *CompanyHandlers) ListApplicants(w http.ResponseWriter, r *http.Request) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		writeAuthRequired(w)
		return
	}

	apps, err := h.Applications.ListForCompany(r.Context(), principal.AccountID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, apps)
}

type statusChangeRequest struct {
	Status string `json:"status"`
}

// ChangeApplicationStatus handles HTTP requests to move an application to a
// new status. Moving into an accepting status consumes one job slot; the
// response carries the post-decrement job when that happens.
func (h *CompanyHandlers) ChangeApplicationStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		writeAuthRequired(w)
		return
	}

	appID := r.PathValue("id")
	if appID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("application id is required")})
		return
	}

	var req statusChangeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Applications.ChangeStatus(r.Context(), service.StatusChangeParams{
		CompanyID:     principal.AccountID,
		ApplicationID: appID,
		Status:        req.Status,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// ownedJob extracts the principal and the job id path value, writing the error
// response itself when either is missing.
func (h *CompanyHandlers) ownedJob(w http.ResponseWriter, r *http.Request) (*domainauth.Principal, string, bool) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		writeAuthRequired(w)
		return nil, "", false
	}

	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")})
		return nil, "", false
	}

	return principal, jobID, true
}
