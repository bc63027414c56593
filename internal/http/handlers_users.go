package httpx

import (
	"errors"
	"net/http"

	"github.com/nguyenvanlong0501/job-portal/internal/service"
)

// UserHandlers provides the candidate-only endpoints: applying to jobs,
// listing own applications, and storing a resume.
type UserHandlers struct {
	Applications *service.ApplicationService
	Accounts     *service.AccountService
}

type applyRequest struct {
	JobID string `json:"job_id"`
}

// Apply handles HTTP requests to submit an application for a job.
func (h *UserHandlers) Apply(w http.ResponseWriter, r *http.Request) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		writeAuthRequired(w)
		return
	}

	var req applyRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.JobID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation", Err: errors.New("job_id is required")})
		return
	}

	app, err := h.Applications.Submit(r.Context(), principal.AccountID, req.JobID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, app)
}

// MyApplications handles HTTP requests listing the candidate's applications
// with job and company details joined in.
func (h *UserHandlers) MyApplications(w http.ResponseWriter, r *http.Request) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		writeAuthRequired(w)
		return
	}

	apps, err := h.Applications.ListForUser(r.Context(), principal.AccountID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, apps)
}

type resumeRequest struct {
	Resume string `json:"resume"`
}

// SetResume handles HTTP requests to store the candidate's resume URL.
func (h *UserHandlers) SetResume(w http.ResponseWriter, r *http.Request) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		writeAuthRequired(w)
		return
	}

	var req resumeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	account, err := h.Accounts.SetResume(r.Context(), principal.AccountID, req.Resume)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, account)
}
