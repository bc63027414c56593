package httpx

import (
	"crypto/subtle"
	"errors"
	"net/http"

	domainauth "github.com/nguyenvanlong0501/job-portal/internal/domain/auth"
	"github.com/nguyenvanlong0501/job-portal/internal/service"
)

// adminAccountID is the subject carried in admin tokens. The admin console is
// a single configured operator, not an accounts-table row.
const adminAccountID = "admin"

// AdminCredentials holds the configured admin console login.
type AdminCredentials struct {
	Email    string
	Password string
}

// AdminHandlers provides the moderation endpoints for the admin console.
type AdminHandlers struct {
	Svc         *service.AdminService
	Tokens      service.TokenIssuer
	Credentials AdminCredentials
}

// Login handles HTTP requests to authenticate the admin console operator
// against the configured credentials.
func (h *AdminHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if !h.credentialsMatch(req.Email, req.Password) {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "unauthorized",
			Err:     errors.New("invalid email or password"),
		})
		return
	}

	token, err := h.Tokens.Issue(adminAccountID, domainauth.RoleAdmin, h.Credentials.Email)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "internal", Err: errors.New("internal server error")})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *AdminHandlers) credentialsMatch(email, password string) bool {
	if h.Credentials.Email == "" || h.Credentials.Password == "" {
		return false
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(h.Credentials.Email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(h.Credentials.Password)) == 1
	return emailOK && passOK
}

// Stats handles HTTP requests for the dashboard counters.
func (h *AdminHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.Stats(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}

// ListAccounts handles HTTP requests listing all candidate and company accounts.
func (h *AdminHandlers) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Svc.ListAccounts(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, accounts)
}

type lockRequest struct {
	Locked bool `json:"locked"`
}

// SetAccountLock handles HTTP requests to lock or unlock an account.
func (h *AdminHandlers) SetAccountLock(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("id")
	if accountID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("account id is required")})
		return
	}

	var req lockRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if err := h.Svc.SetAccountLock(r.Context(), accountID, req.Locked); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"locked": req.Locked})
}

// DeleteAccount handles HTTP requests to delete an account. The account's jobs
// and applications cascade with it.
func (h *AdminHandlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("id")
	if accountID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("account id is required")})
		return
	}

	if err := h.Svc.DeleteAccount(r.Context(), accountID); err != nil {
		WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListJobs handles HTTP requests listing every job regardless of visibility
// or approval.
func (h *AdminHandlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Svc.ListJobs(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, jobs)
}

type approvalRequest struct {
	Approved bool `json:"approved"`
}

// SetJobApproval handles HTTP requests to approve or unapprove a job posting.
func (h *AdminHandlers) SetJobApproval(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")})
		return
	}

	var req approvalRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if err := h.Svc.SetJobApproval(r.Context(), jobID, req.Approved); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"approved": req.Approved})
}

// DeleteJob handles HTTP requests to remove a job posting outright.
func (h *AdminHandlers) DeleteJob(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")})
		return
	}

	if err := h.Svc.DeleteJob(r.Context(), jobID); err != nil {
		WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
