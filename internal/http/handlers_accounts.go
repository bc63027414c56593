package httpx

import (
	"errors"
	"net/http"

	"github.com/nguyenvanlong0501/job-portal/internal/domain/model"
	"github.com/nguyenvanlong0501/job-portal/internal/service"
)

// AccountHandlers provides registration, login, and verification endpoints.
// The same handler set serves both portals; Role pins which account kind the
// mounted routes operate on.
type AccountHandlers struct {
	Svc  *service.AccountService
	Role model.AccountRole
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Image    string `json:"image,omitempty"`
}

// Register handles HTTP requests to create a new account. The response carries
// no token; the account must verify its email address first.
func (h *AccountHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	account, err := h.Svc.Register(r.Context(), service.RegisterParams{
		Role:     h.Role,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Image:    req.Image,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, account)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles HTTP requests to authenticate an account and issue a token.
func (h *AccountHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Svc.Login(r.Context(), service.LoginParams{
		Role:     h.Role,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

type verifyRequest struct {
	Token string `json:"token"`
}

// Verify handles HTTP requests to redeem an emailed verification token.
// A successful verification logs the account in.
func (h *AccountHandlers) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Svc.Verify(r.Context(), req.Token)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// ResendVerification handles HTTP requests to re-send the verification email
// for the authenticated, still-unverified account.
func (h *AccountHandlers) ResendVerification(w http.ResponseWriter, r *http.Request) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		writeAuthRequired(w)
		return
	}

	if err := h.Svc.ResendVerification(r.Context(), principal.AccountID); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// CheckVerified handles HTTP requests asking whether the authenticated account
// completed email verification.
func (h *AccountHandlers) CheckVerified(w http.ResponseWriter, r *http.Request) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		writeAuthRequired(w)
		return
	}

	verified, err := h.Svc.CheckVerified(r.Context(), principal.AccountID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"verified": verified})
}

// Me handles HTTP requests for the authenticated account's own profile.
func (h *AccountHandlers) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		writeAuthRequired(w)
		return
	}

	account, err := h.Svc.Get(r.Context(), principal.AccountID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if account.Role != h.Role {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("account not found")})
		return
	}

	WriteJSON(w, http.StatusOK, account)
}
