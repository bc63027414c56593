package httpx

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/nguyenvanlong0501/job-portal/internal/domain/model"
	apperrors "github.com/nguyenvanlong0501/job-portal/internal/errors"
	"github.com/nguyenvanlong0501/job-portal/internal/service"
)

func candidateAccount(id string) *model.Account {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	return &model.Account{
		ID:           id,
		Role:         model.RoleCandidate,
		Name:         "Alice Seeker",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
		IsVerified:   true,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestAccountHandlers_Register(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	f.accounts.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *model.CreateAccountRequest) (*model.Account, error) {
			require.Equal(t, model.RoleCandidate, req.Role)
			require.Equal(t, "alice@example.com", req.Email)
			acct := candidateAccount("acct-1")
			acct.IsVerified = false
			return acct, nil
		})

	w := f.do(t, jsonRequest(t, http.MethodPost, "/api/users/register", map[string]string{
		"name":     "Alice Seeker",
		"email":    "Alice@Example.com",
		"password": "password123",
	}))

	require.Equal(t, http.StatusCreated, w.Code)
	acct := decodeBody[*model.Account](t, w)
	require.Equal(t, "acct-1", acct.ID)
	require.False(t, acct.IsVerified)
	// Registration never hands out a token; verification comes first.
	require.NotContains(t, w.Body.String(), "token")
}

func TestAccountHandlers_Register_CompanyRoute(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	f.accounts.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *model.CreateAccountRequest) (*model.Account, error) {
			require.Equal(t, model.RoleCompany, req.Role)
			return &model.Account{ID: "co-1", Role: model.RoleCompany, Name: req.Name, Email: req.Email}, nil
		})

	w := f.do(t, jsonRequest(t, http.MethodPost, "/api/companies/register", map[string]string{
		"name":     "Acme Corp",
		"email":    "hr@acme.com",
		"password": "password123",
	}))

	require.Equal(t, http.StatusCreated, w.Code)
}

func TestAccountHandlers_Register_ShortPassword(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	w := f.do(t, jsonRequest(t, http.MethodPost, "/api/users/register", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "short",
	}))

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody[map[string]string](t, w)
	require.Equal(t, "validation", body["error"])
	require.Equal(t, "password", body["field"])
}

func TestAccountHandlers_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	f.accounts.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, apperrors.Conflict("an account with this email already exists"))

	w := f.do(t, jsonRequest(t, http.MethodPost, "/api/users/register", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "password123",
	}))

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAccountHandlers_Login(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	f.accounts.EXPECT().
		GetByEmail(gomock.Any(), model.RoleCandidate, "alice@example.com").
		Return(candidateAccount("acct-1"), nil)

	w := f.do(t, jsonRequest(t, http.MethodPost, "/api/users/login", map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	}))

	require.Equal(t, http.StatusOK, w.Code)
	result := decodeBody[*service.AuthResult](t, w)
	require.NotEmpty(t, result.Token)
	require.Equal(t, "acct-1", result.Account.ID)

	principal, err := f.tokens.Parse(result.Token)
	require.NoError(t, err)
	require.Equal(t, "acct-1", principal.AccountID)
}

func TestAccountHandlers_Login_BadPassword(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	f.accounts.EXPECT().
		GetByEmail(gomock.Any(), model.RoleCandidate, "alice@example.com").
		Return(candidateAccount("acct-1"), nil)

	w := f.do(t, jsonRequest(t, http.MethodPost, "/api/users/login", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-password",
	}))

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAccountHandlers_Verify(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	f.accounts.EXPECT().
		MarkVerified(gomock.Any(), "sometoken").
		Return(candidateAccount("acct-1"), nil)

	w := f.do(t, jsonRequest(t, http.MethodPost, "/api/users/verify", map[string]string{"token": "sometoken"}))

	require.Equal(t, http.StatusOK, w.Code)
	result := decodeBody[*service.AuthResult](t, w)
	require.NotEmpty(t, result.Token)
}

func TestAccountHandlers_Verify_BadToken(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	f.accounts.EXPECT().
		MarkVerified(gomock.Any(), "expired").
		Return(nil, apperrors.NotFound("verification token"))

	w := f.do(t, jsonRequest(t, http.MethodPost, "/api/users/verify", map[string]string{"token": "expired"}))

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccountHandlers_ResendVerification_RequiresAuth(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	w := f.do(t, jsonRequest(t, http.MethodPost, "/api/users/verify/resend", nil))

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAccountHandlers_CheckVerified(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	f.accounts.EXPECT().GetByID(gomock.Any(), "acct-1").Return(candidateAccount("acct-1"), nil)

	r := jsonRequest(t, http.MethodGet, "/api/users/verify", nil)
	r.Header.Set("Authorization", f.bearerFor(t, "acct-1", "candidate"))
	w := f.do(t, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody[map[string]bool](t, w)
	require.True(t, body["verified"])
}

func TestAccountHandlers_Me(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	f.accounts.EXPECT().GetByID(gomock.Any(), "acct-1").Return(candidateAccount("acct-1"), nil)

	r := jsonRequest(t, http.MethodGet, "/api/users/me", nil)
	r.Header.Set("Authorization", f.bearerFor(t, "acct-1", "candidate"))
	w := f.do(t, r)

	require.Equal(t, http.StatusOK, w.Code)
	acct := decodeBody[*model.Account](t, w)
	require.Equal(t, "alice@example.com", acct.Email)
	// Credentials never serialize.
	require.NotContains(t, w.Body.String(), "password")
}

func TestAccountHandlers_Me_WrongPortal(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	f.accounts.EXPECT().GetByID(gomock.Any(), "acct-1").Return(candidateAccount("acct-1"), nil)

	// A candidate token on the company portal is rejected by role middleware
	// before the handler runs, so impersonate the edge case directly: a company
	// token whose account row is actually a candidate.
	r := jsonRequest(t, http.MethodGet, "/api/companies/me", nil)
	r.Header.Set("Authorization", f.bearerFor(t, "acct-1", "company"))
	w := f.do(t, r)

	require.Equal(t, http.StatusNotFound, w.Code)
}
