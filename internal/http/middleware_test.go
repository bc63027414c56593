package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nguyenvanlong0501/job-portal/internal/adapters/jwtauth"
	domainauth "github.com/nguyenvanlong0501/job-portal/internal/domain/auth"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestTokens(t *testing.T) *jwtauth.Manager {
	t.Helper()
	m, err := jwtauth.NewManager(jwtauth.Options{Secret: []byte("middleware-test-secret")})
	require.NoError(t, err)
	return m
}

func principalEcho(t *testing.T, captured **domainauth.Principal) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := GetPrincipalFromContext(r.Context()); ok {
			*captured = p
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireRole_MissingToken(t *testing.T) {
	t.Parallel()
	tokens := newTestTokens(t)

	handler := RequireRole(tokens, domainauth.RoleCompany)(http.NotFoundHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole_MalformedHeader(t *testing.T) {
	t.Parallel()
	tokens := newTestTokens(t)

	handler := RequireRole(tokens, domainauth.RoleCompany)(http.NotFoundHandler())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Basic abc123")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole_InvalidToken(t *testing.T) {
	t.Parallel()
	tokens := newTestTokens(t)

	handler := RequireRole(tokens, domainauth.RoleCompany)(http.NotFoundHandler())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole_WrongRole(t *testing.T) {
	t.Parallel()
	tokens := newTestTokens(t)

	token, err := tokens.Issue("acct-1", domainauth.RoleCandidate, "user@example.com")
	require.NoError(t, err)

	handler := RequireRole(tokens, domainauth.RoleCompany)(http.NotFoundHandler())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_SetsPrincipal(t *testing.T) {
	t.Parallel()
	tokens := newTestTokens(t)

	token, err := tokens.Issue("acct-1", domainauth.RoleCompany, "hr@example.com")
	require.NoError(t, err)

	var captured *domainauth.Principal
	handler := RequireRole(tokens, domainauth.RoleCompany)(principalEcho(t, &captured))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, captured)
	require.Equal(t, "acct-1", captured.AccountID)
	require.Equal(t, domainauth.RoleCompany, captured.Role)
	require.Equal(t, "hr@example.com", captured.Email)
}

func TestRequireAuth_SetsPrincipal(t *testing.T) {
	t.Parallel()
	tokens := newTestTokens(t)

	token, err := tokens.Issue("acct-9", domainauth.RoleCandidate, "seeker@example.com")
	require.NoError(t, err)

	var captured *domainauth.Principal
	handler := RequireAuth(tokens)(principalEcho(t, &captured))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, captured)
	require.Equal(t, "acct-9", captured.AccountID)
}

func TestRecover_TurnsPanicInto500(t *testing.T) {
	t.Parallel()

	handler := Recover(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	t.Parallel()

	var fromCtx string
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = GetRequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, fromCtx)
	require.Equal(t, fromCtx, w.Header().Get("X-Request-Id"))
}
