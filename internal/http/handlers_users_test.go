package httpx

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nguyenvanlong0501/job-portal/internal/domain/model"
	apperrors "github.com/nguyenvanlong0501/job-portal/internal/errors"
)

const testCandidateBearer = "user-1"

func candidateRequest(t *testing.T, f *routerFixture, method, target string, body any) *http.Request {
	t.Helper()
	r := jsonRequest(t, method, target, body)
	r.Header.Set("Authorization", f.bearerFor(t, testCandidateBearer, "candidate"))
	return r
}

func TestUserHandlers_Apply(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	job := publicJob("job-1")
	f.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(job, nil)
	f.apps.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(&model.Application{ID: "app-1", JobID: "job-1", UserID: testCandidateBearer, CompanyID: job.CompanyID, Status: "Pending"}, nil)

	w := f.do(t, candidateRequest(t, f, http.MethodPost, "/api/users/applications", map[string]string{
		"job_id": "job-1",
	}))

	require.Equal(t, http.StatusCreated, w.Code)
	app := decodeBody[*model.Application](t, w)
	require.Equal(t, "Pending", app.Status)
}

func TestUserHandlers_Apply_RequiresAuth(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	w := f.do(t, jsonRequest(t, http.MethodPost, "/api/users/applications", map[string]string{"job_id": "job-1"}))

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserHandlers_Apply_MissingJobID(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	w := f.do(t, candidateRequest(t, f, http.MethodPost, "/api/users/applications", map[string]string{}))

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandlers_Apply_Duplicate(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	job := publicJob("job-1")
	f.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(job, nil)
	f.apps.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, apperrors.Conflict("you have already applied for this job"))

	w := f.do(t, candidateRequest(t, f, http.MethodPost, "/api/users/applications", map[string]string{
		"job_id": "job-1",
	}))

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestUserHandlers_MyApplications(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	f.apps.EXPECT().
		ListByUser(gomock.Any(), testCandidateBearer).
		Return([]*model.ApplicationDetail{
			{Application: model.Application{ID: "app-1", UserID: testCandidateBearer}, JobTitle: "Backend Engineer"},
		}, nil)

	w := f.do(t, candidateRequest(t, f, http.MethodGet, "/api/users/applications", nil))

	require.Equal(t, http.StatusOK, w.Code)
	apps := decodeBody[[]*model.ApplicationDetail](t, w)
	require.Len(t, apps, 1)
	require.Equal(t, "Backend Engineer", apps[0].JobTitle)
}

func TestUserHandlers_SetResume(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	f.accounts.EXPECT().
		SetResume(gomock.Any(), testCandidateBearer, "https://cdn.example.com/alice.pdf").
		Return(&model.Account{ID: testCandidateBearer, Role: model.RoleCandidate, Resume: "https://cdn.example.com/alice.pdf"}, nil)

	w := f.do(t, candidateRequest(t, f, http.MethodPut, "/api/users/resume", map[string]string{
		"resume": "https://cdn.example.com/alice.pdf",
	}))

	require.Equal(t, http.StatusOK, w.Code)
	acct := decodeBody[*model.Account](t, w)
	require.Equal(t, "https://cdn.example.com/alice.pdf", acct.Resume)
}

func TestUserHandlers_SetResume_Empty(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	w := f.do(t, candidateRequest(t, f, http.MethodPut, "/api/users/resume", map[string]string{
		"resume": "   ",
	}))

	require.Equal(t, http.StatusBadRequest, w.Code)
}
