package httpx

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nguyenvanlong0501/job-portal/internal/domain/model"
	apperrors "github.com/nguyenvanlong0501/job-portal/internal/errors"
)

const testCompanyBearer = "company-1"

func companyRequest(t *testing.T, f *routerFixture, method, target string, body any) *http.Request {
	t.Helper()
	r := jsonRequest(t, method, target, body)
	r.Header.Set("Authorization", f.bearerFor(t, testCompanyBearer, "company"))
	return r
}

func TestCompanyHandlers_CreateJob(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	f.jobs.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *model.CreateJobRequest) (*model.Job, error) {
			require.Equal(t, testCompanyBearer, req.CompanyID)
			require.Equal(t, 1, req.Quantity) // default headcount
			return &model.Job{ID: "job-1", CompanyID: req.CompanyID, Title: req.Title, Quantity: req.Quantity}, nil
		})

	w := f.do(t, companyRequest(t, f, http.MethodPost, "/api/companies/jobs", map[string]any{
		"title":       "Backend Engineer",
		"description": "Build APIs",
		"location":    "Hanoi",
		"level":       "Senior",
		"category":    "Engineering",
		"salary":      90000,
	}))

	require.Equal(t, http.StatusCreated, w.Code)
	job := decodeBody[*model.Job](t, w)
	require.Equal(t, "job-1", job.ID)
}

func TestCompanyHandlers_CreateJob_RequiresCompanyRole(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	r := jsonRequest(t, http.MethodPost, "/api/companies/jobs", map[string]any{"title": "x"})
	r.Header.Set("Authorization", f.bearerFor(t, "acct-1", "candidate"))
	w := f.do(t, r)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestCompanyHandlers_CreateJob_Invalid(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	w := f.do(t, companyRequest(t, f, http.MethodPost, "/api/companies/jobs", map[string]any{
		"title": "Backend Engineer",
	}))

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompanyHandlers_UpdateJob(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	owned := &model.Job{ID: "job-1", CompanyID: testCompanyBearer, Title: "Old", Quantity: 1, Visible: true}
	f.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(owned, nil)
	f.jobs.EXPECT().
		Update(gomock.Any(), "job-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req model.UpdateJobRequest) (*model.Job, error) {
			require.NotNil(t, req.Title)
			updated := *owned
			updated.Title = *req.Title
			return &updated, nil
		})

	w := f.do(t, companyRequest(t, f, http.MethodPut, "/api/companies/jobs/job-1", map[string]any{
		"title": "New Title",
	}))

	require.Equal(t, http.StatusOK, w.Code)
	job := decodeBody[*model.Job](t, w)
	require.Equal(t, "New Title", job.Title)
}

func TestCompanyHandlers_UpdateJob_NotOwner(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	other := &model.Job{ID: "job-1", CompanyID: "someone-else", Title: "Old"}
	f.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(other, nil)

	w := f.do(t, companyRequest(t, f, http.MethodPut, "/api/companies/jobs/job-1", map[string]any{
		"title": "New Title",
	}))

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCompanyHandlers_SetJobVisibility(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	owned := &model.Job{ID: "job-1", CompanyID: testCompanyBearer, Visible: true}
	f.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(owned, nil)
	f.jobs.EXPECT().SetVisibility(gomock.Any(), "job-1", false).Return(true, nil)

	w := f.do(t, companyRequest(t, f, http.MethodPost, "/api/companies/jobs/job-1/visibility", map[string]any{
		"visible": false,
	}))

	require.Equal(t, http.StatusOK, w.Code)
}

func TestCompanyHandlers_DeleteJob(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	owned := &model.Job{ID: "job-1", CompanyID: testCompanyBearer}
	f.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(owned, nil)
	f.jobs.EXPECT().Delete(gomock.Any(), "job-1").Return(true, nil)

	w := f.do(t, companyRequest(t, f, http.MethodDelete, "/api/companies/jobs/job-1", nil))

	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestCompanyHandlers_ListMyJobs(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	f.jobs.EXPECT().
		ListByCompany(gomock.Any(), testCompanyBearer).
		Return([]*model.JobWithApplicantCount{
			{Job: model.Job{ID: "job-1", CompanyID: testCompanyBearer}, Applicants: 3},
		}, nil)

	w := f.do(t, companyRequest(t, f, http.MethodGet, "/api/companies/jobs", nil))

	require.Equal(t, http.StatusOK, w.Code)
	jobs := decodeBody[[]*model.JobWithApplicantCount](t, w)
	require.Len(t, jobs, 1)
	require.Equal(t, 3, jobs[0].Applicants)
}

func TestCompanyHandlers_ListApplicants(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	f.apps.EXPECT().
		ListByCompany(gomock.Any(), testCompanyBearer).
		Return([]*model.ApplicationDetail{
			{Application: model.Application{ID: "app-1", CompanyID: testCompanyBearer}, ApplicantName: "Alice"},
		}, nil)

	w := f.do(t, companyRequest(t, f, http.MethodGet, "/api/companies/applicants", nil))

	require.Equal(t, http.StatusOK, w.Code)
	apps := decodeBody[[]*model.ApplicationDetail](t, w)
	require.Len(t, apps, 1)
	require.Equal(t, "Alice", apps[0].ApplicantName)
}

func TestCompanyHandlers_ChangeApplicationStatus_ConsumesSlot(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	app := &model.Application{ID: "app-1", JobID: "job-1", UserID: "user-1", CompanyID: testCompanyBearer, Status: "Pending"}
	accepted := *app
	accepted.Status = "Accepted"

	f.apps.EXPECT().GetByID(gomock.Any(), "app-1").Return(app, nil)
	f.jobs.EXPECT().
		ConsumeSlot(gomock.Any(), "job-1").
		Return(&model.Job{ID: "job-1", CompanyID: testCompanyBearer, Quantity: 1, Visible: true}, nil)
	f.apps.EXPECT().UpdateStatus(gomock.Any(), "app-1", "Accepted").Return(&accepted, nil)

	w := f.do(t, companyRequest(t, f, http.MethodPost, "/api/companies/applications/app-1/status", map[string]any{
		"status": "Accepted",
	}))

	require.Equal(t, http.StatusOK, w.Code)
	result := decodeBody[*model.StatusChangeResult](t, w)
	require.Equal(t, "Accepted", result.Application.Status)
	require.NotNil(t, result.Job)
	require.Equal(t, 1, result.Job.Quantity)
}

func TestCompanyHandlers_ChangeApplicationStatus_NoSlots(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	app := &model.Application{ID: "app-1", JobID: "job-1", UserID: "user-1", CompanyID: testCompanyBearer, Status: "Pending"}
	f.apps.EXPECT().GetByID(gomock.Any(), "app-1").Return(app, nil)
	f.jobs.EXPECT().ConsumeSlot(gomock.Any(), "job-1").Return(nil, apperrors.NotFound("job"))

	w := f.do(t, companyRequest(t, f, http.MethodPost, "/api/companies/applications/app-1/status", map[string]any{
		"status": "Accepted",
	}))

	require.Equal(t, http.StatusConflict, w.Code)
	body := decodeBody[map[string]string](t, w)
	require.Contains(t, body["message"], "no remaining openings")
}

func TestCompanyHandlers_ChangeApplicationStatus_NotOwner(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	app := &model.Application{ID: "app-1", JobID: "job-1", UserID: "user-1", CompanyID: "someone-else", Status: "Pending"}
	f.apps.EXPECT().GetByID(gomock.Any(), "app-1").Return(app, nil)

	w := f.do(t, companyRequest(t, f, http.MethodPost, "/api/companies/applications/app-1/status", map[string]any{
		"status": "Rejected",
	}))

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
