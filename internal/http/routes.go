package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/nguyenvanlong0501/job-portal/internal/domain/auth"
	"github.com/nguyenvanlong0501/job-portal/internal/domain/model"
	"github.com/nguyenvanlong0501/job-portal/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Accounts     *service.AccountService
	Jobs         *service.JobService
	Applications *service.ApplicationService
	Admin        *service.AdminService
	Auth         TokenParser
	Tokens       service.TokenIssuer
	AdminLogin   AdminCredentials
	Logger       *slog.Logger
}

// NewRouter creates and configures the HTTP router with middleware applied.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	jobHandlers := &JobHandlers{Svc: services.Jobs}
	userAccounts := &AccountHandlers{Svc: services.Accounts, Role: model.RoleCandidate}
	companyAccounts := &AccountHandlers{Svc: services.Accounts, Role: model.RoleCompany}
	userHandlers := &UserHandlers{Applications: services.Applications, Accounts: services.Accounts}
	companyHandlers := &CompanyHandlers{Jobs: services.Jobs, Applications: services.Applications}
	adminHandlers := &AdminHandlers{Svc: services.Admin, Tokens: services.Tokens, Credentials: services.AdminLogin}

	registerPublicRoutes(mux, jobHandlers)
	registerUserRoutes(mux, userRouteHandlers{Accounts: userAccounts, Users: userHandlers}, services.Auth)
	registerCompanyRoutes(mux, companyRouteHandlers{Accounts: companyAccounts, Companies: companyHandlers}, services.Auth)
	registerAdminRoutes(mux, adminHandlers, services.Auth)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	handler := Logging(logger)(mux)
	handler = RequestID()(handler)
	handler = Recover(logger)(handler)
	return handler
}

func registerPublicRoutes(mux *http.ServeMux, h *JobHandlers) {
	mux.Handle("GET /api/jobs", http.HandlerFunc(h.ListJobs))
	mux.Handle("GET /api/jobs/{id}", http.HandlerFunc(h.GetJob))
}

type userRouteHandlers struct {
	Accounts *AccountHandlers
	Users    *UserHandlers
}

func registerUserRoutes(mux *http.ServeMux, h userRouteHandlers, auth TokenParser) {
	mux.Handle("POST /api/users/register", http.HandlerFunc(h.Accounts.Register))
	mux.Handle("POST /api/users/login", http.HandlerFunc(h.Accounts.Login))
	mux.Handle("POST /api/users/verify", http.HandlerFunc(h.Accounts.Verify))

	candidate := RequireRole(auth, domainauth.RoleCandidate)
	mux.Handle("POST /api/users/verify/resend", candidate(http.HandlerFunc(h.Accounts.ResendVerification)))
	mux.Handle("GET /api/users/verify", candidate(http.HandlerFunc(h.Accounts.CheckVerified)))
	mux.Handle("GET /api/users/me", candidate(http.HandlerFunc(h.Accounts.Me)))
	mux.Handle("POST /api/users/applications", candidate(http.HandlerFunc(h.Users.Apply)))
	mux.Handle("GET /api/users/applications", candidate(http.HandlerFunc(h.Users.MyApplications)))
	mux.Handle("PUT /api/users/resume", candidate(http.HandlerFunc(h.Users.SetResume)))
}

type companyRouteHandlers struct {
	Accounts  *AccountHandlers
	Companies *CompanyHandlers
}

func registerCompanyRoutes(mux *http.ServeMux, h companyRouteHandlers, auth TokenParser) {
	mux.Handle("POST /api/companies/register", http.HandlerFunc(h.Accounts.Register))
	mux.Handle("POST /api/companies/login", http.HandlerFunc(h.Accounts.Login))
	mux.Handle("POST /api/companies/verify", http.HandlerFunc(h.Accounts.Verify))

	company := RequireRole(auth, domainauth.RoleCompany)
	mux.Handle("POST /api/companies/verify/resend", company(http.HandlerFunc(h.Accounts.ResendVerification)))
	mux.Handle("GET /api/companies/verify", company(http.HandlerFunc(h.Accounts.CheckVerified)))
	mux.Handle("GET /api/companies/me", company(http.HandlerFunc(h.Accounts.Me)))

	mux.Handle("POST /api/companies/jobs", company(http.HandlerFunc(h.Companies.CreateJob)))
	mux.Handle("GET /api/companies/jobs", company(http.HandlerFunc(h.Companies.ListMyJobs)))
	mux.Handle("PUT /api/companies/jobs/{id}", company(http.HandlerFunc(h.Companies.UpdateJob)))
	mux.Handle("POST /api/companies/jobs/{id}/visibility", company(http.HandlerFunc(h.Companies.SetJobVisibility)))
	mux.Handle("DELETE /api/companies/jobs/{id}", company(http.HandlerFunc(h.Companies.DeleteJob)))

	mux.Handle("GET /api/companies/applicants", company(http.HandlerFunc(h.Companies.ListApplicants)))
	mux.Handle("POST /api/companies/applications/{id}/status", company(http.HandlerFunc(h.Companies.ChangeApplicationStatus)))
}

func registerAdminRoutes(mux *http.ServeMux, h *AdminHandlers, auth TokenParser) {
	mux.Handle("POST /api/admin/login", http.HandlerFunc(h.Login))

	admin := RequireRole(auth, domainauth.RoleAdmin)
	mux.Handle("GET /api/admin/stats", admin(http.HandlerFunc(h.Stats)))
	mux.Handle("GET /api/admin/accounts", admin(http.HandlerFunc(h.ListAccounts)))
	mux.Handle("POST /api/admin/accounts/{id}/lock", admin(http.HandlerFunc(h.SetAccountLock)))
	mux.Handle("DELETE /api/admin/accounts/{id}", admin(http.HandlerFunc(h.DeleteAccount)))
	mux.Handle("GET /api/admin/jobs", admin(http.HandlerFunc(h.ListJobs)))
	mux.Handle("POST /api/admin/jobs/{id}/approve", admin(http.HandlerFunc(h.SetJobApproval)))
	mux.Handle("DELETE /api/admin/jobs/{id}", admin(http.HandlerFunc(h.DeleteJob)))
}
