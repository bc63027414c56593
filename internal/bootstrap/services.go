package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/nguyenvanlong0501/job-portal/config"
	"github.com/nguyenvanlong0501/job-portal/internal/adapters/jwtauth"
	"github.com/nguyenvanlong0501/job-portal/internal/data"
	"github.com/nguyenvanlong0501/job-portal/internal/observability/notify"
	smtpnotify "github.com/nguyenvanlong0501/job-portal/internal/observability/notify/smtp"
	"github.com/nguyenvanlong0501/job-portal/internal/service"
)

// ServiceContainer holds all constructed services and shared adapters.
type ServiceContainer struct {
	Accounts     *service.AccountService
	Jobs         *service.JobService
	Applications *service.ApplicationService
	Admin        *service.AdminService
	Tokens       *jwtauth.Manager
}

// ServicesConfig contains dependencies for BuildServices.
type ServicesConfig struct {
	Config *config.AppConfig
	DB     *sql.DB
	Redis  redis.UniversalClient
	Logger *slog.Logger
}

// BuildServices constructs the repositories, adapters, and services.
func BuildServices(cfg ServicesConfig) (*ServiceContainer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tokens, err := jwtauth.NewManager(jwtauth.Options{
		Secret: []byte(cfg.Config.Auth.JWTSecret),
		Issuer: cfg.Config.Auth.Issuer,
		TTL:    cfg.Config.Auth.TokenTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("build token manager: %w", err)
	}

	mailer, err := buildMailer(cfg.Config.SMTP, logger)
	if err != nil {
		return nil, err
	}

	accountRepo := data.NewAccountRepo(cfg.DB)
	jobRepo := data.NewJobRepo(cfg.DB)
	appRepo := data.NewApplicationRepo(cfg.DB)
	cacheRepo := data.NewRedisCacheRepo(cfg.Redis)

	notifyOpts := service.NotifyOptions{Mailer: mailer, Logger: logger}

	inventory := service.NewInventoryService(service.InventoryServiceOptions{
		Jobs:   jobRepo,
		Logger: logger,
	})
	jobs := service.NewJobService(service.JobServiceOptions{
		Jobs:     jobRepo,
		Cache:    cacheRepo,
		CacheTTL: cfg.Config.Cache.PublicListingTTL,
		Logger:   logger,
	})
	applications := service.NewApplicationService(service.ApplicationServiceOptions{
		Repos:     service.ApplicationRepositories{Apps: appRepo, Jobs: jobRepo},
		Inventory: inventory,
		Notify:    notifyOpts,
	})
	accounts := service.NewAccountService(service.AccountServiceOptions{
		Accounts: accountRepo,
		Tokens:   tokens,
		Notify:   notifyOpts,
	})
	admin := service.NewAdminService(service.AdminServiceOptions{
		Repos:  service.AdminRepositories{Accounts: accountRepo, Jobs: jobRepo, Apps: appRepo},
		Cache:  cacheRepo,
		Logger: logger,
	})

	return &ServiceContainer{
		Accounts:     accounts,
		Jobs:         jobs,
		Applications: applications,
		Admin:        admin,
		Tokens:       tokens,
	}, nil
}

// buildMailer constructs the SMTP sink, or a discard sink when email is not
// configured so verification flows still work in development.
//
//nolint:ireturn // the mailer is consumed through the notify.Mailer interface.
func buildMailer(cfg config.SMTPConfig, logger *slog.Logger) (notify.Mailer, error) {
	if !cfg.Enabled() {
		logger.Warn("SMTP not configured; outbound email disabled")
		return notify.Discard, nil
	}

	client, err := smtpnotify.NewClient(smtpnotify.Config{
		Host:       cfg.Host,
		Port:       cfg.Port,
		Username:   cfg.Username,
		Password:   cfg.Password,
		From:       cfg.From,
		RetryLimit: cfg.RetryLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("build smtp client: %w", err)
	}
	return client, nil
}
