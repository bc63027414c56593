package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/nguyenvanlong0501/job-portal/internal/core"
	"github.com/nguyenvanlong0501/job-portal/internal/domain/auth"
	"github.com/nguyenvanlong0501/job-portal/internal/domain/model"
	apperrors "github.com/nguyenvanlong0501/job-portal/internal/errors"
	"github.com/nguyenvanlong0501/job-portal/internal/observability/notify"
)

// verificationTokenTTL bounds how long an emailed verification token stays usable.
const verificationTokenTTL = 24 * time.Hour

// minPasswordLength is the weakest password accepted at registration.
const minPasswordLength = 8

// TokenIssuer signs bearer tokens for authenticated accounts.
// Implemented by the jwtauth adapter.
type TokenIssuer interface {
	Issue(accountID string, role auth.Role, email string) (string, error)
}

// AccountServiceOptions groups dependencies for AccountService.
type AccountServiceOptions struct {
	Accounts core.AccountRepository
	Tokens   TokenIssuer
	Notify   NotifyOptions
}

// AccountService handles registration, email verification, and login for both
// candidate and company accounts.
type AccountService struct {
	accounts core.AccountRepository
	tokens   TokenIssuer
	mailer   notify.Mailer
	logger   *slog.Logger
}

// NewAccountService constructs a new AccountService.
func NewAccountService(opts AccountServiceOptions) *AccountService {
	if opts.Accounts == nil {
		panic("AccountService requires an account repository")
	}
	if opts.Tokens == nil {
		panic("AccountService requires a token issuer")
	}
	logger := opts.Notify.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{
		accounts: opts.Accounts,
		tokens:   opts.Tokens,
		mailer:   opts.Notify.Mailer,
		logger:   logger,
	}
}

// RegisterParams carries a registration request. Role selects which side of the
// portal the account joins.
type RegisterParams struct {
	Role     model.AccountRole `json:"role"`
	Name     string            `json:"name"`
	Email    string            `json:"email"`
	Password string            `json:"password"`
	Image    string            `json:"image"`
}

// AuthResult pairs an account with the bearer token issued for it.
type AuthResult struct {
	Account *model.Account `json:"account"`
	Token   string         `json:"token"`
}

// Register creates an unverified account, hashes the password, and emails a
// verification token. A duplicate (role, email) pair surfaces as Conflict.
func (s *AccountService) Register(ctx context.Context, params RegisterParams) (*model.Account, error) {
	if len(params.Password) < minPasswordLength {
		return nil, apperrors.ValidationField("password",
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	token, err := newVerificationToken()
	if err != nil {
		return nil, fmt.Errorf("generate verification token: %w", err)
	}

	req := &model.CreateAccountRequest{
		Role:              params.Role,
		Name:              strings.TrimSpace(params.Name),
		Email:             strings.ToLower(strings.TrimSpace(params.Email)),
		PasswordHash:      string(hash),
		Image:             strings.TrimSpace(params.Image),
		VerificationToken: token,
		TokenExpiresAt:    time.Now().Add(verificationTokenTTL),
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	account, err := s.accounts.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.sendVerificationMail(account, token)
	return account, nil
}

// LoginParams carries a login request. Role disambiguates accounts sharing an
// email address across the two portals.
type LoginParams struct {
	Role     model.AccountRole `json:"role"`
	Email    string            `json:"email"`
	Password string            `json:"password"`
}

// Login checks credentials and issues a bearer token. Unknown accounts and bad
// passwords fail identically; locked and unverified accounts are rejected.
func (s *AccountService) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	account, err := s.accounts.GetByEmail(ctx, params.Role, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, fmt.Errorf("load account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(params.Password)) != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}
	if account.Locked {
		return nil, apperrors.Unauthorized("this account has been locked")
	}
	if !account.IsVerified {
		return nil, apperrors.Unauthorized("please verify your email address first")
	}

	return s.issueFor(account)
}

// Verify redeems an emailed verification token. On success the account is
// verified and logged in.
func (s *AccountService) Verify(ctx context.Context, token string) (*AuthResult, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apperrors.Validation("verification token is required")
	}

	account, err := s.accounts.MarkVerified(ctx, token)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Validation("verification token is invalid or expired")
		}
		return nil, fmt.Errorf("verify account: %w", err)
	}

	return s.issueFor(account)
}

// ResendVerification rotates the pending token and emails it again.
func (s *AccountService) ResendVerification(ctx context.Context, accountID string) error {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("load account: %w", err)
	}
	if account.IsVerified {
		return apperrors.Conflict("this account is already verified")
	}

	token, err := newVerificationToken()
	if err != nil {
		return fmt.Errorf("generate verification token: %w", err)
	}

	account, err = s.accounts.RotateVerificationToken(ctx, core.RotateTokenParams{
		AccountID: accountID,
		Token:     token,
		ExpiresAt: time.Now().Add(verificationTokenTTL),
	})
	if err != nil {
		return fmt.Errorf("rotate verification token: %w", err)
	}

	s.sendVerificationMail(account, token)
	return nil
}

// CheckVerified reports whether the account completed email verification.
func (s *AccountService) CheckVerified(ctx context.Context, accountID string) (bool, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return false, fmt.Errorf("load account: %w", err)
	}
	return account.IsVerified, nil
}

// Get retrieves an account by ID.
func (s *AccountService) Get(ctx context.Context, id string) (*model.Account, error) {
	return s.accounts.GetByID(ctx, id)
}

// SetResume stores the candidate's resume URL.
func (s *AccountService) SetResume(ctx context.Context, accountID, resume string) (*model.Account, error) {
	resume = strings.TrimSpace(resume)
	if resume == "" {
		return nil, apperrors.Validation("resume is required")
	}
	return s.accounts.SetResume(ctx, accountID, resume)
}

func (s *AccountService) issueFor(account *model.Account) (*AuthResult, error) {
	token, err := s.tokens.Issue(account.ID, auth.Role(account.Role), account.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Account: account, Token: token}, nil
}

func (s *AccountService) sendVerificationMail(account *model.Account, token string) {
	sendMailAsync(s.logger, s.mailer, notify.Message{
		To:      account.Email,
		Subject: "Verify your email address",
		Body: fmt.Sprintf("Hi %s,\n\nYour verification code is: %s\n\nIt expires in %d hours.",
			account.Name, token, int(verificationTokenTTL.Hours())),
	})
}

// newVerificationToken returns 32 hex characters from a CSPRNG.
func newVerificationToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
