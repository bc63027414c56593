package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/nguyenvanlong0501/job-portal/internal/core"
	"github.com/nguyenvanlong0501/job-portal/internal/domain/auth"
	"github.com/nguyenvanlong0501/job-portal/internal/domain/model"
	apperrors "github.com/nguyenvanlong0501/job-portal/internal/errors"
	"github.com/nguyenvanlong0501/job-portal/internal/mocks"
	"github.com/nguyenvanlong0501/job-portal/internal/observability/notify"
)

const testAccountID = "acc-123"

type stubIssuer struct {
	token string
	err   error
}

func (s stubIssuer) Issue(string, auth.Role, string) (string, error) {
	return s.token, s.err
}

func newAccountService(t *testing.T, mailer notify.Mailer) (*mocks.MockAccountRepository, *AccountService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	accounts := mocks.NewMockAccountRepository(ctrl)
	svc := NewAccountService(AccountServiceOptions{
		Accounts: accounts,
		Tokens:   stubIssuer{token: "signed-token"},
		Notify:   NotifyOptions{Mailer: mailer},
	})
	return accounts, svc
}

func hashedPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAccountService_Register_Success(t *testing.T) {
	t.Parallel()

	sent := make(chan notify.Message, 1)
	mailer := notify.MailerFunc(func(_ context.Context, msg notify.Message) error {
		sent <- msg
		return nil
	})
	accounts, svc := newAccountService(t, mailer)
	ctx := context.Background()

	accounts.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, req *model.CreateAccountRequest) (*model.Account, error) {
			assert.Equal(t, model.RoleCandidate, req.Role)
			assert.Equal(t, "alice@example.com", req.Email)
			assert.NotEqual(t, "hunter22secret", req.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(req.PasswordHash), []byte("hunter22secret")))
			assert.Len(t, req.VerificationToken, 32)
			token := req.VerificationToken
			return &model.Account{
				ID:                testAccountID,
				Role:              req.Role,
				Name:              req.Name,
				Email:             req.Email,
				VerificationToken: &token,
			}, nil
		}).
		Times(1)

	account, err := svc.Register(ctx, RegisterParams{
		Role:     model.RoleCandidate,
		Name:     "Alice",
		Email:    "  Alice@Example.com ",
		Password: "hunter22secret",
	})
	require.NoError(t, err)
	assert.Equal(t, testAccountID, account.ID)

	select {
	case msg := <-sent:
		assert.Equal(t, "alice@example.com", msg.To)
		assert.Contains(t, msg.Body, *account.VerificationToken)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a verification email")
	}
}

func TestAccountService_Register_ShortPassword(t *testing.T) {
	t.Parallel()
	_, svc := newAccountService(t, nil)

	_, err := svc.Register(context.Background(), RegisterParams{
		Role:     model.RoleCandidate,
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "short",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "password", apperrors.GetField(err))
}

func TestAccountService_Register_InvalidEmail(t *testing.T) {
	t.Parallel()
	_, svc := newAccountService(t, nil)

	_, err := svc.Register(context.Background(), RegisterParams{
		Role:     model.RoleCompany,
		Name:     "Acme",
		Email:    "not-an-email",
		Password: "hunter22secret",
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()
	accounts, svc := newAccountService(t, nil)
	ctx := context.Background()

	accounts.EXPECT().
		Create(ctx, gomock.Any()).
		Return(nil, apperrors.Conflict("An account with this email already exists.")).
		Times(1)

	_, err := svc.Register(ctx, RegisterParams{
		Role:     model.RoleCandidate,
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter22secret",
	})
	assert.True(t, apperrors.IsConflict(err))
}

func TestAccountService_Login_Success(t *testing.T) {
	t.Parallel()
	accounts, svc := newAccountService(t, nil)
	ctx := context.Background()

	accounts.EXPECT().
		GetByEmail(ctx, model.RoleCandidate, "alice@example.com").
		Return(&model.Account{
			ID:           testAccountID,
			Role:         model.RoleCandidate,
			Email:        "alice@example.com",
			PasswordHash: hashedPassword(t, "hunter22secret"),
			IsVerified:   true,
		}, nil).
		Times(1)

	res, err := svc.Login(ctx, LoginParams{
		Role:     model.RoleCandidate,
		Email:    "Alice@Example.com",
		Password: "hunter22secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "signed-token", res.Token)
	assert.Equal(t, testAccountID, res.Account.ID)
}

func TestAccountService_Login_Failures(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name    string
		account *model.Account
		repoErr error
	}{
		{"unknown email", nil, apperrors.NotFound("account")},
		{"wrong password", &model.Account{
			PasswordHash: hashedPassword(t, "different-password"),
			IsVerified:   true,
		}, nil},
		{"locked account", &model.Account{
			PasswordHash: hashedPassword(t, "hunter22secret"),
			IsVerified:   true,
			Locked:       true,
		}, nil},
		{"unverified account", &model.Account{
			PasswordHash: hashedPassword(t, "hunter22secret"),
		}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			accounts, svc := newAccountService(t, nil)
			accounts.EXPECT().
				GetByEmail(ctx, model.RoleCandidate, "alice@example.com").
				Return(tt.account, tt.repoErr).
				Times(1)

			_, err := svc.Login(ctx, LoginParams{
				Role:     model.RoleCandidate,
				Email:    "alice@example.com",
				Password: "hunter22secret",
			})
			require.Error(t, err)
			assert.True(t, apperrors.IsUnauthorized(err))
		})
	}
}

func TestAccountService_Verify_Success(t *testing.T) {
	t.Parallel()
	accounts, svc := newAccountService(t, nil)
	ctx := context.Background()

	accounts.EXPECT().
		MarkVerified(ctx, "tok-123").
		Return(&model.Account{ID: testAccountID, Role: model.RoleCompany, IsVerified: true}, nil).
		Times(1)

	res, err := svc.Verify(ctx, "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", res.Token)
	assert.True(t, res.Account.IsVerified)
}

func TestAccountService_Verify_BadToken(t *testing.T) {
	t.Parallel()
	accounts, svc := newAccountService(t, nil)
	ctx := context.Background()

	accounts.EXPECT().
		MarkVerified(ctx, "tok-stale").
		Return(nil, apperrors.NotFound("account")).
		Times(1)

	_, err := svc.Verify(ctx, "tok-stale")
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Verify(ctx, "")
	assert.True(t, apperrors.IsValidation(err))
}

func TestAccountService_ResendVerification(t *testing.T) {
	t.Parallel()
	accounts, svc := newAccountService(t, nil)
	ctx := context.Background()

	accounts.EXPECT().
		GetByID(ctx, testAccountID).
		Return(&model.Account{ID: testAccountID, Email: "alice@example.com"}, nil).
		Times(1)
	accounts.EXPECT().
		RotateVerificationToken(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, params core.RotateTokenParams) (*model.Account, error) {
			assert.Equal(t, testAccountID, params.AccountID)
			assert.Len(t, params.Token, 32)
			assert.True(t, params.ExpiresAt.After(time.Now()))
			return &model.Account{ID: testAccountID, Email: "alice@example.com"}, nil
		}).
		Times(1)

	require.NoError(t, svc.ResendVerification(ctx, testAccountID))
}

func TestAccountService_ResendVerification_AlreadyVerified(t *testing.T) {
	t.Parallel()
	accounts, svc := newAccountService(t, nil)
	ctx := context.Background()

	accounts.EXPECT().
		GetByID(ctx, testAccountID).
		Return(&model.Account{ID: testAccountID, IsVerified: true}, nil).
		Times(1)

	err := svc.ResendVerification(ctx, testAccountID)
	assert.True(t, apperrors.IsConflict(err))
}

func TestAccountService_CheckVerified(t *testing.T) {
	t.Parallel()
	accounts, svc := newAccountService(t, nil)
	ctx := context.Background()

	accounts.EXPECT().
		GetByID(ctx, testAccountID).
		Return(&model.Account{ID: testAccountID, IsVerified: true}, nil).
		Times(1)

	verified, err := svc.CheckVerified(ctx, testAccountID)
	require.NoError(t, err)
	assert.True(t, verified)
}

func TestAccountService_SetResume(t *testing.T) {
	t.Parallel()
	accounts, svc := newAccountService(t, nil)
	ctx := context.Background()

	accounts.EXPECT().
		SetResume(ctx, testAccountID, "https://cdn.example.com/cv.pdf").
		Return(&model.Account{ID: testAccountID, Resume: "https://cdn.example.com/cv.pdf"}, nil).
		Times(1)

	account, err := svc.SetResume(ctx, testAccountID, " https://cdn.example.com/cv.pdf ")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/cv.pdf", account.Resume)

	_, err = svc.SetResume(ctx, testAccountID, "  ")
	assert.True(t, apperrors.IsValidation(err))
}

func TestAccountService_IssueFailure(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	accounts := mocks.NewMockAccountRepository(ctrl)
	svc := NewAccountService(AccountServiceOptions{
		Accounts: accounts,
		Tokens:   stubIssuer{err: errors.New("keystore offline")},
	})
	ctx := context.Background()

	accounts.EXPECT().
		MarkVerified(ctx, "tok-123").
		Return(&model.Account{ID: testAccountID, Role: model.RoleCandidate}, nil).
		Times(1)

	_, err := svc.Verify(ctx, "tok-123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "issue token")
}
