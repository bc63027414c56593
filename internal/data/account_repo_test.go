package data

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenvanlong0501/job-portal/internal/core"
	"github.com/nguyenvanlong0501/job-portal/internal/domain/model"
	apperrors "github.com/nguyenvanlong0501/job-portal/internal/errors"
	"github.com/nguyenvanlong0501/job-portal/internal/testutil"
)

func TestAccountRepo_Create_Get_Delete(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAccountRepo(db)

		email := fmt.Sprintf("alice-%d@example.com", time.Now().UnixNano())
		acc, err := repo.Create(ctx, &model.CreateAccountRequest{
			Role:              model.RoleCandidate,
			Name:              "Alice",
			Email:             email,
			PasswordHash:      "hash",
			VerificationToken: "tok-123",
			TokenExpiresAt:    time.Now().Add(24 * time.Hour),
		})
		require.NoError(t, err)
		require.NotEmpty(t, acc.ID)
		assert.False(t, acc.IsVerified)
		assert.False(t, acc.Locked)
		require.NotNil(t, acc.VerificationToken)
		assert.Equal(t, "tok-123", *acc.VerificationToken)
		require.NotNil(t, acc.TokenExpiresAt)

		got, err := repo.GetByID(ctx, acc.ID)
		require.NoError(t, err)
		assert.Equal(t, acc.Email, got.Email)

		byEmail, err := repo.GetByEmail(ctx, model.RoleCandidate, email)
		require.NoError(t, err)
		assert.Equal(t, acc.ID, byEmail.ID)

		// role is part of the lookup key
		_, err = repo.GetByEmail(ctx, model.RoleCompany, email)
		assert.True(t, apperrors.IsNotFound(err))

		ok, err := repo.Delete(ctx, acc.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestAccountRepo_Create_DuplicateEmailPerRole(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAccountRepo(db)

		email := fmt.Sprintf("dup-%d@example.com", time.Now().UnixNano())
		_, err := repo.Create(ctx, &model.CreateAccountRequest{
			Role: model.RoleCandidate, Name: "A", Email: email, PasswordHash: "x",
		})
		require.NoError(t, err)

		_, err = repo.Create(ctx, &model.CreateAccountRequest{
			Role: model.RoleCandidate, Name: "B", Email: email, PasswordHash: "y",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))

		// the same address may register the other role
		_, err = repo.Create(ctx, &model.CreateAccountRequest{
			Role: model.RoleCompany, Name: "B Co", Email: email, PasswordHash: "y",
		})
		require.NoError(t, err)
	})
}

func TestAccountRepo_Verification(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAccountRepo(db)

		token := fmt.Sprintf("tok-%d", time.Now().UnixNano())
		acc, err := repo.Create(ctx, &model.CreateAccountRequest{
			Role:              model.RoleCandidate,
			Name:              "Bob",
			Email:             fmt.Sprintf("bob-%d@example.com", time.Now().UnixNano()),
			PasswordHash:      "hash",
			VerificationToken: token,
			TokenExpiresAt:    time.Now().Add(24 * time.Hour),
		})
		require.NoError(t, err)

		rotated, err := repo.RotateVerificationToken(ctx, core.RotateTokenParams{
			AccountID: acc.ID,
			Token:     "tok-new",
			ExpiresAt: time.Now().Add(24 * time.Hour),
		})
		require.NoError(t, err)
		require.NotNil(t, rotated.VerificationToken)
		assert.Equal(t, "tok-new", *rotated.VerificationToken)

		// the rotated-away token no longer verifies
		_, err = repo.MarkVerified(ctx, token)
		assert.True(t, apperrors.IsNotFound(err))

		verified, err := repo.MarkVerified(ctx, "tok-new")
		require.NoError(t, err)
		assert.True(t, verified.IsVerified)
		assert.Nil(t, verified.VerificationToken)
		assert.Nil(t, verified.TokenExpiresAt)

		// rotation refuses verified accounts
		_, err = repo.RotateVerificationToken(ctx, core.RotateTokenParams{
			AccountID: acc.ID,
			Token:     "tok-again",
			ExpiresAt: time.Now().Add(24 * time.Hour),
		})
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestAccountRepo_MarkVerified_ExpiredToken(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAccountRepo(db)

		token := fmt.Sprintf("tok-%d", time.Now().UnixNano())
		_, err := repo.Create(ctx, &model.CreateAccountRequest{
			Role:              model.RoleCandidate,
			Name:              "Carol",
			Email:             fmt.Sprintf("carol-%d@example.com", time.Now().UnixNano()),
			PasswordHash:      "hash",
			VerificationToken: token,
			TokenExpiresAt:    time.Now().Add(-time.Hour),
		})
		require.NoError(t, err)

		_, err = repo.MarkVerified(ctx, token)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestAccountRepo_Lock_Resume_Count(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAccountRepo(db)

		acc := createTestCandidate(t, db)
		_ = createTestCompany(t, db)

		ok, err := repo.SetLocked(ctx, acc.ID, true)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := repo.GetByID(ctx, acc.ID)
		require.NoError(t, err)
		assert.True(t, got.Locked)

		withResume, err := repo.SetResume(ctx, acc.ID, "https://cdn.example.com/resume.pdf")
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/resume.pdf", withResume.Resume)

		users, err := repo.Count(ctx, model.RoleCandidate)
		require.NoError(t, err)
		assert.Equal(t, 1, users)

		companies, err := repo.Count(ctx, model.RoleCompany)
		require.NoError(t, err)
		assert.Equal(t, 1, companies)

		list, err := repo.List(ctx, model.RoleCandidate)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, acc.ID, list[0].ID)
	})
}
