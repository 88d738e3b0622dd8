package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-careflow/internal/auth"
	autherrors "go-careflow/internal/auth/errors"
	"go-careflow/internal/shared/contextutil"
	"go-careflow/internal/user"
	userMock "go-careflow/internal/user/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

type authDeps struct {
	service auth.Service
	tokens  *auth.TokenManager
	repo    *userMock.MockRepository
}

func setupAuthTest(t *testing.T) *authDeps {
	ctrl := gomock.NewController(t)
	repo := userMock.NewMockRepository(ctrl)
	tokens := auth.NewTokenManager(auth.TokenConfig{
		Secret:     "unit-test-secret",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	})

	return &authDeps{
		service: auth.NewService(repo, tokens),
		tokens:  tokens,
		repo:    repo,
	}
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(h)
}

func TestAuthService_Login(t *testing.T) {
	deps := setupAuthTest(t)
	ctx := context.Background()

	companyID := uuid.New()
	u := &user.User{
		ID:        uuid.New(),
		Username:  "case.worker",
		Password:  hashed(t, "s3cret"),
		Role:      contextutil.RoleUser,
		CompanyID: &companyID,
		IsActive:  true,
	}

	t.Run("valid credentials return a token pair", func(t *testing.T) {
		deps.repo.EXPECT().GetByUsername(ctx, "case.worker").Return(u, nil)

		access, refresh, resp, err := deps.service.Login(ctx, "case.worker", "s3cret")
		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, u.ID.String(), resp.ID)

		claims, err := deps.tokens.Verify(access, auth.TokenTypeAccess)
		assert.NoError(t, err)
		assert.Equal(t, companyID.String(), claims.CompanyID)
	})

	t.Run("wrong password", func(t *testing.T) {
		deps.repo.EXPECT().GetByUsername(ctx, "case.worker").Return(u, nil)

		_, _, _, err := deps.service.Login(ctx, "case.worker", "wrong")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		deps.repo.EXPECT().GetByUsername(ctx, "ghost").Return(nil, errors.New("record not found"))

		_, _, _, err := deps.service.Login(ctx, "ghost", "s3cret")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		inactive := *u
		inactive.IsActive = false
		deps.repo.EXPECT().GetByUsername(ctx, "case.worker").Return(&inactive, nil)

		_, _, _, err := deps.service.Login(ctx, "case.worker", "s3cret")
		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	deps := setupAuthTest(t)
	ctx := context.Background()

	u := &user.User{
		ID:       uuid.New(),
		Username: "case.worker",
		Role:     contextutil.RoleUser,
		IsActive: true,
	}

	_, refresh, err := deps.tokens.Issue(u)
	assert.NoError(t, err)

	t.Run("valid refresh yields a fresh access token", func(t *testing.T) {
		deps.repo.EXPECT().GetByID(ctx, u.ID).Return(u, nil)

		access, err := deps.service.Refresh(ctx, refresh)
		assert.NoError(t, err)

		claims, err := deps.tokens.Verify(access, auth.TokenTypeAccess)
		assert.NoError(t, err)
		assert.Equal(t, u.ID.String(), claims.UserID)
	})

	t.Run("access token cannot be used as refresh token", func(t *testing.T) {
		access, _, err := deps.tokens.Issue(u)
		assert.NoError(t, err)

		_, err = deps.service.Refresh(ctx, access)
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("refresh reflects a role change on reload", func(t *testing.T) {
		promoted := *u
		promoted.Role = contextutil.RoleAdmin
		deps.repo.EXPECT().GetByID(ctx, u.ID).Return(&promoted, nil)

		access, err := deps.service.Refresh(ctx, refresh)
		assert.NoError(t, err)

		claims, err := deps.tokens.Verify(access, auth.TokenTypeAccess)
		assert.NoError(t, err)
		assert.Equal(t, contextutil.RoleAdmin, claims.Role)
	})

	t.Run("deactivated user cannot refresh", func(t *testing.T) {
		inactive := *u
		inactive.IsActive = false
		deps.repo.EXPECT().GetByID(ctx, u.ID).Return(&inactive, nil)

		_, err := deps.service.Refresh(ctx, refresh)
		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})
}
