package auth_test

import (
	"strings"
	"testing"
	"time"

	"go-careflow/internal/auth"
	"go-careflow/internal/shared/contextutil"
	"go-careflow/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTokenManager(secret string) *auth.TokenManager {
	return auth.NewTokenManager(auth.TokenConfig{
		Secret:     secret,
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	})
}

func testUser() *user.User {
	companyID := uuid.New()
	return &user.User{
		ID:        uuid.New(),
		Username:  "case.worker",
		Role:      contextutil.RoleUser,
		CompanyID: &companyID,
		IsActive:  true,
	}
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	tm := newTokenManager("test-secret")
	u := testUser()

	access, refresh, err := tm.Issue(u)
	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	t.Run("access token carries identity claims", func(t *testing.T) {
		claims, err := tm.Verify(access, auth.TokenTypeAccess)
		assert.NoError(t, err)
		assert.Equal(t, u.ID.String(), claims.UserID)
		assert.Equal(t, u.Username, claims.Username)
		assert.Equal(t, contextutil.RoleUser, claims.Role)
		assert.Equal(t, u.CompanyID.String(), claims.CompanyID)
		assert.Equal(t, auth.TokenTypeAccess, claims.TokenType)
	})

	t.Run("refresh token is rejected where access is required", func(t *testing.T) {
		_, err := tm.Verify(refresh, auth.TokenTypeAccess)
		assert.Error(t, err)
	})

	t.Run("access token is rejected where refresh is required", func(t *testing.T) {
		_, err := tm.Verify(access, auth.TokenTypeRefresh)
		assert.Error(t, err)
	})
}

func TestTokenManager_VerifyAccess(t *testing.T) {
	tm := newTokenManager("test-secret")
	u := testUser()

	access, _, err := tm.Issue(u)
	assert.NoError(t, err)

	authCtx, err := tm.VerifyAccess(access)
	assert.NoError(t, err)
	assert.Equal(t, u.ID.String(), authCtx.UserID)
	assert.Equal(t, u.CompanyID.String(), authCtx.CompanyID)
	assert.False(t, authCtx.IsGlobalAdmin())
}

func TestTokenManager_VerifyAccess_GlobalAdmin(t *testing.T) {
	tm := newTokenManager("test-secret")
	u := &user.User{
		ID:       uuid.New(),
		Username: "root",
		Role:     contextutil.RoleAdmin,
		IsActive: true,
	}

	access, _, err := tm.Issue(u)
	assert.NoError(t, err)

	authCtx, err := tm.VerifyAccess(access)
	assert.NoError(t, err)
	assert.Empty(t, authCtx.CompanyID)
	assert.True(t, authCtx.IsGlobalAdmin())
}

func TestTokenManager_Verify_Rejections(t *testing.T) {
	tm := newTokenManager("test-secret")
	u := testUser()

	access, _, err := tm.Issue(u)
	assert.NoError(t, err)

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(access, ".")
		tampered := parts[0] + "." + parts[1][:len(parts[1])-2] + "xx" + "." + parts[2]

		_, err := tm.Verify(tampered, auth.TokenTypeAccess)
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := newTokenManager("different-secret")
		_, err := other.Verify(access, auth.TokenTypeAccess)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		short := auth.NewTokenManager(auth.TokenConfig{
			Secret:     "test-secret",
			AccessTTL:  time.Nanosecond,
			RefreshTTL: 24 * time.Hour,
		})
		token, _, err := short.Issue(u)
		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
		_, err = tm.Verify(token, auth.TokenTypeAccess)
		assert.Error(t, err)
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := tm.Verify("not-a-jwt", auth.TokenTypeAccess)
		assert.Error(t, err)
	})
}
