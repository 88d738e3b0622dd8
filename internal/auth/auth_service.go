package auth

import (
	"context"

	autherrors "go-careflow/internal/auth/errors"
	"go-careflow/internal/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, resp AuthResponse, err error)

	// Refresh exchanges a valid refresh token for a new access token. The
	// refresh token itself is not rotated.
	Refresh(ctx context.Context, refreshToken string) (newAccessToken string, err error)

	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
}

type service struct {
	repo   user.Repository
	tokens *TokenManager
}

func NewService(repo user.Repository, tokens *TokenManager) Service {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Login(ctx context.Context, username, password string) (string, string, AuthResponse, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if !u.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrUserInactive
	}

	accessToken, refreshToken, err := s.tokens.Issue(u)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return accessToken, refreshToken, mapToAuthResponse(u), nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Verify(refreshToken, TokenTypeRefresh)
	if err != nil {
		return "", autherrors.ErrInvalidRefreshToken
	}

	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		return "", autherrors.ErrInvalidRefreshToken
	}

	// Reload the user so a role or company change takes effect immediately.
	u, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return "", autherrors.ErrUserNotFound
	}
	if !u.IsActive {
		return "", autherrors.ErrUserInactive
	}

	newAccessToken, err := s.tokens.sign(u, TokenTypeAccess, s.tokens.cfg.AccessTTL)
	if err != nil {
		return "", autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	u, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	resp := mapToAuthResponse(u)
	return &resp, nil
}

func mapToAuthResponse(u *user.User) AuthResponse {
	resp := AuthResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Role:     u.Role,
	}
	if u.CompanyID != nil {
		resp.CompanyID = u.CompanyID.String()
	}
	return resp
}
