package auth

import (
	"os"
	"time"

	autherrors "go-careflow/internal/auth/errors"
	"go-careflow/internal/shared/contextutil"
	"go-careflow/internal/user"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims is the signed identity payload. The type field prevents a refresh
// token from being accepted where an access token is required and vice versa.
type Claims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CompanyID string `json:"company_id,omitempty"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

type TokenConfig struct {
	Secret     string
	Issuer     string
	Audience   string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// TokenManager issues and verifies the HS256 access/refresh token pair.
// Verification is stateless; no server-side session store exists.
type TokenManager struct {
	cfg TokenConfig
}

func NewTokenManager(cfg TokenConfig) *TokenManager {
	if cfg.Issuer == "" {
		cfg.Issuer = "careflow"
	}
	if cfg.Audience == "" {
		cfg.Audience = "careflow-api"
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 8 * time.Hour
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	return &TokenManager{cfg: cfg}
}

func NewTokenManagerFromEnv() *TokenManager {
	return NewTokenManager(TokenConfig{
		Secret:   os.Getenv("JWT_SECRET"),
		Issuer:   os.Getenv("JWT_ISSUER"),
		Audience: os.Getenv("JWT_AUDIENCE"),
	})
}

// Issue signs an access/refresh token pair for the user.
func (m *TokenManager) Issue(u *user.User) (accessToken, refreshToken string, err error) {
	accessToken, err = m.sign(u, TokenTypeAccess, m.cfg.AccessTTL)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = m.sign(u, TokenTypeRefresh, m.cfg.RefreshTTL)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (m *TokenManager) sign(u *user.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    u.ID.String(),
		Username:  u.Username,
		Role:      u.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			Audience:  jwt.ClaimStrings{m.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if u.CompanyID != nil {
		claims.CompanyID = u.CompanyID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.cfg.Secret))
}

// Verify parses the token and checks signature, issuer, audience, expiry and
// token type. Every failure collapses into ErrInvalidToken.
func (m *TokenManager) Verify(tokenString, wantType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, autherrors.ErrInvalidToken
			}
			return []byte(m.cfg.Secret), nil
		},
		jwt.WithIssuer(m.cfg.Issuer),
		jwt.WithAudience(m.cfg.Audience),
	)
	if err != nil || !token.Valid {
		return nil, autherrors.ErrInvalidToken
	}

	if claims.TokenType != wantType {
		return nil, autherrors.ErrInvalidToken
	}

	return claims, nil
}

// VerifyAccess satisfies middleware.TokenVerifier.
func (m *TokenManager) VerifyAccess(tokenString string) (contextutil.AuthContext, error) {
	claims, err := m.Verify(tokenString, TokenTypeAccess)
	if err != nil {
		return contextutil.AuthContext{}, err
	}
	return contextutil.AuthContext{
		UserID:    claims.UserID,
		Username:  claims.Username,
		Role:      claims.Role,
		CompanyID: claims.CompanyID,
	}, nil
}
