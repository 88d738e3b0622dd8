package middleware

import (
	"strings"

	"go-careflow/internal/shared/contextutil"
	"go-careflow/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// TokenVerifier validates an access token and yields the caller's identity.
// Implemented by auth.TokenManager.
type TokenVerifier interface {
	VerifyAccess(token string) (contextutil.AuthContext, error)
}

// Auth authenticates the request. Tokens are accepted from the
// Authorization header (preferred) or the token query parameter; the latter
// exists for direct-link document views that cannot set headers.
//
// All verification failures map to the same generic 401 so callers cannot
// probe which check rejected the token.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""

		authHeader := c.GetHeader("Authorization")
		if bearer, found := strings.CutPrefix(authHeader, "Bearer "); found {
			tokenString = bearer
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			response.Error(c, 401, "UNAUTHORIZED", "Authentication is required", nil)
			c.Abort()
			return
		}

		auth, err := verifier.VerifyAccess(tokenString)
		if err != nil {
			response.Error(c, 401, "UNAUTHORIZED", "Invalid or expired token", nil)
			c.Abort()
			return
		}

		ctx := contextutil.WithAuth(c.Request.Context(), auth)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
