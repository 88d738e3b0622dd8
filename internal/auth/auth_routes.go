package auth

import (
	"go-careflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, tokens *TokenManager) {
	authGroup := r.Group("/auth")
	{
		// Login is the main brute-force target; throttle by IP.
		authGroup.POST("/login", middleware.RateLimitByIP(1, 5), handler.Login)
		authGroup.POST("/refresh", middleware.RateLimitByIP(1, 5), handler.Refresh)

		authGroup.GET("/me",
			middleware.Auth(tokens),
			middleware.RateLimitByUser(2, 10),
			handler.GetMe,
		)
	}
}
