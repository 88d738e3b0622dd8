package user

import (
	"go-careflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

// User administration is admin-only; regular users never touch these routes.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, tokens middleware.TokenVerifier, rbacService middleware.RBACService) {
	users := r.Group("/users")
	users.Use(middleware.Auth(tokens))
	{
		users.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "users", "create"),
			handler.Create,
		)
		users.GET("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "users", "read"),
			handler.List,
		)
		users.GET("/:id",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "users", "read"),
			handler.GetByID,
		)
		users.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "users", "update"),
			handler.Update,
		)
	}
}
