package company

import (
	"go-careflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Company management is admin-only. Deletion is intentionally absent: no
// cascade semantics are defined for rows referencing a removed tenant.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, tokens middleware.TokenVerifier, rbacService middleware.RBACService) {
	companies := r.Group("/companies")
	companies.Use(middleware.Auth(tokens))
	{
		companies.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "companies", "create"),
			handler.Create,
		)
		companies.GET("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "companies", "read"),
			handler.List,
		)
		companies.GET("/:id",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "companies", "read"),
			handler.GetByID,
		)
		companies.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "companies", "update"),
			handler.Update,
		)
	}
}
