package segment

import (
	"go-careflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Segment deletion is intentionally not routed; rows in clients, services,
// master data and documents reference segments and no cascade policy exists.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, tokens middleware.TokenVerifier, rbacService middleware.RBACService) {
	segments := r.Group("/segments")
	segments.Use(middleware.Auth(tokens))
	{
		segments.GET("/my",
			middleware.RateLimitByUser(2, 10),
			handler.MySegments,
		)

		segments.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "segments", "create"),
			handler.Create,
		)
		segments.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "segments", "update"),
			handler.Rename,
		)
		segments.GET("/company/:companyId",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "segments", "read"),
			handler.ListByCompany,
		)
	}
}
