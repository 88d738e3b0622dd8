package masterdata

import (
	"go-careflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	tokens middleware.TokenVerifier,
	rbacService middleware.RBACService,
	directory middleware.SegmentDirectory,
) {
	md := r.Group("/master-data")
	md.Use(middleware.Auth(tokens))
	md.Use(middleware.RequireSegmentAccess(directory))
	{
		md.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "masterdata", "create"),
			handler.Create,
		)
		md.GET("",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "masterdata", "read"),
			middleware.ResolveCompanySegments(directory),
			handler.List,
		)
		md.GET("/verify",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "masterdata", "read"),
			handler.VerifyCombination,
		)
		md.GET("/:id",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "masterdata", "read"),
			handler.GetByID,
		)
		md.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "masterdata", "update"),
			handler.Update,
		)
		md.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "masterdata", "delete"),
			handler.Delete,
		)
	}
}
