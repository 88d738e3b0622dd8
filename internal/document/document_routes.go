package document

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
	docs := r.Group("/documents")
	docs.Use(middleware.Auth(tokens))
	docs.Use(middleware.RequireSegmentAccess(directory))
	{
		docs.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "documents", "create"),
			middleware.ResolveCompanySegments(directory),
			handler.Upload,
		)
		docs.GET("",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "documents", "read"),
			middleware.ResolveCompanySegments(directory),
			handler.ListByClient,
		)
		docs.GET("/:id",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "documents", "read"),
			middleware.ResolveCompanySegments(directory),
			handler.GetByID,
		)
		docs.GET("/:id/view",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "documents", "read"),
			middleware.ResolveCompanySegments(directory),
			handler.View,
		)
	}
}
