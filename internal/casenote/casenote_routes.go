package casenote

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
	notes := r.Group("/case-notes")
	notes.Use(middleware.Auth(tokens))
	notes.Use(middleware.RequireSegmentAccess(directory))
	{
		notes.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "case-notes", "create"),
			handler.Create,
		)
		notes.GET("",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "case-notes", "read"),
			middleware.ResolveCompanySegments(directory),
			handler.ListByClient,
		)
		notes.DELETE("/:id",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "case-notes", "delete"),
			handler.Delete,
		)
	}
}
