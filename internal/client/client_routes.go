package client

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
	clients := r.Group("/clients")
	clients.Use(middleware.Auth(tokens))
	clients.Use(middleware.RequireSegmentAccess(directory))
	{
		clients.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "clients", "create"),
			handler.Create,
		)
		clients.GET("",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "clients", "read"),
			middleware.ResolveCompanySegments(directory),
			handler.List,
		)
		clients.GET("/:id",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "clients", "read"),
			middleware.ResolveCompanySegments(directory),
			handler.GetByID,
		)
		clients.PUT("/:id",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "clients", "update"),
			handler.Update,
		)
	}
}
