package clientservice

import (
	"go-careflow/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	tokens middleware.TokenVerifier,
	rbacService middleware.RBACService,
	directory middleware.SegmentDirectory,
	rdb *redis.Client,
) {
	services := r.Group("/client-services")
	services.Use(middleware.Auth(tokens))
	services.Use(middleware.RequireSegmentAccess(directory))
	{
		services.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.Idempotency(rdb),
			middleware.RBACAuthorize(rbacService, "client-services", "create"),
			handler.Create,
		)
		services.GET("",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "client-services", "read"),
			middleware.ResolveCompanySegments(directory),
			handler.List,
		)
		services.GET("/:id",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "client-services", "read"),
			middleware.ResolveCompanySegments(directory),
			handler.GetByID,
		)
		services.PATCH("/:id/status",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "client-services", "update"),
			handler.UpdateStatus,
		)
	}
}
