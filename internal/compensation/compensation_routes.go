package compensation

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	group := r.Group("/compensations")
	group.Use(middleware.AuthMiddleware())
	{
		group.POST("",
			middleware.RateLimitByEmployee(rate.Limit(1), 2),
			middleware.RBACAuthorize(rbacService, "compensation", "update"),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		group.GET("/employees/:employee_id/current",
			middleware.RateLimitByEmployee(rate.Limit(5), 10),
			middleware.RBACAuthorize(rbacService, "compensation", "read"),
			handler.GetCurrent,
		)
		group.GET("/employees/:employee_id/history",
			middleware.RateLimitByEmployee(rate.Limit(2), 5),
			middleware.RBACAuthorize(rbacService, "compensation", "read"),
			handler.GetHistory,
		)
		group.GET("/:id",
			middleware.RateLimitByEmployee(rate.Limit(5), 10),
			middleware.RBACAuthorize(rbacService, "compensation", "read"),
			handler.GetById,
		)
		group.DELETE("/:id",
			middleware.RateLimitByEmployee(rate.Limit(0.5), 1),
			middleware.RBACAuthorize(rbacService, "compensation", "update"),
			handler.Delete,
		)
	}
}
