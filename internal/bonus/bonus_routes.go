package bonus

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
	group := r.Group("/bonuses")
	group.Use(middleware.AuthMiddleware())
	{
		group.POST("",
			middleware.RateLimitByEmployee(rate.Limit(1), 2),
			middleware.RBACAuthorize(rbacService, "bonus", "update"),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		group.GET("",
			middleware.RateLimitByEmployee(rate.Limit(2), 5),
			middleware.RBACAuthorize(rbacService, "bonus", "read"),
			handler.GetByStatus,
		)
		group.GET("/employees/:employee_id",
			middleware.RateLimitByEmployee(rate.Limit(2), 5),
			middleware.RBACAuthorize(rbacService, "bonus", "read"),
			handler.GetByEmployee,
		)
		group.GET("/:id",
			middleware.RateLimitByEmployee(rate.Limit(5), 10),
			middleware.RBACAuthorize(rbacService, "bonus", "read"),
			handler.GetById,
		)
		group.PUT("/:id",
			middleware.RateLimitByEmployee(rate.Limit(1), 2),
			middleware.RBACAuthorize(rbacService, "bonus", "update"),
			handler.Update,
		)
		group.POST("/:id/approve",
			middleware.RateLimitByEmployee(rate.Limit(0.5), 1),
			middleware.RBACAuthorize(rbacService, "bonus", "approve"),
			handler.Approve,
		)
		group.POST("/:id/pay",
			middleware.RateLimitByEmployee(rate.Limit(0.5), 1),
			middleware.RBACAuthorize(rbacService, "bonus", "approve"),
			middleware.Idempotency(rdb),
			handler.MarkPaid,
		)
		group.POST("/:id/cancel",
			middleware.RateLimitByEmployee(rate.Limit(0.5), 1),
			middleware.RBACAuthorize(rbacService, "bonus", "approve"),
			handler.Cancel,
		)
		group.DELETE("/:id",
			middleware.RateLimitByEmployee(rate.Limit(0.5), 1),
			middleware.RBACAuthorize(rbacService, "bonus", "update"),
			handler.Delete,
		)
	}
}
