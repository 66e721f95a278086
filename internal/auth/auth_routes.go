package auth

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	group := r.Group("/auth")
	{
		group.POST("/login", middleware.RateLimitByIP(rate.Limit(5), 10), handler.Login)
		group.POST("/change-password", middleware.AuthMiddleware(), handler.ChangePassword)
		group.POST("/temporary-password",
			middleware.AuthMiddleware(),
			middleware.RBACAuthorize(rbacService, "credential", "manage"),
			handler.SetTemporaryPassword,
		)
	}
}
