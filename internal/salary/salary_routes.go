package salary

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	group := r.Group("/salary")
	group.Use(middleware.AuthMiddleware())
	{
		group.POST("/compute", middleware.RBACAuthorize(rbacService, "compensation", "read"), handler.Compute)
	}
}
