package app

import (
	"go-payroll/internal/auth"
	"go-payroll/internal/bonus"
	"go-payroll/internal/compensation"
	"go-payroll/internal/employee"
	"go-payroll/internal/increment"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/rbac"
	"go-payroll/internal/rbac/infra"
	"go-payroll/internal/salary"
	"go-payroll/internal/taxtable"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	compensationRepo := compensation.NewRepository(gormDB)
	incrementRepo := increment.NewRepository(gormDB)
	bonusRepo := bonus.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)
	if err := rbacService.LoadPolicy(); err != nil {
		return err
	}

	engine := salary.NewEngine(taxtable.Current())

	// --- Services ---
	authService := auth.NewService(gormDB, employeeRepo)
	compensationService := compensation.NewService(gormDB, compensationRepo, outboxRepo, engine)
	incrementService := increment.NewService(gormDB, incrementRepo, compensationService, outboxRepo, engine)
	bonusService := bonus.NewService(gormDB, bonusRepo, outboxRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	salaryHandler := salary.NewHandler(engine)
	compensationHandler := compensation.NewHandler(compensationService, rdb)
	incrementHandler := increment.NewHandlerWithRedis(incrementService, rdb)
	bonusHandler := bonus.NewHandlerWithRedis(bonusService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, rbacService)
		salary.RegisterRoutes(api, salaryHandler, rbacService)
		compensation.RegisterRoutes(api, compensationHandler, rbacService, rdb)
		increment.RegisterRoutes(api, incrementHandler, rbacService, rdb)
		bonus.RegisterRoutes(api, bonusHandler, rbacService, rdb)
	}

	return nil
}
