package app

import (
	"go-hr-portal/internal/attendance"
	"go-hr-portal/internal/auth"
	"go-hr-portal/internal/auth/token"
	"go-hr-portal/internal/company"
	"go-hr-portal/internal/config"
	"go-hr-portal/internal/development"
	"go-hr-portal/internal/document"
	"go-hr-portal/internal/employee"
	"go-hr-portal/internal/leave"
	"go-hr-portal/internal/messaging/kafka"
	"go-hr-portal/internal/middleware"
	"go-hr-portal/internal/rbac"
	"go-hr-portal/internal/rbac/infra"
	"go-hr-portal/internal/review"
	"go-hr-portal/internal/shared/counter"
	"go-hr-portal/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	gormDB *gorm.DB,
	rdb *redis.Client,
	log *zap.Logger,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	developmentRepo := development.NewRepository(gormDB)
	documentRepo := document.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)
	reviewRepo := review.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	tokens := token.NewManager(cfg.Auth)

	// --- Services ---
	attendanceService := attendance.NewService(gormDB, attendanceRepo, log)
	authService := auth.NewService(gormDB, userRepo, companyRepo, employeeRepo, tokens, log)
	companyService := company.NewService(companyRepo, log)
	developmentService := development.NewService(developmentRepo, log)
	documentService := document.NewService(documentRepo, log)
	employeeService := employee.NewService(gormDB, employeeRepo, userRepo, counterRepo, outboxRepo, rdb, log)
	leaveService := leave.NewService(gormDB, leaveRepo, outboxRepo, log)
	reviewService := review.NewService(gormDB, reviewRepo, log)
	userService := user.NewService(userRepo, log)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService, rbacService, log)
	authHandler := auth.NewHandler(authService, auth.CookieSettings{
		Secure:     cfg.Auth.SecureCookies,
		AccessTTL:  tokens.AccessTTL(),
		RefreshTTL: tokens.RefreshTTL(),
	}, log)
	companyHandler := company.NewHandler(companyService, log)
	developmentHandler := development.NewHandler(developmentService, rbacService, log)
	documentHandler := document.NewHandler(documentService, rbacService, log)
	employeeHandler := employee.NewHandler(employeeService, log)
	leaveHandler := leave.NewHandler(leaveService, rbacService, log)
	rbacHandler := rbac.NewHandler(rbacService, log)
	reviewHandler := review.NewHandler(reviewService, rbacService, log)
	userHandler := user.NewHandler(userService, log)

	idempotency := middleware.Idempotency(rdb, log)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(tokens),
		middleware.ExtractUserID(),
		middleware.ContextLogger(log),
	)

	auth.RegisterRoutes(api, protected, authHandler)
	attendance.RegisterRoutes(protected, attendanceHandler, rbacService)
	company.RegisterRoutes(protected, companyHandler, rbacService)
	development.RegisterRoutes(protected, developmentHandler, rbacService)
	document.RegisterRoutes(protected, documentHandler, rbacService)
	employee.RegisterRoutes(protected, employeeHandler, rbacService, idempotency)
	leave.RegisterRoutes(protected, leaveHandler, rbacService, idempotency)
	rbac.RegisterRoutes(protected, rbacHandler)
	review.RegisterRoutes(protected, reviewHandler, rbacService)
	user.RegisterRoutes(protected, userHandler, rbacService)

	return nil
}
