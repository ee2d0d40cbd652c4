package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	portssvc "github.com/edusuite/school_finance_api/internal/core/ports/services"
	"github.com/edusuite/school_finance_api/internal/middleware"
	"github.com/edusuite/school_finance_api/pkg/config"
)

// loginRateLimit throttles credential guessing on the login endpoint.
var loginRateLimit = limiter.Rate{Period: 1 * time.Minute, Limit: 10}

// RegisterRoutes wires every handler onto the engine.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	registerAuthRoutes(r, cfg, services)
	setupAPIV1Routes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	authH := newAuthHandler(cfg, services.UserSvc, services.TokenSvc)
	googleH := newGoogleOAuthHandler(cfg, services.GoogleOAuthSvc, services.UserSvc, services.TokenSvc, authH.setRefreshCookie)

	loginLimiter := limiter.New(memory.NewStore(), loginRateLimit)

	auth := r.Group("/auth")
	{
		auth.POST("/register", authH.register)
		auth.POST("/login", middleware.RateLimit(loginLimiter), authH.login)
		auth.POST("/refresh", authH.refresh)
		auth.POST("/logout", authH.logout)
		auth.POST("/google/exchange-code", googleH.exchangeCode)
	}
}

func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	apiV1 := r.Group("/api/v1")
	apiV1.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(apiV1, services.UserSvc)
	registerDepartmentRoutes(apiV1, services.DepartmentSvc)
	registerIncomeRoutes(apiV1, services.IncomeSvc)
	registerExpenseRoutes(apiV1, services.ExpenseSvc)
	registerBudgetRoutes(apiV1, services.BudgetSvc)
	registerPayrollRoutes(apiV1, services.PayrollSvc)
	registerReportingRoutes(apiV1, services.ReportingSvc)
}

// setupSwaggerRoutes serves the generated API docs outside production.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		return
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
