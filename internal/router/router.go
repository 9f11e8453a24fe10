package router

import (
	"time"

	"github.com/jesusfb/carmu-api/internal/config"
	"github.com/jesusfb/carmu-api/internal/handler"
	"github.com/jesusfb/carmu-api/internal/infra"
	"github.com/jesusfb/carmu-api/internal/middleware"
	"github.com/jesusfb/carmu-api/internal/repository"
	"github.com/jesusfb/carmu-api/internal/service"
	"github.com/jesusfb/carmu-api/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	blobs := infra.NewHTTPBlobStore(cfg.MediaServiceURL)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	cashboxRepo := repository.NewCashboxRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	cashboxSvc := service.NewCashboxService(cashboxRepo, userRepo, dispatcher)
	categorySvc := service.NewCategoryService(categoryRepo, blobs)
	customerSvc := service.NewCustomerService(customerRepo)
	dashboardSvc := service.NewDashboardService(cashboxRepo, reportRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	boxesH := handler.NewCashboxHandler(cashboxSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
		auth.POST("/register", authH.Register)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: admin, user — declared per-endpoint
		users := v1.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.GET("/:id", usersH.Get)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Disable)
		}

		// Cashboxes — lifecycle open to any authenticated operator, directory
		// management restricted to admins
		boxes := v1.Group("/boxes")
		{
			boxes.GET("", boxesH.List)
			boxes.POST("", middleware.RequireRole("admin"), boxesH.Create)
			boxes.GET("/:boxId", boxesH.Get)
			boxes.PUT("/:boxId", middleware.RequireRole("admin"), boxesH.UpdateName)
			boxes.PUT("/:boxId/users", middleware.RequireRole("admin"), boxesH.AssignUsers)
			boxes.DELETE("/:boxId", middleware.RequireRole("admin"), boxesH.Delete)

			boxes.POST("/:boxId/open", boxesH.Open)
			boxes.POST("/:boxId/close", boxesH.Close)
			boxes.GET("/:boxId/transactions", boxesH.ListTransactions)
			boxes.POST("/:boxId/transactions", boxesH.AddTransaction)
			boxes.GET("/:boxId/closing-records", boxesH.ListClosings)
		}

		v1.GET("/closing-records", middleware.RequireRole("admin"), boxesH.ListAllClosings)

		// Categories — admin can write, all authenticated can read
		v1.GET("/categories", categoriesH.List)
		v1.GET("/categories/:id", categoriesH.Get)
		categories := v1.Group("/categories", middleware.RequireRole("admin"))
		{
			categories.POST("", categoriesH.Create)
			categories.POST("/:id/subcategories", categoriesH.CreateSub)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Delete)
		}

		customers := v1.Group("/customers")
		{
			customers.GET("", customersH.List)
			customers.POST("", customersH.Create)
			customers.GET("/:id", customersH.Get)
			customers.PUT("/:id", customersH.Update)
			customers.DELETE("/:id", customersH.Delete)
			customers.POST("/:id/contacts", customersH.AddContact)
			customers.DELETE("/:id/contacts/:contactId", customersH.RemoveContact)
		}

		dashboard := v1.Group("/dashboard", middleware.RequireRole("admin"))
		{
			dashboard.GET("/cash-report", dashboardH.CashReport)
			dashboard.GET("/annual-report", dashboardH.AnnualReport)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
