package router

import (
	"time"

	"isletmeapp/internal/config"
	"isletmeapp/internal/event"
	"isletmeapp/internal/handler"
	"isletmeapp/internal/middleware"
	"isletmeapp/internal/repository"
	"isletmeapp/internal/service"
	"isletmeapp/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services groups the wired service layer so main can reuse it (debt view
// start, report worker) without re-wiring.
type Services struct {
	Auth     service.AuthService
	Sales    service.SaleService
	Practice service.PracticeService
	Payments service.PaymentService
	Treasury service.TreasuryService
	Debts    service.DebtService
	Fees     service.FeeService
	Catalog  service.CatalogService
}

// Build wires repositories and services on top of db/redis/bus.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func Build(cfg *config.Config, db *gorm.DB, rdb *redis.Client, bus *event.Bus) *Services {
	txm := repository.NewTxManager(db)
	userRepo := repository.NewUserRepository(db)
	poolRepo := repository.NewCashPoolRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	practiceRepo := repository.NewPracticePaymentRepository(db)
	paymentRepo := repository.NewCustomerPaymentRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	feeRepo := repository.NewFeeScheduleRepository(db)
	productRepo := repository.NewProductRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	dispatcher := worker.NewDispatcher(rdb)

	return &Services{
		Auth:     service.NewAuthService(userRepo, cfg),
		Sales:    service.NewSaleService(txm, saleRepo, paymentRepo, customerRepo, poolRepo, bus, dispatcher),
		Practice: service.NewPracticeService(txm, practiceRepo, paymentRepo, customerRepo, poolRepo, feeRepo, bus, dispatcher),
		Payments: service.NewPaymentService(txm, paymentRepo, customerRepo, poolRepo, bus, dispatcher),
		Treasury: service.NewTreasuryService(txm, poolRepo, bus, dispatcher),
		Debts:    service.NewDebtService(bus, saleRepo, practiceRepo, paymentRepo, customerRepo),
		Fees:     service.NewFeeService(feeRepo, dispatcher),
		Catalog:  service.NewCatalogService(productRepo, activityRepo),
	}
}

// New returns a configured Gin engine over the wired services.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, bus *event.Bus, svcs *Services) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(svcs.Auth)
	salesH := handler.NewSalesHandler(svcs.Sales)
	practiceH := handler.NewPracticeHandler(svcs.Practice)
	paymentsH := handler.NewPaymentsHandler(svcs.Payments)
	treasuryH := handler.NewTreasuryHandler(svcs.Treasury)
	debtsH := handler.NewDebtsHandler(svcs.Debts, svcs.Payments)
	feesH := handler.NewFeesHandler(svcs.Fees)
	catalogH := handler.NewCatalogHandler(svcs.Catalog)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Every authenticated role can read; writes are gated per stream.
		anyRole := middleware.RequireRole("yonetici", "sorumlu-1", "sorumlu-2", "izleyici")
		salesWriters := middleware.RequireRole("yonetici", "sorumlu-2")
		practiceWriters := middleware.RequireRole("yonetici", "sorumlu-1", "sorumlu-2")
		admin := middleware.RequireRole("yonetici")

		v1.POST("/sales", salesWriters, salesH.RecordSale)
		v1.GET("/sales/recent", anyRole, salesH.RecentSales)

		v1.POST("/practice", practiceWriters, practiceH.RecordPractice)
		v1.GET("/practice", anyRole, practiceH.ListByDay)

		v1.POST("/payments", salesWriters, paymentsH.RecordPayment)
		v1.GET("/payments/recent", anyRole, paymentsH.RecentPayments)
		v1.GET("/payments/pending", anyRole, paymentsH.PendingPayments)
		v1.POST("/payments/:id/confirm", admin, paymentsH.ConfirmPayment)

		v1.GET("/debts", anyRole, debtsH.List)
		v1.POST("/debts/:name/reset", admin, debtsH.Reset)

		treasury := v1.Group("/treasury")
		{
			treasury.GET("/pools", anyRole, treasuryH.Pools)
			treasury.GET("/transfers", anyRole, treasuryH.RecentTransfers)
			treasury.POST("/transfer", admin, treasuryH.Transfer)
			treasury.POST("/main/reset", admin, treasuryH.ResetMain)
		}

		v1.GET("/fees", anyRole, feesH.Get)
		v1.PUT("/fees", admin, feesH.Update)

		v1.GET("/products", anyRole, catalogH.ListProducts)
		v1.POST("/products", admin, catalogH.CreateProduct)

		v1.GET("/activity", anyRole, catalogH.RecentActivity)

		users := v1.Group("/users", admin)
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
			users.PATCH("/:id/role", authH.UpdateUserRole)
		}

		// SSE change feed for push-updated read models
		v1.GET("/stream", anyRole, handler.Stream(bus))
	}

	return r
}
