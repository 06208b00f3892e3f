package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maliksarmad/retailpos-api/internal/config"
	domainRepo "github.com/maliksarmad/retailpos-api/internal/domain/repository"
	"github.com/maliksarmad/retailpos-api/internal/presentation/http/handler"
	"github.com/maliksarmad/retailpos-api/internal/presentation/http/middleware"
	"github.com/maliksarmad/retailpos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Hold     *handler.HoldHandler
	Credit   *handler.CreditHandler
	Settings *handler.SettingsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-terminal rate limiter
		rateLimiter := middleware.NewTerminalRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerSessionRoutes(protected, h, deps)
		registerCreditRoutes(protected, h, deps)
		registerSettingsRoutes(protected, h)
	}

	return router
}

// registerSessionRoutes wires the per-session cart, checkout and hold
// surface. Mutating session routes share one in-flight guard so a
// double-clicked action never runs twice concurrently, and financial
// submissions additionally honor Idempotency-Key replay.
func registerSessionRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})
	guard := middleware.NewInFlightGuard()

	protected.POST("/sessions", h.Cart.OpenSession)

	session := protected.Group("/sessions/:sessionId")
	session.Use(guard.Middleware("sessionId"))
	{
		session.GET("/cart", h.Cart.GetCart)
		session.POST("/cart/lines", h.Cart.AddLine)
		session.PATCH("/cart/lines/:productId", h.Cart.UpdateQuantity)
		session.DELETE("/cart/lines/:productId", h.Cart.RemoveLine)
		session.DELETE("/cart", h.Cart.ClearCart)
		session.PUT("/cart/customer", h.Cart.SetCustomer)
		session.POST("/cart/discount", h.Cart.ApplyDiscount)
		session.DELETE("/cart/discount", h.Cart.ClearDiscount)

		session.POST("/checkout", h.Checkout.Initiate)
		session.POST("/checkout/complete", idempotency, h.Checkout.Complete)
		session.POST("/checkout/abort", h.Checkout.Abort)

		session.POST("/hold", idempotency, h.Hold.Hold)
		session.POST("/resume/:holdId", h.Hold.Resume)
	}

	held := protected.Group("/held-orders")
	{
		held.GET("", h.Hold.List)
		held.DELETE("/:holdId", middleware.RequireRole("supervisor", "admin"), h.Hold.Delete)
	}
}

// registerCreditRoutes wires the credit surface. Payment submission is
// guarded per customer: the idempotency middleware only replays keys
// recorded after a response, so without the guard two simultaneous
// submissions of the same key would both execute.
func registerCreditRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})
	guard := middleware.NewInFlightGuard()

	credit := protected.Group("/credit")
	{
		credit.GET("/customers", h.Credit.ListCustomers)
		credit.GET("/customers/:customerId/pending-sales", h.Credit.ListPendingSales)
		credit.POST("/customers/:customerId/payments", guard.Middleware("customerId"), idempotency, h.Credit.ProcessPayment)
		credit.POST("/reconcile", middleware.RequireRole("supervisor", "admin"), h.Credit.Reconcile)
	}
}

func registerSettingsRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/settings", h.Settings.Get)
}
