package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/partsdepot/partsdepot-backend/api/controllers"
	"github.com/partsdepot/partsdepot-backend/api/middleware"
	"github.com/partsdepot/partsdepot-backend/internal/auth"
	"github.com/partsdepot/partsdepot-backend/internal/cart"
	checkoutsvc "github.com/partsdepot/partsdepot-backend/internal/checkout"
	"github.com/partsdepot/partsdepot-backend/internal/orders"
	product "github.com/partsdepot/partsdepot-backend/internal/products"
	"github.com/partsdepot/partsdepot-backend/pkg/auth/session"
	"github.com/partsdepot/partsdepot-backend/pkg/config"
	"github.com/partsdepot/partsdepot-backend/pkg/db"
	"github.com/partsdepot/partsdepot-backend/pkg/logger"
	"github.com/partsdepot/partsdepot-backend/pkg/metrics"
	"github.com/partsdepot/partsdepot-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// RouterParams bundles everything the HTTP surface needs.
type RouterParams struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           *redis.Client
	SessionManager  sessionManager
	HTTPMetrics     *metrics.HTTPMetrics
	MetricsHandler  http.Handler
	AuthService     auth.Service
	RegisterService auth.RegisterService
	ProductService  product.Service
	CartService     cart.Service
	CheckoutService checkoutsvc.Service
	OrdersService   orders.Service
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})

	if p.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", p.MetricsHandler)
	} else {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(p.ProductService, logg))
		r.Get("/{productId}", controllers.GetProduct(p.ProductService, logg))
	})

	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.Post("/payment", controllers.PaymentCallback(p.OrdersService, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).
			Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.With(
			middleware.AuthRateLimit(registerPolicy, p.Redis, logg),
			middleware.Idempotency(p.Redis, logg),
		).Post("/register", controllers.AuthRegister(p.RegisterService, p.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(p.SessionManager, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.SessionManager, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.SessionManager, logg))
		r.Use(middleware.Idempotency(p.Redis, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(p.CartService, logg))
			r.Post("/", controllers.CartAddItem(p.CartService, logg))
			r.Delete("/clear", controllers.CartClear(p.CartService, logg))
			r.Put("/{itemId}", controllers.CartUpdateItem(p.CartService, logg))
			r.Delete("/{itemId}", controllers.CartRemoveItem(p.CartService, logg))
		})

		r.Post("/checkout", controllers.Checkout(p.CheckoutService, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(p.OrdersService, logg))
			r.Get("/{orderId}", controllers.GetOrder(p.OrdersService, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole("admin", logg))

			r.Get("/ping", controllers.AdminPing())

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminListProducts(p.ProductService, logg))
				r.Post("/", controllers.AdminCreateProduct(p.ProductService, logg))
				r.Patch("/{productId}", controllers.AdminUpdateProduct(p.ProductService, logg))
				r.Delete("/{productId}", controllers.AdminDeleteProduct(p.ProductService, logg))
			})
			r.Put("/inventory/{productId}", controllers.AdminSetInventory(p.ProductService, logg))
		})
	})

	return r
}
