package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ateliernoir/ateliernoir-backend/api/controllers"
	"github.com/ateliernoir/ateliernoir-backend/api/middleware"
	"github.com/ateliernoir/ateliernoir-backend/internal/cart"
	"github.com/ateliernoir/ateliernoir-backend/internal/content"
	"github.com/ateliernoir/ateliernoir-backend/internal/customers"
	"github.com/ateliernoir/ateliernoir-backend/internal/notifications"
	"github.com/ateliernoir/ateliernoir-backend/internal/orders"
	"github.com/ateliernoir/ateliernoir-backend/internal/products"
	"github.com/ateliernoir/ateliernoir-backend/internal/reviews"
	"github.com/ateliernoir/ateliernoir-backend/internal/wishlist"
	"github.com/ateliernoir/ateliernoir-backend/pkg/auth/session"
	"github.com/ateliernoir/ateliernoir-backend/pkg/config"
	"github.com/ateliernoir/ateliernoir-backend/pkg/db"
	"github.com/ateliernoir/ateliernoir-backend/pkg/logger"
	"github.com/ateliernoir/ateliernoir-backend/pkg/metrics"
	"github.com/ateliernoir/ateliernoir-backend/pkg/redis"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Sessions session.AccessSessionChecker
	Registry *prometheus.Registry
	HTTP     *metrics.HTTPMetrics

	Customers     customers.Service
	Products      products.Service
	Cart          cart.Service
	Wishlist      wishlist.Service
	Orders        orders.Service
	Content       content.Service
	Reviews       reviews.Service
	Notifications notifications.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTP),
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
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.Customers, logg))
			r.With(
				middleware.AuthRateLimit(registerPolicy, deps.Redis, logg),
				middleware.Idempotency(deps.Redis, logg),
			).Post("/register", controllers.AuthRegister(deps.Customers, logg))
			r.Post("/refresh", controllers.AuthRefresh(deps.Customers, logg))
			r.With(middleware.Auth(cfg.JWT, deps.Sessions, logg)).Post("/logout", controllers.AuthLogout(deps.Customers, logg))
		})

		// Public storefront reads.
		r.Get("/content/home", controllers.HomeContent(deps.Content, logg))
		r.Get("/content/announcements", controllers.Announcements(deps.Content, logg))
		r.Get("/products", controllers.ProductList(deps.Products, logg))
		r.Get("/products/{productId}", controllers.ProductDetail(deps.Products, logg))
		r.Get("/products/{productId}/reviews", controllers.ReviewList(deps.Reviews, logg))
		r.Get("/orders/track", controllers.OrderTrack(deps.Orders, logg))

		// Cart and wishlist serve guests and customers alike. The owner key
		// comes from the access token or the guest session header.
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuth(cfg.JWT, deps.Sessions, logg))
			r.Use(middleware.SessionContext(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(deps.Cart, logg))
				r.Post("/items", controllers.CartAddItem(deps.Cart, logg))
				r.Put("/items", controllers.CartUpdateQuantity(deps.Cart, logg))
				r.Delete("/items", controllers.CartRemoveItem(deps.Cart, logg))
				r.Post("/coupon", controllers.CartApplyCoupon(deps.Cart, logg))
				r.Delete("/coupon", controllers.CartRemoveCoupon(deps.Cart, logg))
				r.Delete("/", controllers.CartClear(deps.Cart, logg))
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.WishlistFetch(deps.Wishlist, logg))
				r.Post("/items", controllers.WishlistAdd(deps.Wishlist, logg))
				r.Delete("/items", controllers.WishlistRemove(deps.Wishlist, logg))
			})
		})

		// Signed-in surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
			r.Use(middleware.SessionContext(logg))
			r.Use(middleware.Idempotency(deps.Redis, logg))

			r.Get("/ping", controllers.PrivatePing())
			r.Get("/me", controllers.Me(deps.Customers, logg))
			r.Get("/orders", controllers.OrderHistory(deps.Orders, logg))
			r.Post("/reviews", controllers.ReviewSubmit(deps.Reviews, logg))
			r.Post("/cart/merge", controllers.CartMerge(deps.Cart, logg))
			r.Post("/wishlist/sync", controllers.WishlistSync(deps.Wishlist, logg))

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", controllers.ListNotifications(deps.Notifications, logg))
				r.Post("/{notificationId}/read", controllers.MarkNotificationRead(deps.Notifications, logg))
				r.Post("/read-all", controllers.MarkAllNotificationsRead(deps.Notifications, logg))
			})
		})
	})

	return r
}
