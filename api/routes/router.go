package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kdhingra/meattrack-backend/api/controllers"
	"github.com/kdhingra/meattrack-backend/api/middleware"
	"github.com/kdhingra/meattrack-backend/internal/hotels"
	"github.com/kdhingra/meattrack-backend/internal/payments"
	"github.com/kdhingra/meattrack-backend/internal/purchases"
	"github.com/kdhingra/meattrack-backend/internal/reports"
	"github.com/kdhingra/meattrack-backend/internal/sales"
	"github.com/kdhingra/meattrack-backend/internal/users"
	"github.com/kdhingra/meattrack-backend/internal/vendors"
	"github.com/kdhingra/meattrack-backend/pkg/config"
	"github.com/kdhingra/meattrack-backend/pkg/db"
	"github.com/kdhingra/meattrack-backend/pkg/logger"
	"github.com/kdhingra/meattrack-backend/pkg/metrics"
	"github.com/kdhingra/meattrack-backend/pkg/redis"
)

// Deps bundles everything the router needs.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	HTTPMetrics *metrics.HTTPMetrics

	Users     users.Service
	Vendors   vendors.Service
	Hotels    hotels.Service
	Purchases purchases.Service
	Sales     sales.Service
	Payments  payments.Service
	Reports   reports.Service
}

// NewRouter wires the full HTTP surface.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	var redisPinger redis.Pinger
	if deps.Redis != nil {
		redisPinger = deps.Redis
	}
	rateLimited := func(policy middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler {
		if deps.Redis == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return middleware.AuthRateLimit(policy, deps.Redis, logg)
	}

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
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, redisPinger))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(rateLimited(registerPolicy)).
			Post("/register", controllers.AuthRegister(deps.Users, logg))
		r.With(rateLimited(loginPolicy)).
			Post("/login", controllers.AuthLogin(deps.Users, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Get("/me", controllers.AuthProfile(deps.Users, logg))

		r.Route("/vendors", func(r chi.Router) {
			r.Post("/", controllers.VendorCreate(deps.Vendors, logg))
			r.Get("/", controllers.VendorList(deps.Vendors, logg))
			r.Get("/{vendorId}", controllers.VendorGet(deps.Vendors, logg))
			r.Patch("/{vendorId}", controllers.VendorUpdate(deps.Vendors, logg))
			r.Delete("/{vendorId}", controllers.VendorDelete(deps.Vendors, logg))
			r.Get("/{vendorId}/payments", controllers.PaymentListByVendor(deps.Payments, logg))
		})

		r.Route("/hotels", func(r chi.Router) {
			r.Post("/", controllers.HotelCreate(deps.Hotels, logg))
			r.Get("/", controllers.HotelList(deps.Hotels, logg))
			r.Get("/{hotelId}", controllers.HotelGet(deps.Hotels, logg))
			r.Patch("/{hotelId}", controllers.HotelUpdate(deps.Hotels, logg))
			r.Delete("/{hotelId}", controllers.HotelDelete(deps.Hotels, logg))
			r.Get("/{hotelId}/sales", controllers.HotelSaleListByHotel(deps.Sales, logg))
		})

		r.Route("/purchases", func(r chi.Router) {
			r.Post("/", controllers.PurchaseCreate(deps.Purchases, logg))
			r.Get("/", controllers.PurchaseList(deps.Purchases, logg))
			r.Get("/{purchaseId}", controllers.PurchaseGet(deps.Purchases, logg))
			r.Delete("/{purchaseId}", controllers.PurchaseDelete(deps.Purchases, logg))
		})

		r.Route("/sales", func(r chi.Router) {
			r.Route("/retail", func(r chi.Router) {
				r.Post("/", controllers.RetailSaleCreate(deps.Sales, logg))
				r.Get("/", controllers.RetailSaleList(deps.Sales, logg))
				r.Get("/{saleId}", controllers.RetailSaleGet(deps.Sales, logg))
				r.Delete("/{saleId}", controllers.RetailSaleDelete(deps.Sales, logg))
			})
			r.Route("/hotel", func(r chi.Router) {
				r.Post("/", controllers.HotelSaleCreate(deps.Sales, logg))
				r.Get("/", controllers.HotelSaleList(deps.Sales, logg))
				r.Get("/{saleId}", controllers.HotelSaleGet(deps.Sales, logg))
				r.Patch("/{saleId}/paid", controllers.HotelSaleSetPaid(deps.Sales, logg))
				r.Delete("/{saleId}", controllers.HotelSaleDelete(deps.Sales, logg))
			})
		})

		r.Route("/payments", func(r chi.Router) {
			r.Post("/", controllers.PaymentCreate(deps.Payments, logg))
			r.Get("/", controllers.PaymentList(deps.Payments, logg))
			r.Get("/{paymentId}", controllers.PaymentGet(deps.Payments, logg))
			r.Delete("/{paymentId}", controllers.PaymentDelete(deps.Payments, logg))
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/daily", controllers.ReportDaily(deps.Reports, logg))
			r.Get("/range", controllers.ReportRange(deps.Reports, logg))
		})
	})

	return r
}
