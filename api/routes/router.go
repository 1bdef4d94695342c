package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/commercehub/orders-backend/api/controllers"
	"github.com/commercehub/orders-backend/api/middleware"
	"github.com/commercehub/orders-backend/internal/orders"
	"github.com/commercehub/orders-backend/pkg/config"
	"github.com/commercehub/orders-backend/pkg/logger"
	pkgredis "github.com/commercehub/orders-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	Orders          orders.Service
	Idempotency     pkgredis.IdempotencyStore
	Pingers         map[string]controllers.Pinger
	MetricsGatherer prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.Pingers))
	})

	gatherer := deps.MetricsGatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.With(middleware.Idempotency(deps.Idempotency, deps.Logger, deps.Config.Idempotency.TTL)).
			Post("/", controllers.CreateOrder(deps.Orders, deps.Logger))
		r.Get("/", controllers.ListOrders(deps.Orders, deps.Logger))
		r.Get("/{orderId}", controllers.GetOrder(deps.Orders, deps.Logger))
	})

	return r
}
