package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tahmidrayat/clickbazaar-backend/api/controllers"
	checkoutcontrollers "github.com/tahmidrayat/clickbazaar-backend/api/controllers/checkout"
	ordercontrollers "github.com/tahmidrayat/clickbazaar-backend/api/controllers/orders"
	"github.com/tahmidrayat/clickbazaar-backend/api/middleware"
	checkoutsvc "github.com/tahmidrayat/clickbazaar-backend/internal/checkout"
	ordersvc "github.com/tahmidrayat/clickbazaar-backend/internal/order"
	"github.com/tahmidrayat/clickbazaar-backend/pkg/config"
	"github.com/tahmidrayat/clickbazaar-backend/pkg/logger"
	"github.com/tahmidrayat/clickbazaar-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	cache redis.Pinger,
	manager *checkoutsvc.Manager,
	orderClient *ordersvc.Client,
	courierClient *ordersvc.CourierClient,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, cache))
	})
	r.Get("/healthz", controllers.HealthReady(cfg, logg, cache))

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/checkout/sessions", func(r chi.Router) {
		r.Post("/", checkoutcontrollers.CreateSession(manager, logg))
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", checkoutcontrollers.GetSession(manager, logg))
			r.Post("/actions", checkoutcontrollers.ApplyAction(manager, logg))
			r.Get("/quote", checkoutcontrollers.Quote(manager, logg))
			r.Post("/submit", checkoutcontrollers.Submit(manager, logg))
		})
	})

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Get("/", ordercontrollers.GetByPhone(orderClient, logg))
		r.Get("/{orderID}", ordercontrollers.GetByID(orderClient, logg))
		r.Patch("/{orderID}/status", ordercontrollers.UpdateStatus(orderClient, logg))
		r.Post("/{orderID}/shipment", ordercontrollers.CreateShipment(courierClient, logg))
	})

	r.Get("/api/v1/shipments/{consignmentID}/status", ordercontrollers.TrackShipment(orderClient, courierClient, logg))

	return r
}
