package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tahmidrayat/clickbazaar-backend/api/routes"
	"github.com/tahmidrayat/clickbazaar-backend/internal/catalog"
	"github.com/tahmidrayat/clickbazaar-backend/internal/checkout"
	"github.com/tahmidrayat/clickbazaar-backend/internal/discount"
	"github.com/tahmidrayat/clickbazaar-backend/internal/order"
	"github.com/tahmidrayat/clickbazaar-backend/internal/totals"
	"github.com/tahmidrayat/clickbazaar-backend/pkg/config"
	"github.com/tahmidrayat/clickbazaar-backend/pkg/logger"
	"github.com/tahmidrayat/clickbazaar-backend/pkg/metrics"
	"github.com/tahmidrayat/clickbazaar-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	var redisClient *redis.Client
	var cache catalog.Cache
	var pinger redis.Pinger
	if cfg.Redis.URL != "" || cfg.Redis.Address != "" {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		cache = redisClient
		pinger = redisClient
	} else {
		logg.Warn(context.Background(), "redis not configured, catalog cache disabled")
	}

	catalogClient, err := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, cache, cfg.Catalog.CacheTTL, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog client", err)
		os.Exit(1)
	}

	orderClient, err := order.NewClient(cfg.OrderService.BaseURL, cfg.OrderService.Timeout)
	if err != nil {
		logg.Error(context.Background(), "failed to create order client", err)
		os.Exit(1)
	}

	var courierClient *order.CourierClient
	if cfg.Courier.BaseURL != "" {
		courierClient, err = order.NewCourierClient(cfg.Courier.BaseURL, cfg.Courier.Timeout)
		if err != nil {
			logg.Error(context.Background(), "failed to create courier client", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "courier not configured, shipment endpoints disabled")
	}

	registry := prometheus.NewRegistry()
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	manager, err := checkout.NewManager(checkout.ManagerParams{
		Catalog: catalogClient,
		Orders:  orderClient,
		Coupons: discount.NewCouponTable(cfg.Coupons.Codes),
		Zones:   totals.NewZoneCharges(cfg.Delivery.ZoneCharges),
		Metrics: checkoutMetrics,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout manager", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, pinger, manager, orderClient, courierClient, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
