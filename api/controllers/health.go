package controllers

import (
	"net/http"

	"github.com/tahmidrayat/clickbazaar-backend/api/responses"
	"github.com/tahmidrayat/clickbazaar-backend/pkg/config"
	pkgerrors "github.com/tahmidrayat/clickbazaar-backend/pkg/errors"
	"github.com/tahmidrayat/clickbazaar-backend/pkg/logger"
	"github.com/tahmidrayat/clickbazaar-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ClickBazaar-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the cache dependency. The catalog and order
// services are not probed; a cold cache is degraded, not down.
func HealthReady(cfg *config.Config, logg *logger.Logger, cache redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ClickBazaar-Env", cfg.App.Env)

		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis not ready"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
