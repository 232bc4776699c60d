package controllers

import (
	"net/http"

	"github.com/ateliernoir/ateliernoir-backend/api/responses"
	"github.com/ateliernoir/ateliernoir-backend/pkg/config"
	"github.com/ateliernoir/ateliernoir-backend/pkg/db"
	pkgerrors "github.com/ateliernoir/ateliernoir-backend/pkg/errors"
	"github.com/ateliernoir/ateliernoir-backend/pkg/logger"
	"github.com/ateliernoir/ateliernoir-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-AN-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the backing services so load balancers stop routing to an
// instance that lost its database or cache.
func HealthReady(cfg *config.Config, logg *logger.Logger, database db.Pinger, cache redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-AN-Env", cfg.App.Env)

		if database != nil {
			if err := database.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}
		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
