// Command server boots the tradecircle collaboration backend: load
// config, select a store backend, wire the domain engine, and serve
// pkg/httpapi over a conventional long-running http.ListenAndServe
// loop.
package main

import (
	"log"
	"net/http"

	"github.com/tradecircle/backend/pkg/authtoken"
	"github.com/tradecircle/backend/pkg/clock"
	"github.com/tradecircle/backend/pkg/config"
	"github.com/tradecircle/backend/pkg/engine"
	"github.com/tradecircle/backend/pkg/httpapi"
	"github.com/tradecircle/backend/pkg/invitecode"
	"github.com/tradecircle/backend/pkg/store"
	"github.com/tradecircle/backend/pkg/store/memory"
	"github.com/tradecircle/backend/pkg/store/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var backend store.Store
	switch cfg.Store.Backend {
	case "postgres":
		pg, err := postgres.Open(cfg.Store.PostgresDSN)
		if err != nil {
			log.Fatalf("store: open postgres: %v", err)
		}
		backend = pg
		log.Printf("store: postgres backend ready")
	default:
		backend = memory.New()
		log.Printf("store: in-memory backend ready (not durable)")
	}

	eng := engine.New(backend, clock.System{}, invitecode.Random{})
	tokens := authtoken.NewService(cfg.Auth.JWTSecret, cfg.Auth.IdentityPepper)
	router := httpapi.NewRouter(eng, tokens, cfg.CORS.AllowedOrigins)

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := http.ListenAndServe(cfg.HTTP.Addr, router); err != nil {
		log.Fatalf("server: %v", err)
	}
}
