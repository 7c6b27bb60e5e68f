package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	server "stayfront/internal/adapters/http_server"
	"stayfront/internal/adapters/observability"
	redisad "stayfront/internal/adapters/redis"
	"stayfront/internal/adapters/wordpress"
	"stayfront/internal/app"
	"stayfront/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve(cfg.MetricsAddr)

	// deps
	wp := wordpress.New(cfg.WPBase, cfg.WPRPS)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	svc := app.NewContentService(wp)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Svc:   svc,
		Proxy: &server.Proxy{Client: wp, Cache: cache, TTL: cfg.ProxyCacheTTL},
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
