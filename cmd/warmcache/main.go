package main

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	server "stayfront/internal/adapters/http_server"
	"stayfront/internal/adapters/observability"
	redisad "stayfront/internal/adapters/redis"
	"stayfront/internal/adapters/wordpress"
	"stayfront/internal/shared"
)

// Collections primed into the proxy cache so the first browser hits after a
// deploy are warm. Keys must match the relay's default-parameter requests.
var warmTargets = []struct {
	path   string
	params map[string]string
}{
	{"rooms", map[string]string{"_embed": "true", "per_page": "100"}},
	{"amenities", map[string]string{"_embed": "true", "per_page": "50"}},
	{"pages", map[string]string{"per_page": "50"}},
	{"posts", map[string]string{"_embed": "true", "per_page": "100"}},
}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	if cfg.WPBase == "" {
		log.Fatal().Msg("WORDPRESS_API_URL must be set to warm the cache")
	}
	log.Info().
		Str("base", cfg.WPBase).
		Dur("ttl", cfg.ProxyCacheTTL).
		Msg("cache warmer starting")

	wp := wordpress.New(cfg.WPBase, cfg.WPRPS)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	sem := semaphore.NewWeighted(2)
	var wg sync.WaitGroup

	for _, t := range warmTargets {
		t := t

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			body, err := wp.FetchRaw(ctx, t.path, t.params)
			if err != nil {
				log.Warn().Str("path", t.path).Err(err).Msg("warm fetch failed")
				return
			}
			key := server.CacheKey(t.path, t.params)
			if err := cache.Set(ctx, key, body, int(cfg.ProxyCacheTTL.Seconds())); err != nil {
				log.Warn().Str("path", t.path).Err(err).Msg("warm cache set failed")
				return
			}
			log.Info().Str("path", t.path).Int("bytes", len(body)).Msg("warmed")
		}()
	}

	wg.Wait()
	log.Info().Msg("cache warm completed")
}
