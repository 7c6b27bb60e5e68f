package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv        string
	HTTPAddr      string
	MetricsAddr   string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	WPBase        string
	WPRPS         int
	ProxyCacheTTL time.Duration
}

// Load reads configuration from the environment once at startup. The WP base
// URL resolves WORDPRESS_API_URL first, then the legacy WORDPRESS_URL; an
// empty result is not an error here — callers decide how loudly to fail.
func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ""),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		WPBase:        resolveWPBase(),
		WPRPS:         atoi("WP_RPS", 5),
		ProxyCacheTTL: time.Duration(atoi("PROXY_CACHE_TTL_SECONDS", 60)) * time.Second,
	}
	if c.IsDev() {
		if c.WPBase == "" {
			log.Warn().Msg("WORDPRESS_API_URL is not set; content fetches will fail")
		} else {
			log.Info().Str("base", c.WPBase).Msg("wordpress base url resolved")
		}
	}
	return c
}

func (c Config) IsDev() bool {
	return c.AppEnv == "dev" || c.AppEnv == "development"
}

func resolveWPBase() string {
	if v := os.Getenv("WORDPRESS_API_URL"); v != "" {
		return v
	}
	// legacy variable kept for older deployments
	return os.Getenv("WORDPRESS_URL")
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
