package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"stayfront/internal/adapters/wordpress"
	"stayfront/internal/domain"
)

// proxyResources is the fixed set of resource types the relay will forward.
// The first path segment must match exactly.
var proxyResources = map[string]struct{}{
	"posts":      {},
	"pages":      {},
	"media":      {},
	"categories": {},
	"tags":       {},
	"rooms":      {},
	"amenities":  {},
}

// proxyParams is the injection-prevention boundary: only these query
// parameters are forwarded upstream, everything else is silently dropped.
var proxyParams = map[string]struct{}{
	"page":     {},
	"per_page": {},
	"search":   {},
	"slug":     {},
	"include":  {},
	"_embed":   {},
}

// Proxy relays a constrained subset of browser requests to the WordPress
// API. Unlike the fetch client it serves from cache within a bounded
// freshness window.
type Proxy struct {
	Client *wordpress.Client
	Cache  domain.Cache
	TTL    time.Duration
}

type proxyError struct {
	Error  string `json:"error"`
	Status int    `json:"status,omitempty"`
}

func writeProxyError(w http.ResponseWriter, status int, e proxyError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(e); err != nil {
		log.Error().Err(err).Msg("write proxy error response failed")
	}
}

func (p *Proxy) Relay(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if !q.Has("path") {
		writeProxyError(w, http.StatusBadRequest, proxyError{Error: "Missing path parameter"})
		return
	}
	path := strings.Trim(q.Get("path"), "/")
	resource := strings.SplitN(path, "/", 2)[0]
	if _, ok := proxyResources[resource]; !ok {
		writeProxyError(w, http.StatusBadRequest, proxyError{Error: "Invalid path parameter"})
		return
	}

	params := make(map[string]string, len(proxyParams))
	for k := range proxyParams {
		if v := q.Get(k); v != "" {
			params[k] = v
		}
	}

	key := CacheKey(path, params)
	if body, ok, err := p.Cache.Get(r.Context(), key); err == nil && ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
		return
	}

	body, err := p.Client.FetchRaw(r.Context(), path, params)
	if err != nil {
		p.relayError(w, path, err)
		return
	}

	if err := p.Cache.Set(r.Context(), key, body, int(p.TTL.Seconds())); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("proxy cache set failed")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// relayError maps upstream failures to structured JSON without leaking the
// upstream error body beyond our own logs.
func (p *Proxy) relayError(w http.ResponseWriter, path string, err error) {
	if errors.Is(err, domain.ErrBaseURLUnset) {
		writeProxyError(w, http.StatusInternalServerError,
			proxyError{Error: "WordPress API not configured", Status: http.StatusInternalServerError})
		return
	}
	var reqErr *wordpress.RequestError
	if errors.As(err, &reqErr) {
		log.Error().Int("status", reqErr.Status).Str("path", path).Str("body", reqErr.Body).Msg("proxy upstream error")
		writeProxyError(w, http.StatusInternalServerError,
			proxyError{Error: "Upstream request failed", Status: reqErr.Status})
		return
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		writeProxyError(w, http.StatusGatewayTimeout,
			proxyError{Error: "Upstream request timed out", Status: http.StatusGatewayTimeout})
		return
	}
	log.Error().Err(err).Str("path", path).Msg("proxy request failed")
	writeProxyError(w, http.StatusInternalServerError,
		proxyError{Error: "Upstream request failed", Status: http.StatusInternalServerError})
}

// CacheKey is the proxy cache key for a relayed request. Exported so the
// cache warmer can prime the same keys.
func CacheKey(path string, params map[string]string) string {
	v := url.Values{}
	for k, val := range params {
		v.Set(k, val)
	}
	return "wp:" + path + "?" + v.Encode()
}
