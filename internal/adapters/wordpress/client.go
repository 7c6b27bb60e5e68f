package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"stayfront/internal/adapters/observability"
	"stayfront/internal/domain"
)

const apiPrefix = "/wp-json/wp/v2/"

// Per-collection page-size defaults. Rooms and posts are small collections
// fetched whole; amenities and points of interest page at 50.
const (
	perPageLarge = "100"
	perPageSmall = "50"
)

// RequestError is a non-2xx upstream response.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("wordpress: remote status %d: %s", e.Status, e.Body)
}

// MalformedResponseError is a 2xx body that did not decode as expected.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("wordpress: malformed response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 15 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// Fetch issues a single GET against base + /wp-json/wp/v2/ + endpoint and
// decodes the body into out. No retries: the caller's policy decides whether
// a failure propagates or degrades.
func (c *Client) Fetch(ctx context.Context, endpoint string, params map[string]string, out any) error {
	body, err := c.FetchRaw(ctx, endpoint, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &MalformedResponseError{Err: err}
	}
	return nil
}

// FetchRaw returns the verbatim 2xx body. Used by Fetch, the proxy relay,
// and the cache warmer.
func (c *Client) FetchRaw(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	if c.base == "" {
		return nil, domain.ErrBaseURLUnset
	}
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	u := c.base + apiPrefix + strings.TrimLeft(endpoint, "/")
	if qs := encodeParams(params); qs != "" {
		u += "?" + qs
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	// every call must observe the origin's current state
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("User-Agent", "stayfront/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		observability.ObserveExternal("wordpress", endpoint, 0, time.Since(start))
		return nil, err
	}
	defer resp.Body.Close()

	elapsed := time.Since(start)
	observability.ObserveExternal("wordpress", endpoint, resp.StatusCode, elapsed)
	log.Debug().
		Str("url", u).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("wp_fetch")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &RequestError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	return io.ReadAll(resp.Body)
}

// encodeParams builds a deterministic query string, skipping empty values.
func encodeParams(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}
	return b.String()
}

// withDefaults merges caller params over the accessor's default set.
func withDefaults(perPage string, params map[string]string) map[string]string {
	merged := map[string]string{
		"_embed":   "true",
		"per_page": perPage,
	}
	for k, v := range params {
		merged[k] = v
	}
	return merged
}

// ---- Domain accessors ----

func (c *Client) ListByType(ctx context.Context, typ string, params map[string]string) ([]domain.ContentItem, error) {
	perPage := perPageSmall
	if typ == "rooms" || typ == "posts" {
		perPage = perPageLarge
	}
	var out []domain.ContentItem
	if err := c.Fetch(ctx, typ, withDefaults(perPage, params), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBySlug is the fail-hard lookup: zero matches is domain.ErrNotFound.
func (c *Client) GetBySlug(ctx context.Context, typ, slug string) (domain.ContentItem, error) {
	item, err := c.GetBySlugOrNil(ctx, typ, slug)
	if err != nil {
		return domain.ContentItem{}, err
	}
	if item == nil {
		return domain.ContentItem{}, fmt.Errorf("%s/%s: %w", typ, slug, domain.ErrNotFound)
	}
	return *item, nil
}

// GetBySlugOrNil is the tolerant lookup: zero matches is (nil, nil).
func (c *Client) GetBySlugOrNil(ctx context.Context, typ, slug string) (*domain.ContentItem, error) {
	var out []domain.ContentItem
	params := withDefaults(perPageSmall, map[string]string{"slug": slug})
	if err := c.Fetch(ctx, typ, params, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

func (c *Client) ListRooms(ctx context.Context) ([]domain.ContentItem, error) {
	return c.ListByType(ctx, "rooms", nil)
}

// RoomRates is the enrichment fetch: id and custom fields only, keyed by id.
// Callers treat its failure as best-effort.
func (c *Client) RoomRates(ctx context.Context) (map[int64]map[string]any, error) {
	var out []struct {
		ID  int64          `json:"id"`
		ACF map[string]any `json:"acf"`
	}
	params := map[string]string{
		"per_page": perPageLarge,
		"_fields":  "id,acf",
	}
	if err := c.Fetch(ctx, "rooms", params, &out); err != nil {
		return nil, err
	}
	rates := make(map[int64]map[string]any, len(out))
	for _, r := range out {
		if r.ACF != nil {
			rates[r.ID] = r.ACF
		}
	}
	return rates, nil
}
