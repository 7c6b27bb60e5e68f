package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned by fail-hard slug lookups when the remote source
// has zero matches. Tolerant lookups return (nil, nil) instead.
var ErrNotFound = errors.New("content: not found")

// ErrBaseURLUnset means the WordPress base URL was never configured. This is
// operational misconfiguration, not a bad request.
var ErrBaseURLUnset = errors.New("wordpress base url not configured")

// ContentSource is the read-only port onto the remote content API.
type ContentSource interface {
	ListByType(ctx context.Context, typ string, params map[string]string) ([]ContentItem, error)
	GetBySlug(ctx context.Context, typ, slug string) (ContentItem, error)
	GetBySlugOrNil(ctx context.Context, typ, slug string) (*ContentItem, error)
	ListRooms(ctx context.Context) ([]ContentItem, error)
	RoomRates(ctx context.Context) (map[int64]map[string]any, error)
}

// Cache stores raw response bytes for a bounded freshness window. Used by the
// proxy relay only; the fetch client itself is deliberately cache-free.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte, ttlSec int) error
	Del(ctx context.Context, key string) error
}
