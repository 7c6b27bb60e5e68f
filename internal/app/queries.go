package app

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"stayfront/internal/domain"
)

// ContentService applies the per-collection failure policy on top of the raw
// content source: rooms degrade to empty so the UI stays renderable,
// amenities and points of interest propagate, slug lookups come in fail-hard
// and tolerant flavors.
type ContentService struct {
	src domain.ContentSource
}

func NewContentService(src domain.ContentSource) *ContentService {
	return &ContentService{src: src}
}

// Rooms fetches the room collection and its rate enrichment concurrently.
// The enrichment is best-effort: its failure is logged and swallowed. Any
// failure of the primary fetch degrades to an empty slice, never an error.
func (s *ContentService) Rooms(ctx context.Context) []domain.Room {
	var (
		items []domain.ContentItem
		rates map[int64]map[string]any
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.src.ListRooms(gctx)
		return err
	})
	g.Go(func() error {
		extra, err := s.src.RoomRates(gctx)
		if err != nil {
			log.Warn().Err(err).Msg("room rate enrichment failed; continuing without it")
			return nil
		}
		rates = extra
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("room listing failed; rendering empty")
		return []domain.Room{}
	}

	out := make([]domain.Room, 0, len(items))
	for _, it := range items {
		out = append(out, ToRoom(it, rates[it.ID]))
	}
	return out
}

// RoomBySlug is fail-hard: missing rooms surface domain.ErrNotFound.
func (s *ContentService) RoomBySlug(ctx context.Context, slug string) (domain.Room, error) {
	item, err := s.src.GetBySlug(ctx, "rooms", slug)
	if err != nil {
		return domain.Room{}, err
	}
	return ToRoom(item, nil), nil
}

// Amenities propagates failures to the caller.
func (s *ContentService) Amenities(ctx context.Context) ([]domain.ContentItem, error) {
	return s.src.ListByType(ctx, "amenities", nil)
}

// PointsOfInterest propagates failures to the caller.
func (s *ContentService) PointsOfInterest(ctx context.Context) ([]domain.ContentItem, error) {
	return s.src.ListByType(ctx, "pois", nil)
}

// PageBySlug is tolerant: a missing page is (nil, nil), not an error.
func (s *ContentService) PageBySlug(ctx context.Context, slug string) (*domain.ContentItem, error) {
	return s.src.GetBySlugOrNil(ctx, "pages", slug)
}
