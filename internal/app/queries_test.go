package app_test

import (
	"context"
	"errors"
	"testing"

	"stayfront/internal/app"
	"stayfront/internal/domain"
)

// ---- fakes ----

type fakeSource struct {
	rooms     []domain.ContentItem
	roomsErr  error
	rates     map[int64]map[string]any
	ratesErr  error
	bySlug    map[string]domain.ContentItem
	listErr   error
	listItems []domain.ContentItem
}

func (f *fakeSource) ListByType(ctx context.Context, typ string, params map[string]string) ([]domain.ContentItem, error) {
	return f.listItems, f.listErr
}

func (f *fakeSource) GetBySlug(ctx context.Context, typ, slug string) (domain.ContentItem, error) {
	if it, ok := f.bySlug[typ+"/"+slug]; ok {
		return it, nil
	}
	return domain.ContentItem{}, domain.ErrNotFound
}

func (f *fakeSource) GetBySlugOrNil(ctx context.Context, typ, slug string) (*domain.ContentItem, error) {
	if it, ok := f.bySlug[typ+"/"+slug]; ok {
		return &it, nil
	}
	return nil, nil
}

func (f *fakeSource) ListRooms(ctx context.Context) ([]domain.ContentItem, error) {
	return f.rooms, f.roomsErr
}

func (f *fakeSource) RoomRates(ctx context.Context) (map[int64]map[string]any, error) {
	return f.rates, f.ratesErr
}

// ---- tests ----

func TestRooms_EnrichmentMerge(t *testing.T) {
	src := &fakeSource{
		rooms: []domain.ContentItem{
			{ID: 1, Slug: "deluxe", Title: domain.Rendered{Rendered: "Deluxe"}},
			{ID: 2, Slug: "suite", ACF: map[string]any{"rate": "$300"}},
		},
		rates: map[int64]map[string]any{1: {"price": 120.0}},
	}
	svc := app.NewContentService(src)

	rooms := svc.Rooms(context.Background())
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(rooms))
	}
	if rooms[0].RateLabel != "$120" {
		t.Fatalf("expected enrichment-backed rate $120, got %q", rooms[0].RateLabel)
	}
	if rooms[1].RateLabel != "$300" {
		t.Fatalf("primary rate must win over enrichment, got %q", rooms[1].RateLabel)
	}
}

func TestRooms_DegradesToEmptyOnFailure(t *testing.T) {
	src := &fakeSource{roomsErr: errors.New("upstream down")}
	svc := app.NewContentService(src)

	rooms := svc.Rooms(context.Background())
	if rooms == nil || len(rooms) != 0 {
		t.Fatalf("expected empty slice on failure, got %#v", rooms)
	}
}

func TestRooms_EnrichmentFailureIsSwallowed(t *testing.T) {
	src := &fakeSource{
		rooms:    []domain.ContentItem{{ID: 1, Slug: "deluxe"}},
		ratesErr: errors.New("fields endpoint broken"),
	}
	svc := app.NewContentService(src)

	rooms := svc.Rooms(context.Background())
	if len(rooms) != 1 {
		t.Fatalf("enrichment failure must not drop rooms, got %d", len(rooms))
	}
	if rooms[0].RateLabel != "$0" {
		t.Fatalf("expected zero-rate sentinel, got %q", rooms[0].RateLabel)
	}
}

func TestRoomBySlug_NotFound(t *testing.T) {
	svc := app.NewContentService(&fakeSource{})
	_, err := svc.RoomBySlug(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPageBySlug_Tolerant(t *testing.T) {
	svc := app.NewContentService(&fakeSource{})
	page, err := svc.PageBySlug(context.Background(), "missing")
	if err != nil {
		t.Fatalf("tolerant lookup must not error: %v", err)
	}
	if page != nil {
		t.Fatalf("expected nil page, got %+v", page)
	}
}
