package wordpress_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stayfront/internal/adapters/wordpress"
	"stayfront/internal/domain"
)

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestFetch_BuildsEndpointAndDefaults(t *testing.T) {
	var gotPath, gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 1, "slug": "deluxe"}]`))
	}))
	defer ts.Close()

	cl := wordpress.New(ts.URL, 100)
	items, err := cl.ListRooms(testCtx(t))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if gotPath != "/wp-json/wp/v2/rooms" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotQuery != "_embed=true&per_page=100" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	if len(items) != 1 || items[0].Slug != "deluxe" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestFetch_404IsRequestError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl := wordpress.New(ts.URL, 100)
	_, err := cl.ListRooms(testCtx(t))

	var reqErr *wordpress.RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if reqErr.Status != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", reqErr.Status)
	}
}

func TestFetch_MalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"this is": not json`))
	}))
	defer ts.Close()

	cl := wordpress.New(ts.URL, 100)
	_, err := cl.ListRooms(testCtx(t))

	var malformed *wordpress.MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
}

func TestFetch_BaseURLUnset(t *testing.T) {
	cl := wordpress.New("", 100)
	_, err := cl.ListRooms(testCtx(t))
	if !errors.Is(err, domain.ErrBaseURLUnset) {
		t.Fatalf("expected ErrBaseURLUnset, got %v", err)
	}
}

func TestGetBySlug_Modes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("slug") == "deluxe" {
			_, _ = w.Write([]byte(`[{"id": 17, "slug": "deluxe"}]`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	cl := wordpress.New(ts.URL, 100)
	ctx := testCtx(t)

	item, err := cl.GetBySlug(ctx, "rooms", "deluxe")
	if err != nil || item.ID != 17 {
		t.Fatalf("expected room 17, got %+v err %v", item, err)
	}

	_, err = cl.GetBySlug(ctx, "rooms", "ghost")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("fail-hard lookup must return ErrNotFound, got %v", err)
	}

	got, err := cl.GetBySlugOrNil(ctx, "rooms", "ghost")
	if err != nil || got != nil {
		t.Fatalf("tolerant lookup must return (nil, nil), got %+v err %v", got, err)
	}
}

func TestRoomRates_FieldsParam(t *testing.T) {
	var gotFields string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFields = r.URL.Query().Get("_fields")
		_, _ = w.Write([]byte(`[{"id": 3, "acf": {"price": 150}}, {"id": 4}]`))
	}))
	defer ts.Close()

	cl := wordpress.New(ts.URL, 100)
	rates, err := cl.RoomRates(testCtx(t))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if gotFields != "id,acf" {
		t.Fatalf("expected _fields=id,acf, got %q", gotFields)
	}
	if len(rates) != 1 {
		t.Fatalf("entries without custom fields must be skipped, got %v", rates)
	}
	if rates[3]["price"] != 150.0 {
		t.Fatalf("unexpected rates: %v", rates)
	}
}

func TestFetch_EmptyParamsOmitted(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	cl := wordpress.New(ts.URL, 100)
	_, err := cl.ListByType(testCtx(t), "amenities", map[string]string{"search": ""})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if gotQuery != "_embed=true&per_page=50" {
		t.Fatalf("empty param must be omitted, got %q", gotQuery)
	}
}
