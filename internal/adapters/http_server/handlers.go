package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"stayfront/internal/app"
	"stayfront/internal/domain"
)

type Handlers struct {
	Svc   *app.ContentService
	Proxy *Proxy
	Now   func() time.Time
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	if h.Now == nil {
		h.Now = time.Now
	}
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/rooms", h.listRooms)
	s.mux.Get("/v1/rooms/{slug}", h.getRoom)
	s.mux.Get("/v1/amenities", h.listAmenities)
	s.mux.Get("/v1/pois", h.listPOIs)
	s.mux.Get("/v1/pages/{slug}", h.getPage)
	s.mux.Post("/v1/booking", h.submitBooking)
	if h.Proxy != nil {
		s.mux.Get("/api/wp", h.Proxy.Relay)
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// listRooms always answers 200: the service degrades failures to an empty
// list so the room grid stays renderable.
func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.Svc.Rooms(r.Context()))
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.Svc.RoomBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "room not found")
			return
		}
		writeProblem(w, http.StatusBadGateway, "Upstream Error", "room fetch failed")
		return
	}
	writeJSON(w, r, room)
}

func (h *Handlers) listAmenities(w http.ResponseWriter, r *http.Request) {
	items, err := h.Svc.Amenities(r.Context())
	if err != nil {
		writeProblem(w, http.StatusBadGateway, "Upstream Error", "amenities fetch failed")
		return
	}
	writeJSON(w, r, items)
}

func (h *Handlers) listPOIs(w http.ResponseWriter, r *http.Request) {
	items, err := h.Svc.PointsOfInterest(r.Context())
	if err != nil {
		writeProblem(w, http.StatusBadGateway, "Upstream Error", "points of interest fetch failed")
		return
	}
	writeJSON(w, r, items)
}

func (h *Handlers) getPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.Svc.PageBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeProblem(w, http.StatusBadGateway, "Upstream Error", "page fetch failed")
		return
	}
	if page == nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "page not found")
		return
	}
	writeJSON(w, r, page)
}

// submitBooking runs the booking form state machine against the posted
// fields. Valid submissions answer 303 with the booking target; invalid ones
// answer 422 with per-field errors.
func (h *Handlers) submitBooking(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed form body")
		return
	}

	form := app.NewBookingForm(h.Now())
	if t, err := time.Parse("2006-01-02", r.PostFormValue("checkIn")); err == nil {
		form.SetCheckIn(t)
	}
	if t, err := time.Parse("2006-01-02", r.PostFormValue("checkOut")); err == nil {
		form.SetCheckOut(t)
	}
	if slug := r.PostFormValue("roomType"); slug != "" {
		form.SelectRoom(slug)
	}
	form.SetAdults(r.PostFormValue("adults"))
	form.SetChildren(r.PostFormValue("children"))

	resolve := func(slug string) (int64, bool) {
		room, err := h.Svc.RoomBySlug(r.Context(), slug)
		if err != nil {
			return 0, false
		}
		return room.ID, true
	}

	target, ok := form.Submit(resolve)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{"errors": form.Errors})
		return
	}

	w.Header().Set("Location", target)
	w.WriteHeader(http.StatusSeeOther)
	_ = json.NewEncoder(w).Encode(map[string]string{"target": target})
}
