package app

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"stayfront/internal/domain"
)

const (
	currencyPrefix = "$"
	zeroRate       = currencyPrefix + "0"
	// served from the front-end's static assets
	defaultRoomImage = "/images/room-placeholder.jpg"
)

// descending preference when picking a rendered image variant
var imageSizePreference = []string{"large", "medium_large", "medium", "thumbnail"}

// stripPolicy removes every tag; used for plain-text extraction.
var stripPolicy = bluemonday.StrictPolicy()

/********** flexible lookup helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns the string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstStr: first non-empty string across several paths.
func firstStr(m map[string]any, paths ...string) string {
	for _, p := range paths {
		if s := strings.TrimSpace(lookupStr(m, p)); s != "" {
			return s
		}
	}
	return ""
}

// firstInt: int from several paths (float64/int/string, JSON numbers arrive
// as float64).
func firstInt(m map[string]any, paths ...string) int {
	for _, p := range paths {
		switch v := lookupAny(m, p).(type) {
		case float64:
			return int(v)
		case int:
			return v
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n
			}
		}
	}
	return 0
}

/********** gallery **********/

// NormalizeGallery accepts the ACF gallery value in any of its three shapes
// (absent, bare object, list) and always yields a list.
func NormalizeGallery(v any) []domain.GalleryImage {
	switch g := v.(type) {
	case nil:
		return []domain.GalleryImage{}
	case []any:
		out := make([]domain.GalleryImage, 0, len(g))
		for _, it := range g {
			if img, ok := galleryImage(it); ok {
				out = append(out, img)
			}
		}
		return out
	case map[string]any:
		if img, ok := galleryImage(g); ok {
			return []domain.GalleryImage{img}
		}
		return []domain.GalleryImage{}
	default:
		return []domain.GalleryImage{}
	}
}

func galleryImage(v any) (domain.GalleryImage, bool) {
	switch t := v.(type) {
	case string:
		if t == "" {
			return domain.GalleryImage{}, false
		}
		return domain.GalleryImage{URL: t}, true
	case map[string]any:
		img := domain.GalleryImage{
			URL: firstStr(t, "url", "source_url", "src", "sizes.large"),
			Alt: firstStr(t, "alt", "alt_text", "title"),
		}
		if id := firstInt(t, "id", "ID"); id != 0 {
			img.ID = int64(id)
		}
		if img.URL == "" {
			return domain.GalleryImage{}, false
		}
		return img, true
	default:
		return domain.GalleryImage{}, false
	}
}

/********** display name **********/

// ResolveDisplayName falls back title -> custom name field -> title-cased
// slug -> synthetic "Room {id}". Never empty for a non-empty slug.
func ResolveDisplayName(item domain.ContentItem) string {
	if t := strings.TrimSpace(plainText(item.Title.Rendered)); t != "" {
		return t
	}
	if n := firstStr(item.ACF, "name", "room_name", "display_name"); n != "" {
		return n
	}
	if t := titleCaseSlug(item.Slug); t != "" {
		return t
	}
	return fmt.Sprintf("Room %d", item.ID)
}

func titleCaseSlug(slug string) string {
	if slug == "" {
		return ""
	}
	parts := strings.Split(slug, "-")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, strings.ToUpper(p[:1])+p[1:])
	}
	return strings.Join(out, " ")
}

/********** rate **********/

// FormatRate prefixes a rate value with the currency marker. Idempotent:
// already-prefixed input passes through untouched.
func FormatRate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return zeroRate
	}
	if strings.HasPrefix(s, currencyPrefix) {
		return s
	}
	return currencyPrefix + s
}

// ResolveRate resolves the nightly-rate label: dedicated rate string ->
// numeric price -> enrichment custom fields -> zero sentinel.
func ResolveRate(item domain.ContentItem, extra map[string]any) string {
	if s := firstStr(item.ACF, "rate", "price_display"); s != "" {
		return FormatRate(s)
	}
	if n := firstInt(item.ACF, "price", "nightly_rate"); n != 0 {
		return FormatRate(strconv.Itoa(n))
	}
	if s := firstStr(extra, "rate", "price_display"); s != "" {
		return FormatRate(s)
	}
	if n := firstInt(extra, "price", "nightly_rate"); n != 0 {
		return FormatRate(strconv.Itoa(n))
	}
	return zeroRate
}

/********** image **********/

// ResolveImageURL is total: better_featured_image -> embedded size variants
// in descending preference -> embedded raw source -> local placeholder.
func ResolveImageURL(item domain.ContentItem) string {
	if u := firstStr(item.ACF, "better_featured_image.source_url", "better_featured_image"); u != "" {
		return u
	}
	if item.Embedded != nil && len(item.Embedded.FeaturedMedia) > 0 {
		media := item.Embedded.FeaturedMedia[0]
		for _, size := range imageSizePreference {
			if s, ok := media.MediaDetails.Sizes[size]; ok && s.SourceURL != "" {
				return s.SourceURL
			}
		}
		if media.SourceURL != "" {
			return media.SourceURL
		}
	}
	return defaultRoomImage
}

/********** short description **********/

// ShortDescription strips markup from the excerpt (preferred) or body and
// cuts at the first sentence-terminating period.
func ShortDescription(item domain.ContentItem) string {
	src := item.Excerpt.Rendered
	if strings.TrimSpace(src) == "" {
		src = item.Content.Rendered
	}
	text := plainText(src)
	if text == "" {
		return ""
	}
	if i := strings.IndexByte(text, '.'); i >= 0 {
		return text[:i+1]
	}
	return text
}

// plainText strips tags, unescapes entities, and collapses whitespace.
func plainText(s string) string {
	s = html.UnescapeString(stripPolicy.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}

/********** room assembly **********/

// ToRoom builds the normalized room view. extra is the best-effort rate
// enrichment for this id and may be nil.
func ToRoom(item domain.ContentItem, extra map[string]any) domain.Room {
	return domain.Room{
		ID:               item.ID,
		Slug:             item.Slug,
		Name:             ResolveDisplayName(item),
		RateLabel:        ResolveRate(item, extra),
		Capacity:         firstInt(item.ACF, "capacity", "guests", "max_guests"),
		Size:             firstStr(item.ACF, "size", "room_size"),
		BedType:          firstStr(item.ACF, "bed_type", "bed"),
		Gallery:          NormalizeGallery(lookupAny(item.ACF, "gallery")),
		ImageURL:         ResolveImageURL(item),
		ShortDescription: ShortDescription(item),
	}
}
