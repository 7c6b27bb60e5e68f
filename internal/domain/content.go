package domain

// Rendered is WordPress's rich-text envelope ({"rendered": "<p>..</p>"}).
type Rendered struct {
	Rendered string `json:"rendered"`
}

// ContentItem is the canonical remote record as the WP REST API returns it.
// Custom fields (ACF) and embedded relations are kept loose; the normalizer
// in internal/app is the only place allowed to interpret their shapes.
type ContentItem struct {
	ID       int64          `json:"id"`
	Slug     string         `json:"slug"`
	Title    Rendered       `json:"title"`
	Content  Rendered       `json:"content"`
	Excerpt  Rendered       `json:"excerpt"`
	ACF      map[string]any `json:"acf,omitempty"`
	Embedded *Embedded      `json:"_embedded,omitempty"`
}

// Embedded carries relations resolved inline via ?_embed.
type Embedded struct {
	FeaturedMedia []Media `json:"wp:featuredmedia,omitempty"`
}

type Media struct {
	ID           int64        `json:"id"`
	SourceURL    string       `json:"source_url"`
	AltText      string       `json:"alt_text"`
	MediaDetails MediaDetails `json:"media_details"`
}

type MediaDetails struct {
	Sizes map[string]MediaSize `json:"sizes"`
}

type MediaSize struct {
	SourceURL string `json:"source_url"`
}

// GalleryImage is one entry of a room gallery after normalization.
type GalleryImage struct {
	ID  int64  `json:"id,omitempty"`
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}
