package domain

// Room is the normalized view over a "rooms" ContentItem. Every field is
// total: the normalizer guarantees a usable name, rate label, and image URL
// regardless of how sparse the source record was.
type Room struct {
	ID               int64          `json:"id"`
	Slug             string         `json:"slug"`
	Name             string         `json:"name"`
	RateLabel        string         `json:"rate"`
	Capacity         int            `json:"capacity,omitempty"`
	Size             string         `json:"size,omitempty"`
	BedType          string         `json:"bedType,omitempty"`
	Gallery          []GalleryImage `json:"gallery"`
	ImageURL         string         `json:"imageUrl"`
	ShortDescription string         `json:"shortDescription,omitempty"`
}
