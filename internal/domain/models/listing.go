package models

import "time"

// SourceKind identifies where a comparable listing came from.
type SourceKind string

const (
	SourceAPI    SourceKind = "api"
	SourceScrape SourceKind = "scrape"
)

// ComparableListing is one sold or active marketplace listing used as a
// price data point. Fetched fresh per analysis call, never persisted by
// the engine itself.
type ComparableListing struct {
	ItemID    string     `json:"item_id"`
	Title     string     `json:"title"`
	Price     float64    `json:"price"`
	Shipping  float64    `json:"shipping"`
	Condition string     `json:"condition,omitempty"`
	SoldDate  time.Time  `json:"sold_date,omitempty"`
	URL       string     `json:"url,omitempty"`
	Source    SourceKind `json:"source"`
}

// Total returns price plus shipping, the value statistics operate on.
func (c *ComparableListing) Total() float64 {
	return c.Price + c.Shipping
}
