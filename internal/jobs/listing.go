package jobs

import "context"

// Listing is one job posting normalized across sources.
type Listing struct {
	Title       string `json:"title"`
	CompanyName string `json:"companyName"`
	Location    string `json:"location"`
	URL         string `json:"url"`
	Source      string `json:"source"`
}

// Result is the ordered listing set returned by one source.
type Result struct {
	Source   string    `json:"source"`
	Label    string    `json:"label"`
	Listings []Listing `json:"listings"`
}

// Empty reports whether the source produced no listings.
func (r Result) Empty() bool {
	return len(r.Listings) == 0
}

// Source searches one job board.
type Source interface {
	// Name is the stable identifier used in logs and metrics.
	Name() string
	// Label is the display name, e.g. "LinkedIn".
	Label() string
	Search(ctx context.Context, keywords string, rows int) ([]Listing, error)
}
