package jobs

import (
	"context"
	"strings"
)

const (
	NaukriName         = "naukri"
	DefaultNaukriActor = "alpcnRV9YI9lYVPWk"
)

type naukriInput struct {
	Keyword    string `json:"keyword"`
	MaxJobs    int    `json:"maxJobs"`
	Freshness  string `json:"freshness"`
	SortBy     string `json:"sortBy"`
	Experience string `json:"experience"`
}

type naukriJob struct {
	Title       string `json:"title"`
	CompanyName string `json:"companyName"`
	Location    string `json:"location"`
	URL         string `json:"url"`
}

// Naukri searches Naukri postings through an Apify scraper actor.
type Naukri struct {
	apify   *ApifyClient
	actorID string
}

// NewNaukri creates the Naukri source. An empty actorID uses the default.
func NewNaukri(apify *ApifyClient, actorID string) *Naukri {
	if strings.TrimSpace(actorID) == "" {
		actorID = DefaultNaukriActor
	}
	return &Naukri{apify: apify, actorID: actorID}
}

func (n *Naukri) Name() string  { return NaukriName }
func (n *Naukri) Label() string { return "Naukri" }

// Search returns at most rows listings matching keywords.
func (n *Naukri) Search(ctx context.Context, keywords string, rows int) ([]Listing, error) {
	input := naukriInput{
		Keyword:    keywords,
		MaxJobs:    rows,
		Freshness:  "all",
		SortBy:     "relevance",
		Experience: "all",
	}
	var items []naukriJob
	if err := n.apify.Run(ctx, n.actorID, input, &items); err != nil {
		return nil, err
	}

	listings := make([]Listing, 0, len(items))
	for _, item := range items {
		listings = append(listings, Listing{
			Title:       item.Title,
			CompanyName: item.CompanyName,
			Location:    item.Location,
			URL:         item.URL,
			Source:      NaukriName,
		})
	}
	return truncate(listings, rows), nil
}

var _ Source = (*Naukri)(nil)
