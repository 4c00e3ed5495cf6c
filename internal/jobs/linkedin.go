package jobs

import (
	"context"
	"strings"
)

const (
	LinkedInName          = "linkedin"
	DefaultLinkedInActor  = "BHzefUZlZRKWxkTck"
	DefaultLinkedInRegion = "India"
)

type linkedInInput struct {
	Title    string        `json:"title"`
	Location string        `json:"location"`
	Rows     int           `json:"rows"`
	Proxy    linkedInProxy `json:"proxy"`
}

type linkedInProxy struct {
	UseApifyProxy    bool     `json:"useApifyProxy"`
	ApifyProxyGroups []string `json:"apifyProxyGroups"`
}

type linkedInJob struct {
	Title       string `json:"title"`
	CompanyName string `json:"companyName"`
	Location    string `json:"location"`
	Link        string `json:"link"`
}

// LinkedIn searches LinkedIn postings through an Apify scraper actor.
type LinkedIn struct {
	apify    *ApifyClient
	actorID  string
	location string
}

// NewLinkedIn creates the LinkedIn source. Empty actorID or location use the defaults.
func NewLinkedIn(apify *ApifyClient, actorID, location string) *LinkedIn {
	if strings.TrimSpace(actorID) == "" {
		actorID = DefaultLinkedInActor
	}
	if strings.TrimSpace(location) == "" {
		location = DefaultLinkedInRegion
	}
	return &LinkedIn{apify: apify, actorID: actorID, location: location}
}

func (l *LinkedIn) Name() string  { return LinkedInName }
func (l *LinkedIn) Label() string { return "LinkedIn" }

// Search returns at most rows listings matching keywords.
func (l *LinkedIn) Search(ctx context.Context, keywords string, rows int) ([]Listing, error) {
	input := linkedInInput{
		Title:    keywords,
		Location: l.location,
		Rows:     rows,
		Proxy: linkedInProxy{
			UseApifyProxy:    true,
			ApifyProxyGroups: []string{"RESIDENTIAL"},
		},
	}
	var items []linkedInJob
	if err := l.apify.Run(ctx, l.actorID, input, &items); err != nil {
		return nil, err
	}

	listings := make([]Listing, 0, len(items))
	for _, item := range items {
		listings = append(listings, Listing{
			Title:       item.Title,
			CompanyName: item.CompanyName,
			Location:    item.Location,
			URL:         item.Link,
			Source:      LinkedInName,
		})
	}
	return truncate(listings, rows), nil
}

var _ Source = (*LinkedIn)(nil)
