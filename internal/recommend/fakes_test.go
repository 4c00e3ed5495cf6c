package recommend

import (
	"context"
	"errors"
	"strings"
	"sync"

	"job-recommender/internal/extract"
	"job-recommender/internal/jobs"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f fakeExtractor) Extract(_ context.Context, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if len(data) == 0 {
		return "", extract.ErrUnreadableDocument
	}
	return f.text, nil
}

// scriptedClient answers by prompt prefix; unmatched prompts fail.
type scriptedClient struct {
	mu      sync.Mutex
	replies map[string]string
	err     error
	prompts []string
	budgets []int
}

func (s *scriptedClient) Complete(_ context.Context, prompt string, maxTokens int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	s.budgets = append(s.budgets, maxTokens)
	if s.err != nil {
		return "", s.err
	}
	for prefix, reply := range s.replies {
		if strings.HasPrefix(prompt, prefix) {
			return reply, nil
		}
	}
	return "", errors.New("no scripted reply")
}

func (s *scriptedClient) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

type recordingSource struct {
	name, label string
	listings    []jobs.Listing
	err         error

	mu       sync.Mutex
	keywords []string
	rows     []int
}

func (r *recordingSource) Name() string  { return r.name }
func (r *recordingSource) Label() string { return r.label }

func (r *recordingSource) Search(_ context.Context, keywords string, rows int) ([]jobs.Listing, error) {
	r.mu.Lock()
	r.keywords = append(r.keywords, keywords)
	r.rows = append(r.rows, rows)
	r.mu.Unlock()
	return r.listings, r.err
}

const (
	summaryPrefix  = "Summarize this resume"
	gapsPrefix     = "Analyze this resume"
	roadmapPrefix  = "Based on this resume, suggest"
	keywordsPrefix = "Based on this resume summary"
)

func threeListings(source string) []jobs.Listing {
	return []jobs.Listing{
		{Title: "Data Scientist", CompanyName: "Acme", Location: "Bengaluru", URL: "https://example.com/1", Source: source},
		{Title: "ML Engineer", CompanyName: "Globex", Location: "Pune", URL: "https://example.com/2", Source: source},
		{Title: "AI Engineer", URL: "https://example.com/3", Source: source},
	}
}
