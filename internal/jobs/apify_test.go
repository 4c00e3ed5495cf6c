package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type capturedRequest struct {
	path   string
	auth   string
	params map[string]any
}

func newApifyServer(t *testing.T, status int, body string, captured *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if captured != nil {
			captured.path = r.URL.Path
			captured.auth = r.Header.Get("Authorization")
			if err := json.NewDecoder(r.Body).Decode(&captured.params); err != nil {
				t.Errorf("decode input: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLinkedInSearchSendsActorInput(t *testing.T) {
	var captured capturedRequest
	srv := newApifyServer(t, http.StatusOK, `[
		{"title":"ML Engineer","companyName":"Acme","location":"Bengaluru","link":"https://linkedin.example/1"},
		{"title":"Data Scientist","companyName":"Globex","location":"Pune","link":"https://linkedin.example/2"}
	]`, &captured)

	src := NewLinkedIn(NewApifyClient("tok", srv.URL, srv.Client()), "", "")
	listings, err := src.Search(context.Background(), "Data Scientist, ML Engineer", 60)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if captured.path != "/v2/acts/"+DefaultLinkedInActor+"/run-sync-get-dataset-items" {
		t.Fatalf("path = %s", captured.path)
	}
	if captured.auth != "Bearer tok" {
		t.Fatalf("authorization = %q", captured.auth)
	}
	if captured.params["title"] != "Data Scientist, ML Engineer" || captured.params["location"] != "India" || captured.params["rows"] != float64(60) {
		t.Fatalf("input = %v", captured.params)
	}
	proxy, _ := captured.params["proxy"].(map[string]any)
	if proxy["useApifyProxy"] != true {
		t.Fatalf("proxy = %v", proxy)
	}
	groups, _ := proxy["apifyProxyGroups"].([]any)
	if len(groups) != 1 || groups[0] != "RESIDENTIAL" {
		t.Fatalf("proxy groups = %v", groups)
	}

	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}
	want := Listing{Title: "ML Engineer", CompanyName: "Acme", Location: "Bengaluru", URL: "https://linkedin.example/1", Source: LinkedInName}
	if listings[0] != want {
		t.Fatalf("listing = %+v", listings[0])
	}
}

func TestNaukriSearchNormalizesURL(t *testing.T) {
	var captured capturedRequest
	srv := newApifyServer(t, http.StatusOK, `[{"title":"Python Developer","url":"https://naukri.example/9"}]`, &captured)

	src := NewNaukri(NewApifyClient("tok", srv.URL, srv.Client()), "custom~actor")
	listings, err := src.Search(context.Background(), "Python Developer", 60)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if captured.path != "/v2/acts/custom~actor/run-sync-get-dataset-items" {
		t.Fatalf("path = %s", captured.path)
	}
	wantInput := map[string]any{
		"keyword":    "Python Developer",
		"maxJobs":    float64(60),
		"freshness":  "all",
		"sortBy":     "relevance",
		"experience": "all",
	}
	for k, v := range wantInput {
		if captured.params[k] != v {
			t.Fatalf("input[%s] = %v, want %v", k, captured.params[k], v)
		}
	}
	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(listings))
	}
	got := listings[0]
	if got.URL != "https://naukri.example/9" || got.CompanyName != "" || got.Location != "" || got.Source != NaukriName {
		t.Fatalf("listing = %+v", got)
	}
}

func TestSearchTruncatesToRows(t *testing.T) {
	items := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		items = append(items, fmt.Sprintf(`{"title":"Job %d","url":"u%d"}`, i, i))
	}
	srv := newApifyServer(t, http.StatusOK, "["+strings.Join(items, ",")+"]", nil)

	listings, err := NewNaukri(NewApifyClient("tok", srv.URL, srv.Client()), "").Search(context.Background(), "Go", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(listings) != 3 || listings[2].Title != "Job 2" {
		t.Fatalf("listings = %+v", listings)
	}
}

func TestApifyRunErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "non 2xx", status: http.StatusPaymentRequired, body: `{"error":{"type":"not-enough-usage"}}`, wantErr: "unexpected status 402"},
		{name: "bad json", status: http.StatusOK, body: `not json`, wantErr: "decode items"},
		{name: "object instead of array", status: http.StatusOK, body: `{"items":[]}`, wantErr: "decode items"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			srv := newApifyServer(t, tt.status, tt.body, nil)
			_, err := NewLinkedIn(NewApifyClient("tok", srv.URL, srv.Client()), "", "").Search(context.Background(), "Go", 10)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestApifyRunRequiresToken(t *testing.T) {
	_, err := NewNaukri(NewApifyClient("  ", "", nil), "").Search(context.Background(), "Go", 10)
	if !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestNaukriEmptyActorUsesDefault(t *testing.T) {
	var captured capturedRequest
	srv := newApifyServer(t, http.StatusOK, `[]`, &captured)

	if _, err := NewNaukri(NewApifyClient("tok", srv.URL, srv.Client()), " ").Search(context.Background(), "Go", 5); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if captured.path != "/v2/acts/"+DefaultNaukriActor+"/run-sync-get-dataset-items" {
		t.Fatalf("path = %s", captured.path)
	}
}
