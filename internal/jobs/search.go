package jobs

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"job-recommender/internal/shared/metrics"
	"job-recommender/internal/shared/telemetry"
)

// SearchAll queries every source concurrently with the same keywords and row
// count. A failing source yields an empty Result; one source never affects another.
// Results keep the order of sources.
func SearchAll(ctx context.Context, sources []Source, keywords string, rows int) []Result {
	results := make([]Result, len(sources))
	var g errgroup.Group
	for i, src := range sources {
		i, src := i, src
		results[i] = Result{Source: src.Name(), Label: src.Label(), Listings: []Listing{}}
		g.Go(func() error {
			start := time.Now()
			listings, err := search(ctx, src, keywords, rows)
			metrics.ObserveJobSearch(src.Name(), len(listings), err)
			if err != nil {
				telemetry.Warn("jobs.search_failed", map[string]any{
					"request_id":  telemetry.RequestID(ctx),
					"source":      src.Name(),
					"keywords":    keywords,
					"duration_ms": time.Since(start).Milliseconds(),
					"error":       err.Error(),
				})
				return nil
			}
			telemetry.Info("jobs.search", map[string]any{
				"request_id":  telemetry.RequestID(ctx),
				"source":      src.Name(),
				"listings":    len(listings),
				"duration_ms": time.Since(start).Milliseconds(),
			})
			if listings != nil {
				results[i].Listings = listings
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func search(ctx context.Context, src Source, keywords string, rows int) (listings []Listing, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			listings = nil
			err = fmt.Errorf("job source panic: %v", rec)
		}
	}()
	return src.Search(ctx, keywords, rows)
}
