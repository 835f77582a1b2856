// internal/search/engine.go
package search

import (
	"errors"
	"sort"
	"time"

	"foodfinder/internal/catalog"
	"foodfinder/internal/common/config"
	"foodfinder/internal/common/metrics"
	"foodfinder/internal/models"
)

var ErrUnresolvedLocation = errors.New("QUERY_LOCATION_UNRESOLVED")

// Engine filters and ranks the catalog for a structured query. It holds
// only configuration constants; Search is a pure function of its inputs, so
// any number of conversations may search concurrently over one snapshot.
type Engine struct {
	radiusKm   float64
	maxResults int
	weights    config.WeightsConfig
}

func NewEngine(cfg config.SearchConfig) *Engine {
	return &Engine{
		radiusKm:   cfg.RadiusKm,
		maxResults: cfg.MaxResults,
		weights:    cfg.Weights,
	}
}

// Search runs the filter pipeline and scores the survivors. The clock is
// caller-supplied so open-now filtering is deterministic under test. An
// empty result is a valid outcome, never an error.
func (e *Engine) Search(query *models.Query, snap *catalog.Snapshot, now time.Time) (models.RankedResult, error) {
	if !query.HasLocation() {
		return nil, ErrUnresolvedLocation
	}

	metrics.SearchesRun.Inc()

	loc := *query.Location
	var hits models.RankedResult

	for i := range snap.All() {
		venue := &snap.All()[i]

		dist := HaversineKm(loc.Lat, loc.Lon, venue.Location.Lat, venue.Location.Lon)
		if dist > e.radiusKm {
			continue
		}

		overlap := tagOverlap(venue, query.CuisineTags)
		if len(query.CuisineTags) > 0 && overlap == 0 {
			continue
		}
		if !query.WantsTier(venue.PriceTier) {
			continue
		}
		if query.OpenNow && !IsOpenAt(venue, now) {
			continue
		}

		hits = append(hits, models.ScoredVenue{
			Venue:      *venue,
			Score:      e.score(dist, overlap, len(query.CuisineTags), venue.Rating),
			DistanceKm: dist,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		if hits[i].DistanceKm != hits[j].DistanceKm {
			return hits[i].DistanceKm < hits[j].DistanceKm
		}
		return hits[i].Venue.ID < hits[j].Venue.ID
	})

	if e.maxResults > 0 && len(hits) > e.maxResults {
		hits = hits[:e.maxResults]
	}

	metrics.SearchResults.Observe(float64(len(hits)))
	return hits, nil
}

// score combines distance, tag overlap and rating into a single value.
// The overlap term contributes nothing when the query has no cuisine
// filter, which is uniform across candidates and so never changes order.
func (e *Engine) score(distKm float64, overlap, filterSize int, rating float64) float64 {
	normDist := distKm / e.radiusKm
	if normDist > 1 {
		normDist = 1
	}

	var overlapRatio float64
	if filterSize > 0 {
		overlapRatio = float64(overlap) / float64(filterSize)
	}

	return e.weights.Distance*(1-normDist) +
		e.weights.Tags*overlapRatio +
		e.weights.Rating*(rating/5)
}

func tagOverlap(venue *models.Venue, filter []string) int {
	count := 0
	for _, tag := range filter {
		if venue.HasTag(tag) {
			count++
		}
	}
	return count
}
