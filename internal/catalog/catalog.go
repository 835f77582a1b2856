// internal/catalog/catalog.go
package catalog

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"
	"time"

	"foodfinder/internal/common/logger"
	"foodfinder/internal/common/metrics"
	"foodfinder/internal/models"
)

var ErrEmptyCatalog = errors.New("CATALOG_EMPTY")

// Source loads the full venue catalog from wherever it lives.
type Source interface {
	Load(ctx context.Context) ([]models.Venue, error)
	Name() string
}

// Snapshot is an immutable view of the catalog. Readers hold a snapshot for
// the duration of one query; reload publishes a fresh one and never mutates
// a published snapshot.
type Snapshot struct {
	venues   []models.Venue
	byID     map[string]*models.Venue
	tags     []string
	loadedAt time.Time
}

func newSnapshot(venues []models.Venue, loadedAt time.Time) *Snapshot {
	byID := make(map[string]*models.Venue, len(venues))
	tagSet := make(map[string]bool)
	for i := range venues {
		byID[venues[i].ID] = &venues[i]
		for _, tag := range venues[i].CuisineTags {
			tagSet[tag] = true
		}
	}
	tags := make([]string, 0, len(tagSet))
	for tag := range tagSet {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	return &Snapshot{
		venues:   venues,
		byID:     byID,
		tags:     tags,
		loadedAt: loadedAt,
	}
}

// All returns every venue in the snapshot. Callers must not modify the
// returned slice.
func (s *Snapshot) All() []models.Venue {
	return s.venues
}

// ByID returns the venue with the given id, or nil.
func (s *Snapshot) ByID(id string) *models.Venue {
	return s.byID[id]
}

// TagVocabulary returns the sorted set of cuisine tags present in the
// catalog. The cuisine slot parser matches user input against it.
func (s *Snapshot) TagVocabulary() []string {
	return s.tags
}

// Len returns the number of venues in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.venues)
}

// LoadedAt returns when the snapshot was published.
func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}

// Catalog is the read-only venue accessor. Reload swaps the snapshot
// pointer atomically, so concurrent searches never observe a mix of old and
// new records.
type Catalog struct {
	source   Source
	snapshot atomic.Pointer[Snapshot]
	logger   logger.Logger
}

// New loads the initial snapshot through the source. A failed initial load
// is returned to the caller; per the startup contract it aborts the process.
func New(ctx context.Context, source Source, log logger.Logger) (*Catalog, error) {
	c := &Catalog{
		source: source,
		logger: log.WithFields(map[string]interface{}{"component": "catalog", "source": source.Name()}),
	}
	if err := c.Reload(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Snapshot returns the current catalog snapshot.
func (c *Catalog) Snapshot() *Snapshot {
	return c.snapshot.Load()
}

// Reload loads through the source and atomically publishes the result. On
// failure the previous snapshot, if any, stays in place.
func (c *Catalog) Reload(ctx context.Context) error {
	venues, err := c.source.Load(ctx)
	if err != nil {
		metrics.CatalogReloads.WithLabelValues("error").Inc()
		return err
	}
	if len(venues) == 0 {
		metrics.CatalogReloads.WithLabelValues("error").Inc()
		return ErrEmptyCatalog
	}

	snap := newSnapshot(venues, time.Now().UTC())
	c.snapshot.Store(snap)

	metrics.CatalogReloads.WithLabelValues("ok").Inc()
	metrics.CatalogVenues.Set(float64(snap.Len()))
	c.logger.Info("catalog snapshot published", map[string]interface{}{
		"venues": snap.Len(),
		"tags":   len(snap.TagVocabulary()),
	})
	return nil
}

// StartRefresher reloads the catalog on the given interval until the
// context is cancelled. A failed reload logs and keeps the old snapshot.
func (c *Catalog) StartRefresher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := c.Reload(ctx); err != nil {
					c.logger.Warn("catalog refresh failed, keeping previous snapshot", map[string]interface{}{
						"error": err.Error(),
					})
				}
			}
		}
	}()
}
