// internal/catalog/source_postgres.go
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"foodfinder/internal/models"
)

// PostgresSource loads venues from the table the scraper writes to. Cuisine
// tags and opening hours are stored as JSON columns.
type PostgresSource struct {
	db    *sql.DB
	table string
}

func NewPostgresSource(db *sql.DB, table string) *PostgresSource {
	return &PostgresSource{db: db, table: table}
}

func (s *PostgresSource) Name() string { return "postgres" }

func (s *PostgresSource) Load(ctx context.Context) ([]models.Venue, error) {
	query := fmt.Sprintf(`
		SELECT id, name, COALESCE(address, ''), lat, lon, cuisine, price_tier,
		       schedule, COALESCE(rating, 0), COALESCE(reviews_count, 0)
		FROM %s ORDER BY id`, s.table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres source: query venues: %w", err)
	}
	defer rows.Close()

	var venues []models.Venue
	for rows.Next() {
		var (
			v        models.Venue
			tier     string
			cuisine  []byte
			schedule []byte
		)
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.Location.Lat, &v.Location.Lon,
			&cuisine, &tier, &schedule, &v.Rating, &v.ReviewCount); err != nil {
			return nil, fmt.Errorf("postgres source: scan venue: %w", err)
		}

		if parsed, err := models.ParsePriceTier(tier); err == nil {
			v.PriceTier = parsed
		}
		if len(cuisine) > 0 {
			if err := json.Unmarshal(cuisine, &v.CuisineTags); err != nil {
				v.CuisineTags = nil
			}
		}
		if len(schedule) > 0 {
			if err := json.Unmarshal(schedule, &v.OpenHours); err != nil {
				v.OpenHours = nil
			}
		}

		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres source: iterate venues: %w", err)
	}

	return venues, nil
}
