// internal/catalog/source_postgres_test.go
package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodfinder/internal/models"
)

var venueColumns = []string{
	"id", "name", "address", "lat", "lon", "cuisine", "price_tier",
	"schedule", "rating", "reviews_count",
}

func TestPostgresSourceLoad(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(venueColumns).
		AddRow("v1", "Sakura Sushi", "12 Chuy Ave", 42.8746, 74.5698,
			[]byte(`["sushi","japanese"]`), "mid",
			[]byte(`[{"day":"Mon","from":"11:00","to":"22:00"}]`), 4.6, 214).
		AddRow("v2", "Pizza Corner", "", 42.88, 74.58,
			[]byte(`["pizza"]`), "low", []byte(`[]`), 4.1, 156)

	mock.ExpectQuery("SELECT id, name, COALESCE").WillReturnRows(rows)

	source := NewPostgresSource(db, "venues")
	venues, err := source.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, venues, 2)

	assert.Equal(t, "v1", venues[0].ID)
	assert.Equal(t, models.PriceMid, venues[0].PriceTier)
	assert.Equal(t, []string{"sushi", "japanese"}, venues[0].CuisineTags)
	require.Len(t, venues[0].OpenHours, 1)
	assert.Equal(t, "11:00", venues[0].OpenHours[0].From)

	assert.Equal(t, models.PriceLow, venues[1].PriceTier)
	assert.Empty(t, venues[1].OpenHours)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSourceMalformedJSONColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(venueColumns).
		AddRow("v1", "Broken", "", 42.0, 74.0,
			[]byte(`not json`), "weird", []byte(`{`), 0.0, 0)

	mock.ExpectQuery("SELECT id, name, COALESCE").WillReturnRows(rows)

	source := NewPostgresSource(db, "venues")
	venues, err := source.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, venues, 1)

	// Malformed optional columns degrade to empty rather than failing the load.
	assert.Empty(t, venues[0].CuisineTags)
	assert.Empty(t, venues[0].OpenHours)
	assert.Equal(t, models.PriceUnknown, venues[0].PriceTier)
}

func TestPostgresSourceQueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name, COALESCE").WillReturnError(errors.New("relation does not exist"))

	source := NewPostgresSource(db, "venues")
	_, err = source.Load(context.Background())
	assert.Error(t, err)
}
