// Package dataset loads and validates venue dataset files.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"foodfinder/internal/models"
)

// Load reads a venue dataset file, validates it against VenueSchema and
// decodes it. Validation errors report every failing field at once.
func Load(path string) ([]models.Venue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates and decodes raw dataset bytes.
func Parse(data []byte) ([]models.Venue, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(VenueSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validate dataset: %w", err)
	}
	if !result.Valid() {
		var issues []string
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return nil, fmt.Errorf("dataset schema violations: %s", strings.Join(issues, "; "))
	}

	var venues []models.Venue
	if err := json.Unmarshal(data, &venues); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	seen := make(map[string]bool, len(venues))
	for _, v := range venues {
		if seen[v.ID] {
			return nil, fmt.Errorf("duplicate venue id %q in dataset", v.ID)
		}
		seen[v.ID] = true
	}

	return venues, nil
}
