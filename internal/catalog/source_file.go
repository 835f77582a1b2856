// internal/catalog/source_file.go
package catalog

import (
	"context"
	"fmt"

	"foodfinder/internal/models"
	"foodfinder/pkg/dataset"
)

// FileSource loads venues from a JSON dataset file, the format the scraper
// exports. The file is schema-validated before decoding.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) Load(_ context.Context) ([]models.Venue, error) {
	venues, err := dataset.Load(s.Path)
	if err != nil {
		return nil, fmt.Errorf("file source: %w", err)
	}
	return venues, nil
}
