// internal/dialogue/parsers.go
package dialogue

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"foodfinder/internal/common/config"
	"foodfinder/internal/models"
)

// coordPattern matches a bare "lat,lon" pair anywhere in the input.
var coordPattern = regexp.MustCompile(`(-?\d{1,3}(?:\.\d+)?)\s*,\s*(-?\d{1,3}(?:\.\d+)?)`)

var tokenSplitter = regexp.MustCompile(`[^\p{L}\p{N}$]+`)

// priceKeywords maps user vocabulary to tiers.
var priceKeywords = map[string]models.PriceTier{
	"cheap":       models.PriceLow,
	"budget":      models.PriceLow,
	"inexpensive": models.PriceLow,
	"low":         models.PriceLow,
	"$":           models.PriceLow,
	"mid":         models.PriceMid,
	"midrange":    models.PriceMid,
	"moderate":    models.PriceMid,
	"medium":      models.PriceMid,
	"$$":          models.PriceMid,
	"high":        models.PriceHigh,
	"expensive":   models.PriceHigh,
	"upscale":     models.PriceHigh,
	"fancy":       models.PriceHigh,
	"$$$":         models.PriceHigh,
}

var skipWords = map[string]bool{
	"skip":     true,
	"any":      true,
	"anything": true,
}

// Extraction is what the multi-slot pass pulled out of one input. Every
// field already passed its slot parser; the machine merges it into the
// query without re-validating.
type Extraction struct {
	Location *models.Coordinate
	AreaName string
	Cuisines []string
	Prices   []models.PriceTier
	OpenNow  bool
	Skip     bool
}

// SlotParsers is the set of typed slot parsers, composed by the state
// machine. Each parser returns a tagged ok/fail result instead of guessing.
type SlotParsers struct {
	areas     map[string]models.Coordinate
	areaNames []string // sorted, longest first, for deterministic matching
}

func NewSlotParsers(areas map[string]config.AreaConfig) *SlotParsers {
	p := &SlotParsers{
		areas: make(map[string]models.Coordinate, len(areas)),
	}
	for name, area := range areas {
		lower := strings.ToLower(name)
		p.areas[lower] = models.Coordinate{Lat: area.Lat, Lon: area.Lon}
		p.areaNames = append(p.areaNames, lower)
	}
	sort.Slice(p.areaNames, func(i, j int) bool {
		if len(p.areaNames[i]) != len(p.areaNames[j]) {
			return len(p.areaNames[i]) > len(p.areaNames[j])
		}
		return p.areaNames[i] < p.areaNames[j]
	})
	return p
}

// ParseLocation resolves a coordinate pair or a configured area name. The
// area name match is a substring check so "near downtown" resolves.
func (p *SlotParsers) ParseLocation(input string) (*models.Coordinate, string, bool) {
	if m := coordPattern.FindStringSubmatch(input); m != nil {
		lat, errLat := strconv.ParseFloat(m[1], 64)
		lon, errLon := strconv.ParseFloat(m[2], 64)
		if errLat == nil && errLon == nil && lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180 {
			return &models.Coordinate{Lat: lat, Lon: lon}, "", true
		}
	}

	lower := strings.ToLower(input)
	for _, name := range p.areaNames {
		if strings.Contains(lower, name) {
			coord := p.areas[name]
			return &coord, name, true
		}
	}

	return nil, "", false
}

// ParseCuisine matches input tokens against the catalog's tag vocabulary.
// Unknown words fail rather than passing through as tags.
func (p *SlotParsers) ParseCuisine(input string, vocab []string) ([]string, bool) {
	tokens := tokenize(input)
	if len(tokens) == 0 {
		return nil, false
	}

	known := make(map[string]bool, len(vocab))
	for _, tag := range vocab {
		known[strings.ToLower(tag)] = true
	}

	var tags []string
	seen := make(map[string]bool)
	for _, tok := range tokens {
		if known[tok] && !seen[tok] {
			tags = append(tags, tok)
			seen[tok] = true
		}
	}
	if len(tags) == 0 {
		return nil, false
	}
	return tags, true
}

// ParsePrice matches price vocabulary ("cheap", "mid", "$$$", ...) in the
// input.
func (p *SlotParsers) ParsePrice(input string) ([]models.PriceTier, bool) {
	var tiers []models.PriceTier
	seen := make(map[models.PriceTier]bool)
	for _, tok := range tokenize(input) {
		if tier, ok := priceKeywords[tok]; ok && !seen[tier] {
			tiers = append(tiers, tier)
			seen[tier] = true
		}
	}
	if len(tiers) == 0 {
		return nil, false
	}
	return tiers, true
}

// Extract runs every slot parser over the input. It is applied on every
// turn regardless of the current step, so a message carrying several slots
// fills them all at once.
func (p *SlotParsers) Extract(input string, vocab []string) Extraction {
	var ex Extraction

	if coord, area, ok := p.ParseLocation(input); ok {
		ex.Location = coord
		ex.AreaName = area
	}
	if tags, ok := p.ParseCuisine(input, vocab); ok {
		ex.Cuisines = tags
	}
	if tiers, ok := p.ParsePrice(input); ok {
		ex.Prices = tiers
	}

	lower := strings.ToLower(input)
	if strings.Contains(lower, "open now") || strings.Contains(lower, "open right now") {
		ex.OpenNow = true
	}

	if tokens := tokenize(input); len(tokens) == 1 && skipWords[tokens[0]] {
		ex.Skip = true
	}

	return ex
}

func tokenize(input string) []string {
	var tokens []string
	for _, tok := range tokenSplitter.Split(strings.ToLower(input), -1) {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
