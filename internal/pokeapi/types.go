package pokeapi

import (
	"strconv"
	"strings"
)

// PageSize is the fixed number of entries requested per catalog page.
const PageSize = 20

// listResponse mirrors /pokemon?limit=&offset=.
type listResponse struct {
	Count    int            `json:"count"`
	Next     string         `json:"next"`
	Previous string         `json:"previous"`
	Results  []CatalogEntry `json:"results"`
}

// CatalogPage is one page of the remote catalog.
type CatalogPage struct {
	Items      []CatalogEntry
	TotalCount int
	PageNumber int
	PageSize   int
}

// TotalPages returns ceil(TotalCount / PageSize).
func (p CatalogPage) TotalPages() int {
	return TotalPages(p.TotalCount, p.PageSize)
}

// TotalPages returns ceil(total / size); zero when either input is non-positive.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// CatalogEntry is a named reference returned by list endpoints.
type CatalogEntry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ID extracts the numeric identifier encoded as the final path segment of URL.
func (e CatalogEntry) ID() (int, bool) {
	return idFromURL(e.URL)
}

// NamedResource is PokeAPI's {name, url} reference shape.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// DetailRecord mirrors /pokemon/{nameOrId}.
type DetailRecord struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	Height         int           `json:"height"`
	Weight         int           `json:"weight"`
	BaseExperience int           `json:"base_experience"`
	Types          []TypeSlot    `json:"types"`
	Stats          []StatEntry   `json:"stats"`
	Sprites        Sprites       `json:"sprites"`
	Species        NamedResource `json:"species"`
}

// HeightMetres converts the API's decimetres.
func (r DetailRecord) HeightMetres() float64 {
	return float64(r.Height) / 10
}

// WeightKilograms converts the API's hectograms.
func (r DetailRecord) WeightKilograms() float64 {
	return float64(r.Weight) / 10
}

// TypeNames returns the type names ordered by slot.
func (r DetailRecord) TypeNames() []string {
	names := make([]string, 0, len(r.Types))
	for _, t := range r.Types {
		if name := strings.TrimSpace(t.Type.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// TypeSlot is one entry of the record's types list.
type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// StatEntry is one base stat.
type StatEntry struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

// Sprites holds the subset of the sprite tree dex renders.
type Sprites struct {
	FrontDefault string         `json:"front_default"`
	Other        SpriteVariants `json:"other"`
}

// SpriteVariants groups alternate artwork styles.
type SpriteVariants struct {
	OfficialArtwork SpriteSet `json:"official-artwork"`
	DreamWorld      SpriteSet `json:"dream_world"`
}

// SpriteSet is a single style's image references.
type SpriteSet struct {
	FrontDefault string `json:"front_default"`
}

// SpeciesMetadata mirrors the subset of /pokemon-species/{id} dex uses.
type SpeciesMetadata struct {
	FlavorTextEntries []FlavorText `json:"flavor_text_entries"`
}

// FlavorText is a localized description entry.
type FlavorText struct {
	Text     string        `json:"flavor_text"`
	Language NamedResource `json:"language"`
}

// LanguageCode returns the entry's language code (e.g. "en").
func (f FlavorText) LanguageCode() string {
	return f.Language.Name
}

func idFromURL(raw string) (int, bool) {
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == '/' })
	if len(parts) == 0 {
		return 0, false
	}
	id, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
