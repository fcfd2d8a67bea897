package state

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/five82/dex/internal/pokeapi"
)

// FilterEntries keeps the entries whose name contains query, ignoring case.
// Order is preserved. An empty query returns entries unchanged.
func FilterEntries(entries []pokeapi.CatalogEntry, query string) []pokeapi.CatalogEntry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return entries
	}
	out := make([]pokeapi.CatalogEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), query) {
			out = append(out, e)
		}
	}
	return out
}

// FlavorText picks the first entry in locale, then the first in fallback, and
// collapses control characters and repeated whitespace to single spaces.
func FlavorText(species pokeapi.SpeciesMetadata, locale, fallback string) string {
	for _, lang := range []string{locale, fallback} {
		if lang == "" {
			continue
		}
		for _, entry := range species.FlavorTextEntries {
			if strings.EqualFold(entry.LanguageCode(), lang) {
				return normalizeText(entry.Text)
			}
		}
	}
	return ""
}

func normalizeText(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// Artwork returns the best available image URL: official artwork, then the
// dream world render, then the default sprite.
func Artwork(s pokeapi.Sprites) string {
	for _, u := range []string{
		s.Other.OfficialArtwork.FrontDefault,
		s.Other.DreamWorld.FrontDefault,
		s.FrontDefault,
	} {
		if u != "" {
			return u
		}
	}
	return ""
}

// PadID formats a catalog number as #025.
func PadID(id int) string {
	return fmt.Sprintf("#%03d", id)
}
