package state

import (
	"testing"

	"github.com/five82/dex/internal/pokeapi"
)

func TestFilterEntriesPreservesOrder(t *testing.T) {
	entries := []pokeapi.CatalogEntry{{Name: "charmander"}, {Name: "squirtle"}, {Name: "charizard"}}
	got := FilterEntries(entries, "char")
	if len(got) != 2 || got[0].Name != "charmander" || got[1].Name != "charizard" {
		t.Fatalf("FilterEntries = %+v", got)
	}
	if got := FilterEntries(entries, "zzz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}

func TestFlavorTextLocaleFallback(t *testing.T) {
	species := pokeapi.SpeciesMetadata{FlavorTextEntries: []pokeapi.FlavorText{
		{Text: "Une souris", Language: pokeapi.NamedResource{Name: "fr"}},
		{Text: "When several of\nthese POKéMON\fgather,\r\ntheir electricity", Language: pokeapi.NamedResource{Name: "en"}},
		{Text: "second english", Language: pokeapi.NamedResource{Name: "en"}},
	}}

	tests := []struct {
		name, locale, fallback, want string
	}{
		{"exact locale", "fr", "en", "Une souris"},
		{"fallback", "de", "en", "When several of these POKéMON gather, their electricity"},
		{"none", "de", "ja", ""},
		{"empty locale", "", "en", "When several of these POKéMON gather, their electricity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FlavorText(species, tt.locale, tt.fallback); got != tt.want {
				t.Fatalf("FlavorText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArtworkPreference(t *testing.T) {
	var s pokeapi.Sprites
	if got := Artwork(s); got != "" {
		t.Fatalf("empty sprites = %q", got)
	}
	s.FrontDefault = "front.png"
	if got := Artwork(s); got != "front.png" {
		t.Fatalf("got %q", got)
	}
	s.Other.DreamWorld.FrontDefault = "dream.svg"
	if got := Artwork(s); got != "dream.svg" {
		t.Fatalf("got %q", got)
	}
	s.Other.OfficialArtwork.FrontDefault = "official.png"
	if got := Artwork(s); got != "official.png" {
		t.Fatalf("got %q", got)
	}
}

func TestPadID(t *testing.T) {
	if got := PadID(25); got != "#025" {
		t.Fatalf("PadID(25) = %q", got)
	}
	if got := PadID(1025); got != "#1025" {
		t.Fatalf("PadID(1025) = %q", got)
	}
}
