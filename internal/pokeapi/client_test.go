package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("base = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("http://example.com:1234/api/v2/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "/api/v2" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	u, err = parseBaseURL("example.com")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
}

func TestClient_ListPageEncodesLimitAndOffset(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotPath, gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":1302,"next":null,"previous":null,"results":[
			{"name":"bulbasaur","url":"https://pokeapi.co/api/v2/pokemon/1/"},
			{"name":"ivysaur","url":"https://pokeapi.co/api/v2/pokemon/2/"}]}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/api/v2")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	page, err := c.ListPage(ctx, 2, PageSize)
	if err != nil {
		t.Fatalf("ListPage returned error: %v", err)
	}
	if gotPath != "/api/v2/pokemon" {
		t.Fatalf("path = %q, want /api/v2/pokemon", gotPath)
	}
	if gotQuery.Get("limit") != "20" || gotQuery.Get("offset") != "20" {
		t.Fatalf("query = %v, want limit=20 offset=20", gotQuery)
	}
	if page.TotalCount != 1302 || page.PageNumber != 2 || page.PageSize != PageSize {
		t.Fatalf("page = %#v, want count=1302 page=2 size=20", page)
	}
	if page.TotalPages() != 66 {
		t.Fatalf("TotalPages = %d, want 66", page.TotalPages())
	}
	if len(page.Items) != 2 || page.Items[0].Name != "bulbasaur" {
		t.Fatalf("items = %#v, want bulbasaur first", page.Items)
	}
	if !strings.HasPrefix(gotUserAgent, "dex/") {
		t.Fatalf("User-Agent = %q, want dex/*", gotUserAgent)
	}
}

func TestClient_ListPageFirstPageUsesZeroOffset(t *testing.T) {
	t.Parallel()

	var gotOffset string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOffset = r.URL.Query().Get("offset")
		_ = json.NewEncoder(w).Encode(listResponse{Count: 0})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.ListPage(context.Background(), 0, PageSize); err != nil {
		t.Fatalf("ListPage returned error: %v", err)
	}
	if gotOffset != "0" {
		t.Fatalf("offset = %q, want 0", gotOffset)
	}
}

func TestClient_GetItemAndSpecies(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/pokemon/pikachu":
			_, _ = w.Write([]byte(`{"id":25,"name":"pikachu","height":4,"weight":60,
				"types":[{"slot":1,"type":{"name":"electric","url":""}}],
				"sprites":{"front_default":"front.png","other":{"official-artwork":{"front_default":"art.png"},"dream_world":{"front_default":null}}}}`))
		case "/pokemon-species/25":
			_, _ = w.Write([]byte(`{"flavor_text_entries":[{"flavor_text":"Stores\nelectricity.","language":{"name":"en","url":""}}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	rec, err := c.GetItem(context.Background(), " Pikachu ")
	if err != nil {
		t.Fatalf("GetItem returned error: %v", err)
	}
	if rec.ID != 25 || rec.Name != "pikachu" {
		t.Fatalf("record = %#v, want id=25 name=pikachu", rec)
	}
	if rec.Sprites.Other.OfficialArtwork.FrontDefault != "art.png" || rec.Sprites.Other.DreamWorld.FrontDefault != "" {
		t.Fatalf("sprites = %#v, want official artwork mapped and null dream world empty", rec.Sprites)
	}
	if got := rec.TypeNames(); len(got) != 1 || got[0] != "electric" {
		t.Fatalf("TypeNames = %v, want [electric]", got)
	}

	species, err := c.GetSpecies(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("GetSpecies returned error: %v", err)
	}
	if len(species.FlavorTextEntries) != 1 || species.FlavorTextEntries[0].LanguageCode() != "en" {
		t.Fatalf("species = %#v, want one en entry", species)
	}
}

func TestClient_NotFoundIsDistinctFromUnavailable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pokemon/missingno":
			http.Error(w, "Not Found", http.StatusNotFound)
		case "/pokemon/broken":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		default:
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.GetItem(context.Background(), "missingno")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetItem(missingno) error = %v, want ErrNotFound", err)
	}
	if errors.Is(err, ErrUnavailable) {
		t.Fatalf("GetItem(missingno) error = %v, must not be ErrUnavailable", err)
	}

	_, err = c.GetItem(context.Background(), "broken")
	if !errors.Is(err, ErrUnavailable) || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("GetItem(broken) error = %v, want decode ErrUnavailable", err)
	}

	_, err = c.ListPage(context.Background(), 1, PageSize)
	if !errors.Is(err, ErrUnavailable) || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("ListPage error = %v, want status 500 ErrUnavailable", err)
	}
}

func TestClient_CancelledContextIsReportedAsCancellation(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := c.ListPage(ctx, 1, PageSize)
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("ListPage error = %v, want context.Canceled", err)
		}
		if errors.Is(err, ErrUnavailable) {
			t.Fatalf("cancelled request must not be reported as unavailable: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ListPage did not return after cancellation")
	}
}

func TestClient_GetSpeciesRequiresID(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.GetSpecies(context.Background(), 0); err == nil {
		t.Fatalf("GetSpecies returned nil error, want error")
	}
}
