// Package pokeapi provides a read-only HTTP client for the PokeAPI v2 catalog.
//
// # Endpoints
//
//   - GET /pokemon?limit=&offset=: one catalog page (ListPage)
//   - GET /pokemon/{nameOrId}: a single record (GetItem)
//   - GET /pokemon-species/{id}: species metadata such as flavor text (GetSpecies)
//
// Offsets are derived from 1-based page numbers: offset = (page-1) * size.
//
// # Errors
//
// Every failure wraps one of two sentinels so callers can classify it with
// errors.Is:
//
//   - ErrNotFound: the API answered 404 for the identifier
//   - ErrUnavailable: transport failure, any other status >= 400, or a decode failure
//
// When the request context is cancelled the returned error wraps the context's
// error instead, so errors.Is(err, context.Canceled) reports a superseded request.
//
// # Field names
//
// Struct tags mirror the external API exactly (flavor_text_entries,
// official-artwork, base_stat...). They are mapped, never renamed on the wire.
//
// # Thread Safety
//
// The Client is safe for concurrent use; prefetch workers and the UI share one.
package pokeapi
