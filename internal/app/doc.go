// Package app is the composition root for dex.
//
// Run loads configuration, opens the log file, builds the PokeAPI client and
// the session cache, then starts the background work and the TUI:
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()     Read ~/.config/dex/config.toml
//	       ├─────> logging.Open()    slog text handler on the log file
//	       ├─────> prefs.Load()      Theme preference
//	       ├─────> pokeapi.NewClient()
//	       ├─────> cache.New()       Session cache shared by UI and prefetch
//	       ├─────> prefetch.Run()    errgroup worker
//	       ├─────> logtail.Watch()   errgroup worker, feeds the log view
//	       └─────> ui.Run()          Blocks until quit
//
// Background workers share a context that is cancelled as soon as the UI
// returns. Their failures are logged, never fatal.
//
// Fatal errors (returned from Run):
//   - Invalid config file or flag overrides
//   - Log file cannot be opened
//   - API base URL cannot be parsed
package app
