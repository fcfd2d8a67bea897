// Package config loads dex's TOML configuration.
//
// # Configuration Discovery
//
// Load resolves the file in this order:
//
//  1. An explicit path (the --config flag or DEX_CONFIG)
//  2. ~/.config/dex/config.toml
//  3. Built-in defaults when the file does not exist
//
// Fields left empty in the file keep their defaults. Numeric fields are only
// overridden when present, so an explicit 0 (for example search_debounce_ms
// = 0) is honored.
//
// # TOML Format
//
//	api_base = "https://pokeapi.co/api/v2"
//	locale = "fr"                  # empty: derived from LC_ALL, LC_MESSAGES, LANG
//	fallback_locale = "en"
//	search_debounce_ms = 300
//	request_timeout_seconds = 10
//	prefetch_workers = 2
//	prefetch_interval_ms = 150
//	log_file = "~/.local/state/dex/dex.log"
//	log_level = "info"             # debug, info, warn, error
//
// # Validation
//
// After merging, the Config is validated with ozzo-validation. A file that
// parses but fails validation is an error rather than silently clamped.
package config
