// Package ui is dex's Bubble Tea front end.
//
// # Architecture Overview
//
// The Model renders state owned by the two machines in package state
// (state.Catalog and state.Detail) and translates keys into their
// operations. It never decides fetch outcomes itself: every fetch runs in a
// tea.Cmd, comes back as a message, and is handed to the machine's Resolve,
// which drops stale and cancelled results.
//
// # Package Structure
//
//   - app.go: Model, Init/Update/View, messages, commands and Run
//   - catalog.go: page list, search bar, selection and prefetch hooks
//   - detail.go: record view with type pills, flavor text and stat bars
//   - logs.go: live view of dex's own log file
//   - header.go: status bar (route, phase, cache size) and command bar
//   - help.go, layout.go, theme.go, style_helpers.go: presentation helpers
//
// # Search
//
// The "/" search bar feeds a debounce.Debouncer. Settled values arrive on a
// channel that a long-lived command waits on, so filtering happens on the UI
// goroutine once typing pauses. Filtering is page-local and never fetches.
//
// # Routes
//
// The header always shows the route that reproduces the current view
// (/?page=2&q=char or /item/pikachu). "y" copies it to the clipboard and Run
// returns it so the CLI can print it on exit.
//
// # Key Bindings
//
//   - j/k, g/G: Move selection or scroll
//   - h/l, left/right, pgup/pgdown: Previous/next page
//   - enter: Open the selected entry
//   - /: Filter the current page; esc clears it
//   - [ and ]: Previous/next number in the detail view
//   - r: Retry a failed load
//   - y: Copy route
//   - L: Log view
//   - T: Cycle theme (saved to prefs)
//   - ?: Help
//   - q or Ctrl+C: Quit
package ui
