// Package logtail reads and watches dex's own log file for the in-app log
// view.
//
// # Reading
//
// Read returns the last N lines of a file using a ring buffer sized to N, so
// memory stays O(N) regardless of file size. A non-positive N returns the
// whole file. A missing file yields no lines and no error, since dex creates
// its log lazily.
//
//	lines, err := logtail.Read(cfg.LogFile, 500)
//
// # Watching
//
// Watch uses fsnotify on the log's parent directory and invokes a callback
// after writes settle. The UI uses it to refresh the log view live instead of
// polling.
//
// # Levels
//
// Level pulls the level out of a slog text-handler line so the UI can color
// it. No other parsing is attempted; lines are shown verbatim.
package logtail
