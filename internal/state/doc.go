// Package state implements the catalog and detail view state machines.
//
// # Overview
//
// Both machines follow the same lifecycle:
//
//	Idle ──Load/Navigate──> Loading ──Resolve(ok)──> Ready
//	                           │
//	                           └──Resolve(err)──> Failed(kind, message)
//
// Every transition into Loading starts a new Generation with its own
// context.Context and cancels the previous one. The caller runs the returned
// request (FetchPage, FetchDetail) off the UI goroutine and hands the result
// back to Resolve, which discards it unless its generation is still current.
// A slow response for an earlier page or identifier therefore can never
// overwrite newer state, even if the transport ignored the cancellation.
//
// # Error kinds
//
//   - KindNotFound: the identifier has no remote record
//   - KindUnavailable: transport, status or decode failure
//   - KindCancelled: a superseded request; swallowed by Resolve
//
// # Concurrency
//
// Catalog and Detail are not safe for concurrent use. They are owned by the
// Bubble Tea model and only touched from Update. FetchPage and FetchDetail are
// pure functions of their inputs and may run on any goroutine.
//
// # Derived values
//
// FilterEntries, FlavorText and Artwork are pure helpers the presentation
// layer renders from; see present.go.
package state
