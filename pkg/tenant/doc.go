// Package tenant tracks the blogs served by an Inkwell installation
// and which plugins each blog has enabled.
//
// # Overview
//
// A Store parses the blogs YAML file into an in-memory snapshot and
// answers per-blog enablement queries for the event dispatcher. Watch
// re-reads the file when it changes on disk, swapping snapshots
// atomically; a broken edit keeps the last good snapshot in place.
//
// The Store satisfies the plugins.Enablement interface, which the
// dispatcher consults on every handler invocation. Because enablement
// is never cached at subscription time, toggling a plugin in the blogs
// file takes effect on the next dispatched event.
package tenant
