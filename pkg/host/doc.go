// Package host wires the plugin framework together for an embedding
// application.
//
// # Overview
//
// A Host owns the pieces an application needs to run plugins: the logger,
// optional metrics, the tenant store (with its file watcher), the render
// cache, and the plugin registry itself. Applications construct one Host at
// startup and call its event wrappers from their save and render paths.
//
// # Lazy Initialization
//
// The registry is not built until the first call that needs it. The first
// caller reads the plugins file and performs the load while holding the init
// lock; every other caller blocks until the registry pointer is published
// and then reads it lock-free. A load that fails (unreadable or unparsable
// plugins file) leaves the host uninitialized: later calls retry, but only
// after an exponential backoff window has passed. Calls inside the window
// are answered with the previous error without touching the file. A
// successful load is permanent for the life of the process.
//
// # Usage Example
//
// Wire a host into an application:
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	h, err := host.New(cfg, logger, metrics)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer h.Close()
//
//	// Save path
//	entry.Touch()
//	h.EntryUpdating(ctx, b, entry, blog.StateUpdate)
//	// ... persist the entry ...
//	h.EntryUpdated(ctx, b, entry, blog.StateUpdate)
//
//	// Render path
//	html, err := h.RenderEntry(ctx, b, entry, true)
//
// # Related Packages
//
//   - pkg/plugins: The registry and dispatcher the host manages
//   - pkg/tenant: Per-blog plugin enablement, reloaded on file change
//   - pkg/rendercache: Bounded cache of rendered bodies
//   - pkg/config: Environment and file configuration consumed here
package host
