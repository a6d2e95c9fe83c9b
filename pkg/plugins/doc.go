// Package plugins provides the extensibility framework for the Inkwell
// blog engine: plugin descriptors, a named factory registry, an
// id-keyed plugin registry, and lifecycle-event dispatch.
//
// # Overview
//
// Blog behavior is extended by plugins that hook the entry pipeline.
// The hosting application loads descriptors from configuration once at
// startup; each descriptor names a factory (its impl), the factory
// constructs a plugin instance, and the instance subscribes handlers
// to lifecycle events during Init. Application code later raises
// events around entry commits and rendering, and the dispatcher fans
// them out to the subscribed handlers of plugins enabled for the
// active blog.
//
// # Plugin System
//
// Plugin interface: base contract all plugins implement (ID, Info, Init)
// Descriptor: one configured plugin instance (id, name, impl, modules, settings)
// Factory registry: named constructors resolved from descriptor impl fields
// Registry: immutable id-keyed plugin map plus per-event handler lists
// HostContext: per-plugin handle granting event subscription and settings access
//
// # Lifecycle Events
//
// entry.updating: before an entry commit is persisted
// entry.updated: after an entry commit is persisted
// entry.rendering: when an entry body is rendered for display
// entry.rendering.single: additionally, when rendered on its own page
//
// # Fault Containment
//
// Load is partial-failure tolerant: a descriptor that cannot produce a
// working plugin (unknown factory, factory error, bad identity, Init
// error or panic, duplicate id) is skipped with a warning and the rest
// of the load continues. Dispatch applies the invoke-and-discard-errors
// policy: handler errors and panics are logged and counted, never
// propagated. Both are observable through the registry metrics.
//
// # Usage Example
//
// Load a registry and raise an event:
//
//	reg := plugins.Load(descriptors, plugins.Options{
//		Logger:     log,
//		Enablement: store,
//	})
//
//	args := &plugins.EventArgs{Blog: b, State: blog.StateUpdate}
//	reg.Raise(ctx, plugins.EventEntryUpdating, entry, args)
//
// # Related Packages
//
//   - pkg/plugins/lua: Lua-scripted plugin factory
//   - pkg/plugins/transforms: built-in content transform plugins
//   - pkg/tenant: per-blog plugin enablement
//   - pkg/host: composition root with one-time guarded load
package plugins
