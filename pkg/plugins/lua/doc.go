// Package lua runs Lua scripts as plugins, so operators can extend a
// blog without recompiling the host.
//
// # Overview
//
// The package registers the "lua" factory on import. A descriptor using
// it names its script through the "script" module:
//
//	- id: shouter
//	  name: Shouter
//	  impl: lua
//	  modules:
//	    script: /etc/inkwell/plugins/shouter.lua
//
// The script is loaded once into a dedicated Lua state. An optional
// global table supplies metadata:
//
//	plugin = {
//		id = "shouter",          -- falls back to the descriptor id
//		name = "Shouter",
//		description = "Uppercases rendered titles",
//		author = "Ops",
//		version = "1.0.0",
//	}
//
// # Hooks
//
// Defining any of the well-known globals subscribes the script to the
// matching lifecycle event:
//
//	function on_entry_updating(entry, args) end
//	function on_entry_updated(entry, args) end
//	function on_entry_rendering(entry, args) end
//	function on_single_entry_rendering(entry, args) end
//
// Hooks receive the entry as a table (id, blog_id, title, slug, author,
// body, categories, published) and the event args (plugin_id, state,
// blog). Changes to the entry's title, body, and slug fields are copied
// back to the Go entry after the hook returns.
//
// # Concurrency
//
// A Lua state is not safe for concurrent use, so each plugin's hooks
// are serialized by a per-plugin mutex. Distinct Lua plugins run
// independently.
package lua
