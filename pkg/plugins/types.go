package plugins

// Plugin is the base interface all plugins must implement
type Plugin interface {
	// ID returns the unique instance identifier used to key the registry
	ID() string
	// Info returns descriptive metadata shown to blog administrators
	Info() *Info
	// Init is called exactly once during load. Plugins subscribe their
	// lifecycle-event handlers here through the host context.
	Init(hc *HostContext) error
}

// Info describes plugin metadata
type Info struct {
	Name        string `yaml:"name" json:"name"`               // Display name
	Description string `yaml:"description" json:"description"` // Short description
	Author      string `yaml:"author" json:"author"`           // Author name
	Version     string `yaml:"version" json:"version"`         // Semver
	HomePage    string `yaml:"homepage" json:"homepage"`       // Homepage URL
}

// Descriptor is one configured plugin instance as it appears in the
// plugins file. Descriptors are immutable after load.
type Descriptor struct {
	ID       string            `yaml:"id" json:"id"`             // Unique instance id (e.g., "emoticons-main")
	Name     string            `yaml:"name" json:"name"`         // Display name used by module path lookups
	Impl     string            `yaml:"impl" json:"impl"`         // Factory name
	Modules  map[string]string `yaml:"modules" json:"modules"`   // Named file modules (scripts, templates)
	Settings map[string]string `yaml:"settings" json:"settings"` // Free-form per-plugin configuration
}

// Enablement reports whether a plugin is enabled for a blog. The
// dispatcher consults it on every handler invocation, never caching
// the answer across calls.
type Enablement interface {
	Enabled(blogID, pluginID string) bool
}
