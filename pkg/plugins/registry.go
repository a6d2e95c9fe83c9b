package plugins

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inkwellcms/inkwell/pkg/blog"
	"github.com/inkwellcms/inkwell/pkg/observability"
)

// Skip reasons recorded on the load_skipped metric and in warnings
const (
	skipMissingImpl    = "missing_impl"
	skipUnknownFactory = "unknown_factory"
	skipFactoryError   = "factory_error"
	skipNilInstance    = "nil_instance"
	skipEmptyID        = "empty_id"
	skipNilInfo        = "nil_info"
	skipInitError      = "init_error"
	skipInitPanic      = "init_panic"
	skipDuplicateID    = "duplicate_id"
)

// Options configures a registry load
type Options struct {
	// Logger receives load warnings and dispatch errors. Defaults to
	// the logrus standard logger.
	Logger *logrus.Logger
	// Metrics is optional; a nil Metrics disables instrumentation
	Metrics *observability.Metrics
	// Enablement gates handler invocation per blog. A nil Enablement
	// treats every plugin as enabled everywhere.
	Enablement Enablement
}

// Registry holds the plugins that survived load, their descriptors,
// and the lifecycle-event handler lists. A registry is immutable once
// Load returns, so lookups and dispatch need no locking.
type Registry struct {
	log        *logrus.Logger
	metrics    *observability.Metrics
	enablement Enablement

	plugins     map[string]Plugin
	order       []string
	descriptors map[string]*Descriptor
	byName      map[string]*Descriptor
	handlers    map[EventKind][]subscription
}

// Load builds a registry from configured descriptors, in order. A
// descriptor that cannot produce a working plugin is skipped with a
// warning; load itself never fails. The first successfully initialized
// plugin wins any instance-id collision.
func Load(descriptors []Descriptor, opts Options) *Registry {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	r := &Registry{
		log:         log,
		metrics:     opts.Metrics,
		enablement:  opts.Enablement,
		plugins:     make(map[string]Plugin),
		descriptors: make(map[string]*Descriptor),
		byName:      make(map[string]*Descriptor),
		handlers:    make(map[EventKind][]subscription),
	}

	for i := range descriptors {
		// Copy so the registry never aliases the caller's slice
		d := descriptors[i]
		r.loadOne(&d)
	}

	if r.metrics != nil {
		r.metrics.PluginsRegistered.Set(float64(len(r.plugins)))
	}

	log.Infof("Plugin load complete: %d of %d descriptors registered", len(r.plugins), len(descriptors))

	return r
}

// loadOne resolves, constructs, validates, and initializes a single
// descriptor, inserting the plugin on success
func (r *Registry) loadOne(d *Descriptor) {
	fields := logrus.Fields{"plugin": d.Name, "impl": d.Impl}

	if d.Impl == "" || d.Name == "" {
		r.skip(fields, skipMissingImpl, "descriptor is missing impl or name")
		return
	}

	factory, ok := LookupFactory(d.Impl)
	if !ok {
		r.skip(fields, skipUnknownFactory, fmt.Sprintf("no factory registered for impl %q", d.Impl))
		return
	}

	p, err := factory(d)
	if err != nil {
		r.skip(fields, skipFactoryError, fmt.Sprintf("factory failed: %v", err))
		return
	}
	if p == nil {
		r.skip(fields, skipNilInstance, "factory returned a nil plugin")
		return
	}

	id := p.ID()
	if id == "" {
		r.skip(fields, skipEmptyID, "plugin reports an empty id")
		return
	}
	if p.Info() == nil {
		fields["plugin_id"] = id
		r.skip(fields, skipNilInfo, "plugin reports nil info")
		return
	}
	fields["plugin_id"] = id

	hc := &HostContext{
		desc:     d,
		pluginID: id,
		log:      r.log.WithField("plugin", id),
	}

	panicked, err := initPlugin(p, hc)
	hc.sealed = true
	if panicked {
		r.skip(fields, skipInitPanic, fmt.Sprintf("init panicked: %v", err))
		return
	}
	if err != nil {
		r.skip(fields, skipInitError, fmt.Sprintf("init failed: %v", err))
		return
	}

	// Insert-time duplicate check. The loser's Init already ran, but
	// its staged subscriptions are dropped here so no orphan handlers
	// survive into dispatch.
	if _, exists := r.plugins[id]; exists {
		r.skip(fields, skipDuplicateID, fmt.Sprintf("duplicate plugin id %q, keeping the first", id))
		return
	}

	r.plugins[id] = p
	r.order = append(r.order, id)
	r.descriptors[id] = d
	if _, exists := r.byName[d.Name]; !exists {
		r.byName[d.Name] = d
	}
	for _, s := range hc.staged {
		r.handlers[s.kind] = append(r.handlers[s.kind], subscription{pluginID: id, handler: s.handler})
	}

	info := p.Info()
	r.log.Infof("Loaded plugin: %s v%s (impl: %s, handlers: %d)", info.Name, info.Version, d.Impl, len(hc.staged))
}

// skip records one rejected descriptor
func (r *Registry) skip(fields logrus.Fields, reason, msg string) {
	fields["reason"] = reason
	r.log.WithFields(fields).Warnf("Skipping plugin: %s", msg)
	if r.metrics != nil {
		r.metrics.LoadSkippedTotal.WithLabelValues(reason).Inc()
	}
}

// initPlugin calls Init and converts a panic into an error
func initPlugin(p Plugin, hc *HostContext) (panicked bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			panicked = true
			err = fmt.Errorf("%v", rec)
		}
	}()

	return false, p.Init(hc)
}

// Get retrieves a plugin by instance id
func (r *Registry) Get(id string) (Plugin, error) {
	p, exists := r.plugins[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrPluginNotFound, id)
	}
	return p, nil
}

// Has checks if a plugin is registered
func (r *Registry) Has(id string) bool {
	_, exists := r.plugins[id]
	return exists
}

// List returns all registered plugins in registration order
func (r *Registry) List() []Plugin {
	result := make([]Plugin, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.plugins[id])
	}
	return result
}

// IDs returns all registered plugin ids in registration order
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Descriptor returns the configured descriptor for a plugin id
func (r *Registry) Descriptor(id string) (*Descriptor, error) {
	d, exists := r.descriptors[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrPluginNotFound, id)
	}
	return d, nil
}

// ModulePath resolves a named file module from the descriptor with the
// given display name
func (r *Registry) ModulePath(name, key string) (string, error) {
	d, exists := r.byName[name]
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrPluginNotFound, name)
	}

	path, ok := d.Modules[key]
	if !ok || path == "" {
		return "", fmt.Errorf("%w: %s/%s", ErrModuleNotFound, name, key)
	}
	return path, nil
}

// EnabledFor reports whether a registered plugin is enabled for a blog
func (r *Registry) EnabledFor(b *blog.Blog, id string) bool {
	if b == nil {
		return false
	}
	if !r.Has(id) {
		return false
	}
	if r.enablement == nil {
		return true
	}
	return r.enablement.Enabled(b.ID, id)
}

// Count returns the number of registered plugins
func (r *Registry) Count() int {
	return len(r.plugins)
}

// Subscribers returns the number of handlers subscribed to an event
func (r *Registry) Subscribers(kind EventKind) int {
	return len(r.handlers[kind])
}

// Events returns the event kinds a plugin has handlers subscribed to,
// in pipeline order
func (r *Registry) Events(id string) []EventKind {
	var kinds []EventKind
	for _, kind := range EventKinds() {
		for _, sub := range r.handlers[kind] {
			if sub.pluginID == id {
				kinds = append(kinds, kind)
				break
			}
		}
	}
	return kinds
}
