package plugins

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inkwellcms/inkwell/pkg/blog"
)

// EventKind identifies a lifecycle event in the entry pipeline
type EventKind string

const (
	// EventEntryUpdating fires before an entry commit is persisted
	EventEntryUpdating EventKind = "entry.updating"
	// EventEntryUpdated fires after an entry commit is persisted
	EventEntryUpdated EventKind = "entry.updated"
	// EventEntryRendering fires when an entry body is rendered for display
	EventEntryRendering EventKind = "entry.rendering"
	// EventSingleEntryRendering fires in addition to EventEntryRendering
	// when the entry is rendered on its own permalink page
	EventSingleEntryRendering EventKind = "entry.rendering.single"
)

// EventKinds returns all lifecycle event kinds in pipeline order
func EventKinds() []EventKind {
	return []EventKind{
		EventEntryUpdating,
		EventEntryUpdated,
		EventEntryRendering,
		EventSingleEntryRendering,
	}
}

// Valid reports whether k names a known lifecycle event
func (k EventKind) Valid() bool {
	switch k {
	case EventEntryUpdating, EventEntryUpdated, EventEntryRendering, EventSingleEntryRendering:
		return true
	}
	return false
}

// Handler processes one lifecycle event. Handlers mutate the entry in
// place; a returned error is discarded by the dispatcher after logging
// and counting it.
type Handler func(ctx context.Context, e *blog.Entry, args *EventArgs) error

// EventArgs carries the tenant context for one dispatch call
type EventArgs struct {
	// Blog is the active blog the event applies to
	Blog *blog.Blog
	// State mirrors the commit that triggered the event
	State blog.EntryState
	// PluginID is stamped by the dispatcher before each handler
	// invocation, so a handler always sees its own plugin id
	PluginID string
}

// subscription ties a handler to the plugin that registered it
type subscription struct {
	pluginID string
	handler  Handler
}

// stagedSub is one subscription made during Init, committed by the
// registry only after the plugin is accepted
type stagedSub struct {
	kind    EventKind
	handler Handler
}

// HostContext is the per-plugin handle passed to Init. It is the only
// way to subscribe handlers, and it exposes the plugin's descriptor
// settings and modules plus a scoped logger.
type HostContext struct {
	desc     *Descriptor
	pluginID string
	log      *logrus.Entry

	// staged collects subscriptions made during Init. The registry
	// commits them only after the plugin is accepted, so a plugin
	// that fails Init or loses a duplicate-id race leaves nothing
	// behind in the handler lists.
	staged []stagedSub
	sealed bool
}

// PluginID returns the owning plugin's instance id
func (hc *HostContext) PluginID() string {
	return hc.pluginID
}

// Subscribe registers a handler for a lifecycle event. Handlers run in
// subscription order at dispatch time. Subscribing is only valid while
// Init is executing.
func (hc *HostContext) Subscribe(kind EventKind, h Handler) error {
	if hc.sealed {
		return fmt.Errorf("plugin %s: subscriptions are closed after load", hc.pluginID)
	}
	if !kind.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownEvent, kind)
	}
	if h == nil {
		return fmt.Errorf("%w: event %s", ErrNilHandler, kind)
	}

	hc.staged = append(hc.staged, stagedSub{kind: kind, handler: h})
	return nil
}

// Settings returns a copy of the descriptor's settings map
func (hc *HostContext) Settings() map[string]string {
	settings := make(map[string]string, len(hc.desc.Settings))
	for k, v := range hc.desc.Settings {
		settings[k] = v
	}
	return settings
}

// Setting returns one descriptor setting, or "" when unset
func (hc *HostContext) Setting(key string) string {
	return hc.desc.Settings[key]
}

// Modules returns a copy of the descriptor's module map
func (hc *HostContext) Modules() map[string]string {
	modules := make(map[string]string, len(hc.desc.Modules))
	for k, v := range hc.desc.Modules {
		modules[k] = v
	}
	return modules
}

// ModulePath resolves a named file module from the descriptor
func (hc *HostContext) ModulePath(key string) (string, error) {
	path, ok := hc.desc.Modules[key]
	if !ok || path == "" {
		return "", fmt.Errorf("%w: %s/%s", ErrModuleNotFound, hc.pluginID, key)
	}
	return path, nil
}

// Logger returns a logrus entry scoped to the owning plugin
func (hc *HostContext) Logger() *logrus.Entry {
	return hc.log
}
