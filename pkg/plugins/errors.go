package plugins

import "errors"

var (
	// ErrPluginNotFound indicates the registry has no plugin with the given id
	ErrPluginNotFound = errors.New("plugin not found")
	// ErrModuleNotFound indicates a descriptor defines no module under the given key
	ErrModuleNotFound = errors.New("plugin module not found")
	// ErrUnknownEvent indicates an event kind outside the lifecycle set
	ErrUnknownEvent = errors.New("unknown event kind")
	// ErrNilHandler indicates a subscription attempt with a nil handler
	ErrNilHandler = errors.New("nil event handler")
)
