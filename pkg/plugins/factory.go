package plugins

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a plugin instance from its descriptor
type Factory func(d *Descriptor) (Plugin, error)

var (
	// factories is the package-level factory map, keyed by impl name
	factories = make(map[string]Factory)
	// factoriesMu protects concurrent access to factories
	factoriesMu sync.RWMutex
)

// RegisterFactory adds a named factory to the package registry.
// Descriptors resolve their Impl field against this registry during load.
func RegisterFactory(name string, f Factory) error {
	if name == "" {
		return fmt.Errorf("cannot register factory with empty name")
	}
	if f == nil {
		return fmt.Errorf("cannot register nil factory: %s", name)
	}

	factoriesMu.Lock()
	defer factoriesMu.Unlock()

	if _, exists := factories[name]; exists {
		return fmt.Errorf("factory already registered: %s", name)
	}

	factories[name] = f
	return nil
}

// MustRegisterFactory is like RegisterFactory but panics on error.
// Built-in plugins use it from their package init functions.
func MustRegisterFactory(name string, f Factory) {
	if err := RegisterFactory(name, f); err != nil {
		panic(err)
	}
}

// LookupFactory returns the factory registered under name
func LookupFactory(name string) (Factory, bool) {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	f, exists := factories[name]
	return f, exists
}

// FactoryNames returns the sorted names of all registered factories
func FactoryNames() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
