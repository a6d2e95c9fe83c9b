package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inkwellcms/inkwell/pkg/plugins"
)

// pluginsFile is the on-disk shape of the plugins file
type pluginsFile struct {
	Plugins []plugins.Descriptor `yaml:"plugins"`
}

// LoadPlugins reads plugin descriptors from a YAML file.
//
// Only an unreadable file or invalid YAML is an error here. Descriptors
// with missing fields are returned as-is so the registry can skip them
// individually without failing the rest of the load.
func LoadPlugins(path string) ([]plugins.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plugins file: %w", err)
	}

	var f pluginsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse plugins file: %w", err)
	}

	return f.Plugins, nil
}
