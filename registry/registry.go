// Package registry resolves short template names to location strings, so
// users can type "tget nuxt ./app" instead of the full "gh:nuxt/starter#v3".
package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Registry is a user-maintained mapping of template names to the location
// strings the parser understands.
type Registry struct {
	Templates map[string]string `yaml:"templates"`
}

// DefaultPath returns the registry file location under the user config dir.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "tget", "templates.yaml")
}

// Load reads the registry at path. A missing file is an empty registry, not
// an error.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Registry{Templates: map[string]string{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading registry file: %w", err)
	}

	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("error parsing registry file %s: %w", path, err)
	}
	if reg.Templates == nil {
		reg.Templates = map[string]string{}
	}

	return &reg, nil
}

// Resolve looks up a template name and returns its location string.
func (r *Registry) Resolve(name string) (string, bool) {
	location, ok := r.Templates[name]
	return location, ok
}

// Names returns all registered template names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.Templates))
	for name := range r.Templates {
		names = append(names, name)
	}
	return names
}
