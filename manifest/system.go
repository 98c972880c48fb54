package manifest

import (
	"fmt"
	"strings"
)

// NamedManifest pairs an app's name with its manifest, for building a
// SystemDefinition in a caller-chosen, preserved order.
type NamedManifest struct {
	Name     string
	Manifest *AppManifest
}

// SystemDefinition is the closed set of every app's manifest that makes up
// one system. Iteration order over the apps matters to the graph builder
// (spec.md's build algorithm is defined over insertion order), so the
// definition keeps an explicit ordered name slice alongside its lookup map
// — a representational necessity, not a behavior change, since Go maps
// have no deterministic iteration order of their own.
type SystemDefinition struct {
	order []string
	apps  map[string]*AppManifest
}

// NewSystemDefinition validates that every entry has a non-empty, unique
// name and a non-nil manifest, then builds the definition preserving the
// order entries were given in.
func NewSystemDefinition(entries []NamedManifest) (*SystemDefinition, error) {
	apps := make(map[string]*AppManifest, len(entries))
	order := make([]string, 0, len(entries))

	for _, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, fmt.Errorf("manifest: app name must not be empty")
		}
		if _, exists := apps[entry.Name]; exists {
			return nil, &DuplicateAppNameError{Name: entry.Name}
		}
		if entry.Manifest == nil {
			return nil, fmt.Errorf("manifest: app %q has a nil manifest", entry.Name)
		}
		apps[entry.Name] = entry.Manifest
		order = append(order, entry.Name)
	}

	return &SystemDefinition{order: order, apps: apps}, nil
}

// Names returns the app names in the order the definition was built with.
func (d *SystemDefinition) Names() []string {
	names := make([]string, len(d.order))
	copy(names, d.order)
	return names
}

// Manifest looks up one app's manifest by name.
func (d *SystemDefinition) Manifest(name string) (*AppManifest, bool) {
	m, ok := d.apps[name]
	return m, ok
}

// Len reports how many apps the definition holds.
func (d *SystemDefinition) Len() int {
	return len(d.order)
}

// DuplicateAppNameError reports that a system definition was given two
// entries with the same app name. It is declared here, where app names are
// first collected; package graph re-exports it as graph.DuplicateAppNameError,
// but graph.Build never raises it, since a SystemDefinition cannot hold two
// apps with the same name.
type DuplicateAppNameError struct {
	Name string
}

func (e *DuplicateAppNameError) Error() string {
	return fmt.Sprintf("manifest: duplicate app name %q", e.Name)
}
