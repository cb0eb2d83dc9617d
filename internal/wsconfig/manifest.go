// Package wsconfig loads the on-disk workspace manifest (workspace.yaml)
// that seeds a Compilation's package/workspace membership and search
// paths — the concrete source for spec.md §6's "Compilation object"
// ahead of parsing, since the parser itself is out of this core's scope.
//
// Grounded on the teacher's internal/eval_harness/models.go and spec.go,
// the teacher's only direct users of gopkg.in/yaml.v3, generalized from
// "model pricing config" to "workspace/package manifest".
package wsconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PackageConfig describes one physical package and the workspaces it
// contains (spec.md §3 "Workspace": "a unique name, a physical package").
type PackageConfig struct {
	Name       string   `yaml:"name"`
	Workspaces []string `yaml:"workspaces"`
}

// Manifest is the root of workspace.yaml.
type Manifest struct {
	// CoreWorkspace overrides the default distinguished workspace name
	// ("core", spec.md §4.2) whose symbols are injected everywhere.
	CoreWorkspace string `yaml:"core_workspace"`

	// SearchPaths lists directories searched for source units belonging
	// to each workspace, in order.
	SearchPaths []string `yaml:"search_paths"`

	Packages []PackageConfig `yaml:"packages"`
}

// Load reads and parses a workspace manifest from path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("wsconfig: reading %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("wsconfig: parsing %s: %w", path, err)
	}
	if m.CoreWorkspace == "" {
		m.CoreWorkspace = "core"
	}
	if len(m.SearchPaths) == 0 {
		m.SearchPaths = []string{"."}
	}
	return &m, nil
}

// WorkspacePackage returns the package name that declares workspace ws,
// or "" if the manifest does not mention it (an anonymous/implicit
// workspace belongs to no declared package).
func (m *Manifest) WorkspacePackage(ws string) string {
	for _, pkg := range m.Packages {
		for _, w := range pkg.Workspaces {
			if w == ws {
				return pkg.Name
			}
		}
	}
	return ""
}
