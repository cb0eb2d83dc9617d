// Package workspace models the compilation-level objects spec.md §3
// ("Workspace") and §6 ("Compilation") describe: the workspace namespace,
// its per-workspace instantiation/concept caches, and the top-level
// Compilation object the parser/driver hands to the checker.
//
// Grounded on the teacher's internal/module/loader.go (Module/Loader:
// identity, file path, dependency list, cache-by-identity) generalized
// from "one Go-style module per file" to "one workspace aggregating many
// source units", per spec.md §2 pass 0.
package workspace

import (
	"sync"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/types"
)

// Package is the physical grouping a workspace belongs to (spec.md §3:
// "a unique name, a physical package").
type Package struct {
	Name       string
	Workspaces []string // workspace names declared in this package
}

// Workspace is a logical namespace (spec.md §3 "Workspace").
type Workspace struct {
	Name    string
	Package string
	Sources []*ast.SourceUnit

	// Globals lists the workspace's top-level declarations in emission
	// order (spec.md §6 "Outputs... ordered lists of globals").
	Globals []*types.Declaration

	// TypeDecls/Funcs/InstantiatedTypes/InstantiatedFuncs/Tests mirror the
	// rest of spec.md §6's per-workspace output lists.
	TypeDecls          []*types.Declaration
	Funcs              []*types.Declaration
	InstantiatedTypes  []*types.Declaration
	InstantiatedFuncs  []*types.Declaration
	Tests              []*types.Declaration

	// Imports maps an imported workspace name to its Workspace, populated
	// by the import resolver (spec.md §4.2).
	Imports map[string]*Workspace

	mu sync.Mutex
	// instCache caches instantiated generic types/functions keyed by
	// mangled name (spec.md §3 "a cache of instantiated generic types and
	// functions keyed by mangled name").
	instCache map[string]*types.Declaration
	// conceptCache caches concept-test outcomes keyed by mangled
	// concept-application name (spec.md §3).
	conceptCache map[string]bool

	RootEnv ast.Node // the synthetic node Begin()'d for this workspace's root environment
}

// String and Position let *Workspace itself serve as the ast.Node the
// scope graph begins a workspace's root environment on, since a workspace
// has no single declaring source node of its own (it aggregates many).
func (w *Workspace) String() string   { return "workspace " + w.Name }
func (w *Workspace) Position() ast.Pos { return ast.Pos{} }

// NewWorkspace creates an empty workspace named name in package pkg.
func NewWorkspace(name, pkg string) *Workspace {
	return &Workspace{
		Name:         name,
		Package:      pkg,
		Imports:      make(map[string]*Workspace),
		instCache:    make(map[string]*types.Declaration),
		conceptCache: make(map[string]bool),
	}
}

// CacheInstantiation stores decl under mangled, returning the decl stored
// (spec.md §8 "calling instantiate(G, A) twice returns the same cached
// declaration").
func (w *Workspace) CacheInstantiation(mangled string, decl *types.Declaration) *types.Declaration {
	w.mu.Lock()
	defer w.mu.Unlock()
	if existing, ok := w.instCache[mangled]; ok {
		return existing
	}
	w.instCache[mangled] = decl
	return decl
}

// LookupInstantiation returns a previously cached instantiation, if any.
func (w *Workspace) LookupInstantiation(mangled string) (*types.Declaration, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	d, ok := w.instCache[mangled]
	return d, ok
}

// CacheConcept records a concept-application outcome. Per spec.md §9 Open
// Questions, only fully concrete applications should ever reach this
// cache; callers must not cache parametric (non-concrete) results.
func (w *Workspace) CacheConcept(mangled string, holds bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.conceptCache[mangled] = holds
}

// LookupConcept returns a previously cached concept outcome, if any.
func (w *Workspace) LookupConcept(mangled string) (bool, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	h, ok := w.conceptCache[mangled]
	return h, ok
}

// CoreWorkspaceName is the distinguished workspace whose top-level
// symbols are injected into every other workspace's root environment
// (spec.md §4.2).
const CoreWorkspaceName = "core"

// Compilation is the top-level input from the parser/driver (spec.md §6):
// packages (name → source set) and workspaces (name → workspace).
type Compilation struct {
	Packages   map[string]*Package
	Workspaces map[string]*Workspace

	// EntryPoint is the single `start` declaration, if any was found
	// (spec.md §3 invariant, §6 "Outputs").
	EntryPoint *types.Declaration
}

// NewCompilation creates an empty Compilation.
func NewCompilation() *Compilation {
	return &Compilation{
		Packages:   make(map[string]*Package),
		Workspaces: make(map[string]*Workspace),
	}
}

// AddSourceUnit groups a parsed source unit into its workspace (creating
// the workspace/package on first sight), implementing pass 0 of spec.md
// §2. Anonymous source units (Workspace == nil) are collected into an
// implicit workspace named after their file path.
func (c *Compilation) AddSourceUnit(pkgName string, su *ast.SourceUnit) *Workspace {
	wsName := su.Path
	if su.Workspace != nil {
		wsName = su.Workspace.Name
	}
	ws, ok := c.Workspaces[wsName]
	if !ok {
		ws = NewWorkspace(wsName, pkgName)
		c.Workspaces[wsName] = ws
	}
	ws.Sources = append(ws.Sources, su)

	pkg, ok := c.Packages[pkgName]
	if !ok {
		pkg = &Package{Name: pkgName}
		c.Packages[pkgName] = pkg
	}
	found := false
	for _, w := range pkg.Workspaces {
		if w == wsName {
			found = true
			break
		}
	}
	if !found {
		pkg.Workspaces = append(pkg.Workspaces, wsName)
	}
	return ws
}
