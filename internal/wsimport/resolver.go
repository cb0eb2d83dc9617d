// Package wsimport builds the workspace import DAG, detects cycles, and
// seeds cross-workspace symbol visibility by injecting the distinguished
// `core` workspace's top-level symbols everywhere (spec.md §4.2).
//
// Grounded on the teacher's internal/link/topo.go (per-root DFS over
// module dependency edges, classifying forward/back/cross edges for
// cycle detection) and internal/link/builtin_module.go (injecting one
// distinguished module's exports into every other module's interface),
// generalized from ailang's `$builtin` pseudo-module to spec.md's named
// `core` workspace.
package wsimport

import (
	"fmt"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/diag"
	"github.com/sunholo/ailang/internal/scope"
	"github.com/sunholo/ailang/internal/workspace"
)

type edgeState int

const (
	unvisited edgeState = iota
	inProgress
	resolved
)

// Resolver builds the import graph for one Compilation.
type Resolver struct {
	state map[string]edgeState
	sink  diag.Sink
}

// New creates a Resolver reporting through sink.
func New(sink diag.Sink) *Resolver {
	return &Resolver{state: make(map[string]edgeState), sink: sink}
}

// BuildEdges runs one DFS per unvisited workspace over its `use` edges,
// classifying each edge exactly as spec.md §4.2 describes. It only needs
// each workspace's source units (their `use` lists), not yet any
// registered declaration, so the checker runs it before pass 1.
func (r *Resolver) BuildEdges(comp *workspace.Compilation) {
	for name := range comp.Workspaces {
		if r.state[name] == unvisited {
			r.dfs(comp, name, nil)
		}
	}
}

// InjectCore performs the `core` workspace injection step (spec.md §4.2).
// It requires every workspace's root environment and top-level globals to
// already exist, so the checker runs it after pass 1 registers names.
func (r *Resolver) InjectCore(comp *workspace.Compilation, sg *scope.Graph) {
	r.injectCore(comp, sg)
}

func (r *Resolver) dfs(comp *workspace.Compilation, name string, path []string) {
	r.state[name] = inProgress
	ws := comp.Workspaces[name]
	if ws == nil {
		return
	}
	seen := map[string]bool{}
	for _, su := range ws.Sources {
		for _, use := range su.Uses {
			target := use.Workspace
			span := ast.Span{Start: use.Pos, End: use.Pos}

			if target == name {
				r.sink.Publish(diag.New("IMP002", "import", fmt.Sprintf("workspace %q imports itself", name), span))
				continue
			}
			targetWs, ok := comp.Workspaces[target]
			if !ok {
				r.sink.Publish(diag.New("IMP001", "import", fmt.Sprintf("no such workspace %q", target), span))
				continue
			}
			if seen[target] {
				r.sink.Publish(diag.NewWarning("IMP004", "import", fmt.Sprintf("duplicate import of %q", target), span))
				continue
			}
			seen[target] = true

			switch r.state[target] {
			case inProgress:
				r.sink.Publish(diag.NewCyclic("IMP003", "import",
					fmt.Sprintf("cyclic import: %s -> %s", name, target), span))
				continue
			case unvisited:
				r.dfs(comp, target, append(path, name))
			}
			ws.Imports[target] = targetWs
		}
	}
	r.state[name] = resolved
}

// injectCore makes every top-level symbol of the `core` workspace (if
// present) an implicit definition in every other workspace's root
// environment and import map, supporting unqualified use of standard
// names (spec.md §4.2).
func (r *Resolver) injectCore(comp *workspace.Compilation, sg *scope.Graph) {
	core, ok := comp.Workspaces[workspace.CoreWorkspaceName]
	if !ok {
		return
	}
	for name, ws := range comp.Workspaces {
		if name == workspace.CoreWorkspaceName {
			continue
		}
		ws.Imports[workspace.CoreWorkspaceName] = core
		if ws.RootEnv == nil || core.RootEnv == nil {
			continue
		}
		rootEnv := sg.EnvFor(ws.RootEnv)
		coreEnv := sg.EnvFor(core.RootEnv)
		if rootEnv == nil || coreEnv == nil {
			continue
		}
		for _, ns := range []scope.Namespace{scope.Values, scope.Functions, scope.Types, scope.Concepts} {
			for sym, decl := range coreEnv.Entries(ns) {
				rootEnv.Define(ns, sym, decl)
			}
		}
	}
}
