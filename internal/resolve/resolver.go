// Package resolve implements the name resolver (spec.md §4.3): resolving
// a path/identifier/member reference against scopes, workspaces, and
// builtins, with closure-capture and visibility rules and "did you mean"
// suggestions.
//
// Grounded on the teacher's internal/link/resolver.go and
// internal/module/resolver.go (cross-module symbol resolution walking an
// import map), generalized from ailang's single values-only namespace to
// spec.md's four-namespace lookup order and closure/visibility rules.
package resolve

import (
	"fmt"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/diag"
	"github.com/sunholo/ailang/internal/scope"
	"github.com/sunholo/ailang/internal/types"
	"github.com/sunholo/ailang/internal/workspace"
)

// Result is what Resolve yields for a path expression: either a
// declaration, or a bare workspace reference (spec.md §4.3 step 2).
type Result struct {
	Decl      *types.Declaration
	Namespace scope.Namespace
	Workspace string // non-"" when the result is a workspace-type value
}

// Resolver resolves names within one workspace's view of a Compilation.
type Resolver struct {
	Comp *workspace.Compilation
	Self *workspace.Workspace
	Sink diag.Sink

	// funcLitBoundaries tracks which environments were Begin()'d for a
	// function-literal body, since scope.Environment itself carries no
	// such marker (only the higher-level KindFunction tag used by
	// loop/return queries, which applies to ordinary function
	// declarations too). Owned by the caller (Checker) and shared across
	// every short-lived Resolver built during one Check() invocation —
	// never a package-level var, so two Check() calls (e.g. across
	// sequential tests) never see each other's boundaries.
	funcLitBoundaries map[ast.Node]bool
}

// New creates a Resolver for workspace self within comp. boundaries is
// the function-literal-boundary set for the whole Check() invocation this
// Resolver belongs to (see Resolver.funcLitBoundaries); the caller should
// pass the same map to every Resolver it builds within one Check() call.
func New(comp *workspace.Compilation, self *workspace.Workspace, sink diag.Sink, boundaries map[ast.Node]bool) *Resolver {
	return &Resolver{Comp: comp, Self: self, Sink: sink, funcLitBoundaries: boundaries}
}

// ResolveIdent resolves a bare identifier in environment env following
// spec.md §4.3's four-step algorithm (associated-scope override and
// workspace-qualification are handled by ResolvePath for member chains;
// this entry point covers steps 2-4 for a lone name).
func (r *Resolver) ResolveIdent(env *scope.Environment, name string, pos ast.Pos) (Result, bool) {
	if name == workspace.CoreWorkspaceName || name == r.Self.Name {
		return Result{Workspace: name}, true
	}
	if ws, ok := r.Self.Imports[name]; ok {
		return Result{Workspace: ws.Name}, true
	}

	decl, ns, ok := env.LookupAny(name)
	if !ok {
		r.reportUnresolved(env, name, pos)
		return Result{}, false
	}
	if !r.checkClosureCapture(env, decl, ns) {
		span := ast.Span{Start: pos, End: pos}
		r.Sink.Publish(diag.New("RES003", "resolve",
			fmt.Sprintf("cannot capture local %q into function scope", name), span))
		return Result{}, false
	}
	if !r.checkVisibility(decl, env) {
		span := ast.Span{Start: pos, End: pos}
		r.Sink.Publish(diag.New("RES004", "resolve",
			fmt.Sprintf("%q is not visible here", name), span))
		return Result{}, false
	}
	decl.Annotation.UseCount++
	return Result{Decl: decl, Namespace: ns}, true
}

// ResolvePath resolves a left-associative member chain `A.B.…C` (spec.md
// §4.3 "Path resolution"): the leftmost workspace-qualified prefix is
// matched greedily against the longest import name, then the remainder is
// ordinary member access (left to the expression checker's MemberExpr
// handling, since only the caller knows the object type once resolved).
func (r *Resolver) ResolvePath(env *scope.Environment, segs []string, pos ast.Pos) (Result, int, bool) {
	best := -1
	for n := len(segs); n >= 1; n-- {
		name := joinDots(segs[:n])
		if name == r.Self.Name || name == workspace.CoreWorkspaceName {
			best = n
			break
		}
		if _, ok := r.Self.Imports[name]; ok {
			best = n
			break
		}
	}
	if best == -1 {
		res, ok := r.ResolveIdent(env, segs[0], pos)
		return res, 1, ok
	}
	res, ok := r.ResolveIdent(env, joinDots(segs[:best]), pos)
	return res, best, ok
}

func joinDots(parts []string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += "." + p
	}
	return out
}

// checkClosureCapture implements spec.md §4.3 "Closure rule": inside a
// function literal, looking up a local declared in an enclosing
// expression-scope is rejected. Parameters and top-level items remain
// visible.
func (r *Resolver) checkClosureCapture(env *scope.Environment, decl *types.Declaration, ns scope.Namespace) bool {
	if ns != scope.Values {
		return true
	}
	switch decl.Kind {
	case types.KindConst, types.KindConstTupled, types.KindGenericConstParameter,
		types.KindFunction, types.KindProperty, types.KindParameter:
		return true
	}
	// Top-level items (scope is the workspace root) are always visible.
	if decl.Annotation.Scope == r.Self.RootEnv {
		return true
	}
	crossedLit := false
	for e := env; e != nil; e = e.Parent {
		if e.Node == decl.Annotation.Scope {
			return !crossedLit
		}
		if r.isFuncLitBoundary(e) {
			crossedLit = true
		}
	}
	return true
}

// MarkFuncLitBoundary records that node is a function-literal body, for
// checkClosureCapture to recognize.
func (r *Resolver) MarkFuncLitBoundary(node ast.Node) { r.funcLitBoundaries[node] = true }

func (r *Resolver) isFuncLitBoundary(e *scope.Environment) bool {
	return r.funcLitBoundaries[e.Node]
}

// checkVisibility implements spec.md §4.3 "Visibility": a `hide`
// declaration is only visible within its declaring workspace; a hidden
// field is only visible to code whose scope is an ancestor of the type's
// declaration scope.
func (r *Resolver) checkVisibility(decl *types.Declaration, env *scope.Environment) bool {
	if !decl.Hidden {
		return true
	}
	if decl.Kind == types.KindField || decl.Kind == types.KindTupleField {
		for e := env; e != nil; e = e.Parent {
			if decl.Parent != nil && e.Node == decl.Parent.Node {
				return true
			}
		}
		return false
	}
	return decl.Workspace == r.Self.Name
}

func (r *Resolver) reportUnresolved(env *scope.Environment, name string, pos ast.Pos) {
	span := ast.Span{Start: pos, End: pos}
	report := diag.New("RES001", "resolve", fmt.Sprintf("unresolved name %q", name), span)
	candidates := env.AllSymbols()
	suggestions := Suggest(name, candidates)
	if len(suggestions) > 0 {
		report.WithData("suggestions", suggestions)
		report = report.WithNote(fmt.Sprintf("did you mean %q?", suggestions[0]), nil)
	}
	r.Sink.Publish(report)
}
