// Package check implements the five-pass semantic checker of spec.md §2:
// pass 0 groups source units into workspaces (internal/workspace), pass 1
// registers top-level names, pass 2 visits extension/behaviour/concept
// headers, pass 3 builds types/constants/concepts/extension bodies, and
// pass 4 checks function/test/variable bodies. Generics are instantiated
// on demand during passes 3 and 4.
//
// Grounded on the teacher's internal/types/typechecker_core.go
// (CoreTypeChecker: a single struct carrying checker-wide state — an
// instance environment, an error list, debug flags — driving inference
// over the whole program in one pass), generalized from ailang's single
// Hindley-Milner inference pass over already-elaborated Core AST to this
// spec's five ordered passes over a raw multi-workspace AST.
package check

import (
	"fmt"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/concept"
	"github.com/sunholo/ailang/internal/diag"
	"github.com/sunholo/ailang/internal/external"
	"github.com/sunholo/ailang/internal/generic"
	"github.com/sunholo/ailang/internal/pattern"
	"github.com/sunholo/ailang/internal/resolve"
	"github.com/sunholo/ailang/internal/scope"
	"github.com/sunholo/ailang/internal/types"
	"github.com/sunholo/ailang/internal/workspace"
	"github.com/sunholo/ailang/internal/wsimport"
)

// Checker drives the five passes over one Compilation.
type Checker struct {
	Comp *workspace.Compilation
	Sink diag.Sink
	Eval external.Evaluator
	Mat  external.Matcher

	Graph *scope.Graph
	Gen   *generic.Instantiator
	Pat   *pattern.Analyzer

	// curWS is the workspace currently being checked; the resolver and
	// visibility rules are always relative to it.
	curWS *workspace.Workspace

	// returnType is the declared return type of the function whose body
	// is being checked; `return` values are checked against it (CHK001).
	// break/continue/return placement (CHK006) uses the scope graph's
	// Inside query instead.
	returnType types.Type

	// litBoundaries is the function-literal-boundary set shared by every
	// resolve.Resolver built during this Check() invocation (spec.md §5's
	// resolver state must not survive past a single Check() call).
	litBoundaries map[ast.Node]bool
}

// New creates a checker over comp, reporting to sink, delegating constant
// folding and match decisions to eval/mat (spec.md §6 "External
// collaborators"; external.StubEvaluator/StubMatcher are the no-op
// defaults when no real evaluator is wired).
func New(comp *workspace.Compilation, sink diag.Sink, eval external.Evaluator, mat external.Matcher) *Checker {
	if eval == nil {
		eval = external.StubEvaluator{}
	}
	if mat == nil {
		mat = external.StubMatcher{}
	}
	c := &Checker{
		Comp:  comp,
		Sink:  sink,
		Eval:  eval,
		Mat:   mat,
		Graph: scope.NewGraph(),
		Pat:   pattern.NewAnalyzer(sink, mat),
	}
	// Gen is wired after c exists so its ConstraintChecker closure
	// (spec.md §4.6 step 4) can call back into c's own concept engine and
	// scope graph without internal/generic importing internal/check.
	c.Gen = generic.NewInstantiator(abortingSink{c}, c.checkGenericConstraints)
	return c
}

// abortingSink forwards reports to the checker's Sink, turning an abort
// report (e.g. GEN002) into a checker abort that unwinds Check().
type abortingSink struct{ c *Checker }

func (s abortingSink) Publish(rep *diag.Report) {
	if rep.Kind == diag.KindAbort {
		s.c.abort(rep)
	}
	s.c.Sink.Publish(rep)
}

// Check runs every pass in order, returning an error only for a fatal
// abort (spec.md §7 "abort: halts the *entire* compilation"); ordinary
// semantic errors are published to Sink and do not stop later passes from
// running over unaffected declarations.
func (c *Checker) Check() (err error) {
	c.litBoundaries = make(map[ast.Node]bool)
	defer func() {
		if r := recover(); r != nil {
			if rep, ok := r.(abortPanic); ok {
				err = diag.Wrap(rep.report)
				return
			}
			panic(r)
		}
	}()

	importer := wsimport.New(c.Sink)
	importer.BuildEdges(c.Comp)

	for _, ws := range c.Comp.Workspaces {
		c.curWS = ws
		c.pass1RegisterNames(ws)
	}

	importer.InjectCore(c.Comp, c.Graph)

	for _, ws := range c.Comp.Workspaces {
		c.curWS = ws
		c.pass2VisitHeaders(ws)
	}
	for _, ws := range c.Comp.Workspaces {
		c.curWS = ws
		c.pass3BuildBodies(ws)
	}
	for _, ws := range c.Comp.Workspaces {
		c.curWS = ws
		c.pass4CheckFunctions(ws)
	}
	return nil
}

// abortPanic carries a fatal abort.Report through recover (spec.md §7).
type abortPanic struct{ report *diag.Report }

// abort publishes rep and unwinds the entire Check() call.
func (c *Checker) abort(rep *diag.Report) {
	c.Sink.Publish(rep)
	panic(abortPanic{report: rep})
}

func (c *Checker) resolver() *resolve.Resolver {
	if c.litBoundaries == nil {
		c.litBoundaries = make(map[ast.Node]bool)
	}
	return resolve.New(c.Comp, c.curWS, c.Sink, c.litBoundaries)
}

func (c *Checker) conceptEngine(env *scope.Environment) *concept.Engine {
	return concept.NewEngine(func(name string) []*types.Declaration {
		var out []*types.Declaration
		if d, ok := env.Lookup(scope.Functions, name, true); ok {
			out = append(out, d)
		}
		return out
	})
}

func (c *Checker) report(code, phase, msg string, pos ast.Pos) {
	c.Sink.Publish(diag.New(code, phase, msg, ast.Span{Start: pos, End: pos}))
}

func (c *Checker) reportf(code, phase string, pos ast.Pos, format string, args ...interface{}) {
	c.report(code, phase, fmt.Sprintf(format, args...), pos)
}
