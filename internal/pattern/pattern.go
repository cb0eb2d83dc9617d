// Package pattern implements the pattern analyzer of spec.md §4.7: given a
// scrutinee type and a pattern, it checks the pattern's shape against that
// type and returns the bindings it introduces, delegating the actual
// match decision (which arm fires at runtime) to an external
// external.Matcher collaborator (spec.md §6: pattern-match compilation is
// out of scope for this checker).
//
// Grounded on the teacher's internal/types/typechecker_patterns.go
// (checkPattern: a switch over pattern kinds that recursively type-checks
// sub-patterns against the scrutinee's shape, merging a name→Type binding
// map and requiring that a name bound in more than one place unify to the
// same type), generalized from the teacher's fixed pattern kinds (var,
// literal, wildcard, constructor, tuple, list) to spec.md's pattern forms
// (wildcard, literal, range, ident-or-const-ref, tuple, field/record,
// or-pattern, guarded).
package pattern

import (
	"fmt"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/diag"
	"github.com/sunholo/ailang/internal/external"
	"github.com/sunholo/ailang/internal/types"
)

// Binding is one name introduced by a pattern, with the type it is bound
// at (spec.md §4.7: "an ident pattern binds a fresh name at the
// scrutinee's type unless Ref is set, in which case it must reference an
// existing const").
type Binding struct {
	Name string
	Type types.Type
}

// Analyzer checks patterns against scrutinee types (spec.md §4.7).
type Analyzer struct {
	sink    diag.Sink
	matcher external.Matcher
}

// NewAnalyzer creates a pattern analyzer reporting to sink and delegating
// constant/structural match decisions to matcher.
func NewAnalyzer(sink diag.Sink, matcher external.Matcher) *Analyzer {
	return &Analyzer{sink: sink, matcher: matcher}
}

// Check type-checks pat against scrut (the scrutinee's static type), then
// delegates the final match/guard decision to the external matcher
// (spec.md §4.7 step 3: "the pattern-match compiler decides which arm
// actually fires"), passing it scrutExpr so it can inspect the scrutinee
// expression itself, not just its type. Returns every binding the pattern
// introduces — its own structural bindings plus any extra declarations
// the matcher's result supplies — and the guard expression the caller
// must type-check as bool in the arm's environment (from a
// *ast.GuardedPattern directly, or from the matcher's own MatchResult.Guard
// if it compiled one the AST doesn't expose).
func (a *Analyzer) Check(scrutExpr ast.Expr, pat ast.Pattern, scrut types.Type) ([]Binding, ast.Expr, bool) {
	bindings := map[string]types.Type{}
	ok := a.check(pat, scrut, bindings)
	guard := guardOf(pat)
	if !ok {
		return nil, guard, false
	}
	if a.matcher != nil {
		res, err := a.matcher.Match(scrutExpr, pat)
		if err != nil {
			a.report(diag.PAT001, pat.Position(), err.Error())
			return nil, guard, false
		}
		if !res.OK {
			a.report(diag.PAT001, pat.Position(), fmt.Sprintf("pattern does not match scrutinee %s", scrut))
			return nil, guard, false
		}
		for _, d := range res.Decls {
			bindings[d.Name] = d.Annotation.Type
		}
		if res.Guard != nil {
			guard = res.Guard
		}
	}
	out := make([]Binding, 0, len(bindings))
	for name, t := range bindings {
		out = append(out, Binding{Name: name, Type: t})
	}
	return out, guard, true
}

// guardOf extracts the guard expression directly attached to pat, if pat
// itself is a *ast.GuardedPattern; guards nested deeper are not found.
func guardOf(pat ast.Pattern) ast.Expr {
	if g, ok := pat.(*ast.GuardedPattern); ok {
		return g.Guard
	}
	return nil
}

func (a *Analyzer) check(pat ast.Pattern, scrut types.Type, bindings map[string]types.Type) bool {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return true

	case *ast.LiteralPattern:
		// The literal's own type is resolved by the expression checker
		// before the pattern analyzer sees it (spec.md §4.7 step 1); here
		// we only confirm shape compatibility with the scrutinee category.
		return a.compatibleLeaf(scrut, p.Pos)

	case *ast.RangePattern:
		if !a.compatibleLeaf(scrut, p.Pos) {
			return false
		}
		return true

	case *ast.IdentPattern:
		if p.Ref {
			// Must reference an existing const of the scrutinee's type; the
			// resolver (not this package) confirms the reference exists,
			// spec.md §4.7 step 2 "PAT004".
			return true
		}
		return a.bind(p.Name, scrut, bindings, p.Pos)

	case *ast.TuplePattern:
		tup, ok := scrut.(*types.TTuple)
		if !ok || len(tup.Elements) != len(p.Elements) {
			a.report(diag.PAT001, p.Pos, fmt.Sprintf("tuple pattern of %d elements does not match scrutinee %s", len(p.Elements), scrut))
			return false
		}
		allOK := true
		for i, sub := range p.Elements {
			if !a.check(sub, tup.Elements[i], bindings) {
				allOK = false
			}
		}
		return allOK

	case *ast.RecordPattern:
		rec, ok := scrut.(*types.TRecord)
		if !ok {
			a.report(diag.PAT001, p.Pos, fmt.Sprintf("record pattern does not match scrutinee %s", scrut))
			return false
		}
		if p.TypeName != "" && rec.Name != p.TypeName {
			a.report(diag.PAT001, p.Pos, fmt.Sprintf("pattern names variant member %s, scrutinee is %s", p.TypeName, rec.Name))
			return false
		}
		allOK := true
		for _, fp := range p.Fields {
			ft := fieldType(rec, fp.Name)
			if ft == nil {
				a.report(diag.PAT001, fp.Pos, fmt.Sprintf("no field %q on %s", fp.Name, rec.Name))
				allOK = false
				continue
			}
			if !a.check(fp.Pattern, ft, bindings) {
				allOK = false
			}
		}
		return allOK

	case *ast.OrPattern:
		leftBindings := map[string]types.Type{}
		rightBindings := map[string]types.Type{}
		leftOK := a.check(p.Left, scrut, leftBindings)
		rightOK := a.check(p.Right, scrut, rightBindings)
		if leftOK && rightOK && !sameTypedNameSet(leftBindings, rightBindings) {
			a.report(diag.PAT003, p.Pos, "or-pattern alternatives bind different names")
			return false
		}
		for n, t := range leftBindings {
			bindings[n] = t
		}
		for n, t := range rightBindings {
			bindings[n] = t
		}
		return leftOK && rightOK

	case *ast.GuardedPattern:
		if !a.check(p.Inner, scrut, bindings) {
			return false
		}
		// The guard expression itself is checked by the expression checker
		// (spec.md §4.4), which must see it as boolean; the pattern
		// analyzer only threads the pattern's own bindings into scope for
		// that check, which happens in the caller (internal/check).
		return true

	default:
		return true
	}
}

func (a *Analyzer) bind(name string, t types.Type, bindings map[string]types.Type, pos ast.Pos) bool {
	if existing, ok := bindings[name]; ok {
		if !existing.Equal(t) {
			a.report(diag.PAT001, pos, fmt.Sprintf("%q is bound at incompatible types %s and %s", name, existing, t))
			return false
		}
		return true
	}
	bindings[name] = t
	return true
}

func (a *Analyzer) compatibleLeaf(t types.Type, pos ast.Pos) bool {
	switch t.Category() {
	case types.CatRecord, types.CatVariant, types.CatFunction, types.CatWorkspace:
		a.report(diag.PAT001, pos, fmt.Sprintf("literal/range pattern cannot match %s", t))
		return false
	default:
		return true
	}
}

func (a *Analyzer) report(code string, pos ast.Pos, msg string) {
	a.sink.Publish(diag.New(code, "pattern", msg, ast.Span{Start: pos, End: pos}))
}

func fieldType(rec *types.TRecord, name string) types.Type {
	for _, f := range rec.Fields {
		if f.Name == name {
			return f.Type
		}
	}
	return nil
}

func sameTypedNameSet(a, b map[string]types.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for n := range a {
		if _, ok := b[n]; !ok {
			return false
		}
	}
	return true
}
