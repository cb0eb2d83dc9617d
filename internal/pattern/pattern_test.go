package pattern

import (
	"errors"
	"testing"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/diag"
	"github.com/sunholo/ailang/internal/external"
	"github.com/sunholo/ailang/internal/types"
)

func TestCheckBindsIdentPattern(t *testing.T) {
	a := NewAnalyzer(diag.NewCollector(), external.StubMatcher{})
	pat := &ast.IdentPattern{Name: "n"}
	bindings, guard, ok := a.Check(&ast.Identifier{Name: "x"}, pat, types.I32)
	if !ok {
		t.Fatalf("expected ident pattern to check")
	}
	if guard != nil {
		t.Fatalf("expected no guard, got %v", guard)
	}
	if len(bindings) != 1 || bindings[0].Name != "n" || !bindings[0].Type.Equal(types.I32) {
		t.Fatalf("expected a single binding n:i32, got %+v", bindings)
	}
}

func TestCheckExtractsGuardFromGuardedPattern(t *testing.T) {
	a := NewAnalyzer(diag.NewCollector(), external.StubMatcher{})
	guardExpr := &ast.BoolLit{Value: true}
	pat := &ast.GuardedPattern{
		Inner: &ast.IdentPattern{Name: "n"},
		Guard: guardExpr,
	}
	bindings, guard, ok := a.Check(&ast.Identifier{Name: "x"}, pat, types.I32)
	if !ok {
		t.Fatalf("expected guarded pattern to check")
	}
	if guard != guardExpr {
		t.Fatalf("expected Check to return the guard expression attached to the pattern")
	}
	if len(bindings) != 1 || bindings[0].Name != "n" {
		t.Fatalf("expected the inner pattern's binding to survive, got %+v", bindings)
	}
}

func TestCheckRejectsMismatchedTuplePattern(t *testing.T) {
	sink := diag.NewCollector()
	a := NewAnalyzer(sink, external.StubMatcher{})
	pat := &ast.TuplePattern{Elements: []ast.Pattern{&ast.IdentPattern{Name: "a"}}}
	scrut := &types.TTuple{Elements: []types.Type{types.I32, types.I32}}
	_, _, ok := a.Check(&ast.Identifier{Name: "x"}, pat, scrut)
	if ok {
		t.Fatalf("expected a 1-element tuple pattern to reject a 2-element tuple scrutinee")
	}
	if len(sink.Reports) == 0 || sink.Reports[0].Code != diag.PAT001 {
		t.Fatalf("expected a PAT001 diagnostic, got %+v", sink.Reports)
	}
}

func TestCheckRejectsOrPatternWithDifferentBindings(t *testing.T) {
	sink := diag.NewCollector()
	a := NewAnalyzer(sink, external.StubMatcher{})
	pat := &ast.OrPattern{
		Left:  &ast.IdentPattern{Name: "a"},
		Right: &ast.IdentPattern{Name: "b"},
	}
	_, _, ok := a.Check(&ast.Identifier{Name: "x"}, pat, types.I32)
	if ok {
		t.Fatalf("expected or-pattern with mismatched binding names to be rejected")
	}
	var sawPAT003 bool
	for _, r := range sink.Reports {
		if r.Code == diag.PAT003 {
			sawPAT003 = true
		}
	}
	if !sawPAT003 {
		t.Fatalf("expected a PAT003 diagnostic, got %+v", sink.Reports)
	}
}

// fakeMatcher lets tests control what the external matcher decides,
// standing in for the real pattern-match compiler spec.md §6 places out of
// scope for this checker.
type fakeMatcher struct {
	result external.MatchResult
	err    error
}

func (f fakeMatcher) Match(ast.Expr, ast.Pattern) (external.MatchResult, error) {
	return f.result, f.err
}

func TestCheckMergesMatcherSuppliedBindingsAndGuard(t *testing.T) {
	extraDecl := &types.Declaration{Kind: types.KindConst, Name: "rest"}
	extraDecl.Annotation.Type = types.String
	matcherGuard := &ast.BoolLit{Value: false}
	matcher := fakeMatcher{result: external.MatchResult{
		OK:    true,
		Decls: []*types.Declaration{extraDecl},
		Guard: matcherGuard,
	}}
	a := NewAnalyzer(diag.NewCollector(), matcher)

	bindings, guard, ok := a.Check(&ast.Identifier{Name: "x"}, &ast.IdentPattern{Name: "n"}, types.I32)
	if !ok {
		t.Fatalf("expected pattern to check")
	}
	if guard != matcherGuard {
		t.Fatalf("expected the matcher's own guard to take precedence when the pattern has none")
	}
	names := map[string]bool{}
	for _, b := range bindings {
		names[b.Name] = true
	}
	if !names["n"] || !names["rest"] {
		t.Fatalf("expected both the structural binding and the matcher-supplied one, got %+v", bindings)
	}
}

func TestCheckFailsWhenMatcherRejects(t *testing.T) {
	sink := diag.NewCollector()
	matcher := fakeMatcher{result: external.MatchResult{OK: false}}
	a := NewAnalyzer(sink, matcher)

	_, _, ok := a.Check(&ast.Identifier{Name: "x"}, &ast.IdentPattern{Name: "n"}, types.I32)
	if ok {
		t.Fatalf("expected Check to fail when the external matcher rejects the pattern")
	}
}

func TestCheckFailsWhenMatcherErrors(t *testing.T) {
	sink := diag.NewCollector()
	matcher := fakeMatcher{err: errors.New("boom")}
	a := NewAnalyzer(sink, matcher)

	_, _, ok := a.Check(&ast.Identifier{Name: "x"}, &ast.IdentPattern{Name: "n"}, types.I32)
	if ok {
		t.Fatalf("expected Check to fail when the external matcher errors")
	}
	if len(sink.Reports) != 1 || sink.Reports[0].Code != diag.PAT001 {
		t.Fatalf("expected a PAT001 diagnostic for the matcher error, got %+v", sink.Reports)
	}
}
