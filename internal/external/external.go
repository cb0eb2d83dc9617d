// Package external declares the interfaces the checker consumes from its
// out-of-scope collaborators (spec.md §6): the constant-expression
// evaluator and the pattern-match compiler. Implementations live outside
// this module; this package only carries the contract plus small stub
// doubles for unit tests.
package external

import (
	"errors"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/types"
)

// ErrNotConstant is returned (wrapped) by Evaluator.Evaluate when an
// expression cannot be folded to a constant. The checker treats it as
// "non-constant", not as an error (spec.md §6 "Evaluator interface").
var ErrNotConstant = errors.New("not a constant expression")

// Evaluator folds a constant expression to a value.
type Evaluator interface {
	Evaluate(expr ast.Expr) (types.ConstVal, error)
}

// MatchResult is what the pattern matcher returns for one pattern against
// one scrutinee (spec.md §6 "Pattern matcher interface").
type MatchResult struct {
	OK    bool
	Decls []*types.Declaration
	Guard ast.Expr
}

// Matcher type-checks/compiles a single pattern against a scrutinee
// expression, returning the bindings and optional guard the pattern
// analyzer splices into the branch body (spec.md §4.7).
type Matcher interface {
	Match(scrutinee ast.Expr, pat ast.Pattern) (MatchResult, error)
}

// StubEvaluator never folds anything; every expression is treated as
// non-constant. Used by tests that only exercise name resolution/type
// checking, not constant folding.
type StubEvaluator struct{}

func (StubEvaluator) Evaluate(ast.Expr) (types.ConstVal, error) {
	return types.ConstVal{}, ErrNotConstant
}

// StubMatcher accepts every pattern with no bindings and no guard. Used
// by tests that only exercise the checker's dispatch into the pattern
// analyzer, not real exhaustiveness compilation.
type StubMatcher struct{}

func (StubMatcher) Match(ast.Expr, ast.Pattern) (MatchResult, error) {
	return MatchResult{OK: true}, nil
}
