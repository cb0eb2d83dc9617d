package check

import (
	"testing"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/diag"
	"github.com/sunholo/ailang/internal/generic"
	"github.com/sunholo/ailang/internal/types"
	"github.com/sunholo/ailang/internal/workspace"
)

func namedType(name string) ast.TypeExpr {
	return &ast.NamedTypeExpr{Path: &ast.Identifier{Name: name}}
}

func singleWorkspaceCompilation(decls ...ast.Stmt) *workspace.Compilation {
	comp := workspace.NewCompilation()
	comp.AddSourceUnit("pkg", &ast.SourceUnit{
		Workspace: &ast.WorkspaceDecl{Name: "app"},
		Decls:     decls,
		Path:      "app/app.ail",
	})
	return comp
}

// TestCheckWidensMixedArithmeticOperands is a regression test for the
// maintainer finding that spec.md §4.4's arithmetic widening table was
// declared but never wired: `1 + 2.0` must widen i32 to float(32), not
// reject the mismatch.
func TestCheckWidensMixedArithmeticOperands(t *testing.T) {
	binary := &ast.BinaryExpr{Op: "+", Left: &ast.IntLit{Text: "1"}, Right: &ast.RealLit{Text: "2.0"}}
	fn := &ast.FuncDecl{
		Name: "start",
		Body: &ast.BlockExpr{Stmts: []ast.Stmt{&ast.ExprStmt{X: binary}}},
	}
	comp := singleWorkspaceCompilation(fn)
	sink := diag.NewCollector()
	c := New(comp, sink, nil, nil)
	if err := c.Check(); err != nil {
		t.Fatalf("unexpected abort: %v", err)
	}
	for _, r := range sink.Reports {
		t.Errorf("unexpected diagnostic %s: %s", r.Code, r.Message)
	}
	if _, ok := binary.Left.(*ast.ImplicitCastExpr); !ok {
		t.Fatalf("expected the integer operand to be wrapped in an implicit cast, got %T", binary.Left)
	}
}

// TestCheckRejectsArithmeticOnNonNumericOperands confirms widenArithmetic
// still rejects operand pairs that cannot be widened at all, requiring an
// explicit `as` (spec.md §4.4).
func TestCheckRejectsArithmeticOnNonNumericOperands(t *testing.T) {
	binary := &ast.BinaryExpr{Op: "+", Left: &ast.IntLit{Text: "1"}, Right: &ast.BoolLit{Value: true}}
	fn := &ast.FuncDecl{
		Name: "start",
		Body: &ast.BlockExpr{Stmts: []ast.Stmt{&ast.ExprStmt{X: binary}}},
	}
	comp := singleWorkspaceCompilation(fn)
	sink := diag.NewCollector()
	c := New(comp, sink, nil, nil)
	if err := c.Check(); err != nil {
		t.Fatalf("unexpected abort: %v", err)
	}
	var sawCHK001 bool
	for _, r := range sink.Reports {
		if r.Code == diag.CHK001 {
			sawCHK001 = true
		}
	}
	if !sawCHK001 {
		t.Fatalf("expected a CHK001 diagnostic for i32 + bool, got %+v", sink.Reports)
	}
}

// TestCheckCoercesValDeclInitializerToDeclaredType exercises coerceTo's
// splicing of an ast.ImplicitCastExpr for a val binding whose initializer
// is a narrower numeric type than its declared type.
func TestCheckCoercesValDeclInitializerToDeclaredType(t *testing.T) {
	valDecl := &ast.ValDecl{
		Names: []string{"n"},
		Type:  namedType("i64"),
		Init:  &ast.IntLit{Text: "1", Suffix: "i32"},
	}
	fn := &ast.FuncDecl{
		Name: "start",
		Body: &ast.BlockExpr{Stmts: []ast.Stmt{valDecl}},
	}
	comp := singleWorkspaceCompilation(fn)
	sink := diag.NewCollector()
	c := New(comp, sink, nil, nil)
	if err := c.Check(); err != nil {
		t.Fatalf("unexpected abort: %v", err)
	}
	for _, r := range sink.Reports {
		t.Errorf("unexpected diagnostic %s: %s", r.Code, r.Message)
	}
	if _, ok := valDecl.Init.(*ast.ImplicitCastExpr); !ok {
		t.Fatalf("expected the i32 initializer to be wrapped in an implicit cast to i64, got %T", valDecl.Init)
	}
}

// TestCheckRejectsValDeclInitializerThatCannotConvert confirms coerceTo
// still reports CHK001 when no implicit conversion exists (narrowing).
func TestCheckRejectsValDeclInitializerThatCannotConvert(t *testing.T) {
	valDecl := &ast.ValDecl{
		Names: []string{"n"},
		Type:  namedType("i8"),
		Init:  &ast.IntLit{Text: "1", Suffix: "i64"},
	}
	fn := &ast.FuncDecl{
		Name: "start",
		Body: &ast.BlockExpr{Stmts: []ast.Stmt{valDecl}},
	}
	comp := singleWorkspaceCompilation(fn)
	sink := diag.NewCollector()
	c := New(comp, sink, nil, nil)
	if err := c.Check(); err != nil {
		t.Fatalf("unexpected abort: %v", err)
	}
	var sawCHK001 bool
	for _, r := range sink.Reports {
		if r.Code == diag.CHK001 {
			sawCHK001 = true
		}
	}
	if !sawCHK001 {
		t.Fatalf("expected a CHK001 diagnostic narrowing i64 to i8, got %+v", sink.Reports)
	}
}

func pointType() *ast.TypeDecl {
	return &ast.TypeDecl{
		Name: "Point",
		Kind: ast.TypeRecord,
		Fields: []*ast.Field{
			{Name: "x", Type: namedType("i32")},
			{Name: "y", Type: namedType("i32")},
		},
	}
}

func showableBehaviour() *ast.TypeDecl {
	return &ast.TypeDecl{
		Name: "Showable",
		Kind: ast.TypeBehaviour,
		Prototypes: []*ast.FuncDecl{
			{Name: "describe", IsProperty: true, Return: namedType("string")},
		},
	}
}

func describeProperty() *ast.FuncDecl {
	return &ast.FuncDecl{
		Name:       "describe",
		IsProperty: true,
		Return:     namedType("string"),
		Body: &ast.BlockExpr{Stmts: []ast.Stmt{
			&ast.ExprStmt{X: &ast.StringLit{Value: "a point", HeapString: true}},
		}},
	}
}

// TestCheckAsUpcastsPointerToImplementedBehaviour exercises checkAs's new
// *T -> *B upcast branch: Point implements Showable via an extend block,
// so `p as *Showable` must succeed with no diagnostic.
func TestCheckAsUpcastsPointerToImplementedBehaviour(t *testing.T) {
	point := pointType()
	showable := showableBehaviour()
	extend := &ast.ExtendDecl{
		Target:     namedType("Point"),
		Behaviours: []ast.TypeExpr{namedType("Showable")},
		Members:    []ast.Stmt{describeProperty()},
	}

	asExpr := &ast.AsExpr{
		Operand: &ast.Identifier{Name: "p"},
		Target:  &ast.PointerTypeExpr{Elem: namedType("Showable")},
	}
	fn := &ast.FuncDecl{
		Name:   "start",
		Params: []*ast.Parameter{{Name: "p", Type: &ast.PointerTypeExpr{Elem: namedType("Point")}}},
		Body:   &ast.BlockExpr{Stmts: []ast.Stmt{&ast.ExprStmt{X: asExpr}}},
	}

	comp := singleWorkspaceCompilation(point, showable, extend, fn)
	sink := diag.NewCollector()
	c := New(comp, sink, nil, nil)
	if err := c.Check(); err != nil {
		t.Fatalf("unexpected abort: %v", err)
	}
	for _, r := range sink.Reports {
		t.Errorf("unexpected diagnostic upcasting *Point to *Showable: %s: %s", r.Code, r.Message)
	}
}

// TestCheckAsDowncastFromBehaviourWarns exercises checkAs's *B -> *T
// downcast branch: accepted statically but reported as a warning, since it
// traps at run time if the pointed-to value is not actually a Point.
func TestCheckAsDowncastFromBehaviourWarns(t *testing.T) {
	point := pointType()
	showable := showableBehaviour()
	extend := &ast.ExtendDecl{
		Target:     namedType("Point"),
		Behaviours: []ast.TypeExpr{namedType("Showable")},
		Members:    []ast.Stmt{describeProperty()},
	}

	asExpr := &ast.AsExpr{
		Operand: &ast.Identifier{Name: "s"},
		Target:  &ast.PointerTypeExpr{Elem: namedType("Point")},
	}
	fn := &ast.FuncDecl{
		Name:   "start",
		Params: []*ast.Parameter{{Name: "s", Type: &ast.PointerTypeExpr{Elem: namedType("Showable")}}},
		Body:   &ast.BlockExpr{Stmts: []ast.Stmt{&ast.ExprStmt{X: asExpr}}},
	}

	comp := singleWorkspaceCompilation(point, showable, extend, fn)
	sink := diag.NewCollector()
	c := New(comp, sink, nil, nil)
	if err := c.Check(); err != nil {
		t.Fatalf("unexpected abort: %v", err)
	}
	if len(sink.Reports) != 1 || sink.Reports[0].Code != diag.CHK010 || sink.Reports[0].Severity != diag.SeverityWarning {
		t.Fatalf("expected exactly one CHK010 warning for the downcast, got %+v", sink.Reports)
	}
}

// TestCheckAsRejectsUnrelatedPointerConversion confirms a pointer
// conversion between two types with no behaviour relationship is still
// rejected as an invalid `as`.
func TestCheckAsRejectsUnrelatedPointerConversion(t *testing.T) {
	point := pointType()
	other := &ast.TypeDecl{
		Name: "Vector",
		Kind: ast.TypeRecord,
		Fields: []*ast.Field{
			{Name: "dx", Type: namedType("i32")},
		},
	}
	asExpr := &ast.AsExpr{
		Operand: &ast.Identifier{Name: "p"},
		Target:  &ast.PointerTypeExpr{Elem: namedType("Vector")},
	}
	fn := &ast.FuncDecl{
		Name:   "start",
		Params: []*ast.Parameter{{Name: "p", Type: &ast.PointerTypeExpr{Elem: namedType("Point")}}},
		Body:   &ast.BlockExpr{Stmts: []ast.Stmt{&ast.ExprStmt{X: asExpr}}},
	}
	comp := singleWorkspaceCompilation(point, other, fn)
	sink := diag.NewCollector()
	c := New(comp, sink, nil, nil)
	if err := c.Check(); err != nil {
		t.Fatalf("unexpected abort: %v", err)
	}
	var sawCHK010 bool
	for _, r := range sink.Reports {
		if r.Code == diag.CHK010 && r.Severity == diag.SeverityError {
			sawCHK010 = true
		}
	}
	if !sawCHK010 {
		t.Fatalf("expected a CHK010 error for an unrelated pointer conversion, got %+v", sink.Reports)
	}
}

func addableConceptTypeDecl() *ast.ConceptDecl {
	return &ast.ConceptDecl{
		Name:    "Addable",
		Generic: &ast.GenericClause{TypeParams: []*ast.GenericTypeParam{{Name: "T"}}},
		Prototypes: []*ast.ConceptPrototype{
			{Name: "plus", Params: []ast.TypeExpr{namedType("T"), namedType("T")}, Return: namedType("T")},
		},
	}
}

func sumGenericFunc() *ast.FuncDecl {
	return &ast.FuncDecl{
		Name:    "sum",
		Generic: &ast.GenericClause{TypeParams: []*ast.GenericTypeParam{{Name: "T", Constraint: namedType("Addable")}}},
		Params:  []*ast.Parameter{{Name: "a", Type: namedType("T")}, {Name: "b", Type: namedType("T")}},
		Return:  namedType("T"),
		Body: &ast.BlockExpr{Stmts: []ast.Stmt{
			&ast.ExprStmt{X: &ast.Identifier{Name: "a"}},
		}},
	}
}

func plusFuncOverI32() *ast.FuncDecl {
	return &ast.FuncDecl{
		Name:   "plus",
		Params: []*ast.Parameter{{Name: "a", Type: namedType("i32")}, {Name: "b", Type: namedType("i32")}},
		Return: namedType("i32"),
		Body: &ast.BlockExpr{Stmts: []ast.Stmt{
			&ast.ExprStmt{X: &ast.Identifier{Name: "a"}},
		}},
	}
}

// TestCheckGenericConstraintAcceptsSatisfyingType exercises the concept-
// constraint enforcement this session wired into generic instantiation:
// `sum!(i32)` must succeed because a matching top-level `plus(i32, i32)
// i32` function exists.
func TestCheckGenericConstraintAcceptsSatisfyingType(t *testing.T) {
	concept := addableConceptTypeDecl()
	sum := sumGenericFunc()
	plus := plusFuncOverI32()
	call := &ast.CallExpr{
		Callee: &ast.Identifier{Name: "sum"},
		Args:   []ast.Expr{&ast.IntLit{Text: "1"}, &ast.IntLit{Text: "2"}},
	}
	start := &ast.FuncDecl{
		Name: "start",
		Body: &ast.BlockExpr{Stmts: []ast.Stmt{&ast.ExprStmt{X: call}}},
	}

	comp := singleWorkspaceCompilation(concept, sum, plus, start)
	sink := diag.NewCollector()
	c := New(comp, sink, nil, nil)
	if err := c.Check(); err != nil {
		t.Fatalf("unexpected abort: %v", err)
	}
	for _, r := range sink.Reports {
		t.Errorf("unexpected diagnostic calling sum(1, 2): %s: %s", r.Code, r.Message)
	}

	ws := comp.Workspaces["app"]
	mangled := generic.Mangle("Addable", []generic.Arg{{Type: types.I32}})
	if holds, cached := ws.LookupConcept(mangled); !cached || !holds {
		t.Fatalf("expected a concrete concept application (Addable over i32) to populate the workspace's concept cache as satisfied")
	}
}

// TestCheckGenericConstraintRejectsUnsatisfyingType is the direct
// regression test for the maintainer's finding that concept constraints on
// generic instantiation were entirely unenforced: instantiating sum!(T:
// Addable) at string, with no `plus(string, string) string` anywhere,
// must fail with GEN003.
func TestCheckGenericConstraintRejectsUnsatisfyingType(t *testing.T) {
	concept := addableConceptTypeDecl()
	sum := sumGenericFunc()
	call := &ast.CallExpr{
		Callee: &ast.Identifier{Name: "sum"},
		Args:   []ast.Expr{&ast.StringLit{Value: "a", HeapString: true}, &ast.StringLit{Value: "b", HeapString: true}},
	}
	start := &ast.FuncDecl{
		Name: "start",
		Body: &ast.BlockExpr{Stmts: []ast.Stmt{&ast.ExprStmt{X: call}}},
	}

	comp := singleWorkspaceCompilation(concept, sum, start)
	sink := diag.NewCollector()
	c := New(comp, sink, nil, nil)
	if err := c.Check(); err != nil {
		t.Fatalf("unexpected abort: %v", err)
	}
	var sawGEN003 bool
	for _, r := range sink.Reports {
		if r.Code == diag.GEN003 {
			sawGEN003 = true
		}
	}
	if !sawGEN003 {
		t.Fatalf("expected a GEN003 diagnostic instantiating sum!(string) with no matching plus, got %+v", sink.Reports)
	}
}

// TestCheckWhenGuardMustBeBool is the regression test for the maintainer's
// finding that pattern-guard expressions were never type-checked: a guard
// that evaluates to a non-bool must report CHK001 in the when-arm.
func TestCheckWhenGuardMustBeBool(t *testing.T) {
	guard := &ast.IntLit{Text: "1"}
	when := &ast.WhenExpr{
		Subject: &ast.Identifier{Name: "n"},
		Arms: []*ast.WhenArm{
			{
				Pattern: &ast.GuardedPattern{Inner: &ast.IdentPattern{Name: "m"}, Guard: guard},
				Body:    &ast.Identifier{Name: "m"},
			},
		},
	}
	fn := &ast.FuncDecl{
		Name:   "start",
		Params: []*ast.Parameter{{Name: "n", Type: namedType("i32")}},
		Return: namedType("i32"),
		Body:   &ast.BlockExpr{Stmts: []ast.Stmt{&ast.ExprStmt{X: when}}},
	}
	comp := singleWorkspaceCompilation(fn)
	sink := diag.NewCollector()
	c := New(comp, sink, nil, nil)
	if err := c.Check(); err != nil {
		t.Fatalf("unexpected abort: %v", err)
	}
	var sawCHK001 bool
	for _, r := range sink.Reports {
		if r.Code == diag.CHK001 {
			sawCHK001 = true
		}
	}
	if !sawCHK001 {
		t.Fatalf("expected a CHK001 diagnostic for a non-bool when-arm guard, got %+v", sink.Reports)
	}
}

// TestCheckWhenAcceptsBoolGuard confirms a well-typed guard raises no
// diagnostics and its pattern's binding is visible inside it.
func TestCheckWhenAcceptsBoolGuard(t *testing.T) {
	guard := &ast.BinaryExpr{Op: ">", Left: &ast.Identifier{Name: "m"}, Right: &ast.IntLit{Text: "0"}}
	when := &ast.WhenExpr{
		Subject: &ast.Identifier{Name: "n"},
		Arms: []*ast.WhenArm{
			{
				Pattern: &ast.GuardedPattern{Inner: &ast.IdentPattern{Name: "m"}, Guard: guard},
				Body:    &ast.Identifier{Name: "m"},
			},
		},
	}
	fn := &ast.FuncDecl{
		Name:   "start",
		Params: []*ast.Parameter{{Name: "n", Type: namedType("i32")}},
		Return: namedType("i32"),
		Body:   &ast.BlockExpr{Stmts: []ast.Stmt{&ast.ExprStmt{X: when}}},
	}
	comp := singleWorkspaceCompilation(fn)
	sink := diag.NewCollector()
	c := New(comp, sink, nil, nil)
	if err := c.Check(); err != nil {
		t.Fatalf("unexpected abort: %v", err)
	}
	for _, r := range sink.Reports {
		t.Errorf("unexpected diagnostic for a well-typed guard: %s: %s", r.Code, r.Message)
	}
}

// TestCheckerLitBoundariesResetAcrossInvocations is the regression test
// for the maintainer's finding that funcLitBoundaries was a package-level
// global in internal/resolve: two sequential Check() calls over
// independent compilations sharing no state must not leak a function-
// literal boundary from one into the other.
func TestCheckerLitBoundariesResetAcrossInvocations(t *testing.T) {
	makeComp := func() *workspace.Compilation {
		lit := &ast.FuncLit{
			Body: &ast.BlockExpr{Stmts: []ast.Stmt{&ast.ExprStmt{X: &ast.IntLit{Text: "1"}}}},
		}
		fn := &ast.FuncDecl{
			Name: "start",
			Body: &ast.BlockExpr{Stmts: []ast.Stmt{&ast.ExprStmt{X: lit}}},
		}
		return singleWorkspaceCompilation(fn)
	}

	first := New(makeComp(), diag.NewCollector(), nil, nil)
	if err := first.Check(); err != nil {
		t.Fatalf("unexpected abort on first Check(): %v", err)
	}
	if len(first.litBoundaries) == 0 {
		t.Fatalf("expected the first Check() to have recorded at least one function-literal boundary")
	}

	second := New(makeComp(), diag.NewCollector(), nil, nil)
	if second.litBoundaries != nil {
		t.Fatalf("a freshly constructed Checker must not inherit another Checker's boundaries")
	}
	if err := second.Check(); err != nil {
		t.Fatalf("unexpected abort on second Check(): %v", err)
	}
	if len(second.litBoundaries) != len(first.litBoundaries) {
		t.Fatalf("expected the second Check() to independently record its own boundary, got %d vs %d",
			len(second.litBoundaries), len(first.litBoundaries))
	}
}
