package check

import (
	"fmt"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/diag"
	"github.com/sunholo/ailang/internal/generic"
	"github.com/sunholo/ailang/internal/scope"
	"github.com/sunholo/ailang/internal/types"
)

// checkBlock type-checks a brace-delimited sequence of statements; the
// block's own type is that of a trailing bare-expression statement, or
// Unit otherwise (spec.md §4.4 "Blocks").
func (c *Checker) checkBlock(parent *scope.Environment, b *ast.BlockExpr) types.Type {
	c.Graph.Begin(b)
	defer c.Graph.End()
	env := c.Graph.Current()

	result := types.Unit
	for i, stmt := range b.Stmts {
		if i == len(b.Stmts)-1 {
			if es, ok := stmt.(*ast.ExprStmt); ok {
				result = c.checkExpr(env, es.X)
				continue
			}
		}
		c.checkStmt(env, stmt)
	}
	return result
}

// checkStmt type-checks one statement inside a block: a local val/var/
// const binding, a nested declaration, or a bare expression evaluated for
// effect (spec.md §4.5).
func (c *Checker) checkStmt(env *scope.Environment, stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ValDecl:
		var declared types.Type
		if s.Type != nil {
			declared = c.resolveTypeExpr(env, s.Type)
		}
		initType := types.Unit
		if s.Init != nil {
			initType = c.checkExpr(env, s.Init)
		}
		t := declared
		if t == nil {
			t = initType
		} else if s.Init != nil {
			c.coerceTo(&s.Init, initType, declared, s.Pos, fmt.Sprintf(" (%s %q)", kindWord(s.Mutable), s.Names[0]))
		}
		kind := types.KindConst
		if s.Mutable {
			kind = types.KindVar
		}
		if len(s.Names) > 1 {
			tup, _ := t.(*types.TTuple)
			for i, name := range s.Names {
				nt := types.Type(types.Unknown)
				if tup != nil && i < len(tup.Elements) {
					nt = tup.Elements[i]
				}
				decl := &types.Declaration{Kind: kindTupled(kind), Name: name, Node: s}
				decl.Annotation.Type = nt
				env.Define(scope.Values, name, decl)
			}
			return
		}
		decl := &types.Declaration{Kind: kind, Name: s.Names[0], Node: s}
		decl.Annotation.Type = t
		env.Define(scope.Values, s.Names[0], decl)

	case *ast.ConstDecl:
		var declared types.Type
		if s.Type != nil {
			declared = c.resolveTypeExpr(env, s.Type)
		}
		var initType types.Type
		if s.Init != nil {
			initType = c.checkExpr(env, s.Init)
		}
		t := declared
		if t == nil {
			t = initType
		} else if s.Init != nil {
			c.coerceTo(&s.Init, initType, declared, s.Pos, fmt.Sprintf(" (const %q)", s.Name))
		}
		decl := &types.Declaration{Kind: types.KindConst, Name: s.Name, Node: s}
		decl.Annotation.Type = t
		env.Define(scope.Values, s.Name, decl)

	case *ast.FuncDecl:
		c.registerStmt(env, c.curWS, s)
		decl, _ := env.Lookup(scope.Functions, s.Name, false)
		c.buildFuncSignatureNode(env, decl, s)
		c.checkFuncBody(decl, s)

	case *ast.TypeDecl:
		c.registerStmt(env, c.curWS, s)
		if td, ok := env.Lookup(scope.Types, s.Name, false); ok {
			c.buildTypeDecl(env, td, s)
		}

	case *ast.ExtendDecl, *ast.ConceptDecl:
		c.registerStmt(env, c.curWS, s)

	case *ast.ExprStmt:
		c.checkExpr(env, s.X)
	}
}

func kindWord(mutable bool) string {
	if mutable {
		return "var"
	}
	return "val"
}

func kindTupled(k types.Kind) types.Kind {
	if k == types.KindVar {
		return types.KindVarTupled
	}
	return types.KindConstTupled
}

// checkExpr type-checks e in env, returning its type (spec.md §4.4).
// Unknown is returned, never a Go nil, so callers can always call
// .Category()/.Equal without a nil check (spec.md §3 invariant:
// "unknown... poisoned sentinel").
func (c *Checker) checkExpr(env *scope.Environment, e ast.Expr) types.Type {
	if e == nil {
		return types.Unit
	}
	switch x := e.(type) {
	case *ast.IntLit:
		if t := builtinType(x.Suffix); t != nil {
			return t
		}
		return types.I32

	case *ast.RealLit:
		if t := builtinType(x.Suffix); t != nil {
			return t
		}
		return types.F32

	case *ast.CharLit:
		return types.Char

	case *ast.StringLit:
		if x.HeapString {
			return types.String
		}
		return types.Chars

	case *ast.BoolLit:
		return types.Bool

	case *ast.Identifier:
		return c.checkIdentifier(env, x.Name, x.Pos)

	case *ast.PathExpr:
		return c.checkPath(env, x)

	case *ast.BinaryExpr:
		return c.checkBinary(env, x)

	case *ast.UnaryExpr:
		return c.checkUnary(env, x)

	case *ast.PostfixExpr:
		return c.checkMutatingOperand(env, x.Operand, x.Pos)

	case *ast.AssignExpr:
		return c.checkAssign(env, x)

	case *ast.AsExpr:
		return c.checkAs(env, x)

	case *ast.CallExpr:
		return c.checkCall(env, x)

	case *ast.MemberExpr:
		return c.checkMember(env, x)

	case *ast.IndexExpr:
		return c.checkIndex(env, x)

	case *ast.WhenExpr:
		return c.checkWhen(env, x)

	case *ast.BlockExpr:
		return c.checkBlock(env, x)

	case *ast.LoopExpr:
		return c.checkLoop(env, x)

	case *ast.BreakExpr:
		if !env.Inside(scope.KindLoop) {
			c.report(diag.CHK006, "check", "break outside a loop", x.Pos)
		}
		if x.Value != nil {
			return c.checkExpr(env, x.Value)
		}
		return types.Unit

	case *ast.ContinueExpr:
		if !env.Inside(scope.KindLoop) {
			c.report(diag.CHK006, "check", "continue outside a loop", x.Pos)
		}
		return types.Unit

	case *ast.ReturnExpr:
		if !env.Inside(scope.KindFunction) {
			c.report(diag.CHK006, "check", "return outside a function", x.Pos)
		}
		rt := types.Unit
		if x.Value != nil {
			rt = c.checkExpr(env, x.Value)
		}
		if c.returnType != nil && !types.IsUnknown(rt) && !c.returnType.Equal(rt) {
			c.reportf(diag.CHK001, "check", x.Pos, "return type %s does not match declared %s", rt, c.returnType)
		}
		return types.Unit

	case *ast.FuncLit:
		return c.checkFuncLit(env, x)

	case *ast.AddrOfExpr:
		return &types.TPointer{Elem: c.checkExpr(env, x.Operand), Mutable: x.Mutable}

	case *ast.DerefExpr:
		t := c.checkExpr(env, x.Operand)
		if p, ok := t.(*types.TPointer); ok {
			return p.Elem
		}
		if !types.IsUnknown(t) {
			c.reportf(diag.CHK001, "check", x.Pos, "cannot dereference non-pointer %s", t)
		}
		return types.Unknown

	case *ast.ValDecl:
		c.checkStmt(env, x)
		return types.Unit

	case *ast.ImplicitCastExpr:
		if t, ok := x.To.(types.Type); ok {
			return t
		}
		return types.Unknown

	default:
		return types.Unknown
	}
}

func (c *Checker) checkIdentifier(env *scope.Environment, name string, pos ast.Pos) types.Type {
	if name == "_" {
		c.report(diag.CHK011, "check", "\"_\" cannot be used as a referenced name", pos)
		return types.Unknown
	}
	res, ok := c.resolver().ResolveIdent(env, name, pos)
	if !ok {
		return types.Unknown
	}
	if res.Workspace != "" {
		return &types.TWorkspace{Name: res.Workspace}
	}
	if res.Decl.Annotation.Type == nil {
		return types.Unknown
	}
	return res.Decl.Annotation.Type
}

func (c *Checker) checkPath(env *scope.Environment, p *ast.PathExpr) types.Type {
	segs, base := flattenPath(p)
	if base != nil {
		objType := c.checkExpr(env, base)
		return c.memberType(env, objType, p.Name, p.Pos)
	}
	res, n, ok := c.resolver().ResolvePath(env, segs, p.Pos)
	if !ok {
		return types.Unknown
	}
	if n < len(segs) {
		// Remaining segments are ordinary member access against whatever
		// the qualified prefix resolved to.
		t := types.Type(types.Unknown)
		if res.Decl != nil {
			t = res.Decl.Annotation.Type
		}
		for _, seg := range segs[n:] {
			t = c.memberType(env, t, seg, p.Pos)
		}
		return t
	}
	if res.Workspace != "" {
		return &types.TWorkspace{Name: res.Workspace}
	}
	if res.Decl == nil || res.Decl.Annotation.Type == nil {
		return types.Unknown
	}
	return res.Decl.Annotation.Type
}

// flattenPath collects the dotted name chain of p when every base is
// itself an Identifier/PathExpr (pure name path); base is non-nil when
// the chain's root is some other expression (e.g. a call result), in
// which case only p's own member access applies.
func flattenPath(p *ast.PathExpr) ([]string, ast.Expr) {
	var segs []string
	var cur ast.Expr = p
	for {
		switch e := cur.(type) {
		case *ast.PathExpr:
			segs = append([]string{e.Name}, segs...)
			cur = e.Base
		case *ast.Identifier:
			segs = append([]string{e.Name}, segs...)
			return segs, nil
		default:
			return nil, e
		}
	}
}

func (c *Checker) memberType(env *scope.Environment, objType types.Type, name string, pos ast.Pos) types.Type {
	if types.IsUnknown(objType) {
		return types.Unknown
	}
	if rec, ok := objType.(*types.TRecord); ok {
		for _, f := range rec.Fields {
			if f.Name == name {
				return f.Type
			}
		}
	}
	// A property call `obj.prop` (spec.md §4.4 "Member access"): search the
	// declaring type's extend blocks for a single-parameter property.
	if rec, ok := objType.(*types.TRecord); ok && rec.Decl != nil {
		for _, m := range rec.Decl.Members {
			if m.Name == name && m.Kind == types.KindProperty {
				if fn, ok := m.Annotation.Type.(*types.TFunction); ok {
					return fn.Return
				}
			}
		}
	}
	c.reportf(diag.CHK001, "check", pos, "no field or property %q on %s", name, objType)
	return types.Unknown
}

func (c *Checker) checkBinary(env *scope.Environment, b *ast.BinaryExpr) types.Type {
	lt := c.checkExpr(env, b.Left)
	rt := c.checkExpr(env, b.Right)
	if types.IsUnknown(lt) || types.IsUnknown(rt) {
		return types.Unknown
	}
	switch b.Op {
	case "&&", "||":
		if lt.Category() != types.CatBool || rt.Category() != types.CatBool {
			c.reportf(diag.CHK001, "check", b.Pos, "%s requires bool operands, got %s and %s", b.Op, lt, rt)
			return types.Unknown
		}
		return types.Bool

	case "==", "!=":
		if !lt.Equal(rt) {
			c.reportf(diag.CHK001, "check", b.Pos, "cannot compare %s and %s", lt, rt)
			return types.Unknown
		}
		return types.Bool

	case "<", "<=", ">", ">=":
		if !lt.Equal(rt) || !types.IsNumeric(lt) {
			c.reportf(diag.CHK001, "check", b.Pos, "%s requires matching numeric operands, got %s and %s", b.Op, lt, rt)
			return types.Unknown
		}
		return types.Bool

	case "+", "-", "*", "/", "%":
		result := c.widenArithmetic(lt, rt, b.Op, b.Pos)
		if !types.IsUnknown(result) {
			b.Left = insertImplicitCast(b.Left, lt, result)
			b.Right = insertImplicitCast(b.Right, rt, result)
		}
		return result

	case "&", "|", "^", "<<", ">>":
		if lt.Category() != types.CatInteger || !lt.Equal(rt) {
			c.reportf(diag.CHK001, "check", b.Pos, "%s requires matching integer operands, got %s and %s", b.Op, lt, rt)
			return types.Unknown
		}
		return lt

	default:
		return types.Unknown
	}
}

// widenArithmetic implements spec.md §4.4's numeric widening over
// types.Widen's category-rank promotion: identical operand types pass
// through unchanged; differing numeric categories/widths widen to their
// common result type (e.g. `1 + 2.0` widens to `float(32)`); `/` between
// two (possibly just-widened) integers further widens to rational,
// matching the teacher's own promote-then-specialize division rule.
// Non-numeric or pointer-vs-non-pointer combinations are rejected,
// requiring an explicit `as` (CHK001).
func (c *Checker) widenArithmetic(lt, rt types.Type, op string, pos ast.Pos) types.Type {
	result, ok := types.Widen(lt, rt)
	if !ok {
		c.reportf(diag.CHK001, "check", pos, "%s requires numeric operands, got %s and %s (use `as` to convert)", op, lt, rt)
		return types.Unknown
	}
	if op == "/" {
		if ri, isInt := result.(*types.TInteger); isInt {
			return &types.TRational{Bits: ri.Bits}
		}
	}
	return result
}

// coerceTo applies spec.md §4.4's implicit-conversion rules (numeric
// widening, pointer/behaviour coercion) when an already-checked
// expression of type from is placed into a slot expecting to — an
// assignment's right-hand side, an argument, a field value. Already-equal
// types are left untouched; a real (non-identity) conversion splices an
// ast.ImplicitCastExpr into *expr so later passes see to rather than
// from. Reports CHK001 and returns false when no implicit conversion
// exists.
func (c *Checker) coerceTo(expr *ast.Expr, from, to types.Type, pos ast.Pos, context string) bool {
	if from == nil || to == nil || types.IsUnknown(from) || types.IsUnknown(to) {
		return true
	}
	if from.Equal(to) {
		return true
	}
	if _, ok, _ := types.ImplicitConversion(from, to); !ok {
		c.reportf(diag.CHK001, "check", pos, "cannot assign %s to %s%s", from, to, context)
		return false
	}
	*expr = &ast.ImplicitCastExpr{Operand: *expr, To: to, Pos: pos}
	return true
}

// insertImplicitCast wraps operand in an ast.ImplicitCastExpr recording
// the widened/coerced target type when the checker silently converted it
// (spec.md §4.4), so later passes and diagnostics see the operand's
// post-conversion type rather than re-deriving it. A no-op when from
// already equals to.
func insertImplicitCast(operand ast.Expr, from, to types.Type) ast.Expr {
	if from == nil || to == nil || from.Equal(to) {
		return operand
	}
	return &ast.ImplicitCastExpr{Operand: operand, To: to, Pos: operand.Position()}
}

func (c *Checker) checkUnary(env *scope.Environment, u *ast.UnaryExpr) types.Type {
	t := c.checkExpr(env, u.Operand)
	if types.IsUnknown(t) {
		return types.Unknown
	}
	switch u.Op {
	case "-":
		if !types.IsNumeric(t) {
			c.reportf(diag.CHK001, "check", u.Pos, "unary - requires a numeric operand, got %s", t)
			return types.Unknown
		}
		return t
	case "!":
		if t.Category() != types.CatBool {
			c.reportf(diag.CHK001, "check", u.Pos, "! requires a bool operand, got %s", t)
			return types.Unknown
		}
		return types.Bool
	case "++", "--":
		return c.checkMutatingOperand(env, u.Operand, u.Pos)
	default:
		return t
	}
}

func (c *Checker) checkMutatingOperand(env *scope.Environment, operand ast.Expr, pos ast.Pos) types.Type {
	t := c.checkExpr(env, operand)
	c.checkLvalueMutable(env, operand, pos)
	return t
}

func (c *Checker) checkAssign(env *scope.Environment, a *ast.AssignExpr) types.Type {
	lt := c.checkExpr(env, a.Target)
	rt := c.checkExpr(env, a.Value)
	c.checkLvalueMutable(env, a.Target, a.Pos)
	c.coerceTo(&a.Value, rt, lt, a.Pos, "")
	return types.Unit
}

func (c *Checker) checkAs(env *scope.Environment, a *ast.AsExpr) types.Type {
	from := c.checkExpr(env, a.Operand)
	to := c.resolveTypeExpr(env, a.Target)
	if types.IsUnknown(from) || types.IsUnknown(to) {
		return to
	}
	if from.Equal(to) {
		return to
	}
	if types.IsNumeric(from) && types.IsNumeric(to) {
		return to
	}
	if v, ok := to.(*types.TVariant); ok && v.HasMember(from) {
		return to
	}
	if v, ok := from.(*types.TVariant); ok && v.HasMember(to) {
		return to
	}
	if fp, fIsPtr := from.(*types.TPointer); fIsPtr {
		if tp, tIsPtr := to.(*types.TPointer); tIsPtr {
			// *T as *B: upcast to a behaviour T implements always succeeds.
			if tb, ok := tp.Elem.(*types.TBehaviour); ok && types.Implements(fp.Elem, tb.Decl) {
				return to
			}
			// *B as *T: downcast from a behaviour pointer back to a concrete
			// implementer; accepted statically (spec.md §4.4), trapping at
			// run time if the pointed-to value is not actually a T.
			if fb, ok := fp.Elem.(*types.TBehaviour); ok && types.Implements(tp.Elem, fb.Decl) {
				c.Sink.Publish(diag.NewWarning(diag.CHK010, "check",
					fmt.Sprintf("downcast from %s to %s traps at run time if the value is not a %s", from, to, tp.Elem),
					ast.Span{Start: a.Pos, End: a.Pos}))
				return to
			}
		}
	}
	c.reportf(diag.CHK010, "check", a.Pos, "invalid conversion from %s to %s", from, to)
	return types.Unknown
}

func (c *Checker) checkIndex(env *scope.Environment, ix *ast.IndexExpr) types.Type {
	ot := c.checkExpr(env, ix.Object)
	it := c.checkExpr(env, ix.Index)
	if types.IsUnknown(ot) {
		return types.Unknown
	}
	if !types.IsUnknown(it) && it.Category() != types.CatInteger && it.Category() != types.CatRange {
		c.reportf(diag.CHK001, "check", ix.Pos, "index must be an integer or range, got %s", it)
	}
	switch o := ot.(type) {
	case *types.TSlice:
		return o.Elem
	case *types.TArray:
		return o.Elem
	case *types.TPointer:
		return o.Elem
	default:
		c.reportf(diag.CHK001, "check", ix.Pos, "cannot index %s", ot)
		return types.Unknown
	}
}

func (c *Checker) checkLoop(env *scope.Environment, l *ast.LoopExpr) types.Type {
	c.Graph.Begin(l)
	defer c.Graph.End()
	loopEnv := c.Graph.Current()
	loopEnv.MarkKind(scope.KindLoop)

	if l.Iterable != nil {
		it := c.checkExpr(loopEnv, l.Iterable)
		elemType := types.Type(types.Unknown)
		switch t := it.(type) {
		case *types.TSlice:
			elemType = t.Elem
		case *types.TArray:
			elemType = t.Elem
		case *types.TRange:
			elemType = t.Elem
		}
		if l.Binding != "" {
			decl := &types.Declaration{Kind: types.KindVar, Name: l.Binding, Node: l}
			decl.Annotation.Type = elemType
			loopEnv.Define(scope.Values, l.Binding, decl)
		}
	}
	if l.Cond != nil {
		ct := c.checkExpr(loopEnv, l.Cond)
		if !types.IsUnknown(ct) && ct.Category() != types.CatBool {
			c.reportf(diag.CHK001, "check", l.Pos, "loop condition must be bool, got %s", ct)
		}
	}
	c.checkBlock(loopEnv, l.Body)
	return types.Unit
}

func (c *Checker) checkFuncLit(env *scope.Environment, f *ast.FuncLit) types.Type {
	c.resolver().MarkFuncLitBoundary(f.Body)
	c.Graph.Begin(f.Body)
	defer c.Graph.End()
	litEnv := c.Graph.Current()
	litEnv.MarkKind(scope.KindFunction, scope.KindLoop)

	params := make([]types.Type, 0, len(f.Params))
	for _, p := range f.Params {
		pt := c.resolveTypeExpr(litEnv, p.Type)
		params = append(params, pt)
		decl := &types.Declaration{Kind: types.KindParameter, Name: p.Name, Node: p}
		decl.Annotation.Type = pt
		litEnv.Define(scope.Values, p.Name, decl)
	}
	savedReturn := c.returnType
	bodyType := c.checkBlock(litEnv, f.Body)
	c.returnType = savedReturn
	return &types.TFunction{Params: params, Return: bodyType}
}

func (c *Checker) checkMember(env *scope.Environment, m *ast.MemberExpr) types.Type {
	ot := c.checkExpr(env, m.Object)
	return c.memberType(env, ot, m.Name, m.Pos)
}

// checkLvalueMutable reports CHK003 when target does not name a mutable
// binding (spec.md §4.4 "Assignment"): `var`/`val`-tupled-var locals, and
// dereferences of a `*mut` pointer, are mutable; parameters, consts, and
// plain pointers are not.
func (c *Checker) checkLvalueMutable(env *scope.Environment, target ast.Expr, pos ast.Pos) {
	switch t := target.(type) {
	case *ast.Identifier:
		d, ok := env.Lookup(scope.Values, t.Name, true)
		if !ok {
			return
		}
		switch d.Kind {
		case types.KindConst, types.KindConstTupled, types.KindParameter, types.KindGenericConstParameter:
			c.reportf(diag.CHK003, "check", pos, "cannot assign to immutable %q", t.Name)
		}
	case *ast.MemberExpr:
		c.checkLvalueMutable(env, t.Object, pos)
	case *ast.PathExpr:
		if t.Base != nil {
			c.checkLvalueMutable(env, t.Base, pos)
		}
	case *ast.IndexExpr:
		c.checkLvalueMutable(env, t.Object, pos)
	case *ast.DerefExpr:
		if pt, ok := c.checkExpr(env, t.Operand).(*types.TPointer); ok && !pt.Mutable {
			c.reportf(diag.CHK003, "check", pos, "cannot assign through an immutable pointer")
		}
	}
}

// pathSegsOf collects a dotted name chain starting from a bare identifier
// or a pure name PathExpr; base is non-nil when the expression's root is
// something other than a name (a call result, an index, …).
func pathSegsOf(e ast.Expr) ([]string, ast.Expr) {
	switch x := e.(type) {
	case *ast.Identifier:
		return []string{x.Name}, nil
	case *ast.PathExpr:
		return flattenPath(x)
	default:
		return nil, e
	}
}

// checkCall dispatches a CallExpr to aggregate construction (callee names
// a declared type) or an ordinary/generic function call (spec.md §4.4
// "Calls").
func (c *Checker) checkCall(env *scope.Environment, call *ast.CallExpr) types.Type {
	if segs, base := pathSegsOf(call.Callee); base == nil && len(segs) > 0 {
		if d, ok := env.Lookup(scope.Types, segs[len(segs)-1], true); ok {
			return c.checkConstruction(env, d, call)
		}
		if d, ok := env.Lookup(scope.Functions, segs[len(segs)-1], true); ok {
			return c.checkFunctionCall(env, d, call)
		}
	}
	ct := c.checkExpr(env, call.Callee)
	fn, ok := ct.(*types.TFunction)
	if !ok {
		if !types.IsUnknown(ct) {
			c.reportf(diag.CHK001, "check", call.Pos, "cannot call non-function %s", ct)
		}
		for _, a := range call.Args {
			c.checkExpr(env, a)
		}
		return types.Unknown
	}
	return c.checkArgs(env, fn, call)
}

// checkConstruction type-checks `TypeName(field: value, …)` aggregate
// construction (spec.md §4.4). A generic type can only be constructed via
// an explicit `f!(T)(...)`-style generic argument list, since there is no
// argument shape to deduce type parameters from before the record's
// fields even exist.
func (c *Checker) checkConstruction(env *scope.Environment, d *types.Declaration, call *ast.CallExpr) types.Type {
	if d.IsGeneric() {
		if len(call.GenericArgs) == 0 {
			c.reportf(diag.CHK001, "check", call.Pos, "%s requires explicit type arguments to construct", d.Name)
			for _, a := range call.Args {
				c.checkExpr(env, a)
			}
			return types.Unknown
		}
		args := make([]generic.Arg, 0, len(call.GenericArgs))
		for _, ge := range call.GenericArgs {
			args = append(args, c.resolveGenericArg(env, ge))
		}
		inst := c.Gen.Instantiate(c.curWS, generic.Request{Decl: d, Args: args})
		if inst == nil {
			return types.Unknown
		}
		if inst.Annotation.Type == nil {
			if td, ok := inst.Node.(*ast.TypeDecl); ok {
				c.buildTypeDecl(env, inst, td)
			}
		}
		d = inst
	}

	rec, ok := d.Annotation.Type.(*types.TRecord)
	if !ok {
		for _, a := range call.Args {
			c.checkExpr(env, a)
		}
		return d.Annotation.Type
	}
	if len(call.Args) != len(rec.Fields) {
		c.reportf(diag.CHK004, "check", call.Pos, "%s expects %d fields, got %d", d.Name, len(rec.Fields), len(call.Args))
	}
	for i, a := range call.Args {
		at := c.checkExpr(env, a)
		name := ""
		if i < len(call.FieldNames) {
			name = call.FieldNames[i]
		}
		var ft types.Type
		if name != "" {
			ft = fieldTypeByName(rec, name)
			if ft == nil {
				c.reportf(diag.CHK004, "check", call.Pos, "no field %q on %s", name, d.Name)
				continue
			}
		} else if i < len(rec.Fields) {
			ft = rec.Fields[i].Type
		}
		if ft == nil || types.IsUnknown(at) || types.IsUnknown(ft) || ft.Equal(at) {
			continue
		}
		if _, ok, _ := types.ImplicitConversion(at, ft); ok {
			call.Args[i] = &ast.ImplicitCastExpr{Operand: call.Args[i], To: ft, Pos: call.Pos}
			continue
		}
		c.reportf(diag.CHK001, "check", call.Pos, "field %d: cannot assign %s to %s", i+1, at, ft)
	}
	return rec
}

func fieldTypeByName(rec *types.TRecord, name string) types.Type {
	for _, f := range rec.Fields {
		if f.Name == name {
			return f.Type
		}
	}
	return nil
}

// checkFunctionCall type-checks an ordinary or generic call once the
// callee has resolved to a Functions-namespace declaration (spec.md §4.4,
// §4.8).
func (c *Checker) checkFunctionCall(env *scope.Environment, decl *types.Declaration, call *ast.CallExpr) types.Type {
	decl.Annotation.UseCount++
	if decl.IsGeneric() {
		return c.checkGenericFunctionCall(env, decl, call)
	}
	fn, ok := decl.Annotation.Type.(*types.TFunction)
	if !ok {
		return types.Unknown
	}
	return c.checkArgs(env, fn, call)
}

// checkGenericFunctionCall deduces (or takes explicit) type arguments,
// instantiates the callee, checks its body on first use, then validates
// the call's own arguments against the instantiation's concrete signature
// (spec.md §4.6 "on-demand instantiation", §4.8 "deduction").
func (c *Checker) checkGenericFunctionCall(env *scope.Environment, decl *types.Declaration, call *ast.CallExpr) types.Type {
	argTypes := make([]types.Type, len(call.Args))
	for i, a := range call.Args {
		argTypes[i] = c.checkExpr(env, a)
	}

	var args []generic.Arg
	if len(call.GenericArgs) > 0 {
		for _, ge := range call.GenericArgs {
			args = append(args, c.resolveGenericArg(env, ge))
		}
	} else {
		typeParams := genericTypeParamDecls(decl)
		constParams := genericConstParamDecls(decl)
		matcher := generic.NewMatcher(typeParams, constParams)
		if tmplSig, ok := decl.Annotation.Type.(*types.TFunction); ok {
			for i, pt := range tmplSig.Params {
				if i < len(argTypes) {
					matcher.Unify(pt, argTypes[i])
				}
			}
		}
		if missing := matcher.Missing(typeParams); len(missing) > 0 {
			c.reportf(diag.GEN001, "generic", call.Pos, "cannot deduce type argument %s calling %s", missing[0].Name, decl.Name)
			return types.Unknown
		}
		if missing := matcher.MissingConst(constParams); len(missing) > 0 {
			c.reportf(diag.GEN001, "generic", call.Pos, "cannot deduce const argument %s calling %s", missing[0].Name, decl.Name)
			return types.Unknown
		}
		for _, tp := range typeParams {
			args = append(args, generic.Arg{Type: matcher.Bindings()[tp]})
		}
		for _, cp := range constParams {
			args = append(args, generic.Arg{Const: matcher.ConstBindings()[cp]})
		}
	}

	inst := c.Gen.Instantiate(c.curWS, generic.Request{Decl: decl, Args: args})
	if inst == nil {
		return types.Unknown
	}
	fd, ok := inst.Node.(*ast.FuncDecl)
	if !ok {
		return types.Unknown
	}
	if inst.Annotation.Type == nil {
		c.buildFuncSignatureNode(env, inst, fd)
	}
	c.checkFuncBody(inst, fd)

	fn, ok := inst.Annotation.Type.(*types.TFunction)
	if !ok {
		return types.Unknown
	}
	return c.checkArgsAgainstTypes(call, fn, argTypes)
}

func genericTypeParamDecls(decl *types.Declaration) []*types.Declaration {
	var out []*types.Declaration
	for _, m := range decl.Members {
		if m.Kind == types.KindGenericTypeParameter {
			out = append(out, m)
		}
	}
	return out
}

// genericConstParamDecls mirrors genericTypeParamDecls for a generic
// declaration's value (not type) parameters, e.g. the `N` in
// `function fill!(N: usize)(v: i32) [i32; N]` (spec.md §4.6/§4.8).
func genericConstParamDecls(decl *types.Declaration) []*types.Declaration {
	var out []*types.Declaration
	for _, m := range decl.Members {
		if m.Kind == types.KindGenericConstParameter {
			out = append(out, m)
		}
	}
	return out
}

// checkArgs type-checks a non-generic call's arguments against fn.
func (c *Checker) checkArgs(env *scope.Environment, fn *types.TFunction, call *ast.CallExpr) types.Type {
	argTypes := make([]types.Type, len(call.Args))
	for i, a := range call.Args {
		argTypes[i] = c.checkExpr(env, a)
	}
	return c.checkArgsAgainstTypes(call, fn, argTypes)
}

func (c *Checker) checkArgsAgainstTypes(call *ast.CallExpr, fn *types.TFunction, argTypes []types.Type) types.Type {
	minArgs := len(fn.Params)
	if fn.Variadic && minArgs > 0 {
		minArgs--
	}
	if len(argTypes) < minArgs || (!fn.Variadic && len(argTypes) != len(fn.Params)) {
		c.reportf(diag.CHK002, "check", call.Pos, "expected %d arguments, got %d", len(fn.Params), len(argTypes))
	}
	for i, at := range argTypes {
		var pt types.Type
		switch {
		case i < len(fn.Params):
			pt = fn.Params[i]
		case fn.Variadic && len(fn.Params) > 0:
			pt = fn.Params[len(fn.Params)-1]
		default:
			continue
		}
		if pt == nil || types.IsUnknown(at) || types.IsUnknown(pt) || pt.Equal(at) || i >= len(call.Args) {
			continue
		}
		if _, ok, _ := types.ImplicitConversion(at, pt); ok {
			call.Args[i] = &ast.ImplicitCastExpr{Operand: call.Args[i], To: pt, Pos: call.Pos}
			continue
		}
		c.reportf(diag.CHK001, "check", call.Pos, "argument %d: cannot pass %s as %s", i+1, at, pt)
	}
	return fn.Return
}

// checkWhen type-checks all three forms of a `when` expression (spec.md
// §4.4): value switch (Subject plus pattern arms), single-pattern-with-
// else, and type-cast (TypeTest arms). Every arm's type must agree with
// the first arm's.
func (c *Checker) checkWhen(env *scope.Environment, w *ast.WhenExpr) types.Type {
	subjType := types.Type(types.Unit)
	if w.Subject != nil {
		subjType = c.checkExpr(env, w.Subject)
	}

	var result types.Type
	for _, arm := range w.Arms {
		c.Graph.Begin(arm)
		armEnv := c.Graph.Current()

		var armType types.Type
		switch {
		case arm.TypeTest != nil:
			tt := c.resolveTypeExpr(armEnv, arm.TypeTest)
			if !types.IsUnknown(subjType) && !types.IsUnknown(tt) {
				compat := subjType.Equal(tt)
				if v, ok := subjType.(*types.TVariant); ok && v.HasMember(tt) {
					compat = true
				}
				if !compat {
					c.reportf(diag.CHK010, "check", arm.Pos, "type %s is not a case of %s", tt, subjType)
				}
			}
			armType = c.checkExpr(armEnv, arm.Body)

		case arm.Pattern != nil:
			bindings, guard, ok := c.Pat.Check(w.Subject, arm.Pattern, subjType)
			if ok {
				for _, b := range bindings {
					bd := &types.Declaration{Kind: types.KindConst, Name: b.Name, Node: arm}
					bd.Annotation.Type = b.Type
					armEnv.Define(scope.Values, b.Name, bd)
				}
			}
			if guard != nil {
				gt := c.checkExpr(armEnv, guard)
				if !types.IsUnknown(gt) && gt.Category() != types.CatBool {
					c.reportf(diag.CHK001, "check", arm.Pos, "when-arm guard must be bool, got %s", gt)
				}
			}
			armType = c.checkExpr(armEnv, arm.Body)

		default: // arm.Else, or a malformed arm with neither set
			armType = c.checkExpr(armEnv, arm.Body)
		}

		c.Graph.End()
		if result == nil {
			result = armType
		} else if !types.IsUnknown(result) && !types.IsUnknown(armType) && !result.Equal(armType) {
			c.reportf(diag.CHK005, "check", arm.Pos, "when-arm type %s does not match preceding arm type %s", armType, result)
		}
	}
	if result == nil {
		return types.Unit
	}
	return result
}
