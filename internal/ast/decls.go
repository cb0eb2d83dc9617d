package ast

import (
	"fmt"
	"strings"
)

// GenericTypeParam is a `T` slot in a generic clause.
type GenericTypeParam struct {
	Name       string
	Constraint TypeExpr // concept/behaviour constraint, nil if unconstrained
	Pos        Pos
}

func (g *GenericTypeParam) String() string { return g.Name }
func (g *GenericTypeParam) Position() Pos  { return g.Pos }

// GenericConstParam is a `N: usize` value slot in a generic clause.
type GenericConstParam struct {
	Name string
	Type TypeExpr
	Pos  Pos
}

func (g *GenericConstParam) String() string { return g.Name }
func (g *GenericConstParam) Position() Pos  { return g.Pos }

// GenericClause is the `!(T, N: usize, …)` suffix on a generic
// declaration.
type GenericClause struct {
	TypeParams  []*GenericTypeParam
	ConstParams []*GenericConstParam
	Pos         Pos
}

func (g *GenericClause) String() string {
	names := make([]string, 0, len(g.TypeParams)+len(g.ConstParams))
	for _, t := range g.TypeParams {
		names = append(names, t.Name)
	}
	for _, c := range g.ConstParams {
		names = append(names, c.Name)
	}
	return fmt.Sprintf("!(%s)", strings.Join(names, ", "))
}
func (g *GenericClause) Position() Pos { return g.Pos }

// Parameter is a function/property/test parameter.
type Parameter struct {
	Name     string
	Type     TypeExpr
	Variadic bool
	Default  Expr // nil if no default
	Pos      Pos
}

func (p *Parameter) String() string { return fmt.Sprintf("%s: %s", p.Name, p.Type) }
func (p *Parameter) Position() Pos  { return p.Pos }

// Field is a named, typed member of a record or tuple-record.
type Field struct {
	Name   string
	Type   TypeExpr
	Hidden bool // leading `_` or explicit `hide`
	Pos    Pos
}

func (f *Field) String() string { return fmt.Sprintf("%s: %s", f.Name, f.Type) }
func (f *Field) Position() Pos  { return f.Pos }

// NamedTypeExpr references a declared type by (possibly workspace-
// qualified) name, optionally with generic arguments.
type NamedTypeExpr struct {
	Path Expr
	Args []TypeExpr
	Pos  Pos
}

func (n *NamedTypeExpr) String() string {
	if len(n.Args) == 0 {
		return n.Path.String()
	}
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s!(%s)", n.Path, strings.Join(args, ", "))
}
func (n *NamedTypeExpr) Position() Pos { return n.Pos }
func (n *NamedTypeExpr) typeExprNode() {}

// PointerTypeExpr is `*T`.
type PointerTypeExpr struct {
	Elem    TypeExpr
	Mutable bool
	Pos     Pos
}

func (p *PointerTypeExpr) String() string { return "*" + p.Elem.String() }
func (p *PointerTypeExpr) Position() Pos  { return p.Pos }
func (p *PointerTypeExpr) typeExprNode()  {}

// SliceTypeExpr is `[T]`.
type SliceTypeExpr struct {
	Elem TypeExpr
	Pos  Pos
}

func (s *SliceTypeExpr) String() string { return "[" + s.Elem.String() + "]" }
func (s *SliceTypeExpr) Position() Pos  { return s.Pos }
func (s *SliceTypeExpr) typeExprNode()  {}

// ArrayTypeExpr is `[T; N]`, where N is either a literal size or a
// reference to a generic-const parameter.
type ArrayTypeExpr struct {
	Elem TypeExpr
	Size Expr
	Pos  Pos
}

func (a *ArrayTypeExpr) String() string { return fmt.Sprintf("[%s; %s]", a.Elem, a.Size) }
func (a *ArrayTypeExpr) Position() Pos  { return a.Pos }
func (a *ArrayTypeExpr) typeExprNode()  {}

// TupleTypeExpr is `(T, U, …)`.
type TupleTypeExpr struct {
	Elements []TypeExpr
	Pos      Pos
}

func (t *TupleTypeExpr) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}
func (t *TupleTypeExpr) Position() Pos { return t.Pos }
func (t *TupleTypeExpr) typeExprNode() {}

// FuncTypeExpr is `(T, …) -> T`.
type FuncTypeExpr struct {
	Params []TypeExpr
	Return TypeExpr
	Pos    Pos
}

func (f *FuncTypeExpr) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), f.Return)
}
func (f *FuncTypeExpr) Position() Pos { return f.Pos }
func (f *FuncTypeExpr) typeExprNode() {}

// ConstTypeExpr occupies a generic-argument slot that is a value rather
// than a type, e.g. the `4` in `List!(i32, 4)` binding a generic-const
// parameter (spec.md §4.6/§4.8). Generic-argument lists are syntactically
// TypeExpr slots; this node lets a constant expression stand in one
// without widening the TypeExpr interface itself.
type ConstTypeExpr struct {
	Value Expr
	Pos   Pos
}

func (c *ConstTypeExpr) String() string { return c.Value.String() }
func (c *ConstTypeExpr) Position() Pos  { return c.Pos }
func (c *ConstTypeExpr) typeExprNode()  {}

// ResolvedTypeExpr wraps an already-resolved type (a types.Type, carried
// as an opaque value to avoid an import cycle between ast and types) so
// the substitution engine can splice a concrete type in place of a
// generic-parameter reference inside a cloned AST subtree (spec.md §4.9).
type ResolvedTypeExpr struct {
	Resolved interface{} // types.Type
	Pos      Pos
}

func (r *ResolvedTypeExpr) String() string  { return "<resolved>" }
func (r *ResolvedTypeExpr) Position() Pos   { return r.Pos }
func (r *ResolvedTypeExpr) typeExprNode()   {}

// ResolvedExpr wraps an already-evaluated constant expression (a
// *types.ConstVal, opaque for the same reason as ResolvedTypeExpr) so the
// substitution engine can splice a generic-const's concrete value in
// place of an identifier reference.
type ResolvedExpr struct {
	Resolved interface{} // *types.ConstVal
	Pos      Pos
}

func (r *ResolvedExpr) String() string { return "<resolved-const>" }
func (r *ResolvedExpr) Position() Pos  { return r.Pos }
func (r *ResolvedExpr) exprNode()      {}

// ImplicitCastExpr wraps an operand the checker silently widened or
// coerced (spec.md §4.4's numeric-widening and behaviour-pointer-
// coercion rules), recording the target type as an opaque value for the
// same reason ResolvedTypeExpr does. It is never produced by a parser —
// only spliced in by the checker in place of the original operand — so
// later passes (and diagnostics that print it) see To rather than
// Operand's own static type.
type ImplicitCastExpr struct {
	Operand Expr
	To      interface{} // types.Type
	Pos     Pos
}

func (c *ImplicitCastExpr) String() string { return c.Operand.String() }
func (c *ImplicitCastExpr) Position() Pos  { return c.Pos }
func (c *ImplicitCastExpr) exprNode()      {}

// RangeTypeExpr is `T..T` / `T..<T` used as a type (the range category).
type RangeTypeExpr struct {
	Elem TypeExpr
	Open bool
	Pos  Pos
}

func (r *RangeTypeExpr) String() string { return r.Elem.String() + "-range" }
func (r *RangeTypeExpr) Position() Pos  { return r.Pos }
func (r *RangeTypeExpr) typeExprNode()  {}

// ---- top-level / nested declarations ----

// TypeKind distinguishes the five forms a `type` declaration may take.
type TypeKind int

const (
	TypeRecord TypeKind = iota
	TypeVariant
	TypeRange
	TypeAlias
	TypeBehaviour
)

func (k TypeKind) String() string {
	switch k {
	case TypeRecord:
		return "record"
	case TypeVariant:
		return "variant"
	case TypeRange:
		return "range"
	case TypeAlias:
		return "alias"
	case TypeBehaviour:
		return "behaviour"
	default:
		return "type"
	}
}

// TypeDecl is a `type Name { … }` declaration (record/variant/range/alias)
// or a `behaviour Name { … }` declaration.
type TypeDecl struct {
	Name    string
	Kind    TypeKind
	Generic *GenericClause // nil if non-generic

	Fields       []*Field     // TypeRecord
	Members      []TypeExpr   // TypeVariant: member types
	MemberNames  []string     // TypeVariant: optional labels, parallel to Members
	RangeElem    TypeExpr     // TypeRange
	RangeOpen    bool         // TypeRange
	AliasTarget  TypeExpr     // TypeAlias
	Prototypes   []*FuncDecl  // TypeBehaviour: required/defaulted methods

	Pos Pos
}

func (t *TypeDecl) String() string { return fmt.Sprintf("type %s (%s)", t.Name, t.Kind) }
func (t *TypeDecl) Position() Pos  { return t.Pos }
func (t *TypeDecl) stmtNode()      {}

// ExtendDecl is `extend T [: B, …] { … }`.
type ExtendDecl struct {
	Target     TypeExpr
	Behaviours []TypeExpr
	Members    []Stmt // nested function/property/type/const declarations
	Pos        Pos
}

func (e *ExtendDecl) String() string { return fmt.Sprintf("extend %s", e.Target) }
func (e *ExtendDecl) Position() Pos  { return e.Pos }
func (e *ExtendDecl) stmtNode()      {}

// FuncDecl is a `function` declaration, also used (with IsProperty=true)
// to represent `property` declarations, which must take exactly one
// parameter.
type FuncDecl struct {
	Name       string
	Generic    *GenericClause
	Params     []*Parameter
	Return     TypeExpr // nil: unit
	Body       *BlockExpr
	IsProperty bool
	Defaulted  bool // a behaviour prototype with a default implementation
	Hidden     bool
	Extern     bool // body is provided by an extern collaborator
	Pos        Pos
}

func (f *FuncDecl) String() string {
	kw := "function"
	if f.IsProperty {
		kw = "property"
	}
	return fmt.Sprintf("%s %s(…)", kw, f.Name)
}
func (f *FuncDecl) Position() Pos { return f.Pos }
func (f *FuncDecl) stmtNode()     {}

// ConceptPrototype is one required signature inside a `concept` body.
type ConceptPrototype struct {
	Name       string
	Params     []TypeExpr
	Return     TypeExpr
	IsProperty bool
	Pos        Pos
}

func (c *ConceptPrototype) String() string { return "." + c.Name }
func (c *ConceptPrototype) Position() Pos  { return c.Pos }

// ConceptDecl is `concept Name!(T, …) { .proto(...) T, … }`.
type ConceptDecl struct {
	Name       string
	Generic    *GenericClause
	Prototypes []*ConceptPrototype
	Pos        Pos
}

func (c *ConceptDecl) String() string { return "concept " + c.Name }
func (c *ConceptDecl) Position() Pos  { return c.Pos }
func (c *ConceptDecl) stmtNode()      {}

// ValDecl/VarDecl: `val`/`var` bindings, including tupled/destructuring
// forms (spec.md §4.5).
type ValDecl struct {
	Mutable bool // true for `var`, false for `val`
	Names   []string // >1 element: tupled destructuring
	Type    TypeExpr // nil if inferred from Init
	Init    Expr
	Pos     Pos
}

func (v *ValDecl) String() string {
	kw := "val"
	if v.Mutable {
		kw = "var"
	}
	return fmt.Sprintf("%s %s", kw, strings.Join(v.Names, ", "))
}
func (v *ValDecl) Position() Pos { return v.Pos }
func (v *ValDecl) stmtNode()     {}
func (v *ValDecl) exprNode()     {}

// ConstDecl is a `const` declaration; Value is filled in by the external
// evaluator (spec.md §6) if the initializer is constant-foldable.
type ConstDecl struct {
	Name string
	Type TypeExpr
	Init Expr
	Pos  Pos
}

func (c *ConstDecl) String() string { return "const " + c.Name }
func (c *ConstDecl) Position() Pos  { return c.Pos }
func (c *ConstDecl) stmtNode()      {}

// TestDecl is a `test "name" { … }` block.
type TestDecl struct {
	Name string
	Body *BlockExpr
	Pos  Pos
}

func (t *TestDecl) String() string { return fmt.Sprintf("test %q", t.Name) }
func (t *TestDecl) Position() Pos  { return t.Pos }
func (t *TestDecl) stmtNode()      {}

// ExternDecl declares a function whose implementation is supplied outside
// the checked AST (foreign/builtin linkage).
type ExternDecl struct {
	Name   string
	Params []*Parameter
	Return TypeExpr
	Pos    Pos
}

func (e *ExternDecl) String() string { return "extern " + e.Name }
func (e *ExternDecl) Position() Pos  { return e.Pos }
func (e *ExternDecl) stmtNode()      {}

// ExprStmt wraps a bare expression used in statement position (e.g. the
// tail expression of a block, or a call for its side effect).
type ExprStmt struct {
	X Expr
}

func (e *ExprStmt) String() string { return e.X.String() }
func (e *ExprStmt) Position() Pos  { return e.X.Position() }
func (e *ExprStmt) stmtNode()      {}
