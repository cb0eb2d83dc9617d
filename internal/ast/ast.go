// Package ast defines the abstract syntax tree consumed by the checker.
//
// The lexer, parser, constant evaluator and pattern-match compiler that
// produce and further process these nodes are external collaborators (see
// SPEC_FULL.md §6) and are not part of this package; ast only carries the
// shapes the checker walks.
package ast

import (
	"fmt"
	"strings"
)

// Node is the base interface for all AST nodes.
type Node interface {
	String() string
	Position() Pos
}

// Pos represents a position in source code.
type Pos struct {
	Line   int
	Column int
	File   string
	Offset int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span represents a half-open range in source code, used to underline
// diagnostics precisely.
type Span struct {
	Start Pos
	End   Pos
}

// Invalid marks a node poisoned by an upstream parser error (spec.md §7,
// "syntax-poison"). The checker emits no diagnostic for it: as an
// expression it is typed unknown, as a statement it is skipped. The
// enclosing declaration is not marked invalid.
type Invalid struct {
	Pos_ Pos
}

func (i *Invalid) String() string { return "<invalid>" }
func (i *Invalid) Position() Pos  { return i.Pos_ }
func (i *Invalid) exprNode()      {}
func (i *Invalid) stmtNode()      {}
func (i *Invalid) patternNode()   {}
func (i *Invalid) typeExprNode()  {}

// Expr is any expression node. The language is expression-oriented: blocks,
// loops, when-expressions and assignments are all expressions.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any statement-level node (a declaration or an expression used in
// statement position inside a block).
type Stmt interface {
	Node
	stmtNode()
}

// TypeExpr is a syntactic type reference as written by the programmer,
// before the declaration checker resolves it to a ktype.Type.
type TypeExpr interface {
	Node
	typeExprNode()
}

// Pattern is any pattern node used in a when-arm or destructuring binding.
type Pattern interface {
	Node
	patternNode()
}

// SourceUnit is the root of one parsed file. It either declares a
// workspace or is anonymous (collected into an implicit workspace by pass
// 0, see SPEC_FULL.md §2).
type SourceUnit struct {
	Workspace *WorkspaceDecl // nil for an anonymous source unit
	Uses      []*UseDecl
	Decls     []Stmt
	Path      string
	Pos       Pos
}

func (s *SourceUnit) String() string {
	var b strings.Builder
	if s.Workspace != nil {
		b.WriteString(s.Workspace.String())
		b.WriteString("\n")
	}
	for _, u := range s.Uses {
		b.WriteString(u.String())
		b.WriteString("\n")
	}
	for _, d := range s.Decls {
		b.WriteString(d.String())
		b.WriteString("\n")
	}
	return b.String()
}
func (s *SourceUnit) Position() Pos { return s.Pos }

// WorkspaceDecl names the logical namespace a source unit belongs to.
type WorkspaceDecl struct {
	Name string // dotted path, e.g. "A.B.C"
	Pos  Pos
}

func (w *WorkspaceDecl) String() string { return "workspace " + w.Name }
func (w *WorkspaceDecl) Position() Pos  { return w.Pos }

// UseDecl imports another workspace's exported symbols.
type UseDecl struct {
	Workspace string
	Alias     string // "" when unaliased
	Pos       Pos
}

func (u *UseDecl) String() string {
	if u.Alias != "" {
		return fmt.Sprintf("use %s as %s", u.Workspace, u.Alias)
	}
	return "use " + u.Workspace
}
func (u *UseDecl) Position() Pos { return u.Pos }
func (u *UseDecl) stmtNode()     {}

// Identifier is a bare name reference.
type Identifier struct {
	Name string
	Pos  Pos
}

func (i *Identifier) String() string { return i.Name }
func (i *Identifier) Position() Pos  { return i.Pos }
func (i *Identifier) exprNode()      {}
func (i *Identifier) patternNode()   {}

// PathExpr is a left-associative member-access chain `A.B.…C` (spec.md
// §4.3): either workspace-qualified access or ordinary member access,
// disambiguated by the name resolver, not the parser.
type PathExpr struct {
	Base Expr
	Name string
	Pos  Pos
}

func (p *PathExpr) String() string { return fmt.Sprintf("%s.%s", p.Base, p.Name) }
func (p *PathExpr) Position() Pos  { return p.Pos }
func (p *PathExpr) exprNode()      {}

// Last returns the right-most name segment of a left-associative chain
// rooted at expr, unwrapping PathExpr/Identifier.
func Last(expr Expr) string {
	switch e := expr.(type) {
	case *Identifier:
		return e.Name
	case *PathExpr:
		return e.Name
	default:
		return ""
	}
}
