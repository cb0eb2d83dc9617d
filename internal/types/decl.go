package types

import (
	"fmt"

	"github.com/sunholo/ailang/internal/ast"
)

// Kind enumerates every declaration variant in spec.md §3 ("Declaration").
// Declarations are a flat struct with a kind tag rather than an interface
// hierarchy, per DESIGN NOTES §9 ("Deep inheritance / mixins... Replaced
// by a flat declaration-kind tag... plus per-kind fields").
type Kind int

const (
	KindWorkspace Kind = iota
	KindSourceUnit
	KindUse
	KindTypeRecord
	KindTypeVariant
	KindTypeRange
	KindTypeAlias
	KindTypeBehaviour
	KindConcept
	KindExtend
	KindFunction
	KindProperty
	KindParameter
	KindField
	KindTupleField
	KindVar
	KindVarTupled
	KindConst
	KindConstTupled
	KindGenericClause
	KindGenericTypeParameter
	KindGenericConstParameter
	KindTest
	KindExtern
)

func (k Kind) String() string {
	names := [...]string{
		"workspace", "source-unit", "use", "type(record)", "type(variant)",
		"type(range)", "type(alias)", "type(behaviour)", "concept", "extend",
		"function", "property", "parameter", "field", "tuple-field", "var",
		"var-tupled", "const", "const-tupled", "generic-clause",
		"generic-type-parameter", "generic-const-parameter", "test", "extern",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return "unknown"
	}
	return names[k]
}

// ConstVal is a tagged union over primitive constant values, mirroring
// the evaluator interface's `constval` (spec.md §6).
type ConstVal struct {
	Kind   Category // CatInteger, CatFloat, CatBool, CatChar, CatString, ...
	Int    int64
	Float  float64
	Bool   bool
	Char   rune
	Str    string
}

// String renders the literal value, used by generic-argument mangling
// (spec.md §4.6: "constant arguments print their literal value").
func (v *ConstVal) String() string {
	switch v.Kind {
	case CatInteger:
		return fmt.Sprintf("%d", v.Int)
	case CatFloat, CatRational:
		return fmt.Sprintf("%g", v.Float)
	case CatBool:
		return fmt.Sprintf("%t", v.Bool)
	case CatChar:
		return fmt.Sprintf("%q", v.Char)
	case CatString, CatChars:
		return fmt.Sprintf("%q", v.Str)
	default:
		return "?"
	}
}

// Annotation is the per-declaration bookkeeping record spec.md §3
// describes: `{ type, value, scope, visited, resolved, usecount,
// referencing, substitution? }`.
type Annotation struct {
	Type          Type
	Value         *ConstVal // non-nil only for evaluable consts
	ValueEvalErr  bool      // true: evaluator threw generic-evaluation
	Scope         ast.Node  // enclosing AST node, stamped on first binding
	Visited       bool
	Resolved      bool
	Invalid       bool
	UseCount      int
	Referencing   *Declaration // set on identifier expressions
	Substitution  interface{}  // *generic.Substitution; interface{} avoids an import cycle
}

// Declaration is the single struct representing every bound name in the
// program: types, functions, properties, concepts, extends, variables,
// constants, parameters, fields, generic parameters, tests, and externs.
type Declaration struct {
	Kind Kind
	Name string
	Node ast.Node // the declaring AST node (FuncDecl, TypeDecl, Parameter, ...)

	Annotation Annotation

	// Generic holds the declaration's own generic clause, if any (types,
	// functions, concepts). A generic declaration is never type-checked
	// directly (spec.md §3 invariant): only its instantiations are.
	Generic *ast.GenericClause

	// Behaviours lists the behaviours this type/extend conforms to.
	Behaviours []*Declaration

	// Members holds nested declarations in source order: a record's
	// fields, a behaviour's or concept's prototypes, and the generic
	// parameter declarations of a generic type, concept or function.
	// Variant member types and extension bodies are not stored here.
	Members []*Declaration

	// Parent links an instantiation back to the generic template it was
	// cloned from, and a nested member back to its owning type/extend.
	Parent *Declaration

	// Hidden mirrors a `hide` modifier or a leading-`_` field name
	// (spec.md §4.3 "Visibility").
	Hidden bool

	// Workspace names the workspace that owns this declaration ("" for
	// builtins), used by the `hide` visibility check.
	Workspace string
}

// IsGeneric reports whether decl introduces its own type/const parameters.
func (d *Declaration) IsGeneric() bool {
	return d.Generic != nil && (len(d.Generic.TypeParams) > 0 || len(d.Generic.ConstParams) > 0)
}

// QualifiedName returns "workspace.Name", or just Name for builtins.
func (d *Declaration) QualifiedName() string {
	if d.Workspace == "" {
		return d.Name
	}
	return d.Workspace + "." + d.Name
}
