// Package types is the type registry: canonical types, category tags,
// structural compatibility, and substitution (spec.md §3, §4.1's "6%"
// component). Types are compared structurally, except behaviours and
// named records/variants/ranges, which compare by declaration identity
// after considering substitution maps (spec.md §3 "Type").
package types

import (
	"fmt"
	"strings"

	"github.com/sunholo/ailang/internal/ast"
)

// Type is the tagged-union interface every category implements. It
// mirrors the teacher's types.Type interface (String/Equals/Substitute),
// generalized from ailang's Hindley-Milner type variables to the spec's
// fixed set of category tags plus structural recursion.
type Type interface {
	String() string
	Equal(other Type) bool
	// Category returns the category tag for dispatch without a type switch
	// at every call site (DESIGN NOTES §9: "a single function dispatching
	// on the node tag").
	Category() Category
}

// Category enumerates spec.md §3's type categories.
type Category int

const (
	CatUnknown Category = iota
	CatBool
	CatInteger
	CatRational
	CatFloat
	CatComplex
	CatChar
	CatChars
	CatString
	CatBitfield
	CatPointer
	CatArray
	CatSlice
	CatTuple
	CatRecord
	CatVariant
	CatRange
	CatFunction
	CatBehaviour
	CatWorkspace
	CatGeneric
)

// Unknown is the poisoned sentinel type (spec.md §3 invariant: "unknown is
// used as a poisoned sentinel to suppress cascading errors").
var Unknown Type = &TUnknown{}

type TUnknown struct{}

func (t *TUnknown) String() string      { return "unknown" }
func (t *TUnknown) Equal(o Type) bool   { _, ok := o.(*TUnknown); return ok }
func (t *TUnknown) Category() Category  { return CatUnknown }

// TBool is the boolean type.
type TBool struct{}

func (t *TBool) String() string     { return "bool" }
func (t *TBool) Equal(o Type) bool  { _, ok := o.(*TBool); return ok }
func (t *TBool) Category() Category { return CatBool }

var Bool Type = &TBool{}

// TInteger is a sized, signed-or-unsigned integer (i8…i256, u8…usize).
type TInteger struct {
	Bits   int // 8,16,32,64,128,256; 0 means platform-sized (isize/usize)
	Signed bool
	Size   bool // true: this is "isize"/"usize" rather than a fixed width
}

func (t *TInteger) String() string {
	prefix := "u"
	if t.Signed {
		prefix = "i"
	}
	if t.Size {
		return prefix + "size"
	}
	return fmt.Sprintf("%s%d", prefix, t.Bits)
}

func (t *TInteger) Equal(o Type) bool {
	oi, ok := o.(*TInteger)
	return ok && oi.Bits == t.Bits && oi.Signed == t.Signed && oi.Size == t.Size
}
func (t *TInteger) Category() Category { return CatInteger }

// I32 is the default type of a suffix-less integer literal (spec.md §4.4,
// §8 boundary behavior).
var I32 Type = &TInteger{Bits: 32, Signed: true}

// TRational is a rational number type produced by integer division and
// arithmetic widening (spec.md §4.4).
type TRational struct{ Bits int }

func (t *TRational) String() string     { return fmt.Sprintf("rational(%d)", t.Bits) }
func (t *TRational) Equal(o Type) bool  { or, ok := o.(*TRational); return ok && or.Bits == t.Bits }
func (t *TRational) Category() Category { return CatRational }

// TFloat is a sized floating-point type (f32/f64/f128/f256).
type TFloat struct{ Bits int }

func (t *TFloat) String() string     { return fmt.Sprintf("float(%d)", t.Bits) }
func (t *TFloat) Equal(o Type) bool  { of, ok := o.(*TFloat); return ok && of.Bits == t.Bits }
func (t *TFloat) Category() Category { return CatFloat }

// F32 is the default type of a suffix-less real literal.
var F32 Type = &TFloat{Bits: 32}

// TComplex is a sized complex type.
type TComplex struct{ Bits int }

func (t *TComplex) String() string     { return fmt.Sprintf("complex(%d)", t.Bits) }
func (t *TComplex) Equal(o Type) bool  { oc, ok := o.(*TComplex); return ok && oc.Bits == t.Bits }
func (t *TComplex) Category() Category { return CatComplex }

// TChar is a single Unicode scalar value.
type TChar struct{}

func (t *TChar) String() string     { return "char" }
func (t *TChar) Equal(o Type) bool  { _, ok := o.(*TChar); return ok }
func (t *TChar) Category() Category { return CatChar }

var Char Type = &TChar{}

// TChars is an immutable byte-slice view (spec.md GLOSSARY).
type TChars struct{}

func (t *TChars) String() string     { return "chars" }
func (t *TChars) Equal(o Type) bool  { _, ok := o.(*TChars); return ok }
func (t *TChars) Category() Category { return CatChars }

var Chars Type = &TChars{}

// TString is an owned heap string.
type TString struct{}

func (t *TString) String() string     { return "string" }
func (t *TString) Equal(o Type) bool  { _, ok := o.(*TString); return ok }
func (t *TString) Category() Category { return CatString }

var String Type = &TString{}

// TBitfield is a fixed-width bitfield type.
type TBitfield struct{ Bits int }

func (t *TBitfield) String() string     { return fmt.Sprintf("bitfield(%d)", t.Bits) }
func (t *TBitfield) Equal(o Type) bool  { ob, ok := o.(*TBitfield); return ok && ob.Bits == t.Bits }
func (t *TBitfield) Category() Category { return CatBitfield }

// TPointer is `*T`, carrying the mutability bit spec.md §3 describes.
type TPointer struct {
	Elem    Type
	Mutable bool
}

func (t *TPointer) String() string {
	if t.Mutable {
		return "*mut " + t.Elem.String()
	}
	return "*" + t.Elem.String()
}
func (t *TPointer) Equal(o Type) bool {
	op, ok := o.(*TPointer)
	return ok && op.Mutable == t.Mutable && op.Elem.Equal(t.Elem)
}
func (t *TPointer) Category() Category { return CatPointer }

// TArray is `[T; N]`; Size is -1 when N is a parametric (unresolved)
// generic-const rather than a concrete size. SizeExpr records the
// original size expression in that case (typically an identifier
// referencing a generic-const parameter), so the type matcher (spec.md
// §4.8) can bind the governing declaration once a concrete argument
// array supplies N, and the substitution engine (§4.9) can resolve it.
type TArray struct {
	Elem     Type
	Size     int
	SizeExpr ast.Expr
}

func (t *TArray) String() string {
	if t.Size < 0 {
		return fmt.Sprintf("[%s; ?]", t.Elem)
	}
	return fmt.Sprintf("[%s; %d]", t.Elem, t.Size)
}
func (t *TArray) Equal(o Type) bool {
	oa, ok := o.(*TArray)
	return ok && oa.Size == t.Size && oa.Elem.Equal(t.Elem)
}
func (t *TArray) Category() Category { return CatArray }

// TSlice is `[T]`.
type TSlice struct{ Elem Type }

func (t *TSlice) String() string     { return "[" + t.Elem.String() + "]" }
func (t *TSlice) Equal(o Type) bool  { os, ok := o.(*TSlice); return ok && os.Elem.Equal(t.Elem) }
func (t *TSlice) Category() Category { return CatSlice }

// TTuple is `(T, U, …)`.
type TTuple struct{ Elements []Type }

func (t *TTuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t *TTuple) Equal(o Type) bool {
	ot, ok := o.(*TTuple)
	if !ok || len(ot.Elements) != len(t.Elements) {
		return false
	}
	for i := range t.Elements {
		if !t.Elements[i].Equal(ot.Elements[i]) {
			return false
		}
	}
	return true
}
func (t *TTuple) Category() Category { return CatTuple }

// Unit is the empty tuple `()`, the type of a statement used for effect
// alone (spec.md GLOSSARY "unit").
var Unit Type = &TTuple{}

// RecordField is one name→type entry of a record, in declaration order.
type RecordField struct {
	Name string
	Type Type
}

// TRecord is a named or anonymous record. Named records (Decl != nil)
// compare by declaration identity plus substitution-map equality, per
// spec.md §3; anonymous records (Decl == nil, e.g. tuple-record literals)
// compare structurally.
type TRecord struct {
	Name   string
	Decl   *Declaration
	Fields []RecordField
	Args   map[*Declaration]Type // generic substitution map, if parametric
}

func (t *TRecord) String() string {
	if t.Decl != nil {
		return nameWithArgs(t.Name, t.Args)
	}
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = f.Name + ": " + f.Type.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (t *TRecord) Equal(o Type) bool {
	ot, ok := o.(*TRecord)
	if !ok {
		return false
	}
	if t.Decl != nil || ot.Decl != nil {
		return t.Decl == ot.Decl && substEqual(t.Args, ot.Args)
	}
	if len(t.Fields) != len(ot.Fields) {
		return false
	}
	for i := range t.Fields {
		if t.Fields[i].Name != ot.Fields[i].Name || !t.Fields[i].Type.Equal(ot.Fields[i].Type) {
			return false
		}
	}
	return true
}
func (t *TRecord) Category() Category { return CatRecord }

// TVariant is a tagged union `variant(T*)`; compared by declaration
// identity like TRecord when named.
type TVariant struct {
	Name    string
	Decl    *Declaration
	Members []Type
	Args    map[*Declaration]Type
}

func (t *TVariant) String() string {
	if t.Decl != nil {
		return nameWithArgs(t.Name, t.Args)
	}
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

func (t *TVariant) Equal(o Type) bool {
	ot, ok := o.(*TVariant)
	if !ok {
		return false
	}
	if t.Decl != nil || ot.Decl != nil {
		return t.Decl == ot.Decl && substEqual(t.Args, ot.Args)
	}
	if len(t.Members) != len(ot.Members) {
		return false
	}
	for i := range t.Members {
		if !t.Members[i].Equal(ot.Members[i]) {
			return false
		}
	}
	return true
}
func (t *TVariant) Category() Category { return CatVariant }

// HasMember reports whether m is (structurally) one of the variant's
// members (used by `as`-cast and implicit T→variant checks).
func (t *TVariant) HasMember(m Type) bool {
	for _, mem := range t.Members {
		if mem.Equal(m) {
			return true
		}
	}
	return false
}

// TRange is `T..T` / `T..<T` (Open selects the latter).
type TRange struct {
	Name string
	Decl *Declaration
	Elem Type
	Open bool
	Args map[*Declaration]Type
}

func (t *TRange) String() string {
	if t.Decl != nil {
		return nameWithArgs(t.Name, t.Args)
	}
	op := ".."
	if t.Open {
		op = "..<"
	}
	return t.Elem.String() + op + t.Elem.String()
}
func (t *TRange) Equal(o Type) bool {
	ot, ok := o.(*TRange)
	if !ok {
		return false
	}
	if t.Decl != nil || ot.Decl != nil {
		return t.Decl == ot.Decl && substEqual(t.Args, ot.Args)
	}
	return t.Open == ot.Open && t.Elem.Equal(ot.Elem)
}
func (t *TRange) Category() Category { return CatRange }

// TFunction is `(T, …) -> T`.
type TFunction struct {
	Params   []Type
	Return   Type
	Variadic bool // last param accepts zero or more trailing arguments
}

func (t *TFunction) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), t.Return)
}
func (t *TFunction) Equal(o Type) bool {
	ot, ok := o.(*TFunction)
	if !ok || len(ot.Params) != len(t.Params) || t.Variadic != ot.Variadic {
		return false
	}
	for i := range t.Params {
		if !t.Params[i].Equal(ot.Params[i]) {
			return false
		}
	}
	return t.Return.Equal(ot.Return)
}
func (t *TFunction) Category() Category { return CatFunction }

// TBehaviour is a trait marker type; always compared by declaration
// identity (spec.md §3: "behaviours... compared by declaration identity").
type TBehaviour struct {
	Name string
	Decl *Declaration
}

func (t *TBehaviour) String() string     { return t.Name }
func (t *TBehaviour) Equal(o Type) bool  { ob, ok := o.(*TBehaviour); return ok && ob.Decl == t.Decl }
func (t *TBehaviour) Category() Category { return CatBehaviour }

// TWorkspace is the type of a workspace-qualified expression (spec.md
// §4.3 step 2: "yield a workspace-type value").
type TWorkspace struct {
	Name string
}

func (t *TWorkspace) String() string     { return "workspace " + t.Name }
func (t *TWorkspace) Equal(o Type) bool  { ow, ok := o.(*TWorkspace); return ok && ow.Name == t.Name }
func (t *TWorkspace) Category() Category { return CatWorkspace }

// TGeneric is an unresolved reference to a generic-type-parameter
// declaration; it only ever appears inside a generic declaration's own
// body (never type-checked directly, spec.md §3 invariant) or mid-
// substitution.
type TGeneric struct {
	Decl *Declaration
}

func (t *TGeneric) String() string { return t.Decl.Name }
func (t *TGeneric) Equal(o Type) bool {
	ot, ok := o.(*TGeneric)
	return ok && ot.Decl == t.Decl
}
func (t *TGeneric) Category() Category { return CatGeneric }

func nameWithArgs(name string, args map[*Declaration]Type) string {
	if len(args) == 0 {
		return name
	}
	// Deterministic ordering is the caller's responsibility (mangling uses
	// the generic clause's declared order, not map iteration order); this
	// String() is for diagnostics/debugging only.
	parts := make([]string, 0, len(args))
	for decl, t := range args {
		parts = append(parts, decl.Name+"="+t.String())
	}
	return name + "!(" + strings.Join(parts, ", ") + ")"
}

func substEqual(a, b map[*Declaration]Type) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		bv, ok := b[k]
		if !ok || !v.Equal(bv) {
			return false
		}
	}
	return true
}

// IsNumeric reports whether t is integer, rational, float, or complex.
func IsNumeric(t Type) bool {
	switch t.Category() {
	case CatInteger, CatRational, CatFloat, CatComplex:
		return true
	default:
		return false
	}
}

// IsUnknown reports whether t is the poisoned sentinel.
func IsUnknown(t Type) bool {
	return t == nil || t.Category() == CatUnknown
}
