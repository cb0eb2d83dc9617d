package types

// This file implements spec.md §4.4's arithmetic-widening and implicit-
// conversion rules. Widen computes the result category/width of a binary
// numeric operation; ImplicitConversion decides whether a value of one
// type may silently stand in for another (assignment, argument passing,
// behaviour-pointer coercion), mirroring the teacher's small free
// functions over type tags (internal/types/typechecker_operators.go's
// mostSpecificNumericClass) rather than a method on Type.

func isStringy(c Category) bool {
	return c == CatChar || c == CatChars || c == CatString
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func ratBitsFor(t Type) int {
	switch v := t.(type) {
	case *TRational:
		return v.Bits
	case *TInteger:
		return v.Bits * 2
	default:
		return 0
	}
}

func floatBitsFor(t Type) int {
	switch v := t.(type) {
	case *TFloat:
		return v.Bits
	case *TRational:
		return v.Bits / 2
	case *TInteger:
		return v.Bits
	default:
		return 0
	}
}

func complexBitsFor(t Type) int {
	switch v := t.(type) {
	case *TComplex:
		return v.Bits
	case *TFloat:
		return v.Bits * 2
	case *TRational:
		return v.Bits
	case *TInteger:
		return v.Bits * 2
	default:
		return 0
	}
}

// Widen computes the result type of combining l and r under spec.md
// §4.4's arithmetic table: integer+integer keeps the wider, signed-wins
// width; integer+rational and rational+float promote through the
// category order; anything paired with complex promotes to complex;
// char/chars/string combine to string; a pointer combined with an
// integer stays a pointer (offset arithmetic). ok is false when the
// pair cannot be widened at all.
func Widen(l, r Type) (Type, bool) {
	lc, rc := l.Category(), r.Category()

	if lc == CatPointer && rc == CatInteger {
		return l, true
	}
	if rc == CatPointer && lc == CatInteger {
		return r, true
	}
	if isStringy(lc) && isStringy(rc) {
		return String, true
	}
	if !IsNumeric(l) || !IsNumeric(r) {
		return nil, false
	}

	cat := lc
	if rc > cat {
		cat = rc
	}
	switch cat {
	case CatInteger:
		li, lok := l.(*TInteger)
		ri, rok := r.(*TInteger)
		if !lok || !rok {
			return nil, false
		}
		return &TInteger{Bits: maxInt(li.Bits, ri.Bits), Signed: li.Signed || ri.Signed}, true
	case CatRational:
		return &TRational{Bits: maxInt(ratBitsFor(l), ratBitsFor(r))}, true
	case CatFloat:
		return &TFloat{Bits: maxInt(floatBitsFor(l), floatBitsFor(r))}, true
	case CatComplex:
		return &TComplex{Bits: maxInt(complexBitsFor(l), complexBitsFor(r))}, true
	default:
		return nil, false
	}
}

// DeclOf extracts the declaration backing a named type, or nil for
// anonymous/non-declared types. Used to answer "does this type
// implement that behaviour" without a parallel accessor per variant.
func DeclOf(t Type) *Declaration {
	switch v := t.(type) {
	case *TRecord:
		return v.Decl
	case *TVariant:
		return v.Decl
	case *TRange:
		return v.Decl
	case *TBehaviour:
		return v.Decl
	default:
		return nil
	}
}

// Implements reports whether t's declaration lists behaviour among the
// behaviours an `extend` block attached to it (spec.md §4.3/§4.4).
func Implements(t Type, behaviour *Declaration) bool {
	d := DeclOf(t)
	if d == nil || behaviour == nil {
		return false
	}
	for _, b := range d.Behaviours {
		if b == behaviour {
			return true
		}
	}
	return false
}

// ImplicitConversion decides whether a value typed from may stand in
// for a value expected to be typed to without an explicit `as`
// (spec.md §4.4: numeric widening, *T->*B upcast when T implements B,
// *B->*T downcast when T implements B, and T<->*T address-of/deref).
// It returns the resulting type (always equal to to on success), ok,
// and — for the behaviour downcast case only — whether the conversion
// is a run-time-checked downcast that callers should warn about.
func ImplicitConversion(from, to Type) (Type, bool, bool) {
	if from == nil || to == nil {
		return nil, false, false
	}
	if from.Equal(to) {
		return to, true, false
	}

	if IsNumeric(from) && IsNumeric(to) {
		if w, ok := Widen(from, to); ok && w.Equal(to) {
			return to, true, false
		}
		return nil, false, false
	}

	fp, fIsPtr := from.(*TPointer)
	tp, tIsPtr := to.(*TPointer)
	if fIsPtr && tIsPtr {
		if tb, ok := tp.Elem.(*TBehaviour); ok && Implements(fp.Elem, tb.Decl) {
			return to, true, false
		}
		if fb, ok := fp.Elem.(*TBehaviour); ok && Implements(tp.Elem, fb.Decl) {
			return to, true, true
		}
		return nil, false, false
	}

	if tIsPtr && tp.Elem.Equal(from) {
		return to, true, false
	}
	if fIsPtr && fp.Elem.Equal(to) {
		return to, true, false
	}

	return nil, false, false
}
