package diag

// Error code taxonomy, grouped by the component that raises them
// (mirrors the teacher's PAR###/MOD###/LDR### grouping in
// internal/errors/codes.go, generalized to this checker's own
// components per SPEC_FULL.md §1.1).
const (
	// Import resolver (spec.md §4.2).
	IMP001 = "IMP001" // use target workspace missing
	IMP002 = "IMP002" // self-import (noose)
	IMP003 = "IMP003" // cyclic import
	IMP004 = "IMP004" // duplicate import (warning)
	IMP005 = "IMP005" // workspace declared in the wrong package (abort)

	// Name resolver (spec.md §4.3).
	RES001 = "RES001" // unresolved identifier
	RES002 = "RES002" // ambiguous workspace-qualified prefix
	RES003 = "RES003" // capture of local into function-literal scope
	RES004 = "RES004" // access to a hidden declaration from a foreign scope
	RES005 = "RES005" // cyclic-symbol during resolution

	// Expression / declaration checker (spec.md §4.4, §4.5).
	CHK001 = "CHK001" // type mismatch
	CHK002 = "CHK002" // arity mismatch
	CHK003 = "CHK003" // mutability violation
	CHK004 = "CHK004" // missing / extra aggregate field
	CHK005 = "CHK005" // non-exhaustive or malformed when-expression
	CHK006 = "CHK006" // break/continue/return outside their construct
	CHK007 = "CHK007" // recursive type without pointer indirection
	CHK008 = "CHK008" // duplicate entry point
	CHK009 = "CHK009" // behaviour conformance violation
	CHK010 = "CHK010" // invalid `as` conversion
	CHK011 = "CHK011" // `_` used as a referenced name

	// Generic instantiator (spec.md §4.6).
	GEN001 = "GEN001" // unbound generic parameter after matching
	GEN002 = "GEN002" // instantiation depth exceeded (abort)
	GEN003 = "GEN003" // concept constraint not satisfied
	GEN004 = "GEN004" // partial specialization in `extend G!(concrete)`

	// Pattern analyzer (spec.md §4.7).
	PAT001 = "PAT001" // pattern/scrutinee shape mismatch
	PAT002 = "PAT002" // ignore-pattern not in final position
	PAT003 = "PAT003" // or-pattern binding-set mismatch
	PAT004 = "PAT004" // identifier pattern does not reference a const

	// Concept engine (spec.md §4.5 "concept declarations").
	CON001 = "CON001" // prototype has no matching function/property
)
