// Package generic implements the substitution engine, type matcher
// (generic deduction), and generic instantiator of spec.md §4.6, §4.8,
// §4.9.
//
// Grounded on other_examples/…malphas-lang…checker.go's `inferTypeArgs`
// (unifying parameter/argument type pairs into a substitution map, one
// binding per type parameter) and other_examples/…mafm-poly…infer.go's
// unification-based inference, generalized from Algorithm-W style fresh
// type variables to spec.md's explicit generic-parameter declarations and
// const parameters. Mangled-name caching is grounded on the teacher's
// internal/types/instances.go (InstanceEnv keyed by "ClassName:Type").
package generic

import (
	"fmt"
	"strings"

	"github.com/sunholo/ailang/internal/types"
)

// Mangle builds the cache key spec.md §4.6 describes:
// "Name(arg1, arg2, …)" where type arguments print their canonical type
// string and constant arguments print their literal value.
func Mangle(name string, args []Arg) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a.Type != nil {
			parts[i] = a.Type.String()
		} else {
			parts[i] = a.Const.String()
		}
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(parts, ", "))
}

// Arg is one generic argument: either a concrete Type or a constant
// Value, matching a single generic-type-parameter or generic-const-
// parameter slot.
type Arg struct {
	Type  types.Type
	Const *types.ConstVal
}

func (a Arg) String() string {
	if a.Type != nil {
		return a.Type.String()
	}
	if a.Const != nil {
		return a.Const.String()
	}
	return "?"
}
