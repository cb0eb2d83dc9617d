package generic

import (
	"testing"

	"github.com/sunholo/ailang/internal/types"
)

func i32() types.Type { return &types.TInteger{Bits: 32, Signed: true} }

func TestMangleFormatsTypeArguments(t *testing.T) {
	got := Mangle("identity", []Arg{{Type: i32()}})
	want := "identity(i32)"
	if got != want {
		t.Fatalf("Mangle() = %q, want %q", got, want)
	}
}

func TestMangleFormatsMultipleArguments(t *testing.T) {
	got := Mangle("Pair", []Arg{{Type: i32()}, {Type: &types.TString{}}})
	want := "Pair(i32, string)"
	if got != want {
		t.Fatalf("Mangle() = %q, want %q", got, want)
	}
}

func TestMangleIsStableForTheSameSubstitution(t *testing.T) {
	a := Mangle("Box", []Arg{{Type: i32()}})
	b := Mangle("Box", []Arg{{Type: i32()}})
	if a != b {
		t.Fatalf("two calls with an equivalent substitution must mangle to the same cache key, got %q and %q", a, b)
	}
}

func TestMangleDistinguishesConstArguments(t *testing.T) {
	c := types.ConstVal{Kind: types.CatInteger, Int: 4}
	got := Mangle("FixedArray", []Arg{{Type: i32()}, {Const: &c}})
	if got == "FixedArray(i32)" {
		t.Fatalf("const argument must appear in the mangled name, got %q", got)
	}
}
