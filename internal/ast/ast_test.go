package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSortConstructorsByNameThenArity(t *testing.T) {
	cs := []*Constructor{
		{Name: "Zeta", Members: []string{"x"}},
		{Name: "Alpha", Members: []string{"y", "z"}},
		{Name: "Alpha", Members: []string{"y"}},
	}
	SortConstructors(cs)
	want := []string{"Alpha/1", "Alpha/2", "Zeta/1"}
	for i, w := range want {
		if cs[i].SortKey() != w {
			t.Fatalf("position %d: got %q, want %q", i, cs[i].SortKey(), w)
		}
	}
}

func TestDataHas(t *testing.T) {
	d := &Data{Name: "R", Constructors: []*Constructor{
		{Name: "Ok", Members: []string{"x"}},
		{Name: "Err", Members: []string{"e"}},
	}}
	if !d.Has("Ok", 1) {
		t.Fatal("expected Has(Ok, 1) to be true")
	}
	if d.Has("Ok", 2) {
		t.Fatal("expected Has(Ok, 2) to be false — wrong arity")
	}
	if d.Has("Missing", 1) {
		t.Fatal("expected Has(Missing, 1) to be false — undeclared constructor")
	}
}

func TestFunctionLambdaChain(t *testing.T) {
	f := &Function{Name: "add", Params: []string{"a", "b"}, Body: &Identifier{Name: "a"}}
	want := &Lambda{Param: "a", Body: &Lambda{Param: "b", Body: &Identifier{Name: "a"}}}
	if diff := cmp.Diff(want, f.LambdaChain()); diff != "" {
		t.Fatalf("lambda chain mismatch (-want +got):\n%s", diff)
	}
}

func TestFunctionLambdaChainNoParams(t *testing.T) {
	f := &Function{Name: "main", Params: nil, Body: &Identifier{Name: "x"}}
	if _, ok := f.LambdaChain().(*Lambda); ok {
		t.Fatal("expected a parameterless function's chain to be its bare body, not a Lambda")
	}
}

func TestHasBindingRespectsShadowing(t *testing.T) {
	e := &Lambda{Param: "x", Body: &Identifier{Name: "x"}}
	if HasBinding(e, "x") {
		t.Fatal("expected x to be bound, not free, inside λx.x")
	}
	free := &Lambda{Param: "y", Body: &Identifier{Name: "x"}}
	if !HasBinding(free, "x") {
		t.Fatal("expected x to be free inside λy.x")
	}
}

func TestSubstituteRespectsShadowing(t *testing.T) {
	e := &Lambda{Param: "x", Body: &Identifier{Name: "x"}}
	want := &Lambda{Param: "x", Body: &Identifier{Name: "x"}}
	got := Substitute(e, "x", &NumberLit{Value: 99})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("expected the bound x to survive substitution unchanged (-want +got):\n%s", diff)
	}
}

func TestSubstituteReplacesFreeOccurrence(t *testing.T) {
	e := &Application{Fn: &Identifier{Name: "f"}, Arg: &Identifier{Name: "x"}}
	want := &Application{Fn: &Identifier{Name: "f"}, Arg: &NumberLit{Value: 7}}
	got := Substitute(e, "x", &NumberLit{Value: 7})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("expected free x replaced by 7 (-want +got):\n%s", diff)
	}
}

func TestContainsTailCall(t *testing.T) {
	if !ContainsTailCall(&Binary{Op: Mul, Left: &Identifier{Name: "n"}, Right: &TailCall{}}) {
		t.Fatal("expected a nested TailCall to be found")
	}
	if ContainsTailCall(&Binary{Op: Mul, Left: &Identifier{Name: "n"}, Right: &Identifier{Name: "m"}}) {
		t.Fatal("expected no TailCall in a plain binary expression")
	}
}

func TestNumberOfArguments(t *testing.T) {
	e := &Lambda{Param: "a", Body: &Lambda{Param: "b", Body: &Identifier{Name: "a"}}}
	if got := NumberOfArguments(e); got != 2 {
		t.Fatalf("NumberOfArguments = %d, want 2", got)
	}
	if got := NumberOfArguments(&Identifier{Name: "x"}); got != 0 {
		t.Fatalf("NumberOfArguments(non-lambda) = %d, want 0", got)
	}
}
