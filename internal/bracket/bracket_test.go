package bracket

import (
	"testing"

	"ramify/internal/combinator"
	"ramify/internal/lambda"
)

func mustConvert(t *testing.T, term lambda.Term) combinator.Term {
	t.Helper()
	c, err := Convert(term)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	return c
}

func mustApply(t *testing.T, term combinator.Term, args ...combinator.Term) combinator.Term {
	t.Helper()
	for _, a := range args {
		var err error
		term, err = combinator.ApplyTo(term, a)
		if err != nil {
			t.Fatalf("ApplyTo: %v", err)
		}
	}
	return term
}

func TestIdentityAbstraction(t *testing.T) {
	// λx. x  ⇒  I
	c := mustConvert(t, lambda.Lambda("x", lambda.Var("x")))
	five := &combinator.Num{Value: 5}
	got := mustApply(t, c, five)
	if got != combinator.Term(five) {
		t.Fatalf("(λx.x) 5 = %v, want 5", got)
	}
}

func TestConstAbstraction(t *testing.T) {
	// λx. λy. x applied to a, b should yield a — the standard K encoding,
	// via whatever S/B/C/K shape bracket abstraction happens to produce.
	c := mustConvert(t, lambda.Lambda("x", lambda.Lambda("y", lambda.Var("x"))))
	a, b := &combinator.Num{Value: 1}, &combinator.Num{Value: 2}
	got := mustApply(t, c, a, b)
	if got != combinator.Term(a) {
		t.Fatalf("(λx.λy.x) a b = %v, want a", got)
	}
}

func TestApplicationBothSidesFree(t *testing.T) {
	// λf. λx. f x x — S-shaped: both sides of ((f x) x) mention x.
	c := mustConvert(t, lambda.Lambda("f", lambda.Lambda("x",
		lambda.Apply(lambda.Apply(lambda.Var("f"), lambda.Var("x")), lambda.Var("x")))))

	// f = add-like builtin: a pair applied to (a,a) = 2a.
	add := combinator.NewBuiltin("add", 2, func(args []combinator.Term) (combinator.Term, bool) {
		a, ok1 := args[0].(*combinator.Num)
		b, ok2 := args[1].(*combinator.Num)
		if !ok1 || !ok2 {
			return nil, false
		}
		return &combinator.Num{Value: a.Value + b.Value}, true
	})
	got := mustApply(t, c, add, &combinator.Num{Value: 21})
	n, ok := got.(*combinator.Num)
	if !ok || n.Value != 42 {
		t.Fatalf("(λf.λx. f x x) add 21 = %v, want 42", got)
	}
}

func TestFreeVariableIsError(t *testing.T) {
	if _, err := Convert(lambda.Var("undefined")); err == nil {
		t.Fatal("expected an error converting a term with a free variable")
	}
}

func TestLeafPassesThroughUnchanged(t *testing.T) {
	str := &combinator.Str{Value: "hi"}
	c := mustConvert(t, lambda.Leaf{Combinator: str})
	if c != combinator.Term(str) {
		t.Fatalf("converting a bare Leaf should return its combinator unchanged, got %v", c)
	}
}
