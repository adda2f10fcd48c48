package reduce

import (
	"testing"

	"ramify/internal/ast"
	"ramify/internal/bracket"
	"ramify/internal/combinator"
	"ramify/internal/lambda"
)

func reduceExpr(t *testing.T, e ast.Expression) combinator.Term {
	t.Helper()
	r := New()
	term, err := r.expr(e)
	if err != nil {
		t.Fatalf("expr: %v", err)
	}
	c, err := bracket.Convert(term)
	if err != nil {
		t.Fatalf("bracket.Convert: %v", err)
	}
	return c
}

func TestIdentifierResolvesForeignNames(t *testing.T) {
	for _, name := range []string{"print", "println", "Y"} {
		r := New()
		term, err := r.expr(&ast.Identifier{Name: name})
		if err != nil {
			t.Fatalf("expr(%s): %v", name, err)
		}
		leaf, ok := term.(lambda.Leaf)
		if !ok {
			t.Fatalf("expected %s to reduce to a Leaf, got %T", name, term)
		}
		f, ok := leaf.Combinator.(*combinator.Foreign)
		if !ok || f.Name != name {
			t.Fatalf("expected a Foreign named %q, got %#v", name, leaf.Combinator)
		}
	}
}

func TestIdentifierOtherwiseReducesToVar(t *testing.T) {
	r := New()
	term, err := r.expr(&ast.Identifier{Name: "x"})
	if err != nil {
		t.Fatalf("expr: %v", err)
	}
	if v, ok := term.(lambda.Var); !ok || string(v) != "x" {
		t.Fatalf("expected lambda.Var(x), got %#v", term)
	}
}

func TestBinaryArithmeticFoldsToLiteral(t *testing.T) {
	e := &ast.Binary{Op: ast.Add, Left: &ast.NumberLit{Value: 2}, Right: &ast.NumberLit{Value: 3}}
	got := reduceExpr(t, e)
	n, ok := got.(*combinator.Num)
	if !ok || n.Value != 5 {
		t.Fatalf("2+3 = %v, want 5", got)
	}
}

func TestBinaryStringConcatenation(t *testing.T) {
	e := &ast.Binary{Op: ast.Add, Left: &ast.StringLit{Value: "foo"}, Right: &ast.StringLit{Value: "bar"}}
	got := reduceExpr(t, e)
	s, ok := got.(*combinator.Str)
	if !ok || s.Value != "foobar" {
		t.Fatalf(`"foo"+"bar" = %v, want "foobar"`, got)
	}
}

func TestComparisonFoldsToChurchBoolean(t *testing.T) {
	e := &ast.Binary{Op: ast.Gt, Left: &ast.NumberLit{Value: 5}, Right: &ast.NumberLit{Value: 3}}
	got := reduceExpr(t, e)
	if !combinator.Equal(got, combinator.KLeaf) {
		t.Fatalf("5>3 = %v, want Church-true (K)", got)
	}

	e2 := &ast.Binary{Op: ast.Gt, Left: &ast.NumberLit{Value: 1}, Right: &ast.NumberLit{Value: 3}}
	got2 := reduceExpr(t, e2)
	// combinator.Equal compares symbols by identity, so Church-false
	// (a K holding I) is checked field by field.
	if s, ok := got2.(*combinator.Sym); !ok || s.Kind != combinator.K || s.Arg1 != combinator.ILeaf || s.Arg2 != nil {
		t.Fatalf("1>3 = %v, want Church-false (K.apply(I))", got2)
	}
}

func TestMismatchedArithmeticOperandsYieldNil(t *testing.T) {
	e := &ast.Binary{Op: ast.Sub, Left: &ast.NumberLit{Value: 1}, Right: &ast.StringLit{Value: "x"}}
	got := reduceExpr(t, e)
	if _, ok := got.(combinator.Nil); !ok {
		t.Fatalf("expected Nil for mismatched sub operands, got %v", got)
	}
}

func TestUnaryNegate(t *testing.T) {
	got := reduceExpr(t, &ast.Unary{Op: ast.Negate, X: &ast.NumberLit{Value: 7}})
	n, ok := got.(*combinator.Num)
	if !ok || n.Value != -7 {
		t.Fatalf("-7 = %v, want -7", got)
	}
}

func TestUnaryNotFlipsChurchBoolean(t *testing.T) {
	got := reduceExpr(t, &ast.Unary{Op: ast.Not, X: &ast.Binary{Op: ast.Gt, Left: &ast.NumberLit{Value: 5}, Right: &ast.NumberLit{Value: 3}}})
	if s, ok := got.(*combinator.Sym); !ok || s.Kind != combinator.K || s.Arg1 != combinator.ILeaf || s.Arg2 != nil {
		t.Fatalf("not(true) = %v, want Church-false", got)
	}
}

func TestIfThenElseWarnsOnArityMismatch(t *testing.T) {
	r := New()
	e := &ast.IfThenElse{
		Cond: &ast.Identifier{Name: "c"},
		Then: &ast.Lambda{Param: "x", Body: &ast.Identifier{Name: "x"}},
		Else: &ast.NumberLit{Value: 1},
	}
	if _, err := r.expr(e); err != nil {
		t.Fatalf("expr: %v", err)
	}
	if len(r.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(r.Warnings), r.Warnings)
	}
}

func TestIfThenElseNoWarningWhenArityMatches(t *testing.T) {
	r := New()
	e := &ast.IfThenElse{
		Cond: &ast.Identifier{Name: "c"},
		Then: &ast.NumberLit{Value: 1},
		Else: &ast.NumberLit{Value: 2},
	}
	if _, err := r.expr(e); err != nil {
		t.Fatalf("expr: %v", err)
	}
	if len(r.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", r.Warnings)
	}
}

func TestUnitErrorsWhenMainIsMissing(t *testing.T) {
	unit := &ast.AST{Functions: []*ast.Function{{Name: "f", Params: []string{"x"}, Body: &ast.Identifier{Name: "x"}}}}
	if _, err := New().Unit(unit); err == nil {
		t.Fatal("expected an error compiling a unit with no main")
	}
}

func TestUnitReducesMainBody(t *testing.T) {
	unit := &ast.AST{Functions: []*ast.Function{{Name: "main", Params: []string{"_"}, Body: &ast.NumberLit{Value: 3}}}}
	term, err := New().Unit(unit)
	if err != nil {
		t.Fatalf("Unit: %v", err)
	}
	leaf, ok := term.(lambda.Leaf)
	if !ok {
		t.Fatalf("expected a Leaf, got %T", term)
	}
	if n, ok := leaf.Combinator.(*combinator.Num); !ok || n.Value != 3 {
		t.Fatalf("expected Num(3), got %#v", leaf.Combinator)
	}
}

func TestListLitRequiresVariableFreeItems(t *testing.T) {
	r := New()
	e := &ast.ListLit{Items: []ast.Expression{&ast.NumberLit{Value: 1}, &ast.Identifier{Name: "free"}}}
	if _, err := r.expr(e); err == nil {
		t.Fatal("expected an error: a list item referencing a free variable can't be bracket-converted in isolation")
	}
}

func TestRecordLitSortsKeysAtReduction(t *testing.T) {
	r := New()
	e := &ast.RecordLit{Keys: []string{"b", "a"}, Values: []ast.Expression{&ast.NumberLit{Value: 2}, &ast.NumberLit{Value: 1}}}
	term, err := r.expr(e)
	if err != nil {
		t.Fatalf("expr: %v", err)
	}
	leaf := term.(lambda.Leaf)
	rec := leaf.Combinator.(*combinator.Record)
	if rec.Keys[0] != "a" || rec.Keys[1] != "b" {
		t.Fatalf("expected keys sorted [a b], got %v", rec.Keys)
	}
}
