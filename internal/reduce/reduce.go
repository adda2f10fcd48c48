// Package reduce lowers a rewritten AST into a lambda-calculus term (spec
// §4.3): Church/Scott encodings for booleans and data types, opaque
// builtin combinators for arithmetic/comparison, and foreign leaves for
// `print`/`println`/`Y`. Mirrors the Rust prototype's reduce/*.rs split,
// across reduce.go, expression.go (operators and booleans) and
// constructor.go (constructors, data selectors, case analysis).
package reduce

import (
	"fmt"

	"ramify/internal/ast"
	"ramify/internal/bracket"
	"ramify/internal/combinator"
	"ramify/internal/lambda"
)

// Warning is a non-fatal diagnostic collected during reduction — an
// arity mismatch between if/case branches (spec §4.3 Diagnostics). Unlike
// the Rust prototype, which only prints these, the driver decides what to
// do with them (SPEC_FULL.md, Supplemented Features #3).
type Warning struct{ Message string }

// Reducer lowers a single compilation unit's `main` function to a
// lambda.Term, accumulating any arity-mismatch warnings along the way.
type Reducer struct {
	Warnings []Warning
}

// New returns a ready-to-use Reducer.
func New() *Reducer { return &Reducer{} }

// Unit finds the declared `main` function and reduces its body. A
// program with no `main` is a compile error (spec §9 Open Question:
// "what happens when main is missing" — resolved in favor of an error
// rather than the Rust prototype's silent `(bad.bad) bad` stand-in).
func (r *Reducer) Unit(unit *ast.AST) (lambda.Term, error) {
	var main *ast.Function
	for _, f := range unit.Functions {
		if f.Name == "main" {
			main = f
			break
		}
	}
	if main == nil {
		return nil, fmt.Errorf("reduce: no function named %q declared", "main")
	}
	// Once the rewrite passes have run, main's declared parameter is the
	// outermost Lambda of Body and Params is empty; that binder is peeled
	// off so the result is main's body itself either way.
	body := main.Body
	if len(main.Params) == 0 {
		if l, ok := body.(*ast.Lambda); ok {
			body = l.Body
		}
	}
	return r.expr(body)
}

func (r *Reducer) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, Warning{Message: fmt.Sprintf(format, args...)})
}

// expr reduces one AST expression node to a lambda.Term.
func (r *Reducer) expr(e ast.Expression) (lambda.Term, error) {
	switch n := e.(type) {
	case *ast.Identifier:
		return r.identifier(n)
	case *ast.NumberLit:
		return lambda.Leaf{Combinator: &combinator.Num{Value: n.Value}}, nil
	case *ast.StringLit:
		return lambda.Leaf{Combinator: &combinator.Str{Value: n.Value}}, nil
	case *ast.ListLit:
		return r.listLit(n)
	case *ast.RecordLit:
		return r.recordLit(n)
	case *ast.Lambda:
		body, err := r.expr(n.Body)
		if err != nil {
			return nil, err
		}
		return lambda.Lambda(n.Param, body), nil
	case *ast.Application:
		fn, err := r.expr(n.Fn)
		if err != nil {
			return nil, err
		}
		arg, err := r.expr(n.Arg)
		if err != nil {
			return nil, err
		}
		return lambda.Apply(fn, arg), nil
	case *ast.TailCall:
		return r.tailCall(n)
	case *ast.IfThenElse:
		return r.ifThenElse(n)
	case *ast.CaseOf:
		return r.caseOf(n)
	case *ast.Construct:
		return r.construct(n)
	case *ast.Deconstruct:
		return r.deconstruct(n)
	case *ast.Unary:
		return r.unary(n)
	case *ast.Binary:
		return r.binary(n)
	default:
		return nil, fmt.Errorf("reduce: unhandled expression %T", e)
	}
}

func (r *Reducer) identifier(n *ast.Identifier) (lambda.Term, error) {
	switch n.Name {
	case "print":
		return lambda.Leaf{Combinator: combinator.NewForeign("print")}, nil
	case "println":
		return lambda.Leaf{Combinator: combinator.NewForeign("println")}, nil
	case "Y":
		return lambda.Leaf{Combinator: combinator.NewForeign("Y")}, nil
	default:
		return lambda.Var(n.Name), nil
	}
}

func (r *Reducer) tailCall(n *ast.TailCall) (lambda.Term, error) {
	result := lambda.Term(lambda.Var(ast.RecursionBinder))
	for _, a := range n.Args {
		t, err := r.expr(a)
		if err != nil {
			return nil, err
		}
		result = lambda.Apply(result, t)
	}
	return result, nil
}

func (r *Reducer) ifThenElse(n *ast.IfThenElse) (lambda.Term, error) {
	if ast.NumberOfArguments(n.Then) != ast.NumberOfArguments(n.Else) {
		r.warn("if/then/else branches have different arities: %q", n.String())
	}
	cond, err := r.expr(n.Cond)
	if err != nil {
		return nil, err
	}
	then, err := r.expr(n.Then)
	if err != nil {
		return nil, err
	}
	els, err := r.expr(n.Else)
	if err != nil {
		return nil, err
	}
	return lambda.ApplyAll(cond, then, els), nil
}

// listLit and recordLit require every item to itself reduce to a
// variable-free value — the same restriction the Rust prototype carries
// by calling `.to_combinator()` directly on each item's reduction.
func (r *Reducer) listLit(n *ast.ListLit) (lambda.Term, error) {
	items := make([]combinator.Term, len(n.Items))
	for i, it := range n.Items {
		t, err := r.expr(it)
		if err != nil {
			return nil, err
		}
		c, err := bracket.Convert(t)
		if err != nil {
			return nil, fmt.Errorf("reduce: list element %d: %w", i, err)
		}
		items[i] = c
	}
	return lambda.Leaf{Combinator: &combinator.List{Items: items}}, nil
}

func (r *Reducer) recordLit(n *ast.RecordLit) (lambda.Term, error) {
	m := make(map[string]combinator.Term, len(n.Keys))
	for i, k := range n.Keys {
		t, err := r.expr(n.Values[i])
		if err != nil {
			return nil, err
		}
		c, err := bracket.Convert(t)
		if err != nil {
			return nil, fmt.Errorf("reduce: record field %q: %w", k, err)
		}
		m[k] = c
	}
	return lambda.Leaf{Combinator: combinator.NewRecord(m)}, nil
}
