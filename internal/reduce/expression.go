package reduce

import (
	"fmt"

	"ramify/internal/ast"
	"ramify/internal/combinator"
	"ramify/internal/lambda"
)

// churchTrue and churchFalse are λa.λb.a / λa.λb.b (spec §4.3 Booleans).
// K already *is* λa.λb.a, and K applied to I already *is* λa.λb.b, so the
// comparison builtins below fold straight to these combinator values
// instead of the Rust prototype's `K` / `S.applied_to(K)` shortcut
// (DESIGN.md, Open Question resolution 2).
var (
	churchTrue  combinator.Term = combinator.KLeaf
	churchFalse combinator.Term = &combinator.Sym{Kind: combinator.K, Arg1: combinator.ILeaf}
)

func churchBool(b bool) combinator.Term {
	if b {
		return churchTrue
	}
	return churchFalse
}

func numPair(args []combinator.Term) (float64, float64, bool) {
	a, ok1 := args[0].(*combinator.Num)
	b, ok2 := args[1].(*combinator.Num)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return a.Value, b.Value, true
}

func arithBuiltin(name string, fold func(a, b combinator.Term) (combinator.Term, bool)) lambda.Term {
	return lambda.Leaf{Combinator: combinator.NewBuiltin(name, 2, func(args []combinator.Term) (combinator.Term, bool) {
		return fold(args[0], args[1])
	})}
}

func compareBuiltin(name string, cmp func(a, b float64) bool) lambda.Term {
	return arithBuiltin(name, func(a, b combinator.Term) (combinator.Term, bool) {
		m, n, ok := numPair([]combinator.Term{a, b})
		if !ok {
			return churchFalse, true
		}
		return churchBool(cmp(m, n)), true
	})
}

var (
	addBuiltin = arithBuiltin("add", func(a, b combinator.Term) (combinator.Term, bool) {
		if an, ok := a.(*combinator.Num); ok {
			if bn, ok := b.(*combinator.Num); ok {
				return &combinator.Num{Value: an.Value + bn.Value}, true
			}
		}
		if as, ok := a.(*combinator.Str); ok {
			if bs, ok := b.(*combinator.Str); ok {
				return &combinator.Str{Value: as.Value + bs.Value}, true
			}
		}
		return combinator.Nil{}, true
	})
	subBuiltin = arithBuiltin("sub", func(a, b combinator.Term) (combinator.Term, bool) {
		m, n, ok := numPair([]combinator.Term{a, b})
		if !ok {
			return combinator.Nil{}, true
		}
		return &combinator.Num{Value: m - n}, true
	})
	mulBuiltin = arithBuiltin("mul", func(a, b combinator.Term) (combinator.Term, bool) {
		m, n, ok := numPair([]combinator.Term{a, b})
		if !ok {
			return combinator.Nil{}, true
		}
		return &combinator.Num{Value: m * n}, true
	})
	divBuiltin = arithBuiltin("div", func(a, b combinator.Term) (combinator.Term, bool) {
		m, n, ok := numPair([]combinator.Term{a, b})
		if !ok {
			return combinator.Nil{}, true
		}
		return &combinator.Num{Value: m / n}, true
	})
	ltBuiltin = compareBuiltin("lt", func(a, b float64) bool { return a < b })
	leBuiltin = compareBuiltin("le", func(a, b float64) bool { return a <= b })
	gtBuiltin = compareBuiltin("gt", func(a, b float64) bool { return a > b })
	geBuiltin = compareBuiltin("ge", func(a, b float64) bool { return a >= b })
	eqBuiltin = lambda.Leaf{Combinator: combinator.NewBuiltin("eq", 2, func(args []combinator.Term) (combinator.Term, bool) {
		return churchBool(combinator.Equal(args[0], args[1])), true
	})}
	neqBuiltin = lambda.Leaf{Combinator: combinator.NewBuiltin("neq", 2, func(args []combinator.Term) (combinator.Term, bool) {
		return churchBool(!combinator.Equal(args[0], args[1])), true
	})}
	negBuiltin = lambda.Leaf{Combinator: combinator.NewBuiltin("neg", 1, func(args []combinator.Term) (combinator.Term, bool) {
		n, ok := args[0].(*combinator.Num)
		if !ok {
			return args[0], true
		}
		return &combinator.Num{Value: -n.Value}, true
	})}
)

func (r *Reducer) binary(n *ast.Binary) (lambda.Term, error) {
	left, err := r.expr(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := r.expr(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case ast.Add:
		return lambda.ApplyAll(addBuiltin, left, right), nil
	case ast.Sub:
		return lambda.ApplyAll(subBuiltin, left, right), nil
	case ast.Mul:
		return lambda.ApplyAll(mulBuiltin, left, right), nil
	case ast.Div:
		return lambda.ApplyAll(divBuiltin, left, right), nil
	case ast.Eq:
		return lambda.ApplyAll(eqBuiltin, left, right), nil
	case ast.Neq:
		return lambda.ApplyAll(neqBuiltin, left, right), nil
	case ast.Lt:
		return lambda.ApplyAll(ltBuiltin, left, right), nil
	case ast.Le:
		return lambda.ApplyAll(leBuiltin, left, right), nil
	case ast.Gt:
		return lambda.ApplyAll(gtBuiltin, left, right), nil
	case ast.Ge:
		return lambda.ApplyAll(geBuiltin, left, right), nil
	case ast.And:
		// and x y ⇒ x y x (spec §4.3 Booleans)
		return lambda.ApplyAll(left, right, left), nil
	case ast.Or:
		// or x y ⇒ x x y (spec §4.3 Booleans)
		return lambda.ApplyAll(left, left, right), nil
	default:
		return nil, fmt.Errorf("reduce: unhandled binary operator %v", n.Op)
	}
}

func (r *Reducer) unary(n *ast.Unary) (lambda.Term, error) {
	x, err := r.expr(n.X)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case ast.Negate:
		return lambda.Apply(negBuiltin, x), nil
	case ast.Not:
		// not x ⇒ x false true (spec §4.3 Booleans)
		return lambda.ApplyAll(x, falseTerm(), trueTerm()), nil
	default:
		return nil, fmt.Errorf("reduce: unhandled unary operator %v", n.Op)
	}
}

func trueTerm() lambda.Term  { return lambda.Lambda("a", lambda.Lambda("b", lambda.Var("a"))) }
func falseTerm() lambda.Term { return lambda.Lambda("a", lambda.Lambda("b", lambda.Var("b"))) }
