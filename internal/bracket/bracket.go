// Package bracket implements bracket abstraction: turning a closed
// lambda-calculus term into a variable-free SKI/BCKW combinator term
// (spec §4.4). It mirrors the Rust prototype's lambda.rs reduce(), adding
// the B/C optimizations so the folded output doesn't just use S and K.
package bracket

import (
	"fmt"

	"ramify/internal/combinator"
	"ramify/internal/lambda"
)

func leaf(c combinator.Term) lambda.Term { return lambda.Leaf{Combinator: c} }

// Convert bracket-abstracts t, which must be closed (no variable left
// unbound by some enclosing Abs), into a combinator.Term. A variable that
// is still free once every Abs in t has been processed is a "free
// variable never defined" error (spec §4.4).
func Convert(t lambda.Term) (combinator.Term, error) {
	resolved, err := resolve(t)
	if err != nil {
		return nil, err
	}
	return toCombinator(resolved)
}

// resolve walks t bottom-up, replacing every Abs with its bracket
// abstraction so the tree that remains contains only Var, App, and Leaf
// nodes.
func resolve(t lambda.Term) (lambda.Term, error) {
	switch n := t.(type) {
	case *lambda.Abs:
		body, err := resolve(n.Body)
		if err != nil {
			return nil, err
		}
		return abstract(n.Param, body)
	case *lambda.App:
		fn, err := resolve(n.Fn)
		if err != nil {
			return nil, err
		}
		arg, err := resolve(n.Arg)
		if err != nil {
			return nil, err
		}
		return lambda.Apply(fn, arg), nil
	default:
		return t, nil
	}
}

// abstract implements T[param] body — the classical bracket-abstraction
// rule table, with the B and C optimizations alongside the base S/K/I
// rules (spec §4.4):
//
//	T[x] x            = I
//	T[x] E            = K E,           x not free in E
//	T[x] (E1 E2)      = S T[x]E1 T[x]E2, x free in both E1 and E2
//	T[x] (E1 E2)      = B E1 T[x]E2,     x free only in E2
//	T[x] (E1 E2)      = C T[x]E1 E2,     x free only in E1
//
// body must already have had every nested Abs resolved (resolve does this
// bottom-up before calling abstract on an outer binder).
func abstract(param string, body lambda.Term) (lambda.Term, error) {
	switch b := body.(type) {
	case lambda.Var:
		if string(b) == param {
			return leaf(combinator.ILeaf), nil
		}
		return lambda.Apply(leaf(combinator.KLeaf), b), nil
	case lambda.Leaf:
		return lambda.Apply(leaf(combinator.KLeaf), b), nil
	case *lambda.App:
		inFn := lambda.HasFreeVar(b.Fn, param)
		inArg := lambda.HasFreeVar(b.Arg, param)
		switch {
		case !inFn && !inArg:
			return lambda.Apply(leaf(combinator.KLeaf), b), nil
		case !inFn && inArg:
			t2, err := abstract(param, b.Arg)
			if err != nil {
				return nil, err
			}
			return lambda.ApplyAll(leaf(combinator.BLeaf), b.Fn, t2), nil
		case inFn && !inArg:
			t1, err := abstract(param, b.Fn)
			if err != nil {
				return nil, err
			}
			return lambda.ApplyAll(leaf(combinator.CLeaf), t1, b.Arg), nil
		default:
			t1, err := abstract(param, b.Fn)
			if err != nil {
				return nil, err
			}
			t2, err := abstract(param, b.Arg)
			if err != nil {
				return nil, err
			}
			return lambda.ApplyAll(leaf(combinator.SLeaf), t1, t2), nil
		}
	default:
		return nil, fmt.Errorf("bracket: unexpected term %T reached abstraction", body)
	}
}

// toCombinator folds an Abs-free lambda.Term (only Var, App, Leaf remain)
// down into a combinator.Term, using combinator.ApplyTo to perform any
// folding the embedded leaves are ready for immediately (e.g. two Builtin
// applications collapsing at compile time).
func toCombinator(t lambda.Term) (combinator.Term, error) {
	switch n := t.(type) {
	case lambda.Var:
		return nil, fmt.Errorf("bracket: free variable %q never defined", string(n))
	case lambda.Leaf:
		return n.Combinator, nil
	case *lambda.App:
		fn, err := toCombinator(n.Fn)
		if err != nil {
			return nil, err
		}
		arg, err := toCombinator(n.Arg)
		if err != nil {
			return nil, err
		}
		return combinator.ApplyTo(fn, arg)
	default:
		return nil, fmt.Errorf("bracket: unexpected term %T reached combinator folding", t)
	}
}
