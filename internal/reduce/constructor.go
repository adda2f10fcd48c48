package reduce

import (
	"ramify/internal/ast"
	"ramify/internal/lambda"
)

// construct lowers `C(a1, …, ak)` (spec §4.3 Sum/Product types). The
// constructor's own selector closes over its member names first, then
// the real argument expressions are applied from the outside — the same
// two-stage shape the Rust prototype's constructor.rs builds (member
// binders outermost, so applying real arguments collapses them before
// the data-type or `f` selector is ever reached).
func (r *Reducer) construct(n *ast.Construct) (lambda.Term, error) {
	var selector lambda.Term
	if n.Ctor.Parent != nil {
		selector = sumSelector(n.Ctor)
	} else {
		selector = productSelector(n.Ctor)
	}
	result := selector
	for _, m := range n.Members {
		t, err := r.expr(m)
		if err != nil {
			return nil, err
		}
		result = lambda.Apply(result, t)
	}
	return result, nil
}

// deconstruct lowers `let C(b1, …, bk) = value in body` to
// `value (λb1…λbk. body)` (spec §4.3 Product types).
func (r *Reducer) deconstruct(n *ast.Deconstruct) (lambda.Term, error) {
	value, err := r.expr(n.Value)
	if err != nil {
		return nil, err
	}
	body, err := r.expr(n.Body)
	if err != nil {
		return nil, err
	}
	for i := len(n.Members) - 1; i >= 0; i-- {
		body = lambda.Lambda(n.Members[i], body)
	}
	return lambda.Apply(value, body), nil
}

// sumSelector builds `λa1…λak. λC1…λCn. Ci a1 … ak` for a constructor Ci
// of a data declaration — the self-reference to Ci's own name is a free
// variable inside the body that the λC1…λCn wrapper, built from the same
// name list, captures (spec §4.3: "Cᵢ(a₁,…,aₖ) lowers to
// λC₁…λCₙ. Cᵢ a₁…aₖ").
func sumSelector(ctor *ast.Constructor) lambda.Term {
	body := lambda.Term(lambda.Var(ctor.Name))
	for _, m := range ctor.Members {
		body = lambda.Apply(body, lambda.Var(m))
	}
	siblings := ctor.Parent.Constructors
	for i := len(siblings) - 1; i >= 0; i-- {
		body = lambda.Lambda(siblings[i].Name, body)
	}
	for i := len(ctor.Members) - 1; i >= 0; i-- {
		body = lambda.Lambda(ctor.Members[i], body)
	}
	return body
}

// productSelector builds `λa1…λak. λf. f a1 … ak` for a standalone `type`
// constructor (spec §4.3 Product types: "C(a1,…,ak) lowers to λf. f a1 …
// ak", with the member binders supplied from the outside by deconstruct's
// own λb1…λbk wrapper at the use site).
func productSelector(ctor *ast.Constructor) lambda.Term {
	body := lambda.Term(lambda.Var("f"))
	for _, m := range ctor.Members {
		body = lambda.Apply(body, lambda.Var(m))
	}
	body = lambda.Lambda("f", body)
	for i := len(ctor.Members) - 1; i >= 0; i-- {
		body = lambda.Lambda(ctor.Members[i], body)
	}
	return body
}

// dataSelector builds the sum-type "enum" dispatcher `λenum.λc1…λcn.
// enum(c1)…(cn)` a CaseOf applies its scrutinee and case-arm lambdas to
// (spec §4.3, mirroring the Rust prototype's data.rs).
func dataSelector(d *ast.Data) lambda.Term {
	body := lambda.Term(lambda.Var("enum"))
	for _, c := range d.Constructors {
		body = lambda.Apply(body, lambda.Var(c.Name))
	}
	for i := len(d.Constructors) - 1; i >= 0; i-- {
		body = lambda.Lambda(d.Constructors[i].Name, body)
	}
	return lambda.Lambda("enum", body)
}

// caseOf lowers `case value of | Ci(bi1,…) => ei …` to `value (λb11….
// e1) … (λbn1…. en)`, with arms sorted into the data declaration's
// constructor order so the application order lines up with the selector
// built by dataSelector (spec §4.3 Sum types).
func (r *Reducer) caseOf(n *ast.CaseOf) (lambda.Term, error) {
	value, err := r.expr(n.Value)
	if err != nil {
		return nil, err
	}
	result := lambda.Apply(dataSelector(n.DataType), value)

	arms := make([]ast.CaseArm, len(n.Arms))
	copy(arms, n.Arms)
	sortArms(arms)

	firstArity := -1
	for _, arm := range arms {
		arity := ast.NumberOfArguments(arm.Body)
		if firstArity == -1 {
			firstArity = arity
		} else if arity != firstArity {
			r.warn("case arms have different arities: %q", n.String())
		}
		body, err := r.expr(arm.Body)
		if err != nil {
			return nil, err
		}
		for i := len(arm.Members) - 1; i >= 0; i-- {
			body = lambda.Lambda(arm.Members[i], body)
		}
		result = lambda.Apply(result, body)
	}
	return result, nil
}

func sortArms(arms []ast.CaseArm) {
	key := func(a ast.CaseArm) string {
		c := ast.Constructor{Name: a.Ctor, Members: a.Members}
		return c.SortKey()
	}
	for i := 1; i < len(arms); i++ {
		for j := i; j > 0 && key(arms[j-1]) > key(arms[j]); j-- {
			arms[j-1], arms[j] = arms[j], arms[j-1]
		}
	}
}
