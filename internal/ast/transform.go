package ast

// HasBinding reports whether name occurs free in e — used by the inlining
// pass to reject recursive constants (spec §4.2 step 4, §7 "recursive
// const detected during inlining").
func HasBinding(e Expression, name string) bool {
	switch n := e.(type) {
	case *Identifier:
		return n.Name == name
	case *NumberLit, *StringLit:
		return false
	case *ListLit:
		for _, item := range n.Items {
			if HasBinding(item, name) {
				return true
			}
		}
		return false
	case *RecordLit:
		for _, v := range n.Values {
			if HasBinding(v, name) {
				return true
			}
		}
		return false
	case *Lambda:
		if n.Param == name {
			return false
		}
		return HasBinding(n.Body, name)
	case *Application:
		return HasBinding(n.Fn, name) || HasBinding(n.Arg, name)
	case *TailCall:
		for _, a := range n.Args {
			if HasBinding(a, name) {
				return true
			}
		}
		return false
	case *IfThenElse:
		return HasBinding(n.Cond, name) || HasBinding(n.Then, name) || HasBinding(n.Else, name)
	case *CaseOf:
		if HasBinding(n.Value, name) {
			return true
		}
		for _, arm := range n.Arms {
			if containsString(arm.Members, name) {
				continue
			}
			if HasBinding(arm.Body, name) {
				return true
			}
		}
		return false
	case *Construct:
		for _, m := range n.Members {
			if HasBinding(m, name) {
				return true
			}
		}
		return false
	case *Deconstruct:
		if HasBinding(n.Value, name) {
			return true
		}
		if containsString(n.Members, name) {
			return false
		}
		return HasBinding(n.Body, name)
	case *Unary:
		return HasBinding(n.X, name)
	case *Binary:
		return HasBinding(n.Left, name) || HasBinding(n.Right, name)
	default:
		return false
	}
}

func containsString(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

// Substitute returns a copy of e with every free occurrence of name
// replaced by value, respecting binders (a Lambda/Deconstruct/CaseOf arm
// that rebinds name shadows it, and substitution stops there). Used for
// constant and function inlining (spec §4.2 step 4).
func Substitute(e Expression, name string, value Expression) Expression {
	switch n := e.(type) {
	case *Identifier:
		if n.Name == name {
			return value
		}
		return n
	case *NumberLit, *StringLit:
		return n
	case *ListLit:
		items := make([]Expression, len(n.Items))
		for i, item := range n.Items {
			items[i] = Substitute(item, name, value)
		}
		return &ListLit{Items: items}
	case *RecordLit:
		values := make([]Expression, len(n.Values))
		for i, v := range n.Values {
			values[i] = Substitute(v, name, value)
		}
		return &RecordLit{Keys: n.Keys, Values: values}
	case *Lambda:
		if n.Param == name {
			return n
		}
		return &Lambda{Param: n.Param, Body: Substitute(n.Body, name, value)}
	case *Application:
		return &Application{Fn: Substitute(n.Fn, name, value), Arg: Substitute(n.Arg, name, value)}
	case *TailCall:
		args := make([]Expression, len(n.Args))
		for i, a := range n.Args {
			args[i] = Substitute(a, name, value)
		}
		return &TailCall{Args: args}
	case *IfThenElse:
		return &IfThenElse{
			Cond: Substitute(n.Cond, name, value),
			Then: Substitute(n.Then, name, value),
			Else: Substitute(n.Else, name, value),
		}
	case *CaseOf:
		arms := make([]CaseArm, len(n.Arms))
		for i, arm := range n.Arms {
			if containsString(arm.Members, name) {
				arms[i] = arm
				continue
			}
			arms[i] = CaseArm{Ctor: arm.Ctor, Members: arm.Members, Body: Substitute(arm.Body, name, value)}
		}
		return &CaseOf{Value: Substitute(n.Value, name, value), Arms: arms, DataType: n.DataType}
	case *Construct:
		members := make([]Expression, len(n.Members))
		for i, m := range n.Members {
			members[i] = Substitute(m, name, value)
		}
		return &Construct{Name: n.Name, Members: members, Ctor: n.Ctor}
	case *Deconstruct:
		body := n.Body
		if !containsString(n.Members, name) {
			body = Substitute(n.Body, name, value)
		}
		return &Deconstruct{
			Name: n.Name, Members: n.Members,
			Value: Substitute(n.Value, name, value),
			Body:  body, Ctor: n.Ctor,
		}
	case *Unary:
		return &Unary{Op: n.Op, X: Substitute(n.X, name, value)}
	case *Binary:
		return &Binary{Op: n.Op, Left: Substitute(n.Left, name, value), Right: Substitute(n.Right, name, value)}
	default:
		return e
	}
}

// NumberOfArguments counts the length of e's outermost Lambda chain — used
// by the reducer to warn when if/case branches evaluate to functions of
// different arity (spec §4.3 Diagnostics).
func NumberOfArguments(e Expression) int {
	n := 0
	for {
		l, ok := e.(*Lambda)
		if !ok {
			return n
		}
		n++
		e = l.Body
	}
}

// ContainsTailCall reports whether e contains a TailCall node anywhere in
// its tree — `rec` is a reserved word with no user-facing binder, so
// unlike HasBinding this needs no shadowing logic (spec §4.2 step 1).
func ContainsTailCall(e Expression) bool {
	switch n := e.(type) {
	case *TailCall:
		return true
	case *ListLit:
		for _, item := range n.Items {
			if ContainsTailCall(item) {
				return true
			}
		}
		return false
	case *RecordLit:
		for _, v := range n.Values {
			if ContainsTailCall(v) {
				return true
			}
		}
		return false
	case *Lambda:
		return ContainsTailCall(n.Body)
	case *Application:
		return ContainsTailCall(n.Fn) || ContainsTailCall(n.Arg)
	case *IfThenElse:
		return ContainsTailCall(n.Cond) || ContainsTailCall(n.Then) || ContainsTailCall(n.Else)
	case *CaseOf:
		if ContainsTailCall(n.Value) {
			return true
		}
		for _, arm := range n.Arms {
			if ContainsTailCall(arm.Body) {
				return true
			}
		}
		return false
	case *Construct:
		for _, m := range n.Members {
			if ContainsTailCall(m) {
				return true
			}
		}
		return false
	case *Deconstruct:
		return ContainsTailCall(n.Value) || ContainsTailCall(n.Body)
	case *Unary:
		return ContainsTailCall(n.X)
	case *Binary:
		return ContainsTailCall(n.Left) || ContainsTailCall(n.Right)
	default:
		return false
	}
}
