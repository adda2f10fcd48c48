// Package rewrite implements the AST rewrite passes applied after parsing
// and before reduction (spec §4.2), in the fixed order: tail-call lifting,
// constructor resolution, data-type resolution, constant/function
// inlining. Each pass rewrites the declarations of the unit it is given
// in place (replacing their Body/Params and attaching resolved
// references); the unit is not shared with anything else.
package rewrite

import (
	"fmt"

	"ramify/internal/ast"
)

// Run applies every rewrite pass to unit in order and returns the
// rewritten compilation unit, or the first resolution error.
func Run(unit *ast.AST) (*ast.AST, error) {
	liftTailCalls(unit)
	if err := resolveConstructors(unit); err != nil {
		return nil, err
	}
	if err := resolveDataTypes(unit); err != nil {
		return nil, err
	}
	if err := inlineConstantsAndFunctions(unit); err != nil {
		return nil, err
	}
	return unit, nil
}

// liftTailCalls wraps every recursive function's body in
// Y (λrec. body), the standard fixed-point encoding of recursion (spec
// §4.2 step 1, §9 "Recursion without a term-level Y"). Non-recursive
// functions are left semantically untouched but, like the recursive ones,
// have their declared parameters folded into the body's own Lambda chain
// and Params cleared — every later pass (inlining, reduction) then deals
// with one self-contained Body per function instead of a separate
// (Params, Body) pair, which matters once inlining starts substituting a
// whole function body into a call site: the substitution must see the
// function's own parameters as Lambda binders to shadow them correctly.
func liftTailCalls(unit *ast.AST) {
	for _, f := range unit.Functions {
		chain := f.LambdaChain()
		if ast.ContainsTailCall(f.Body) {
			chain = &ast.Application{
				Fn:  &ast.Identifier{Name: "Y"},
				Arg: &ast.Lambda{Param: ast.RecursionBinder, Body: chain},
			}
		}
		f.Params = nil
		f.Body = chain
	}
}

// resolveConstructors promotes bare identifiers and applications that
// name a declared constructor at the right arity into Construct nodes
// (spec §4.2 step 2). A 1-ary constructor name applied to one argument
// was under-applied by the parser (ctorcall requires >= 2 arguments at
// the syntax level) and is completed here.
func resolveConstructors(unit *ast.AST) error {
	arity := make(map[string]int)
	for _, c := range unit.Constructors {
		arity[c.Name] = len(c.Members)
	}
	for _, d := range unit.Data {
		for _, c := range d.Constructors {
			arity[c.Name] = len(c.Members)
		}
	}

	resolve := func(e ast.Expression) ast.Expression { return resolveCtorsInExpr(e, arity) }
	for _, c := range unit.Constants {
		c.Body = resolve(c.Body)
	}
	for _, f := range unit.Functions {
		f.Body = resolve(f.Body)
	}
	return nil
}

func resolveCtorsInExpr(e ast.Expression, arity map[string]int) ast.Expression {
	switch n := e.(type) {
	case *ast.Identifier:
		if a, ok := arity[n.Name]; ok && a == 0 {
			return &ast.Construct{Name: n.Name}
		}
		return n
	case *ast.Construct:
		members := make([]ast.Expression, len(n.Members))
		for i, m := range n.Members {
			members[i] = resolveCtorsInExpr(m, arity)
		}
		return &ast.Construct{Name: n.Name, Members: members}
	case *ast.Application:
		// A 1-ary constructor applied as `C e` is the one case the
		// parser could not express as a ctorcall (which requires >= 2
		// comma-separated arguments); complete the promotion here.
		if id, ok := n.Fn.(*ast.Identifier); ok {
			if a, ok := arity[id.Name]; ok && a == 1 {
				return &ast.Construct{Name: id.Name, Members: []ast.Expression{resolveCtorsInExpr(n.Arg, arity)}}
			}
		}
		return &ast.Application{Fn: resolveCtorsInExpr(n.Fn, arity), Arg: resolveCtorsInExpr(n.Arg, arity)}
	case *ast.ListLit:
		items := make([]ast.Expression, len(n.Items))
		for i, it := range n.Items {
			items[i] = resolveCtorsInExpr(it, arity)
		}
		return &ast.ListLit{Items: items}
	case *ast.RecordLit:
		values := make([]ast.Expression, len(n.Values))
		for i, v := range n.Values {
			values[i] = resolveCtorsInExpr(v, arity)
		}
		return &ast.RecordLit{Keys: n.Keys, Values: values}
	case *ast.Lambda:
		return &ast.Lambda{Param: n.Param, Body: resolveCtorsInExpr(n.Body, arity)}
	case *ast.TailCall:
		args := make([]ast.Expression, len(n.Args))
		for i, a := range n.Args {
			args[i] = resolveCtorsInExpr(a, arity)
		}
		return &ast.TailCall{Args: args}
	case *ast.IfThenElse:
		return &ast.IfThenElse{
			Cond: resolveCtorsInExpr(n.Cond, arity),
			Then: resolveCtorsInExpr(n.Then, arity),
			Else: resolveCtorsInExpr(n.Else, arity),
		}
	case *ast.CaseOf:
		arms := make([]ast.CaseArm, len(n.Arms))
		for i, arm := range n.Arms {
			arms[i] = ast.CaseArm{Ctor: arm.Ctor, Members: arm.Members, Body: resolveCtorsInExpr(arm.Body, arity)}
		}
		return &ast.CaseOf{Value: resolveCtorsInExpr(n.Value, arity), Arms: arms, DataType: n.DataType}
	case *ast.Deconstruct:
		return &ast.Deconstruct{
			Name: n.Name, Members: n.Members,
			Value: resolveCtorsInExpr(n.Value, arity),
			Body:  resolveCtorsInExpr(n.Body, arity),
			Ctor:  n.Ctor,
		}
	case *ast.Unary:
		return &ast.Unary{Op: n.Op, X: resolveCtorsInExpr(n.X, arity)}
	case *ast.Binary:
		return &ast.Binary{Op: n.Op, Left: resolveCtorsInExpr(n.Left, arity), Right: resolveCtorsInExpr(n.Right, arity)}
	default:
		return e
	}
}

// resolveDataTypes attaches the resolved Data/Constructor reference to
// every CaseOf/Construct/Deconstruct node (spec §4.2 step 3). A CaseOf
// whose arms do not all belong to one declared Data is a resolution error
// (spec §7); a Construct/Deconstruct against an undeclared constructor is
// likewise an error.
func resolveDataTypes(unit *ast.AST) error {
	ctorByName := make(map[string]*ast.Constructor)
	for _, c := range unit.Constructors {
		ctorByName[c.Name] = c
	}
	for _, d := range unit.Data {
		for _, c := range d.Constructors {
			ctorByName[c.Name] = c
		}
	}

	var walk func(e ast.Expression) error
	walk = func(e ast.Expression) error {
		switch n := e.(type) {
		case *ast.ListLit:
			for _, it := range n.Items {
				if err := walk(it); err != nil {
					return err
				}
			}
		case *ast.RecordLit:
			for _, v := range n.Values {
				if err := walk(v); err != nil {
					return err
				}
			}
		case *ast.Lambda:
			return walk(n.Body)
		case *ast.Application:
			if err := walk(n.Fn); err != nil {
				return err
			}
			return walk(n.Arg)
		case *ast.TailCall:
			for _, a := range n.Args {
				if err := walk(a); err != nil {
					return err
				}
			}
		case *ast.IfThenElse:
			if err := walk(n.Cond); err != nil {
				return err
			}
			if err := walk(n.Then); err != nil {
				return err
			}
			return walk(n.Else)
		case *ast.Unary:
			return walk(n.X)
		case *ast.Binary:
			if err := walk(n.Left); err != nil {
				return err
			}
			return walk(n.Right)
		case *ast.Construct:
			c, ok := ctorByName[n.Name]
			if !ok {
				return fmt.Errorf("resolution error: undeclared constructor %q", n.Name)
			}
			n.Ctor = c
			for _, m := range n.Members {
				if err := walk(m); err != nil {
					return err
				}
			}
		case *ast.Deconstruct:
			c, ok := ctorByName[n.Name]
			if !ok {
				return fmt.Errorf("resolution error: undeclared constructor %q", n.Name)
			}
			n.Ctor = c
			if err := walk(n.Value); err != nil {
				return err
			}
			return walk(n.Body)
		case *ast.CaseOf:
			if err := walk(n.Value); err != nil {
				return err
			}
			data, err := matchingData(unit.Data, n.Arms)
			if err != nil {
				return err
			}
			n.DataType = data
			for _, arm := range n.Arms {
				if err := walk(arm.Body); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, c := range unit.Constants {
		if err := walk(c.Body); err != nil {
			return err
		}
	}
	for _, f := range unit.Functions {
		if err := walk(f.Body); err != nil {
			return err
		}
	}
	return nil
}

// matchingData finds the unique Data whose constructor set (by name and
// arity) is a superset of arms (spec §4.2 step 3).
func matchingData(all []*ast.Data, arms []ast.CaseArm) (*ast.Data, error) {
	var match *ast.Data
	for _, d := range all {
		ok := true
		for _, arm := range arms {
			if !d.Has(arm.Ctor, len(arm.Members)) {
				ok = false
				break
			}
		}
		if ok {
			if match != nil {
				return nil, fmt.Errorf("resolution error: case expression is ambiguous between data types %q and %q", match.Name, d.Name)
			}
			match = d
		}
	}
	if match == nil {
		return nil, fmt.Errorf("resolution error: case expression's arms do not all belong to one declared data type")
	}
	return match, nil
}

// inlineConstantsAndFunctions substitutes every const and function
// reference by its body, to a fixed point bounded by the number of
// declared functions plus constants plus one (spec §4.2 step 4, §5 "pass
// counter"). A constant
// whose body mentions its own name is never inlined and is reported as an
// error (spec §7).
func inlineConstantsAndFunctions(unit *ast.AST) error {
	for _, c := range unit.Constants {
		if ast.HasBinding(c.Body, c.Name) {
			return fmt.Errorf("resolution error: recursive const %q detected during inlining", c.Name)
		}
	}

	// Unlike constants, functions are inlined regardless of recursion: a
	// recursive function's body was already rewritten to the closed form
	// Y (λrec. …) by liftTailCalls, so substituting it at a call site
	// carries its own self-reference along rather than escaping free.
	bindings := make(map[string]ast.Expression, len(unit.Constants)+len(unit.Functions))
	for _, c := range unit.Constants {
		bindings[c.Name] = c.Body
	}
	for _, f := range unit.Functions {
		bindings[f.Name] = f.LambdaChain()
	}

	apply := func(e ast.Expression) ast.Expression {
		passes := len(unit.Functions) + len(unit.Constants) + 1
		for i := 0; i < passes; i++ {
			before := e
			for name, body := range bindings {
				e = ast.Substitute(e, name, body)
			}
			if exprEqual(before, e) {
				break
			}
		}
		return e
	}

	for _, c := range unit.Constants {
		c.Body = apply(c.Body)
	}
	for _, f := range unit.Functions {
		f.Body = apply(f.Body)
	}
	return nil
}

// exprEqual is a cheap structural-equality check used only to detect the
// inlining fixed point; String() already renders a canonical form.
func exprEqual(a, b ast.Expression) bool {
	return a.String() == b.String()
}
