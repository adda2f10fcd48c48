// Package prelude holds the Go runtime text prepended to every emitted
// program (spec §4.6, §4.7): the Value interface, S/K/I/B/C, Nil, Y, the
// make_* constructors, and the arithmetic/comparison builtins a Builtin
// leaf that survived compile-time folding still names by reference.
//
// It mirrors the Rust prototype's bin.rs, which prepends a static
// `include_str!("prelude.go")` to the compiled expression and closes the
// trailing `func main() {` itself — Source here plays exactly that role,
// except Y is a genuine strict fixed point (SPEC_FULL.md, Supplemented
// Features #5) rather than the Rust prototype's dead busy-loop stand-in.
package prelude

// Source is Go source text ending in an open `func main() { var _ Value
// = ` — the driver appends the emitted program expression and a closing
// brace (spec §4.7). Binding the result to `_` instead of evaluating it
// bare, as the Rust prototype's OUTPUT.go does, means main's value never
// has to be a call expression on its own; any compiled program — one
// that ends in a side-effecting print as well as one that just returns a
// number — is a legal Go statement this way.
const Source = `// Code generated by ramify. DO NOT EDIT.
package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Value is anything a combinator application can produce: S/K/I/B/C in
// some state of partial application, a number/string/list/table literal,
// an arithmetic/comparison builtin, or a deferred foreign call.
type Value interface {
	Apply(Value) Value
}

type funcValue func(Value) Value

func (f funcValue) Apply(z Value) Value { return f(z) }

type sym struct {
	kind       string
	arg1, arg2 Value
}

func (s *sym) Apply(z Value) Value {
	if s.arg1 == nil && s.arg2 != nil {
		panic("malformed combinator " + s.kind)
	}
	switch s.kind {
	case "I":
		return z
	case "K":
		if s.arg1 == nil {
			return &sym{kind: "K", arg1: z}
		}
		return s.arg1
	case "S":
		if s.arg1 == nil {
			return &sym{kind: "S", arg1: z}
		}
		if s.arg2 == nil {
			return &sym{kind: "S", arg1: s.arg1, arg2: z}
		}
		return s.arg1.Apply(z).Apply(s.arg2.Apply(z))
	case "B":
		if s.arg1 == nil {
			return &sym{kind: "B", arg1: z}
		}
		if s.arg2 == nil {
			return &sym{kind: "B", arg1: s.arg1, arg2: z}
		}
		return s.arg1.Apply(s.arg2.Apply(z))
	case "C":
		if s.arg1 == nil {
			return &sym{kind: "C", arg1: z}
		}
		if s.arg2 == nil {
			return &sym{kind: "C", arg1: s.arg1, arg2: z}
		}
		return s.arg1.Apply(z).Apply(s.arg2)
	default:
		panic("malformed combinator " + s.kind)
	}
}

var (
	S = &sym{kind: "S"}
	K = &sym{kind: "K"}
	I = &sym{kind: "I"}
	B = &sym{kind: "B"}
	C = &sym{kind: "C"}
)

type nilValue struct{}

func (nilValue) Apply(Value) Value { return Nil }

var Nil Value = nilValue{}

type numValue struct{ v float64 }

func (*numValue) Apply(Value) Value { panic("cannot apply a number") }

type strValue struct{ v string }

func (*strValue) Apply(Value) Value { panic("cannot apply a string") }

type listValue struct{ items []Value }

func (*listValue) Apply(Value) Value { panic("cannot apply a list") }

type tableValue struct {
	keys []string
	m    map[string]Value
}

func (*tableValue) Apply(Value) Value { panic("cannot apply a table") }

func make_f64(n float64) Value    { return &numValue{v: n} }
func make_str(s string) Value     { return &strValue{v: s} }
func make_list(items []Value) Value { return &listValue{items: items} }

func make_table(m map[string]Value) Value {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &tableValue{keys: keys, m: m}
}

func render(v Value) string {
	switch t := v.(type) {
	case *numValue:
		return strconv.FormatFloat(t.v, 'g', -1, 64)
	case *strValue:
		return t.v
	case *listValue:
		parts := make([]string, len(t.items))
		for i, item := range t.items {
			parts[i] = render(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *tableValue:
		parts := make([]string, len(t.keys))
		for i, k := range t.keys {
			parts[i] = fmt.Sprintf("%q: %s", k, render(t.m[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case nilValue:
		return "Nil"
	default:
		return "<function>"
	}
}

// Y is a strict fixed-point combinator: applying it to f returns a value
// that, applied to x, re-derives f's own fixed point on every call
// instead of eagerly expanding it once up front — the trick a call-by-
// value host needs to make recursion terminate the way it would under
// lazy (Haskell/Lambda-calculus) evaluation.
var Y Value = funcValue(func(f Value) Value {
	var rec Value
	rec = funcValue(func(x Value) Value { return f.Apply(rec).Apply(x) })
	return rec
})

type builtin struct {
	name  string
	arity int
	args  []Value
	fold  func([]Value) Value
}

func (b *builtin) Apply(z Value) Value {
	args := make([]Value, len(b.args)+1)
	copy(args, b.args)
	args[len(b.args)] = z
	if len(args) < b.arity {
		return &builtin{name: b.name, arity: b.arity, args: args, fold: b.fold}
	}
	return b.fold(args)
}

var churchTrue Value = K
var churchFalse Value = K.Apply(I)

func churchBool(v bool) Value {
	if v {
		return churchTrue
	}
	return churchFalse
}

func numPair(args []Value) (float64, float64, bool) {
	a, ok1 := args[0].(*numValue)
	b, ok2 := args[1].(*numValue)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return a.v, b.v, true
}

func valuesEqual(a, b Value) bool {
	switch x := a.(type) {
	case *numValue:
		y, ok := b.(*numValue)
		return ok && x.v == y.v
	case *strValue:
		y, ok := b.(*strValue)
		return ok && x.v == y.v
	case *listValue:
		y, ok := b.(*listValue)
		if !ok || len(x.items) != len(y.items) {
			return false
		}
		for i := range x.items {
			if !valuesEqual(x.items[i], y.items[i]) {
				return false
			}
		}
		return true
	case *tableValue:
		y, ok := b.(*tableValue)
		if !ok || len(x.keys) != len(y.keys) {
			return false
		}
		for i, k := range x.keys {
			if y.keys[i] != k || !valuesEqual(x.m[k], y.m[k]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

var add Value = &builtin{name: "add", arity: 2, fold: func(args []Value) Value {
	if a, ok := args[0].(*numValue); ok {
		if b, ok := args[1].(*numValue); ok {
			return &numValue{v: a.v + b.v}
		}
	}
	if a, ok := args[0].(*strValue); ok {
		if b, ok := args[1].(*strValue); ok {
			return &strValue{v: a.v + b.v}
		}
	}
	return Nil
}}

var sub Value = &builtin{name: "sub", arity: 2, fold: func(args []Value) Value {
	m, n, ok := numPair(args)
	if !ok {
		return Nil
	}
	return &numValue{v: m - n}
}}

var mul Value = &builtin{name: "mul", arity: 2, fold: func(args []Value) Value {
	m, n, ok := numPair(args)
	if !ok {
		return Nil
	}
	return &numValue{v: m * n}
}}

var div Value = &builtin{name: "div", arity: 2, fold: func(args []Value) Value {
	m, n, ok := numPair(args)
	if !ok {
		return Nil
	}
	return &numValue{v: m / n}
}}

var neg Value = &builtin{name: "neg", arity: 1, fold: func(args []Value) Value {
	n, ok := args[0].(*numValue)
	if !ok {
		return args[0]
	}
	return &numValue{v: -n.v}
}}

var eq Value = &builtin{name: "eq", arity: 2, fold: func(args []Value) Value {
	return churchBool(valuesEqual(args[0], args[1]))
}}

var neq Value = &builtin{name: "neq", arity: 2, fold: func(args []Value) Value {
	return churchBool(!valuesEqual(args[0], args[1]))
}}

var lt Value = &builtin{name: "lt", arity: 2, fold: func(args []Value) Value {
	m, n, ok := numPair(args)
	return churchBool(ok && m < n)
}}

var le Value = &builtin{name: "le", arity: 2, fold: func(args []Value) Value {
	m, n, ok := numPair(args)
	return churchBool(ok && m <= n)
}}

var gt Value = &builtin{name: "gt", arity: 2, fold: func(args []Value) Value {
	m, n, ok := numPair(args)
	return churchBool(ok && m > n)
}}

var ge Value = &builtin{name: "ge", arity: 2, fold: func(args []Value) Value {
	m, n, ok := numPair(args)
	return churchBool(ok && m >= n)
}}

type foreign struct {
	name string
	args []Value
}

func (f *foreign) Apply(z Value) Value {
	args := make([]Value, len(f.args)+1)
	copy(args, f.args)
	args[len(f.args)] = z
	switch f.name {
	case "print":
		fmt.Print(render(z))
	case "println":
		fmt.Println(render(z))
	}
	return &foreign{name: f.name, args: args}
}

var print Value = &foreign{name: "print"}
var println Value = &foreign{name: "println"}

func main() {
	var _ Value = `
