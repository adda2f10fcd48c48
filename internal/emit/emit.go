// Package emit is a pure function from a closed combinator.Term to Go
// source text (spec §4.6), mirroring the Rust prototype's compile.rs
// Golang target. The emitted text references a small runtime (package
// ramify/internal/prelude) supplying S, K, I, B, C, Nil, Y, Apply, and
// the make_* constructors.
package emit

import (
	"fmt"
	"strconv"
	"strings"

	"ramify/internal/combinator"
)

// Term renders t as a Go expression. A residual malformed node (an S/B/C
// with only its second slot filled, or an unrecognized Term
// implementation) panics, matching the Rust prototype's `panic!` on the
// same condition (spec §4.6's last emission rule) — the driver recovers
// at its own call boundary the same way the parser does (spec §7).
func Term(t combinator.Term) string {
	var b strings.Builder
	writeTerm(&b, t)
	return b.String()
}

func writeTerm(b *strings.Builder, t combinator.Term) {
	switch n := t.(type) {
	case *combinator.Sym:
		writeSym(b, n)
	case *combinator.Num:
		fmt.Fprintf(b, "make_f64(%s)", strconv.FormatFloat(n.Value, 'g', -1, 64))
	case *combinator.Str:
		fmt.Fprintf(b, "make_str(%s)", strconv.Quote(n.Value))
	case *combinator.List:
		b.WriteString("make_list([]Value{")
		for i, item := range n.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			writeTerm(b, item)
		}
		b.WriteString("})")
	case *combinator.Record:
		b.WriteString("make_table(map[string]Value{")
		for i, k := range n.Keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s: ", strconv.Quote(k))
			writeTerm(b, n.Values[i])
		}
		b.WriteString("})")
	case *combinator.Builtin:
		b.WriteString(n.Name)
		for _, a := range n.Args {
			b.WriteString(".Apply(")
			writeTerm(b, a)
			b.WriteString(")")
		}
	case *combinator.Foreign:
		b.WriteString(n.Name)
		for _, a := range n.Args {
			b.WriteString(".Apply(")
			writeTerm(b, a)
			b.WriteString(")")
		}
	case combinator.Nil:
		b.WriteString("Nil")
	default:
		panic(fmt.Sprintf("emit: malformed combinator term %#v", t))
	}
}

func writeSym(b *strings.Builder, s *combinator.Sym) {
	if s.Arg1 == nil && s.Arg2 != nil {
		panic(fmt.Sprintf("emit: malformed %s (second slot filled without the first)", s.Kind))
	}
	switch {
	case s.Arg1 == nil:
		b.WriteString(s.Kind.String())
	case s.Arg2 == nil:
		b.WriteString(s.Kind.String())
		b.WriteString(".Apply(")
		writeTerm(b, s.Arg1)
		b.WriteString(")")
	default:
		b.WriteString(s.Kind.String())
		b.WriteString(".Apply(")
		writeTerm(b, s.Arg1)
		b.WriteString(").Apply(")
		writeTerm(b, s.Arg2)
		b.WriteString(")")
	}
}
