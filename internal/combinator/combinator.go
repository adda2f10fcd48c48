// Package combinator is the variable-free target of bracket abstraction:
// S/K/I/B/C combinators with inline held arguments, plus the literal and
// deferred-call leaves the reducer produces directly (spec §3, §4.5).
package combinator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind distinguishes the five combinator symbols from one another; the
// literal/builtin/foreign kinds are represented by their own Go types
// below instead of sharing this enum.
type Kind int

const (
	S Kind = iota
	K
	I
	B
	C
)

func (k Kind) String() string {
	return [...]string{"S", "K", "I", "B", "C"}[k]
}

// Term is any combinator-term node.
type Term interface {
	fmt.Stringer
	combNode()
}

func (*Sym) combNode()     {}
func (*Str) combNode()     {}
func (*Num) combNode()     {}
func (*List) combNode()    {}
func (*Record) combNode()  {}
func (*Builtin) combNode() {}
func (*Foreign) combNode() {}
func (Nil) combNode()      {}

// Nil is the result of an arithmetic/comparison builtin applied to
// mismatched operand types (spec §4.3's arithmetic encodings only define
// behavior for matching number/number or string/string pairs). It absorbs
// any further application, propagating the type error as an ordinary
// value instead of aborting compilation.
type Nil struct{}

func (Nil) String() string { return "Nil" }

// Sym is one of S, K, I, B, C with zero, one, or two arguments already
// applied and held inline. S/B/C have two slots, K has one (Arg2 is
// always nil for K and for I, which has none).
type Sym struct {
	Kind       Kind
	Arg1, Arg2 Term
}

func (s *Sym) String() string {
	switch {
	case s.Arg1 == nil:
		return s.Kind.String()
	case s.Arg2 == nil:
		return fmt.Sprintf("%s.apply(%s)", s.Kind, s.Arg1)
	default:
		return fmt.Sprintf("%s.apply(%s).apply(%s)", s.Kind, s.Arg1, s.Arg2)
	}
}

// Bare S/K/I/B/C leaves, held as package-level values so callers can write
// combinator.S instead of &Sym{Kind: combinator.S}.
var (
	SLeaf = &Sym{Kind: S}
	KLeaf = &Sym{Kind: K}
	ILeaf = &Sym{Kind: I}
	BLeaf = &Sym{Kind: B}
	CLeaf = &Sym{Kind: C}
)

// Str is a string literal leaf.
type Str struct{ Value string }

func (s *Str) String() string { return strconv.Quote(s.Value) }

// Num is a host-double literal leaf.
type Num struct{ Value float64 }

func (n *Num) String() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

// List is a list-of-combinators leaf.
type List struct{ Items []Term }

func (l *List) String() string {
	parts := make([]string, len(l.Items))
	for i, t := range l.Items {
		parts[i] = t.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Record is a key-ordered record leaf. Keys must already be sorted
// lexicographically by the caller — the determinism invariant (spec §3)
// is enforced once, at construction, not re-checked here.
type Record struct {
	Keys   []string
	Values []Term
}

// NewRecord builds a Record with its keys sorted lexicographically.
func NewRecord(m map[string]Term) *Record {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	values := make([]Term, len(keys))
	for i, k := range keys {
		values[i] = m[k]
	}
	return &Record{Keys: keys, Values: values}
}

func (r *Record) String() string {
	parts := make([]string, len(r.Keys))
	for i, k := range r.Keys {
		parts[i] = fmt.Sprintf("%q: %s", k, r.Values[i])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Builtin is a named arithmetic/comparison combinator of fixed arity
// (`add`, `sub`, `eq`, …). Applying fewer than Arity arguments just
// accumulates them, exactly like Foreign; only once Arity is reached does
// Fold get a chance to collapse the call to a literal. A toy program's
// operands are ordinarily concrete by the time a builtin reaches its full
// arity (bracket abstraction defers any application still depending on a
// bound variable by wrapping it in S/B/C rather than ever calling Fold on
// it) — but when an argument is itself an unresolved Foreign or Builtin
// call (say, the result of a still-deferred Y call), ApplyTo does not
// call Fold and the builtin is emitted verbatim instead, the same as
// Foreign; it is likewise kept when Fold reports false.
type Builtin struct {
	Name  string
	Arity int
	Args  []Term
	Fold  func(args []Term) (Term, bool)
}

func (b *Builtin) String() string {
	var sb strings.Builder
	sb.WriteString(b.Name)
	for _, a := range b.Args {
		fmt.Fprintf(&sb, ".apply(%s)", a)
	}
	return sb.String()
}

// Foreign is a named identifier whose meaning the host runtime supplies
// (`print`, `println`, `Y`); applying arguments to it only ever
// accumulates an argument stack, deferring the actual call to the
// emitted target program rather than invoking anything at compile time.
type Foreign struct {
	Name string
	Args []Term
}

func (f *Foreign) String() string {
	var b strings.Builder
	b.WriteString(f.Name)
	for _, a := range f.Args {
		fmt.Fprintf(&b, ".apply(%s)", a)
	}
	return b.String()
}

// NewBuiltin constructs an unapplied builtin of the given arity.
func NewBuiltin(name string, arity int, fold func(args []Term) (Term, bool)) *Builtin {
	return &Builtin{Name: name, Arity: arity, Fold: fold}
}

// NewForeign constructs a zero-argument foreign leaf.
func NewForeign(name string) *Foreign { return &Foreign{Name: name} }

// Equal reports deep structural equality between two leaves — used by the
// `eq`/`neq` builtins (spec §4.3), which only ever compare already-reduced
// number/string/list/record values, never combinator symbols or deferred
// calls.
func Equal(a, b Term) bool {
	switch x := a.(type) {
	case *Num:
		y, ok := b.(*Num)
		return ok && x.Value == y.Value
	case *Str:
		y, ok := b.(*Str)
		return ok && x.Value == y.Value
	case *List:
		y, ok := b.(*List)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !Equal(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case *Record:
		y, ok := b.(*Record)
		if !ok || len(x.Keys) != len(y.Keys) {
			return false
		}
		for i := range x.Keys {
			if x.Keys[i] != y.Keys[i] || !Equal(x.Values[i], y.Values[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// ApplyTo implements combinator application folding (spec §4.5): filling
// an S/B/C/K slot, invoking a fully-applied S/B/C/K or I reduction,
// invoking a builtin immediately, deferring a foreign call, or rejecting a
// literal applied to an argument as a compile error (the design resolves
// spec §9's third Open Question — literals as K-like absorbers — in favor
// of an error, see SPEC_FULL.md).
func ApplyTo(t Term, z Term) (Term, error) {
	switch n := t.(type) {
	case *Sym:
		return applySym(n, z)
	case *Builtin:
		args := make([]Term, len(n.Args)+1)
		copy(args, n.Args)
		args[len(n.Args)] = z
		if len(args) < n.Arity {
			return &Builtin{Name: n.Name, Arity: n.Arity, Args: args, Fold: n.Fold}, nil
		}
		deferred := false
		for _, a := range args {
			switch a.(type) {
			case *Foreign, *Builtin:
				deferred = true
			}
		}
		if !deferred {
			if result, ok := n.Fold(args); ok {
				return result, nil
			}
		}
		return &Builtin{Name: n.Name, Arity: n.Arity, Args: args, Fold: n.Fold}, nil
	case *Foreign:
		args := make([]Term, len(n.Args)+1)
		copy(args, n.Args)
		args[len(n.Args)] = z
		return &Foreign{Name: n.Name, Args: args}, nil
	case Nil:
		return Nil{}, nil
	case *Str, *Num, *List, *Record:
		return nil, fmt.Errorf("combinator: literal %s applied to an argument", t)
	default:
		return nil, fmt.Errorf("combinator: cannot apply to %T", t)
	}
}

func applySym(s *Sym, z Term) (Term, error) {
	if s.Arg1 == nil && s.Arg2 != nil {
		return nil, fmt.Errorf("combinator: malformed %s (second slot filled without the first)", s.Kind)
	}

	switch s.Kind {
	case I:
		return z, nil
	case K:
		if s.Arg1 == nil {
			return &Sym{Kind: K, Arg1: z}, nil
		}
		return s.Arg1, nil
	case S, B, C:
		if s.Arg1 == nil {
			return &Sym{Kind: s.Kind, Arg1: z}, nil
		}
		if s.Arg2 == nil {
			return &Sym{Kind: s.Kind, Arg1: s.Arg1, Arg2: z}, nil
		}
		x, y := s.Arg1, s.Arg2
		switch s.Kind {
		case S:
			xz, err := ApplyTo(x, z)
			if err != nil {
				return nil, err
			}
			yz, err := ApplyTo(y, z)
			if err != nil {
				return nil, err
			}
			return ApplyTo(xz, yz)
		case B:
			yz, err := ApplyTo(y, z)
			if err != nil {
				return nil, err
			}
			return ApplyTo(x, yz)
		case C:
			xz, err := ApplyTo(x, z)
			if err != nil {
				return nil, err
			}
			return ApplyTo(xz, y)
		}
	}
	return nil, fmt.Errorf("combinator: unreachable kind %v", s.Kind)
}
