// Package lambda is the minimal lambda-calculus term representation the
// reducer produces and bracket abstraction consumes (spec §3, §4.4).
// Shaped after the Object-interface pattern used by the retrieval pack's
// KarpelesLab/lambda package (a standalone SKI/BCKW library): a small
// closed interface with one concrete type per term kind.
package lambda

import (
	"fmt"

	"ramify/internal/combinator"
)

// Term is a lambda-calculus term: a bound variable, an abstraction, an
// application, or an embedded combinator leaf (reached once arithmetic
// and data encoding are complete).
type Term interface {
	fmt.Stringer
	termNode()
}

func (Var) termNode()  {}
func (*Abs) termNode() {}
func (*App) termNode() {}
func (Leaf) termNode() {}

// Var is a bound variable reference.
type Var string

func (v Var) String() string { return string(v) }

// Abs is `λParam. Body`.
type Abs struct {
	Param string
	Body  Term
}

func (a *Abs) String() string { return fmt.Sprintf("%s.%s", a.Param, a.Body) }

// App is function application `Fn Arg`.
type App struct{ Fn, Arg Term }

func (a *App) String() string { return fmt.Sprintf("(%s %s)", a.Fn, a.Arg) }

// Leaf embeds an already-built combinator term — a lambda-calculus leaf
// that bracket abstraction treats opaquely (spec §4.4's last rule: `λx. C`
// where C is a combinator leaf ⇒ `K C`).
type Leaf struct{ Combinator combinator.Term }

func (l Leaf) String() string { return l.Combinator.String() }

// Apply builds the application f arg.
func Apply(f, arg Term) Term { return &App{Fn: f, Arg: arg} }

// ApplyAll left-folds Apply over args.
func ApplyAll(f Term, args ...Term) Term {
	for _, a := range args {
		f = Apply(f, a)
	}
	return f
}

// Lambda builds the abstraction λparam. body.
func Lambda(param string, body Term) Term { return &Abs{Param: param, Body: body} }

// HasFreeVar reports whether name occurs free in t — the precondition
// test every bracket-abstraction rule in spec §4.4 is keyed on.
func HasFreeVar(t Term, name string) bool {
	switch n := t.(type) {
	case Var:
		return string(n) == name
	case *Abs:
		if n.Param == name {
			return false
		}
		return HasFreeVar(n.Body, name)
	case *App:
		return HasFreeVar(n.Fn, name) || HasFreeVar(n.Arg, name)
	case Leaf:
		return false
	default:
		return false
	}
}
