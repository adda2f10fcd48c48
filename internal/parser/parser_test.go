package parser

import (
	"testing"

	"ramify/internal/ast"
	"ramify/internal/lexer"
)

func parseSrc(t *testing.T, src string) *ast.AST {
	t.Helper()
	toks, err := lexer.New([]byte(src)).Scan()
	if err != nil {
		t.Fatalf("Scan(%q): %v", src, err)
	}
	unit, err := Parse(toks)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return unit
}

func TestParseFunctionDecl(t *testing.T) {
	unit := parseSrc(t, "let add a b = a + b")
	if len(unit.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(unit.Functions))
	}
	f := unit.Functions[0]
	if f.Name != "add" || len(f.Params) != 2 || f.Params[0] != "a" || f.Params[1] != "b" {
		t.Fatalf("unexpected function shape: %+v", f)
	}
	if _, ok := f.Body.(*ast.Binary); !ok {
		t.Fatalf("expected body to be a Binary, got %T", f.Body)
	}
}

func TestParseDataDeclSortsConstructors(t *testing.T) {
	unit := parseSrc(t, "data R = Zeta(x) | Alpha(y, z)")
	if len(unit.Data) != 1 {
		t.Fatalf("expected 1 data decl, got %d", len(unit.Data))
	}
	cs := unit.Data[0].Constructors
	if len(cs) != 2 || cs[0].Name != "Alpha" || cs[1].Name != "Zeta" {
		t.Fatalf("expected constructors sorted [Alpha Zeta], got %v", cs)
	}
}

func TestParseLambdaDisambiguatedFromIdentifier(t *testing.T) {
	unit := parseSrc(t, "const f = a.b.a")
	lam, ok := unit.Constants[0].Body.(*ast.Lambda)
	if !ok {
		t.Fatalf("expected a Lambda, got %T", unit.Constants[0].Body)
	}
	if lam.Param != "a" {
		t.Fatalf("expected outer param 'a', got %q", lam.Param)
	}
}

func TestParseConstructorCallNeedsTwoArgs(t *testing.T) {
	unit := parseSrc(t, "const p = Point(1, 2)")
	ctor, ok := unit.Constants[0].Body.(*ast.Construct)
	if !ok {
		t.Fatalf("expected a Construct, got %T", unit.Constants[0].Body)
	}
	if ctor.Name != "Point" || len(ctor.Members) != 2 {
		t.Fatalf("unexpected construct shape: %+v", ctor)
	}
}

func TestParseSingleArgParensIsApplicationNotConstruct(t *testing.T) {
	unit := parseSrc(t, "let main x = f(x)")
	app, ok := unit.Functions[0].Body.(*ast.Application)
	if !ok {
		t.Fatalf("expected f(x) with one arg to parse as Application, got %T", unit.Functions[0].Body)
	}
	if _, ok := app.Fn.(*ast.Identifier); !ok {
		t.Fatalf("expected application function to be an identifier, got %T", app.Fn)
	}
}

func TestParseCaseOf(t *testing.T) {
	unit := parseSrc(t, `data R = Ok(x) | Err(e)
let f n = case n of | Ok(x) => x | Err(e) => e`)
	body := unit.Functions[0].Body
	c, ok := body.(*ast.CaseOf)
	if !ok {
		t.Fatalf("expected a CaseOf, got %T", body)
	}
	if len(c.Arms) != 2 {
		t.Fatalf("expected 2 arms, got %d", len(c.Arms))
	}
}

func TestParseIfThenElseAndTailCall(t *testing.T) {
	unit := parseSrc(t, "let factorial n = if n>1 then n*(rec n-1) else 1")
	ite, ok := unit.Functions[0].Body.(*ast.IfThenElse)
	if !ok {
		t.Fatalf("expected an IfThenElse, got %T", unit.Functions[0].Body)
	}
	mul, ok := ite.Then.(*ast.Binary)
	if !ok || mul.Op != ast.Mul {
		t.Fatalf("expected then-branch to be a multiplication, got %#v", ite.Then)
	}
	if _, ok := mul.Right.(*ast.TailCall); !ok {
		t.Fatalf("expected rightmost operand to be a TailCall, got %T", mul.Right)
	}
}

func TestParseDeconstruct(t *testing.T) {
	unit := parseSrc(t, "type Point(x, y)\nlet main _ = let Point(x, y) = Point(1, 2) in x")
	dec, ok := unit.Functions[0].Body.(*ast.Deconstruct)
	if !ok {
		t.Fatalf("expected a Deconstruct, got %T", unit.Functions[0].Body)
	}
	if dec.Name != "Point" || len(dec.Members) != 2 {
		t.Fatalf("unexpected deconstruct shape: %+v", dec)
	}
}

func TestParseMissingParameterIsError(t *testing.T) {
	toks, err := lexer.New([]byte("let f = 1")).Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if _, err := Parse(toks); err == nil {
		t.Fatal("expected a syntax error for a function with no parameters")
	}
}

func TestParseReservedWordAsIdentifierIsError(t *testing.T) {
	toks, err := lexer.New([]byte("let if x = x")).Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if _, err := Parse(toks); err == nil {
		t.Fatal("expected a syntax error using a reserved word as an identifier")
	}
}
