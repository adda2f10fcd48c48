// Package driver wires the pipeline stages — lex, parse, rewrite,
// reduce, bracket-abstract, emit — into the single entry point the CLI
// calls, then invokes the host Go compiler on the result (spec §4.7),
// mirroring the Rust prototype's bin.rs.
package driver

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"ramify/internal/bracket"
	"ramify/internal/combinator"
	"ramify/internal/emit"
	"ramify/internal/lexer"
	"ramify/internal/parser"
	"ramify/internal/prelude"
	"ramify/internal/reduce"
	"ramify/internal/rewrite"
)

// Stage identifies which pipeline phase produced an error, so the CLI can
// report it in the Rust prototype's "<stage> error: ..." shape and pick
// an exit code (DESIGN.md, deviation 4: distinct exit codes for a
// diagnosable source error vs. a failed host build).
type Stage int

const (
	StageLex Stage = iota
	StageParse
	StageRewrite
	StageReduce
	StageBracket
	StageEmit
	StageBuild
)

func (s Stage) String() string {
	switch s {
	case StageLex:
		return "lexical"
	case StageParse:
		return "syntax"
	case StageRewrite:
		return "rewrite"
	case StageReduce:
		return "reduction"
	case StageBracket:
		return "abstraction"
	case StageEmit:
		return "emission"
	case StageBuild:
		return "build"
	default:
		return "unknown"
	}
}

// Error wraps a pipeline failure with the stage it occurred at.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string { return fmt.Sprintf("%s error: %s", e.Stage, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// Result is what a successful Compile call produces.
type Result struct {
	// Combinator is the fully-reduced, bracket-abstracted program term
	// for main — useful for -d/--debug output (spec §4.7).
	Combinator combinator.Term
	// Source is the full OUTPUT.go text: the prelude followed by the
	// compiled expression inside func main (spec §4.6, §4.7).
	Source string
	// Warnings carries any non-fatal reducer diagnostics (spec §4.3
	// Diagnostics, e.g. if/case branch arity mismatches).
	Warnings []reduce.Warning
}

// Compile runs every stage short of invoking the host Go compiler,
// recovering from the emitter's internal panics (the parser recovers its
// own inside parser.Parse) and returning them as errors the same way the
// Rust prototype's `?` propagation does (spec §7).
func Compile(src []byte) (result *Result, err *Error) {
	defer func() {
		if r := recover(); r != nil {
			err = &Error{Stage: StageEmit, Err: fmt.Errorf("%v", r)}
		}
	}()

	toks, lexErr := lexer.New(src).Scan()
	if lexErr != nil {
		return nil, &Error{Stage: StageLex, Err: lexErr}
	}

	unit, parseErr := parser.Parse(toks)
	if parseErr != nil {
		return nil, &Error{Stage: StageParse, Err: parseErr}
	}

	unit, rewriteErr := rewrite.Run(unit)
	if rewriteErr != nil {
		return nil, &Error{Stage: StageRewrite, Err: rewriteErr}
	}

	r := reduce.New()
	lambdaTerm, reduceErr := r.Unit(unit)
	if reduceErr != nil {
		return nil, &Error{Stage: StageReduce, Err: reduceErr}
	}

	combTerm, bracketErr := bracket.Convert(lambdaTerm)
	if bracketErr != nil {
		return nil, &Error{Stage: StageBracket, Err: bracketErr}
	}

	body := emit.Term(combTerm)
	source := prelude.Source + body + "\n}\n"

	return &Result{Combinator: combTerm, Source: source, Warnings: r.Warnings}, nil
}

// exeSuffix mirrors Rust's env::consts::EXE_SUFFIX: ".exe" on Windows,
// empty everywhere else.
func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}

// Build writes result.Source to a scratch Go file next to outPath,
// shells out to `go build`, and always removes the scratch file — the
// same write/build/cleanup sequence as the Rust prototype's OUTPUT.go,
// renamed to avoid colliding with a real concurrent invocation.
func Build(result *Result, outPath string) error {
	dir := filepath.Dir(outPath)
	if dir == "" {
		dir = "."
	}
	scratch, err := os.CreateTemp(dir, "ramify-output-*.go")
	if err != nil {
		return &Error{Stage: StageBuild, Err: err}
	}
	scratchPath := scratch.Name()
	defer os.Remove(scratchPath)

	if _, err := scratch.WriteString(result.Source); err != nil {
		scratch.Close()
		return &Error{Stage: StageBuild, Err: err}
	}
	if err := scratch.Close(); err != nil {
		return &Error{Stage: StageBuild, Err: err}
	}

	cmd := exec.Command("go", "build", "-o", outPath+exeSuffix(), scratchPath)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return &Error{Stage: StageBuild, Err: fmt.Errorf("go build: %w\n%s", err, out)}
	}
	return nil
}
