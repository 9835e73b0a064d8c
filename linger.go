// Package linger runs Linger programs: tokenize, parse, lower, evaluate.
//
// The stages are exposed individually by the lexer, parser, ir and interp
// packages; this package wires them into one pipeline and tags failures
// with the stage they came from.
package linger

import (
	"github.com/linger-lang/linger/interp"
	"github.com/linger-lang/linger/ir"
	"github.com/linger-lang/linger/lexer"
	"github.com/linger-lang/linger/parser"
)

// Stage names the pipeline stage an error came from
type Stage string

const (
	StageTokenize  Stage = "tokenize"
	StageParse     Stage = "parse"
	StageInterpret Stage = "interpret"
)

// Error wraps a stage failure. Its message is the underlying error's
// message unchanged; the stage is carried for callers that want it.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// Compile tokenizes, parses and lowers source into the core form
func Compile(source string) (*ir.Program, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, &Error{Stage: StageTokenize, Err: err}
	}
	prog, err := parser.Parse(tokens)
	if err != nil {
		return nil, &Error{Stage: StageParse, Err: err}
	}
	return ir.Transform(prog), nil
}

// Run compiles and evaluates source with default interpreter options,
// returning the value of the program's main body
func Run(source string) (interp.Value, error) {
	return RunWith(source, interp.Options{})
}

// RunWith compiles and evaluates source with the given interpreter options
func RunWith(source string, opts interp.Options) (interp.Value, error) {
	prog, err := Compile(source)
	if err != nil {
		return nil, err
	}
	value, err := interp.New(opts).Run(prog)
	if err != nil {
		return nil, &Error{Stage: StageInterpret, Err: err}
	}
	return value, nil
}
