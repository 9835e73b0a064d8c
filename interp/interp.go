package interp

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/linger-lang/linger/ast"
	"github.com/linger-lang/linger/ir"
)

// ControlFlow is the non-exceptional channel statements use to signal
// return, break and continue to their enclosing construct
type ControlFlow int

const (
	FlowNormal ControlFlow = iota
	FlowReturn
	FlowBreak
	FlowContinue
)

// DefaultMaxDepth bounds call nesting before evaluation fails with a
// recursion-limit error instead of exhausting the goroutine stack
const DefaultMaxDepth = 10000

// Options configures an Interpreter
type Options struct {
	// Output receives everything print writes. Defaults to os.Stdout.
	Output io.Writer
	// MaxDepth bounds call nesting. Defaults to DefaultMaxDepth.
	MaxDepth int
}

// Interpreter evaluates core programs. Evaluation is single-threaded and
// depth-first; an Interpreter must not be shared across goroutines.
type Interpreter struct {
	out      io.Writer
	maxDepth int
	depth    int
}

// New returns an Interpreter with the given options
func New(opts Options) *Interpreter {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Interpreter{out: out, maxDepth: maxDepth}
}

// Run evaluates a program and returns the value of its main body. Every
// non-main procedure is bound in the root environment as a Lambda whose
// captured environment is the root itself: top-level procedures close over
// nothing but the procedure table, so they see their own parameters, each
// other, and themselves for recursion. Main is never bound, so a program
// cannot call main.
func (in *Interpreter) Run(prog *ir.Program) (Value, error) {
	root := NewEnv()
	for _, proc := range prog.Procs {
		root.Bind(proc.Name, &Lambda{
			Params: proc.Params,
			Body:   proc.Body,
			Env:    root,
		}, false)
	}

	value, _, err := in.stmts(root.Child(), prog.Main, false)
	if err != nil {
		return nil, err
	}
	return value, nil
}

// stmts evaluates a statement list in env, handling control-flow signals
// the way a block body does: Return short-circuits upward, Break and
// Continue are relayed only when lexically inside a loop.
func (in *Interpreter) stmts(env *Env, stmts []ir.Stmt, inLoop bool) (Value, ControlFlow, error) {
	var last Value = &Void{}
	for _, stmt := range stmts {
		value, flow, err := in.stmt(env, stmt, inLoop)
		if err != nil {
			return nil, FlowNormal, err
		}
		switch flow {
		case FlowReturn:
			return value, FlowReturn, nil
		case FlowBreak:
			if !inLoop {
				return nil, FlowNormal, &RuntimeError{Kind: ErrorBreakNotInLoop}
			}
			return value, FlowBreak, nil
		case FlowContinue:
			if !inLoop {
				return nil, FlowNormal, &RuntimeError{Kind: ErrorContinueNotInLoop}
			}
			return value, FlowContinue, nil
		}
		last = value
	}
	return last, FlowNormal, nil
}

func (in *Interpreter) stmt(env *Env, stmt ir.Stmt, inLoop bool) (Value, ControlFlow, error) {
	switch s := stmt.(type) {
	case *ir.ExprStmt:
		value, err := in.expr(env, s.X)
		if err != nil {
			return nil, FlowNormal, err
		}
		return value, FlowNormal, nil

	case *ir.Let:
		value, err := in.expr(env, s.Value)
		if err != nil {
			return nil, FlowNormal, err
		}
		env.Bind(s.Name, value, s.Const)
		return &Void{}, FlowNormal, nil

	case *ir.Assign:
		value, err := in.expr(env, s.Value)
		if err != nil {
			return nil, FlowNormal, err
		}
		if rerr := env.Assign(s.Name, value); rerr != nil {
			return nil, FlowNormal, rerr
		}
		return &Void{}, FlowNormal, nil

	case *ir.If:
		cond, err := in.condition(env, s.Cond)
		if err != nil {
			return nil, FlowNormal, err
		}
		if cond {
			return in.stmt(env, s.Then, inLoop)
		}
		if s.Else != nil {
			return in.stmt(env, s.Else, inLoop)
		}
		return &Void{}, FlowNormal, nil

	case *ir.While:
		for {
			cond, err := in.condition(env, s.Cond)
			if err != nil {
				return nil, FlowNormal, err
			}
			if !cond {
				return &Void{}, FlowNormal, nil
			}
			value, flow, err := in.stmt(env, s.Body, true)
			if err != nil {
				return nil, FlowNormal, err
			}
			switch flow {
			case FlowReturn:
				return value, FlowReturn, nil
			case FlowBreak:
				return &Void{}, FlowNormal, nil
			}
			// Normal and Continue both re-evaluate the condition
		}

	case *ir.Block:
		return in.stmts(env.Child(), s.Stmts, inLoop)

	case *ir.Return:
		if s.Value == nil {
			return &Void{}, FlowReturn, nil
		}
		value, err := in.expr(env, s.Value)
		if err != nil {
			return nil, FlowNormal, err
		}
		return value, FlowReturn, nil

	case *ir.Break:
		return &Void{}, FlowBreak, nil

	case *ir.Continue:
		return &Void{}, FlowContinue, nil

	default:
		return nil, FlowNormal, fmt.Errorf("unhandled statement %T", stmt)
	}
}

// condition evaluates a loop or branch condition, which must be a Bool
func (in *Interpreter) condition(env *Env, x ir.Expr) (bool, error) {
	value, err := in.expr(env, x)
	if err != nil {
		return false, err
	}
	b, ok := value.(*Bool)
	if !ok {
		return false, badArg(value)
	}
	return b.Value, nil
}

func (in *Interpreter) expr(env *Env, expr ir.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ir.Num:
		return &Num{Value: e.Value}, nil

	case *ir.Bool:
		return &Bool{Value: e.Value}, nil

	case *ir.Str:
		return &Str{Value: e.Value}, nil

	case *ir.Var:
		value, ok := env.Lookup(e.Name)
		if !ok {
			return nil, &RuntimeError{
				Kind:       ErrorUnknownVariable,
				Name:       e.Name,
				Suggestion: env.Suggest(e.Name),
			}
		}
		return value, nil

	case *ir.Lambda:
		return &Lambda{Params: e.Params, Body: e.Body, Env: env}, nil

	case *ir.Binary:
		return in.binary(env, e)

	case *ir.Unary:
		return in.unary(env, e)

	case *ir.Call:
		return in.call(env, e)

	case *ir.PrimitiveCall:
		return in.primitiveCall(env, e)

	default:
		return nil, fmt.Errorf("unhandled expression %T", expr)
	}
}

func (in *Interpreter) binary(env *Env, e *ir.Binary) (Value, error) {
	switch e.Op {
	case ast.LogicAnd, ast.LogicOr:
		return in.logical(env, e)

	case ast.Plus, ast.Minus, ast.Times, ast.Div, ast.Mod:
		left, err := in.expr(env, e.Left)
		if err != nil {
			return nil, err
		}
		right, err := in.expr(env, e.Right)
		if err != nil {
			return nil, err
		}
		return arithmetic(e.Op, left, right)

	case ast.Eq, ast.Ne, ast.Lt, ast.Lte, ast.Gt, ast.Gte:
		left, err := in.expr(env, e.Left)
		if err != nil {
			return nil, err
		}
		right, err := in.expr(env, e.Right)
		if err != nil {
			return nil, err
		}
		return compare(e.Op, left, right)

	default:
		return nil, &RuntimeError{Kind: ErrorUnaryAsBinary, Op: e.Op}
	}
}

// logical implements && and ||. The right operand is not evaluated when
// the left already determines the result.
func (in *Interpreter) logical(env *Env, e *ir.Binary) (Value, error) {
	left, err := in.expr(env, e.Left)
	if err != nil {
		return nil, err
	}
	lb, ok := left.(*Bool)
	if !ok {
		return nil, &RuntimeError{Kind: ErrorExpectedBool, Value: left}
	}

	if e.Op == ast.LogicAnd && !lb.Value {
		return &Bool{Value: false}, nil
	}
	if e.Op == ast.LogicOr && lb.Value {
		return &Bool{Value: true}, nil
	}

	right, err := in.expr(env, e.Right)
	if err != nil {
		return nil, err
	}
	rb, ok := right.(*Bool)
	if !ok {
		return nil, &RuntimeError{Kind: ErrorExpectedBool, Value: right}
	}
	return &Bool{Value: rb.Value}, nil
}

// arithmetic implements + - * / %. All require Num operands except +,
// which also concatenates two Strs.
func arithmetic(op ast.Operator, left, right Value) (Value, error) {
	if op == ast.Plus {
		if ls, ok := left.(*Str); ok {
			rs, ok := right.(*Str)
			if !ok {
				return nil, badArg(left)
			}
			return &Str{Value: ls.Value + rs.Value}, nil
		}
	}

	ln, ok := left.(*Num)
	if !ok {
		return nil, badArg(left)
	}
	rn, ok := right.(*Num)
	if !ok {
		return nil, badArg(right)
	}

	switch op {
	case ast.Plus:
		return &Num{Value: ln.Value + rn.Value}, nil
	case ast.Minus:
		return &Num{Value: ln.Value - rn.Value}, nil
	case ast.Times:
		return &Num{Value: ln.Value * rn.Value}, nil
	case ast.Div:
		if rn.Value == 0 {
			return nil, &RuntimeError{Kind: ErrorDivisionByZero}
		}
		return &Num{Value: ln.Value / rn.Value}, nil
	case ast.Mod:
		if rn.Value == 0 {
			return nil, &RuntimeError{Kind: ErrorDivisionByZero}
		}
		return &Num{Value: ln.Value % rn.Value}, nil
	}
	return nil, badArgs(left, right)
}

// compare implements the comparison operators over same-typed Num, Str and
// Bool operands. Booleans order false before true.
func compare(op ast.Operator, left, right Value) (Value, error) {
	var cmp int
	switch l := left.(type) {
	case *Num:
		r, ok := right.(*Num)
		if !ok {
			return nil, badArgs(left, right)
		}
		switch {
		case l.Value < r.Value:
			cmp = -1
		case l.Value > r.Value:
			cmp = 1
		}
	case *Str:
		r, ok := right.(*Str)
		if !ok {
			return nil, badArgs(left, right)
		}
		cmp = strings.Compare(l.Value, r.Value)
	case *Bool:
		r, ok := right.(*Bool)
		if !ok {
			return nil, badArgs(left, right)
		}
		switch {
		case !l.Value && r.Value:
			cmp = -1
		case l.Value && !r.Value:
			cmp = 1
		}
	default:
		return nil, badArgs(left, right)
	}

	var result bool
	switch op {
	case ast.Eq:
		result = cmp == 0
	case ast.Ne:
		result = cmp != 0
	case ast.Lt:
		result = cmp < 0
	case ast.Lte:
		result = cmp <= 0
	case ast.Gt:
		result = cmp > 0
	case ast.Gte:
		result = cmp >= 0
	}
	return &Bool{Value: result}, nil
}

func (in *Interpreter) unary(env *Env, e *ir.Unary) (Value, error) {
	switch e.Op {
	case ast.Minus:
		value, err := in.expr(env, e.X)
		if err != nil {
			return nil, err
		}
		n, ok := value.(*Num)
		if !ok {
			return nil, badArg(value)
		}
		return &Num{Value: -n.Value}, nil

	case ast.Not:
		value, err := in.expr(env, e.X)
		if err != nil {
			return nil, err
		}
		b, ok := value.(*Bool)
		if !ok {
			return nil, badArg(value)
		}
		return &Bool{Value: !b.Value}, nil

	case ast.PreInc, ast.PreDec, ast.PostInc, ast.PostDec:
		return in.incDec(env, e)

	default:
		return nil, &RuntimeError{Kind: ErrorBinaryAsUnary, Op: e.Op}
	}
}

// incDec implements ++ and --. The operand must be a variable reference;
// the binding is read, stepped by one and written back. Pre forms evaluate
// to the stepped value, post forms to the original.
func (in *Interpreter) incDec(env *Env, e *ir.Unary) (Value, error) {
	v, ok := e.X.(*ir.Var)
	if !ok {
		return nil, &RuntimeError{Kind: ErrorInvalidAssignmentTarget}
	}

	value, found := env.Lookup(v.Name)
	if !found {
		return nil, &RuntimeError{
			Kind:       ErrorUnknownVariable,
			Name:       v.Name,
			Suggestion: env.Suggest(v.Name),
		}
	}
	n, ok := value.(*Num)
	if !ok {
		return nil, badArg(value)
	}

	delta := int64(1)
	if e.Op == ast.PreDec || e.Op == ast.PostDec {
		delta = -1
	}
	stepped := &Num{Value: n.Value + delta}
	if rerr := env.Assign(v.Name, stepped); rerr != nil {
		return nil, rerr
	}

	if e.Op == ast.PreInc || e.Op == ast.PreDec {
		return stepped, nil
	}
	return n, nil
}

// call invokes a lambda value. The body runs in a child of the captured
// environment with parameters bound, never in the caller's environment,
// and control-flow signals cannot escape the call.
func (in *Interpreter) call(env *Env, e *ir.Call) (Value, error) {
	name := "<lambda>"
	if v, ok := e.Callee.(*ir.Var); ok {
		name = v.Name
	}

	callee, err := in.expr(env, e.Callee)
	if err != nil {
		return nil, err
	}
	lambda, ok := callee.(*Lambda)
	if !ok {
		return nil, badArg(callee)
	}

	if len(e.Args) != len(lambda.Params) {
		return nil, &RuntimeError{
			Kind:     ErrorArgMismatch,
			Name:     name,
			Actual:   len(e.Args),
			Expected: len(lambda.Params),
		}
	}

	args := make([]Value, len(e.Args))
	for i, arg := range e.Args {
		args[i], err = in.expr(env, arg)
		if err != nil {
			return nil, err
		}
	}

	if in.depth >= in.maxDepth {
		return nil, &RuntimeError{Kind: ErrorRecursionLimit, Limit: in.maxDepth}
	}
	in.depth++
	defer func() { in.depth-- }()

	frame := lambda.Env.Child()
	for i, param := range lambda.Params {
		frame.Bind(param, args[i], false)
	}

	value, _, err := in.stmts(frame, lambda.Body, false)
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (in *Interpreter) primitiveCall(env *Env, e *ir.PrimitiveCall) (Value, error) {
	switch e.Builtin {
	case ast.Print:
		parts := make([]string, len(e.Args))
		for i, arg := range e.Args {
			value, err := in.expr(env, arg)
			if err != nil {
				return nil, err
			}
			parts[i] = value.Display()
		}
		fmt.Fprint(in.out, strings.Join(parts, " "))
		return &Void{}, nil
	default:
		return nil, fmt.Errorf("unhandled builtin %s", e.Builtin)
	}
}
