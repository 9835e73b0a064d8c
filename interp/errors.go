package interp

import (
	"fmt"
	"strings"

	"github.com/linger-lang/linger/ast"
)

// ErrorKind identifies the category of a runtime error
type ErrorKind int

const (
	// ErrorUnknownVariable reports a name with no reachable binding
	ErrorUnknownVariable ErrorKind = iota
	// ErrorBadArg reports one value of the wrong type for an operation
	ErrorBadArg
	// ErrorBadArgs reports several values of the wrong type for an operation
	ErrorBadArgs
	// ErrorArgMismatch reports a call with the wrong number of arguments
	ErrorArgMismatch
	// ErrorExpectedBool reports a non-boolean operand to a logical operator
	ErrorExpectedBool
	// ErrorBinaryAsUnary reports a binary-only operator in unary position
	ErrorBinaryAsUnary
	// ErrorUnaryAsBinary reports a unary-only operator in binary position
	ErrorUnaryAsBinary
	// ErrorBreakNotInLoop reports a break outside any loop
	ErrorBreakNotInLoop
	// ErrorContinueNotInLoop reports a continue outside any loop
	ErrorContinueNotInLoop
	// ErrorInvalidAssignmentTarget reports increment or decrement of a
	// non-variable operand
	ErrorInvalidAssignmentTarget
	// ErrorAssignToConst reports assignment to a const binding
	ErrorAssignToConst
	// ErrorDivisionByZero reports division or modulo by zero
	ErrorDivisionByZero
	// ErrorRecursionLimit reports call nesting past the configured limit
	ErrorRecursionLimit
)

// RuntimeError describes why evaluation failed
type RuntimeError struct {
	Kind       ErrorKind
	Name       string       // variable or procedure name
	Value      Value        // for ErrorBadArg and ErrorExpectedBool
	Values     []Value      // for ErrorBadArgs
	Op         ast.Operator // for the operator-arity kinds
	Actual     int          // argument count given
	Expected   int          // argument count required
	Limit      int          // for ErrorRecursionLimit
	Suggestion string       // closest bound name, for ErrorUnknownVariable
}

func (e *RuntimeError) Error() string {
	switch e.Kind {
	case ErrorUnknownVariable:
		if e.Suggestion != "" {
			return fmt.Sprintf("unknown variable %q, did you mean %q?", e.Name, e.Suggestion)
		}
		return fmt.Sprintf("unknown variable %q", e.Name)
	case ErrorBadArg:
		return fmt.Sprintf("bad argument %q", e.Value.Display())
	case ErrorBadArgs:
		parts := make([]string, len(e.Values))
		for i, v := range e.Values {
			parts[i] = v.Display()
		}
		return fmt.Sprintf("bad args: [%s]", strings.Join(parts, ", "))
	case ErrorArgMismatch:
		return fmt.Sprintf("procedure %q expected %d args, instead got %d",
			e.Name, e.Expected, e.Actual)
	case ErrorExpectedBool:
		return fmt.Sprintf("expected boolean value, instead got %s", e.Value.Display())
	case ErrorBinaryAsUnary:
		return fmt.Sprintf("binary operator %q used as unary operator", e.Op)
	case ErrorUnaryAsBinary:
		return fmt.Sprintf("unary operator %q used as binary operator", e.Op)
	case ErrorBreakNotInLoop:
		return "tried to break while not within a loop"
	case ErrorContinueNotInLoop:
		return "continue statement found outside of a loop"
	case ErrorInvalidAssignmentTarget:
		return "invalid assignment target"
	case ErrorAssignToConst:
		return fmt.Sprintf("cannot assign to constant %q", e.Name)
	case ErrorDivisionByZero:
		return "division by zero"
	case ErrorRecursionLimit:
		return fmt.Sprintf("maximum recursion depth exceeded (%d)", e.Limit)
	default:
		return "unknown runtime error"
	}
}

func badArg(v Value) *RuntimeError {
	return &RuntimeError{Kind: ErrorBadArg, Value: v}
}

func badArgs(vs ...Value) *RuntimeError {
	return &RuntimeError{Kind: ErrorBadArgs, Values: vs}
}
