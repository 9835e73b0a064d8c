// Package ir defines the core form of a Linger program and the lowering
// from the surface AST into it.
//
// The core form is the minimal subset the interpreter evaluates: no for
// loops, no else-if chains, no operator assignment. Everything the surface
// syntax adds is expanded here into these nodes.
package ir

import (
	"github.com/linger-lang/linger/ast"
)

// Program is a lowered Linger program with the main procedure split out.
// Main is evaluated directly rather than bound as a value, so a program
// cannot call main recursively.
type Program struct {
	Procs []*Procedure
	Main  []Stmt
}

// Procedure is a lowered top-level procedure
type Procedure struct {
	Name   string
	Params []string
	Body   []Stmt
}

// Stmt is a core statement
type Stmt interface {
	stmt()
}

// Expr is a core expression
type Expr interface {
	expr()
}

// ExprStmt evaluates an expression for its effect
type ExprStmt struct {
	X Expr
}

// Let binds a name in the innermost scope. Const declarations lower to a
// Let with the Const marker set; the binding then rejects reassignment.
type Let struct {
	Name  string
	Value Expr
	Const bool
}

// Assign mutates an existing binding reachable through the scope chain
type Assign struct {
	Name  string
	Value Expr
}

// If is a two-way branch. Else-if chains fold into nested Ifs in the
// else position. Else is nil when absent.
type If struct {
	Cond Expr
	Then Stmt
	Else Stmt
}

// While is the only loop in the core form
type While struct {
	Cond Expr
	Body Stmt
}

// Block evaluates statements in a fresh child scope
type Block struct {
	Stmts []Stmt
}

// Return exits the enclosing procedure. Value is nil for a bare return,
// which yields Void.
type Return struct {
	Value Expr
}

// Break exits the innermost loop
type Break struct{}

// Continue skips to the next iteration of the innermost loop
type Continue struct{}

func (s *ExprStmt) stmt() {}
func (s *Let) stmt()      {}
func (s *Assign) stmt()   {}
func (s *If) stmt()       {}
func (s *While) stmt()    {}
func (s *Block) stmt()    {}
func (s *Return) stmt()   {}
func (s *Break) stmt()    {}
func (s *Continue) stmt() {}

// Num is an integer literal
type Num struct {
	Value int64
}

// Bool is a boolean literal
type Bool struct {
	Value bool
}

// Str is a string literal
type Str struct {
	Value string
}

// Var reads a binding from the scope chain
type Var struct {
	Name string
}

// Binary applies an operator to two operands
type Binary struct {
	Op    ast.Operator
	Left  Expr
	Right Expr
}

// Unary applies an operator to one operand
type Unary struct {
	Op ast.Operator
	X  Expr
}

// Call invokes a procedure value with arguments
type Call struct {
	Callee Expr
	Args   []Expr
}

// PrimitiveCall invokes a builtin
type PrimitiveCall struct {
	Builtin ast.Builtin
	Args    []Expr
}

// Lambda is an anonymous procedure literal. Its body is a statement list
// evaluated in a child of the environment captured at evaluation time.
type Lambda struct {
	Params []string
	Body   []Stmt
}

func (e *Num) expr()           {}
func (e *Bool) expr()          {}
func (e *Str) expr()           {}
func (e *Var) expr()           {}
func (e *Binary) expr()        {}
func (e *Unary) expr()         {}
func (e *Call) expr()          {}
func (e *PrimitiveCall) expr() {}
func (e *Lambda) expr()        {}
