// Package ast defines the surface syntax tree for Linger programs.
//
// Nodes here mirror the user-facing grammar, including convenience forms
// (for loops, else-if chains, const declarations, operator assignment) that
// are lowered away before evaluation. The minimal evaluated form lives in
// the ir package.
package ast

import (
	"fmt"
	"strings"

	"github.com/linger-lang/linger/lexer"
)

// Node represents any node in the surface AST
type Node interface {
	String() string
	Position() lexer.Position
}

// Stmt represents a statement node
type Stmt interface {
	Node
	stmt()
}

// Expr represents an expression node
type Expr interface {
	Node
	expr()
}

// Program represents the root of a parsed Linger source file
type Program struct {
	Procs []*Procedure
}

func (p *Program) String() string {
	var parts []string
	for _, proc := range p.Procs {
		parts = append(parts, proc.String())
	}
	return strings.Join(parts, "\n")
}

func (p *Program) Position() lexer.Position {
	if len(p.Procs) > 0 {
		return p.Procs[0].Position()
	}
	return lexer.Position{Line: 1, Column: 1}
}

// Procedure represents a top-level procedure declaration
type Procedure struct {
	Name   string
	Params []string
	Body   []Stmt
	Pos    lexer.Position
}

func (p *Procedure) String() string {
	return fmt.Sprintf("proc %s(%s) { ... }", p.Name, strings.Join(p.Params, ", "))
}

func (p *Procedure) Position() lexer.Position { return p.Pos }

// ExprStmt represents an expression evaluated for its effect
type ExprStmt struct {
	X   Expr
	Pos lexer.Position
}

// LetStmt represents a let declaration: let name = expr;
type LetStmt struct {
	Name  string
	Value Expr
	Pos   lexer.Position
}

// ConstStmt represents a const declaration: const name = expr;
type ConstStmt struct {
	Name  string
	Value Expr
	Pos   lexer.Position
}

// AssignStmt represents an assignment: name = expr;
type AssignStmt struct {
	Name  string
	Value Expr
	Pos   lexer.Position
}

// OpAssignStmt represents an operator assignment: name += expr;
type OpAssignStmt struct {
	Op    Operator // Plus, Minus, Times, Div or Mod
	Name  string
	Value Expr
	Pos   lexer.Position
}

// BlockStmt represents a braced statement list
type BlockStmt struct {
	Stmts []Stmt
	Pos   lexer.Position
}

// ElseIf is one `else if (cond) { ... }` clause of an if statement
type ElseIf struct {
	Cond Expr
	Body *BlockStmt
}

// IfStmt represents an if statement with optional else-if chain and else branch
type IfStmt struct {
	Cond    Expr
	Then    *BlockStmt
	ElseIfs []ElseIf
	Else    *BlockStmt // nil when absent
	Pos     lexer.Position
}

// WhileStmt represents a while loop
type WhileStmt struct {
	Cond Expr
	Body *BlockStmt
	Pos  lexer.Position
}

// ForStmt represents a C-style for loop before lowering
type ForStmt struct {
	Init Stmt // let/const/assignment
	Cond Expr
	Step Stmt // assignment-shaped, no trailing semicolon
	Body []Stmt
	Pos  lexer.Position
}

// BreakStmt represents a break statement
type BreakStmt struct {
	Pos lexer.Position
}

// ContinueStmt represents a continue statement
type ContinueStmt struct {
	Pos lexer.Position
}

// ReturnStmt represents a return statement with optional value
type ReturnStmt struct {
	Value Expr // nil for bare `return;`
	Pos   lexer.Position
}

func (s *ExprStmt) stmt()     {}
func (s *LetStmt) stmt()      {}
func (s *ConstStmt) stmt()    {}
func (s *AssignStmt) stmt()   {}
func (s *OpAssignStmt) stmt() {}
func (s *BlockStmt) stmt()    {}
func (s *IfStmt) stmt()       {}
func (s *WhileStmt) stmt()    {}
func (s *ForStmt) stmt()      {}
func (s *BreakStmt) stmt()    {}
func (s *ContinueStmt) stmt() {}
func (s *ReturnStmt) stmt()   {}

func (s *ExprStmt) Position() lexer.Position     { return s.Pos }
func (s *LetStmt) Position() lexer.Position      { return s.Pos }
func (s *ConstStmt) Position() lexer.Position    { return s.Pos }
func (s *AssignStmt) Position() lexer.Position   { return s.Pos }
func (s *OpAssignStmt) Position() lexer.Position { return s.Pos }
func (s *BlockStmt) Position() lexer.Position    { return s.Pos }
func (s *IfStmt) Position() lexer.Position       { return s.Pos }
func (s *WhileStmt) Position() lexer.Position    { return s.Pos }
func (s *ForStmt) Position() lexer.Position      { return s.Pos }
func (s *BreakStmt) Position() lexer.Position    { return s.Pos }
func (s *ContinueStmt) Position() lexer.Position { return s.Pos }
func (s *ReturnStmt) Position() lexer.Position   { return s.Pos }

func (s *ExprStmt) String() string { return s.X.String() + ";" }
func (s *LetStmt) String() string  { return fmt.Sprintf("let %s = %s;", s.Name, s.Value) }
func (s *ConstStmt) String() string {
	return fmt.Sprintf("const %s = %s;", s.Name, s.Value)
}
func (s *AssignStmt) String() string { return fmt.Sprintf("%s = %s;", s.Name, s.Value) }
func (s *OpAssignStmt) String() string {
	return fmt.Sprintf("%s %s= %s;", s.Name, s.Op, s.Value)
}
func (s *BlockStmt) String() string    { return "{ ... }" }
func (s *IfStmt) String() string       { return fmt.Sprintf("if (%s) { ... }", s.Cond) }
func (s *WhileStmt) String() string    { return fmt.Sprintf("while (%s) { ... }", s.Cond) }
func (s *ForStmt) String() string      { return "for (...) { ... }" }
func (s *BreakStmt) String() string    { return "break;" }
func (s *ContinueStmt) String() string { return "continue;" }
func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", s.Value)
}

// NumLit represents an integer literal
type NumLit struct {
	Value int64
	Pos   lexer.Position
}

// BoolLit represents a boolean literal
type BoolLit struct {
	Value bool
	Pos   lexer.Position
}

// StrLit represents a string literal (escapes already resolved)
type StrLit struct {
	Value string
	Pos   lexer.Position
}

// VarRef represents a variable reference
type VarRef struct {
	Name string
	Pos  lexer.Position
}

// BinaryExpr represents a binary operation
type BinaryExpr struct {
	Op    Operator
	Left  Expr
	Right Expr
	Pos   lexer.Position
}

// UnaryExpr represents a unary operation, including pre/post increment
// and decrement
type UnaryExpr struct {
	Op  Operator
	X   Expr
	Pos lexer.Position
}

// CallExpr represents a call whose callee is an arbitrary expression
type CallExpr struct {
	Callee Expr
	Args   []Expr
	Pos    lexer.Position
}

// PrimitiveCall represents a call to a builtin, recognized at parse time.
// Builtins are not first-class: they exist only in call position.
type PrimitiveCall struct {
	Builtin Builtin
	Args    []Expr
	Pos     lexer.Position
}

// LambdaExpr represents an anonymous procedure: (params) => body
type LambdaExpr struct {
	Params []string
	Body   Stmt // single statement or block
	Pos    lexer.Position
}

func (e *NumLit) expr()        {}
func (e *BoolLit) expr()       {}
func (e *StrLit) expr()        {}
func (e *VarRef) expr()        {}
func (e *BinaryExpr) expr()    {}
func (e *UnaryExpr) expr()     {}
func (e *CallExpr) expr()      {}
func (e *PrimitiveCall) expr() {}
func (e *LambdaExpr) expr()    {}

func (e *NumLit) Position() lexer.Position        { return e.Pos }
func (e *BoolLit) Position() lexer.Position       { return e.Pos }
func (e *StrLit) Position() lexer.Position        { return e.Pos }
func (e *VarRef) Position() lexer.Position        { return e.Pos }
func (e *BinaryExpr) Position() lexer.Position    { return e.Pos }
func (e *UnaryExpr) Position() lexer.Position     { return e.Pos }
func (e *CallExpr) Position() lexer.Position      { return e.Pos }
func (e *PrimitiveCall) Position() lexer.Position { return e.Pos }
func (e *LambdaExpr) Position() lexer.Position    { return e.Pos }

func (e *NumLit) String() string  { return fmt.Sprintf("%d", e.Value) }
func (e *BoolLit) String() string { return fmt.Sprintf("%t", e.Value) }
func (e *StrLit) String() string  { return fmt.Sprintf("%q", e.Value) }
func (e *VarRef) String() string  { return e.Name }
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}
func (e *UnaryExpr) String() string {
	switch e.Op {
	case PostInc, PostDec:
		return fmt.Sprintf("(%s%s)", e.X, e.Op)
	default:
		return fmt.Sprintf("(%s%s)", e.Op, e.X)
	}
}
func (e *CallExpr) String() string {
	return fmt.Sprintf("%s(%s)", e.Callee, exprList(e.Args))
}
func (e *PrimitiveCall) String() string {
	return fmt.Sprintf("%s(%s)", e.Builtin, exprList(e.Args))
}
func (e *LambdaExpr) String() string {
	return fmt.Sprintf("(%s) => ...", strings.Join(e.Params, ", "))
}

func exprList(args []Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}
