package ir

import (
	"github.com/linger-lang/linger/ast"
)

// Transform lowers a surface program into the core form and splits out the
// body of main. The parser has already guaranteed that main exists.
func Transform(prog *ast.Program) *Program {
	out := &Program{}
	for _, proc := range prog.Procs {
		body := transformStmts(proc.Body)
		if proc.Name == "main" {
			out.Main = body
			continue
		}
		out.Procs = append(out.Procs, &Procedure{
			Name:   proc.Name,
			Params: proc.Params,
			Body:   body,
		})
	}
	return out
}

func transformStmts(stmts []ast.Stmt) []Stmt {
	out := make([]Stmt, len(stmts))
	for i, s := range stmts {
		out[i] = transformStmt(s)
	}
	return out
}

func transformStmt(stmt ast.Stmt) Stmt {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		return &ExprStmt{X: transformExpr(s.X)}

	case *ast.LetStmt:
		return &Let{Name: s.Name, Value: transformExpr(s.Value)}

	case *ast.ConstStmt:
		return &Let{Name: s.Name, Value: transformExpr(s.Value), Const: true}

	case *ast.AssignStmt:
		return &Assign{Name: s.Name, Value: transformExpr(s.Value)}

	case *ast.OpAssignStmt:
		// x += e becomes x = x + e
		return &Assign{
			Name: s.Name,
			Value: &Binary{
				Op:    s.Op,
				Left:  &Var{Name: s.Name},
				Right: transformExpr(s.Value),
			},
		}

	case *ast.IfStmt:
		// else-if clauses fold right into nested Ifs, so the trailing
		// else binds to the innermost condition
		var elseStmt Stmt
		if s.Else != nil {
			elseStmt = transformStmt(s.Else)
		}
		for i := len(s.ElseIfs) - 1; i >= 0; i-- {
			clause := s.ElseIfs[i]
			elseStmt = &If{
				Cond: transformExpr(clause.Cond),
				Then: transformStmt(clause.Body),
				Else: elseStmt,
			}
		}
		return &If{
			Cond: transformExpr(s.Cond),
			Then: transformStmt(s.Then),
			Else: elseStmt,
		}

	case *ast.WhileStmt:
		return &While{
			Cond: transformExpr(s.Cond),
			Body: transformStmt(s.Body),
		}

	case *ast.ForStmt:
		// for (init; cond; step) { body } becomes
		// { init; while (cond) { body...; step } }
		// The init statement and the while loop share one block so the
		// loop variable is visible to the condition, body and step.
		body := transformStmts(s.Body)
		body = append(body, transformStmt(s.Step))
		return &Block{Stmts: []Stmt{
			transformStmt(s.Init),
			&While{
				Cond: transformExpr(s.Cond),
				Body: &Block{Stmts: body},
			},
		}}

	case *ast.BlockStmt:
		return &Block{Stmts: transformStmts(s.Stmts)}

	case *ast.ReturnStmt:
		if s.Value == nil {
			return &Return{}
		}
		return &Return{Value: transformExpr(s.Value)}

	case *ast.BreakStmt:
		return &Break{}

	case *ast.ContinueStmt:
		return &Continue{}

	default:
		return nil
	}
}

func transformExpr(expr ast.Expr) Expr {
	switch e := expr.(type) {
	case *ast.NumLit:
		return &Num{Value: e.Value}

	case *ast.BoolLit:
		return &Bool{Value: e.Value}

	case *ast.StrLit:
		return &Str{Value: e.Value}

	case *ast.VarRef:
		return &Var{Name: e.Name}

	case *ast.BinaryExpr:
		return &Binary{
			Op:    e.Op,
			Left:  transformExpr(e.Left),
			Right: transformExpr(e.Right),
		}

	case *ast.UnaryExpr:
		return &Unary{Op: e.Op, X: transformExpr(e.X)}

	case *ast.CallExpr:
		return &Call{
			Callee: transformExpr(e.Callee),
			Args:   transformExprs(e.Args),
		}

	case *ast.PrimitiveCall:
		return &PrimitiveCall{
			Builtin: e.Builtin,
			Args:    transformExprs(e.Args),
		}

	case *ast.LambdaExpr:
		var body []Stmt
		if block, ok := e.Body.(*ast.BlockStmt); ok {
			body = transformStmts(block.Stmts)
		} else {
			body = []Stmt{transformStmt(e.Body)}
		}
		return &Lambda{Params: e.Params, Body: body}

	default:
		return nil
	}
}

func transformExprs(exprs []ast.Expr) []Expr {
	out := make([]Expr, len(exprs))
	for i, e := range exprs {
		out[i] = transformExpr(e)
	}
	return out
}
