package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/linger-lang/linger/ast"
	"github.com/linger-lang/linger/parser"
)

// lower parses source and lowers it to the core form
func lower(t *testing.T, source string) *Program {
	t.Helper()
	prog, err := parser.ParseString(source)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return Transform(prog)
}

func assertMain(t *testing.T, source string, expected []Stmt) {
	t.Helper()
	actual := lower(t, source)
	opts := []cmp.Option{cmpopts.EquateEmpty()}
	if diff := cmp.Diff(expected, actual.Main, opts...); diff != "" {
		t.Errorf("main mismatch (-expected +actual):\n%s", diff)
	}
}

func TestTransformSplitsOutMain(t *testing.T) {
	prog := lower(t, `
		proc helper(x) { return x; }
		proc main() { helper(1); }
	`)

	if len(prog.Procs) != 1 || prog.Procs[0].Name != "helper" {
		t.Fatalf("expected procs to hold only helper, got %+v", prog.Procs)
	}
	if len(prog.Main) != 1 {
		t.Fatalf("expected one main statement, got %d", len(prog.Main))
	}
}

func TestTransformForBecomesWhile(t *testing.T) {
	source := `
		proc main() {
			for (let i = 0; i < 3; i = i + 1) {
				print(i);
			}
		}
	`
	// The loop variable, condition and step live in one block so the
	// variable spans all three clauses.
	expected := []Stmt{
		&Block{Stmts: []Stmt{
			&Let{Name: "i", Value: &Num{Value: 0}},
			&While{
				Cond: &Binary{Op: ast.Lt, Left: &Var{Name: "i"}, Right: &Num{Value: 3}},
				Body: &Block{Stmts: []Stmt{
					&ExprStmt{X: &PrimitiveCall{
						Builtin: ast.Print,
						Args:    []Expr{&Var{Name: "i"}},
					}},
					&Assign{Name: "i", Value: &Binary{
						Op:    ast.Plus,
						Left:  &Var{Name: "i"},
						Right: &Num{Value: 1},
					}},
				}},
			},
		}},
	}

	assertMain(t, source, expected)
}

func TestTransformElseIfChainFoldsRight(t *testing.T) {
	source := `
		proc main() {
			if (a) { x; } else if (b) { y; } else if (c) { z; } else { w; }
		}
	`
	expected := []Stmt{
		&If{
			Cond: &Var{Name: "a"},
			Then: &Block{Stmts: []Stmt{&ExprStmt{X: &Var{Name: "x"}}}},
			Else: &If{
				Cond: &Var{Name: "b"},
				Then: &Block{Stmts: []Stmt{&ExprStmt{X: &Var{Name: "y"}}}},
				Else: &If{
					Cond: &Var{Name: "c"},
					Then: &Block{Stmts: []Stmt{&ExprStmt{X: &Var{Name: "z"}}}},
					Else: &Block{Stmts: []Stmt{&ExprStmt{X: &Var{Name: "w"}}}},
				},
			},
		},
	}

	assertMain(t, source, expected)
}

func TestTransformElseIfWithoutFinalElse(t *testing.T) {
	source := `
		proc main() {
			if (a) { x; } else if (b) { y; }
		}
	`
	expected := []Stmt{
		&If{
			Cond: &Var{Name: "a"},
			Then: &Block{Stmts: []Stmt{&ExprStmt{X: &Var{Name: "x"}}}},
			Else: &If{
				Cond: &Var{Name: "b"},
				Then: &Block{Stmts: []Stmt{&ExprStmt{X: &Var{Name: "y"}}}},
			},
		},
	}

	assertMain(t, source, expected)
}

func TestTransformOperatorAssignment(t *testing.T) {
	source := `
		proc main() {
			let x = 1;
			x += 2;
			x /= 3;
		}
	`
	expected := []Stmt{
		&Let{Name: "x", Value: &Num{Value: 1}},
		&Assign{Name: "x", Value: &Binary{
			Op:    ast.Plus,
			Left:  &Var{Name: "x"},
			Right: &Num{Value: 2},
		}},
		&Assign{Name: "x", Value: &Binary{
			Op:    ast.Div,
			Left:  &Var{Name: "x"},
			Right: &Num{Value: 3},
		}},
	}

	assertMain(t, source, expected)
}

func TestTransformConstMarksBinding(t *testing.T) {
	source := `
		proc main() {
			const limit = 10;
		}
	`
	expected := []Stmt{
		&Let{Name: "limit", Value: &Num{Value: 10}, Const: true},
	}

	assertMain(t, source, expected)
}

func TestTransformLambdaBodies(t *testing.T) {
	source := `
		proc main() {
			let f = (n) => return n;;
			let g = (n) => { print(n); return n; };
		}
	`
	expected := []Stmt{
		&Let{Name: "f", Value: &Lambda{
			Params: []string{"n"},
			Body:   []Stmt{&Return{Value: &Var{Name: "n"}}},
		}},
		&Let{Name: "g", Value: &Lambda{
			Params: []string{"n"},
			Body: []Stmt{
				&ExprStmt{X: &PrimitiveCall{Builtin: ast.Print, Args: []Expr{&Var{Name: "n"}}}},
				&Return{Value: &Var{Name: "n"}},
			},
		}},
	}

	assertMain(t, source, expected)
}
