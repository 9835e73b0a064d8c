// Package parser builds a surface AST from a token stream.
//
// The grammar is parsed by recursive descent. Binary expressions use one
// shared left-associative helper per precedence tier, from logical-or down
// to unary and call expressions. The only backtracking point is the open
// paren of a terminal expression, which starts either a lambda or a
// parenthesized expression; the parser tries a parameter list first and
// falls back on a generic unexpected-token failure.
package parser

import (
	"errors"
	"strconv"

	"github.com/linger-lang/linger/ast"
	"github.com/linger-lang/linger/lexer"
)

// Parse builds a Program from tokens. The first error aborts the parse.
// The returned program includes the main procedure; callers that need main
// split out lower the program through the ir package.
func Parse(tokens []lexer.Token) (*ast.Program, error) {
	p := &parser{tokens: tokens}
	if n := len(tokens); n > 0 {
		last := tokens[n-1]
		p.eofPos = lexer.Position{
			Line:   last.Position.Line,
			Column: last.Position.Column + len(last.Text),
			Offset: last.Position.Offset + len(last.Text),
		}
	} else {
		p.eofPos = lexer.Position{Line: 1, Column: 1}
	}

	prog, err := p.program()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(prog.Procs))
	hasMain := false
	for _, proc := range prog.Procs {
		if seen[proc.Name] {
			return nil, &ParseError{Kind: ErrorDuplicateProc, Name: proc.Name}
		}
		seen[proc.Name] = true
		if proc.Name == "main" {
			hasMain = true
		}
	}
	if !hasMain {
		return nil, &ParseError{Kind: ErrorNoMain}
	}

	return prog, nil
}

// ParseString tokenizes and parses source in one step
func ParseString(source string) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

type parser struct {
	tokens []lexer.Token
	pos    int
	eofPos lexer.Position
}

// program parses zero or more procedure declarations up to end of input
func (p *parser) program() (*ast.Program, error) {
	var procs []*ast.Procedure
	for p.at(lexer.PROC) && p.peekIs(2, lexer.LPAREN) {
		proc, err := p.procedure()
		if err != nil {
			return nil, err
		}
		procs = append(procs, proc)
	}
	if !p.at(lexer.EOF) {
		return nil, p.unexpected()
	}
	return &ast.Program{Procs: procs}, nil
}

func (p *parser) procedure() (*ast.Procedure, error) {
	pos := p.current().Position
	p.advance() // proc

	name := p.current()
	if name.IsKeyword() {
		return nil, &ParseError{Kind: ErrorKeywordAsProc, Keyword: name.Text}
	}
	if !p.at(lexer.IDENTIFIER) {
		return nil, p.unexpected()
	}
	p.advance()
	p.advance() // lparen, checked by the caller

	params, err := p.params()
	if err != nil {
		return nil, err
	}

	body, err := p.requireBlock()
	if err != nil {
		return nil, err
	}

	return &ast.Procedure{Name: name.Text, Params: params, Body: body.Stmts, Pos: pos}, nil
}

// params parses a parameter list after the opening paren, consuming the
// closing paren
func (p *parser) params() ([]string, error) {
	if p.at(lexer.RPAREN) {
		p.advance()
		return []string{}, nil
	}

	var params []string
	for {
		tok := p.current()
		if tok.IsKeyword() {
			return nil, &ParseError{Kind: ErrorKeywordAsParam, Keyword: tok.Text}
		}
		if !p.at(lexer.IDENTIFIER) {
			return nil, p.unexpected()
		}
		params = append(params, tok.Text)
		p.advance()

		switch {
		case p.at(lexer.RPAREN):
			p.advance()
			return params, nil
		case p.at(lexer.COMMA):
			if p.peekIs(1, lexer.RPAREN) {
				return nil, p.unexpected() // trailing comma
			}
			p.advance()
		default:
			return nil, p.unexpected()
		}
	}
}

// statement parses a single statement. parseSemicolon controls whether
// expression-shaped statements consume a trailing semicolon; for-loop step
// clauses and lambda bodies pass false.
func (p *parser) statement(parseSemicolon bool) (ast.Stmt, error) {
	switch {
	case p.at(lexer.LET) && p.peek(1).IsKeyword():
		return nil, &ParseError{Kind: ErrorKeywordAsVar, Keyword: p.peek(1).Text}
	case p.at(lexer.CONST) && p.peek(1).IsKeyword():
		return nil, &ParseError{Kind: ErrorKeywordAsVar, Keyword: p.peek(1).Text}

	case p.at(lexer.LET) && p.peekIs(1, lexer.IDENTIFIER) && p.peekIs(2, lexer.EQUALS):
		pos := p.current().Position
		p.advance()
		name := p.current().Text
		p.advance()
		p.advance()
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.semicolon(parseSemicolon); err != nil {
			return nil, err
		}
		return &ast.LetStmt{Name: name, Value: value, Pos: pos}, nil

	case p.at(lexer.CONST) && p.peekIs(1, lexer.IDENTIFIER) && p.peekIs(2, lexer.EQUALS):
		pos := p.current().Position
		p.advance()
		name := p.current().Text
		p.advance()
		p.advance()
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.semicolon(parseSemicolon); err != nil {
			return nil, err
		}
		return &ast.ConstStmt{Name: name, Value: value, Pos: pos}, nil

	case p.current().IsKeyword() && p.peekIs(1, lexer.EQUALS):
		return nil, &ParseError{Kind: ErrorKeywordAsVar, Keyword: p.current().Text}

	case p.at(lexer.IDENTIFIER) && p.peekIs(1, lexer.EQUALS):
		tok := p.current()
		p.advance()
		p.advance()
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.semicolon(parseSemicolon); err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Name: tok.Text, Value: value, Pos: tok.Position}, nil

	case p.at(lexer.IDENTIFIER) && isAssignOpToken(p.peek(1).Type):
		tok := p.current()
		p.advance()
		op := assignOps[p.current().Type]
		p.advance()
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.semicolon(parseSemicolon); err != nil {
			return nil, err
		}
		return &ast.OpAssignStmt{Op: op, Name: tok.Text, Value: value, Pos: tok.Position}, nil

	case p.at(lexer.IF) && p.peekIs(1, lexer.LPAREN):
		return p.ifStmt()
	case p.at(lexer.WHILE) && p.peekIs(1, lexer.LPAREN):
		return p.whileStmt()
	case p.at(lexer.FOR) && p.peekIs(1, lexer.LPAREN):
		return p.forStmt()

	case p.at(lexer.RETURN):
		pos := p.current().Position
		p.advance()
		if p.at(lexer.SEMICOLON) {
			p.advance()
			return &ast.ReturnStmt{Pos: pos}, nil
		}
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.ReturnStmt{Value: value, Pos: pos}, nil

	case p.at(lexer.BREAK):
		pos := p.current().Position
		p.advance()
		if err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.BreakStmt{Pos: pos}, nil

	case p.at(lexer.CONTINUE):
		pos := p.current().Position
		p.advance()
		if err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.ContinueStmt{Pos: pos}, nil

	case p.at(lexer.LBRACE):
		return p.block()

	default:
		pos := p.current().Position
		x, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.semicolon(parseSemicolon); err != nil {
			return nil, err
		}
		return &ast.ExprStmt{X: x, Pos: pos}, nil
	}
}

// block parses a braced statement list, consuming both braces
func (p *parser) block() (*ast.BlockStmt, error) {
	pos := p.current().Position
	p.advance() // lbrace

	var stmts []ast.Stmt
	for !p.at(lexer.RBRACE) {
		if p.at(lexer.EOF) {
			return nil, p.unexpected()
		}
		stmt, err := p.statement(true)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	p.advance() // rbrace

	return &ast.BlockStmt{Stmts: stmts, Pos: pos}, nil
}

// requireBlock parses a statement that must be a braced block, as the
// bodies of procedures, conditionals and loops must be
func (p *parser) requireBlock() (*ast.BlockStmt, error) {
	if !p.at(lexer.LBRACE) {
		return nil, &ParseError{Kind: ErrorExpectedBlock}
	}
	return p.block()
}

func (p *parser) ifStmt() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance() // if
	p.advance() // lparen

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	then, err := p.requireBlock()
	if err != nil {
		return nil, err
	}

	var elseIfs []ast.ElseIf
	for p.at(lexer.ELSE) && p.peekIs(1, lexer.IF) && p.peekIs(2, lexer.LPAREN) {
		p.advance()
		p.advance()
		p.advance()
		elseCond, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		elseBody, err := p.requireBlock()
		if err != nil {
			return nil, err
		}
		elseIfs = append(elseIfs, ast.ElseIf{Cond: elseCond, Body: elseBody})
	}

	var elseBlock *ast.BlockStmt
	if p.at(lexer.ELSE) {
		p.advance()
		elseBlock, err = p.requireBlock()
		if err != nil {
			return nil, err
		}
	}

	return &ast.IfStmt{Cond: cond, Then: then, ElseIfs: elseIfs, Else: elseBlock, Pos: pos}, nil
}

func (p *parser) whileStmt() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance() // while
	p.advance() // lparen

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.requireBlock()
	if err != nil {
		return nil, err
	}

	return &ast.WhileStmt{Cond: cond, Body: body, Pos: pos}, nil
}

func (p *parser) forStmt() (ast.Stmt, error) {
	pos := p.current().Position
	p.advance() // for
	p.advance() // lparen

	init, err := p.statement(true)
	if err != nil {
		return nil, err
	}
	if !isAssignOrInit(init) {
		return nil, &ParseError{Kind: ErrorExpectedAssignOrInit}
	}

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}

	step, err := p.statement(false)
	if err != nil {
		return nil, err
	}
	if !isAssign(step) {
		return nil, &ParseError{Kind: ErrorExpectedAssign}
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}

	body, err := p.requireBlock()
	if err != nil {
		return nil, err
	}

	return &ast.ForStmt{Init: init, Cond: cond, Step: step, Body: body.Stmts, Pos: pos}, nil
}

// isAssign reports whether a statement mutates a binding: assignment,
// operator assignment, or a bare increment/decrement expression
func isAssign(stmt ast.Stmt) bool {
	switch s := stmt.(type) {
	case *ast.AssignStmt, *ast.OpAssignStmt:
		return true
	case *ast.ExprStmt:
		if u, ok := s.X.(*ast.UnaryExpr); ok {
			switch u.Op {
			case ast.PreInc, ast.PreDec, ast.PostInc, ast.PostDec:
				return true
			}
		}
	}
	return false
}

func isAssignOrInit(stmt ast.Stmt) bool {
	switch stmt.(type) {
	case *ast.LetStmt, *ast.ConstStmt:
		return true
	}
	return isAssign(stmt)
}

// Expression precedence ladder, loosest first. Each tier delegates to the
// next tighter one through binaryExpr.

var (
	logicOrOps  = map[lexer.TokenType]ast.Operator{lexer.OR_OR: ast.LogicOr}
	logicAndOps = map[lexer.TokenType]ast.Operator{lexer.AND_AND: ast.LogicAnd}
	equalityOps = map[lexer.TokenType]ast.Operator{
		lexer.EQ_EQ:  ast.Eq,
		lexer.NOT_EQ: ast.Ne,
	}
	relationalOps = map[lexer.TokenType]ast.Operator{
		lexer.LT:    ast.Lt,
		lexer.LT_EQ: ast.Lte,
		lexer.GT:    ast.Gt,
		lexer.GT_EQ: ast.Gte,
	}
	additiveOps = map[lexer.TokenType]ast.Operator{
		lexer.PLUS:  ast.Plus,
		lexer.MINUS: ast.Minus,
	}
	multiplicativeOps = map[lexer.TokenType]ast.Operator{
		lexer.MULTIPLY: ast.Times,
		lexer.DIVIDE:   ast.Div,
		lexer.MODULO:   ast.Mod,
	}

	assignOps = map[lexer.TokenType]ast.Operator{
		lexer.PLUS_ASSIGN:     ast.Plus,
		lexer.MINUS_ASSIGN:    ast.Minus,
		lexer.MULTIPLY_ASSIGN: ast.Times,
		lexer.DIVIDE_ASSIGN:   ast.Div,
		lexer.MODULO_ASSIGN:   ast.Mod,
	}
)

func isAssignOpToken(typ lexer.TokenType) bool {
	_, ok := assignOps[typ]
	return ok
}

func (p *parser) expression() (ast.Expr, error) {
	return p.logicalOrExpr()
}

func (p *parser) logicalOrExpr() (ast.Expr, error) {
	return p.binaryExpr(p.logicalAndExpr, logicOrOps)
}

func (p *parser) logicalAndExpr() (ast.Expr, error) {
	return p.binaryExpr(p.equalityExpr, logicAndOps)
}

func (p *parser) equalityExpr() (ast.Expr, error) {
	return p.binaryExpr(p.relationalExpr, equalityOps)
}

func (p *parser) relationalExpr() (ast.Expr, error) {
	return p.binaryExpr(p.additiveExpr, relationalOps)
}

func (p *parser) additiveExpr() (ast.Expr, error) {
	return p.binaryExpr(p.multiplicativeExpr, additiveOps)
}

func (p *parser) multiplicativeExpr() (ast.Expr, error) {
	return p.binaryExpr(p.unaryExpr, multiplicativeOps)
}

// binaryExpr parses a left-associative run of operators from one
// precedence tier
func (p *parser) binaryExpr(next func() (ast.Expr, error), ops map[lexer.TokenType]ast.Operator) (ast.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := ops[p.current().Type]
		if !ok {
			return left, nil
		}
		pos := p.current().Position
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Pos: pos}
	}
}

func (p *parser) unaryExpr() (ast.Expr, error) {
	switch p.current().Type {
	case lexer.MINUS, lexer.NOT:
		op := ast.Minus
		if p.at(lexer.NOT) {
			op = ast.Not
		}
		pos := p.current().Position
		p.advance()
		x, err := p.unaryExpr()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: op, X: x, Pos: pos}, nil

	case lexer.INCREMENT, lexer.DECREMENT:
		op := ast.PreInc
		if p.at(lexer.DECREMENT) {
			op = ast.PreDec
		}
		pos := p.current().Position
		p.advance()
		x, err := p.callExpr()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: op, X: x, Pos: pos}, nil
	}

	x, err := p.callExpr()
	if err != nil {
		return nil, err
	}

	switch p.current().Type {
	case lexer.INCREMENT:
		pos := p.current().Position
		p.advance()
		return &ast.UnaryExpr{Op: ast.PostInc, X: x, Pos: pos}, nil
	case lexer.DECREMENT:
		pos := p.current().Position
		p.advance()
		return &ast.UnaryExpr{Op: ast.PostDec, X: x, Pos: pos}, nil
	}
	return x, nil
}

// callExpr parses a terminal expression followed by any number of argument
// lists. A call whose callee is a builtin name becomes a PrimitiveCall.
func (p *parser) callExpr() (ast.Expr, error) {
	x, err := p.terminalExpr()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.LPAREN) {
		pos := p.current().Position
		p.advance()
		args, err := p.args()
		if err != nil {
			return nil, err
		}
		if builtin, ok := checkBuiltin(x); ok {
			x = &ast.PrimitiveCall{Builtin: builtin, Args: args, Pos: pos}
		} else {
			x = &ast.CallExpr{Callee: x, Args: args, Pos: pos}
		}
	}
	return x, nil
}

// checkBuiltin reports whether an expression names a builtin procedure
func checkBuiltin(x ast.Expr) (ast.Builtin, bool) {
	if v, ok := x.(*ast.VarRef); ok {
		builtin, ok := ast.BuiltinByName[v.Name]
		return builtin, ok
	}
	return 0, false
}

func (p *parser) terminalExpr() (ast.Expr, error) {
	tok := p.current()
	switch tok.Type {
	case lexer.STRING:
		p.advance()
		return &ast.StrLit{Value: tok.Text, Pos: tok.Position}, nil

	case lexer.BOOLEAN:
		p.advance()
		return &ast.BoolLit{Value: tok.Text == "true", Pos: tok.Position}, nil

	case lexer.INTEGER:
		p.advance()
		value, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, &ParseError{Kind: ErrorUnexpectedToken, Got: tok}
		}
		return &ast.NumLit{Value: value, Pos: tok.Position}, nil

	case lexer.IDENTIFIER:
		p.advance()
		return &ast.VarRef{Name: tok.Text, Pos: tok.Position}, nil

	case lexer.LPAREN:
		return p.parenOrLambda()

	case lexer.EOF:
		return nil, p.unexpected()

	default:
		if tok.IsKeyword() {
			return nil, &ParseError{Kind: ErrorKeywordAsVar, Keyword: tok.Text}
		}
		return nil, p.unexpected()
	}
}

// parenOrLambda disambiguates `(` between a lambda and a parenthesized
// expression. A parameter-list parse is attempted first; if it fails with a
// generic unexpected-token error the cursor rewinds and a parenthesized
// expression is parsed instead. Any other error (a keyword as a parameter
// name, unexpected end of input) is real and propagates.
func (p *parser) parenOrLambda() (ast.Expr, error) {
	pos := p.current().Position
	start := p.pos
	p.advance() // lparen

	params, err := p.params()
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) && pe.Kind == ErrorUnexpectedToken {
			p.pos = start + 1
			x, err := p.expression()
			if err != nil {
				return nil, err
			}
			if err := p.expect(lexer.RPAREN); err != nil {
				return nil, err
			}
			return x, nil
		}
		return nil, err
	}

	if err := p.expect(lexer.ARROW); err != nil {
		return nil, err
	}
	if p.at(lexer.RBRACE) {
		return nil, &ParseError{Kind: ErrorExpectedStatement}
	}
	body, err := p.statement(false)
	if err != nil {
		return nil, err
	}
	return &ast.LambdaExpr{Params: params, Body: body, Pos: pos}, nil
}

// args parses a call argument list after the opening paren, consuming the
// closing paren
func (p *parser) args() ([]ast.Expr, error) {
	if p.at(lexer.RPAREN) {
		p.advance()
		return []ast.Expr{}, nil
	}

	var args []ast.Expr
	for {
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		switch {
		case p.at(lexer.RPAREN):
			p.advance()
			return args, nil
		case p.at(lexer.COMMA):
			if p.peekIs(1, lexer.RPAREN) {
				return nil, p.unexpected() // trailing comma
			}
			p.advance()
		default:
			return nil, p.unexpected()
		}
	}
}

// at checks if the current token is of the given type
func (p *parser) at(typ lexer.TokenType) bool {
	return p.current().Type == typ
}

// current returns the current token, or a synthesized EOF token past the end
func (p *parser) current() lexer.Token {
	return p.peek(0)
}

// peek returns the token n positions ahead without advancing
func (p *parser) peek(n int) lexer.Token {
	if p.pos+n >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF, Position: p.eofPos}
	}
	return p.tokens[p.pos+n]
}

// peekIs checks the type of the token n positions ahead
func (p *parser) peekIs(n int, typ lexer.TokenType) bool {
	return p.peek(n).Type == typ
}

// advance moves to the next token
func (p *parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

// expect consumes a token of the given type or fails
func (p *parser) expect(typ lexer.TokenType) error {
	if !p.at(typ) {
		return &ParseError{Kind: ErrorExpectedToken, Expected: typ, Got: p.current()}
	}
	p.advance()
	return nil
}

// semicolon conditionally consumes a statement terminator
func (p *parser) semicolon(required bool) error {
	if !required {
		return nil
	}
	return p.expect(lexer.SEMICOLON)
}

// unexpected builds the error for a token that fits no production
func (p *parser) unexpected() error {
	if p.at(lexer.EOF) {
		return &ParseError{Kind: ErrorUnexpectedEOF, Got: p.current()}
	}
	return &ParseError{Kind: ErrorUnexpectedToken, Got: p.current()}
}
