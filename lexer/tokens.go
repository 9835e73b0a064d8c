package lexer

// TokenType represents lexical tokens for the Linger language
type TokenType int

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Keywords
	PROC     // proc
	LET      // let
	CONST    // const
	IF       // if
	ELSE     // else
	WHILE    // while
	FOR      // for
	RETURN   // return
	BREAK    // break
	CONTINUE // continue

	// Structure
	EQUALS    // =
	COMMA     // ,
	SEMICOLON // ;
	ARROW     // => (lambda body marker)

	// Brackets and braces
	LPAREN // (
	RPAREN // )
	LBRACE // {
	RBRACE // }

	// Comparison operators
	EQ_EQ  // ==
	NOT_EQ // !=
	LT     // <
	LT_EQ  // <=
	GT     // >
	GT_EQ  // >=

	// Logical operators
	AND_AND // && (logical and)
	OR_OR   // || (logical or)
	NOT     // !

	// Arithmetic operators
	PLUS     // +
	MINUS    // -
	MULTIPLY // *
	DIVIDE   // /
	MODULO   // %

	// Increment/Decrement
	INCREMENT // ++
	DECREMENT // --

	// Assignment operators
	PLUS_ASSIGN     // +=
	MINUS_ASSIGN    // -=
	MULTIPLY_ASSIGN // *=
	DIVIDE_ASSIGN   // /=
	MODULO_ASSIGN   // %=

	// Literals and content
	IDENTIFIER // procedure names, variable names
	INTEGER    // 123, 0, 456
	STRING     // "string" content (escapes resolved)
	BOOLEAN    // true, false
)

// Token represents a lexical token
type Token struct {
	Type     TokenType
	Text     string // decoded text for identifiers, literals and keywords
	Position Position
}

// String returns the display form of a token for diagnostics
func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "<eof>"
	case STRING:
		return "\"" + t.Text + "\""
	case IDENTIFIER, INTEGER, BOOLEAN, ILLEGAL:
		return t.Text
	default:
		if t.Text != "" {
			return t.Text
		}
		return t.Type.String()
	}
}

// Position represents a position in the source code
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case ILLEGAL:
		return "ILLEGAL"
	case PROC:
		return "proc"
	case LET:
		return "let"
	case CONST:
		return "const"
	case IF:
		return "if"
	case ELSE:
		return "else"
	case WHILE:
		return "while"
	case FOR:
		return "for"
	case RETURN:
		return "return"
	case BREAK:
		return "break"
	case CONTINUE:
		return "continue"
	case EQUALS:
		return "="
	case COMMA:
		return ","
	case SEMICOLON:
		return ";"
	case ARROW:
		return "=>"
	case LPAREN:
		return "("
	case RPAREN:
		return ")"
	case LBRACE:
		return "{"
	case RBRACE:
		return "}"
	case EQ_EQ:
		return "=="
	case NOT_EQ:
		return "!="
	case LT:
		return "<"
	case LT_EQ:
		return "<="
	case GT:
		return ">"
	case GT_EQ:
		return ">="
	case AND_AND:
		return "&&"
	case OR_OR:
		return "||"
	case NOT:
		return "!"
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case MULTIPLY:
		return "*"
	case DIVIDE:
		return "/"
	case MODULO:
		return "%"
	case INCREMENT:
		return "++"
	case DECREMENT:
		return "--"
	case PLUS_ASSIGN:
		return "+="
	case MINUS_ASSIGN:
		return "-="
	case MULTIPLY_ASSIGN:
		return "*="
	case DIVIDE_ASSIGN:
		return "/="
	case MODULO_ASSIGN:
		return "%="
	case IDENTIFIER:
		return "IDENTIFIER"
	case INTEGER:
		return "INTEGER"
	case STRING:
		return "STRING"
	case BOOLEAN:
		return "BOOLEAN"
	default:
		return "UNKNOWN"
	}
}

// Keywords maps string literals to their corresponding token types
var Keywords = map[string]TokenType{
	"proc":     PROC,
	"let":      LET,
	"const":    CONST,
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"for":      FOR,
	"return":   RETURN,
	"break":    BREAK,
	"continue": CONTINUE,
	"true":     BOOLEAN,
	"false":    BOOLEAN,
}

// IsKeyword reports whether a token is a reserved word (including the
// boolean literals, which may never be used as names).
func (t Token) IsKeyword() bool {
	switch t.Type {
	case PROC, LET, CONST, IF, ELSE, WHILE, FOR, RETURN, BREAK, CONTINUE, BOOLEAN:
		return true
	}
	return false
}
