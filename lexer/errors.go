package lexer

import "fmt"

// ErrorKind represents different categories of tokenizer errors
type ErrorKind int

const (
	ErrorUnknownToken ErrorKind = iota
	ErrorUnterminatedString
	ErrorInvalidEscape
)

// TokenizeError represents a tokenizer error with location information
type TokenizeError struct {
	Kind     ErrorKind
	Text     string // offending text for unknown tokens
	Escape   byte   // offending character for invalid escape sequences
	Position Position
}

func (e *TokenizeError) Error() string {
	switch e.Kind {
	case ErrorUnknownToken:
		return fmt.Sprintf("unknown token: %s", e.Text)
	case ErrorUnterminatedString:
		return "unterminated string literal"
	case ErrorInvalidEscape:
		return fmt.Sprintf("invalid escape sequence \"\\%c\"", e.Escape)
	default:
		return "tokenizer error"
	}
}
