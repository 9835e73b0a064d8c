package parser

import (
	"fmt"

	"github.com/linger-lang/linger/lexer"
)

// ErrorKind identifies the category of a parse error
type ErrorKind int

const (
	// ErrorUnexpectedToken reports a token that fits no production
	ErrorUnexpectedToken ErrorKind = iota
	// ErrorUnexpectedEOF reports input ending mid-production
	ErrorUnexpectedEOF
	// ErrorExpectedToken reports a specific required token that was absent
	ErrorExpectedToken
	// ErrorKeywordAsVar reports a keyword in variable position
	ErrorKeywordAsVar
	// ErrorKeywordAsProc reports a keyword used to name a procedure
	ErrorKeywordAsProc
	// ErrorKeywordAsParam reports a keyword used to name a parameter
	ErrorKeywordAsParam
	// ErrorExpectedStatement reports a position where a statement was required
	ErrorExpectedStatement
	// ErrorExpectedBlock reports a control-flow body that is not a braced block
	ErrorExpectedBlock
	// ErrorExpectedAssignOrInit reports a bad first clause in a for header
	ErrorExpectedAssignOrInit
	// ErrorExpectedAssign reports a bad step clause in a for header
	ErrorExpectedAssign
	// ErrorNoMain reports a program without a main procedure
	ErrorNoMain
	// ErrorDuplicateProc reports two top-level procedures sharing a name
	ErrorDuplicateProc
)

// ParseError describes why parsing failed. The first error aborts the parse.
type ParseError struct {
	Kind     ErrorKind
	Got      lexer.Token     // offending token, when one exists
	Expected lexer.TokenType // for ErrorExpectedToken
	Keyword  string          // for the keyword-misuse kinds
	Name     string          // for ErrorDuplicateProc
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrorUnexpectedToken:
		return fmt.Sprintf("unexpected token %s @ (%d, %d)",
			e.Got, e.Got.Position.Line, e.Got.Position.Column)
	case ErrorUnexpectedEOF:
		return "unexpected end of file"
	case ErrorExpectedToken:
		return fmt.Sprintf("expected token %s @ (%d, %d), instead got %s",
			e.Expected, e.Got.Position.Line, e.Got.Position.Column, e.Got)
	case ErrorKeywordAsVar:
		return fmt.Sprintf("keyword %q used as variable", e.Keyword)
	case ErrorKeywordAsProc:
		return fmt.Sprintf("keyword %q used as procedure name", e.Keyword)
	case ErrorKeywordAsParam:
		return fmt.Sprintf("keyword %q used as parameter name", e.Keyword)
	case ErrorExpectedStatement:
		return "expected statement"
	case ErrorExpectedBlock:
		return "expected block"
	case ErrorExpectedAssignOrInit:
		return "expected assignment or initialization statement"
	case ErrorExpectedAssign:
		return "expected assignment statement"
	case ErrorNoMain:
		return "main procedure not found"
	case ErrorDuplicateProc:
		return fmt.Sprintf("multiple procedures with name %q", e.Name)
	default:
		return "unknown parse error"
	}
}
