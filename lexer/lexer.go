package lexer

// Lexer scans Linger source into positioned tokens
type Lexer struct {
	input    []byte
	position int
	line     int
	column   int
}

// NewLexer creates a new lexer over the given source
func NewLexer(input string) *Lexer {
	l := &Lexer{}
	l.Init([]byte(input))
	return l
}

// Init resets the lexer with new input (following Go scanner pattern)
func (l *Lexer) Init(input []byte) {
	l.input = input
	l.position = 0
	l.line = 1
	l.column = 1
}

// Tokenize scans source text into the full token sequence, EOF excluded.
// The first lexical error aborts the scan.
func Tokenize(source string) ([]Token, error) {
	l := NewLexer(source)
	var tokens []Token
	for {
		token, err := l.lexToken()
		if err != nil {
			return nil, err
		}
		if token.Type == EOF {
			return tokens, nil
		}
		tokens = append(tokens, token)
	}
}

// lexToken scans and returns the next token
func (l *Lexer) lexToken() (Token, error) {
	l.skipWhitespaceAndComments()

	// Check for EOF
	if l.position >= len(l.input) {
		return Token{Type: EOF, Position: l.pos()}, nil
	}

	start := l.pos()
	ch := l.currentChar()

	// Identifier or keyword
	if ch < 128 && isIdentStart[ch] {
		return l.lexIdentifier(start), nil
	}

	// Integer literals
	if ch < 128 && isDigit[ch] {
		return l.lexNumber(start), nil
	}

	// String literals
	if ch == '"' {
		return l.lexString(start)
	}

	switch ch {
	case '=':
		return l.lexEquals(start), nil
	case '<':
		return l.lexLessThan(start), nil
	case '>':
		return l.lexGreaterThan(start), nil
	case '!':
		return l.lexExclamation(start), nil
	case '&':
		return l.lexAmpersand(start)
	case '|':
		return l.lexPipe(start)
	case '+':
		return l.lexPlus(start), nil
	case '-':
		return l.lexMinus(start), nil
	case '*':
		return l.lexMultiply(start), nil
	case '/':
		return l.lexDivide(start), nil
	case '%':
		return l.lexModulo(start), nil
	case '(':
		l.advanceChar()
		return Token{Type: LPAREN, Position: start}, nil
	case ')':
		l.advanceChar()
		return Token{Type: RPAREN, Position: start}, nil
	case '{':
		l.advanceChar()
		return Token{Type: LBRACE, Position: start}, nil
	case '}':
		l.advanceChar()
		return Token{Type: RBRACE, Position: start}, nil
	case ',':
		l.advanceChar()
		return Token{Type: COMMA, Position: start}, nil
	case ';':
		l.advanceChar()
		return Token{Type: SEMICOLON, Position: start}, nil
	}

	// Unrecognized character
	l.advanceChar()
	return Token{}, &TokenizeError{Kind: ErrorUnknownToken, Text: string(ch), Position: start}
}

// skipWhitespaceAndComments skips whitespace, line comments and block comments
func (l *Lexer) skipWhitespaceAndComments() {
	for l.position < len(l.input) {
		ch := l.input[l.position]
		if ch < 128 && isWhitespace[ch] {
			l.advanceChar()
			continue
		}
		if ch == '/' && l.position+1 < len(l.input) {
			next := l.input[l.position+1]
			if next == '/' {
				for l.position < len(l.input) && l.currentChar() != '\n' {
					l.advanceChar()
				}
				continue
			}
			if next == '*' {
				l.advanceChar() // consume '/'
				l.advanceChar() // consume '*'
				for l.position < len(l.input) {
					if l.currentChar() == '*' && l.position+1 < len(l.input) && l.input[l.position+1] == '/' {
						l.advanceChar()
						l.advanceChar()
						break
					}
					l.advanceChar()
				}
				continue
			}
		}
		break
	}
}

// lexIdentifier reads an identifier or keyword starting at current position
func (l *Lexer) lexIdentifier(start Position) Token {
	startPos := l.position

	for l.position < len(l.input) {
		ch := l.input[l.position]
		if ch >= 128 || !isIdentPart[ch] {
			break
		}
		l.advanceChar()
	}

	text := string(l.input[startPos:l.position])

	tokenType := IDENTIFIER
	if kw, ok := Keywords[text]; ok {
		tokenType = kw
	}

	return Token{Type: tokenType, Text: text, Position: start}
}

// lexNumber reads an integer literal
func (l *Lexer) lexNumber(start Position) Token {
	startPos := l.position

	for l.position < len(l.input) {
		ch := l.input[l.position]
		if ch >= 128 || !isDigit[ch] {
			break
		}
		l.advanceChar()
	}

	return Token{Type: INTEGER, Text: string(l.input[startPos:l.position]), Position: start}
}

// lexString reads a double-quoted string literal, resolving escape sequences
func (l *Lexer) lexString(start Position) (Token, error) {
	l.advanceChar() // skip opening quote

	var text []byte
	for {
		if l.position >= len(l.input) {
			return Token{}, &TokenizeError{Kind: ErrorUnterminatedString, Position: start}
		}

		ch := l.currentChar()

		if ch == '"' {
			l.advanceChar()
			return Token{Type: STRING, Text: string(text), Position: start}, nil
		}

		if ch == '\\' {
			escapePos := l.pos()
			l.advanceChar()
			if l.position >= len(l.input) {
				return Token{}, &TokenizeError{Kind: ErrorUnterminatedString, Position: start}
			}
			escaped := l.currentChar()
			switch escaped {
			case 'n':
				text = append(text, '\n')
			case 't':
				text = append(text, '\t')
			case '\\':
				text = append(text, '\\')
			case '"':
				text = append(text, '"')
			default:
				return Token{}, &TokenizeError{Kind: ErrorInvalidEscape, Escape: escaped, Position: escapePos}
			}
			l.advanceChar()
			continue
		}

		// Strings may not span lines
		if ch == '\n' {
			return Token{}, &TokenizeError{Kind: ErrorUnterminatedString, Position: start}
		}

		text = append(text, ch)
		l.advanceChar()
	}
}

// lexEquals handles '=', '==' and '=>' tokens
func (l *Lexer) lexEquals(start Position) Token {
	l.advanceChar() // consume '='

	if l.position < len(l.input) {
		switch l.currentChar() {
		case '=':
			l.advanceChar()
			return Token{Type: EQ_EQ, Position: start}
		case '>':
			l.advanceChar()
			return Token{Type: ARROW, Position: start}
		}
	}

	return Token{Type: EQUALS, Position: start}
}

// lexLessThan handles '<' and '<=' operators
func (l *Lexer) lexLessThan(start Position) Token {
	l.advanceChar() // consume '<'

	if l.position < len(l.input) && l.currentChar() == '=' {
		l.advanceChar()
		return Token{Type: LT_EQ, Position: start}
	}

	return Token{Type: LT, Position: start}
}

// lexGreaterThan handles '>' and '>=' operators
func (l *Lexer) lexGreaterThan(start Position) Token {
	l.advanceChar() // consume '>'

	if l.position < len(l.input) && l.currentChar() == '=' {
		l.advanceChar()
		return Token{Type: GT_EQ, Position: start}
	}

	return Token{Type: GT, Position: start}
}

// lexExclamation handles '!' and '!=' operators
func (l *Lexer) lexExclamation(start Position) Token {
	l.advanceChar() // consume '!'

	if l.position < len(l.input) && l.currentChar() == '=' {
		l.advanceChar()
		return Token{Type: NOT_EQ, Position: start}
	}

	return Token{Type: NOT, Position: start}
}

// lexAmpersand handles '&&'; a single '&' is not a Linger token
func (l *Lexer) lexAmpersand(start Position) (Token, error) {
	l.advanceChar() // consume '&'

	if l.position < len(l.input) && l.currentChar() == '&' {
		l.advanceChar()
		return Token{Type: AND_AND, Position: start}, nil
	}

	return Token{}, &TokenizeError{Kind: ErrorUnknownToken, Text: "&", Position: start}
}

// lexPipe handles '||'; a single '|' is not a Linger token
func (l *Lexer) lexPipe(start Position) (Token, error) {
	l.advanceChar() // consume '|'

	if l.position < len(l.input) && l.currentChar() == '|' {
		l.advanceChar()
		return Token{Type: OR_OR, Position: start}, nil
	}

	return Token{}, &TokenizeError{Kind: ErrorUnknownToken, Text: "|", Position: start}
}

// lexPlus handles '+', '++' and '+=' operators
func (l *Lexer) lexPlus(start Position) Token {
	l.advanceChar() // consume '+'

	if l.position < len(l.input) {
		switch l.currentChar() {
		case '+':
			l.advanceChar()
			return Token{Type: INCREMENT, Position: start}
		case '=':
			l.advanceChar()
			return Token{Type: PLUS_ASSIGN, Position: start}
		}
	}

	return Token{Type: PLUS, Position: start}
}

// lexMinus handles '-', '--' and '-=' operators
func (l *Lexer) lexMinus(start Position) Token {
	l.advanceChar() // consume '-'

	if l.position < len(l.input) {
		switch l.currentChar() {
		case '-':
			l.advanceChar()
			return Token{Type: DECREMENT, Position: start}
		case '=':
			l.advanceChar()
			return Token{Type: MINUS_ASSIGN, Position: start}
		}
	}

	return Token{Type: MINUS, Position: start}
}

// lexMultiply handles '*' and '*=' operators
func (l *Lexer) lexMultiply(start Position) Token {
	l.advanceChar() // consume '*'

	if l.position < len(l.input) && l.currentChar() == '=' {
		l.advanceChar()
		return Token{Type: MULTIPLY_ASSIGN, Position: start}
	}

	return Token{Type: MULTIPLY, Position: start}
}

// lexDivide handles '/' and '/=' operators; comments are consumed by
// skipWhitespaceAndComments before this is reached
func (l *Lexer) lexDivide(start Position) Token {
	l.advanceChar() // consume '/'

	if l.position < len(l.input) && l.currentChar() == '=' {
		l.advanceChar()
		return Token{Type: DIVIDE_ASSIGN, Position: start}
	}

	return Token{Type: DIVIDE, Position: start}
}

// lexModulo handles '%' and '%=' operators
func (l *Lexer) lexModulo(start Position) Token {
	l.advanceChar() // consume '%'

	if l.position < len(l.input) && l.currentChar() == '=' {
		l.advanceChar()
		return Token{Type: MODULO_ASSIGN, Position: start}
	}

	return Token{Type: MODULO, Position: start}
}

// currentChar returns the current character being examined
func (l *Lexer) currentChar() byte {
	if l.position >= len(l.input) {
		return 0 // EOF
	}
	return l.input[l.position]
}

// advanceChar moves to the next character, tracking line and column
func (l *Lexer) advanceChar() {
	if l.position >= len(l.input) {
		return
	}

	if l.input[l.position] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.position++
}

func (l *Lexer) pos() Position {
	return Position{Line: l.line, Column: l.column, Offset: l.position}
}
