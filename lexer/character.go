package lexer

// ASCII character lookup tables for fast classification
//
// Use inline bounds-checked lookups:
//
//	if ch < 128 && isLetter[ch] { ... }
//
// Linger source is ASCII outside of string literals; non-ASCII bytes in any
// other position are unknown tokens.
var (
	isWhitespace [128]bool // Space, tab, carriage return, newline
	isLetter     [128]bool // a-z, A-Z, _
	isDigit      [128]bool // 0-9
	isIdentStart [128]bool // Letter or _
	isIdentPart  [128]bool // Letter, digit or _
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)

		isWhitespace[i] = ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f'

		isLetter[i] = ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'

		isDigit[i] = '0' <= ch && ch <= '9'

		isIdentStart[i] = isLetter[i]
		isIdentPart[i] = isLetter[i] || isDigit[i]
	}
}
