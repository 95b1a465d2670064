package script

import "strings"

// Lexer tokenizes script input.
type Lexer struct {
	input string
	pos   int  // index of ch
	ch    byte // current character, 0 at end
	line  int
	col   int
}

// NewLexer creates a new lexer for the input string.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, pos: -1, line: 1}
	l.readChar()
	return l
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	l.skipSpaceAndComments()

	tok := Token{Pos: Pos{Line: l.line, Col: l.col}}

	switch l.ch {
	case 0:
		tok.Type = TokenEOF
		return tok
	case '(':
		tok.Type, tok.Literal = TokenLParen, "("
	case ')':
		tok.Type, tok.Literal = TokenRParen, ")"
	case '{':
		tok.Type, tok.Literal = TokenLBrace, "{"
	case '}':
		tok.Type, tok.Literal = TokenRBrace, "}"
	case ',':
		tok.Type, tok.Literal = TokenComma, ","
	case ':':
		tok.Type, tok.Literal = TokenColon, ":"
	case ';':
		tok.Type, tok.Literal = TokenSemicolon, ";"
	case '.':
		if isDigit(l.peekChar()) {
			tok.Type, tok.Literal = TokenNumber, l.readNumber()
			return tok
		}
		tok.Type, tok.Literal = TokenDot, "."
	case '"', '\'', '`':
		quote := l.ch
		lit, ok := l.readString(quote)
		tok.Type, tok.Literal = TokenString, lit
		if !ok {
			tok.Type, tok.Literal = TokenIllegal, string(quote)+lit
		}
		return tok
	default:
		switch {
		case isLetter(l.ch):
			tok.Literal = l.readIdentifier()
			tok.Type = lookupIdent(tok.Literal)
			return tok
		case isDigit(l.ch) || ((l.ch == '-' || l.ch == '+') && (isDigit(l.peekChar()) || l.peekChar() == '.')):
			tok.Type, tok.Literal = TokenNumber, l.readNumber()
			return tok
		}
		tok.Type, tok.Literal = TokenIllegal, string(l.ch)
	}

	l.readChar()
	return tok
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	l.pos++
	l.col++
	if l.pos >= len(l.input) {
		l.pos = len(l.input)
		l.ch = 0
		return
	}
	l.ch = l.input[l.pos]
}

func (l *Lexer) peekChar() byte {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) skipSpaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			for l.ch != 0 && !(l.ch == '*' && l.peekChar() == '/') {
				l.readChar()
			}
			if l.ch != 0 {
				l.readChar()
				l.readChar()
			}
		default:
			return
		}
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readString reads a quoted string. It reports false when the closing quote
// is missing.
func (l *Lexer) readString(quote byte) (string, bool) {
	l.readChar() // opening quote
	var b strings.Builder
	for l.ch != quote {
		if l.ch == 0 || (l.ch == '\n' && quote != '`') {
			return b.String(), false
		}
		if l.ch == '\\' && l.peekChar() != 0 {
			l.readChar()
		}
		b.WriteByte(l.ch)
		l.readChar()
	}
	l.readChar() // closing quote
	return b.String(), true
}

func (l *Lexer) readNumber() string {
	start := l.pos
	if l.ch == '-' || l.ch == '+' {
		l.readChar()
	}
	for isDigit(l.ch) || l.ch == '.' {
		l.readChar()
	}
	if l.ch == 'e' || l.ch == 'E' {
		l.readChar()
		if l.ch == '-' || l.ch == '+' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[start:l.pos]
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '$'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
