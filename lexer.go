package main

import (
	"bytes"
	"strings"
)

// Lexer turns source text into tokens. It stops at the first character it
// cannot scan.
type Lexer struct {
	input []byte
	pos   int // current reading position in input
	line  int
}

// NewLexer creates a lexer positioned at the start of input.
func NewLexer(input []byte) *Lexer {
	return &Lexer{input: input, line: 1}
}

// Tokenize scans the whole source.
func Tokenize(source string) ([]Token, error) {
	l := NewLexer([]byte(source))
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// operators are tried in order, so longer spellings come first.
var operators = []string{
	"===", "!==",
	"==", "!=", ">=", "<=", "&&", "||",
	"+", "-", "*", "/", "%", "!", "=", "<", ">",
	"{", "}", "[", "]", "(", ")", ";", ",", ".", ":",
}

// NextToken scans the next token. At the end of input it returns a token of
// type EOF.
func (l *Lexer) NextToken() (Token, error) {
	if err := l.skipWhitespaceAndComments(); err != nil {
		return Token{}, err
	}
	if l.pos >= len(l.input) {
		return Token{Type: EOF, Line: l.line}, nil
	}

	c := l.input[l.pos]
	switch {
	case isLetter(c):
		lit := l.readIdentifier()
		if keywords[lit] {
			return Token{Type: KEYWORD, Value: lit, Line: l.line}, nil
		}
		return Token{Type: IDENT, Value: lit, Line: l.line}, nil

	case isDigit(c):
		return Token{Type: NUMBER, Value: l.readNumber(), Line: l.line}, nil

	case c == '"' || c == '\'':
		lit, ok := l.readString(c)
		if !ok {
			return Token{}, l.invalidToken()
		}
		return Token{Type: STRING, Value: lit, Line: l.line}, nil
	}

	rest := l.input[l.pos:]
	for _, op := range operators {
		if bytes.HasPrefix(rest, []byte(op)) {
			l.pos += len(op)
			return Token{Type: TokenType(op), Value: op, Line: l.line}, nil
		}
	}
	return Token{}, l.invalidToken()
}

func (l *Lexer) skipWhitespaceAndComments() error {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == '/' && l.peek(1) == '/':
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.pos++
			}
		case c == '/' && l.peek(1) == '*':
			startLine := l.line
			l.pos += 2 // skip /*
			for l.pos < len(l.input) && !(l.input[l.pos] == '*' && l.peek(1) == '/') {
				if l.input[l.pos] == '\n' {
					l.line++
				}
				l.pos++
			}
			if l.pos >= len(l.input) {
				return newError(ErrLexical, startLine, "unterminated block comment")
			}
			l.pos += 2 // skip */
		default:
			return nil
		}
	}
	return nil
}

func (l *Lexer) peek(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

// invalidToken reports the text from the current position up to the end of
// the line.
func (l *Lexer) invalidToken() error {
	rest := string(l.input[l.pos:])
	if end := strings.IndexByte(rest, '\n'); end > 0 {
		rest = rest[:end]
	} else if len(rest) > 50 {
		rest = rest[:50]
	}
	return newError(ErrLexical, l.line, "invalid token near '%s'", rest)
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for l.pos < len(l.input) && (isLetter(l.input[l.pos]) || isDigit(l.input[l.pos])) {
		l.pos++
	}
	return string(l.input[start:l.pos])
}

func (l *Lexer) readNumber() string {
	start := l.pos
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	// A fraction needs at least one digit after the dot.
	if l.peek(0) == '.' && isDigit(l.peek(1)) {
		l.pos++
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}
	return string(l.input[start:l.pos])
}

// readString reads a quoted string and returns its contents without the
// quotes. Strings cannot span lines and have no escape sequences.
func (l *Lexer) readString(quote byte) (string, bool) {
	end := l.pos + 1
	for end < len(l.input) && l.input[end] != quote {
		if l.input[end] == '\n' {
			return "", false
		}
		end++
	}
	if end >= len(l.input) {
		return "", false
	}
	lit := string(l.input[l.pos+1 : end])
	l.pos = end + 1
	return lit, true
}
