package main

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"
)

func lexOne(t *testing.T, input string) Token {
	t.Helper()
	tokens, err := Tokenize(input)
	be.Err(t, err, nil)
	be.Equal(t, len(tokens), 1)
	return tokens[0]
}

func TestLexLiterals(t *testing.T) {
	tests := []struct {
		input string
		typ   TokenType
		value string
	}{
		{"12345", NUMBER, "12345"},
		{"3.25", NUMBER, "3.25"},
		{"foobar", IDENT, "foobar"},
		{"_tmp1", IDENT, "_tmp1"},
		{`"hello"`, STRING, "hello"},
		{`'single'`, STRING, "single"},
		{`'say "hi"'`, STRING, `say "hi"`},
		{`""`, STRING, ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := lexOne(t, tt.input)
			be.Equal(t, tok.Type, tt.typ)
			be.Equal(t, tok.Value, tt.value)
		})
	}
}

func TestLexKeywords(t *testing.T) {
	for _, kw := range []string{
		"let", "const", "function", "if", "else", "while", "for", "return",
		"true", "false", "null", "undefined",
		"print", "console", "prompt", "parseInt", "parseFloat", "typeof",
	} {
		t.Run(kw, func(t *testing.T) {
			tok := lexOne(t, kw)
			be.Equal(t, tok.Type, TokenType(KEYWORD))
			be.Equal(t, tok.Value, kw)
		})
	}
	// Keywords are case sensitive.
	be.Equal(t, lexOne(t, "Let").Type, TokenType(IDENT))
}

func TestLexOperators(t *testing.T) {
	tests := []struct {
		input string
		typ   TokenType
	}{
		{"===", STRICT_EQ},
		{"!==", STRICT_NEQ},
		{"==", EQ},
		{"!=", NOT_EQ},
		{">=", GE},
		{"<=", LE},
		{"&&", AND},
		{"||", OR},
		{"+", PLUS},
		{"-", MINUS},
		{"*", ASTERISK},
		{"/", SLASH},
		{"%", PERCENT},
		{"!", BANG},
		{"=", ASSIGN},
		{"<", LT},
		{">", GT},
		{"(", LPAREN},
		{")", RPAREN},
		{"{", LBRACE},
		{"}", RBRACE},
		{"[", LBRACKET},
		{"]", RBRACKET},
		{",", COMMA},
		{";", SEMICOLON},
		{":", COLON},
		{".", DOT},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := lexOne(t, tt.input)
			be.Equal(t, tok.Type, tt.typ)
			be.Equal(t, tok.Value, tt.input)
		})
	}
}

func TestLexSequence(t *testing.T) {
	tokens, err := Tokenize("let x=a[1]>=2;")
	be.Err(t, err, nil)
	var types []TokenType
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	be.Equal(t, types, []TokenType{
		KEYWORD, IDENT, ASSIGN, IDENT, LBRACKET, NUMBER, RBRACKET, GE, NUMBER, SEMICOLON,
	})
}

func TestLexNumberFollowedByDot(t *testing.T) {
	tokens, err := Tokenize("1.x")
	be.Err(t, err, nil)
	be.Equal(t, len(tokens), 3)
	be.Equal(t, tokens[0].Value, "1")
	be.Equal(t, tokens[1].Type, TokenType(DOT))
}

func TestLexLineNumbers(t *testing.T) {
	source := "let a = 1;\n// comment\n/* multi\nline */ let b\n= 2;"
	tokens, err := Tokenize(source)
	be.Err(t, err, nil)
	var lines []int
	for _, tok := range tokens {
		lines = append(lines, tok.Line)
	}
	be.Equal(t, lines, []int{1, 1, 1, 1, 1, 4, 4, 5, 5, 5})
}

func TestLexEmpty(t *testing.T) {
	tokens, err := Tokenize("  \n\t// only a comment")
	be.Err(t, err, nil)
	be.Equal(t, len(tokens), 0)
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		msg   string
	}{
		{"unknown character", "let x = 1 @ 2;", 1, "invalid token near '@ 2;'"},
		{"stops at end of line", "x\n#oops\nmore", 2, "invalid token near '#oops'"},
		{"unterminated string", `let s = "abc`, 1, `invalid token near '"abc'`},
		{"string across lines", "'ab\ncd'", 1, "invalid token near ''ab'"},
		{"unterminated comment", "1\n/* open", 2, "unterminated block comment"},
		{"single ampersand", "a & b", 1, "invalid token near '& b'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			var cerr *CompileError
			be.True(t, errors.As(err, &cerr))
			be.Equal(t, cerr.Kind, ErrLexical)
			be.Equal(t, cerr.Line, tt.line)
			be.Equal(t, cerr.Message, tt.msg)
		})
	}
}

func TestLexLongInvalidTokenIsTruncated(t *testing.T) {
	_, err := Tokenize("@" + string(make([]byte, 80)))
	var cerr *CompileError
	be.True(t, errors.As(err, &cerr))
	be.Equal(t, len(cerr.Message), len("invalid token near ''")+50)
}
