package sexy

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestParseAtoms(t *testing.T) {
	tests := []struct {
		input string
		typ   NodeType
		text  string
		out   string
	}{
		{"hello", NodeSymbol, "hello", "hello"},
		{"array<number>[3]", NodeSymbol, "array<number>[3]", "array<number>[3]"},
		{"func-name", NodeSymbol, "func-name", "func-name"},
		{"+", NodeSymbol, "+", "+"},
		{`"hello world"`, NodeString, "hello world", `"hello world"`},
		{`""`, NodeString, "", `""`},
		{`"test\"quote"`, NodeString, `test"quote`, `"test\"quote"`},
		{`"back\\slash"`, NodeString, `back\slash`, `"back\\slash"`},
		{"42", NodeInteger, "42", "42"},
		{"-123", NodeInteger, "-123", "-123"},
		{"+456", NodeInteger, "+456", "+456"},
		{"...", NodeEllipsis, "", "..."},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node, err := Parse(tt.input)
			be.Err(t, err, nil)
			be.Equal(t, node.Type, tt.typ)
			be.Equal(t, node.Text, tt.text)
			be.Equal(t, node.String(), tt.out)
		})
	}
}

func TestParseCompound(t *testing.T) {
	tests := []struct {
		name  string
		input string
		out   string
	}{
		{"empty list", "()", "()"},
		{"nested list", `(binary "+" (number 1) (ident "x"))`, `(binary "+" (number 1) (ident "x"))`},
		{"whitespace", "(  a\n\tb  )", "(a b)"},
		{"comment", "(a ; ignored\n b)", "(a b)"},
		{"empty map", "{}", "{}"},
		{"map", "{x: number, s: string}", "{x: number, s: string}"},
		{"map trailing comma", "{x: 1,}", "{x: 1}"},
		{"map of lists", "{a: (1 2)}", "{a: (1 2)}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Parse(tt.input)
			be.Err(t, err, nil)
			be.Equal(t, node.String(), tt.out)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "unexpected end of input"},
		{"unclosed list", "(a b", "expected ')'"},
		{"unclosed map", "{a: 1", "expected '}'"},
		{"unclosed map after list value", "{a: (b c)", "expected '}' but reached end of input"},
		{"unclosed map after comma", "{a: 1,", "expected '}' but reached end of input"},
		{"unterminated string", `"abc`, "unterminated string"},
		{"bad escape", `"a\nb"`, "invalid escape sequence"},
		{"trailing datum", "a b", "after datum"},
		{"map key not symbol", `{"a": 1}`, "expected symbol for map key"},
		{"map missing colon", "{a 1}", "expected ':'"},
		{"lone dot", ".", "unexpected character '.'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			be.Err(t, err, tt.want)
		})
	}
}

func TestMapGet(t *testing.T) {
	node, err := Parse("{x: number, y: (a b)}")
	be.Err(t, err, nil)
	be.Equal(t, node.Get("x").String(), "number")
	be.Equal(t, node.Get("y").String(), "(a b)")
	be.True(t, node.Get("z") == nil)
}

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		actual  string
		want    bool
	}{
		{"(a b)", "(a b)", true},
		{"(a b)", "(a c)", false},
		{"(a b)", "(a b c)", false},
		{"(a ...)", "(a b c)", true},
		{"(a ...)", "(a)", true},
		{"(a b ...)", "(a)", false},
		{"(a _ c)", "(a (x y) c)", true},
		{"_", `"anything"`, true},
		{`"s"`, "s", false},
		{"{x: number}", "{x: number}", true},
		{"{x: number}", "{x: string}", false},
		{"{x: _}", "{x: (a)}", true},
		{"(if _ (block ...))", "(if (ident \"c\") (block (return)))", true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+" ~ "+tt.actual, func(t *testing.T) {
			pattern, err := Parse(tt.pattern)
			be.Err(t, err, nil)
			actual, err := Parse(tt.actual)
			be.Err(t, err, nil)
			be.Equal(t, Match(pattern, actual), tt.want)
		})
	}
}

func TestQuote(t *testing.T) {
	be.Equal(t, Quote(`say "hi"`), `"say \"hi\""`)
	be.Equal(t, Quote(`a\b`), `"a\\b"`)
}
