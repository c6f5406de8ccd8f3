package main

// TokenType is the type of token (identifier, operator, literal, etc.).
type TokenType string

// Definition of token types
const (
	EOF = "EOF"

	// Identifiers + literals
	IDENT   = "IDENT"  // count, _tmp
	NUMBER  = "NUMBER" // 42, 3.5
	STRING  = "STRING" // "hi", 'hi'
	KEYWORD = "KEYWORD"

	// Operators
	ASSIGN     = "="
	PLUS       = "+"
	MINUS      = "-"
	BANG       = "!"
	ASTERISK   = "*"
	SLASH      = "/"
	PERCENT    = "%"
	LT         = "<"
	GT         = ">"
	EQ         = "=="
	NOT_EQ     = "!="
	STRICT_EQ  = "==="
	STRICT_NEQ = "!=="
	LE         = "<="
	GE         = ">="
	AND        = "&&"
	OR         = "||"

	// Delimiters
	COMMA     = ","
	SEMICOLON = ";"
	COLON     = ":"
	DOT       = "."
	LPAREN    = "("
	RPAREN    = ")"
	LBRACE    = "{"
	RBRACE    = "}"
	LBRACKET  = "["
	RBRACKET  = "]"
)

// Keywords. Native function names are keywords so a program cannot shadow
// them with its own declarations.
const (
	KwLet       = "let"
	KwConst     = "const"
	KwFunction  = "function"
	KwIf        = "if"
	KwElse      = "else"
	KwWhile     = "while"
	KwFor       = "for"
	KwReturn    = "return"
	KwTrue      = "true"
	KwFalse     = "false"
	KwNull      = "null"
	KwUndefined = "undefined"
)

// Native function names.
const (
	NativePrint      = "print"
	NativeConsole    = "console"
	NativePrompt     = "prompt"
	NativeParseInt   = "parseInt"
	NativeParseFloat = "parseFloat"
	NativeTypeof     = "typeof"
)

var keywords = map[string]bool{
	KwLet: true, KwConst: true, KwFunction: true, KwIf: true, KwElse: true,
	KwWhile: true, KwFor: true, KwReturn: true, KwTrue: true, KwFalse: true,
	KwNull: true, KwUndefined: true,
	NativePrint: true, NativeConsole: true, NativePrompt: true,
	NativeParseInt: true, NativeParseFloat: true, NativeTypeof: true,
}

// IsNative reports whether name is one of the recognized native functions.
func IsNative(name string) bool {
	switch name {
	case NativePrint, NativeConsole, NativePrompt, NativeParseInt, NativeParseFloat, NativeTypeof:
		return true
	default:
		return false
	}
}

// Token is a single lexeme with the source line it started on.
type Token struct {
	Type  TokenType
	Value string
	Line  int
}

// Is reports whether the token has the given type and literal value.
func (t Token) Is(typ TokenType, value string) bool {
	return t.Type == typ && t.Value == value
}
