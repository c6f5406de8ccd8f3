package main

import "fmt"

// ErrorKind identifies what went wrong during compilation.
type ErrorKind string

const (
	ErrLexical ErrorKind = "LexicalError"
	ErrSyntax  ErrorKind = "SyntaxError"

	ErrDuplicateDeclaration     ErrorKind = "DuplicateDeclaration"
	ErrUndeclaredVariable       ErrorKind = "UndeclaredVariable"
	ErrUndeclaredFunction       ErrorKind = "UndeclaredFunction"
	ErrArityMismatch            ErrorKind = "ArityMismatch"
	ErrConstReassignment        ErrorKind = "ConstReassignment"
	ErrTypeMismatch             ErrorKind = "TypeMismatch"
	ErrInvalidArithmeticOperand ErrorKind = "InvalidArithmeticOperand"
	ErrArrayOutOfBounds         ErrorKind = "ArrayOutOfBounds"
	ErrUnknownNative            ErrorKind = "UnknownNative"

	ErrUnsupportedConstruct ErrorKind = "UnsupportedConstruct"
)

// Category returns the stage that reports errors of this kind.
func (k ErrorKind) Category() string {
	switch k {
	case ErrLexical:
		return "lexical"
	case ErrSyntax:
		return "syntax"
	case ErrUnsupportedConstruct:
		return "generation"
	default:
		return "semantic"
	}
}

// CompileError is the single fatal error a compilation stops at.
type CompileError struct {
	Kind    ErrorKind
	Line    int
	Message string

	// Incomplete is set by the parser when the input ended before the
	// construct being parsed was finished.
	Incomplete bool
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s error on line %d: %s", e.Kind.Category(), e.Line, e.Message)
}

func newError(kind ErrorKind, line int, format string, args ...any) *CompileError {
	return &CompileError{
		Kind:    kind,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	}
}
