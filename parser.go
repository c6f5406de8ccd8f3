package main

import (
	"fmt"
	"strconv"
)

// Parser is a recursive-descent parser over a token slice. It stops at the
// first syntax error.
type Parser struct {
	tokens  []Token
	current int
}

// parseBailout carries a syntax error out of the recursive descent.
type parseBailout struct {
	err *CompileError
}

// NewParser creates a parser over tokens.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseProgram tokenizes and parses a whole program.
func ParseProgram(source string) (*Program, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse()
}

// ParseExpressionSource tokenizes and parses a single expression.
func ParseExpressionSource(source string) (Expr, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	p := NewParser(tokens)
	var expr Expr
	err = p.guard(func() {
		expr = p.ParseExpression()
		if !p.atEnd() {
			p.fail("unexpected '%s' after expression", p.peek().Value)
		}
	})
	return expr, err
}

// Parse parses every remaining statement.
func (p *Parser) Parse() (*Program, error) {
	prog := &Program{}
	err := p.guard(func() {
		for !p.atEnd() {
			prog.Stmts = append(prog.Stmts, p.ParseStatement())
		}
	})
	if err != nil {
		return nil, err
	}
	return prog, nil
}

func (p *Parser) guard(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			bail, ok := r.(parseBailout)
			if !ok {
				panic(r)
			}
			err = bail.err
		}
	}()
	f()
	return nil
}

func (p *Parser) atEnd() bool {
	return p.current >= len(p.tokens)
}

// peek returns the current token, or an EOF token carrying the last line.
func (p *Parser) peek() Token {
	return p.peekAt(0)
}

func (p *Parser) peekAt(offset int) Token {
	if p.current+offset < len(p.tokens) {
		return p.tokens[p.current+offset]
	}
	line := 1
	if len(p.tokens) > 0 {
		line = p.tokens[len(p.tokens)-1].Line
	}
	return Token{Type: EOF, Line: line}
}

func (p *Parser) fail(format string, args ...any) {
	tok := p.peek()
	err := newError(ErrSyntax, tok.Line, format, args...)
	err.Incomplete = tok.Type == EOF
	panic(parseBailout{err: err})
}

func describe(tok Token) string {
	if tok.Type == EOF {
		return "end of input"
	}
	return fmt.Sprintf("'%s'", tok.Value)
}

// expect consumes a token of the given type, panicking with a syntax error
// otherwise.
func (p *Parser) expect(typ TokenType) Token {
	tok := p.peek()
	if tok.Type != typ {
		want := fmt.Sprintf("'%s'", typ)
		if typ == IDENT {
			want = "identifier"
		}
		p.fail("expected %s but found %s", want, describe(tok))
	}
	p.current++
	return tok
}

func (p *Parser) expectKeyword(kw string) Token {
	tok := p.peek()
	if !tok.Is(KEYWORD, kw) {
		p.fail("expected '%s' but found %s", kw, describe(tok))
	}
	p.current++
	return tok
}

func (p *Parser) check(typ TokenType) bool {
	return p.peek().Type == typ
}

func (p *Parser) checkKeyword(kw string) bool {
	return p.peek().Is(KEYWORD, kw)
}

// ParseStatement parses a statement and returns its node.
func (p *Parser) ParseStatement() Stmt {
	tok := p.peek()
	switch {
	case tok.Is(KEYWORD, KwLet), tok.Is(KEYWORD, KwConst):
		return p.parseVarDecl()
	case tok.Is(KEYWORD, KwFunction):
		return p.parseFunction()
	case tok.Is(KEYWORD, KwIf):
		return p.parseIf()
	case tok.Is(KEYWORD, KwWhile):
		return p.parseWhile()
	case tok.Is(KEYWORD, KwFor):
		return p.parseFor()
	case tok.Is(KEYWORD, KwReturn):
		return p.parseReturn()
	case tok.Type == KEYWORD && IsNative(tok.Value):
		call := p.parseNativeCall()
		p.expect(SEMICOLON)
		return call
	case tok.Type == IDENT && p.peekAt(1).Type == LPAREN:
		call := p.parseCall()
		p.expect(SEMICOLON)
		return call
	case tok.Type == IDENT:
		assign := p.parseAssignment()
		p.expect(SEMICOLON)
		return assign
	}
	p.fail("unknown statement starting with %s", describe(tok))
	return nil
}

func (p *Parser) parseVarDecl() *VarDecl {
	kw := p.peek()
	p.current++
	name := p.expect(IDENT)
	p.expect(ASSIGN)
	value := p.ParseExpression()
	p.expect(SEMICOLON)
	return &VarDecl{
		Pos:   Pos{kw.Line},
		Name:  name.Value,
		Value: value,
		Const: kw.Value == KwConst,
	}
}

func (p *Parser) parseAssignment() *Assignment {
	name := p.expect(IDENT)
	p.expect(ASSIGN)
	value := p.ParseExpression()
	return &Assignment{Pos: Pos{name.Line}, Name: name.Value, Value: value}
}

func (p *Parser) parseFunction() *FunctionDecl {
	kw := p.expectKeyword(KwFunction)
	name := p.expect(IDENT)
	p.expect(LPAREN)
	var params []string
	if p.check(IDENT) {
		params = append(params, p.expect(IDENT).Value)
		for p.check(COMMA) {
			p.expect(COMMA)
			params = append(params, p.expect(IDENT).Value)
		}
	}
	p.expect(RPAREN)
	body := p.parseBlock()
	return &FunctionDecl{Pos: Pos{kw.Line}, Name: name.Value, Params: params, Body: body}
}

func (p *Parser) parseIf() *IfStmt {
	kw := p.expectKeyword(KwIf)
	p.expect(LPAREN)
	cond := p.ParseExpression()
	p.expect(RPAREN)
	stmt := &IfStmt{Pos: Pos{kw.Line}, Cond: cond, Then: p.parseBlock()}
	if p.checkKeyword(KwElse) {
		p.current++
		if p.checkKeyword(KwIf) {
			// else if is sugar for an else block holding one if.
			stmt.Else = []Stmt{p.parseIf()}
		} else {
			stmt.Else = p.parseBlock()
		}
	}
	return stmt
}

func (p *Parser) parseWhile() *WhileStmt {
	kw := p.expectKeyword(KwWhile)
	p.expect(LPAREN)
	cond := p.ParseExpression()
	p.expect(RPAREN)
	return &WhileStmt{Pos: Pos{kw.Line}, Cond: cond, Body: p.parseBlock()}
}

func (p *Parser) parseFor() *ForStmt {
	kw := p.expectKeyword(KwFor)
	p.expect(LPAREN)
	stmt := &ForStmt{Pos: Pos{kw.Line}}
	switch {
	case p.checkKeyword(KwLet), p.checkKeyword(KwConst):
		stmt.Init = p.parseVarDecl()
	case p.check(IDENT):
		stmt.Init = p.parseAssignment()
		p.expect(SEMICOLON)
	default:
		p.expect(SEMICOLON)
	}
	stmt.Cond = p.ParseExpression()
	p.expect(SEMICOLON)
	stmt.Next = p.ParseExpression()
	p.expect(RPAREN)
	stmt.Body = p.parseBlock()
	return stmt
}

func (p *Parser) parseReturn() *ReturnStmt {
	kw := p.expectKeyword(KwReturn)
	stmt := &ReturnStmt{Pos: Pos{kw.Line}}
	if !p.check(SEMICOLON) {
		stmt.Value = p.ParseExpression()
	}
	p.expect(SEMICOLON)
	return stmt
}

// parseBlock parses { statement* }. The result is never nil.
func (p *Parser) parseBlock() []Stmt {
	p.expect(LBRACE)
	body := []Stmt{}
	for !p.check(RBRACE) {
		if p.atEnd() {
			p.fail("expected '}' but found end of input")
		}
		body = append(body, p.ParseStatement())
	}
	p.expect(RBRACE)
	return body
}

func (p *Parser) parseArgs() []Expr {
	p.expect(LPAREN)
	var args []Expr
	if !p.check(RPAREN) {
		args = append(args, p.ParseExpression())
		for p.check(COMMA) {
			p.expect(COMMA)
			args = append(args, p.ParseExpression())
		}
	}
	p.expect(RPAREN)
	return args
}

func (p *Parser) parseCall() *CallExpr {
	name := p.expect(IDENT)
	return &CallExpr{Pos: Pos{name.Line}, Name: name.Value, Args: p.parseArgs()}
}

func (p *Parser) parseNativeCall() *NativeCall {
	name := p.expect(KEYWORD)
	call := &NativeCall{Pos: Pos{name.Line}, Name: name.Value}
	if name.Value == NativeConsole && p.check(DOT) {
		p.expect(DOT)
		method := p.expect(IDENT)
		if method.Value != "log" {
			p.current--
			p.fail("unknown console method '%s'", method.Value)
		}
	}
	if name.Value == NativeTypeof && !p.check(LPAREN) {
		call.Args = []Expr{p.parseUnary()}
		return call
	}
	call.Args = p.parseArgs()
	return call
}

// precedence returns the binding power of a binary operator, or 0 if the
// token is not one.
func precedence(tok Token) int {
	switch tok.Type {
	case OR:
		return 1
	case AND:
		return 2
	case EQ, NOT_EQ, STRICT_EQ, STRICT_NEQ:
		return 3
	case LT, GT, LE, GE:
		return 4
	case PLUS, MINUS:
		return 5
	case ASTERISK, SLASH, PERCENT:
		return 6
	default:
		return 0
	}
}

// ParseExpression parses an expression, including assignment expressions.
func (p *Parser) ParseExpression() Expr {
	if p.check(IDENT) && p.peekAt(1).Type == ASSIGN {
		name := p.expect(IDENT)
		p.expect(ASSIGN)
		value := p.ParseExpression() // right-associative
		return &Assignment{Pos: Pos{name.Line}, Name: name.Value, Value: value}
	}
	return p.parseExpressionWithPrecedence(1)
}

// parseExpressionWithPrecedence implements precedence climbing.
func (p *Parser) parseExpressionWithPrecedence(minPrec int) Expr {
	left := p.parseUnary()
	for {
		tok := p.peek()
		prec := precedence(tok)
		if prec == 0 || prec < minPrec {
			return left
		}
		p.current++
		right := p.parseExpressionWithPrecedence(prec + 1) // left-associative
		left = &BinaryExpr{Pos: Pos{tok.Line}, Op: tok.Value, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() Expr {
	tok := p.peek()
	if tok.Type == BANG || tok.Type == MINUS {
		p.current++
		operand := p.parseUnary()
		return &UnaryExpr{Pos: Pos{tok.Line}, Op: tok.Value, Operand: operand}
	}
	return p.parsePrimary()
}

// parsePrimary handles literals, identifiers, calls, array access and
// parentheses.
func (p *Parser) parsePrimary() Expr {
	tok := p.peek()
	pos := Pos{tok.Line}
	switch {
	case tok.Type == NUMBER:
		p.current++
		value, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			p.current--
			p.fail("invalid number '%s'", tok.Value)
		}
		return &NumberLit{Pos: pos, Value: value}

	case tok.Type == STRING:
		p.current++
		return &StringLit{Pos: pos, Value: tok.Value}

	case tok.Is(KEYWORD, KwTrue), tok.Is(KEYWORD, KwFalse):
		p.current++
		return &BoolLit{Pos: pos, Value: tok.Value == KwTrue}

	case tok.Is(KEYWORD, KwNull):
		p.current++
		return &NullLit{Pos: pos}

	case tok.Is(KEYWORD, KwUndefined):
		p.current++
		return &UndefinedLit{Pos: pos}

	case tok.Type == KEYWORD && IsNative(tok.Value):
		return p.parseNativeCall()

	case tok.Type == IDENT:
		switch p.peekAt(1).Type {
		case LPAREN:
			return p.parseCall()
		case LBRACKET:
			p.current++
			p.expect(LBRACKET)
			index := p.ParseExpression()
			p.expect(RBRACKET)
			return &IndexExpr{Pos: pos, Array: tok.Value, Index: index}
		}
		p.current++
		return &Ident{Pos: pos, Name: tok.Value}

	case tok.Type == LPAREN:
		p.current++
		expr := p.ParseExpression()
		p.expect(RPAREN)
		return expr

	case tok.Type == LBRACKET:
		return p.parseArrayLiteral()

	case tok.Type == LBRACE:
		return p.parseObjectLiteral()
	}

	p.fail("invalid expression starting with %s", describe(tok))
	return nil
}

func (p *Parser) parseArrayLiteral() *ArrayLit {
	open := p.expect(LBRACKET)
	lit := &ArrayLit{Pos: Pos{open.Line}}
	if !p.check(RBRACKET) {
		lit.Elements = append(lit.Elements, p.ParseExpression())
		for p.check(COMMA) {
			p.expect(COMMA)
			lit.Elements = append(lit.Elements, p.ParseExpression())
		}
	}
	p.expect(RBRACKET)
	return lit
}

func (p *Parser) parseObjectLiteral() *ObjectLit {
	open := p.expect(LBRACE)
	lit := &ObjectLit{Pos: Pos{open.Line}}
	if p.check(IDENT) {
		lit.Fields = append(lit.Fields, p.parseObjectField())
		for p.check(COMMA) {
			p.expect(COMMA)
			lit.Fields = append(lit.Fields, p.parseObjectField())
		}
	}
	p.expect(RBRACE)
	return lit
}

func (p *Parser) parseObjectField() ObjectField {
	name := p.expect(IDENT)
	p.expect(COLON)
	return ObjectField{Name: name.Value, Value: p.ParseExpression()}
}
