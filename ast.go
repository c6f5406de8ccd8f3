package main

// Node is implemented by every tree node. Line is the source line the node
// started on.
type Node interface {
	Line() int
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Program is the ordered list of top-level statements.
type Program struct {
	Stmts []Stmt
}

// Pos carries the source line of a node.
type Pos struct {
	LineNo int
}

func (p Pos) Line() int { return p.LineNo }

// Statements

// VarDecl declares a variable (let) or a constant (const).
//
//	let x = 1 + 2;
//	    ^   ^^^^^  VarDecl{Name: "x", Value: BinaryExpr{...}}
type VarDecl struct {
	Pos
	Name  string
	Value Expr
	Const bool
}

// FunctionDecl declares a user function. Functions are hoisted: they can be
// called before the declaration.
type FunctionDecl struct {
	Pos
	Name   string
	Params []string
	Body   []Stmt
}

// IfStmt is if/else. Else is nil when there is no else branch and non-nil
// (possibly empty) when there is one.
type IfStmt struct {
	Pos
	Cond Expr
	Then []Stmt
	Else []Stmt
}

type WhileStmt struct {
	Pos
	Cond Expr
	Body []Stmt
}

// ForStmt is for (init; cond; next) body. Init is a VarDecl, an Assignment
// or nil.
type ForStmt struct {
	Pos
	Init Stmt
	Cond Expr
	Next Expr
	Body []Stmt
}

// ReturnStmt returns from a function. Value is nil for a bare return.
type ReturnStmt struct {
	Pos
	Value Expr
}

// Statements that are also expressions

// Assignment stores a new value in an existing variable.
type Assignment struct {
	Pos
	Name  string
	Value Expr
}

// CallExpr calls a user function.
type CallExpr struct {
	Pos
	Name string
	Args []Expr
}

// NativeCall calls one of the built-in functions (print, console, prompt,
// parseInt, parseFloat, typeof).
type NativeCall struct {
	Pos
	Name string
	Args []Expr
}

// Expressions

type NumberLit struct {
	Pos
	Value float64
}

// StringLit holds the text between the quotes.
type StringLit struct {
	Pos
	Value string
}

type BoolLit struct {
	Pos
	Value bool
}

type NullLit struct {
	Pos
}

type UndefinedLit struct {
	Pos
}

type Ident struct {
	Pos
	Name string
}

// BinaryExpr represents Left Op Right.
//
//	x + 1
//	^ ^ ^
//	| | Right
//	| Op
//	Left
type BinaryExpr struct {
	Pos
	Op    string
	Left  Expr
	Right Expr
}

// UnaryExpr is !Operand or -Operand.
type UnaryExpr struct {
	Pos
	Op      string
	Operand Expr
}

type ArrayLit struct {
	Pos
	Elements []Expr
}

// ObjectField is one name: value pair of an object literal.
type ObjectField struct {
	Name  string
	Value Expr
}

// ObjectLit keeps its fields in source order.
type ObjectLit struct {
	Pos
	Fields []ObjectField
}

// IndexExpr reads an element of a named array: Array[Index].
type IndexExpr struct {
	Pos
	Array string
	Index Expr
}

func (*VarDecl) stmtNode()      {}
func (*FunctionDecl) stmtNode() {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*ForStmt) stmtNode()      {}
func (*ReturnStmt) stmtNode()   {}
func (*Assignment) stmtNode()   {}
func (*CallExpr) stmtNode()     {}
func (*NativeCall) stmtNode()   {}

func (*Assignment) exprNode()   {}
func (*CallExpr) exprNode()     {}
func (*NativeCall) exprNode()   {}
func (*NumberLit) exprNode()    {}
func (*StringLit) exprNode()    {}
func (*BoolLit) exprNode()      {}
func (*NullLit) exprNode()      {}
func (*UndefinedLit) exprNode() {}
func (*Ident) exprNode()        {}
func (*BinaryExpr) exprNode()   {}
func (*UnaryExpr) exprNode()    {}
func (*ArrayLit) exprNode()     {}
func (*ObjectLit) exprNode()    {}
func (*IndexExpr) exprNode()    {}

// isComparisonOp reports whether op always produces a boolean.
func isComparisonOp(op string) bool {
	switch op {
	case "==", "===", "!=", "!==", ">", "<", ">=", "<=":
		return true
	default:
		return false
	}
}

func isLogicalOp(op string) bool {
	return op == "&&" || op == "||"
}

func isArithmeticOp(op string) bool {
	switch op {
	case "+", "-", "*", "/", "%":
		return true
	default:
		return false
	}
}
