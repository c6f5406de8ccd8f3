package main

import (
	"strconv"
	"strings"
)

// ToSExpr converts a tree node (or a whole *Program) to its s-expression
// form, the notation used by `joule ast` and the markdown test suites.
func ToSExpr(node any) string {
	switch n := node.(type) {
	case *Program:
		return "(program" + stmtsToSExpr(n.Stmts) + ")"
	case *VarDecl:
		kw := "let"
		if n.Const {
			kw = "const"
		}
		return "(" + kw + " " + quoteSExpr(n.Name) + " " + ToSExpr(n.Value) + ")"
	case *FunctionDecl:
		params := make([]string, len(n.Params))
		for i, param := range n.Params {
			params[i] = quoteSExpr(param)
		}
		return "(function " + quoteSExpr(n.Name) + " (" + strings.Join(params, " ") + ") " + blockToSExpr(n.Body) + ")"
	case *IfStmt:
		result := "(if " + ToSExpr(n.Cond) + " " + blockToSExpr(n.Then)
		if n.Else != nil {
			result += " " + blockToSExpr(n.Else)
		}
		return result + ")"
	case *WhileStmt:
		return "(while " + ToSExpr(n.Cond) + " " + blockToSExpr(n.Body) + ")"
	case *ForStmt:
		init := "nil"
		if n.Init != nil {
			init = ToSExpr(n.Init)
		}
		return "(for " + init + " " + ToSExpr(n.Cond) + " " + ToSExpr(n.Next) + " " + blockToSExpr(n.Body) + ")"
	case *ReturnStmt:
		if n.Value == nil {
			return "(return)"
		}
		return "(return " + ToSExpr(n.Value) + ")"
	case *Assignment:
		return "(assign " + quoteSExpr(n.Name) + " " + ToSExpr(n.Value) + ")"
	case *CallExpr:
		return "(call " + quoteSExpr(n.Name) + exprsToSExpr(n.Args) + ")"
	case *NativeCall:
		return "(native " + quoteSExpr(n.Name) + exprsToSExpr(n.Args) + ")"
	case *NumberLit:
		if n.Value == float64(int64(n.Value)) {
			return "(number " + strconv.FormatInt(int64(n.Value), 10) + ")"
		}
		return "(number " + quoteSExpr(strconv.FormatFloat(n.Value, 'f', -1, 64)) + ")"
	case *StringLit:
		return "(string " + quoteSExpr(n.Value) + ")"
	case *BoolLit:
		return "(boolean " + strconv.FormatBool(n.Value) + ")"
	case *NullLit:
		return "(null)"
	case *UndefinedLit:
		return "(undefined)"
	case *Ident:
		return "(ident " + quoteSExpr(n.Name) + ")"
	case *BinaryExpr:
		return "(binary " + quoteSExpr(n.Op) + " " + ToSExpr(n.Left) + " " + ToSExpr(n.Right) + ")"
	case *UnaryExpr:
		return "(unary " + quoteSExpr(n.Op) + " " + ToSExpr(n.Operand) + ")"
	case *ArrayLit:
		return "(array" + exprsToSExpr(n.Elements) + ")"
	case *ObjectLit:
		result := "(object"
		for _, field := range n.Fields {
			result += " " + quoteSExpr(field.Name) + " " + ToSExpr(field.Value)
		}
		return result + ")"
	case *IndexExpr:
		return "(idx (ident " + quoteSExpr(n.Array) + ") " + ToSExpr(n.Index) + ")"
	default:
		return ""
	}
}

func stmtsToSExpr(stmts []Stmt) string {
	result := ""
	for _, stmt := range stmts {
		result += " " + ToSExpr(stmt)
	}
	return result
}

func exprsToSExpr(exprs []Expr) string {
	result := ""
	for _, expr := range exprs {
		result += " " + ToSExpr(expr)
	}
	return result
}

func blockToSExpr(stmts []Stmt) string {
	return "(block" + stmtsToSExpr(stmts) + ")"
}

// quoteSExpr quotes s the way the sexy reader expects: only backslash and
// double quote are escaped.
func quoteSExpr(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
