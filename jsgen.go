package main

import (
	"strconv"
	"strings"
)

// EmitJavaScript re-emits prog as JavaScript source. Every binary operation
// is parenthesized, so the output does not depend on operator precedence.
func EmitJavaScript(prog *Program) (string, error) {
	lines := make([]string, 0, len(prog.Stmts))
	for _, stmt := range prog.Stmts {
		code, err := jsStatement(stmt)
		if err != nil {
			return "", err
		}
		lines = append(lines, code)
	}
	return strings.Join(lines, "\n"), nil
}

func jsStatement(stmt Stmt) (string, error) {
	switch s := stmt.(type) {
	case *VarDecl:
		value, err := jsExpr(s.Value)
		if err != nil {
			return "", err
		}
		kw := "let"
		if s.Const {
			kw = "const"
		}
		return kw + " " + s.Name + " = " + value + ";", nil

	case *Assignment, *CallExpr, *NativeCall:
		code, err := jsExpr(s.(Expr))
		if err != nil {
			return "", err
		}
		return code + ";", nil

	case *FunctionDecl:
		body, err := jsBlock(s.Body)
		if err != nil {
			return "", err
		}
		return "function " + s.Name + "(" + strings.Join(s.Params, ", ") + ") " + body, nil

	case *IfStmt:
		cond, err := jsExpr(s.Cond)
		if err != nil {
			return "", err
		}
		then, err := jsBlock(s.Then)
		if err != nil {
			return "", err
		}
		code := "if (" + cond + ") " + then
		if s.Else == nil {
			return code, nil
		}
		if len(s.Else) == 1 {
			if elseIf, ok := s.Else[0].(*IfStmt); ok {
				rest, err := jsStatement(elseIf)
				if err != nil {
					return "", err
				}
				return code + " else " + rest, nil
			}
		}
		otherwise, err := jsBlock(s.Else)
		if err != nil {
			return "", err
		}
		return code + " else " + otherwise, nil

	case *WhileStmt:
		cond, err := jsExpr(s.Cond)
		if err != nil {
			return "", err
		}
		body, err := jsBlock(s.Body)
		if err != nil {
			return "", err
		}
		return "while (" + cond + ") " + body, nil

	case *ForStmt:
		init := ""
		if s.Init != nil {
			code, err := jsStatement(s.Init)
			if err != nil {
				return "", err
			}
			init = strings.TrimSuffix(code, ";")
		}
		cond, err := jsExpr(s.Cond)
		if err != nil {
			return "", err
		}
		next, err := jsExpr(s.Next)
		if err != nil {
			return "", err
		}
		body, err := jsBlock(s.Body)
		if err != nil {
			return "", err
		}
		return "for (" + init + "; " + cond + "; " + next + ") " + body, nil

	case *ReturnStmt:
		if s.Value == nil {
			return "return;", nil
		}
		value, err := jsExpr(s.Value)
		if err != nil {
			return "", err
		}
		return "return " + value + ";", nil

	default:
		return "", newError(ErrUnsupportedConstruct, stmt.Line(), "cannot emit statement %T", stmt)
	}
}

// jsBlock renders { ... } with the body indented by two spaces.
func jsBlock(stmts []Stmt) (string, error) {
	if len(stmts) == 0 {
		return "{\n}", nil
	}
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, stmt := range stmts {
		code, err := jsStatement(stmt)
		if err != nil {
			return "", err
		}
		for _, line := range strings.Split(code, "\n") {
			if strings.TrimSpace(line) != "" {
				sb.WriteString("  ")
			}
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	sb.WriteString("}")
	return sb.String(), nil
}

func jsExprs(exprs []Expr) (string, error) {
	parts := make([]string, len(exprs))
	for i, expr := range exprs {
		code, err := jsExpr(expr)
		if err != nil {
			return "", err
		}
		parts[i] = code
	}
	return strings.Join(parts, ", "), nil
}

func jsExpr(expr Expr) (string, error) {
	switch e := expr.(type) {
	case *NumberLit:
		return strconv.FormatFloat(e.Value, 'f', -1, 64), nil
	case *StringLit:
		return jsQuote(e.Value), nil
	case *BoolLit:
		return strconv.FormatBool(e.Value), nil
	case *NullLit:
		return "null", nil
	case *UndefinedLit:
		return "undefined", nil
	case *Ident:
		return e.Name, nil

	case *BinaryExpr:
		left, err := jsExpr(e.Left)
		if err != nil {
			return "", err
		}
		right, err := jsExpr(e.Right)
		if err != nil {
			return "", err
		}
		return "(" + left + " " + e.Op + " " + right + ")", nil

	case *UnaryExpr:
		operand, err := jsExpr(e.Operand)
		if err != nil {
			return "", err
		}
		return "(" + e.Op + operand + ")", nil

	case *ArrayLit:
		elements, err := jsExprs(e.Elements)
		if err != nil {
			return "", err
		}
		return "[" + elements + "]", nil

	case *ObjectLit:
		if len(e.Fields) == 0 {
			return "{}", nil
		}
		fields := make([]string, len(e.Fields))
		for i, field := range e.Fields {
			value, err := jsExpr(field.Value)
			if err != nil {
				return "", err
			}
			fields[i] = field.Name + ": " + value
		}
		return "{ " + strings.Join(fields, ", ") + " }", nil

	case *IndexExpr:
		index, err := jsExpr(e.Index)
		if err != nil {
			return "", err
		}
		return e.Array + "[" + index + "]", nil

	case *Assignment:
		value, err := jsExpr(e.Value)
		if err != nil {
			return "", err
		}
		return e.Name + " = " + value, nil

	case *CallExpr:
		args, err := jsExprs(e.Args)
		if err != nil {
			return "", err
		}
		return e.Name + "(" + args + ")", nil

	case *NativeCall:
		return jsNativeCall(e)

	default:
		return "", newError(ErrUnsupportedConstruct, expr.Line(), "cannot emit expression %T", expr)
	}
}

func jsNativeCall(e *NativeCall) (string, error) {
	switch e.Name {
	case NativePrint, NativeConsole:
		args, err := jsExprs(e.Args)
		if err != nil {
			return "", err
		}
		return "console.log(" + args + ")", nil
	case NativeTypeof:
		if len(e.Args) == 0 {
			return "typeof undefined", nil
		}
		operand, err := jsExpr(e.Args[0])
		if err != nil {
			return "", err
		}
		return "typeof " + operand, nil
	case NativePrompt, NativeParseInt, NativeParseFloat:
		args, err := jsExprs(e.Args)
		if err != nil {
			return "", err
		}
		return e.Name + "(" + args + ")", nil
	default:
		return "", newError(ErrUnsupportedConstruct, e.Line(), "cannot emit native function '%s'", e.Name)
	}
}

// jsQuote quotes s with double quotes unless s contains one. The lexer has
// no escapes, so a string never holds both quote characters.
func jsQuote(s string) string {
	if strings.Contains(s, `"`) {
		return "'" + s + "'"
	}
	return `"` + s + `"`
}
