package main

import (
	"fmt"
	"math"
	"strings"
)

// JasminOptions controls the class-level shape of the generated assembly.
type JasminOptions struct {
	ClassName  string
	StackLimit int
}

func DefaultJasminOptions() JasminOptions {
	return JasminOptions{ClassName: "Main", StackLimit: 100}
}

// MethodInfo summarizes one generated method.
type MethodInfo struct {
	Name   string
	Locals int
}

// JasminGen lowers a validated program to Jasmin assembly text.
type JasminGen struct {
	facts     *TypeFacts
	opts      JasminOptions
	functions map[string]*FunctionEntry
	nextLabel int // shared by every method so labels never repeat
	out       strings.Builder

	Methods []MethodInfo
}

func NewJasminGen(facts *TypeFacts, opts JasminOptions) *JasminGen {
	g := &JasminGen{facts: facts, opts: opts, functions: map[string]*FunctionEntry{}}
	for _, fn := range facts.Functions {
		g.functions[fn.Name] = fn
	}
	return g
}

// GenerateJasmin lowers prog, which must have been accepted by Analyze.
func GenerateJasmin(prog *Program, facts *TypeFacts, opts JasminOptions) (string, error) {
	return NewJasminGen(facts, opts).Generate(prog)
}

// LabelCount returns the number of labels allocated so far.
func (g *JasminGen) LabelCount() int {
	return g.nextLabel
}

func (g *JasminGen) newLabel(prefix string) string {
	l := fmt.Sprintf("%s%d", prefix, g.nextLabel)
	g.nextLabel++
	return l
}

func (g *JasminGen) line(format string, args ...any) {
	fmt.Fprintf(&g.out, format+"\n", args...)
}

// Generate emits the class preamble, the entry method and then one method
// per user function in declaration order.
func (g *JasminGen) Generate(prog *Program) (string, error) {
	g.line(".class public %s", g.opts.ClassName)
	g.line(".super java/lang/Object")
	g.line("")
	g.line(".method public <init>()V")
	g.line("  aload_0")
	g.line("  invokespecial java/lang/Object/<init>()V")
	g.line("  return")
	g.line(".end method")

	if err := g.genMethod("main", nil, prog.Stmts, true); err != nil {
		return "", err
	}
	for _, fn := range g.facts.Functions {
		if err := g.genMethod(fn.Name, fn.Params, fn.Body, false); err != nil {
			return "", err
		}
	}
	return g.out.String(), nil
}

func (g *JasminGen) signature(arity int) string {
	return "(" + strings.Repeat("I", arity) + ")I"
}

func (g *JasminGen) genMethod(name string, params []string, body []Stmt, isMain bool) error {
	m := &methodGen{
		g:       g,
		isMain:  isMain,
		slots:   map[string]*slotInfo{},
		byClass: map[slotKey]*slotInfo{},
	}
	if isMain {
		m.nextSlot = 1 // slot 0 holds the argument vector
	}
	for _, param := range params {
		m.allocSlot(param, slotValue)
	}
	for _, stmt := range body {
		if err := m.genStmt(stmt); err != nil {
			return err
		}
	}

	locals := max(m.nextSlot, 1)
	g.Methods = append(g.Methods, MethodInfo{Name: name, Locals: locals})

	g.line("")
	if isMain {
		g.line(".method public static main([Ljava/lang/String;)V")
	} else {
		g.line(".method public static %s%s", name, g.signature(len(params)))
	}
	g.line("  .limit stack %d", g.opts.StackLimit)
	g.line("  .limit locals %d", locals)
	g.out.WriteString(m.body.String())
	if isMain {
		g.line("  return")
	} else {
		// Reached only when the body did not return.
		g.line("  iconst_0")
		g.line("  ireturn")
	}
	g.line(".end method")
	return nil
}

// slotInfo is a local variable slot. Its class, and with it IsRef, is
// fixed when the slot is allocated.
type slotInfo struct {
	Index int
	IsRef bool
	Class string
}

// Slot classes: what the JVM holds in the slot.
const (
	slotValue  = "I"
	slotString = "Ljava/lang/String;"
	slotArray  = "[I"
	slotObject = "Ljava/lang/Object;"
)

// slotClass returns the class of the slot a declaration with this
// initializer is stored into.
func slotClass(isRef bool, typ *Type) string {
	switch {
	case !isRef:
		return slotValue
	case typ.Kind == KindString:
		return slotString
	case typ.Kind == KindArray:
		return slotArray
	default:
		return slotObject
	}
}

type slotKey struct {
	name  string
	class string
}

// methodGen holds the per-method state: the slot map and the instruction
// buffer.
//
// A name keeps one slot per slot class. slots holds the binding currently
// in effect; a declaration that needs another class rebinds the name, and
// the enclosing block restores the outer binding when it ends.
type methodGen struct {
	g        *JasminGen
	isMain   bool
	slots    map[string]*slotInfo
	byClass  map[slotKey]*slotInfo
	blocks   []map[string]*slotInfo // outer bindings to restore, innermost last
	nextSlot int
	body     strings.Builder
}

func (m *methodGen) emit(format string, args ...any) {
	fmt.Fprintf(&m.body, "  "+format+"\n", args...)
}

func (m *methodGen) label(name string) {
	fmt.Fprintf(&m.body, "%s:\n", name)
}

// allocSlot returns the slot name is declared into, allocating it the
// first time name is seen with this class.
func (m *methodGen) allocSlot(name, class string) *slotInfo {
	current, bound := m.slots[name]
	if bound && current.Class == class {
		return current
	}
	key := slotKey{name, class}
	slot, ok := m.byClass[key]
	if !ok {
		slot = &slotInfo{Index: m.nextSlot, IsRef: class != slotValue, Class: class}
		m.byClass[key] = slot
		m.nextSlot++
	}
	if bound && len(m.blocks) > 0 {
		saved := m.blocks[len(m.blocks)-1]
		if _, ok := saved[name]; !ok {
			saved[name] = current
		}
	}
	m.slots[name] = slot
	return slot
}

func (m *methodGen) pushBlock() {
	m.blocks = append(m.blocks, map[string]*slotInfo{})
}

// popBlock restores the bindings the block's declarations replaced.
func (m *methodGen) popBlock() {
	saved := m.blocks[len(m.blocks)-1]
	m.blocks = m.blocks[:len(m.blocks)-1]
	for name, slot := range saved {
		m.slots[name] = slot
	}
}

// genBlock generates a nested block.
func (m *methodGen) genBlock(stmts []Stmt) error {
	m.pushBlock()
	defer m.popBlock()
	return m.genStmts(stmts)
}

func (m *methodGen) lookupSlot(name string, line int) (*slotInfo, error) {
	slot, ok := m.slots[name]
	if !ok {
		return nil, newError(ErrUnsupportedConstruct, line, "variable '%s' has no slot", name)
	}
	return slot, nil
}

func (m *methodGen) store(slot *slotInfo) {
	if slot.IsRef {
		m.emit("astore %d", slot.Index)
	} else {
		m.emit("istore %d", slot.Index)
	}
}

func (m *methodGen) genStmts(stmts []Stmt) error {
	for _, stmt := range stmts {
		if err := m.genStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (m *methodGen) genStmt(stmt Stmt) error {
	switch s := stmt.(type) {
	case *VarDecl:
		// The initializer still sees the outer binding of the name.
		isRef := m.isRefExpr(s.Value)
		if err := m.genInto(&slotInfo{IsRef: isRef}, s.Value); err != nil {
			return err
		}
		m.store(m.allocSlot(s.Name, slotClass(isRef, m.g.facts.TypeOf(s.Value))))
		return nil

	case *Assignment:
		return m.genAssign(s, false)

	case *FunctionDecl:
		// Emitted as its own method.
		return nil

	case *IfStmt:
		labelElse := m.g.newLabel("ELSE")
		labelEnd := m.g.newLabel("ENDIF")
		if err := m.genCondition(s.Cond, labelElse); err != nil {
			return err
		}
		if err := m.genBlock(s.Then); err != nil {
			return err
		}
		if s.Else != nil {
			m.emit("goto %s", labelEnd)
		}
		m.label(labelElse)
		if s.Else != nil {
			if err := m.genBlock(s.Else); err != nil {
				return err
			}
			m.label(labelEnd)
		}
		return nil

	case *WhileStmt:
		labelStart := m.g.newLabel("WHILE")
		labelEnd := m.g.newLabel("ENDWHILE")
		m.label(labelStart)
		if err := m.genCondition(s.Cond, labelEnd); err != nil {
			return err
		}
		if err := m.genBlock(s.Body); err != nil {
			return err
		}
		m.emit("goto %s", labelStart)
		m.label(labelEnd)
		return nil

	case *ForStmt:
		labelStart := m.g.newLabel("FOR")
		labelEnd := m.g.newLabel("ENDFOR")
		// One block covers init, condition, next and body.
		m.pushBlock()
		defer m.popBlock()
		if s.Init != nil {
			if err := m.genStmt(s.Init); err != nil {
				return err
			}
		}
		m.label(labelStart)
		if err := m.genCondition(s.Cond, labelEnd); err != nil {
			return err
		}
		if err := m.genStmts(s.Body); err != nil {
			return err
		}
		if assign, ok := s.Next.(*Assignment); ok {
			if err := m.genAssign(assign, false); err != nil {
				return err
			}
		} else if err := m.genDiscard(s.Next); err != nil {
			return err
		}
		m.emit("goto %s", labelStart)
		m.label(labelEnd)
		return nil

	case *ReturnStmt:
		if m.isMain {
			if s.Value != nil {
				if err := m.genDiscard(s.Value); err != nil {
					return err
				}
			}
			m.emit("return")
			return nil
		}
		if s.Value == nil {
			m.emit("iconst_0")
		} else if err := m.genValue(s.Value); err != nil {
			return err
		}
		m.emit("ireturn")
		return nil

	case *CallExpr:
		if err := m.genCall(s); err != nil {
			return err
		}
		m.emit("pop")
		return nil

	case *NativeCall:
		if s.Name == NativePrint || s.Name == NativeConsole {
			return m.genPrint(s)
		}
		return m.genDiscard(s)

	default:
		return newError(ErrUnsupportedConstruct, stmt.Line(), "no lowering for statement %T", stmt)
	}
}

// genInto pushes value in the representation slot expects.
func (m *methodGen) genInto(slot *slotInfo, value Expr) error {
	if slot.IsRef {
		return m.genRef(value)
	}
	return m.genValue(value)
}

// genAssign stores into an existing slot. With keep set the stored value
// stays on the stack.
func (m *methodGen) genAssign(a *Assignment, keep bool) error {
	slot, err := m.lookupSlot(a.Name, a.Line())
	if err != nil {
		return err
	}
	if err := m.genInto(slot, a.Value); err != nil {
		return err
	}
	if keep {
		m.emit("dup")
	}
	m.store(slot)
	return nil
}

// genDiscard evaluates expr for its side effects.
func (m *methodGen) genDiscard(expr Expr) error {
	if m.isRefExpr(expr) {
		if err := m.genRef(expr); err != nil {
			return err
		}
	} else if err := m.genValue(expr); err != nil {
		return err
	}
	m.emit("pop")
	return nil
}

// genCondition branches to labelFalse when cond does not hold. Direct
// comparisons branch on the inverted comparison without materializing a
// boolean.
func (m *methodGen) genCondition(cond Expr, labelFalse string) error {
	if bin, ok := cond.(*BinaryExpr); ok && isComparisonOp(bin.Op) {
		if err := m.genValue(bin.Left); err != nil {
			return err
		}
		if err := m.genValue(bin.Right); err != nil {
			return err
		}
		m.emit("%s %s", invertedBranch[bin.Op], labelFalse)
		return nil
	}
	if err := m.genValue(cond); err != nil {
		return err
	}
	m.emit("ifeq %s", labelFalse)
	return nil
}

var invertedBranch = map[string]string{
	"<":   "if_icmpge",
	"<=":  "if_icmpgt",
	">":   "if_icmple",
	">=":  "if_icmplt",
	"==":  "if_icmpne",
	"===": "if_icmpne",
	"!=":  "if_icmpeq",
	"!==": "if_icmpeq",
}

type comparison struct {
	branch string
	prefix string
}

var comparisons = map[string]comparison{
	"==":  {"if_icmpeq", "EQ_"},
	"===": {"if_icmpeq", "EQ_"},
	"!=":  {"if_icmpne", "NE_"},
	"!==": {"if_icmpne", "NE_"},
	"<":   {"if_icmplt", "LT_"},
	"<=":  {"if_icmple", "LE_"},
	">":   {"if_icmpgt", "GT_"},
	">=":  {"if_icmpge", "GE_"},
}

var arithmetic = map[string]string{
	"+":  "iadd",
	"-":  "isub",
	"*":  "imul",
	"/":  "idiv",
	"%":  "irem",
	"&&": "iand",
	"||": "ior",
}

// isRefExpr reports whether expr produces a heap reference.
func (m *methodGen) isRefExpr(expr Expr) bool {
	switch e := expr.(type) {
	case *StringLit, *ArrayLit, *ObjectLit, *NullLit, *UndefinedLit:
		return true
	case *NativeCall:
		return e.Name == NativeTypeof || e.Name == NativePrompt
	case *Ident:
		slot, ok := m.slots[e.Name]
		return ok && slot.IsRef
	case *Assignment:
		slot, ok := m.slots[e.Name]
		return ok && slot.IsRef
	default:
		return false
	}
}

// genValue pushes expr as an int.
func (m *methodGen) genValue(expr Expr) error {
	switch e := expr.(type) {
	case *NumberLit:
		m.pushInt(e.Value)
	case *BoolLit:
		if e.Value {
			m.emit("iconst_1")
		} else {
			m.emit("iconst_0")
		}
	case *NullLit, *UndefinedLit, *ObjectLit:
		m.emit("iconst_0")
	case *StringLit, *ArrayLit:
		if err := m.genRef(e); err != nil {
			return err
		}
		m.coerceToValue(m.g.facts.TypeOf(e))

	case *Ident:
		slot, err := m.lookupSlot(e.Name, e.Line())
		if err != nil {
			return err
		}
		if !slot.IsRef {
			m.emit("iload %d", slot.Index)
			return nil
		}
		typ := m.g.facts.TypeOf(e)
		switch typ.Kind {
		case KindNull, KindUndefined, KindObject:
			m.emit("iconst_0")
			return nil
		}
		m.emit("aload %d", slot.Index)
		m.coerceToValue(typ)

	case *Assignment:
		if err := m.genAssign(e, true); err != nil {
			return err
		}
		if m.isRefExpr(e) {
			m.coerceToValue(m.g.facts.TypeOf(e))
		}

	case *BinaryExpr:
		return m.genBinary(e)

	case *UnaryExpr:
		if err := m.genValue(e.Operand); err != nil {
			return err
		}
		switch e.Op {
		case "!":
			labelZero := m.g.newLabel("NOT_ZERO")
			labelEnd := m.g.newLabel("NOT_END")
			m.emit("ifeq %s", labelZero)
			m.emit("iconst_0")
			m.emit("goto %s", labelEnd)
			m.label(labelZero)
			m.emit("iconst_1")
			m.label(labelEnd)
		case "-":
			m.emit("ineg")
		default:
			return newError(ErrUnsupportedConstruct, e.Line(), "no lowering for unary operator '%s'", e.Op)
		}

	case *IndexExpr:
		slot, err := m.lookupSlot(e.Array, e.Line())
		if err != nil {
			return err
		}
		if !slot.IsRef {
			return newError(ErrUnsupportedConstruct, e.Line(), "'%s' does not hold an array in this method", e.Array)
		}
		m.emit("aload %d", slot.Index)
		if err := m.genValue(e.Index); err != nil {
			return err
		}
		m.emit("iaload")

	case *CallExpr:
		return m.genCall(e)

	case *NativeCall:
		return m.genNativeValue(e)

	default:
		return newError(ErrUnsupportedConstruct, expr.Line(), "no lowering for expression %T", expr)
	}
	return nil
}

// coerceToValue turns the reference on top of the stack into an int:
// strings give their length, arrays their element count, boxed values are
// unboxed and anything else is 0.
func (m *methodGen) coerceToValue(typ *Type) {
	switch typ.Kind {
	case KindString:
		m.emit("invokevirtual java/lang/String/length()I")
	case KindArray:
		m.emit("arraylength")
	case KindNumber, KindBoolean, KindUnknown:
		m.emit("checkcast java/lang/Integer")
		m.emit("invokevirtual java/lang/Integer/intValue()I")
	default:
		m.emit("pop")
		m.emit("iconst_0")
	}
}

// genRef pushes expr as a reference. Values are boxed.
func (m *methodGen) genRef(expr Expr) error {
	if !m.isRefExpr(expr) {
		if err := m.genValue(expr); err != nil {
			return err
		}
		m.emit("invokestatic java/lang/Integer/valueOf(I)Ljava/lang/Integer;")
		return nil
	}
	switch e := expr.(type) {
	case *StringLit:
		m.emit("ldc %s", jasminString(e.Value))
	case *NullLit, *UndefinedLit:
		m.emit("aconst_null")
	case *ArrayLit:
		m.pushInt(float64(len(e.Elements)))
		m.emit("newarray int")
		for i, el := range e.Elements {
			m.emit("dup")
			m.pushInt(float64(i))
			if err := m.genValue(el); err != nil {
				return err
			}
			m.emit("iastore")
		}
	case *ObjectLit:
		m.emit("new java/util/HashMap")
		m.emit("dup")
		m.emit("invokespecial java/util/HashMap/<init>()V")
		for _, field := range e.Fields {
			m.emit("dup")
			m.emit("ldc %s", jasminString(field.Name))
			if err := m.genRef(field.Value); err != nil {
				return err
			}
			m.emit("invokevirtual java/util/HashMap/put(Ljava/lang/Object;Ljava/lang/Object;)Ljava/lang/Object;")
			m.emit("pop")
		}
	case *Ident:
		slot, err := m.lookupSlot(e.Name, e.Line())
		if err != nil {
			return err
		}
		m.emit("aload %d", slot.Index)
	case *Assignment:
		return m.genAssign(e, true)
	case *NativeCall:
		if e.Name == NativeTypeof {
			return m.genTypeof(e)
		}
		return m.genPrompt(e)
	}
	return nil
}

func (m *methodGen) genBinary(e *BinaryExpr) error {
	if err := m.genValue(e.Left); err != nil {
		return err
	}
	if err := m.genValue(e.Right); err != nil {
		return err
	}
	if op, ok := arithmetic[e.Op]; ok {
		m.emit("%s", op)
		return nil
	}
	cmp, ok := comparisons[e.Op]
	if !ok {
		return newError(ErrUnsupportedConstruct, e.Line(), "no lowering for operator '%s'", e.Op)
	}
	labelTrue := m.g.newLabel(cmp.prefix + "TRUE")
	labelEnd := m.g.newLabel(cmp.prefix + "END")
	m.emit("%s %s", cmp.branch, labelTrue)
	m.emit("iconst_0")
	m.emit("goto %s", labelEnd)
	m.label(labelTrue)
	m.emit("iconst_1")
	m.label(labelEnd)
	return nil
}

// genCall pushes the arguments left to right and invokes the function. The
// result stays on the stack.
func (m *methodGen) genCall(e *CallExpr) error {
	fn, ok := m.g.functions[e.Name]
	if !ok {
		return newError(ErrUnsupportedConstruct, e.Line(), "function '%s' was not analyzed", e.Name)
	}
	for _, arg := range e.Args {
		if err := m.genValue(arg); err != nil {
			return err
		}
	}
	m.emit("invokestatic %s/%s%s", m.g.opts.ClassName, e.Name, m.g.signature(fn.Arity()))
	return nil
}

func (m *methodGen) genNativeValue(e *NativeCall) error {
	switch e.Name {
	case NativeParseInt, NativeParseFloat:
		if len(e.Args) == 0 {
			m.emit("iconst_0")
			return nil
		}
		arg := e.Args[0]
		if m.g.facts.TypeOf(arg).Kind != KindString {
			// Already numeric.
			return m.genValue(arg)
		}
		if err := m.genRef(arg); err != nil {
			return err
		}
		if e.Name == NativeParseInt {
			m.emit("invokestatic java/lang/Integer/parseInt(Ljava/lang/String;)I")
		} else {
			m.emit("invokestatic java/lang/Double/parseDouble(Ljava/lang/String;)D")
			m.emit("d2i")
		}
		return nil

	case NativeTypeof, NativePrompt:
		if err := m.genRef(e); err != nil {
			return err
		}
		m.coerceToValue(TypeString)
		return nil

	case NativePrint, NativeConsole:
		if err := m.genPrint(e); err != nil {
			return err
		}
		m.emit("iconst_0")
		return nil

	default:
		return newError(ErrUnsupportedConstruct, e.Line(), "no lowering for native function '%s'", e.Name)
	}
}

// genTypeof pushes the type name of the argument, which is known
// statically.
func (m *methodGen) genTypeof(e *NativeCall) error {
	name := "undefined"
	for i, arg := range e.Args {
		switch arg.(type) {
		case *Ident, *NumberLit, *StringLit, *BoolLit, *NullLit, *UndefinedLit:
		default:
			if err := m.genDiscard(arg); err != nil {
				return err
			}
		}
		if i == 0 {
			name = m.g.facts.TypeOf(arg).JSTypeName()
		}
	}
	m.emit("ldc %s", jasminString(name))
	return nil
}

// genPrompt prints the message and reads one line from standard input.
func (m *methodGen) genPrompt(e *NativeCall) error {
	if len(e.Args) > 0 {
		m.emit("getstatic java/lang/System/out Ljava/io/PrintStream;")
		if err := m.genPrintArg(e.Args[0], "print"); err != nil {
			return err
		}
	}
	m.emit("new java/util/Scanner")
	m.emit("dup")
	m.emit("getstatic java/lang/System/in Ljava/io/InputStream;")
	m.emit("invokespecial java/util/Scanner/<init>(Ljava/io/InputStream;)V")
	m.emit("invokevirtual java/util/Scanner/nextLine()Ljava/lang/String;")
	return nil
}

// genPrint prints its arguments separated by spaces and ends the line.
func (m *methodGen) genPrint(e *NativeCall) error {
	switch len(e.Args) {
	case 0:
		m.emit("getstatic java/lang/System/out Ljava/io/PrintStream;")
		m.emit(`ldc ""`)
		m.emit("invokevirtual java/io/PrintStream/println(Ljava/lang/String;)V")
		return nil
	case 1:
		m.emit("getstatic java/lang/System/out Ljava/io/PrintStream;")
		return m.genPrintArg(e.Args[0], "println")
	}
	for i, arg := range e.Args {
		if i > 0 {
			m.emit("getstatic java/lang/System/out Ljava/io/PrintStream;")
			m.emit(`ldc " "`)
			m.emit("invokevirtual java/io/PrintStream/print(Ljava/lang/String;)V")
		}
		m.emit("getstatic java/lang/System/out Ljava/io/PrintStream;")
		if err := m.genPrintArg(arg, "print"); err != nil {
			return err
		}
	}
	m.emit("getstatic java/lang/System/out Ljava/io/PrintStream;")
	m.emit("invokevirtual java/io/PrintStream/println()V")
	return nil
}

// genPrintArg pushes arg and calls the PrintStream overload chosen by its
// static type. The stream must already be on the stack.
func (m *methodGen) genPrintArg(arg Expr, method string) error {
	typ := m.g.facts.TypeOf(arg)
	switch {
	case typ.Kind == KindString && m.isRefExpr(arg):
		if err := m.genRef(arg); err != nil {
			return err
		}
		m.emit("invokevirtual java/io/PrintStream/%s(Ljava/lang/String;)V", method)

	case typ.Kind == KindUndefined && m.isRefExpr(arg):
		if _, isAssign := arg.(*Assignment); isAssign {
			if err := m.genDiscard(arg); err != nil {
				return err
			}
		}
		m.emit(`ldc "undefined"`)
		m.emit("invokevirtual java/io/PrintStream/%s(Ljava/lang/String;)V", method)

	case (typ.Kind == KindObject || typ.Kind == KindNull) && m.isRefExpr(arg):
		if err := m.genRef(arg); err != nil {
			return err
		}
		m.emit("invokestatic java/lang/String/valueOf(Ljava/lang/Object;)Ljava/lang/String;")
		m.emit("invokevirtual java/io/PrintStream/%s(Ljava/lang/String;)V", method)

	case typ.Kind == KindBoolean:
		if err := m.genValue(arg); err != nil {
			return err
		}
		m.emit("invokevirtual java/io/PrintStream/%s(Z)V", method)

	default:
		// Numbers, and arrays printed as their length.
		if err := m.genValue(arg); err != nil {
			return err
		}
		m.emit("invokevirtual java/io/PrintStream/%s(I)V", method)
	}
	return nil
}

// pushInt pushes floor(v) using the shortest constant instruction.
func (m *methodGen) pushInt(v float64) {
	n := int64(math.Max(math.MinInt32, math.Min(math.MaxInt32, math.Floor(v))))
	switch {
	case n == -1:
		m.emit("iconst_m1")
	case n >= 0 && n <= 5:
		m.emit("iconst_%d", n)
	case n >= math.MinInt8 && n <= math.MaxInt8:
		m.emit("bipush %d", n)
	case n >= math.MinInt16 && n <= math.MaxInt16:
		m.emit("sipush %d", n)
	default:
		m.emit("ldc %d", n)
	}
}

// jasminString quotes s as a Jasmin string constant.
func jasminString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
