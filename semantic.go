package main

// TypeFacts is what the analyzer learned about a valid program. The code
// generator reads it to pick instructions.
type TypeFacts struct {
	// Exprs holds the resolved type of every expression node.
	Exprs map[Expr]*Type
	// Decls holds the declared type of every let/const.
	Decls map[*VarDecl]*Type
	// Functions lists user functions in declaration order.
	Functions []*FunctionEntry
	// Globals lists the global frame's symbols after analysis.
	Globals []*Symbol
}

// TypeOf returns the recorded type of expr, or unknown.
func (f *TypeFacts) TypeOf(expr Expr) *Type {
	if t, ok := f.Exprs[expr]; ok {
		return t
	}
	return TypeUnknown
}

// LookupGlobal finds a global symbol by name, or nil.
func (f *TypeFacts) LookupGlobal(name string) *Symbol {
	for _, sym := range f.Globals {
		if sym.Name == name {
			return sym
		}
	}
	return nil
}

// Analyzer checks scope and type rules over a whole program.
type Analyzer struct {
	st    *SymbolTable
	facts *TypeFacts
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{
		st: NewSymbolTable(),
		facts: &TypeFacts{
			Exprs: map[Expr]*Type{},
			Decls: map[*VarDecl]*Type{},
		},
	}
}

// Analyze validates prog and returns its type facts. It stops at the first
// error.
func Analyze(prog *Program) (*TypeFacts, error) {
	a := NewAnalyzer()
	// Functions are registered before any body is checked so calls may
	// precede declarations.
	if err := a.hoistFunctions(prog.Stmts); err != nil {
		return nil, err
	}
	if err := a.analyzeStatements(prog.Stmts); err != nil {
		return nil, err
	}
	a.facts.Functions = a.st.Functions()
	a.facts.Globals = a.st.Globals()
	return a.facts, nil
}

// hoistFunctions registers every top-level function declaration.
func (a *Analyzer) hoistFunctions(stmts []Stmt) error {
	for _, stmt := range stmts {
		if fn, ok := stmt.(*FunctionDecl); ok {
			if _, err := a.st.DeclareFunction(fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *Analyzer) analyzeStatements(stmts []Stmt) error {
	for _, stmt := range stmts {
		if err := a.analyzeStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// analyzeBlock runs stmts in a fresh nested frame.
func (a *Analyzer) analyzeBlock(stmts []Stmt) error {
	a.st.PushScope()
	defer a.st.PopScope()
	return a.analyzeStatements(stmts)
}

func (a *Analyzer) analyzeStatement(stmt Stmt) error {
	switch s := stmt.(type) {
	case *VarDecl:
		typ, err := a.resolveType(s.Value)
		if err != nil {
			return err
		}
		if _, err := a.st.Declare(s.Name, typ, s.Const, s.Line()); err != nil {
			return err
		}
		a.facts.Decls[s] = typ
		return nil

	case *Assignment:
		_, err := a.resolveType(s)
		return err

	case *FunctionDecl:
		if fn := a.st.LookupFunction(s.Name); fn == nil || fn.Decl != s {
			// Nested declarations are not hoisted; register on sight.
			if _, err := a.st.DeclareFunction(s); err != nil {
				return err
			}
		}
		a.st.PushFunctionScope()
		defer a.st.PopScope()
		for _, param := range s.Params {
			if _, err := a.st.Declare(param, TypeUnknown, false, s.Line()); err != nil {
				return newError(ErrDuplicateDeclaration, s.Line(),
					"parameter '%s' is declared twice in function '%s'", param, s.Name)
			}
		}
		return a.analyzeStatements(s.Body)

	case *CallExpr:
		_, err := a.resolveType(s)
		return err

	case *NativeCall:
		_, err := a.resolveType(s)
		return err

	case *IfStmt:
		if _, err := a.resolveType(s.Cond); err != nil {
			return err
		}
		if err := a.analyzeBlock(s.Then); err != nil {
			return err
		}
		if s.Else != nil {
			return a.analyzeBlock(s.Else)
		}
		return nil

	case *WhileStmt:
		if _, err := a.resolveType(s.Cond); err != nil {
			return err
		}
		return a.analyzeBlock(s.Body)

	case *ForStmt:
		// One frame covers init, condition, next and body.
		a.st.PushScope()
		defer a.st.PopScope()
		if s.Init != nil {
			if err := a.analyzeStatement(s.Init); err != nil {
				return err
			}
		}
		if _, err := a.resolveType(s.Cond); err != nil {
			return err
		}
		if _, err := a.resolveType(s.Next); err != nil {
			return err
		}
		return a.analyzeStatements(s.Body)

	case *ReturnStmt:
		// Return types are not checked for consistency.
		if s.Value != nil {
			_, err := a.resolveType(s.Value)
			return err
		}
		return nil

	default:
		return newError(ErrUnsupportedConstruct, stmt.Line(), "unsupported statement %T", stmt)
	}
}

// resolveType computes the type of expr and records it in the facts.
func (a *Analyzer) resolveType(expr Expr) (*Type, error) {
	typ, err := a.computeType(expr)
	if err != nil {
		return nil, err
	}
	a.facts.Exprs[expr] = typ
	return typ, nil
}

func (a *Analyzer) computeType(expr Expr) (*Type, error) {
	switch e := expr.(type) {
	case *NumberLit:
		return TypeNumber, nil
	case *StringLit:
		return TypeString, nil
	case *BoolLit:
		return TypeBoolean, nil
	case *NullLit:
		return TypeNull, nil
	case *UndefinedLit:
		return TypeUndefined, nil

	case *Ident:
		sym := a.st.Lookup(e.Name)
		if sym == nil {
			return nil, newError(ErrUndeclaredVariable, e.Line(), "variable '%s' is not declared", e.Name)
		}
		return sym.Type, nil

	case *Assignment:
		sym := a.st.Lookup(e.Name)
		if sym == nil {
			return nil, newError(ErrUndeclaredVariable, e.Line(), "variable '%s' is not declared", e.Name)
		}
		if sym.Const {
			return nil, newError(ErrConstReassignment, e.Line(), "cannot reassign constant '%s'", e.Name)
		}
		valueType, err := a.resolveType(e.Value)
		if err != nil {
			return nil, err
		}
		if !BaseTypesEqual(sym.Type, valueType) {
			return nil, newError(ErrTypeMismatch, e.Line(), "cannot assign %s to '%s' of type %s",
				valueType.BaseType(), e.Name, sym.Type.BaseType())
		}
		return valueType, nil

	case *BinaryExpr:
		return a.resolveBinary(e)

	case *UnaryExpr:
		operand, err := a.resolveType(e.Operand)
		if err != nil {
			return nil, err
		}
		if e.Op == "!" {
			return TypeBoolean, nil
		}
		return operand, nil

	case *ArrayLit:
		return a.resolveArrayLiteral(e)

	case *ObjectLit:
		for _, field := range e.Fields {
			if _, err := a.resolveType(field.Value); err != nil {
				return nil, err
			}
		}
		return TypeObject, nil

	case *IndexExpr:
		return a.resolveIndex(e)

	case *CallExpr:
		fn := a.st.LookupFunction(e.Name)
		if fn == nil {
			return nil, newError(ErrUndeclaredFunction, e.Line(), "function '%s' is not declared", e.Name)
		}
		if len(e.Args) != fn.Arity() {
			return nil, newError(ErrArityMismatch, e.Line(), "function '%s' expects %d argument(s) but got %d",
				e.Name, fn.Arity(), len(e.Args))
		}
		if err := a.resolveArgs(e.Args); err != nil {
			return nil, err
		}
		return TypeUnknown, nil

	case *NativeCall:
		if !IsNative(e.Name) {
			return nil, newError(ErrUnknownNative, e.Line(), "native function '%s' is not recognized", e.Name)
		}
		if err := a.resolveArgs(e.Args); err != nil {
			return nil, err
		}
		switch e.Name {
		case NativeParseInt, NativeParseFloat:
			return TypeNumber, nil
		case NativeTypeof, NativePrompt:
			return TypeString, nil
		default:
			return TypeUnknown, nil
		}

	default:
		return nil, newError(ErrUnsupportedConstruct, expr.Line(), "unsupported expression %T", expr)
	}
}

func (a *Analyzer) resolveArgs(args []Expr) error {
	for _, arg := range args {
		if _, err := a.resolveType(arg); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) resolveBinary(e *BinaryExpr) (*Type, error) {
	left, err := a.resolveType(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := a.resolveType(e.Right)
	if err != nil {
		return nil, err
	}
	if isComparisonOp(e.Op) || isLogicalOp(e.Op) {
		return TypeBoolean, nil
	}
	if !left.IsUnknown() && !right.IsUnknown() && !BaseTypesEqual(left, right) {
		return nil, newError(ErrTypeMismatch, e.Line(), "operator '%s' applied to incompatible types %s and %s",
			e.Op, left.BaseType(), right.BaseType())
	}
	if isArithmeticOp(e.Op) && left.Kind != KindNumber && !left.IsUnknown() {
		return nil, newError(ErrInvalidArithmeticOperand, e.Line(), "operator '%s' requires numbers, found %s",
			e.Op, left.BaseType())
	}
	return withoutSize(left), nil
}

func (a *Analyzer) resolveArrayLiteral(e *ArrayLit) (*Type, error) {
	if len(e.Elements) == 0 {
		return ArrayOf(TypeUnknown, 0), nil
	}
	var elem *Type
	homogeneous := true
	for i, el := range e.Elements {
		typ, err := a.resolveType(el)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			elem = withoutSize(typ)
		} else if !BaseTypesEqual(elem, typ) {
			homogeneous = false
		}
	}
	if !homogeneous {
		elem = TypeMixed
	}
	return ArrayOf(elem, len(e.Elements)), nil
}

func (a *Analyzer) resolveIndex(e *IndexExpr) (*Type, error) {
	sym := a.st.Lookup(e.Array)
	if sym == nil {
		return nil, newError(ErrUndeclaredVariable, e.Line(), "variable '%s' is not declared", e.Array)
	}
	if sym.Type.Kind != KindArray {
		return nil, newError(ErrTypeMismatch, e.Line(), "'%s' is not an array", e.Array)
	}
	index, err := a.resolveType(e.Index)
	if err != nil {
		return nil, err
	}
	if index.Kind != KindNumber {
		return nil, newError(ErrTypeMismatch, e.Line(), "array index must be a number, found %s", index.BaseType())
	}
	if lit, ok := literalIndex(e.Index); ok && sym.Type.SizeKnown {
		if lit < 0 || lit >= float64(sym.Type.Size) {
			return nil, newError(ErrArrayOutOfBounds, e.Line(), "index %v is out of bounds for array '%s' of size %d",
				lit, e.Array, sym.Type.Size)
		}
	}
	if sym.Type.Elem.Kind == KindMixed {
		return TypeUnknown, nil
	}
	return sym.Type.Elem, nil
}

// literalIndex returns the value of a number literal index, including a
// negated one.
func literalIndex(expr Expr) (float64, bool) {
	switch e := expr.(type) {
	case *NumberLit:
		return e.Value, true
	case *UnaryExpr:
		if lit, ok := e.Operand.(*NumberLit); ok && e.Op == "-" {
			return -lit.Value, true
		}
	}
	return 0, false
}

// withoutSize forgets the size of an array type. Sizes belong to the
// declaration site only.
func withoutSize(t *Type) *Type {
	if t.Kind != KindArray {
		return t
	}
	return &Type{Kind: KindArray, Elem: t.Elem}
}
