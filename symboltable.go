package main

// Symbol is a name bound in one scope frame.
type Symbol struct {
	Name  string
	Type  *Type
	Const bool
	Line  int
}

// FunctionEntry is a hoisted user function.
type FunctionEntry struct {
	Name   string
	Params []string
	Body   []Stmt
	Line   int
	Decl   *FunctionDecl
}

func (f *FunctionEntry) Arity() int {
	return len(f.Params)
}

type scopeFrame struct {
	symbols []*Symbol
	byName  map[string]*Symbol

	// A function frame hides every frame below it.
	function bool
}

// SymbolTable is the analyzer's scope stack plus the function table. The
// outermost frame is the global frame and is never popped.
type SymbolTable struct {
	frames    []*scopeFrame
	functions []*FunctionEntry
	funcIndex map[string]*FunctionEntry
}

// NewSymbolTable creates a table holding only the global frame.
func NewSymbolTable() *SymbolTable {
	st := &SymbolTable{funcIndex: map[string]*FunctionEntry{}}
	st.push(false)
	return st
}

func (st *SymbolTable) push(function bool) {
	st.frames = append(st.frames, &scopeFrame{byName: map[string]*Symbol{}, function: function})
}

// PushScope opens a block frame (if/else, while or for).
func (st *SymbolTable) PushScope() {
	st.push(false)
}

// PushFunctionScope opens a function body frame. Names of enclosing frames
// are not visible from inside it.
func (st *SymbolTable) PushFunctionScope() {
	st.push(true)
}

// PopScope closes the innermost frame.
func (st *SymbolTable) PopScope() {
	if len(st.frames) == 1 {
		panic("cannot pop the global scope")
	}
	st.frames = st.frames[:len(st.frames)-1]
}

// Depth returns the number of open frames, including the global frame.
func (st *SymbolTable) Depth() int {
	return len(st.frames)
}

// Declare binds name in the innermost frame. Only a binding in that same
// frame is a conflict; outer bindings are shadowed.
func (st *SymbolTable) Declare(name string, typ *Type, isConst bool, line int) (*Symbol, error) {
	frame := st.frames[len(st.frames)-1]
	if prev, exists := frame.byName[name]; exists {
		return nil, newError(ErrDuplicateDeclaration, line,
			"variable '%s' is already declared in this scope (line %d)", name, prev.Line)
	}
	sym := &Symbol{Name: name, Type: typ, Const: isConst, Line: line}
	frame.symbols = append(frame.symbols, sym)
	frame.byName[name] = sym
	return sym, nil
}

// Lookup finds the innermost visible binding of name, or nil.
func (st *SymbolTable) Lookup(name string) *Symbol {
	for i := len(st.frames) - 1; i >= 0; i-- {
		frame := st.frames[i]
		if sym, ok := frame.byName[name]; ok {
			return sym
		}
		if frame.function {
			break
		}
	}
	return nil
}

// Globals returns the global frame's symbols in declaration order.
func (st *SymbolTable) Globals() []*Symbol {
	return st.frames[0].symbols
}

// DeclareFunction registers a user function.
func (st *SymbolTable) DeclareFunction(decl *FunctionDecl) (*FunctionEntry, error) {
	if prev, exists := st.funcIndex[decl.Name]; exists {
		return nil, newError(ErrDuplicateDeclaration, decl.Line(),
			"function '%s' is already declared (line %d)", decl.Name, prev.Line)
	}
	fn := &FunctionEntry{Name: decl.Name, Params: decl.Params, Body: decl.Body, Line: decl.Line(), Decl: decl}
	st.functions = append(st.functions, fn)
	st.funcIndex[decl.Name] = fn
	return fn, nil
}

// LookupFunction finds a user function by name, or nil.
func (st *SymbolTable) LookupFunction(name string) *FunctionEntry {
	return st.funcIndex[name]
}

// Functions returns every user function in declaration order.
func (st *SymbolTable) Functions() []*FunctionEntry {
	return st.functions
}
