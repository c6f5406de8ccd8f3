package main

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"
)

func analyzeSource(t *testing.T, source string) (*Program, *TypeFacts, error) {
	t.Helper()
	prog, err := ParseProgram(source)
	be.Err(t, err, nil)
	facts, err := Analyze(prog)
	return prog, facts, err
}

func errorKind(err error) ErrorKind {
	var cerr *CompileError
	if errors.As(err, &cerr) {
		return cerr.Kind
	}
	return ""
}

func TestAnalyzeErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		source string
		kind   ErrorKind
		line   int
	}{
		{"redeclare in same frame", "let a = 1;\nlet a = 2;", ErrDuplicateDeclaration, 2},
		{"redeclare const over let", "let a = 1;\nconst a = 1;", ErrDuplicateDeclaration, 2},
		{"duplicate function", "function f() {}\nfunction f() {}", ErrDuplicateDeclaration, 2},
		{"nested duplicate function", "function f() {}\nif (true) {\n  function f() {}\n}", ErrDuplicateDeclaration, 3},
		{"duplicate parameter", "function f(a, a) {}", ErrDuplicateDeclaration, 1},
		{"undeclared assignment", "x = 1;", ErrUndeclaredVariable, 1},
		{"undeclared read", "let y = x;", ErrUndeclaredVariable, 1},
		{"undeclared array", "let y = x[0];", ErrUndeclaredVariable, 1},
		{"global read inside function", "let g = 1;\nfunction f() {\n  return g;\n}", ErrUndeclaredVariable, 3},
		{"undeclared function", "f();", ErrUndeclaredFunction, 1},
		{"undeclared function in expression", "let r = 1 + f();", ErrUndeclaredFunction, 1},
		{"too many arguments", "function f() {}\nf(1);", ErrArityMismatch, 2},
		{"too few arguments before declaration", "f(1);\nfunction f(a, b) {}", ErrArityMismatch, 1},
		{"const reassignment", "const c = 1;\nc = 1;", ErrConstReassignment, 2},
		{"const reassignment with other type", "const c = 1;\nc = [];", ErrConstReassignment, 2},
		{"assign string to number", "let a = 1;\na = \"x\";", ErrTypeMismatch, 2},
		{"assign array to string", "let s = \"\";\ns = [1];", ErrTypeMismatch, 2},
		{"assign unknown to number", "function f() {}\nlet a = 1;\na = f();", ErrTypeMismatch, 3},
		{"operand mismatch", "let a = 1 * true;", ErrTypeMismatch, 1},
		{"index a number", "let n = 1;\nlet x = n[0];", ErrTypeMismatch, 2},
		{"string index", "let a = [1];\nlet x = a[\"0\"];", ErrTypeMismatch, 2},
		{"parameter index", "function f(i) {\n  let a = [1];\n  return a[i];\n}", ErrTypeMismatch, 3},
		{"mixed element index", "let m = [1, \"s\"];\nlet a = [1];\nlet x = a[m[0]];", ErrTypeMismatch, 3},
		{"arithmetic on strings", "let s = \"a\" * \"b\";", ErrInvalidArithmeticOperand, 1},
		{"arithmetic on booleans", "let b = true - false;", ErrInvalidArithmeticOperand, 1},
		{"literal index too large", "let a = [1, 2, 3];\nlet x = a[5];", ErrArrayOutOfBounds, 2},
		{"literal index equal to size", "let a = [1, 2, 3];\nlet x = a[3];", ErrArrayOutOfBounds, 2},
		{"negative literal index", "let a = [1];\nlet x = a[-1];", ErrArrayOutOfBounds, 2},
		{"index into empty array", "let a = [];\nlet x = a[0];", ErrArrayOutOfBounds, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := analyzeSource(t, tt.source)
			be.Equal(t, errorKind(err), tt.kind)
			var cerr *CompileError
			be.True(t, errors.As(err, &cerr))
			be.Equal(t, cerr.Line, tt.line)
		})
	}
}

func TestAnalyzeAccepts(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"shadow in if", "let a = 1;\nif (a) { let a = \"s\"; }"},
		{"shadow in while", "let a = 1;\nwhile (false) { let a = [1]; }"},
		{"shadow in for", "let i = \"s\";\nfor (let i = 0; i < 2; i = i + 1) { }"},
		{"sibling blocks reuse a name", "if (true) { let t = 1; } else { let t = \"x\"; }"},
		{"literal index in bounds", "let a = [1, 2, 3];\nlet x = a[1];"},
		{"dynamic index", "let a = [1, 2, 3];\nlet i = 9;\nlet x = a[i];"},
		{"same type reassignment", "let a = 1;\na = 2;"},
		{"array reassignment with other size", "let a = [1];\na = [1, 2];"},
		{"call before declaration", "let r = f(1, 2);\nfunction f(a, b) { return a + b; }"},
		{"recursion", "function f(n) { if (n < 1) { return 0; } return f(n - 1); }"},
		{"mutual recursion", "function a(n) { return b(n); }\nfunction b(n) { return a(n); }"},
		{"comparison of mixed types", "let x = \"a\" == 1;"},
		{"logical of mixed types", "let x = \"a\" && 1;"},
		{"unknown operand", "function f(x) { return x + \"s\"; }"},
		{"natives", "let s = prompt(\"?\");\nlet n = parseInt(s);\nprint(typeof n, n);\nconsole.log(s);"},
		{"return outside function", "return;"},
		{"nested function", "function outer() {\n  function inner() { return 1; }\n  return inner();\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := analyzeSource(t, tt.source)
			be.Err(t, err, nil)
		})
	}
}

func TestAnalyzeRecordsTypeFacts(t *testing.T) {
	prog, facts, err := analyzeSource(t, "let a = [1, 2];\nconst s = \"x\";\nfunction f(p) { return p; }\nlet y = a[0] + 1;")
	be.Err(t, err, nil)

	be.Equal(t, len(facts.Globals), 3)
	be.Equal(t, facts.LookupGlobal("a").Type.String(), "array<number>[2]")
	be.True(t, facts.LookupGlobal("s").Const)
	be.Equal(t, facts.LookupGlobal("y").Type.String(), "number")
	be.True(t, facts.LookupGlobal("p") == nil)

	be.Equal(t, len(facts.Functions), 1)
	be.Equal(t, facts.Functions[0].Arity(), 1)

	decl := prog.Stmts[3].(*VarDecl)
	be.Equal(t, facts.Decls[decl].String(), "number")
	sum := decl.Value.(*BinaryExpr)
	be.Equal(t, facts.TypeOf(sum.Left).String(), "number")
	be.Equal(t, facts.TypeOf(&Ident{Name: "never analyzed"}), TypeUnknown)
}

func TestAnalyzeCopyKeepsArraySize(t *testing.T) {
	_, facts, err := analyzeSource(t, "let a = [1];\nlet b = a;")
	be.Err(t, err, nil)
	be.Equal(t, facts.LookupGlobal("b").Type.String(), "array<number>[1]")
}

func TestAnalyzeStopsAtFirstError(t *testing.T) {
	_, facts, err := analyzeSource(t, "let a = x;\nlet b = y;")
	be.True(t, facts == nil)
	be.Err(t, err, "variable 'x' is not declared")
}

// The lexer only produces known natives, so an unknown one needs a
// hand-built tree.
func TestAnalyzeUnknownNative(t *testing.T) {
	prog := &Program{Stmts: []Stmt{
		&NativeCall{Pos: Pos{2}, Name: "alert", Args: []Expr{&NumberLit{Pos: Pos{2}, Value: 1}}},
	}}
	_, err := Analyze(prog)
	be.Equal(t, errorKind(err), ErrUnknownNative)
	be.Equal(t, err.Error(), "semantic error on line 2: native function 'alert' is not recognized")
}

func TestAnalyzeFunctionsDoNotSeeGlobals(t *testing.T) {
	_, _, err := analyzeSource(t, "let g = 1;\nfunction f(p) {\n  g = p;\n}")
	be.Equal(t, err.Error(), "semantic error on line 3: variable 'g' is not declared")
}
