package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func command(t *testing.T, s *Session, cmd string) string {
	t.Helper()
	var out bytes.Buffer
	quit, err := s.Command(cmd, &out)
	be.Err(t, err, nil)
	be.True(t, !quit)
	return out.String()
}

func TestSessionSubmitAccumulates(t *testing.T) {
	s := NewSession(DefaultJasminOptions())
	be.Err(t, s.Submit("let x = 1;"), nil)
	be.Err(t, s.Submit("function f(a) { return a + 1; }"), nil)
	be.Err(t, s.Submit("let y = f(x);"), nil)

	be.Equal(t, command(t, s, ":types"), "let x: number\nlet y: unknown\nfunction f/1\n")
}

func TestSessionRejectsInvalidEntry(t *testing.T) {
	s := NewSession(DefaultJasminOptions())
	be.Err(t, s.Submit("const c = 1;"), nil)

	tests := []struct {
		entry string
		kind  ErrorKind
	}{
		{"let c = 2;", ErrDuplicateDeclaration},
		{"c = 2;", ErrConstReassignment},
		{"let z = q;", ErrUndeclaredVariable},
		{"let = ;", ErrSyntax},
		{"let s = '", ErrLexical},
	}
	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			err := s.Submit(tt.entry)
			be.Equal(t, errorKind(err), tt.kind)
		})
	}
	be.Equal(t, command(t, s, ":types"), "const c: number\n")
}

func TestSessionErrorsReportCombinedLines(t *testing.T) {
	s := NewSession(DefaultJasminOptions())
	be.Err(t, s.Submit("let a = 1;"), nil)
	be.Err(t, s.Submit("let b = 2;"), nil)
	be.Err(t, s.Submit("a = \"s\";"), "line 3")
}

func TestSessionCommands(t *testing.T) {
	s := NewSession(JasminOptions{ClassName: "Repl", StackLimit: 10})
	be.Err(t, s.Submit("let x = 1;"), nil)

	be.Equal(t, command(t, s, ":ast"), "(program (let \"x\" (number 1)))\n")
	be.Equal(t, command(t, s, ":js"), "let x = 1;\n")
	be.True(t, strings.HasPrefix(command(t, s, ":jasmin"), ".class public Repl\n"))
	be.True(t, strings.Contains(command(t, s, ":help"), ":types"))
	be.Equal(t, command(t, s, ":nope"), "unknown command. Type :help for a list or :quit to exit.\n")
	be.Equal(t, command(t, s, "  :JS "), "let x = 1;\n")

	be.Equal(t, command(t, s, ":reset"), "session cleared\n")
	be.Equal(t, command(t, s, ":types"), "")
	be.Equal(t, command(t, s, ":ast"), "(program)\n")
	be.Err(t, s.Submit("let x = \"again\";"), nil)
}

func TestSessionQuit(t *testing.T) {
	s := NewSession(DefaultJasminOptions())
	for _, cmd := range []string{":quit", ":q", ":QUIT"} {
		t.Run(cmd, func(t *testing.T) {
			var out bytes.Buffer
			quit, err := s.Command(cmd, &out)
			be.Err(t, err, nil)
			be.True(t, quit)
			be.Equal(t, out.String(), "")
		})
	}
}

func TestIsIncomplete(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{"function f() {", true},
		{"if (x) { print(1); } else", true},
		{"let x = [1, 2", true},
		{"let x = 1", true},
		{"let x = 1;", false},
		{"let = 1;", false},
		{"let x = 1; }", false},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			_, err := ParseProgram(tt.source)
			be.Equal(t, isIncomplete(err), tt.want)
		})
	}
	be.True(t, !isIncomplete(nil))
}
