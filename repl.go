package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

const (
	historyFile = ".joule_history"
	promptMain  = "joule> "
	promptCont  = "  ...> "
)

const replHelp = `Enter statements to add them to the session program. Commands:
  :jasmin   print the Jasmin assembly of the session
  :js       print the session re-emitted as JavaScript
  :ast      print the session tree
  :types    print the types of global variables
  :reset    start an empty session
  :quit     leave the REPL`

// Session is the program built up by a REPL. Every entry is checked
// together with the entries accepted before it.
type Session struct {
	source string
	opts   JasminOptions
}

func NewSession(opts JasminOptions) *Session {
	return &Session{opts: opts}
}

func (s *Session) candidate(entry string) string {
	if s.source == "" {
		return entry
	}
	return s.source + "\n" + entry
}

// Submit appends entry to the session if the combined program is valid.
func (s *Session) Submit(entry string) error {
	src := s.candidate(entry)
	if _, _, err := Check(src); err != nil {
		return err
	}
	s.source = src
	return nil
}

// Command runs a colon command. quit reports whether the REPL should exit.
func (s *Session) Command(cmd string, w io.Writer) (quit bool, err error) {
	cmd = strings.ToLower(strings.TrimSpace(cmd))
	switch cmd {
	case ":quit", ":q":
		return true, nil
	case ":reset":
		s.source = ""
		fmt.Fprintln(w, "session cleared")
	case ":help":
		fmt.Fprintln(w, replHelp)
	case ":ast":
		prog, err := ParseProgram(s.source)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(w, ToSExpr(prog))
	case ":types":
		_, facts, err := Check(s.source)
		if err != nil {
			return false, err
		}
		for _, sym := range facts.Globals {
			kind := "let"
			if sym.Const {
				kind = "const"
			}
			fmt.Fprintf(w, "%s %s: %s\n", kind, sym.Name, sym.Type)
		}
		for _, fn := range facts.Functions {
			fmt.Fprintf(w, "function %s/%d\n", fn.Name, fn.Arity())
		}
	case ":jasmin", ":js":
		target := TargetJasmin
		if cmd == ":js" {
			target = TargetJS
		}
		result, err := Compile(s.source, CompileOptions{Jasmin: s.opts, Targets: []string{target}})
		if err != nil {
			return false, err
		}
		if target == TargetJasmin {
			fmt.Fprint(w, result.Jasmin)
		} else {
			fmt.Fprintln(w, result.JS)
		}
	default:
		fmt.Fprintln(w, "unknown command. Type :help for a list or :quit to exit.")
	}
	return false, nil
}

// isIncomplete reports whether err means the input stopped mid-construct.
func isIncomplete(err error) bool {
	var cerr *CompileError
	return errors.As(err, &cerr) && cerr.Incomplete
}

func replCommand(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	color := fs.String("color", "auto", "Color diagnostics: auto, always or never")
	class := fs.String("class", "Main", "Name of the generated class")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	useColor := colorEnabled(*color, os.Stderr)
	opts := DefaultJasminOptions()
	opts.ClassName = *class

	fmt.Println("Joule REPL. Type :help for commands.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	session := NewSession(opts)
	for {
		entry, ok := readEntry(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(entry, "\n", " "))

		var err error
		if strings.HasPrefix(trimmed, ":") {
			var quit bool
			quit, err = session.Command(trimmed, os.Stdout)
			if quit {
				return 0
			}
		} else {
			err = session.Submit(entry)
		}
		if err != nil {
			msg := err.Error()
			if useColor {
				msg = red(msg)
			}
			fmt.Fprintln(os.Stderr, msg)
		}
	}
}

// readEntry reads lines until they parse, or fail to parse for a reason
// other than running out of input.
func readEntry(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl-C drops the pending entry.
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, err := ParseProgram(src); err != nil && isIncomplete(err) {
			continue
		}
		return src, true
	}
}
