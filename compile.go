package main

import (
	"fmt"
	"io"
	"os"
)

// Output targets.
const (
	TargetJasmin = "jasmin"
	TargetJS     = "js"
)

type CompileOptions struct {
	Jasmin  JasminOptions
	Targets []string // defaults to every target
	Verbose bool
	Stdout  io.Writer // verbose progress; defaults to os.Stdout
}

// CompileResult holds every artifact of one compilation. Artifacts for
// targets that were not requested are empty.
type CompileResult struct {
	Program *Program
	Facts   *TypeFacts
	Jasmin  string
	JS      string
	Methods []MethodInfo
	Labels  int
}

// Check lexes, parses and analyzes source without generating code.
func Check(source string) (*Program, *TypeFacts, error) {
	prog, err := ParseProgram(source)
	if err != nil {
		return nil, nil, err
	}
	facts, err := Analyze(prog)
	if err != nil {
		return nil, nil, err
	}
	return prog, facts, nil
}

// Compile runs the whole pipeline. Analysis finishes before generation
// starts, and the first error aborts with no partial result.
func Compile(source string, opts CompileOptions) (*CompileResult, error) {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	if opts.Jasmin.ClassName == "" {
		opts.Jasmin = DefaultJasminOptions()
	}
	targets := opts.Targets
	if len(targets) == 0 {
		targets = []string{TargetJasmin, TargetJS}
	}

	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		fmt.Fprintf(out, "Lexed %d tokens\n", len(tokens))
	}
	prog, err := NewParser(tokens).Parse()
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		fmt.Fprintf(out, "Parsed %d top-level statements\n", len(prog.Stmts))
	}
	facts, err := Analyze(prog)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		fmt.Fprintf(out, "Analyzed: %d globals, %d functions\n", len(facts.Globals), len(facts.Functions))
	}

	result := &CompileResult{Program: prog, Facts: facts}
	for _, target := range targets {
		switch target {
		case TargetJasmin:
			gen := NewJasminGen(facts, opts.Jasmin)
			code, err := gen.Generate(prog)
			if err != nil {
				return nil, err
			}
			result.Jasmin = code
			result.Methods = gen.Methods
			result.Labels = gen.LabelCount()
			if opts.Verbose {
				for _, m := range gen.Methods {
					fmt.Fprintf(out, "Method %s: %d locals\n", m.Name, m.Locals)
				}
				fmt.Fprintf(out, "Allocated %d labels\n", gen.LabelCount())
			}
		case TargetJS:
			code, err := EmitJavaScript(prog)
			if err != nil {
				return nil, err
			}
			result.JS = code
		default:
			return nil, fmt.Errorf("unknown target %q", target)
		}
	}
	return result, nil
}
