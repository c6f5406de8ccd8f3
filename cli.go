package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func showUsage() {
	fmt.Fprintf(os.Stderr, `Joule - A small scripting language that compiles to Jasmin (JVM assembly)

Usage:
    joule <command> [arguments]

Commands:
    build <file>    Compile a .js file to Jasmin and JavaScript
    check <file>    Parse and analyze a file
    ast <file>      Print the parsed tree as an s-expression
    repl            Start an interactive session
    help            Show this help message

Examples:
    joule build examples/loop.js
    joule build -o classes -class Loop -target jasmin loop.js
    joule check myfile.js
    joule repl

Use "joule <command> -h" for more information about a command.
`)
}

// projectConfig loads the joule.yaml governing filename, or the defaults.
// The returned directory is where relative config paths are resolved.
func projectConfig(filename string) (*Config, string, error) {
	path, err := FindConfig(filepath.Dir(filename))
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return DefaultConfig(), ".", nil
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, filepath.Dir(path), nil
}

// reportError prints err to stderr, in red when stderr is a color terminal.
func reportError(colorMode string, format string, args ...any) {
	prefix := "error:"
	if colorEnabled(colorMode, os.Stderr) {
		prefix = red(bold(prefix))
	}
	fmt.Fprintf(os.Stderr, prefix+" "+format+"\n", args...)
}

func buildCommand(args []string) int {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	output := fs.String("o", "", "Output directory (default: out_dir from joule.yaml, or out)")
	class := fs.String("class", "", "Name of the generated class (default: Main)")
	target := fs.String("target", "", "What to emit: jasmin, js or all (default: all)")
	color := fs.String("color", "", "Color diagnostics: auto, always or never")
	verbose := fs.Bool("v", false, "Show verbose compilation details")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: joule build [-o dir] [-class Name] [-target jasmin|js|all] [-v] <file>\n")
		fmt.Fprintf(os.Stderr, "Compile a file to Jasmin assembly and JavaScript\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		return 2
	}
	filename := fs.Arg(0)

	cfg, cfgDir, err := projectConfig(filename)
	if err != nil {
		reportError(*color, "%v", err)
		return 1
	}
	if *color == "" {
		*color = cfg.Color
	}
	if *class != "" {
		if !isJavaIdentifier(*class) {
			reportError(*color, "class %q is not a valid class name", *class)
			return 2
		}
		cfg.Class = *class
	}
	switch *target {
	case "":
	case "all":
		cfg.Targets = []string{TargetJasmin, TargetJS}
	case TargetJasmin, TargetJS:
		cfg.Targets = []string{*target}
	default:
		reportError(*color, "unknown target %q (want jasmin, js or all)", *target)
		return 2
	}
	outDir := *output
	if outDir == "" {
		outDir = filepath.Join(cfgDir, cfg.OutDir)
	}

	if *verbose {
		fmt.Printf("Compiling %s to %s...\n", filename, outDir)
	}

	source, err := os.ReadFile(filename)
	if err != nil {
		reportError(*color, "reading file %s: %v", filename, err)
		return 1
	}

	result, err := Compile(string(source), CompileOptions{
		Jasmin:  cfg.JasminOptions(),
		Targets: cfg.Targets,
		Verbose: *verbose,
	})
	if err != nil {
		reportError(*color, "%s: %v", filename, err)
		return 1
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		reportError(*color, "creating %s: %v", outDir, err)
		return 1
	}
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	for _, t := range cfg.Targets {
		var path, code string
		switch t {
		case TargetJasmin:
			path, code = filepath.Join(outDir, cfg.Class+".j"), result.Jasmin
		case TargetJS:
			path, code = filepath.Join(outDir, base+".out.js"), result.JS+"\n"
		}
		if err := os.WriteFile(path, []byte(code), 0644); err != nil {
			reportError(*color, "writing %s: %v", path, err)
			return 1
		}
		fmt.Printf("Generated %s (%d bytes)\n", path, len(code))
	}
	return 0
}

func checkCommand(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	color := fs.String("color", "", "Color diagnostics: auto, always or never")
	verbose := fs.Bool("v", false, "Show verbose checking details")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: joule check [-v] <file>\n")
		fmt.Fprintf(os.Stderr, "Parse and analyze a file\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		return 2
	}
	filename := fs.Arg(0)

	if *verbose {
		fmt.Printf("Checking %s...\n", filename)
	}

	source, err := os.ReadFile(filename)
	if err != nil {
		reportError(*color, "reading file %s: %v", filename, err)
		return 1
	}

	prog, facts, err := Check(string(source))
	if err != nil {
		reportError(*color, "%s: %v", filename, err)
		return 1
	}

	fmt.Printf("%s: no errors found\n", filename)

	if *verbose {
		fmt.Printf("AST: %s\n", ToSExpr(prog))
		for _, sym := range facts.Globals {
			fmt.Printf("  %s: %s\n", sym.Name, sym.Type)
		}
	}
	return 0
}

func astCommand(args []string) int {
	fs := flag.NewFlagSet("ast", flag.ContinueOnError)
	color := fs.String("color", "", "Color diagnostics: auto, always or never")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: joule ast <file>\n")
		fmt.Fprintf(os.Stderr, "Print the parsed tree as an s-expression\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		return 2
	}
	filename := fs.Arg(0)

	source, err := os.ReadFile(filename)
	if err != nil {
		reportError(*color, "reading file %s: %v", filename, err)
		return 1
	}
	prog, err := ParseProgram(string(source))
	if err != nil {
		reportError(*color, "%s: %v", filename, err)
		return 1
	}
	fmt.Println(ToSExpr(prog))
	return 0
}

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "build":
		os.Exit(buildCommand(args))
	case "check":
		os.Exit(checkCommand(args))
	case "ast":
		os.Exit(astCommand(args))
	case "repl":
		os.Exit(replCommand(args))
	case "help", "-h", "--help":
		showUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		showUsage()
		os.Exit(1)
	}
}
