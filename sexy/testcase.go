package sexy

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputType is the language of a test's input fence.
type InputType string

const (
	InputTypeProgram InputType = "joule-program"
	InputTypeExpr    InputType = "joule-expr"
)

// AssertionType is the language of an assertion fence.
type AssertionType string

const (
	AssertionTypeAST          AssertionType = "ast"
	AssertionTypeTypes        AssertionType = "types"
	AssertionTypeCompileError AssertionType = "compile-error"
	AssertionTypeJasmin       AssertionType = "jasmin"
	AssertionTypeJS           AssertionType = "js"
)

// Assertion is one expectation about a test's input.
type Assertion struct {
	Type    AssertionType
	Content string
	Line    int

	// ParsedSexy is set for ast and types assertions.
	ParsedSexy *Node
}

// TestCase is a test extracted from a "Test: name" section of a markdown
// suite.
type TestCase struct {
	Name       string
	Line       int
	Input      string
	InputType  InputType
	Assertions []Assertion
}

func isInputFence(language string) bool {
	switch InputType(language) {
	case InputTypeProgram, InputTypeExpr:
		return true
	}
	return false
}

func isAssertionFence(language string) bool {
	switch AssertionType(language) {
	case AssertionTypeAST, AssertionTypeTypes, AssertionTypeCompileError, AssertionTypeJasmin, AssertionTypeJS:
		return true
	}
	return false
}

// hasSexyContent reports whether the assertion body is written as a datum.
func (t AssertionType) hasSexyContent() bool {
	return t == AssertionTypeAST || t == AssertionTypeTypes
}

// extractor walks a markdown document and collects test cases.
type extractor struct {
	source  []byte
	cases   []TestCase
	current *TestCase
}

// ExtractTestCases parses a markdown suite. Fences without a language are
// commentary; any other fence must sit inside a test section.
func ExtractTestCases(markdownContent string) ([]TestCase, error) {
	x := &extractor{source: []byte(markdownContent)}
	doc := goldmark.New().Parser().Parse(text.NewReader(x.source))

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		var err error
		switch n := node.(type) {
		case *ast.Heading:
			err = x.heading(n)
		case *ast.FencedCodeBlock:
			err = x.fence(n)
		}
		if err != nil {
			return ast.WalkStop, err
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := x.finish(); err != nil {
		return nil, err
	}
	return x.cases, nil
}

func (x *extractor) heading(n *ast.Heading) error {
	title := headingText(n, x.source)
	name, ok := strings.CutPrefix(title, "Test: ")
	if !ok {
		return nil
	}
	if err := x.finish(); err != nil {
		return err
	}
	x.current = &TestCase{Name: strings.TrimSpace(name), Line: lineOf(n, x.source)}
	return nil
}

func (x *extractor) fence(n *ast.FencedCodeBlock) error {
	language := string(n.Language(x.source))
	line := lineOf(n, x.source)
	if language == "" {
		return nil
	}
	if !isInputFence(language) && !isAssertionFence(language) {
		return fmt.Errorf("line %d: unknown fence language '%s'", line, language)
	}
	if x.current == nil {
		return fmt.Errorf("line %d: %s fence found outside of test case", line, language)
	}
	content := strings.TrimRight(fenceContent(n, x.source), "\n")

	if isInputFence(language) {
		if x.current.InputType != "" {
			return fmt.Errorf("line %d: multiple input fences found in test '%s'", line, x.current.Name)
		}
		x.current.Input = content
		x.current.InputType = InputType(language)
		return nil
	}

	a := Assertion{Type: AssertionType(language), Content: content, Line: line}
	if a.Type.hasSexyContent() {
		parsed, err := Parse(content)
		if err != nil {
			return fmt.Errorf("line %d: failed to parse %s assertion in test '%s': %w", line, language, x.current.Name, err)
		}
		if a.Type == AssertionTypeTypes && parsed.Type != NodeMap {
			return fmt.Errorf("line %d: types assertion in test '%s' must be a map", line, x.current.Name)
		}
		a.ParsedSexy = parsed
	}
	x.current.Assertions = append(x.current.Assertions, a)
	return nil
}

// finish validates and stores the test being collected.
func (x *extractor) finish() error {
	tc := x.current
	if tc == nil {
		return nil
	}
	x.current = nil
	if tc.InputType == "" {
		return fmt.Errorf("test '%s' has no input fence", tc.Name)
	}
	if len(tc.Assertions) == 0 {
		return fmt.Errorf("test '%s' has no assertion fences", tc.Name)
	}
	x.cases = append(x.cases, *tc)
	return nil
}

func headingText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func fenceContent(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

// lineOf returns the 1-based source line of a block node. Headings and
// fences with no content fall back to 1.
func lineOf(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	return bytes.Count(source[:min(start, len(source))], []byte("\n")) + 1
}
