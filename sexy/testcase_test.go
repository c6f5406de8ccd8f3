package sexy

import (
	"testing"

	"github.com/nalgeon/be"
)

const fence = "```"

func TestExtractTestCases_Basic(t *testing.T) {
	markdown := `# Binary expressions

## Test: addition
` + fence + `joule-expr
1 + 2
` + fence + `
` + fence + `ast
(binary "+" (number 1) (number 2))
` + fence + `

## Test: subtraction
` + fence + `joule-expr
1 - 2
` + fence + `
` + fence + `ast
(binary "-" (number 1) (number 2))
` + fence

	cases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 2)

	tc := cases[0]
	be.Equal(t, tc.Name, "addition")
	be.Equal(t, tc.Input, "1 + 2")
	be.Equal(t, tc.InputType, InputTypeExpr)
	be.Equal(t, len(tc.Assertions), 1)
	be.Equal(t, tc.Assertions[0].Type, AssertionTypeAST)
	be.Equal(t, tc.Assertions[0].ParsedSexy.String(), `(binary "+" (number 1) (number 2))`)

	be.Equal(t, cases[1].Name, "subtraction")
	be.Equal(t, cases[1].Assertions[0].Content, `(binary "-" (number 1) (number 2))`)
}

func TestExtractTestCases_AllAssertionKinds(t *testing.T) {
	markdown := `## Test: everything
Some prose between fences.

` + fence + `joule-program
let x = 1;
print(x);
` + fence + `
` + fence + `types
{x: number}
` + fence + `
` + fence + `jasmin
iconst_1
istore_1
` + fence + `
` + fence + `js
let x = 1;
console.log(x);
` + fence + `

## Test: failure
` + fence + `joule-program
y = 1;
` + fence + `
` + fence + `compile-error
semantic error on line 1: variable 'y' is not declared
` + fence

	cases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 2)

	tc := cases[0]
	be.Equal(t, tc.InputType, InputTypeProgram)
	be.Equal(t, tc.Input, "let x = 1;\nprint(x);")
	be.Equal(t, len(tc.Assertions), 3)
	be.Equal(t, tc.Assertions[0].Type, AssertionTypeTypes)
	be.Equal(t, tc.Assertions[0].ParsedSexy.Get("x").String(), "number")
	be.Equal(t, tc.Assertions[1].Type, AssertionTypeJasmin)
	be.Equal(t, tc.Assertions[1].Content, "iconst_1\nistore_1")
	be.True(t, tc.Assertions[1].ParsedSexy == nil)
	be.Equal(t, tc.Assertions[2].Type, AssertionTypeJS)

	fail := cases[1]
	be.Equal(t, fail.Assertions[0].Type, AssertionTypeCompileError)
	be.True(t, fail.Assertions[0].ParsedSexy == nil)
}

func TestExtractTestCases_PlainFencesIgnored(t *testing.T) {
	markdown := "# Notes\n\n" + fence + "\nnot a test\n" + fence + "\n"
	cases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 0)
}

func TestExtractTestCases_Errors(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{
			name:     "fence outside test",
			markdown: "# Intro\n" + fence + "joule-expr\n1\n" + fence + "\n",
			want:     "fence found outside of test case",
		},
		{
			name:     "unknown language",
			markdown: "## Test: a\n" + fence + "python\nprint(1)\n" + fence + "\n",
			want:     "unknown fence language 'python'",
		},
		{
			name: "two inputs",
			markdown: "## Test: a\n" + fence + "joule-expr\n1\n" + fence + "\n" +
				fence + "joule-expr\n2\n" + fence + "\n",
			want: "multiple input fences found in test 'a'",
		},
		{
			name:     "no input",
			markdown: "## Test: a\n" + fence + "ast\n(number 1)\n" + fence + "\n",
			want:     "test 'a' has no input fence",
		},
		{
			name:     "no assertions",
			markdown: "## Test: a\n" + fence + "joule-expr\n1\n" + fence + "\n",
			want:     "test 'a' has no assertion fences",
		},
		{
			name: "bad sexy",
			markdown: "## Test: a\n" + fence + "joule-expr\n1\n" + fence + "\n" +
				fence + "ast\n(number 1\n" + fence + "\n",
			want: "failed to parse ast assertion in test 'a'",
		},
		{
			name: "types not a map",
			markdown: "## Test: a\n" + fence + "joule-program\nlet x = 1;\n" + fence + "\n" +
				fence + "types\n(x number)\n" + fence + "\n",
			want: "types assertion in test 'a' must be a map",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractTestCases(tt.markdown)
			be.Err(t, err, tt.want)
		})
	}
}
