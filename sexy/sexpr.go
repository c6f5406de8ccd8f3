// Package sexy reads the s-expression notation used by the markdown test
// suites and extracts test cases from those suites.
package sexy

import (
	"fmt"
	"strings"
	"unicode"
)

// NodeType represents the type of a Node
type NodeType int

const (
	NodeSymbol NodeType = iota + 1
	NodeString
	NodeInteger
	NodeEllipsis
	NodeList
	NodeMap
)

func (t NodeType) String() string {
	switch t {
	case NodeSymbol:
		return "symbol"
	case NodeString:
		return "string"
	case NodeInteger:
		return "integer"
	case NodeEllipsis:
		return "ellipsis"
	case NodeList:
		return "list"
	case NodeMap:
		return "map"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// Node is one datum.
type Node struct {
	Type NodeType
	Text string // NodeSymbol, NodeString, NodeInteger

	Items []*Node  // NodeList; NodeMap values
	Keys  []string // NodeMap keys, parallel to Items
}

func NewSymbol(name string) *Node {
	return &Node{Type: NodeSymbol, Text: name}
}

func NewString(value string) *Node {
	return &Node{Type: NodeString, Text: value}
}

func NewInteger(text string) *Node {
	return &Node{Type: NodeInteger, Text: text}
}

func NewList(items ...*Node) *Node {
	return &Node{Type: NodeList, Items: items}
}

func NewMap(keys []string, items []*Node) *Node {
	return &Node{Type: NodeMap, Keys: keys, Items: items}
}

// Get returns the value stored under key in a map node, or nil.
func (n *Node) Get(key string) *Node {
	for i, k := range n.Keys {
		if k == key {
			return n.Items[i]
		}
	}
	return nil
}

func (n *Node) String() string {
	switch n.Type {
	case NodeSymbol, NodeInteger:
		return n.Text
	case NodeString:
		return Quote(n.Text)
	case NodeEllipsis:
		return "..."
	case NodeList:
		parts := make([]string, len(n.Items))
		for i, item := range n.Items {
			parts[i] = item.String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	case NodeMap:
		parts := make([]string, len(n.Keys))
		for i, key := range n.Keys {
			parts[i] = key + ": " + n.Items[i].String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("<%s>", n.Type)
	}
}

// Quote renders s as a string datum.
func Quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// Match reports whether actual has the shape of pattern. In a pattern list,
// a trailing ... matches any remaining items and the symbol _ matches any
// datum.
func Match(pattern, actual *Node) bool {
	if pattern.Type == NodeSymbol && pattern.Text == "_" {
		return true
	}
	if pattern.Type != actual.Type {
		return false
	}
	switch pattern.Type {
	case NodeList:
		for i, p := range pattern.Items {
			if p.Type == NodeEllipsis {
				return true
			}
			if i >= len(actual.Items) || !Match(p, actual.Items[i]) {
				return false
			}
		}
		return len(pattern.Items) == len(actual.Items)
	case NodeMap:
		if len(pattern.Keys) != len(actual.Keys) {
			return false
		}
		for i, key := range pattern.Keys {
			v := actual.Get(key)
			if v == nil || !Match(pattern.Items[i], v) {
				return false
			}
		}
		return true
	default:
		return pattern.Text == actual.Text
	}
}

// reader is a recursive-descent reader over the input runes.
type reader struct {
	input []rune
	pos   int
}

// Parse reads exactly one datum from input.
func Parse(input string) (*Node, error) {
	r := &reader{input: []rune(input)}
	node, err := r.datum()
	if err != nil {
		return nil, err
	}
	r.skipSpace()
	if r.pos < len(r.input) {
		return nil, fmt.Errorf("offset %d: unexpected %q after datum", r.pos, r.input[r.pos])
	}
	return node, nil
}

func (r *reader) peek() rune {
	if r.pos >= len(r.input) {
		return 0
	}
	return r.input[r.pos]
}

// skipSpace skips whitespace and ; comments.
func (r *reader) skipSpace() {
	for r.pos < len(r.input) {
		c := r.input[r.pos]
		switch {
		case unicode.IsSpace(c):
			r.pos++
		case c == ';':
			for r.pos < len(r.input) && r.input[r.pos] != '\n' {
				r.pos++
			}
		default:
			return
		}
	}
}

func (r *reader) errorf(format string, args ...any) error {
	return fmt.Errorf("offset %d: %s", r.pos, fmt.Sprintf(format, args...))
}

func (r *reader) datum() (*Node, error) {
	r.skipSpace()
	c := r.peek()
	switch {
	case c == 0:
		return nil, r.errorf("unexpected end of input")
	case c == '(':
		r.pos++
		return r.list()
	case c == '{':
		r.pos++
		return r.mapping()
	case c == '"':
		r.pos++
		return r.str()
	case c == '.':
		if r.pos+2 < len(r.input) && string(r.input[r.pos:r.pos+3]) == "..." {
			r.pos += 3
			return &Node{Type: NodeEllipsis}, nil
		}
		return nil, r.errorf("unexpected character '.'")
	case unicode.IsDigit(c) || ((c == '-' || c == '+') && unicode.IsDigit(r.at(1))):
		start := r.pos
		r.pos++
		for unicode.IsDigit(r.peek()) {
			r.pos++
		}
		return NewInteger(string(r.input[start:r.pos])), nil
	case isSymbolRune(c):
		return NewSymbol(r.symbol()), nil
	default:
		return nil, r.errorf("unexpected character %q", c)
	}
}

func (r *reader) at(offset int) rune {
	if r.pos+offset >= len(r.input) {
		return 0
	}
	return r.input[r.pos+offset]
}

func (r *reader) symbol() string {
	start := r.pos
	for r.pos < len(r.input) && isSymbolRune(r.input[r.pos]) {
		r.pos++
	}
	return string(r.input[start:r.pos])
}

// isSymbolRune accepts letters, digits and the punctuation used in type
// names such as array<number>[3].
func isSymbolRune(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || strings.ContainsRune("_-+*/%<>=!?[]$", c)
}

func (r *reader) str() (*Node, error) {
	var sb strings.Builder
	for {
		c := r.peek()
		switch c {
		case 0:
			return nil, r.errorf("unterminated string")
		case '"':
			r.pos++
			return NewString(sb.String()), nil
		case '\\':
			r.pos++
			esc := r.peek()
			if esc != '"' && esc != '\\' {
				return nil, r.errorf("invalid escape sequence \\%c", esc)
			}
			sb.WriteRune(esc)
		default:
			sb.WriteRune(c)
		}
		r.pos++
	}
}

func (r *reader) list() (*Node, error) {
	list := NewList()
	for {
		r.skipSpace()
		switch r.peek() {
		case 0:
			return nil, r.errorf("expected ')' but reached end of input")
		case ')':
			r.pos++
			return list, nil
		}
		item, err := r.datum()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)
	}
}

// mapping reads {key: datum, ...}. Keys are symbols.
func (r *reader) mapping() (*Node, error) {
	m := NewMap(nil, nil)
	for {
		r.skipSpace()
		switch r.peek() {
		case 0:
			return nil, r.errorf("expected '}' but reached end of input")
		case '}':
			r.pos++
			return m, nil
		}
		if !unicode.IsLetter(r.peek()) && r.peek() != '_' {
			return nil, r.errorf("expected symbol for map key but got %q", r.peek())
		}
		key := r.symbol()
		r.skipSpace()
		if r.peek() != ':' {
			return nil, r.errorf("expected ':' after map key %s", key)
		}
		r.pos++
		value, err := r.datum()
		if err != nil {
			return nil, err
		}
		m.Keys = append(m.Keys, key)
		m.Items = append(m.Items, value)
		r.skipSpace()
		switch r.peek() {
		case ',':
			r.pos++
		case '}':
		case 0:
			return nil, r.errorf("expected '}' but reached end of input")
		default:
			return nil, r.errorf("expected ',' or '}' in map but got %q", r.peek())
		}
	}
}
