// Package value parses a single CSS property value into a flat sequence of
// typed nodes. It understands just enough of the value grammar to feed
// abbreviation matching: identifiers, function calls, numbers with units,
// strings and hash colors. Anything else the tokenizer produces is treated as
// punctuation and skipped.
package value

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

//go:generate go tool go-enum --nocase

// Kind of a parsed value node.
// ENUM(literal, function, number, string, color)
type Kind int

// Node is a single component of a CSS property value. Function arguments are
// kept for completeness but carry no meaning for keyword extraction.
type Node struct {
	Kind  Kind
	Text  string  // identifier, function name, string content, raw number or color
	Value float64 // numeric value for number nodes
	Unit  string  // unit for number nodes: "em", "px", "%", etc.
	Args  []Node  // function call arguments
}

// Parse tokenizes one value alternative into its node sequence. An alternative
// that yields no nodes at all (empty or pure punctuation) is an error - every
// alternative of a property definition must carry at least one value.
func Parse(text string) ([]Node, error) {
	l := css.NewLexer(parse.NewInputString(text))
	nodes, err := scan(l, false)
	if err != nil {
		return nil, fmt.Errorf("cannot parse value %q: %w", text, err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("cannot parse value %q: %w", text, errEmptyValue)
	}
	return nodes, nil
}

var errEmptyValue = errors.New("no value nodes")

// scan consumes tokens until end of input or, when inCall is set, the closing
// parenthesis of the current function call.
func scan(l *css.Lexer, inCall bool) ([]Node, error) {
	var nodes []Node
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			if err := l.Err(); err != nil && err != io.EOF {
				return nil, err
			}
			if inCall {
				return nil, errors.New("unterminated function call")
			}
			return nodes, nil

		case css.RightParenthesisToken:
			if inCall {
				return nodes, nil
			}
			return nil, errors.New("unbalanced parenthesis")

		case css.IdentToken:
			nodes = append(nodes, Node{Kind: KindLiteral, Text: string(data)})

		case css.FunctionToken:
			// token data includes the opening parenthesis
			name := strings.TrimSuffix(string(data), "(")
			args, err := scan(l, true)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, Node{Kind: KindFunction, Text: name, Args: args})

		case css.NumberToken, css.DimensionToken, css.PercentageToken:
			n := Node{Kind: KindNumber, Text: string(data)}
			n.Value, n.Unit = splitDimension(n.Text)
			nodes = append(nodes, n)

		case css.URLToken:
			// url(...) comes out of the tokenizer as a single token; the
			// reference itself is an argument, the keyword is "url"
			nodes = append(nodes, Node{Kind: KindFunction, Text: "url", Args: urlArgs(string(data))})

		case css.StringToken:
			nodes = append(nodes, Node{Kind: KindString, Text: unquote(string(data))})

		case css.HashToken:
			nodes = append(nodes, Node{Kind: KindColor, Text: string(data)})

		case css.BadStringToken, css.BadURLToken:
			return nil, fmt.Errorf("malformed token %q", string(data))

		default:
			// whitespace, commas and other separators carry no value information
		}
	}
}

// urlArgs extracts the reference from a url(...) token as a string argument.
func urlArgs(s string) []Node {
	s = strings.TrimPrefix(s, "url(")
	s = strings.TrimSuffix(s, ")")
	s = unquote(strings.TrimSpace(s))
	if len(s) == 0 {
		return nil
	}
	return []Node{{Kind: KindString, Text: s}}
}

// splitDimension extracts numeric value and unit from a number-like token.
func splitDimension(s string) (float64, string) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < len(s) && (isDigit(s[i]) || s[i] == '.') {
		i++
	}
	// an "e" continues the number only when an exponent actually follows,
	// otherwise it starts the unit ("1e3px" vs "1em")
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	num, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, ""
	}
	return num, strings.ToLower(s[i:])
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// unquote removes matching surrounding quotes, if any.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
