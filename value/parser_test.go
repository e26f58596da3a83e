package value_test

import (
	"testing"

	"cssnip/value"
)

func TestParse_SingleNodes(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind value.Kind
		out  string
	}{
		{"identifier", "block", value.KindLiteral, "block"},
		{"hyphenated identifier", "inline-block", value.KindLiteral, "inline-block"},
		{"function", "linear-gradient()", value.KindFunction, "linear-gradient"},
		{"color", "#f0f0f0", value.KindColor, "#f0f0f0"},
		{"string", `"PT Serif"`, value.KindString, "PT Serif"},
		{"number", "0", value.KindNumber, "0"},
		{"dimension", "1.2em", value.KindNumber, "1.2em"},
		{"percentage", "50%", value.KindNumber, "50%"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			nodes, err := value.Parse(tc.text)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tc.text, err)
			}
			if len(nodes) != 1 {
				t.Fatalf("Parse(%q) returned %d nodes, want 1", tc.text, len(nodes))
			}
			if nodes[0].Kind != tc.kind {
				t.Errorf("node kind = %s, want %s", nodes[0].Kind, tc.kind)
			}
			if nodes[0].Text != tc.out {
				t.Errorf("node text = %q, want %q", nodes[0].Text, tc.out)
			}
		})
	}
}

func TestParse_Dimension(t *testing.T) {
	tests := []struct {
		text  string
		value float64
		unit  string
	}{
		{"1.5em", 1.5, "em"},
		{"-2px", -2, "px"},
		{"50%", 50, "%"},
		{"1e3px", 1000, "px"},
		{"2E-1s", 0.2, "s"},
		{"1em", 1, "em"},
	}

	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			nodes, err := value.Parse(tc.text)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tc.text, err)
			}
			if nodes[0].Value != tc.value {
				t.Errorf("Value = %v, want %v", nodes[0].Value, tc.value)
			}
			if nodes[0].Unit != tc.unit {
				t.Errorf("Unit = %q, want %q", nodes[0].Unit, tc.unit)
			}
		})
	}
}

func TestParse_MultipleNodes(t *testing.T) {
	nodes, err := value.Parse("0 0")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}
	for i, n := range nodes {
		if n.Kind != value.KindNumber || n.Value != 0 {
			t.Errorf("node %d = %+v, want zero number", i, n)
		}
	}
}

func TestParse_FunctionArguments(t *testing.T) {
	nodes, err := value.Parse("minmax(min-content, 1fr)")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(nodes))
	}
	fn := nodes[0]
	if fn.Kind != value.KindFunction || fn.Text != "minmax" {
		t.Fatalf("node = %+v, want minmax function", fn)
	}
	if len(fn.Args) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(fn.Args))
	}
	if fn.Args[0].Kind != value.KindLiteral || fn.Args[0].Text != "min-content" {
		t.Errorf("first argument = %+v, want min-content literal", fn.Args[0])
	}
	if fn.Args[1].Kind != value.KindNumber || fn.Args[1].Unit != "fr" {
		t.Errorf("second argument = %+v, want 1fr number", fn.Args[1])
	}
}

func TestParse_URL(t *testing.T) {
	tests := []struct {
		name string
		text string
		ref  string
	}{
		{"empty", "url()", ""},
		{"bare", "url(image.png)", "image.png"},
		{"quoted", `url("image.png")`, "image.png"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			nodes, err := value.Parse(tc.text)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tc.text, err)
			}
			if len(nodes) != 1 {
				t.Fatalf("expected 1 node, got %d", len(nodes))
			}
			if nodes[0].Kind != value.KindFunction || nodes[0].Text != "url" {
				t.Fatalf("node = %+v, want url function", nodes[0])
			}
			if len(tc.ref) == 0 {
				if len(nodes[0].Args) != 0 {
					t.Errorf("expected no arguments, got %+v", nodes[0].Args)
				}
				return
			}
			if len(nodes[0].Args) != 1 || nodes[0].Args[0].Text != tc.ref {
				t.Errorf("arguments = %+v, want %q", nodes[0].Args, tc.ref)
			}
		})
	}
}

func TestParse_NestedFunction(t *testing.T) {
	nodes, err := value.Parse("repeat(2, minmax(0, auto))")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(nodes) != 1 || nodes[0].Text != "repeat" {
		t.Fatalf("unexpected nodes: %+v", nodes)
	}
	args := nodes[0].Args
	if len(args) != 2 || args[1].Kind != value.KindFunction || args[1].Text != "minmax" {
		t.Fatalf("unexpected arguments: %+v", args)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"unterminated function", "rgb("},
		{"unbalanced parenthesis", "auto)"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := value.Parse(tc.text); err == nil {
				t.Errorf("Parse(%q) expected error, got none", tc.text)
			}
		})
	}
}
