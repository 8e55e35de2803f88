package json

import (
	"strings"
	"testing"

	"github.com/arnodel/jsvalue/token"
	"github.com/cockroachdb/errors"
)

// TestDecoderScalars tests decoding of scalar values
func TestDecoderScalars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"true", "true", []string{"Scalar(true)"}},
		{"false", "false", []string{"Scalar(false)"}},
		{"null", "null", []string{"Scalar(null)"}},
		{"integer", "42", []string{"Scalar(42)"}},
		{"negative integer", "-123", []string{"Scalar(-123)"}},
		{"float", "3.14", []string{"Scalar(3.14)"}},
		{"exponent", "1.5e-10", []string{"Scalar(1.5e-10)"}},
		{"upper exponent", "2E+3", []string{"Scalar(2E+3)"}},
		{"zero", "0", []string{"Scalar(0)"}},
		{"string", `"hello"`, []string{`Scalar("hello")`}},
		{"empty string", `""`, []string{`Scalar("")`}},
		{"escapes", `"a\"b\\c\n"`, []string{`Scalar("a\"b\\c\n")`}},
		{"unicode escape", `"é"`, []string{`Scalar("é")`}},
		{"surrounding space", "  \n\t7 ", []string{"Scalar(7)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := decodeString(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			assertTokenStrings(t, toks, tt.expected)
		})
	}
}

// TestDecoderStringFlags tests the flags set on decoded strings
func TestDecoderStringFlags(t *testing.T) {
	tests := []struct {
		input     string
		alnum     bool
		unescaped bool
	}{
		{`"abc1"`, true, true},
		{`"1abc"`, false, true},
		{`"a b"`, false, true},
		{`"a\nb"`, false, false},
		{`"ab\u0063"`, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks, err := decodeString(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			s := toks[0].(*token.Scalar)
			if s.IsAlnum() != tt.alnum {
				t.Errorf("IsAlnum() = %t", s.IsAlnum())
			}
			if s.IsUnescaped() != tt.unescaped {
				t.Errorf("IsUnescaped() = %t", s.IsUnescaped())
			}
		})
	}
}

// TestDecoderStructures tests decoding of arrays and objects
func TestDecoderStructures(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty array",
			input:    "[]",
			expected: []string{"StartArray", "EndArray"},
		},
		{
			name:     "array",
			input:    `[1, "x", true, null]`,
			expected: []string{"StartArray", "Scalar(1)", `Scalar("x")`, "Scalar(true)", "Scalar(null)", "EndArray"},
		},
		{
			name:     "nested arrays",
			input:    "[[1], [], [[2]]]",
			expected: []string{"StartArray", "StartArray", "Scalar(1)", "EndArray", "StartArray", "EndArray", "StartArray", "StartArray", "Scalar(2)", "EndArray", "EndArray", "EndArray"},
		},
		{
			name:     "empty object",
			input:    "{ }",
			expected: []string{"StartObject", "EndObject"},
		},
		{
			name:     "object",
			input:    `{"a": 1, "b": [true]}`,
			expected: []string{"StartObject", `Key("a")`, "Scalar(1)", `Key("b")`, "StartArray", "Scalar(true)", "EndArray", "EndObject"},
		},
		{
			name:     "duplicate keys",
			input:    `{"a":1,"a":2,"b":3}`,
			expected: []string{"StartObject", `Key("a")`, "Scalar(1)", `Key("a")`, "Scalar(2)", `Key("b")`, "Scalar(3)", "EndObject"},
		},
		{
			name:     "empty key",
			input:    `{"":{}}`,
			expected: []string{"StartObject", `Key("")`, "StartObject", "EndObject", "EndObject"},
		},
		{
			name:     "several values",
			input:    "1 [2]\n{}",
			expected: []string{"Scalar(1)", "StartArray", "Scalar(2)", "EndArray", "StartObject", "EndObject"},
		},
		{
			name:     "no input",
			input:    "  \n",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := decodeString(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			assertTokenStrings(t, toks, tt.expected)
		})
	}
}

// TestDecoderDeepNesting checks that nesting depth is not limited by the
// goroutine stack
func TestDecoderDeepNesting(t *testing.T) {
	const depth = 100000
	input := strings.Repeat("[", depth) + strings.Repeat("]", depth)
	toks, err := decodeString(input)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(toks) != 2*depth {
		t.Fatalf("expected %d tokens, got %d", 2*depth, len(toks))
	}
	if _, ok := toks[depth].(*token.EndArray); !ok {
		t.Errorf("expected EndArray at %d, got %s", depth, toks[depth])
	}
}

// TestDecoderSyntaxErrors tests that invalid input is reported
func TestDecoderSyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"trailing comma in array", "[1,]"},
		{"trailing comma in object", `{"a":1,}`},
		{"missing colon", `{"a" 1}`},
		{"non string key", `{1:2}`},
		{"missing comma", "[1 2]"},
		{"mismatched close", "[1}"},
		{"unclosed array", "[1"},
		{"unclosed object", `{"a":1`},
		{"bad literal", "tru"},
		{"bad literal prefix", "nul"},
		{"lone minus", "-"},
		{"missing fraction", "1."},
		{"missing exponent", "1e"},
		{"unterminated string", `"abc`},
		{"invalid escape", `"\x"`},
		{"short unicode escape", `"\u12"`},
		{"control character", "\"a\x01\""},
		{"unexpected byte", "@"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeString(tt.input)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("expected a syntax error, got %s", err)
			}
		})
	}
}

// TestDecoderErrorOffset tests that syntax errors carry the input offset
func TestDecoderErrorOffset(t *testing.T) {
	_, err := decodeString("[1,]")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "byte 3") {
		t.Errorf("expected the offset of ']' in %q", err)
	}
}

// Helper functions

// decodeString decodes input and returns the tokens produced, and the error
// the decoder stopped with if any.
func decodeString(input string) ([]token.Token, error) {
	var err error
	stream := token.StartStream(NewDecoder(strings.NewReader(input)), func(e error) {
		err = e
	})
	var toks []token.Token
	for tok := range stream {
		toks = append(toks, tok)
	}
	return toks, err
}

func assertTokenStrings(t *testing.T, toks []token.Token, expected []string) {
	t.Helper()
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens %v, got %d %v", len(expected), expected, len(toks), toks)
	}
	for i, tok := range toks {
		if tok.String() != expected[i] {
			t.Errorf("token %d: expected %s, got %s", i, expected[i], tok)
		}
	}
}
