package jpv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arnodel/jsvalue/encoding/json"
	"github.com/arnodel/jsvalue/internal/format"
	"github.com/arnodel/jsvalue/token"
)

func TestWriter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"scalar", "42", "$ = 42\n"},
		{"several values", `1 "x"`, "$ = 1\n$ = \"x\"\n"},
		{"empty array", "[]", "$ = []\n"},
		{"empty object", "{}", "$ = {}\n"},
		{
			name:  "object",
			input: `{"name": "Dan", "ids": [1, 2], "tags": []}`,
			expected: `$["name"] = "Dan"
$["ids"][0] = 1
$["ids"][1] = 2
$["tags"] = []
`,
		},
		{
			name:  "nested",
			input: `[{"a": {}}, [null, [true]]]`,
			expected: `$[0]["a"] = {}
$[1][0] = null
$[1][1][0] = true
`,
		},
		{
			name:     "escaped key",
			input:    `{"a\"b": 1}`,
			expected: "$[\"a\\\"b\"] = 1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := copyJSON(NewWriter(&buf, nil), tt.input); err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if buf.String() != tt.expected {
				t.Errorf("expected:\n%s\ngot:\n%s", tt.expected, buf.String())
			}
		})
	}
}

func TestWriterColors(t *testing.T) {
	var buf bytes.Buffer
	if err := copyJSON(NewWriter(&buf, &format.DefaultColorizer), `{"a": 1}`); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	expected := "$[" + string(format.BrightBlue) + `"a"` + string(format.Reset) + "] = " +
		string(format.White) + "1" + string(format.Reset) + "\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestWriterMisuse(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, nil)
	if err := w.WriteFieldName("a"); err == nil {
		t.Error("expected an error for a field name outside an object")
	}
	if err := w.WriteEndArray(); err == nil {
		t.Error("expected an error for closing with nothing open")
	}
	if err := w.WriteStartObject(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := w.WriteNull(); err == nil {
		t.Error("expected an error for an object value without a field name")
	}
	if err := w.WriteEndArray(); err == nil {
		t.Error("expected an error for closing an object as an array")
	}
}

// TestRoundtrip checks that JPV output decodes back to the same tokens.
func TestRoundtrip(t *testing.T) {
	inputs := []string{
		`{"name": "Dan", "ids": [1, 2.5], "tags": [], "o": {"k": null, "l": [[]]}}`,
		`[[1], [{"a": "b"}, "c"]]`,
		`"x" [] {}`,
	}
	for _, input := range inputs {
		var jpvBuf bytes.Buffer
		if err := copyJSON(NewWriter(&jpvBuf, nil), input); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		want, err := decodeJSON(input)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		got, err := decodeJPV(jpvBuf.String())
		if err != nil {
			t.Fatalf("error decoding %q: %s", jpvBuf.String(), err)
		}
		var wantStrings []string
		for _, tok := range want {
			wantStrings = append(wantStrings, tok.String())
		}
		assertTokenStrings(t, wantStrings, got)
	}
}

func decodeJSON(input string) ([]token.Token, error) {
	var err error
	stream := token.StartStream(json.NewDecoder(strings.NewReader(input)), func(e error) { err = e })
	var toks []token.Token
	for tok := range stream {
		toks = append(toks, tok)
	}
	return toks, err
}

func copyJSON(w token.Sink, input string) error {
	toks, err := decodeJSON(input)
	if err != nil {
		return err
	}
	return token.Copy(w, token.NewStreamSource(token.NewSliceReadStream(toks)))
}
