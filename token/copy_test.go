package token

import (
	"strings"
	"testing"
)

// TestCopy tests that Copy reproduces a token stream through a Sink
func TestCopy(t *testing.T) {
	toks := []Token{
		&StartObject{},
		KeyScalar("a"),
		&StartArray{},
		Int64Scalar(1),
		StringScalar("s"),
		TrueScalar,
		FalseScalar,
		NullScalar,
		&EndArray{},
		&EndObject{},
	}
	acc := NewAccumulatorStream()
	if err := Copy(NewStreamSink(acc), NewStreamSource(NewSliceReadStream(toks))); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	got := acc.GetTokens()
	if len(got) != len(toks) {
		t.Fatalf("expected %d tokens, got %d", len(toks), len(got))
	}
	for i, tok := range toks {
		if got[i].String() != tok.String() {
			t.Errorf("token %d: expected %s, got %s", i, tok, got[i])
		}
	}
}

// TestCopyEmbedded tests that Copy refuses tokens with no JSON meaning
func TestCopyEmbedded(t *testing.T) {
	src := NewStreamSource(NewSliceReadStream([]Token{&StartArray{}, &Elision{}, &EndArray{}}))
	err := Copy(NewStreamSink(NewAccumulatorStream()), src)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "token #2") {
		t.Errorf("expected the location in %q", err)
	}
}
