package token

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

// A Source yields a JSON token stream one token at a time.  Only the current
// token is visible.
//
// Current reports the kind of the current token; before the first call to
// Advance and after the stream is exhausted it is KindNotAvailable.
// FieldName, Decimal and Text extract the payload of the current token and
// return an error if the current token does not carry one of that sort.
type Source interface {
	Current() Kind
	Advance() (Kind, error)
	FieldName() (string, error)
	Decimal() (decimal.Decimal, error)
	Text() (string, error)
}

// A Locator can describe the position of its current token, for use in error
// messages.
type Locator interface {
	Location() string
}

// Location returns the position of the current token of src if it is a
// Locator, or "" otherwise.
func Location(src Source) string {
	if l, ok := src.(Locator); ok {
		return l.Location()
	}
	return ""
}

// StreamSource is a Source that pulls tokens from a ReadStream.  Object keys
// must be Scalar values with the KeyMask flag set, which is what the
// decoders in this module produce.
type StreamSource struct {
	stream  ReadStream
	current Token
	kind    Kind
	index   int
}

var _ Source = &StreamSource{}
var _ Locator = &StreamSource{}

func NewStreamSource(stream ReadStream) *StreamSource {
	return &StreamSource{stream: stream}
}

func (s *StreamSource) Current() Kind {
	return s.kind
}

func (s *StreamSource) Advance() (Kind, error) {
	s.current = s.stream.Next()
	if s.current != nil {
		s.index++
	}
	s.kind = KindOf(s.current)
	return s.kind, nil
}

// Token returns the current token, or nil.
func (s *StreamSource) Token() Token {
	return s.current
}

func (s *StreamSource) FieldName() (string, error) {
	scalar, ok := s.current.(*Scalar)
	if !ok || !scalar.IsKey() {
		return "", s.payloadError("a field name")
	}
	return scalar.ToString()
}

func (s *StreamSource) Decimal() (decimal.Decimal, error) {
	scalar, ok := s.current.(*Scalar)
	if !ok || scalar.IsKey() || scalar.Type() != Number {
		return decimal.Decimal{}, s.payloadError("a number")
	}
	return scalar.ToDecimal()
}

func (s *StreamSource) Text() (string, error) {
	scalar, ok := s.current.(*Scalar)
	if !ok || scalar.IsKey() || scalar.Type() != String {
		return "", s.payloadError("a string")
	}
	return scalar.ToString()
}

// Location is the 1-based index of the current token in the stream.
func (s *StreamSource) Location() string {
	return fmt.Sprintf("token #%d", s.index)
}

func (s *StreamSource) payloadError(what string) error {
	return errors.Newf("%s: current token %s is not %s", s.Location(), s.kind, what)
}
