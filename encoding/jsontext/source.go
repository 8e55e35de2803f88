// Package jsontext provides a token.Source that reads JSON text with the
// jsontext decoder from github.com/go-json-experiment/json.
package jsontext

import (
	"bytes"
	"fmt"
	"io"

	"github.com/arnodel/jsvalue/token"
	"github.com/cockroachdb/errors"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/shopspring/decimal"
)

// Source reads JSON text token by token.  Whitespace separated top-level
// values are accepted, duplicate object names are kept, and every syntax
// error carries the byte offset at which it was detected.
//
// The jsontext decoder rejects input nested more than 10000 levels deep
// ("exceeded max depth").  Use the encoding/json Decoder for deeper input.
type Source struct {
	dec    *jsontext.Decoder
	kind   token.Kind
	text   string // payload of the current string, name or number token
	offset int64  // input offset before the current token
}

var _ token.Source = &Source{}
var _ token.Locator = &Source{}

func NewSource(r io.Reader) *Source {
	return &Source{dec: jsontext.NewDecoder(r, jsontext.AllowDuplicateNames(true))}
}

func NewSourceBytes(b []byte) *Source {
	return NewSource(bytes.NewReader(b))
}

func (s *Source) Current() token.Kind {
	return s.kind
}

func (s *Source) Advance() (token.Kind, error) {
	// The next string is an object name iff an even number of names and
	// values have been read at the current level of an object.
	levelKind, length := s.dec.StackIndex(s.dec.StackDepth())
	isName := levelKind == '{' && length%2 == 0

	s.offset = s.dec.InputOffset()
	s.text = ""
	tok, err := s.dec.ReadToken()
	if err == io.EOF {
		s.kind = token.KindNotAvailable
		return s.kind, nil
	}
	if err != nil {
		s.kind = token.KindNotAvailable
		return s.kind, errors.Wrapf(err, "jsontext: at byte %d", s.offset)
	}
	switch tok.Kind() {
	case 'n':
		s.kind = token.KindNull
	case 't':
		s.kind = token.KindTrue
	case 'f':
		s.kind = token.KindFalse
	case '"':
		s.text = tok.String()
		if isName {
			s.kind = token.KindFieldName
		} else {
			s.kind = token.KindString
		}
	case '0':
		s.text = tok.String()
		s.kind = token.KindNumber
	case '[':
		s.kind = token.KindStartArray
	case ']':
		s.kind = token.KindEndArray
	case '{':
		s.kind = token.KindStartObject
	case '}':
		s.kind = token.KindEndObject
	default:
		s.kind = token.KindEmbedded
	}
	return s.kind, nil
}

func (s *Source) FieldName() (string, error) {
	if s.kind != token.KindFieldName {
		return "", s.payloadError("a field name")
	}
	return s.text, nil
}

func (s *Source) Decimal() (decimal.Decimal, error) {
	if s.kind != token.KindNumber {
		return decimal.Decimal{}, s.payloadError("a number")
	}
	d, err := decimal.NewFromString(s.text)
	if err != nil {
		return decimal.Decimal{}, errors.Wrapf(err, "jsontext: at byte %d", s.offset)
	}
	return d, nil
}

func (s *Source) Text() (string, error) {
	if s.kind != token.KindString {
		return "", s.payloadError("a string")
	}
	return s.text, nil
}

// Location is the input offset where scanning for the current token started.
func (s *Source) Location() string {
	return fmt.Sprintf("byte %d", s.offset)
}

func (s *Source) payloadError(what string) error {
	return errors.Newf("jsontext: at byte %d: current token %s is not %s", s.offset, s.kind, what)
}
