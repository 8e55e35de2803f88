package token

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

// A Token is an item in a stream that encodes a JSON value
// For example, the JSON value
//
//	{"id": 123, "tags": ["important", "new"]}
//
// would be represented by the stream of Token (in pseudocode for
// clarity):
//
//	{            -> StartObject
//	"id":        -> Key("id")
//	123,         -> Scalar(123, Number)
//	"tags":      -> Key("tags")
//	[            -> StartArray
//	"important", -> Scalar("important", String)
//	"new"        -> Scalar("new", String)
//	]            -> EndArray
//	}            -> EndObject
//
// A stream of Token values can be turned into a pull-based Source with
// NewStreamSource, and a Sink can write one with NewStreamSink.
type Token interface {
	fmt.Stringer
}

// StartObject represents the start of a JSON object (introduced by '{').
type StartObject struct{}

func (s *StartObject) String() string {
	return "StartObject"
}

var _ Token = &StartObject{}

// EndObject represents the end of a JSON object (introduced by '}')
type EndObject struct{}

func (e *EndObject) String() string {
	return "EndObject"
}

var _ Token = &EndObject{}

// StartArray represents the start of a JSON array (introduced by '[').
type StartArray struct{}

func (s *StartArray) String() string {
	return "StartArray"
}

var _ Token = &StartArray{}

// EndArray represents the end of a JSON array (introduced by ']')
type EndArray struct{}

func (e *EndArray) String() string {
	return "EndArray"
}

var _ Token = &EndArray{}

// Elision is not part of the JSON syntax.  It marks content that was removed
// from an array or an object by an upstream producer.  It carries no JSON
// value so a Source reports it as KindEmbedded.
type Elision struct{}

func (e *Elision) String() string {
	return "Elision"
}

var _ Token = &Elision{}

// Scalar is the type used to represent all scalar JSON values, i.e.
// - strings
// - numbers
// - booleans (to values)
// - null (a single value)
//
// Object keys are also Scalar values, of type String with the KeyMask flag
// set.
//
// The type is encoded in the Type field, while the Bytes fields contains the
// literal representation of the value as found in the input.
type Scalar struct {

	// Literal representation of the value, e.g.
	// - the string "foo" is represented as []byte("\"foo\"")
	// - the number 123.5 is represented as []byte("132.5")
	// - the boolean true is represented as []byte("true")
	Bytes []byte

	// Type of the value
	TypeAndFlags uint8
}

// EqualsString is a convenience method to check if a Scalar represents the
// passed string.
func (s *Scalar) EqualsString(str string) bool {
	if s.Type() != String {
		return false
	}
	text, err := s.ToString()
	return err == nil && text == str
}

func NewScalar(tp ScalarType, bytes []byte) *Scalar {
	return &Scalar{
		Bytes:        bytes,
		TypeAndFlags: uint8(tp),
	}
}

func NewKey(tp ScalarType, bytes []byte) *Scalar {
	return &Scalar{
		Bytes:        bytes,
		TypeAndFlags: uint8(tp) | KeyMask,
	}
}

func (s *Scalar) Type() ScalarType {
	return (ScalarType(s.TypeAndFlags & TypeMask))
}

func (s *Scalar) IsKey() bool {
	return KeyMask&s.TypeAndFlags != 0
}

func (s *Scalar) IsAlnum() bool {
	return AlnumMask&s.TypeAndFlags != 0
}

func (s *Scalar) IsUnescaped() bool {
	return UnescapedMask&s.TypeAndFlags != 0
}

func (s *Scalar) String() string {
	if s.IsKey() {
		return fmt.Sprintf("Key(%s)", s.Bytes)
	}
	return fmt.Sprintf("Scalar(%s)", s.Bytes)
}

// Kind classifies the scalar for a Source.
func (s *Scalar) Kind() Kind {
	if s.IsKey() {
		return KindFieldName
	}
	switch s.Type() {
	case Null:
		return KindNull
	case Boolean:
		if len(s.Bytes) > 0 && s.Bytes[0] == 't' {
			return KindTrue
		}
		return KindFalse
	case Number:
		return KindNumber
	default:
		return KindString
	}
}

func (s *Scalar) Equal(t *Scalar) bool {
	if s == nil || t == nil {
		return false
	}
	if s.Type() != t.Type() || s.IsKey() != t.IsKey() {
		return false
	}
	switch s.Type() {
	case Null:
		return true
	case Boolean:
		// The bytes are "true" or "false", so it's enough to compare the first one
		return s.Bytes[0] == t.Bytes[0]
	case String:
		if bytes.Equal(s.Bytes, t.Bytes) {
			return true
		}
		if s.IsUnescaped() && t.IsUnescaped() {
			return false
		}
		x, err1 := s.ToString()
		y, err2 := t.ToString()
		return err1 == nil && err2 == nil && x == y
	default:
		if bytes.Equal(s.Bytes, t.Bytes) {
			return true
		}
		x, err1 := s.ToDecimal()
		y, err2 := t.ToDecimal()
		return err1 == nil && err2 == nil && x.Equal(y)
	}
}

// ToString returns the unescaped text of a String scalar.
func (s *Scalar) ToString() (string, error) {
	if s.Type() != String {
		return "", errors.Newf("scalar %s is not a string", s.Bytes)
	}
	if s.IsUnescaped() {
		return string(s.Bytes[1 : len(s.Bytes)-1]), nil
	}
	var str string
	if err := json.Unmarshal(s.Bytes, &str); err != nil {
		return "", errors.Wrapf(err, "invalid string literal %s", s.Bytes)
	}
	return str, nil
}

// ToDecimal returns the exact value of a Number scalar.
func (s *Scalar) ToDecimal() (decimal.Decimal, error) {
	if s.Type() != Number {
		return decimal.Decimal{}, errors.Newf("scalar %s is not a number", s.Bytes)
	}
	d, err := decimal.NewFromString(string(s.Bytes))
	if err != nil {
		return decimal.Decimal{}, errors.Wrapf(err, "invalid number literal %s", s.Bytes)
	}
	return d, nil
}

// ScalarType encodes the four possible JSON scalar types.
type ScalarType uint8

const (
	Null               = 0x0 // the type of JSON null
	Boolean            = 0x1 // a JSON boolean
	Number             = 0x2 // a JSON number
	String  ScalarType = 0x3 // a JSON string
)

const (
	TypeMask      = 0b00011
	KeyMask       = 0b00100
	AlnumMask     = 0b01000
	UnescapedMask = 0b10000
)

var (
	trueBytes  = []byte("true")
	falseBytes = []byte("false")
	nullBytes  = []byte("null")
)

var (
	TrueScalar  = NewScalar(Boolean, trueBytes)
	FalseScalar = NewScalar(Boolean, falseBytes)
	NullScalar  = NewScalar(Null, nullBytes)
)

func quoteString(s string) []byte {
	var b bytes.Buffer
	encoder := json.NewEncoder(&b)
	if err := encoder.Encode(s); err != nil {
		panic(err)
	}
	var encodedBytes = b.Bytes()
	// Remove the new line at the end
	return encodedBytes[:len(encodedBytes)-1]
}

func StringScalar(s string) *Scalar {
	return NewScalar(String, quoteString(s))
}

// KeyScalar returns the token for the object key s.
func KeyScalar(s string) *Scalar {
	return NewKey(String, quoteString(s))
}

// DecimalScalar returns a Number scalar whose literal is FormatDecimal(d).
func DecimalScalar(d decimal.Decimal) *Scalar {
	return NewScalar(Number, []byte(FormatDecimal(d)))
}

// maxPadding is the number of zeros FormatDecimal writes between the point
// and the coefficient before switching to an exponent.
const maxPadding = 6

// FormatDecimal writes d as a JSON number that keeps the digits of its
// coefficient, so that 1.50 stays 1.50.  A positive exponent is always
// written as such, which keeps the output small for inputs like 1e1000000.
func FormatDecimal(d decimal.Decimal) string {
	coef := d.Coefficient()
	exp := int(d.Exponent())
	var sign string
	if coef.Sign() < 0 {
		sign = "-"
		coef.Neg(coef)
	}
	digits := coef.String()
	switch k := -exp; {
	case exp == 0 || coef.Sign() == 0 && exp > 0:
		return sign + digits
	case exp > 0:
		return sign + digits + "e" + strconv.Itoa(exp)
	case k < len(digits):
		return sign + digits[:len(digits)-k] + "." + digits[len(digits)-k:]
	case k-len(digits) <= maxPadding:
		return sign + "0." + strings.Repeat("0", k-len(digits)) + digits
	default:
		return sign + digits + "e" + strconv.Itoa(exp)
	}
}

func Float64Scalar(x float64) *Scalar {
	return NewScalar(Number, []byte(strconv.FormatFloat(x, 'e', -1, 64)))
}

func Int64Scalar(n int64) *Scalar {
	return NewScalar(Number, []byte(strconv.FormatInt(n, 10)))
}

func BoolScalar(b bool) *Scalar {
	if b {
		return TrueScalar
	}
	return FalseScalar
}
