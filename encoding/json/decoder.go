package json

import (
	"fmt"
	"io"

	"github.com/arnodel/jsvalue/internal/scanner"
	"github.com/arnodel/jsvalue/token"
	"github.com/cockroachdb/errors"
)

// A Decoder reads JSON input and streams it into a JSON stream.
type Decoder struct {
	scanr *scanner.Scanner
}

var _ token.Producer = &Decoder{}

// NewDecoder sets up a new Decoder instance to read from the given input.
func NewDecoder(in io.Reader) *Decoder {
	return &Decoder{scanr: scanner.NewScanner(in)}
}

// NewDecoderFromScanner returns a Decoder reading from scanr, so that JSON
// values embedded in another format can be parsed.
func NewDecoderFromScanner(scanr *scanner.Scanner) *Decoder {
	return &Decoder{scanr: scanr}
}

// Produce reads a stream of JSON values and streams them, until it runs
// out of input or encounter invalid JSON, in which case it will return an
// error.
func (d *Decoder) Produce(out chan<- token.Token) error {
	for {
		b, err := d.scanr.SkipSpaceAndPeek()
		if err != nil || b == scanner.EOF {
			return err
		}
		err = d.ParseValue(out)
		if err != nil {
			return err
		}
	}
}

// Pos returns the current position in the input.
func (d *Decoder) Pos() scanner.Pos {
	return d.scanr.CurrentPos()
}

// ParseValue reads a single JSON value and streams it.  It can return a
// non-nil error if the input is invalid JSON, or io.EOF if there is no more
// input.
//
// Arrays and objects being read are tracked in an explicit stack so that the
// nesting depth of the input does not grow the goroutine stack.
func (d *Decoder) ParseValue(out chan<- token.Token) error {
	// Each byte is '[' or '{' for an array or object still open.
	var open []byte
	b, err := d.scanr.SkipSpaceAndPeek()
	if err != nil {
		return err
	}
	if b == scanner.EOF {
		return io.EOF
	}
	for {
		// Parse the start of a value.
		b, err := d.scanr.SkipSpaceAndPeek()
		if err != nil {
			return err
		}
		switch b {
		case '[':
			d.scanr.Read()
			out <- &token.StartArray{}
			b, err = d.scanr.SkipSpaceAndPeek()
			if err != nil {
				return err
			}
			if b != ']' {
				open = append(open, '[')
				continue
			}
			d.scanr.Read()
			out <- &token.EndArray{}
		case '{':
			d.scanr.Read()
			out <- &token.StartObject{}
			b, err = d.scanr.SkipSpaceAndPeek()
			if err != nil {
				return err
			}
			if b != '}' {
				open = append(open, '{')
				if err := d.parseKey(out); err != nil {
					return err
				}
				continue
			}
			d.scanr.Read()
			out <- &token.EndObject{}
		default:
			if err := d.parseScalar(b, out); err != nil {
				return err
			}
		}

		// A value is complete: close the structures it completes and move on
		// to the next item, if any.
	CloseLoop:
		for {
			if len(open) == 0 {
				return nil
			}
			b, err = d.scanr.SkipSpaceAndPeek()
			if err != nil {
				return err
			}
			top := open[len(open)-1]
			switch {
			case b == ',':
				d.scanr.Read()
				if top == '{' {
					if err := d.parseKey(out); err != nil {
						return err
					}
				}
				break CloseLoop
			case top == '[' && b == ']':
				d.scanr.Read()
				out <- &token.EndArray{}
			case top == '{' && b == '}':
				d.scanr.Read()
				out <- &token.EndObject{}
			case top == '[':
				return UnexpectedByte(d.scanr, "expected ']' or ',', got")
			default:
				return UnexpectedByte(d.scanr, "expected '}' or ',' got")
			}
			open = open[:len(open)-1]
		}
	}
}

// parseKey reads an object key and the following ':'.
func (d *Decoder) parseKey(out chan<- token.Token) error {
	if _, err := d.scanr.SkipSpaceAndPeek(); err != nil {
		return err
	}
	key, err := ParseString(d.scanr)
	if err != nil {
		return err
	}
	key.TypeAndFlags |= token.KeyMask
	out <- key
	b, err := d.scanr.SkipSpaceAndPeek()
	if err != nil {
		return err
	}
	if b != ':' {
		return UnexpectedByte(d.scanr, "expected ':', got")
	}
	d.scanr.Read()
	return nil
}

func (d *Decoder) parseScalar(b byte, out chan<- token.Token) error {
	switch b {
	case '"':
		s, err := ParseString(d.scanr)
		if err != nil {
			return err
		}
		out <- s
	case 't':
		if err := checkBytes(d.scanr, trueBytes); err != nil {
			return err
		}
		out <- token.TrueScalar
	case 'f':
		if err := checkBytes(d.scanr, falseBytes); err != nil {
			return err
		}
		out <- token.FalseScalar
	case 'n':
		if err := checkBytes(d.scanr, nullBytes); err != nil {
			return err
		}
		out <- token.NullScalar
	default:
		if b == '-' || b >= '0' && b <= '9' {
			n, err := ParseNumber(d.scanr)
			if err != nil {
				return err
			}
			out <- n
			return nil
		}
		return UnexpectedByte(d.scanr, "unexpected")
	}
	return nil
}

func ExpectByte(scanr *scanner.Scanner, xb byte) error {
	b, err := scanr.Read()
	if err != nil {
		return err
	}
	if b != xb {
		scanr.Back()
		return UnexpectedByte(scanr, "expected %q, got", xb)
	}
	return nil
}

// ErrSyntax is matched (with errors.Is) by every syntax error returned by a
// Decoder.
var ErrSyntax = errors.New("syntax error")

func UnexpectedByte(scanr *scanner.Scanner, expected string, args ...interface{}) error {
	pos := scanr.CurrentPos()
	offset := scanr.Offset()
	b, err := scanr.Read()
	if err != nil {
		return err
	}
	msg := fmt.Sprintf(expected, args...)
	if b == scanner.EOF {
		return errors.Wrapf(ErrSyntax, "at %s (byte %d): %s: <EOF>", pos, offset, msg)
	}
	return errors.Wrapf(ErrSyntax, "at %s (byte %d): %s: %q", pos, offset, msg, b)
}

func ParseString(scanr *scanner.Scanner) (*token.Scalar, error) {
	scanr.StartToken()
	err := ExpectByte(scanr, '"')
	if err != nil {
		scanr.EndToken()
		return nil, err
	}
	isAlnum := true
	isUnescaped := true
	firstChar := true
	for {
		b, err := scanr.Read()
		if err != nil {
			return nil, err
		}
		switch b {
		case '\\':
			isUnescaped = false
			isAlnum = false
			x, err := scanr.Read()
			if err != nil {
				return nil, err
			}
			switch x {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				continue
			case 'u':
				for i := 0; i < 4; i++ {
					b, err = scanr.Read()
					if err != nil {
						return nil, err
					}
					if !scanner.IsHex(b) {
						scanr.Back()
						scanr.EndToken()
						return nil, UnexpectedByte(scanr, "expected hex, got")
					}
				}
			default:
				scanr.Back()
				scanr.EndToken()
				return nil, UnexpectedByte(scanr, "invalid escape character")
			}
		case '"':
			stringBytes := scanr.EndToken()
			scalar := token.NewScalar(token.String, stringBytes)
			if isAlnum {
				scalar.TypeAndFlags |= token.AlnumMask
			}
			if isUnescaped {
				scalar.TypeAndFlags |= token.UnescapedMask
			}
			return scalar, nil
		case scanner.EOF:
			scanr.Back()
			scanr.EndToken()
			return nil, UnexpectedByte(scanr, "unterminated string")
		default:
			if scanner.IsCtrl(b) {
				scanr.Back()
				scanr.EndToken()
				return nil, UnexpectedByte(scanr, "invalid control character in string")
			}
			if isAlnum {
				if firstChar {
					isAlnum = scanner.IsAlpha(b)
					firstChar = false
				} else {
					isAlnum = scanner.IsAlnum(b)
				}
			}
		}
	}
}

// ParseNumber parses a JSON number from the scanner.
func ParseNumber(scanr *scanner.Scanner) (*token.Scalar, error) {
	scanr.StartToken()
	var n int
	b, err := scanr.Read()

	// Sign part
	if b == '-' {
		b, err = scanr.Read()
	}
	if err != nil {
		return nil, err
	}

	// Integer part
	if b == '0' {
		b, err = scanr.Read()
		if err != nil {
			return nil, err
		}
	} else if b >= '1' && b <= '9' {
		b, _, err = ReadDigits(scanr)
		if err != nil {
			return nil, err
		}
	} else {
		scanr.Back()
		scanr.EndToken()
		return nil, UnexpectedByte(scanr, "expected digit, got")
	}

	// Fraction part
	if b == '.' {
		b, n, err = ReadDigits(scanr)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			scanr.Back()
			scanr.EndToken()
			return nil, UnexpectedByte(scanr, "expected digit, got")
		}
	}

	// Exponent part
	if b == 'e' || b == 'E' {
		b, err = scanr.Peek()
		if err != nil {
			return nil, err
		}
		if b == '-' || b == '+' {
			scanr.Read()
		}
		_, n, err = ReadDigits(scanr)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			scanr.Back()
			scanr.EndToken()
			return nil, UnexpectedByte(scanr, "expected digit, got")
		}
	}
	scanr.Back()
	return token.NewScalar(token.Number, scanr.EndToken()), nil
}

func ReadDigits(scanr *scanner.Scanner) (byte, int, error) {
	var n int
	for {
		b, err := scanr.Read()
		if err != nil {
			return 0, n, err
		}
		if !scanner.IsDigit(b) {
			return b, n, nil
		}
		n++
	}
}

func checkBytes(scanr *scanner.Scanner, expected []byte) error {
	for _, xb := range expected {
		if err := ExpectByte(scanr, xb); err != nil {
			return err
		}
	}
	return nil
}

var (
	trueBytes  = []byte("true")
	falseBytes = []byte("false")
	nullBytes  = []byte("null")
)
