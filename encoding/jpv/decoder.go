// Package jpv reads and writes the JPV format, where each line gives the
// path to a leaf value and the value itself:
//
//	<path> = <value>
//
// where <path> is a JSONPath and <value> is a JSON value.  E.g.
//
//	{"name": "Dan", "parent_ids": [132, 7650], "tags": []}
//
// is represented as
//
//	$["name"] = "Dan"
//	$["parent_ids"][0] = 132
//	$["parent_ids"][1] = 7650
//	$["tags"] = []
//
// Lines can be filtered with grep and other unix utilities, then turned back
// into JSON.
package jpv

import (
	"io"

	"github.com/arnodel/jsvalue/encoding/json"
	"github.com/arnodel/jsvalue/internal/scanner"
	"github.com/arnodel/jsvalue/token"
	"github.com/cockroachdb/errors"
)

// ErrInconsistentPath is matched by the error returned when the path of a
// line cannot follow the path of the previous line.
var ErrInconsistentPath = errors.New("inconsistent path")

// Decoder reads input in JPV format and streams it as tokens.  Lines
// describing the same value must be consecutive and in order.
type Decoder struct {
	scanr    *scanner.Scanner
	lastPath []*token.Scalar
}

var _ token.Producer = &Decoder{}

// NewDecoder sets up a new Decoder instance to read from the given
// input.
func NewDecoder(in io.Reader) *Decoder {
	return &Decoder{scanr: scanner.NewScanner(in)}
}

// Produce reads JPV lines and streams the values they describe, until it runs
// out of input or encounters invalid JPV, in which case it returns an error.
func (d *Decoder) Produce(out chan<- token.Token) error {
	for {
		b, err := d.scanr.SkipSpaceAndPeek()
		if err != nil {
			return err
		}
		if b == scanner.EOF {
			unwindPath(d.lastPath, false, out)
			return nil
		}
		pos := d.scanr.CurrentPos()
		err = d.parseLine(pos, out)
		if err == io.EOF {
			return errors.Wrapf(json.ErrSyntax, "line starting at %s: unexpected end of input", pos)
		}
		if err != nil {
			return err
		}
	}
}

func (d *Decoder) parseLine(pos scanner.Pos, out chan<- token.Token) error {
	err := json.ExpectByte(d.scanr, '$')
	if err != nil {
		return err
	}
	linePath, err := parsePath(d.scanr)
	if err != nil {
		return err
	}
	b, err := checkEOF(d.scanr.SkipSpaceAndRead())
	if err != nil {
		return err
	}
	if b != '=' {
		return errors.Wrapf(json.ErrSyntax, "line starting at %s: expected '=' after the path, got %q", pos, b)
	}
	err = d.updatePath(linePath, out)
	if err != nil {
		return errors.Wrapf(err, "line starting at %s", pos)
	}
	return json.NewDecoderFromScanner(d.scanr).ParseValue(out)
}

// updatePath closes the arrays and objects of the previous line that the new
// line is not in, and opens those it is in.
func (d *Decoder) updatePath(newPath []*token.Scalar, out chan<- token.Token) error {
	if len(d.lastPath) == 0 {
		followPath(newPath, false, out)
		d.lastPath = newPath
		return nil
	}
	divergenceIndex := -1
	for i, key := range d.lastPath {
		if i >= len(newPath) {
			return errors.Wrap(ErrInconsistentPath, "cannot be a prefix of the previous path")
		}
		newKey := newPath[i]
		if !key.Equal(newKey) {
			if key.Type() != newKey.Type() {
				return errors.Wrap(ErrInconsistentPath, "key types differ")
			}
			divergenceIndex = i
			break
		}
	}
	if divergenceIndex == -1 {
		return errors.Wrap(ErrInconsistentPath, "cannot extend the previous path")
	}

	unwindPath(d.lastPath[divergenceIndex:], true, out)
	followPath(newPath[divergenceIndex:], true, out)
	d.lastPath = newPath
	return nil
}

func unwindPath(path []*token.Scalar, inCollection bool, out chan<- token.Token) {
	for i := len(path) - 1; i >= 0; i-- {
		if i > 0 || !inCollection {
			if path[i].Type() == token.String {
				out <- &token.EndObject{}
			} else {
				out <- &token.EndArray{}
			}
		}
	}
}

func followPath(path []*token.Scalar, inCollection bool, out chan<- token.Token) {
	for _, key := range path {
		if key.Type() == token.String {
			if !inCollection {
				out <- &token.StartObject{}
			}
			out <- key
		} else if !inCollection {
			out <- &token.StartArray{}
		}
		inCollection = false
	}
}

// checkEOF turns a scanner.EOF byte into io.EOF.
func checkEOF(b byte, err error) (byte, error) {
	if err != nil {
		return b, err
	}
	if b == scanner.EOF {
		return 0, io.EOF
	}
	return b, nil
}

// parsePath reads path segments: ["name"], .name or [index].  Names are
// returned as keys of type String, indices as keys of type Number.
func parsePath(scanr *scanner.Scanner) ([]*token.Scalar, error) {
	var path []*token.Scalar
	for {
		b, err := checkEOF(scanr.Read())
		if err != nil {
			// Paths are followed by a value
			return nil, err
		}
		switch b {
		case '[':
			b, err = checkEOF(scanr.Peek())
			if err != nil {
				return nil, err
			}
			if b == '"' {
				s, err := json.ParseString(scanr)
				if err != nil {
					return nil, err
				}
				s.TypeAndFlags |= token.KeyMask
				path = append(path, s)
				b, err = checkEOF(scanr.Read())
				if err != nil {
					return nil, err
				}
			} else {
				var n int
				scanr.StartToken()
				b, n, err = json.ReadDigits(scanr)
				if err != nil {
					return nil, err
				}
				scanr.Back()
				if n == 0 {
					scanr.EndToken()
					return nil, json.UnexpectedByte(scanr, "expected digit, got")
				}
				path = append(path, token.NewKey(token.Number, scanr.EndToken()))
				scanr.Read()
			}
			if b != ']' {
				scanr.Back()
				return nil, json.UnexpectedByte(scanr, "expected ']', got")
			}
		case '.':
			scanr.StartToken()
			b, err = checkEOF(scanr.Read())
			if err != nil {
				return nil, err
			}
			if !scanner.IsAlpha(b) {
				scanr.Back()
				scanr.EndToken()
				return nil, json.UnexpectedByte(scanr, "expected a-z/A-Z/_, got")
			}
			for {
				b, err = scanr.Read()
				if err != nil {
					return nil, err
				}
				if !scanner.IsAlnum(b) {
					scanr.Back()
					name := scanr.EndToken()
					key := token.NewKey(token.String, append(append([]byte{'"'}, name...), '"'))
					key.TypeAndFlags |= token.AlnumMask
					path = append(path, key)
					break
				}
			}
		default:
			scanr.Back()
			return path, nil
		}
	}
}
