package jsvalue

import (
	"github.com/arnodel/jsvalue/internal/debug"
	"github.com/arnodel/jsvalue/token"
	"github.com/cockroachdb/errors"
)

// Decode reads one complete JSON value from src and returns it.  It fails
// with ErrTypeMismatch if the value is not accepted by want (use AnyKind to
// accept every value).
//
// If src has not been advanced yet, Decode pulls its first token; otherwise
// decoding starts at the current token.  Decode consumes tokens until src is
// exhausted: a further token after the root value is ErrMultipleRootValues.
//
// Nesting depth is limited only by memory: open arrays and objects are kept
// on an explicit stack, not on the goroutine stack.
func Decode(src token.Source, want Kind) (Value, error) {
	var root Value
	d := decoder{src: src}
	err := d.run(want, false, func(v Value) error {
		root = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return root, nil
}

// DecodeStream is like Decode but accepts a sequence of root values, calling
// fn with each one in turn.  It stops at the first error, including one
// returned by fn.
func DecodeStream(src token.Source, want Kind, fn func(Value) error) error {
	d := decoder{src: src}
	return d.run(want, true, fn)
}

// NullValue is the value to use when there is no token at all to decode.  It
// is Null, not Undefined.
func NullValue() Value {
	return Null{}
}

type decoder struct {
	src      token.Source
	stack    contextStack
	loc      string
	maxDepth int
}

func (d *decoder) run(want Kind, stream bool, emit func(Value) error) error {
	kind := d.src.Current()
	if kind == token.KindNotAvailable {
		var err error
		kind, err = d.advance()
		if err != nil {
			return err
		}
	}
	for {
		value, err := d.step(kind)
		if err != nil {
			return err
		}
		next, err := d.advance()
		if err != nil {
			return err
		}
		switch {
		case value == nil:
			// A structure was opened or a field name read.
		case d.stack.depth() == 0:
			if next != token.KindNotAvailable && !stream {
				d.loc = token.Location(d.src)
				return d.fail(ErrMultipleRootValues, next,
					"a sequence of values was found outside any array or object")
			}
			if !want.Accepts(value.Kind()) {
				return d.failExpecting(ErrTypeMismatch, kind, want.String(), value.Kind().String())
			}
			if debug.On {
				debug.Printf("decoded %s, max context depth %d", value.Kind(), d.maxDepth)
			}
			if err := emit(value); err != nil {
				return err
			}
			if next == token.KindNotAvailable {
				return nil
			}
		default:
			top, _ := d.stack.pop()
			top, err = top.addValue(value)
			if err != nil {
				d.stack.push(top)
				return d.fail(err, kind, "a value was supplied without a preceding field name")
			}
			d.stack.push(top)
		}
		kind = next
	}
}

// step processes the current token.  It returns the value the token
// completes, if any.
func (d *decoder) step(kind token.Kind) (Value, error) {
	d.loc = token.Location(d.src)
	switch kind {
	case token.KindNumber:
		n, err := d.src.Decimal()
		if err != nil {
			return nil, d.sourceError(err)
		}
		return Number{d: n}, nil
	case token.KindString:
		s, err := d.src.Text()
		if err != nil {
			return nil, d.sourceError(err)
		}
		return String(s), nil
	case token.KindTrue:
		return Boolean(true), nil
	case token.KindFalse:
		return Boolean(false), nil
	case token.KindNull:
		return Null{}, nil
	case token.KindStartArray:
		d.open(arrayContext)
		return nil, nil
	case token.KindEndArray:
		c, ok := d.stack.pop()
		if !ok || c.kind != arrayContext {
			return nil, d.mismatch(kind, "expected to be closing an array", arrayContext, c, ok)
		}
		return newArrayOwned(c.elems), nil
	case token.KindStartObject:
		d.open(objectContext)
		return nil, nil
	case token.KindFieldName:
		c, ok := d.stack.pop()
		if !ok || c.kind != objectContext {
			return nil, d.mismatch(kind, "expected to be reading an object", objectContext, c, ok)
		}
		name, err := d.src.FieldName()
		if err != nil {
			return nil, d.sourceError(err)
		}
		d.stack.push(c.withFieldName(name))
		return nil, nil
	case token.KindEndObject:
		c, ok := d.stack.pop()
		if !ok || c.kind != objectContext {
			return nil, d.mismatch(kind, "expected to be closing an object", objectContext, c, ok)
		}
		return newObjectOwned(c.fields), nil
	case token.KindNotAvailable:
		return nil, d.fail(ErrUnsupportedToken, kind, "token source exhausted before a complete value was read")
	default:
		return nil, d.fail(ErrUnsupportedToken, kind, "token does not represent a JSON value")
	}
}

func (d *decoder) open(kind contextKind) {
	d.stack.push(deserializerContext{kind: kind})
	if debug.On && d.stack.depth() > d.maxDepth {
		d.maxDepth = d.stack.depth()
	}
}

func (d *decoder) advance() (token.Kind, error) {
	kind, err := d.src.Advance()
	if err != nil {
		return kind, d.sourceError(err)
	}
	return kind, nil
}

func (d *decoder) sourceError(err error) error {
	if d.loc == "" {
		return errors.Wrap(err, "jsvalue: token source")
	}
	return errors.Wrapf(err, "jsvalue: token source after %s", d.loc)
}

func (d *decoder) fail(sentinel error, kind token.Kind, msg string) error {
	return errors.WithStack(&DecodeError{
		Err:      sentinel,
		Token:    kind,
		Location: d.loc,
		Depth:    d.stack.depth(),
		Msg:      msg,
	})
}

func (d *decoder) failExpecting(sentinel error, kind token.Kind, expected, found string) error {
	return errors.WithStack(&DecodeError{
		Err:      sentinel,
		Token:    kind,
		Location: d.loc,
		Depth:    d.stack.depth(),
		Expected: expected,
		Found:    found,
	})
}

// mismatch reports a structural token that needed a want context but found
// the popped context c (popped is false if the stack was empty).
func (d *decoder) mismatch(kind token.Kind, msg string, want contextKind, c deserializerContext, popped bool) error {
	found := "no open array or object"
	depth := d.stack.depth()
	if popped {
		found = c.kind.String() + " context"
		depth++
	}
	return errors.WithStack(&DecodeError{
		Err:      ErrStructuralMismatch,
		Token:    kind,
		Location: d.loc,
		Depth:    depth,
		Msg:      msg,
		Expected: want.String() + " context",
		Found:    found,
	})
}
