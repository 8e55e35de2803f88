package jsvalue

import (
	"bytes"

	"github.com/arnodel/jsvalue/encoding/jsoniter"
	"github.com/arnodel/jsvalue/encoding/jsontext"
	"github.com/cockroachdb/errors"
)

// Values can be used with the encoding/json package.  All of them marshal to
// compact JSON text; Undefined marshals to null.  *Array and *Object
// unmarshal JSON text of the matching kind, keeping duplicate field names.
// Document holds a Value of any kind.

func (v Null) MarshalJSON() ([]byte, error)      { return marshalValue(v) }
func (v Undefined) MarshalJSON() ([]byte, error) { return marshalValue(v) }
func (v Boolean) MarshalJSON() ([]byte, error)   { return marshalValue(v) }
func (v Number) MarshalJSON() ([]byte, error)    { return marshalValue(v) }
func (v String) MarshalJSON() ([]byte, error)    { return marshalValue(v) }
func (v Array) MarshalJSON() ([]byte, error)     { return marshalValue(v) }
func (v Object) MarshalJSON() ([]byte, error)    { return marshalValue(v) }

// UnmarshalJSON leaves a unchanged if data is null.
func (a *Array) UnmarshalJSON(data []byte) error {
	v, err := unmarshalValue(data, ArrayKind)
	if err != nil || v == nil {
		return err
	}
	*a = v.(Array)
	return nil
}

// UnmarshalJSON leaves o unchanged if data is null.
func (o *Object) UnmarshalJSON(data []byte) error {
	v, err := unmarshalValue(data, ObjectKind)
	if err != nil || v == nil {
		return err
	}
	*o = v.(Object)
	return nil
}

// A Document wraps a Value of any kind so it can be unmarshaled with the
// encoding/json package.  A nil Value marshals to null.
type Document struct {
	Value Value
}

func (d Document) MarshalJSON() ([]byte, error) {
	return marshalValue(d.Value)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	v, err := Decode(jsontext.NewSourceBytes(data), AnyKind)
	if err != nil {
		return err
	}
	d.Value = v
	return nil
}

func marshalValue(v Value) ([]byte, error) {
	var buf bytes.Buffer
	w := jsoniter.NewWriter(&buf)
	if err := Encode(v, w); err != nil {
		return nil, err
	}
	if err := w.Flush(); err != nil {
		return nil, errors.Wrap(err, "jsvalue: marshal")
	}
	return buf.Bytes(), nil
}

// unmarshalValue returns nil without error if data is the null literal.
func unmarshalValue(data []byte, want Kind) (Value, error) {
	v, err := Decode(jsontext.NewSourceBytes(data), AnyKind)
	if err != nil {
		return nil, err
	}
	if v.Kind() == NullKind {
		return nil, nil
	}
	if !want.Accepts(v.Kind()) {
		return nil, errors.WithStack(&DecodeError{
			Err:      ErrTypeMismatch,
			Expected: want.String(),
			Found:    v.Kind().String(),
		})
	}
	return v, nil
}
