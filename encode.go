package jsvalue

import (
	"github.com/arnodel/jsvalue/token"
	"github.com/cockroachdb/errors"
)

// Encode writes the events describing v to sink, in document order.  Null
// and Undefined are both written as null, and so is a nil Value.  Errors
// returned by sink are returned unchanged.
//
// Like Decode, Encode keeps open arrays and objects on an explicit stack so
// the depth of v is not limited by the goroutine stack.
func Encode(v Value, sink token.Sink) error {
	var stack []encodeFrame
	for {
		frame, err := writeValue(v, sink)
		if err != nil {
			return err
		}
		if frame != nil {
			stack = append(stack, *frame)
		}
		// Find the next value to write, closing finished structures.
		v = nil
		for v == nil {
			n := len(stack)
			if n == 0 {
				return nil
			}
			top := &stack[n-1]
			if top.isObject {
				if top.next < top.obj.Len() {
					f := top.obj.At(top.next)
					top.next++
					if err := sink.WriteFieldName(f.Name); err != nil {
						return err
					}
					v = f.Value
					continue
				}
				err = sink.WriteEndObject()
			} else {
				if top.next < top.arr.Len() {
					v = top.arr.At(top.next)
					top.next++
					continue
				}
				err = sink.WriteEndArray()
			}
			if err != nil {
				return err
			}
			stack = stack[:n-1]
		}
	}
}

type encodeFrame struct {
	isObject bool
	arr      Array
	obj      Object
	next     int
}

// writeValue writes a scalar completely, or the start of a structure, in
// which case it returns the frame for iterating over its contents.
func writeValue(v Value, sink token.Sink) (*encodeFrame, error) {
	switch x := v.(type) {
	case nil, Null, Undefined:
		return nil, sink.WriteNull()
	case Boolean:
		return nil, sink.WriteBoolean(bool(x))
	case Number:
		return nil, sink.WriteNumber(x.d)
	case String:
		return nil, sink.WriteString(string(x))
	case Array:
		if err := sink.WriteStartArray(); err != nil {
			return nil, err
		}
		return &encodeFrame{arr: x}, nil
	case Object:
		if err := sink.WriteStartObject(); err != nil {
			return nil, err
		}
		return &encodeFrame{isObject: true, obj: x}, nil
	default:
		return nil, errors.AssertionFailedf("jsvalue: cannot encode %T", v)
	}
}
