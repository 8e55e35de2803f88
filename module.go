package jsvalue

import (
	"reflect"

	"github.com/arnodel/jsvalue/token"
)

// A Deserializer builds a Value from a token source.  It is what a host
// serialization framework calls to decode a value-model type.
type Deserializer interface {
	Deserialize(src token.Source) (Value, error)

	// NullValue is the value to use when there is no token to decode.
	NullValue() Value
}

// A Serializer writes a Value to a sink.
type Serializer interface {
	Serialize(v Value, sink token.Sink) error
}

// A Registrar is implemented by a host serialization framework that
// dispatches on Go types.
type Registrar interface {
	AddDeserializer(t reflect.Type, d Deserializer)
	AddSerializer(t reflect.Type, s Serializer)
}

// Register installs a Deserializer and a Serializer in r for Value and for
// each of its concrete types.
func Register(r Registrar) {
	for _, vt := range valueTypes {
		r.AddDeserializer(vt.typ, kindDeserializer{kind: vt.kind})
		r.AddSerializer(vt.typ, valueSerializer{})
	}
}

// KindForType returns the kind a Deserializer for t requests.  The Value
// interface type maps to AnyKind.  It reports false if t is not a value-model
// type.
func KindForType(t reflect.Type) (Kind, bool) {
	for _, vt := range valueTypes {
		if vt.typ == t {
			return vt.kind, true
		}
	}
	return AnyKind, false
}

// DeserializerFor returns the Deserializer Register installs for t.  The
// values it returns have dynamic type t, or any concrete type if t is Value.
func DeserializerFor(t reflect.Type) (Deserializer, bool) {
	kind, ok := KindForType(t)
	if !ok {
		return nil, false
	}
	return kindDeserializer{kind: kind}, true
}

// SerializerFor returns the Serializer Register installs for t.
func SerializerFor(t reflect.Type) (Serializer, bool) {
	if _, ok := KindForType(t); !ok {
		return nil, false
	}
	return valueSerializer{}, true
}

var valueTypes = []struct {
	typ  reflect.Type
	kind Kind
}{
	{reflect.TypeFor[Value](), AnyKind},
	{reflect.TypeFor[Null](), NullKind},
	// Decode never produces Undefined so its Deserializer always fails with
	// ErrTypeMismatch.
	{reflect.TypeFor[Undefined](), UndefinedKind},
	{reflect.TypeFor[Boolean](), BooleanKind},
	{reflect.TypeFor[Number](), NumberKind},
	{reflect.TypeFor[String](), StringKind},
	{reflect.TypeFor[Array](), ArrayKind},
	{reflect.TypeFor[Object](), ObjectKind},
}

type kindDeserializer struct {
	kind Kind
}

func (d kindDeserializer) Deserialize(src token.Source) (Value, error) {
	return Decode(src, d.kind)
}

func (d kindDeserializer) NullValue() Value {
	return NullValue()
}

type valueSerializer struct{}

func (valueSerializer) Serialize(v Value, sink token.Sink) error {
	return Encode(v, sink)
}
