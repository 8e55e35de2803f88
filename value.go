package jsvalue

import (
	"iter"
	"slices"

	"github.com/arnodel/jsvalue/token"
	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

// A Value is an immutable JSON value.  The concrete types are Null,
// Undefined, Boolean, Number, String, Array and Object; no other type
// implements Value.
type Value interface {
	Kind() Kind

	// Equal reports whether the value is structurally equal to v.
	Equal(v Value) bool

	isValue()
}

// Null is the JSON null literal.
type Null struct{}

// Undefined means "no value".  No JSON text decodes to Undefined, but it is
// encoded as null.
type Undefined struct{}

type Boolean bool

// Number is an arbitrary precision decimal number.
type Number struct {
	d decimal.Decimal
}

type String string

// Array is an ordered sequence of values.  The zero Array is empty.
type Array struct {
	elems []Value
}

// A Field is a member of an Object.
type Field struct {
	Name  string
	Value Value
}

// Object is an ordered sequence of fields.  Field names need not be unique:
// duplicates are kept, in order.  The zero Object is empty.
type Object struct {
	fields []Field
}

var (
	_ Value = Null{}
	_ Value = Undefined{}
	_ Value = Boolean(false)
	_ Value = Number{}
	_ Value = String("")
	_ Value = Array{}
	_ Value = Object{}
)

func (Null) Kind() Kind      { return NullKind }
func (Undefined) Kind() Kind { return UndefinedKind }
func (Boolean) Kind() Kind   { return BooleanKind }
func (Number) Kind() Kind    { return NumberKind }
func (String) Kind() Kind    { return StringKind }
func (Array) Kind() Kind     { return ArrayKind }
func (Object) Kind() Kind    { return ObjectKind }

func (Null) isValue()      {}
func (Undefined) isValue() {}
func (Boolean) isValue()   {}
func (Number) isValue()    {}
func (String) isValue()    {}
func (Array) isValue()     {}
func (Object) isValue()    {}

func NewNumber(d decimal.Decimal) Number {
	return Number{d: d}
}

func IntNumber(n int64) Number {
	return Number{d: decimal.NewFromInt(n)}
}

// ParseNumber parses a JSON number literal (exponents are accepted) without
// loss of precision.
func ParseNumber(s string) (Number, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Number{}, errors.Wrapf(err, "invalid number %q", s)
	}
	return Number{d: d}, nil
}

// Decimal returns the exact value of n.
func (n Number) Decimal() decimal.Decimal {
	return n.d
}

func (n Number) String() string {
	return token.FormatDecimal(n.d)
}

// NewArray returns an Array holding a copy of elems.  A nil element is
// stored as Null.
func NewArray(elems ...Value) Array {
	return Array{elems: normalizeValues(slices.Clone(elems))}
}

// newArrayOwned takes ownership of elems without copying them.
func newArrayOwned(elems []Value) Array {
	return Array{elems: elems}
}

func (a Array) Len() int {
	return len(a.elems)
}

// At returns the i-th element.  It panics if i is out of range.
func (a Array) At(i int) Value {
	return a.elems[i]
}

// All iterates over the elements in order.
func (a Array) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i, v := range a.elems {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Values returns a copy of the elements.
func (a Array) Values() []Value {
	return slices.Clone(a.elems)
}

// NewObject returns an Object holding a copy of fields.  A nil field value
// is stored as Null.
func NewObject(fields ...Field) Object {
	fields = slices.Clone(fields)
	for i := range fields {
		if fields[i].Value == nil {
			fields[i].Value = Null{}
		}
	}
	return Object{fields: fields}
}

// newObjectOwned takes ownership of fields without copying them.
func newObjectOwned(fields []Field) Object {
	return Object{fields: fields}
}

func (o Object) Len() int {
	return len(o.fields)
}

// At returns the i-th field.  It panics if i is out of range.
func (o Object) At(i int) Field {
	return o.fields[i]
}

// All iterates over the (name, value) pairs in order, duplicates included.
func (o Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, f := range o.fields {
			if !yield(f.Name, f.Value) {
				return
			}
		}
	}
}

// Fields returns a copy of the fields.
func (o Object) Fields() []Field {
	return slices.Clone(o.fields)
}

// Get returns the value of the first field called name.
func (o Object) Get(name string) (Value, bool) {
	for _, f := range o.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

func normalizeValues(values []Value) []Value {
	for i, v := range values {
		if v == nil {
			values[i] = Null{}
		}
	}
	return values
}
