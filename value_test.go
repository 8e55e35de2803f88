package jsvalue_test

import (
	"testing"

	"github.com/arnodel/jsvalue"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name  string
		a, b  jsvalue.Value
		equal bool
	}{
		{"null", jsvalue.Null{}, jsvalue.Null{}, true},
		{"null is not undefined", jsvalue.Null{}, jsvalue.Undefined{}, false},
		{"undefined", jsvalue.Undefined{}, jsvalue.Undefined{}, true},
		{"booleans", jsvalue.Boolean(true), jsvalue.Boolean(false), false},
		{"numbers by value", num("1.50"), num("1.5"), true},
		{"exponent", num("1e2"), jsvalue.IntNumber(100), true},
		{"different numbers", num("1.5"), num("1.51"), false},
		{"number is not string", jsvalue.IntNumber(1), jsvalue.String("1"), false},
		{"strings", jsvalue.String("a"), jsvalue.String("a"), true},
		{"empty arrays", jsvalue.NewArray(), jsvalue.Array{}, true},
		{
			name:  "array lengths",
			a:     jsvalue.NewArray(jsvalue.Null{}),
			b:     jsvalue.NewArray(jsvalue.Null{}, jsvalue.Null{}),
			equal: false,
		},
		{
			name:  "array elements",
			a:     jsvalue.NewArray(jsvalue.Null{}),
			b:     jsvalue.NewArray(jsvalue.Undefined{}),
			equal: false,
		},
		{
			name:  "field order matters",
			a:     jsvalue.NewObject(field("a", jsvalue.Null{}), field("b", jsvalue.Null{})),
			b:     jsvalue.NewObject(field("b", jsvalue.Null{}), field("a", jsvalue.Null{})),
			equal: false,
		},
		{
			name:  "duplicates matter",
			a:     jsvalue.NewObject(field("a", jsvalue.Null{})),
			b:     jsvalue.NewObject(field("a", jsvalue.Null{}), field("a", jsvalue.Null{})),
			equal: false,
		},
		{
			name:  "nested",
			a:     jsvalue.NewObject(field("a", jsvalue.NewArray(num("2.0")))),
			b:     jsvalue.NewObject(field("a", jsvalue.NewArray(jsvalue.IntNumber(2)))),
			equal: true,
		},
		{"nil and nil", nil, nil, true},
		{"nil and null", nil, jsvalue.Null{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, jsvalue.Equal(tt.a, tt.b))
			assert.Equal(t, tt.equal, jsvalue.Equal(tt.b, tt.a))
		})
	}
}

func TestConstructorsCopy(t *testing.T) {
	elems := []jsvalue.Value{jsvalue.IntNumber(1), nil}
	arr := jsvalue.NewArray(elems...)
	elems[0] = jsvalue.String("changed")
	assert.True(t, jsvalue.Equal(jsvalue.IntNumber(1), arr.At(0)))
	assert.Equal(t, jsvalue.NullKind, arr.At(1).Kind())

	values := arr.Values()
	values[0] = jsvalue.String("changed")
	assert.True(t, jsvalue.Equal(jsvalue.IntNumber(1), arr.At(0)))

	fields := []jsvalue.Field{field("a", nil)}
	obj := jsvalue.NewObject(fields...)
	fields[0].Name = "b"
	assert.Equal(t, "a", obj.At(0).Name)
	assert.Equal(t, jsvalue.NullKind, obj.At(0).Value.Kind())

	got := obj.Fields()
	got[0].Name = "c"
	assert.Equal(t, "a", obj.At(0).Name)
}

func TestIteration(t *testing.T) {
	arr := jsvalue.NewArray(jsvalue.IntNumber(0), jsvalue.IntNumber(1), jsvalue.IntNumber(2))
	var idx []int
	for i, v := range arr.All() {
		assert.True(t, jsvalue.Equal(jsvalue.IntNumber(int64(i)), v))
		idx = append(idx, i)
		if i == 1 {
			break
		}
	}
	assert.Equal(t, []int{0, 1}, idx)

	obj := jsvalue.NewObject(field("x", jsvalue.Null{}), field("y", jsvalue.Null{}), field("x", jsvalue.Boolean(true)))
	var names []string
	for name := range obj.All() {
		names = append(names, name)
	}
	assert.Equal(t, []string{"x", "y", "x"}, names)

	_, ok := obj.Get("z")
	assert.False(t, ok)
}

func TestNumber(t *testing.T) {
	n, err := jsvalue.ParseNumber("-1.250e3")
	require.NoError(t, err)
	assert.Equal(t, "-1250", n.String())
	assert.True(t, n.Decimal().Equal(decimal.NewFromInt(-1250)))

	_, err = jsvalue.ParseNumber("1.2.3")
	assert.Error(t, err)

	assert.True(t, jsvalue.Equal(jsvalue.NewNumber(decimal.New(15, -1)), num("1.5")))
}

func TestKind(t *testing.T) {
	kinds := map[jsvalue.Kind]jsvalue.Value{
		jsvalue.NullKind:      jsvalue.Null{},
		jsvalue.UndefinedKind: jsvalue.Undefined{},
		jsvalue.BooleanKind:   jsvalue.Boolean(true),
		jsvalue.NumberKind:    jsvalue.IntNumber(0),
		jsvalue.StringKind:    jsvalue.String(""),
		jsvalue.ArrayKind:     jsvalue.Array{},
		jsvalue.ObjectKind:    jsvalue.Object{},
	}
	for kind, v := range kinds {
		assert.Equal(t, kind, v.Kind())
		assert.True(t, kind.Accepts(v.Kind()))
		assert.True(t, jsvalue.AnyKind.Accepts(v.Kind()))

		parsed, err := jsvalue.ParseKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}
	assert.False(t, jsvalue.ArrayKind.Accepts(jsvalue.ObjectKind))

	k, err := jsvalue.ParseKind("OBJECT")
	require.NoError(t, err)
	assert.Equal(t, jsvalue.ObjectKind, k)

	_, err = jsvalue.ParseKind("list")
	assert.Error(t, err)
}
