package jsvalue

import "fmt"

type contextKind uint8

const (
	arrayContext     contextKind = iota // collecting array elements
	objectContext                       // collecting fields, no pending name
	objectKeyContext                    // collecting fields, name pending
)

func (k contextKind) String() string {
	switch k {
	case arrayContext:
		return "array"
	case objectContext:
		return "object"
	case objectKeyContext:
		return "object field value"
	default:
		return fmt.Sprintf("contextKind(%d)", uint8(k))
	}
}

// deserializerContext is the state of one open array or object during a
// decode.  Only the slice matching kind is used.
type deserializerContext struct {
	kind        contextKind
	elems       []Value
	fields      []Field
	pendingName string
}

// addValue returns the context that results from v arriving in c.  An
// objectKeyContext turns back into an objectContext.  It fails with
// ErrDanglingValue if c is an objectContext.
func (c deserializerContext) addValue(v Value) (deserializerContext, error) {
	switch c.kind {
	case arrayContext:
		c.elems = append(c.elems, v)
		return c, nil
	case objectKeyContext:
		c.fields = append(c.fields, Field{Name: c.pendingName, Value: v})
		c.kind = objectContext
		c.pendingName = ""
		return c, nil
	case objectContext:
		return c, ErrDanglingValue
	default:
		panic(fmt.Sprintf("invalid context kind %s", c.kind))
	}
}

// withFieldName attaches a pending field name to an objectContext.
func (c deserializerContext) withFieldName(name string) deserializerContext {
	c.kind = objectKeyContext
	c.pendingName = name
	return c
}

// contextStack is owned by a single decode call.
type contextStack []deserializerContext

func (s *contextStack) push(c deserializerContext) {
	*s = append(*s, c)
}

// pop removes and returns the top context; ok is false if the stack is
// empty.
func (s *contextStack) pop() (c deserializerContext, ok bool) {
	n := len(*s)
	if n == 0 {
		return c, false
	}
	c = (*s)[n-1]
	(*s)[n-1] = deserializerContext{}
	*s = (*s)[:n-1]
	return c, true
}

func (s contextStack) depth() int {
	return len(s)
}
