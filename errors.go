package jsvalue

import (
	"fmt"
	"strings"

	"github.com/arnodel/jsvalue/token"
	"github.com/cockroachdb/errors"
)

// The errors a Decode call can fail with.  A returned error matches one of
// these with errors.Is, unless the token source itself failed.
var (
	// A close-array, close-object or field-name token did not match the
	// innermost open structure.
	ErrStructuralMismatch = errors.New("structural mismatch")

	// A value appeared inside an object where a field name was expected.
	ErrDanglingValue = errors.New("dangling value")

	// A value followed a complete root value outside any array or object.
	ErrMultipleRootValues = errors.New("multiple root values")

	// The source produced a token kind that has no JSON value, or ran out of
	// tokens before the root value was complete.
	ErrUnsupportedToken = errors.New("unsupported token")

	// The decoded root value is not of the requested kind.
	ErrTypeMismatch = errors.New("type mismatch")
)

// DecodeError describes where and why a Decode call failed.
type DecodeError struct {
	Err      error      // one of the Err* sentinels above
	Token    token.Kind // kind of the token being processed
	Location string     // position reported by the source, if any
	Depth    int        // context stack depth when the error occurred
	Expected string
	Found    string
	Msg      string
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	if e.Location != "" {
		fmt.Fprintf(&b, " at %s", e.Location)
	}
	fmt.Fprintf(&b, " (token %s, depth %d)", e.Token, e.Depth)
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Expected != "" || e.Found != "" {
		fmt.Fprintf(&b, ": expected %s, found %s", e.Expected, e.Found)
	}
	return b.String()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
