package jsvalue

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Kind is the tag of a Value.  AnyKind is not the tag of any value: it is
// used to request "any variant" from Decode.
type Kind uint8

const (
	AnyKind Kind = iota
	NullKind
	UndefinedKind
	BooleanKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

var kindNames = [...]string{
	AnyKind:       "any",
	NullKind:      "null",
	UndefinedKind: "undefined",
	BooleanKind:   "boolean",
	NumberKind:    "number",
	StringKind:    "string",
	ArrayKind:     "array",
	ObjectKind:    "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Accepts reports whether a value tagged with kind satisfies a request for k.
func (k Kind) Accepts(kind Kind) bool {
	return k == AnyKind || k == kind
}

// ParseKind is the inverse of Kind.String.  It is case insensitive.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(k), nil
		}
	}
	return AnyKind, errors.Newf("unknown kind %q", s)
}
