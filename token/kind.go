package token

// Kind classifies the token a Source is positioned on.
type Kind uint8

const (
	KindNotAvailable Kind = iota // no token: not started or exhausted
	KindNumber
	KindString
	KindTrue
	KindFalse
	KindNull
	KindStartArray
	KindEndArray
	KindStartObject
	KindEndObject
	KindFieldName
	KindEmbedded // a token with no JSON value, e.g. Elision
)

var kindNames = [...]string{
	KindNotAvailable: "NotAvailable",
	KindNumber:       "Number",
	KindString:       "String",
	KindTrue:         "True",
	KindFalse:        "False",
	KindNull:         "Null",
	KindStartArray:   "StartArray",
	KindEndArray:     "EndArray",
	KindStartObject:  "StartObject",
	KindEndObject:    "EndObject",
	KindFieldName:    "FieldName",
	KindEmbedded:     "Embedded",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsScalar is true for the kinds that carry a complete JSON value.
func (k Kind) IsScalar() bool {
	return k >= KindNumber && k <= KindNull
}

// KindOf returns the Kind of tok.  A nil token is KindNotAvailable.
func KindOf(tok Token) Kind {
	switch t := tok.(type) {
	case nil:
		return KindNotAvailable
	case *Scalar:
		return t.Kind()
	case *StartArray:
		return KindStartArray
	case *EndArray:
		return KindEndArray
	case *StartObject:
		return KindStartObject
	case *EndObject:
		return KindEndObject
	default:
		return KindEmbedded
	}
}
