package token

import "github.com/cockroachdb/errors"

// Copy advances src until it is exhausted and writes an event to dst for
// each token.  It does not check that the tokens are well nested.  Embedded
// tokens cannot be copied and make Copy fail.
func Copy(dst Sink, src Source) error {
	for {
		kind, err := src.Advance()
		if err != nil {
			return err
		}
		if kind == KindNotAvailable {
			return nil
		}
		if err := copyCurrent(dst, src, kind); err != nil {
			return err
		}
	}
}

func copyCurrent(dst Sink, src Source, kind Kind) error {
	switch kind {
	case KindNumber:
		d, err := src.Decimal()
		if err != nil {
			return err
		}
		return dst.WriteNumber(d)
	case KindString:
		s, err := src.Text()
		if err != nil {
			return err
		}
		return dst.WriteString(s)
	case KindFieldName:
		name, err := src.FieldName()
		if err != nil {
			return err
		}
		return dst.WriteFieldName(name)
	case KindTrue:
		return dst.WriteBoolean(true)
	case KindFalse:
		return dst.WriteBoolean(false)
	case KindNull:
		return dst.WriteNull()
	case KindStartArray:
		return dst.WriteStartArray()
	case KindEndArray:
		return dst.WriteEndArray()
	case KindStartObject:
		return dst.WriteStartObject()
	case KindEndObject:
		return dst.WriteEndObject()
	default:
		if loc := Location(src); loc != "" {
			return errors.Newf("%s: cannot copy %s token", loc, kind)
		}
		return errors.Newf("cannot copy %s token", kind)
	}
}
