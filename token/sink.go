package token

import "github.com/shopspring/decimal"

// A Sink receives the events that describe a JSON value, in document order.
// An object field is written as WriteFieldName followed by the events of its
// value.
type Sink interface {
	WriteNumber(decimal.Decimal) error
	WriteString(string) error
	WriteBoolean(bool) error
	WriteNull() error
	WriteStartArray() error
	WriteEndArray() error
	WriteStartObject() error
	WriteEndObject() error
	WriteFieldName(string) error
}

// StreamSink is a Sink that puts the corresponding tokens into a
// WriteStream.  It performs no validation of the event sequence.
type StreamSink struct {
	out WriteStream
}

var _ Sink = &StreamSink{}

func NewStreamSink(out WriteStream) *StreamSink {
	return &StreamSink{out: out}
}

func (s *StreamSink) WriteNumber(d decimal.Decimal) error {
	s.out.Put(DecimalScalar(d))
	return nil
}

func (s *StreamSink) WriteString(str string) error {
	s.out.Put(StringScalar(str))
	return nil
}

func (s *StreamSink) WriteBoolean(b bool) error {
	s.out.Put(BoolScalar(b))
	return nil
}

func (s *StreamSink) WriteNull() error {
	s.out.Put(NullScalar)
	return nil
}

func (s *StreamSink) WriteStartArray() error {
	s.out.Put(&StartArray{})
	return nil
}

func (s *StreamSink) WriteEndArray() error {
	s.out.Put(&EndArray{})
	return nil
}

func (s *StreamSink) WriteStartObject() error {
	s.out.Put(&StartObject{})
	return nil
}

func (s *StreamSink) WriteEndObject() error {
	s.out.Put(&EndObject{})
	return nil
}

func (s *StreamSink) WriteFieldName(name string) error {
	s.out.Put(KeyScalar(name))
	return nil
}
