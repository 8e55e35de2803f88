// Package jsoniter provides a token.Sink that writes compact JSON text with
// a github.com/json-iterator/go Stream.
package jsoniter

import (
	"io"

	"github.com/arnodel/jsvalue/token"
	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

const defaultBufSize = 512

// Writer writes compact JSON text.  Successive top-level values are
// separated by a newline.  Output is buffered until Flush is called.
type Writer struct {
	stream *jsoniter.Stream

	// Number of items written so far at each open level
	counts    []int
	afterName bool
	roots     int
}

var _ token.Sink = &Writer{}

func NewWriter(w io.Writer) *Writer {
	return &Writer{
		stream: jsoniter.NewStream(jsoniter.ConfigCompatibleWithStandardLibrary, w, defaultBufSize),
	}
}

// Flush sends buffered output to the underlying writer.
func (w *Writer) Flush() error {
	return w.stream.Flush()
}

// Buffer returns the output that has not been flushed yet.
func (w *Writer) Buffer() []byte {
	return w.stream.Buffer()
}

func (w *Writer) WriteNumber(d decimal.Decimal) error {
	w.beforeValue()
	w.stream.WriteRaw(token.FormatDecimal(d))
	return w.afterValue()
}

func (w *Writer) WriteString(s string) error {
	w.beforeValue()
	w.stream.WriteString(s)
	return w.afterValue()
}

func (w *Writer) WriteBoolean(b bool) error {
	w.beforeValue()
	w.stream.WriteBool(b)
	return w.afterValue()
}

func (w *Writer) WriteNull() error {
	w.beforeValue()
	w.stream.WriteNil()
	return w.afterValue()
}

func (w *Writer) WriteStartArray() error {
	w.beforeValue()
	w.stream.WriteArrayStart()
	w.counts = append(w.counts, 0)
	return w.stream.Error
}

func (w *Writer) WriteEndArray() error {
	if err := w.close(); err != nil {
		return err
	}
	w.stream.WriteArrayEnd()
	return w.afterValue()
}

func (w *Writer) WriteStartObject() error {
	w.beforeValue()
	w.stream.WriteObjectStart()
	w.counts = append(w.counts, 0)
	return w.stream.Error
}

func (w *Writer) WriteEndObject() error {
	if err := w.close(); err != nil {
		return err
	}
	w.stream.WriteObjectEnd()
	return w.afterValue()
}

func (w *Writer) WriteFieldName(name string) error {
	if len(w.counts) == 0 || w.afterName {
		return errors.New("jsoniter: field name outside an object")
	}
	w.beforeValue()
	w.stream.WriteObjectField(name)
	w.afterName = true
	return w.stream.Error
}

// beforeValue writes the separator due before the next item.
func (w *Writer) beforeValue() {
	if w.afterName {
		w.afterName = false
		return
	}
	n := len(w.counts)
	if n == 0 {
		if w.roots > 0 {
			w.stream.WriteRaw("\n")
		}
		return
	}
	if w.counts[n-1] > 0 {
		w.stream.WriteMore()
	}
	w.counts[n-1]++
}

func (w *Writer) afterValue() error {
	if len(w.counts) == 0 {
		w.roots++
	}
	return w.stream.Error
}

func (w *Writer) close() error {
	if len(w.counts) == 0 {
		return errors.New("jsoniter: no open array or object to close")
	}
	w.counts = w.counts[:len(w.counts)-1]
	return nil
}
