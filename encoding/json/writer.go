package json

import (
	"io"

	"github.com/arnodel/jsvalue/internal/format"
	"github.com/arnodel/jsvalue/token"
	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

// A Writer outputs JSON text using the given Printer instance for
// formatting.  Each top-level value is followed by a new line.
type Writer struct {
	format.Printer
	*format.Colorizer

	// Number of items written so far in each open array or object
	counts    []int
	afterName bool
}

var _ token.Sink = &Writer{}

// NewWriter returns a Writer sending output to w.  A negative indent puts
// each top-level value on a single line.  The colorizer may be nil.
func NewWriter(w io.Writer, indent int, colorizer *format.Colorizer) *Writer {
	return &Writer{
		Printer:   &format.DefaultPrinter{Writer: w, IndentSize: indent},
		Colorizer: colorizer,
	}
}

func (w *Writer) WriteNumber(d decimal.Decimal) error {
	return w.writeScalar(token.DecimalScalar(d))
}

func (w *Writer) WriteString(s string) error {
	return w.writeScalar(token.StringScalar(s))
}

func (w *Writer) WriteBoolean(b bool) error {
	return w.writeScalar(token.BoolScalar(b))
}

func (w *Writer) WriteNull() error {
	return w.writeScalar(token.NullScalar)
}

func (w *Writer) WriteStartArray() (err error) {
	defer format.CatchPrinterError(&err)
	w.beforeItem()
	w.PrintBytes(openArrayBytes)
	w.counts = append(w.counts, 0)
	return nil
}

func (w *Writer) WriteEndArray() error {
	return w.close(closeArrayBytes)
}

func (w *Writer) WriteStartObject() (err error) {
	defer format.CatchPrinterError(&err)
	w.beforeItem()
	w.PrintBytes(openObjectBytes)
	w.counts = append(w.counts, 0)
	return nil
}

func (w *Writer) WriteEndObject() error {
	return w.close(closeObjectBytes)
}

func (w *Writer) WriteFieldName(name string) (err error) {
	defer format.CatchPrinterError(&err)
	if len(w.counts) == 0 || w.afterName {
		return errors.New("json: field name outside an object")
	}
	w.beforeItem()
	w.Colorizer.PrintScalar(w.Printer, token.KeyScalar(name))
	w.PrintBytes(keyValueSeparatorBytes)
	w.afterName = true
	return nil
}

func (w *Writer) writeScalar(s *token.Scalar) (err error) {
	defer format.CatchPrinterError(&err)
	w.beforeItem()
	w.Colorizer.PrintScalar(w.Printer, s)
	w.afterValue()
	return nil
}

func (w *Writer) close(closeBytes []byte) (err error) {
	defer format.CatchPrinterError(&err)
	n := len(w.counts)
	if n == 0 || w.afterName {
		return errors.New("json: no open array or object to close")
	}
	if w.counts[n-1] > 0 {
		w.Dedent()
	}
	w.counts = w.counts[:n-1]
	w.PrintBytes(closeBytes)
	w.afterValue()
	return nil
}

// beforeItem prints what is due before an array item or an object key.
func (w *Writer) beforeItem() {
	if w.afterName {
		w.afterName = false
		return
	}
	n := len(w.counts)
	if n == 0 {
		return
	}
	if w.counts[n-1] > 0 {
		w.PrintBytes(itemSeparatorBytes)
		w.NewLine()
	} else {
		w.Indent()
	}
	w.counts[n-1]++
}

func (w *Writer) afterValue() {
	if len(w.counts) == 0 {
		w.Printer.Reset()
	}
}

var (
	openArrayBytes         = []byte{'['}
	closeArrayBytes        = []byte{']'}
	openObjectBytes        = []byte{'{'}
	closeObjectBytes       = []byte{'}'}
	itemSeparatorBytes     = []byte{','}
	keyValueSeparatorBytes = []byte{':', ' '}
)
