package jpv

import (
	"io"
	"strconv"

	"github.com/arnodel/jsvalue/internal/format"
	"github.com/arnodel/jsvalue/token"
	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

// A Writer outputs values in the JPV format, one line per leaf value.  Empty
// arrays and objects are leaf values.
type Writer struct {
	format.Printer
	*format.Colorizer

	path        []pathItem
	lineStarted bool
}

// A pathItem is an array or object being written.
type pathItem struct {
	key      *token.Scalar // key of the current item, nil between object items
	count    int
	isObject bool
}

var _ token.Sink = &Writer{}

// NewWriter returns a Writer sending output to w.  The colorizer may be nil.
func NewWriter(w io.Writer, colorizer *format.Colorizer) *Writer {
	return &Writer{
		Printer:   &format.DefaultPrinter{Writer: w},
		Colorizer: colorizer,
	}
}

func (w *Writer) WriteNumber(d decimal.Decimal) error {
	return w.writeLeaf(token.DecimalScalar(d))
}

func (w *Writer) WriteString(s string) error {
	return w.writeLeaf(token.StringScalar(s))
}

func (w *Writer) WriteBoolean(b bool) error {
	return w.writeLeaf(token.BoolScalar(b))
}

func (w *Writer) WriteNull() error {
	return w.writeLeaf(token.NullScalar)
}

func (w *Writer) WriteStartArray() error {
	return w.open(false)
}

func (w *Writer) WriteEndArray() error {
	return w.close(false, emptyArray)
}

func (w *Writer) WriteStartObject() error {
	return w.open(true)
}

func (w *Writer) WriteEndObject() error {
	return w.close(true, emptyObject)
}

func (w *Writer) WriteFieldName(name string) error {
	n := len(w.path)
	if n == 0 || !w.path[n-1].isObject || w.path[n-1].key != nil {
		return errors.New("jpv: field name outside an object")
	}
	w.path[n-1].key = token.KeyScalar(name)
	return nil
}

func (w *Writer) open(isObject bool) error {
	if err := w.beforeItem(); err != nil {
		return err
	}
	w.path = append(w.path, pathItem{isObject: isObject})
	return nil
}

func (w *Writer) close(isObject bool, empty []byte) (err error) {
	defer format.CatchPrinterError(&err)
	n := len(w.path)
	if n == 0 || w.path[n-1].isObject != isObject || w.path[n-1].key != nil {
		return errors.New("jpv: no matching array or object to close")
	}
	count := w.path[n-1].count
	w.path = w.path[:n-1]
	if count == 0 {
		w.printPath()
		w.PrintBytes(empty)
	}
	w.afterValue()
	return nil
}

func (w *Writer) writeLeaf(value *token.Scalar) (err error) {
	defer format.CatchPrinterError(&err)
	if err := w.beforeItem(); err != nil {
		return err
	}
	w.printPath()
	w.Colorizer.PrintScalar(w.Printer, value)
	w.afterValue()
	return nil
}

// beforeItem sets the key of the item about to be written in the innermost
// array.
func (w *Writer) beforeItem() error {
	n := len(w.path)
	if n == 0 {
		return nil
	}
	top := &w.path[n-1]
	if !top.isObject {
		top.key = token.NewKey(token.Number, []byte(strconv.Itoa(top.count)))
	} else if top.key == nil {
		return errors.New("jpv: object value without a field name")
	}
	return nil
}

func (w *Writer) afterValue() {
	n := len(w.path)
	if n == 0 {
		w.lineStarted = false
		w.Printer.Reset()
		return
	}
	w.path[n-1].count++
	w.path[n-1].key = nil
}

// printPath starts a new line with the path of the current item.
func (w *Writer) printPath() {
	if w.lineStarted {
		w.NewLine()
	}
	w.lineStarted = true
	w.PrintBytes(pathRootBytes)
	for _, item := range w.path {
		w.PrintBytes(openIndexBytes)
		w.Colorizer.PrintScalar(w.Printer, item.key)
		w.PrintBytes(closeIndexBytes)
	}
	w.PrintBytes(pathValueSeparatorBytes)
}

var (
	pathRootBytes           = []byte{'$'}
	openIndexBytes          = []byte{'['}
	closeIndexBytes         = []byte{']'}
	pathValueSeparatorBytes = []byte(" = ")

	emptyArray  = []byte("[]")
	emptyObject = []byte("{}")
)
