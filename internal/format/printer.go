package format

import (
	"bytes"
	"io"

	"github.com/cockroachdb/errors"
)

// A Printer lays out output in lines with an indentation level.
//
// Its methods do not return errors: a failure to write output stops the
// whole encoding, so implementations panic with a *PrinterError instead and
// the encoding entry point recovers it with CatchPrinterError:
//
//	func encode(p Printer) (err error) {
//	    defer CatchPrinterError(&err)
//	    ...
//	}
type Printer interface {
	// Indent increases the indentation level and starts a new line.
	Indent()

	// Dedent decreases the indentation level and starts a new line.
	Dedent()

	// NewLine starts a new line at the current indentation level.
	NewLine()

	// PrintBytes writes b on the current line.
	PrintBytes(b []byte)

	// Reset terminates the current line and goes back to level 0.  It
	// separates top-level values.
	Reset()
}

// CatchPrinterError recovers a *PrinterError panic into *err.  Other panics
// are propagated.
func CatchPrinterError(err *error) {
	r := recover()
	if r == nil {
		return
	}
	perr, ok := r.(*PrinterError)
	if !ok {
		panic(r)
	}
	*err = perr
}

// A PrinterError is the write error that made a Printer panic.
type PrinterError struct {
	Err error
}

func (e *PrinterError) Error() string {
	return "printer error: " + e.Err.Error()
}

func (e *PrinterError) Unwrap() error {
	return e.Err
}

// DefaultPrinter writes to an io.Writer, indenting each level by IndentSize
// spaces.  A zero IndentSize keeps line breaks but does not indent, and a
// negative one puts everything on a single line (only Reset writes '\n').
//
// If Flusher is set, it is flushed after each Reset.
type DefaultPrinter struct {
	io.Writer
	IndentSize int
	Flusher    Flusher

	level int

	// breaks is "\n" followed by enough spaces for the deepest level seen.
	breaks []byte
}

// A Flusher sends buffered output, e.g. a *bufio.Writer.
type Flusher interface {
	Flush() error
}

var _ Printer = &DefaultPrinter{}

func (p *DefaultPrinter) NewLine() {
	if p.IndentSize < 0 {
		return
	}
	n := 1 + p.IndentSize*p.level
	if n > len(p.breaks) {
		p.breaks = append([]byte{'\n'}, bytes.Repeat([]byte{' '}, n-1)...)
	}
	p.PrintBytes(p.breaks[:n])
}

func (p *DefaultPrinter) Indent() {
	p.level++
	p.NewLine()
}

func (p *DefaultPrinter) Dedent() {
	p.level--
	p.NewLine()
}

func (p *DefaultPrinter) PrintBytes(b []byte) {
	if _, err := p.Write(b); err != nil {
		panic(&PrinterError{Err: err})
	}
}

func (p *DefaultPrinter) Reset() {
	p.level = 0
	p.PrintBytes([]byte{'\n'})
	if p.Flusher == nil {
		return
	}
	if err := p.Flusher.Flush(); err != nil {
		panic(&PrinterError{Err: errors.Wrap(err, "flush")})
	}
}
