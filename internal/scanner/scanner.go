package scanner

import (
	"fmt"
	"io"
)

// Pos locates a byte in the input.  Line and Col are 0-based, and columns
// count UTF-8 encoded code points.
type Pos struct {
	Offset int64
	Line   int
	Col    int
}

// String formats the position 1-based, as editors do.
func (p Pos) String() string {
	return fmt.Sprintf("L%d,C%d", p.Line+1, p.Col+1)
}

// advance moves p past b.
func (p *Pos) advance(b byte) {
	p.Offset++
	switch {
	case b == '\n':
		p.Line++
		p.Col = 0
	case b&0xC0 != 0x80:
		// Not a continuation byte, so it starts a new code point.
		p.Col++
	}
}

// A Scanner reads bytes from an io.Reader one at a time, with one byte of
// look back.  It can record the bytes of a token while they are read.
type Scanner struct {
	src io.Reader
	err error // sticky, io.EOF once src is exhausted

	// buf[cur:end] is read from src but not consumed yet.
	buf      []byte
	cur, end int

	pos Pos

	// State needed by Back.  eofReads counts the EOFs returned by Read
	// since the last byte.
	last     Pos
	canBack  bool
	eofReads int

	// mark is the index in buf where the token being recorded starts, or -1.
	// Token bytes that had to leave buf to make room are kept in spill.
	mark  int
	spill []byte
}

func NewScanner(reader io.Reader) *Scanner {
	return NewScannerSize(reader, defaultBufSize)
}

// NewScannerSize returns a Scanner with a read buffer of the given size,
// which must be at least 2.
func NewScannerSize(reader io.Reader, size int) *Scanner {
	return &Scanner{
		src:  reader,
		buf:  make([]byte, size),
		mark: -1,
	}
}

// refill reads more input into buf, first dropping the consumed bytes
// except the one Back may need.
func (s *Scanner) refill() {
	if s.err != nil {
		return
	}
	if s.end == len(s.buf) {
		if drop := s.cur - lookBackSize; drop > 0 {
			if s.mark >= 0 {
				if s.mark < drop {
					s.spill = append(s.spill, s.buf[s.mark:drop]...)
					s.mark = 0
				} else {
					s.mark -= drop
				}
			}
			s.end = copy(s.buf, s.buf[drop:s.end])
			s.cur -= drop
		}
	}
	for i := maxConsecutiveEmptyReads; i > 0; i-- {
		n, err := s.src.Read(s.buf[s.end:])
		s.end += n
		if err != nil {
			s.err = err
			return
		}
		if n > 0 {
			return
		}
	}
	s.err = io.ErrNoProgress
}

// Read consumes the next byte.  At the end of the input it returns EOF and
// a nil error.
func (s *Scanner) Read() (byte, error) {
	if s.cur >= s.end {
		s.refill()
	}
	if s.cur < s.end {
		b := s.buf[s.cur]
		s.cur++
		s.last, s.canBack = s.pos, true
		s.eofReads = 0
		s.pos.advance(b)
		return b, nil
	}
	if s.err == io.EOF {
		s.eofReads++
		s.canBack = true
		return EOF, nil
	}
	return 0, s.err
}

// Back undoes the last Read.  It panics if called twice in a row, or if it
// would move before the start of the token being recorded.
func (s *Scanner) Back() {
	if !s.canBack {
		panic("cannot go back twice")
	}
	s.canBack = false
	if s.eofReads > 0 {
		s.eofReads--
		return
	}
	if s.cur <= s.mark {
		panic("cannot go back past the start of a token")
	}
	s.cur--
	s.pos = s.last
}

// Peek returns the next byte without consuming it.
func (s *Scanner) Peek() (byte, error) {
	if s.cur >= s.end {
		s.refill()
	}
	if s.cur < s.end {
		return s.buf[s.cur], nil
	}
	return s.errOrEOF()
}

func (s *Scanner) errOrEOF() (byte, error) {
	if s.err == io.EOF {
		return EOF, nil
	}
	return 0, s.err
}

// StartToken starts recording the bytes consumed from now on.
func (s *Scanner) StartToken() Pos {
	if s.mark >= 0 {
		panic("already recording a token")
	}
	s.mark = s.cur
	return s.pos
}

// EndToken stops recording and returns the bytes consumed since StartToken.
func (s *Scanner) EndToken() []byte {
	if s.mark < 0 {
		panic("not recording a token")
	}
	tok := append(s.spill, s.buf[s.mark:s.cur]...)
	s.spill, s.mark = nil, -1
	return tok
}

func (s *Scanner) CurrentPos() Pos {
	return s.pos
}

// Offset returns the number of bytes consumed from the input so far.
func (s *Scanner) Offset() int64 {
	return s.pos.Offset
}

// SkipSpaceAndPeek consumes JSON whitespace and returns the next byte
// without consuming it.
func (s *Scanner) SkipSpaceAndPeek() (byte, error) {
	for {
		for s.cur < s.end {
			b := s.buf[s.cur]
			if !IsSpace(b) {
				return b, nil
			}
			s.cur++
			s.pos.advance(b)
			s.canBack = false
		}
		s.refill()
		if s.cur >= s.end {
			return s.errOrEOF()
		}
	}
}

// SkipSpaceAndRead consumes JSON whitespace and the byte that follows it,
// which Back can then undo.
func (s *Scanner) SkipSpaceAndRead() (byte, error) {
	if _, err := s.SkipSpaceAndPeek(); err != nil {
		return 0, err
	}
	return s.Read()
}

const (
	lookBackSize             = 1
	maxConsecutiveEmptyReads = 100
	defaultBufSize           = 8192
)

// 0xFF is a byte that should not appear in a UTF-8 encoded stream of bytes.
const EOF byte = 0xFF
