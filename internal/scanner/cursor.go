package scanner

import (
	"strings"
	"unicode/utf8"
)

// EOF is returned by Peek when the cursor has run off the end of the buffer.
const EOF rune = -1

// Cursor walks a vCard buffer one logical character at a time. Folding (a
// line break followed by a space or tab) is invisible to the logical stream,
// as is the quoted-printable soft break ("=" followed by a line break) when
// the caller asks for quoted-printable handling.
//
// The cursor never reads past the end of the buffer. All line break styles
// (CRLF, LF, and CR) are treated the same.
type Cursor struct {
	buf  string
	pos  int
	line int
}

// NewCursor returns a cursor positioned at the start of s.
func NewCursor(s string) *Cursor {
	return &Cursor{buf: s, line: 1}
}

// Pos returns the byte offset of the cursor.
func (c *Cursor) Pos() int {
	return c.pos
}

// Line returns the 1-based physical line number the cursor is on.
func (c *Cursor) Line() int {
	return c.line
}

// Done returns true once the whole buffer has been consumed.
func (c *Cursor) Done() bool {
	return c.pos >= len(c.buf)
}

// Peek returns the rune under the cursor without consuming it. It does not
// absorb folds; call Skip first for that. Line breaks are returned as-is.
func (c *Cursor) Peek() rune {
	if c.pos >= len(c.buf) {
		return EOF
	}
	r, _ := utf8.DecodeRuneInString(c.buf[c.pos:])
	return r
}

// Current returns the raw bytes of the rune under the cursor. This is empty at
// the end of the buffer.
func (c *Cursor) Current() string {
	if c.pos >= len(c.buf) {
		return ""
	}
	_, n := utf8.DecodeRuneInString(c.buf[c.pos:])
	return c.buf[c.pos : c.pos+n]
}

// Advance moves past the rune under the cursor. A line break is consumed as a
// unit, so CRLF counts as one step.
func (c *Cursor) Advance() {
	if c.pos >= len(c.buf) {
		return
	}
	if n := c.eolLen(c.pos); n > 0 {
		c.pos += n
		c.line++
		return
	}
	_, n := utf8.DecodeRuneInString(c.buf[c.pos:])
	c.pos += n
}

// AtEOL returns true when the cursor sits on a real line break or at the end
// of the buffer.
func (c *Cursor) AtEOL() bool {
	return c.pos >= len(c.buf) || c.eolLen(c.pos) > 0
}

// eolLen returns the length of the line break starting at i or 0 if there is
// no line break there.
func (c *Cursor) eolLen(i int) int {
	if i >= len(c.buf) {
		return 0
	}
	switch c.buf[i] {
	case '\r':
		if i+1 < len(c.buf) && c.buf[i+1] == '\n' {
			return 2
		}
		return 1
	case '\n':
		return 1
	}
	return 0
}

func (c *Cursor) isFoldSpace(i int) bool {
	return i < len(c.buf) && (c.buf[i] == ' ' || c.buf[i] == '\t')
}

// Skip absorbs any folds at the cursor. With qp set, a quoted-printable soft
// break is absorbed too, along with any fold whitespace that follows it.
func (c *Cursor) Skip(qp bool) {
	for c.pos < len(c.buf) {
		if qp && c.buf[c.pos] == '=' {
			if n := c.eolLen(c.pos + 1); n > 0 {
				c.pos += 1 + n
				c.line++
				if c.isFoldSpace(c.pos) {
					c.pos++
				}
				continue
			}
		}

		n := c.eolLen(c.pos)
		if n == 0 || !c.isFoldSpace(c.pos+n) {
			return
		}

		c.pos += n + 1
		c.line++
	}
}

// Next absorbs folds, then returns and consumes the next logical rune. At a
// real line break, it returns the break character without consuming it and
// ok is false.
func (c *Cursor) Next(qp bool) (r rune, ok bool) {
	c.Skip(qp)
	if c.AtEOL() {
		return c.Peek(), false
	}
	r = c.Peek()
	c.Advance()
	return r, true
}

// NextLine moves the cursor past the rest of the current logical line,
// including the line break that ends it. Folded continuations are treated as
// part of the line.
func (c *Cursor) NextLine(qp bool) {
	for {
		c.Skip(qp)
		if c.AtEOL() {
			break
		}
		c.Advance()
	}
	c.Advance()
}

// SkipUntil moves the cursor forward until it rests on one of the runes in
// stops or on a real line break. The stop rune is not consumed.
func (c *Cursor) SkipUntil(qp bool, stops string) {
	for {
		c.Skip(qp)
		if c.AtEOL() || strings.ContainsRune(stops, c.Peek()) {
			return
		}
		c.Advance()
	}
}
