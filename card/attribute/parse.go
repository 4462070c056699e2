package attribute

import (
	"log/slog"
	"strings"

	"github.com/zostay/go-vcard/card/transfer"
	"github.com/zostay/go-vcard/internal/scanner"
)

// reader carries the state threaded between the readers for one content line.
// The parameter reader sets qp and charset; the value reader consumes them.
type reader struct {
	cur *scanner.Cursor
	log *slog.Logger

	qp      bool
	charset string

	// broken is set when the line is malformed in a way that should cause
	// the attribute to be discarded once the line has been consumed.
	broken bool
}

func (r *reader) warn(msg string, args ...any) {
	if r.log == nil {
		return
	}
	r.log.Warn(msg, append([]any{slog.Int("line", r.cur.Line())}, args...)...)
}

// Read reads a single attribute from the logical line under the cursor. It
// always leaves the cursor at the start of the next logical line.
//
// Read never fails. When the line cannot be read as an attribute, the problem
// is reported to the logger (which may be nil) and nil is returned. The caller
// should simply carry on with the next line.
func Read(cur *scanner.Cursor, logger *slog.Logger) *Attribute {
	r := &reader{cur: cur, log: logger}
	return r.readAttribute()
}

func (r *reader) lose() *Attribute {
	r.cur.NextLine(r.qp)
	return nil
}

func (r *reader) readAttribute() *Attribute {
	var (
		tok   strings.Builder
		group string
		name  string
	)

GroupOrName:
	for {
		r.cur.Skip(false)
		if r.cur.AtEOL() {
			break
		}

		switch c := r.cur.Peek(); {
		case c == ':' || c == ';':
			if tok.Len() == 0 {
				r.warn("attribute without a name")
				return r.lose()
			}
			name = tok.String()
			break GroupOrName
		case c == '.':
			if group != "" {
				r.warn("extra '.' in attribute specification, ignoring extra group", "group", tok.String())
				tok.Reset()
			}
			if tok.Len() > 0 {
				group = tok.String()
				tok.Reset()
			}
			r.cur.Advance()
		case isNameChar(c):
			tok.WriteString(r.cur.Current())
			r.cur.Advance()
		default:
			r.warn("invalid character found in attribute group/name", "char", string(c))
			return r.lose()
		}
	}

	if name == "" {
		return r.lose()
	}

	a := New(group, name)

	if r.cur.Peek() == ';' {
		r.cur.Advance()
		if !r.readParams(a) {
			return nil
		}
	}

	if r.cur.Peek() == ':' {
		r.cur.Advance()
		r.readValue(a)
	}

	r.cur.NextLine(r.qp)

	if r.broken {
		return nil
	}

	if len(a.values) == 0 {
		r.warn("attribute without a value", "name", name)
		return nil
	}

	return a
}

// readParams reads the parameter list following the ';' after the attribute
// name. It stops on the ':' that introduces the value, leaving the cursor
// there, or at the end of the line. It returns false if the line was abandoned,
// in which case the cursor has already moved on to the next line.
func (r *reader) readParams(a *Attribute) bool {
	var (
		tok     strings.Builder
		pending *Param
		inQuote bool
	)

	for {
		r.cur.Skip(r.qp)
		if r.cur.AtEOL() {
			return true
		}

		c := r.cur.Peek()
		switch {
		case c == '"':
			inQuote = !inQuote
			r.cur.Advance()

		case inQuote || isNameChar(c):
			tok.WriteString(r.cur.Current())
			r.cur.Advance()

		case c == '=':
			if tok.Len() == 0 {
				r.warn("parameter without a name")
				r.broken = true
				r.cur.SkipUntil(r.qp, ":;")
				if r.cur.Peek() == ';' {
					r.cur.Advance()
				}
				continue
			}

			if pending != nil && len(pending.Values) > 0 {
				r.applyParam(a, pending)
			}
			pending = NewParam(tok.String())
			tok.Reset()
			r.cur.Advance()

		case c == ';' || c == ':' || c == ',':
			colon, comma := c == ':', c == ','
			if !colon {
				r.cur.Advance()
			}

			switch {
			case pending != nil:
				if tok.Len() > 0 {
					pending.Values = append(pending.Values, tok.String())
					tok.Reset()
				} else if len(pending.Values) == 0 {
					// PARAM=; or PARAM=: carries nothing worth keeping
					pending = nil
				}
			case tok.Len() > 0:
				pending = r.shorthandParam(tok.String())
				tok.Reset()
			}

			if pending != nil && !comma {
				r.applyParam(a, pending)
				pending = nil
			}

			if colon {
				return true
			}

		default:
			r.warn("invalid character found in parameter", "char", string(c))
			r.cur.NextLine(r.qp)
			return false
		}
	}
}

// shorthandParam builds a parameter from a bare value with no name, as in
// "TEL;HOME:" or "PHOTO;BASE64:". These are not allowed by RFC 2426, but are
// produced often enough that they are worth accepting.
func (r *reader) shorthandParam(v string) *Param {
	switch {
	case strings.EqualFold(v, "quoted-printable"):
		return NewParam(ParamEncoding, v)
	case strings.EqualFold(v, "base64"):
		return NewParam(ParamEncoding, "b")
	}
	return NewParam(ParamType, v)
}

// applyParam attaches a completed parameter to the attribute. ENCODING and
// any CHARSET other than UTF-8 steer the value reader and are not stored.
func (r *reader) applyParam(a *Attribute, p *Param) {
	if strings.EqualFold(p.Name, ParamCharset) && len(p.Values) > 0 && !strings.EqualFold(p.Values[0], "utf-8") {
		r.charset = p.Values[0]
		return
	}

	if strings.EqualFold(p.Name, ParamEncoding) {
		_, problem := a.addParam(p)
		if problem != "" {
			r.warn(problem, "name", a.name, "value", strings.Join(p.Values, ","))
		}
		if a.encoding == transfer.QuotedPrintable {
			r.qp = true
		}
		return
	}

	a.addParam(p)
}

// readValue reads the value section following the ':' up to the end of the
// logical line, splitting it into values.
func (r *reader) readValue(a *Attribute) {
	var buf []byte
	splitComma := a.Is(Categories)

	flush := func() {
		a.AddValue(r.convert(buf))
		buf = buf[:0]
	}

	for {
		r.cur.Skip(r.qp)
		if r.cur.AtEOL() {
			break
		}

		c := r.cur.Peek()
		switch {
		case c == '=' && r.qp:
			r.cur.Advance()
			hi, ok := r.cur.Next(r.qp)
			if !ok {
				buf = append(buf, '=')
				flush()
				return
			}
			lo, ok := r.cur.Next(r.qp)
			if !ok {
				buf = append(buf, '=')
				buf = appendRune(buf, hi)
				flush()
				return
			}
			if b, isHex := unhex(hi, lo); isHex {
				buf = append(buf, b)
			} else {
				buf = append(buf, '=')
				buf = appendRune(buf, hi)
				buf = appendRune(buf, lo)
			}

		case c == '\\':
			r.cur.Advance()
			e, ok := r.cur.Next(r.qp)
			if !ok {
				buf = append(buf, '\\')
				flush()
				return
			}
			if u, known := unescapeRune(e); known {
				buf = append(buf, u)
			} else {
				r.warn("invalid escape, passing it through", "char", string(e))
				buf = append(buf, '\\')
				buf = appendRune(buf, e)
			}

		case c == ';' || (c == ',' && splitComma):
			r.cur.Advance()
			flush()

		default:
			buf = append(buf, r.cur.Current()...)
			r.cur.Advance()
		}
	}

	flush()
}

// convert returns the accumulated value bytes as a string, transcoding them to
// UTF-8 if the attribute declared a charset. When transcoding fails, the bytes
// are kept as they are.
func (r *reader) convert(b []byte) string {
	if r.charset == "" {
		return string(b)
	}

	s, err := CharsetDecoder(r.charset, b)
	if err != nil {
		r.warn("unable to convert value from declared charset", "charset", r.charset, "error", err)
		return string(b)
	}
	return s
}

func appendRune(b []byte, c rune) []byte {
	return append(b, string(c)...)
}

func unhex(hi, lo rune) (byte, bool) {
	h, ok := hexVal(hi)
	if !ok {
		return 0, false
	}
	l, ok := hexVal(lo)
	if !ok {
		return 0, false
	}
	return h<<4 | l, true
}

func hexVal(c rune) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return byte(c - '0'), true
	case c >= 'a' && c <= 'f':
		return byte(c - 'a' + 10), true
	case c >= 'A' && c <= 'F':
		return byte(c - 'A' + 10), true
	}
	return 0, false
}
