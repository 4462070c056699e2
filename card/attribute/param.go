package attribute

import (
	"strings"
)

// Well-known parameter names.
const (
	ParamType     = "TYPE"
	ParamEncoding = "ENCODING"
	ParamCharset  = "CHARSET"
	ParamValue    = "VALUE"
)

// Param is a single named parameter attached to an attribute. It normally
// holds one value, but may hold a comma separated list.
type Param struct {
	Name   string
	Values []string
}

// NewParam returns a new parameter with the given name and values.
func NewParam(name string, values ...string) *Param {
	return &Param{Name: name, Values: values}
}

// Clone returns a deep copy of the parameter.
func (p *Param) Clone() *Param {
	vs := make([]string, len(p.Values))
	copy(vs, p.Values)
	return &Param{Name: p.Name, Values: vs}
}

// HasValue returns true if the parameter holds the given value. The
// comparison is case-insensitive.
func (p *Param) HasValue(v string) bool {
	for _, pv := range p.Values {
		if strings.EqualFold(pv, v) {
			return true
		}
	}
	return false
}

// merge adds the values of other that are not already present. It returns
// true if any value was added.
func (p *Param) merge(other *Param) bool {
	changed := false
	for _, v := range other.Values {
		if !p.HasValue(v) {
			p.Values = append(p.Values, v)
			changed = true
		}
	}
	return changed
}

// String returns the parameter as it is written on a content line, without
// the leading semicolon.
func (p *Param) String() string {
	var sb strings.Builder
	p.writeTo(&sb)
	return sb.String()
}

func (p *Param) writeTo(sb *strings.Builder) {
	sb.WriteString(p.Name)
	if len(p.Values) == 0 {
		return
	}

	sb.WriteByte('=')
	for i, v := range p.Values {
		if i > 0 {
			sb.WriteByte(',')
		}

		if !needsQuotes(v) {
			sb.WriteString(v)
			continue
		}

		sb.WriteByte('"')
		for _, c := range v {
			// a double quote cannot appear inside a quoted string, so it is dropped
			if c == '"' {
				continue
			}
			sb.WriteRune(c)
		}
		sb.WriteByte('"')
	}
}

// needsQuotes reports whether v holds anything outside ASCII letters and
// digits.
func needsQuotes(v string) bool {
	for _, c := range v {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		default:
			return true
		}
	}
	return false
}
