package attribute

import (
	"io"
	"strings"

	"github.com/zostay/go-vcard/card/transfer"
)

// ContentLine returns the attribute rendered as a single unfolded content line
// without a line break:
//
//	[group "."] name *(";" param) ":" value *(sep value)
//
// Values are escaped and joined with ',' for CATEGORIES and ';' otherwise. A
// base64 attribute is given an ENCODING=b parameter so that its values can be
// decoded again when the line is read back.
func (a *Attribute) ContentLine() string {
	var sb strings.Builder

	if a.group != "" {
		sb.WriteString(a.group)
		sb.WriteByte('.')
	}
	sb.WriteString(a.name)

	if a.encoding == transfer.Base64 {
		sb.WriteByte(';')
		NewParam(ParamEncoding, transfer.Base64.String()).writeTo(&sb)
	}

	for _, p := range a.params {
		sb.WriteByte(';')
		p.writeTo(&sb)
	}

	sb.WriteByte(':')

	sep := ";"
	if a.Is(Categories) {
		sep = ","
	}

	for i, v := range a.values {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(Escape(v))
	}

	return sb.String()
}

// String returns the content line of the attribute folded with the
// DefaultFoldEncoding and terminated with CRLF.
func (a *Attribute) String() string {
	return DefaultFoldEncoding.FoldString(a.ContentLine())
}

// FoldTo writes the folded content line, terminated with CRLF, to w using the
// given fold encoding. If vf is nil, DefaultFoldEncoding is used.
func (a *Attribute) FoldTo(w io.Writer, vf *FoldEncoding) (int64, error) {
	if vf == nil {
		vf = DefaultFoldEncoding
	}
	return vf.Fold(w, a.ContentLine())
}
