package card

import (
	"bytes"
	"io"
	"strings"

	"github.com/zostay/go-vcard/card/attribute"
)

// WriteTo writes the card to w as a version 3.0 vCard. It always begins with
// BEGIN:VCARD followed by VERSION:3.0 and ends with END:VCARD. Any VERSION
// attribute on the card is not written. Every attribute line is folded using
// the card's fold encoding and terminated with CRLF. No line break is written
// after END:VCARD.
func (c *Card) WriteTo(w io.Writer) (int64, error) {
	vf := c.FoldEncoding()

	total := int64(0)
	n, err := io.WriteString(w, attribute.Begin+":VCARD"+attribute.CRLF)
	total += int64(n)
	if err != nil {
		return total, err
	}

	n64, err := vf.Fold(w, attribute.Version+":"+WriteVersion)
	total += n64
	if err != nil {
		return total, err
	}

	for _, a := range c.attributes {
		if a.Is(attribute.Version) {
			continue
		}

		n64, err = a.FoldTo(w, vf)
		total += n64
		if err != nil {
			return total, err
		}
	}

	n, err = io.WriteString(w, attribute.End+":VCARD")
	total += int64(n)
	return total, err
}

// String returns the card as text. See WriteTo.
func (c *Card) String() string {
	var sb strings.Builder
	_, _ = c.WriteTo(&sb)
	return sb.String()
}

// Bytes returns the card as text in a byte slice. See WriteTo.
func (c *Card) Bytes() []byte {
	buf := &bytes.Buffer{}
	_, _ = c.WriteTo(buf)
	return buf.Bytes()
}
