package attribute

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// CharsetDecoderFunc converts bytes in the named charset into a UTF-8 string.
type CharsetDecoderFunc func(charset string, b []byte) (string, error)

// CharsetDecoder is used to transcode values read from an attribute that
// declares a CHARSET parameter. The default only understands UTF-8 and
// US-ASCII. Import github.com/zostay/go-vcard/card/attribute/encoding to
// install a decoder that understands every charset in the IANA index.
var CharsetDecoder CharsetDecoderFunc = DefaultCharsetDecoder

// DefaultCharsetDecoder decodes UTF-8 and US-ASCII input. Invalid bytes are
// replaced with the Unicode replacement character. Any other charset results
// in an error.
func DefaultCharsetDecoder(charset string, b []byte) (string, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8", "us-ascii", "ascii":
		out, err := unicode.UTF8.NewDecoder().Bytes(b)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
	return "", fmt.Errorf("unsupported byte encoding %q", charset)
}
