// Package encoding installs a charset decoder for vCard attribute values that
// understands every charset known to golang.org/x/text/encoding/ianaindex.
// Import it for its side effect:
//
//	import _ "github.com/zostay/go-vcard/card/attribute/encoding"
//
// This will make the size of your compiled binaries considerably larger. But it
// will also let you read the ISO-8859-x and Windows code page values that older
// address books still produce.
package encoding

import (
	"fmt"

	_ "golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/zostay/go-vcard/card/attribute"
)

func init() {
	attribute.CharsetDecoder = CharsetDecoder
}

// CharsetDecoder decodes bytes in any charset known to the IANA index into a
// UTF-8 string.
func CharsetDecoder(charset string, b []byte) (string, error) {
	e, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return "", err
	}

	if e == nil {
		return "", fmt.Errorf("no encoding found for charset %q", charset)
	}

	eb, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}

	return string(eb), nil
}
