package transfer

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Encoding names the transfer encoding of an attribute value.
type Encoding int

const (
	Raw             Encoding = iota // bytes are left as-is
	Base64                          // bytes are transformed between base64 and binary data
	QuotedPrintable                 // decoded during parsing, so bytes are left as-is
)

// String returns the name of the encoding as it is spelled in an ENCODING
// parameter.
func (e Encoding) String() string {
	switch e {
	case Raw:
		return "RAW"
	case Base64:
		return "b"
	case QuotedPrintable:
		return "QUOTED-PRINTABLE"
	}
	return fmt.Sprintf("Encoding(%d)", int(e))
}

// Lookup returns the encoding named by the value of an ENCODING parameter. The
// second value is false if the name is not recognized.
func Lookup(name string) (Encoding, bool) {
	switch {
	case strings.EqualFold(name, "b"), strings.EqualFold(name, "base64"):
		return Base64, true
	case strings.EqualFold(name, "quoted-printable"):
		return QuotedPrintable, true
	}
	return Raw, false
}

// writer is an internal type to make as-is writers work properly.
type writer struct {
	io.Writer
	performClose bool
}

// Close will close the nested writer if performClose is true.
func (w *writer) Close() error {
	if c, isCloser := w.Writer.(io.Closer); w.performClose && isCloser {
		return c.Close()
	}
	return nil
}

// Transcoding is a pair of functions that can be used to transform to and from
// a transfer encoding.
type Transcoding struct {
	// Encoder returns an io.WriteCloser, which will encode binary data and
	// write the encoded form to the given io.Writer. You must call Close() on
	// the returned io.WriteCloser when you are finished.
	Encoder func(io.Writer) io.WriteCloser

	// Decoder returns an io.Reader, which will read from the given io.Reader
	// and decode the encoded data back into binary form.
	Decoder func(io.Reader) io.Reader
}

// AsIsTranscoder is just a shortcut to a no-op encoder/decoder.
var AsIsTranscoder = Transcoding{NewAsIsEncoder, NewAsIsDecoder}

// Transcodings defines how each Encoding is handled. It can be modified to
// change the global handling of transfer encodings.
var Transcodings = map[Encoding]Transcoding{
	Raw:             AsIsTranscoder,
	QuotedPrintable: AsIsTranscoder,
	Base64:          {NewBase64Encoder, NewBase64Decoder},
}

func transcodingFor(e Encoding) Transcoding {
	if tc, hasCode := Transcodings[e]; hasCode {
		return tc
	}
	return AsIsTranscoder
}

// Decode returns the binary data represented by the stored value s.
func Decode(e Encoding, s string) ([]byte, error) {
	r := transcodingFor(e).Decoder(strings.NewReader(s))
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to decode %s value: %w", e, err)
	}
	return b, nil
}

// Encode returns the text form of the binary data b to be stored as a value.
func Encode(e Encoding, b []byte) (string, error) {
	buf := &bytes.Buffer{}
	w := transcodingFor(e).Encoder(buf)
	if _, err := w.Write(b); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
