package card

import (
	"bufio"
	"errors"
	"io"

	"github.com/zostay/go-vcard/internal/scanner"
)

// Constants related to NewDecoder() options.
const (
	// DefaultChunkSize is the initial size of the buffer used to read from the
	// input. The buffer grows as needed up to the maximum card length.
	DefaultChunkSize = 16_384

	// DefaultMaxCardLength is the default maximum byte length of a single card
	// in a stream. Cards carrying photos can be large, so this is generous.
	DefaultMaxCardLength = 4 * 1_048_576
)

// Errors returned by Decoder.
var (
	// ErrLargeCard is returned by Decode when a card is longer than the
	// configured WithMaxCardLength option (or the default,
	// DefaultMaxCardLength).
	ErrLargeCard = errors.New("a vCard exceeds the maximum parse length")

	// ErrNoAttributes is returned by Decode, along with the empty card, when a
	// chunk of the stream did not contain a single readable attribute.
	ErrNoAttributes = errors.New("vCard contains no attributes")
)

type decoder struct {
	maxCardLen int
	chunkSize  int
	opts       []ParseOption
}

// DecoderOption refers to options that may be passed to NewDecoder to modify
// how cards are read from the stream.
type DecoderOption func(d *decoder)

// WithMaxCardLength is a DecoderOption that sets the maximum size a single card
// may reach before Decode gives up with ErrLargeCard. The default is
// DefaultMaxCardLength.
func WithMaxCardLength(n int) DecoderOption {
	return func(d *decoder) { d.maxCardLen = n }
}

// WithChunkSize is a DecoderOption that sets the initial read buffer size. The
// default is DefaultChunkSize.
func WithChunkSize(n int) DecoderOption {
	return func(d *decoder) { d.chunkSize = n }
}

// WithParseOptions is a DecoderOption that passes the given options to Parse
// for every card read.
func WithParseOptions(opts ...ParseOption) DecoderOption {
	return func(d *decoder) { d.opts = append(d.opts, opts...) }
}

// Decoder reads a stream containing any number of vCards, one card at a time.
// Cards are separated by their END:VCARD lines. Blank lines between cards are
// ignored.
type Decoder struct {
	sc   *bufio.Scanner
	opts []ParseOption
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader, opts ...DecoderOption) *Decoder {
	d := &decoder{
		maxCardLen: DefaultMaxCardLength,
		chunkSize:  DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.chunkSize > d.maxCardLen {
		d.chunkSize = d.maxCardLen
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, d.chunkSize), d.maxCardLen)
	sc.Split(scanner.MakeSplitFuncExitByAdvance(scanner.ScanCards))

	return &Decoder{sc: sc, opts: d.opts}
}

// Decode reads and parses the next card in the stream. It returns io.EOF once
// the stream is exhausted. A card with no readable attributes is returned with
// ErrNoAttributes; the caller may keep decoding after that. Any other error
// means the stream cannot be read further.
func (d *Decoder) Decode() (*Card, error) {
	if !d.sc.Scan() {
		err := d.sc.Err()
		switch {
		case err == nil:
			return nil, io.EOF
		case errors.Is(err, bufio.ErrTooLong):
			return nil, ErrLargeCard
		}
		return nil, err
	}

	c := Parse(d.sc.Text(), d.opts...)
	if c.Len() == 0 {
		return c, ErrNoAttributes
	}

	return c, nil
}

// DecodeAll reads every card in the stream. Chunks with no readable
// attributes are skipped. On error, the cards read so far are returned with
// the error.
func (d *Decoder) DecodeAll() ([]*Card, error) {
	var cs []*Card
	for {
		c, err := d.Decode()
		switch {
		case errors.Is(err, io.EOF):
			return cs, nil
		case errors.Is(err, ErrNoAttributes):
			continue
		case err != nil:
			return cs, err
		}
		cs = append(cs, c)
	}
}
