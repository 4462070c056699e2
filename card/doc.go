// Package card is the heart of this library. It provides the Card type, which
// holds the ordered list of attributes making up a single vCard, along with
// tools for reading cards from text and writing them back out.
//
// Reading is forgiving. Parse will read whatever it can from the input and
// report problems to an optional *slog.Logger rather than failing. Lines that
// cannot be read are dropped, missing BEGIN:VCARD and END:VCARD lines are
// tolerated, and bad bytes are replaced. This is deliberate: address books in
// the wild produce all manner of broken vCards and the goal is to get as much
// data out of them as possible.
//
//	c := card.Parse(text, card.WithLogger(logger))
//	fn, err := c.Get("FN")
//	if err != nil {
//	  panic(err)
//	}
//
// Writing is strict. A Card is always written as a version 3.0 vCard with
// properly escaped values and folded lines, per RFC 2425 and RFC 2426.
//
// To read a file containing many cards, use a Decoder:
//
//	dec := card.NewDecoder(r)
//	for {
//	  c, err := dec.Decode()
//	  if errors.Is(err, io.EOF) {
//	    break
//	  } else if err != nil {
//	    panic(err)
//	  }
//
//	  fmt.Print(c)
//	}
package card
