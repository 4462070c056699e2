// Package vcard reads and writes vCard 3.0 address book entries as described
// by RFC 2425 and RFC 2426.
//
// The most important goal of this library is to read whatever it is given.
// Address books have been exchanging vCards for a long time and many of the
// programs that write them have never quite followed the RFCs. Older phones
// write quoted-printable values in Latin-1, some applications write bare TYPE
// and ENCODING parameters, some use bare LF or CR line endings, and some wrap
// lines in creative ways. The parser accepts all of these and never fails.
// Lines that cannot be read at all are skipped and, if you ask for it, reported
// to a *slog.Logger.
//
// The second goal is to write strictly correct vCards. Whatever was read, the
// output is always a version 3.0 vCard with CRLF line endings, escaped values,
// quoted parameters, and lines folded at 75 characters.
//
// The code is split according to the part of the card being dealt with. The
// card package provides the card.Card, which holds the ordered list of
// attributes making up a card, along with the card.Parse function, the
// card.Decoder for reading files with many cards, and getters for commonly
// needed values. The card/attribute package provides the attribute.Attribute
// and attribute.Param types along with the low-level reading, escaping, and
// folding of individual content lines. The card/transfer package handles the
// base64 encoding used for binary values such as photos.
//
// This package provides shortcuts to the most commonly used functions. It also
// loads support for every character set known to golang.org/x/text, so that
// values declaring a CHARSET other than UTF-8 can be read. If you would rather
// not pay for that in binary size, use the card package directly and import
// card/attribute/encoding only if you need it.
package vcard
