package vcard

import (
	"github.com/zostay/go-vcard/card"
	"github.com/zostay/go-vcard/card/attribute"
	_ "github.com/zostay/go-vcard/card/attribute/encoding"
)

// Parse reads a single vCard from text. It never fails, but may return a card
// with no attributes. See card.Parse for details and options.
func Parse(text string, opts ...card.ParseOption) *card.Card {
	return card.Parse(text, opts...)
}

// String returns the text of the card as a version 3.0 vCard.
func String(c *card.Card) string {
	return c.String()
}

// Escape escapes a value for use in a vCard content line.
func Escape(s string) string {
	return attribute.Escape(s)
}

// Unescape reverses Escape.
func Unescape(s string) string {
	return attribute.Unescape(s)
}
