package card

import (
	"strings"

	"github.com/zostay/go-vcard/card/attribute"
)

// Card is a single vCard: an ordered list of attributes. The order is the
// order in which the attributes were read or added. The BEGIN, END, and
// VERSION lines are framing and are not normally stored as attributes.
//
// A Card is not safe for concurrent modification.
type Card struct {
	attributes []*attribute.Attribute
	vf         *attribute.FoldEncoding
}

// New returns an empty card.
func New() *Card {
	return &Card{}
}

// Clone returns a deep copy of the card.
func (c *Card) Clone() *Card {
	as := make([]*attribute.Attribute, len(c.attributes))
	for i, a := range c.attributes {
		as[i] = a.Clone()
	}
	return &Card{attributes: as, vf: c.vf}
}

// Attributes returns the attributes of the card in order. Do not modify the
// returned slice.
func (c *Card) Attributes() []*attribute.Attribute {
	return c.attributes
}

// Len returns the number of attributes on the card.
func (c *Card) Len() int {
	return len(c.attributes)
}

// Find returns the first attribute with the given name, compared
// case-insensitively, or nil if there is none.
func (c *Card) Find(name string) *attribute.Attribute {
	for _, a := range c.attributes {
		if a.Is(name) {
			return a
		}
	}
	return nil
}

// FindAll returns every attribute with the given name, compared
// case-insensitively.
func (c *Card) FindAll(name string) []*attribute.Attribute {
	var as []*attribute.Attribute
	for _, a := range c.attributes {
		if a.Is(name) {
			as = append(as, a)
		}
	}
	return as
}

// FindGroup returns every attribute in the given group, compared
// case-insensitively.
func (c *Card) FindGroup(group string) []*attribute.Attribute {
	var as []*attribute.Attribute
	for _, a := range c.attributes {
		if a.Group() != "" && strings.EqualFold(a.Group(), group) {
			as = append(as, a)
		}
	}
	return as
}

// Append adds the attribute to the end of the card. The card takes ownership
// of the attribute. It returns false if a is nil.
func (c *Card) Append(a *attribute.Attribute) bool {
	if a == nil {
		return false
	}
	c.attributes = append(c.attributes, a)
	return true
}

// Prepend adds the attribute to the start of the card. The card takes
// ownership of the attribute. It returns false if a is nil.
func (c *Card) Prepend(a *attribute.Attribute) bool {
	if a == nil {
		return false
	}
	c.attributes = append([]*attribute.Attribute{a}, c.attributes...)
	return true
}

// Remove removes the given attribute (the same object, not an equal one) from
// the card. It returns true if it was found.
func (c *Card) Remove(a *attribute.Attribute) bool {
	for i, ca := range c.attributes {
		if ca == a {
			c.attributes = append(c.attributes[:i], c.attributes[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAttributes removes every attribute with the given group and name,
// both compared case-insensitively. An empty group only matches attributes
// that have no group. It returns true if anything was removed.
func (c *Card) RemoveAttributes(group, name string) bool {
	kept := c.attributes[:0]
	for _, a := range c.attributes {
		if strings.EqualFold(a.Group(), group) && a.Is(name) {
			continue
		}
		kept = append(kept, a)
	}

	if len(kept) == len(c.attributes) {
		return false
	}

	for i := len(kept); i < len(c.attributes); i++ {
		c.attributes[i] = nil
	}
	c.attributes = kept
	return true
}

// FoldEncoding returns the fold encoding used when writing the card. This is
// attribute.DefaultFoldEncoding unless SetFoldEncoding has been called.
func (c *Card) FoldEncoding() *attribute.FoldEncoding {
	if c.vf == nil {
		return attribute.DefaultFoldEncoding
	}
	return c.vf
}

// SetFoldEncoding changes how lines are folded when the card is written.
// Passing nil restores the default.
func (c *Card) SetFoldEncoding(vf *attribute.FoldEncoding) {
	c.vf = vf
}
