package card

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/go-vcard/card/attribute"
)

// Errors returned by the Card getters.
var (
	// ErrNoSuchAttribute is returned by Card methods when the operation
	// being performed failed because the attribute named does not exist.
	ErrNoSuchAttribute = errors.New("no such attribute")

	// ErrManyAttributes is returned by Card methods when the operation being
	// performed failed because there are multiple attributes with the given
	// name.
	ErrManyAttributes = errors.New("many attributes found")
)

// Well-known vCard attribute names from RFC 2426. These are provided for
// convenience. Attribute names are always compared case-insensitively.
const (
	FN       = "FN"
	N        = "N"
	Nickname = "NICKNAME"
	Photo    = "PHOTO"
	Bday     = "BDAY"
	Adr      = "ADR"
	Label    = "LABEL"
	Tel      = "TEL"
	Email    = "EMAIL"
	Org      = "ORG"
	Title    = "TITLE"
	Note     = "NOTE"
	Rev      = "REV"
	URL      = "URL"
)

// vCard basic format date and time layouts, which are tried before dateparse.
const (
	basicDateTimeUTC = "20060102T150405Z"
	basicDateTime    = "20060102T150405"
	basicDateTimeTZ  = "20060102T150405-0700"
)

// Get returns the first value of the named attribute. If there is no such
// attribute, it returns an empty string with ErrNoSuchAttribute. If there are
// several, the value of the first is returned with ErrManyAttributes.
func (c *Card) Get(name string) (string, error) {
	as := c.FindAll(name)
	if len(as) == 0 {
		return "", ErrNoSuchAttribute
	}

	v, _ := as[0].Value()
	if len(as) > 1 {
		return v, ErrManyAttributes
	}

	return v, nil
}

// GetAll returns the first value of every attribute with the given name. It
// returns ErrNoSuchAttribute if there are none.
func (c *Card) GetAll(name string) ([]string, error) {
	as := c.FindAll(name)
	if len(as) == 0 {
		return nil, ErrNoSuchAttribute
	}

	vs := make([]string, len(as))
	for i, a := range as {
		vs[i], _ = a.Value()
	}
	return vs, nil
}

// ParseTime provides the time parsing used by GetTime. It will parse dates and
// times in nearly any format, including the basic and extended ISO 8601 forms
// used by vCard values such as BDAY and REV.
//
// It either returns a parsed time or the parse error.
func ParseTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)

	for _, layout := range []string{basicDateTimeUTC, basicDateTimeTZ, basicDateTime} {
		t, err := time.Parse(layout, v)
		if err == nil {
			return t, nil
		}
	}

	t, err := dateparse.ParseAny(v)
	if err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("time string %q cannot be parsed", v)
}

// GetTime returns the value of the named attribute as a time.Time. It returns
// ErrNoSuchAttribute or ErrManyAttributes as Get does, though the time of the
// first attribute is still returned in the latter case.
func (c *Card) GetTime(name string) (time.Time, error) {
	v, err := c.Get(name)
	if err != nil && !errors.Is(err, ErrManyAttributes) {
		return time.Time{}, err
	}

	t, perr := ParseTime(v)
	if perr != nil {
		return t, perr
	}

	return t, err
}

// ParseAddressList parses an email address list. A strict parse is tried
// first. Failing that, the value is taken to be a single sloppy address, which
// is how EMAIL values usually go wrong, and a lenient parse makes the best of
// it. The lenient parse may produce odd results for odd input.
func ParseAddressList(v string) addr.AddressList {
	al, err := addr.ParseEmailAddressList(v)
	if err == nil {
		return al
	}

	if mb := lenientMailbox(v); mb != nil {
		return addr.AddressList{mb}
	}
	return addr.AddressList{}
}

// GetAddressList returns the values of every attribute with the given name,
// usually EMAIL, as a single address list. The formatted name of the card, if
// any, is used as the display name for bare addresses. It returns
// ErrNoSuchAttribute if there are no such attributes.
func (c *Card) GetAddressList(name string) (addr.AddressList, error) {
	as := c.FindAll(name)
	if len(as) == 0 {
		return nil, ErrNoSuchAttribute
	}

	fn, _ := c.Get(FN)

	al := make(addr.AddressList, 0, len(as))
	for _, a := range as {
		for _, v := range a.Values() {
			if strings.TrimSpace(v) == "" {
				continue
			}

			for _, ad := range ParseAddressList(v) {
				al = append(al, withDisplayName(ad, fn))
			}
		}
	}

	return al, nil
}

// withDisplayName returns a mailbox with the given display name when the
// address has no display name of its own.
func withDisplayName(ad addr.Address, dn string) addr.Address {
	if dn == "" {
		return ad
	}

	if named, ok := ad.(interface{ DisplayName() string }); ok && named.DisplayName() != "" {
		return ad
	}

	spec, err := addr.ParseEmailAddrSpec(ad.Address())
	if err != nil {
		return ad
	}

	mb, err := addr.NewMailboxParsed(dn, spec, "", ad.Address())
	if err != nil {
		return ad
	}
	return mb
}

// lenientMailbox reads v as one address. The word in angle brackets is the
// address, or else the first word holding an "@", or else the last word.
// Parenthesized text is the comment and the other words are the display name.
// It returns nil if v holds no words at all.
func lenientMailbox(v string) *addr.Mailbox {
	orig := v

	var comment string
	if open := strings.IndexByte(v, '('); open > -1 {
		if end := strings.LastIndexByte(v, ')'); end > open {
			comment = strings.TrimSpace(v[open+1 : end])
			v = v[:open] + " " + v[end+1:]
		}
	}

	words := strings.Fields(v)
	if len(words) == 0 {
		return nil
	}

	pick := len(words) - 1
	for i := len(words) - 1; i >= 0; i-- {
		if strings.HasPrefix(words[i], "<") {
			pick = i
			break
		}
		if strings.Contains(words[i], "@") {
			pick = i
		}
	}

	email := strings.Trim(words[pick], `<>"`)
	rest := append(words[:pick:pick], words[pick+1:]...)
	dn := strings.Trim(strings.Join(rest, " "), `"`)

	var spec *addr.AddrSpec
	if i := strings.LastIndexByte(email, '@'); i > -1 {
		spec = addr.NewAddrSpecParsed(email[:i], email[i+1:], email)
	} else {
		spec = addr.NewAddrSpecParsed(email, "", email)
	}

	mb, err := addr.NewMailboxParsed(dn, spec, comment, orig)
	if err != nil {
		mb, err = addr.NewMailboxParsed(dn, spec, "", orig)
		if err != nil {
			return nil
		}
	}
	return mb
}

// Attribute returns the first attribute with the given name along with the
// same errors Get returns.
func (c *Card) Attribute(name string) (*attribute.Attribute, error) {
	as := c.FindAll(name)
	if len(as) == 0 {
		return nil, ErrNoSuchAttribute
	}
	if len(as) > 1 {
		return as[0], ErrManyAttributes
	}
	return as[0], nil
}
