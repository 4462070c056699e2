// Package interop converts between cards from this module and cards from
// github.com/emersion/go-vcard, which represents a card as a map from
// property name to fields.
//
// The emersion Field.Value holds a value section with backslashes, line breaks
// and commas already unescaped. Semicolons stay escaped because they separate
// the components of structured values, and CATEGORIES values are joined by
// plain commas. Incoming fields are escaped again and read with the same
// content line reader used for vCard text, so the usual rules for ENCODING,
// CHARSET, and CATEGORIES apply.
package interop

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/emersion/go-vcard"

	"github.com/zostay/go-vcard/card"
	"github.com/zostay/go-vcard/card/attribute"
	"github.com/zostay/go-vcard/card/transfer"
	"github.com/zostay/go-vcard/internal/scanner"
)

// ToCard converts c into an emersion card. The VERSION field is always set to
// the version this module writes, whatever the card holds.
func ToCard(c *card.Card) vcard.Card {
	vc := make(vcard.Card, c.Len()+1)
	vc.Add(attribute.Version, &vcard.Field{Value: card.WriteVersion})

	for _, a := range c.Attributes() {
		if a.Is(attribute.Version) {
			continue
		}
		vc.Add(strings.ToUpper(a.Name()), ToField(a))
	}

	return vc
}

// ToField converts a single attribute into an emersion field.
func ToField(a *attribute.Attribute) *vcard.Field {
	f := &vcard.Field{
		Value: fieldValue(a),
		Group: a.Group(),
	}

	if len(a.Params()) == 0 && a.Encoding() != transfer.Base64 {
		return f
	}

	f.Params = make(vcard.Params, len(a.Params())+1)
	if a.Encoding() == transfer.Base64 {
		f.Params[attribute.ParamEncoding] = []string{a.Encoding().String()}
	}
	for _, p := range a.Params() {
		k := strings.ToUpper(p.Name)
		f.Params[k] = append(f.Params[k], p.Values...)
	}

	return f
}

var semicolons = strings.NewReplacer(";", `\;`)

// fieldValue joins the values of a in the form emersion keeps in
// Field.Value.
func fieldValue(a *attribute.Attribute) string {
	sep := ";"
	if a.Is(attribute.Categories) {
		sep = ","
	}

	vs := make([]string, len(a.Values()))
	for i, v := range a.Values() {
		vs[i] = semicolons.Replace(v)
	}
	return strings.Join(vs, sep)
}

var (
	// valueEscaper restores the escapes emersion removes from a value. An
	// escaped semicolon is left alone.
	valueEscaper = strings.NewReplacer(
		`\;`, `\;`,
		`\`, `\\`,
		"\r\n", `\n`,
		"\n", `\n`,
		"\r", `\n`,
		",", `\,`,
	)

	// categoriesEscaper is valueEscaper for CATEGORIES, where a comma
	// separates values.
	categoriesEscaper = strings.NewReplacer(
		`\;`, `\;`,
		`\`, `\\`,
		"\r\n", `\n`,
		"\n", `\n`,
		"\r", `\n`,
	)
)

// FromCard converts an emersion card into a card. Property names are sorted so
// the result does not depend on map order, except that the fields of each
// property keep their order. Fields that cannot be read are reported to the
// logger, which may be nil, and skipped. Any VERSION field is dropped.
func FromCard(vc vcard.Card, logger *slog.Logger) *card.Card {
	names := make([]string, 0, len(vc))
	for k := range vc {
		if strings.EqualFold(k, attribute.Version) {
			continue
		}
		names = append(names, k)
	}
	sort.Strings(names)

	c := card.New()
	for _, k := range names {
		for _, f := range vc[k] {
			c.Append(FromField(k, f, logger))
		}
	}

	return c
}

// FromField converts a single emersion field with the given property name
// into an attribute. It returns nil if the field cannot be read, in which case
// the reason is reported to the logger, which may be nil.
func FromField(name string, f *vcard.Field, logger *slog.Logger) *attribute.Attribute {
	if f == nil {
		return nil
	}

	var sb strings.Builder
	if f.Group != "" {
		sb.WriteString(f.Group)
		sb.WriteByte('.')
	}
	sb.WriteString(name)

	pnames := make([]string, 0, len(f.Params))
	for k := range f.Params {
		pnames = append(pnames, k)
	}
	sort.Strings(pnames)

	for _, k := range pnames {
		sb.WriteByte(';')
		sb.WriteString(attribute.NewParam(k, f.Params[k]...).String())
	}

	sb.WriteByte(':')
	if strings.EqualFold(name, attribute.Categories) {
		sb.WriteString(categoriesEscaper.Replace(f.Value))
	} else {
		sb.WriteString(valueEscaper.Replace(f.Value))
	}

	return attribute.Read(scanner.NewCursor(sb.String()), logger)
}
