package card_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-vcard/card"
	"github.com/zostay/go-vcard/card/attribute"
	"github.com/zostay/go-vcard/card/transfer"
)

func TestCard_String(t *testing.T) {
	t.Parallel()

	c := card.New()
	c.Append(attribute.NewWithValues("", "FN", "Jane Smith"))
	c.Append(attribute.NewWithValues("", "N", "Smith", "Jane", "", "", ""))
	c.Append(attribute.NewWithValues("", "CATEGORIES", "friends", "work"))
	c.Append(attribute.NewWithValues("", "NOTE", "a;b,c\\d\ne"))

	assert.Equal(t,
		"BEGIN:VCARD\r\n"+
			"VERSION:3.0\r\n"+
			"FN:Jane Smith\r\n"+
			"N:Smith;Jane;;;\r\n"+
			"CATEGORIES:friends,work\r\n"+
			"NOTE:a\\;b\\,c\\\\d\\ne\r\n"+
			"END:VCARD",
		c.String())

	assert.Equal(t, c.String(), string(c.Bytes()))
}

func TestCard_String_Empty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "BEGIN:VCARD\r\nVERSION:3.0\r\nEND:VCARD", card.New().String())
}

func TestCard_String_Version(t *testing.T) {
	t.Parallel()

	c := card.New()
	c.Append(attribute.NewWithValues("", "FN", "x"))
	c.Append(attribute.NewWithValues("", "version", "2.1"))

	s := c.String()
	assert.Equal(t, 1, strings.Count(s, "VERSION"))
	assert.Equal(t, "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:x\r\nEND:VCARD", s)
}

func TestCard_WriteTo(t *testing.T) {
	t.Parallel()

	c := card.Parse(janeCard)

	buf := &bytes.Buffer{}
	n, err := c.WriteTo(buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, c.String(), buf.String())
}

type failWriter struct{ after int }

func (w *failWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, errors.New("write failed")
	}
	w.after--
	return len(p), nil
}

func TestCard_WriteTo_Error(t *testing.T) {
	t.Parallel()

	c := card.Parse(janeCard)
	for i := 0; i < 4; i++ {
		_, err := c.WriteTo(&failWriter{after: i})
		assert.Error(t, err, "fail after %d writes", i)
	}
}

func TestCard_String_Folding(t *testing.T) {
	t.Parallel()

	note := strings.Repeat("Gruß aus Köln, 東京 und \\ überall; ", 10)

	c := card.New()
	c.Append(attribute.NewWithValues("", "NOTE", note))
	out := c.String()

	for _, line := range strings.Split(out, "\r\n") {
		assert.LessOrEqual(t, utf8.RuneCountInString(line), 75, line)
	}

	unfolded := strings.ReplaceAll(out, "\r\n ", "")
	assert.Contains(t, unfolded, "\r\nNOTE:"+attribute.Escape(note)+"\r\n")

	back := card.Parse(out)
	require.NotNil(t, back.Find("NOTE"))
	assert.Equal(t, []string{note}, back.Find("NOTE").Values())
}

func TestCard_String_DoNotFold(t *testing.T) {
	t.Parallel()

	note := strings.Repeat("x", 200)
	c := card.New()
	c.SetFoldEncoding(attribute.DoNotFoldEncoding)
	c.Append(attribute.NewWithValues("", "NOTE", note))

	assert.Equal(t, "BEGIN:VCARD\r\nVERSION:3.0\r\nNOTE:"+note+"\r\nEND:VCARD", c.String())
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	orig := card.Parse(janeCard)
	back := card.Parse(orig.String())

	require.Equal(t, orig.Len(), back.Len())
	for i, a := range orig.Attributes() {
		b := back.Attributes()[i]
		assert.Equal(t, a.Group(), b.Group(), a.Name())
		assert.Equal(t, a.Name(), b.Name())
		assert.Equal(t, a.Values(), b.Values(), a.Name())
		assert.Equal(t, a.Encoding(), b.Encoding(), a.Name())

		require.Len(t, b.Params(), len(a.Params()), a.Name())
		for j, p := range a.Params() {
			assert.Equal(t, p.Name, b.Params()[j].Name)
			assert.Equal(t, p.Values, b.Params()[j].Values)
		}
	}

	// a second round changes nothing
	assert.Equal(t, back.String(), card.Parse(back.String()).String())
}

func TestRoundTrip_Built(t *testing.T) {
	t.Parallel()

	photo := attribute.New("", "PHOTO")
	photo.AddParamWithValue("TYPE", "PNG")
	photo.AddParamWithValue("ENCODING", "b")
	_, err := photo.AddValueDecoded([]byte{0x89, 'P', 'N', 'G', 0x00, 0xff, '\r', '\n'})
	require.NoError(t, err)

	label := attribute.NewWithValues("", "LABEL", "123 Main St.\nSpringfield, IL")
	label.AddParamWithValue("TYPE", "HOME", "POSTAL")
	label.AddParamWithValue("X-SOURCE", "import: phone; legacy")

	c := card.New()
	c.Append(attribute.NewWithValues("", "VERSION", "3.0"))
	c.Append(attribute.NewWithValues("", "FN", "Zoë Ünïcode"))
	c.Append(attribute.NewWithValues("home", "TEL", "+1 555 1212"))
	c.Append(label)
	c.Append(photo)
	c.Append(attribute.NewWithValues("", "CATEGORIES", "a,b", "c;d", ""))
	c.Append(attribute.NewWithValues("", "NOTE", strings.Repeat("long line ", 30)))

	back := card.Parse(c.String())
	require.Equal(t, c.Len(), back.Len())
	for i, a := range c.Attributes() {
		b := back.Attributes()[i]
		assert.Equal(t, a.ContentLine(), b.ContentLine())
	}

	bp := back.Find("PHOTO")
	require.NotNil(t, bp)
	assert.Equal(t, transfer.Base64, bp.Encoding())
	d, err := bp.ValueDecoded()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G', 0x00, 0xff, '\r', '\n'}, d)
}
