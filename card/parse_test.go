package card_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-vcard/card"
	_ "github.com/zostay/go-vcard/card/attribute/encoding"
	"github.com/zostay/go-vcard/card/transfer"
)

const janeCard = "BEGIN:VCARD\r\n" +
	"VERSION:3.0\r\n" +
	"N:Smith;Jane;;Dr.;\r\n" +
	"FN:Jane Smith\r\n" +
	"ORG:Example\\, Inc.;Research\r\n" +
	"item1.EMAIL;TYPE=INTERNET,pref:jane@example.com\r\n" +
	"item1.X-ABLabel:_$!<Work>!$_\r\n" +
	"TEL;TYPE=CELL:+1 555 1212\r\n" +
	"ADR;TYPE=HOME:;;123 Main St.;Springfield;IL;62701;USA\r\n" +
	"NOTE:Met at the conference\\, talked about\\nvCards and fol\r\n" +
	" ding.\r\n" +
	"CATEGORIES:friends,work\r\n" +
	"PHOTO;ENCODING=b;TYPE=JPEG:aGVsbG8=\r\n" +
	"BDAY:1980-04-15\r\n" +
	"UID:urn:uuid:c6a3f08e-2b8a-4a43-bb51-4a8b4bd2e9e2\r\n" +
	"END:VCARD\r\n"

func parseWithLog(text string, opts ...card.ParseOption) (*card.Card, string) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, nil))
	c := card.Parse(text, append(opts, card.WithLogger(logger))...)
	return c, buf.String()
}

func TestParse(t *testing.T) {
	t.Parallel()

	c, log := parseWithLog(janeCard)
	assert.Empty(t, log)
	require.Equal(t, 13, c.Len())

	assert.Equal(t, "VERSION", c.Attributes()[0].Name())
	assert.Equal(t, "UID", c.Attributes()[12].Name())

	n := c.Find("N")
	require.NotNil(t, n)
	assert.Equal(t, []string{"Smith", "Jane", "", "Dr.", ""}, n.Values())

	org := c.Find("ORG")
	require.NotNil(t, org)
	assert.Equal(t, []string{"Example, Inc.", "Research"}, org.Values())

	email := c.Find("EMAIL")
	require.NotNil(t, email)
	assert.Equal(t, "item1", email.Group())
	assert.True(t, email.HasType("pref"))

	note := c.Find("NOTE")
	require.NotNil(t, note)
	assert.Equal(t, []string{"Met at the conference, talked about\nvCards and folding."}, note.Values())

	cats := c.Find("CATEGORIES")
	require.NotNil(t, cats)
	assert.Equal(t, []string{"friends", "work"}, cats.Values())

	photo := c.Find("PHOTO")
	require.NotNil(t, photo)
	assert.Equal(t, transfer.Base64, photo.Encoding())
	d, err := photo.ValueDecoded()
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), d)
}

func TestParse_MissingFraming(t *testing.T) {
	t.Parallel()

	c, log := parseWithLog("FN:Jane Smith")
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "FN", c.Attributes()[0].Name())
	assert.Equal(t, []string{"Jane Smith"}, c.Attributes()[0].Values())
	assert.Contains(t, log, "began without BEGIN:VCARD")
	assert.Contains(t, log, "ended without END:VCARD")
	assert.Contains(t, log, "level=WARN")
}

func TestParse_Resilience(t *testing.T) {
	t.Parallel()

	c, log := parseWithLog("FOO;=bar:baz")
	assert.Equal(t, 0, c.Len())
	assert.Contains(t, log, "parameter without a name")

	c, _ = parseWithLog("BEGIN:VCARD\r\nFOO;=bar:baz\r\nFN:ok\r\nEND:VCARD\r\n")
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "FN", c.Attributes()[0].Name())

	c, _ = parseWithLog("")
	assert.Equal(t, 0, c.Len())

	c, _ = parseWithLog("\x00\x01 garbage ;;; :::\r\n\r\n")
	assert.Equal(t, 0, c.Len())
}

func TestParse_Categories(t *testing.T) {
	t.Parallel()

	c := card.Parse("CATEGORIES:a,b,c")
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "CATEGORIES", c.Attributes()[0].Name())
	assert.Equal(t, []string{"a", "b", "c"}, c.Attributes()[0].Values())

	c = card.Parse("FN:a,b,c")
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "FN", c.Attributes()[0].Name())
	assert.Equal(t, []string{"a,b,c"}, c.Attributes()[0].Values())
}

func TestParse_QuotedPrintable(t *testing.T) {
	t.Parallel()

	c := card.Parse("NOTE;ENCODING=QUOTED-PRINTABLE:a=0Ab")
	require.Equal(t, 1, c.Len())
	assert.Equal(t, []string{"a\nb"}, c.Attributes()[0].Values())

	// the kind of thing older phones export
	c = card.Parse("BEGIN:VCARD\r\n" +
		"VERSION:2.1\r\n" +
		"N;CHARSET=ISO-8859-1;ENCODING=QUOTED-PRINTABLE:M=FCller;J=F6rg;;;\r\n" +
		"NOTE;ENCODING=QUOTED-PRINTABLE:first line=0D=0A=\r\n" +
		"second line\r\n" +
		"END:VCARD\r\n")
	require.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"Müller", "Jörg", "", "", ""}, c.Find("N").Values())
	assert.Equal(t, []string{"first line\r\nsecond line"}, c.Find("NOTE").Values())
}

func TestParse_StopsAtEnd(t *testing.T) {
	t.Parallel()

	c, log := parseWithLog("BEGIN:VCARD\nFN:a\nEND:VCARD\nFN:b\n")
	require.Equal(t, 1, c.Len())
	assert.Equal(t, []string{"a"}, c.Attributes()[0].Values())
	assert.Empty(t, log)
}

func TestParse_LineEndings(t *testing.T) {
	t.Parallel()

	for _, lb := range []string{"\r\n", "\n", "\r"} {
		c, log := parseWithLog("BEGIN:VCARD" + lb + "FN:a" + lb + "NOTE:b" + lb + " c" + lb + "END:VCARD")
		require.Equal(t, 2, c.Len(), "%q", lb)
		assert.Equal(t, []string{"bc"}, c.Find("NOTE").Values())
		assert.Empty(t, log)
	}
}

func TestParse_Normalize(t *testing.T) {
	t.Parallel()

	c, log := parseWithLog("\ufeffBEGIN:VCARD\r\nFN:a\xffb\r\nEND:VCARD\r\n")
	require.Equal(t, 1, c.Len())
	assert.Equal(t, []string{"a\ufffdb"}, c.Find("FN").Values())
	assert.Empty(t, log)
}

func TestParse_WithoutUID(t *testing.T) {
	t.Parallel()

	c := card.Parse(janeCard, card.WithoutUID())
	assert.Equal(t, 12, c.Len())
	assert.Nil(t, c.Find("UID"))

	c = card.Parse("UID:first\r\nFN:x\r\n", card.WithoutUID())
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "FN", c.Attributes()[0].Name())
}

func TestParse_Version(t *testing.T) {
	t.Parallel()

	_, log := parseWithLog("BEGIN:VCARD\r\nVERSION:2.1\r\nFN:x\r\nEND:VCARD\r\n")
	assert.Contains(t, log, "unsupported vCard VERSION")
	assert.Contains(t, log, "version=2.1")

	_, log = parseWithLog("BEGIN:VCARD\r\nVERSION:three\r\nFN:x\r\nEND:VCARD\r\n")
	assert.Contains(t, log, "unable to parse vCard VERSION")

	_, log = parseWithLog("BEGIN:VCARD\r\nVERSION:3.0\r\nFN:x\r\nEND:VCARD\r\n")
	assert.Empty(t, log)
}

func TestParseVersion(t *testing.T) {
	t.Parallel()

	v, err := card.ParseVersion("3.0")
	require.NoError(t, err)
	assert.Equal(t, int64(3), v.Major)
	assert.Equal(t, int64(0), v.Minor)

	v, err = card.ParseVersion(" 4 ")
	require.NoError(t, err)
	assert.Equal(t, int64(4), v.Major)

	_, err = card.ParseVersion("")
	assert.Error(t, err)
}
