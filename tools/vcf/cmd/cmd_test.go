package cmd_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-vcard/card"
	"github.com/zostay/go-vcard/tools/vcf/cmd"
)

const janeCard = "BEGIN:VCARD\r\n" +
	"VERSION:3.0\r\n" +
	"FN:Jane Smith\r\n" +
	"item1.EMAIL;TYPE=INTERNET:jane@example.com\r\n" +
	"PHOTO;ENCODING=b:aGVsbG8=\r\n" +
	"END:VCARD\r\n"

func TestDump(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	err := cmd.Dump(buf, 1, card.Parse(janeCard))
	require.NoError(t, err)

	assert.Equal(t,
		"card 1\n"+
			"  VERSION = \"3.0\"\n"+
			"  FN = \"Jane Smith\"\n"+
			"  item1.EMAIL [TYPE=INTERNET] = \"jane@example.com\"\n"+
			"  PHOTO = <b: 5 bytes>\n",
		buf.String())
}

func TestAddrs(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	err := cmd.Addrs(buf, card.Parse(janeCard))
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith <jane@example.com>\n", buf.String())

	buf.Reset()
	err = cmd.Addrs(buf, card.Parse("FN:No Email\r\n"))
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestCheck(t *testing.T) {
	t.Parallel()

	log := &bytes.Buffer{}
	r, err := cmd.Check([]byte(janeCard+janeCard), slog.NewTextHandler(log, nil))
	require.NoError(t, err)
	assert.Equal(t, 2, r.Cards)
	assert.Equal(t, 8, r.Attributes)
	assert.Equal(t, 0, r.Problems)
	assert.Empty(t, log.String())

	log.Reset()
	r, err = cmd.Check([]byte("FN:Jane\r\nFOO;=bar:baz\r\n"), slog.NewTextHandler(log, nil))
	require.NoError(t, err)
	assert.Equal(t, 1, r.Cards)
	assert.Equal(t, 1, r.Attributes)
	assert.Equal(t, 3, r.Problems)
	assert.Error(t, r.StrictErr)
	assert.False(t, r.OK())
	assert.Contains(t, log.String(), "parameter without a name")
	assert.Contains(t, r.String(), "3 problems")
}
