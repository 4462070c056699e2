package attribute_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-vcard/card/attribute"
)

func TestEscape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, out string
	}{
		{"plain", "plain"},
		{"a\nb", `a\nb`},
		{"a\r\nb", `a\nb`},
		{"a\rb", `a\nb`},
		{"a;b,c\\d", `a\;b\,c\\d`},
		{"Grüße, 世界", `Grüße\, 世界`},
		{"", ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.out, attribute.Escape(tc.in), tc.in)
	}
}

func TestUnescape(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a\nb\nc\rd\re;f,g\\h", attribute.Unescape(`a\nb\Nc\rd\Re\;f\,g\\h`))
	assert.Equal(t, `abc\`, attribute.Unescape(`abc\`))
	assert.Equal(t, `a\qb`, attribute.Unescape(`a\qb`))
	assert.Equal(t, `a\éb`, attribute.Unescape(`a\éb`))
	assert.Equal(t, "Grüße", attribute.Unescape("Grüße"))
}

func TestUnescapeWithLogger(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, nil))

	assert.Equal(t, `a\qb`, attribute.UnescapeWithLogger(`a\qb`, logger))
	assert.Contains(t, buf.String(), "invalid escape")
	assert.Contains(t, buf.String(), "char=q")
}

func TestEscape_Idempotence(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"nothing special",
		"line one\nline two",
		`back\slash`,
		"semi;colon,comma",
		"\\n is not a newline",
		";;;,,,\\\\\n\n",
		"ünïcödé; with, everything\\\n",
	}

	for _, s := range inputs {
		assert.Equal(t, s, attribute.Unescape(attribute.Escape(s)), s)
	}
}
