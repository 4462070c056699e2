package card

import (
	"log/slog"
	"strings"

	"github.com/coreos/go-semver/semver"
	"golang.org/x/text/encoding/unicode"

	"github.com/zostay/go-vcard/card/attribute"
	"github.com/zostay/go-vcard/internal/scanner"
)

// SupportedMajorVersion is the vCard major version this package reads and
// writes.
const SupportedMajorVersion = 3

// WriteVersion is the value of the VERSION line written at the top of every
// card.
const WriteVersion = "3.0"

type parser struct {
	log       *slog.Logger
	ignoreUID bool
}

func (pr *parser) clone() *parser {
	p := *pr
	return &p
}

var defaultParser = &parser{
	log: slog.New(slog.DiscardHandler),
}

// ParseOption refers to options that may be passed to the Parse function to
// modify how the parser works.
type ParseOption func(pr *parser)

// WithLogger is a ParseOption that sends the problems found while parsing to
// the given logger. Every problem is logged at warning level with the physical
// line number it was found on. By default, these problems are discarded.
func WithLogger(logger *slog.Logger) ParseOption {
	return func(pr *parser) {
		if logger == nil {
			logger = slog.New(slog.DiscardHandler)
		}
		pr.log = logger
	}
}

// WithoutUID is a ParseOption that drops any UID attributes while parsing.
// This is useful when importing a card that should be assigned a fresh
// identity.
func WithoutUID() ParseOption {
	return func(pr *parser) { pr.ignoreUID = true }
}

// normalize returns the input as valid UTF-8 with any leading byte order mark
// removed. Invalid bytes are replaced with U+FFFD.
func normalize(text string) string {
	s, err := unicode.UTF8BOM.NewDecoder().String(text)
	if err != nil {
		return strings.ToValidUTF8(strings.TrimPrefix(text, "\ufeff"), "\ufffd")
	}
	return s
}

// Parse reads a single vCard from text. It never fails. Whatever attributes
// could be read are returned in the order they appear, and every problem found
// along the way is reported to the logger set by WithLogger.
//
// The BEGIN:VCARD line is expected first and the END:VCARD line last, but
// either may be missing. Reading stops at the first END line, so anything after
// it is ignored. Lines that cannot be read are skipped. An empty card is
// returned if nothing could be read at all; callers that need at least one
// attribute should check Len.
func Parse(text string, opts ...ParseOption) *Card {
	pr := defaultParser.clone()
	for _, opt := range opts {
		opt(pr)
	}

	return pr.parse(text)
}

func (pr *parser) parse(text string) *Card {
	c := New()
	cur := scanner.NewCursor(normalize(text))

	a := attribute.Read(cur, pr.log)
	if a == nil || a.Group() != "" || !a.Is(attribute.Begin) {
		pr.log.Warn("vCard began without BEGIN:VCARD", slog.Int("line", 1))
	}

	if a != nil && a.Is(attribute.Begin) {
		a = nil
	}

	ended := false
	for {
		if a != nil {
			if a.Is(attribute.End) {
				ended = a.Group() == ""
				break
			}
			pr.add(c, a)
		}

		if cur.Done() {
			break
		}

		a = attribute.Read(cur, pr.log)
	}

	if !ended {
		pr.log.Warn("vCard ended without END:VCARD", slog.Int("line", cur.Line()))
	}

	pr.checkVersion(c)

	return c
}

func (pr *parser) add(c *Card, a *attribute.Attribute) {
	if pr.ignoreUID && a.Is(attribute.UID) {
		return
	}
	c.Append(a)
}

// checkVersion reports a VERSION attribute that does not name a 3.x vCard.
// The card is still returned and is always written back as WriteVersion.
func (pr *parser) checkVersion(c *Card) {
	a := c.Find(attribute.Version)
	if a == nil {
		return
	}

	v, _ := a.Value()
	sv, err := ParseVersion(v)
	if err != nil {
		pr.log.Warn("unable to parse vCard VERSION", "version", v, "error", err)
		return
	}

	if sv.Major != SupportedMajorVersion {
		pr.log.Warn("unsupported vCard VERSION, reading as 3.0", "version", v)
	}
}

// ParseVersion parses the value of a VERSION attribute. vCard versions are
// usually given as "major.minor", so missing parts are filled in with zero
// before the value is parsed as a semantic version.
func ParseVersion(v string) (*semver.Version, error) {
	v = strings.TrimSpace(v)
	parts := strings.Split(v, ".")
	for len(parts) < 3 {
		parts = append(parts, "0")
	}
	return semver.NewVersion(strings.Join(parts, "."))
}
