package attribute

import (
	"errors"
	"io"
	"strings"
	"unicode/utf8"
)

const (
	DefaultFoldIndent = " " // indent placed before folded lines
	DefaultFoldLength = 75  // RFC 2425 section 5.8.1 line length, in code points

	DoNotFold = -1 // we prefer not to fold at all
)

// CRLF is the line break written after every content line.
const CRLF = "\r\n"

var (
	// DefaultFoldEncoding folds lines after 75 code points, indenting each
	// continuation with a single space so that no physical line is longer than
	// 75 code points.
	DefaultFoldEncoding = &FoldEncoding{DefaultFoldIndent, DefaultFoldLength}

	// DoNotFoldEncoding is a FoldEncoding that doesn't perform folding.
	DoNotFoldEncoding = &FoldEncoding{DefaultFoldIndent, DoNotFold}
)

var (
	// ErrFoldIndentSpace is returned by NewFoldEncoding when a non-space/non-tab
	// character is put in the foldIndent setting.
	ErrFoldIndentSpace = errors.New("fold indent may only contains spaces and tabs")

	// ErrFoldIndentTooShort is returned by NewFoldEncoding when the foldIndent
	// is empty.
	ErrFoldIndentTooShort = errors.New("fold indent must contain at least one space or tab")

	// ErrFoldIndentTooLong is returned by NewFoldEncoding when the foldIndent
	// is not shorter than the fold length.
	ErrFoldIndentTooLong = errors.New("fold indent must be shorter than the fold length")

	// ErrFoldLengthTooShort is returned by NewFoldEncoding when the fold length
	// is too short to make progress on each line.
	ErrFoldLengthTooShort = errors.New("fold length cannot be too short")
)

// FoldEncoding provides the tooling for folding vCard content lines.
type FoldEncoding struct {
	foldIndent string
	foldLength int
}

// NewFoldEncoding creates a new FoldEncoding. The foldIndent must be made of
// one or more spaces or tabs and be shorter than foldLength. The foldLength is
// the maximum number of code points on each physical line, including the
// indent on continuation lines. Pass DoNotFold to disable folding.
func NewFoldEncoding(foldIndent string, foldLength int) (*FoldEncoding, error) {
	if ix := strings.IndexFunc(foldIndent, func(c rune) bool { return !isSpace(c) }); ix >= 0 {
		return nil, ErrFoldIndentSpace
	}

	if len(foldIndent) < 1 {
		return nil, ErrFoldIndentTooShort
	}

	if foldLength != DoNotFold {
		if len(foldIndent) >= foldLength {
			return nil, ErrFoldIndentTooLong
		}

		if foldLength < 3 {
			return nil, ErrFoldLengthTooShort
		}
	}

	return &FoldEncoding{foldIndent, foldLength}, nil
}

func isSpace(c rune) bool { return c == ' ' || c == '\t' }

// Unfold removes every fold (a line break followed by one space or tab) from
// the given text.
func (vf *FoldEncoding) Unfold(f string) string {
	var sb strings.Builder
	sb.Grow(len(f))
	for i := 0; i < len(f); i++ {
		n := 0
		switch {
		case strings.HasPrefix(f[i:], CRLF):
			n = 2
		case f[i] == '\n' || f[i] == '\r':
			n = 1
		}

		if n > 0 && i+n < len(f) && isSpace(rune(f[i+n])) {
			i += n
			continue
		}

		sb.WriteByte(f[i])
	}
	return sb.String()
}

// Fold writes the unfolded content line to out, breaking it into physical
// lines that are no longer than the fold length and terminating it with CRLF.
// Breaks are only made between code points, never inside one.
//
// It returns the number of bytes written and any error from the writer.
func (vf *FoldEncoding) Fold(out io.Writer, line string) (int64, error) {
	total := int64(0)
	write := func(s string) error {
		n, err := io.WriteString(out, s)
		total += int64(n)
		return err
	}

	if vf.foldLength == DoNotFold || utf8.RuneCountInString(line) <= vf.foldLength {
		if err := write(line); err != nil {
			return total, err
		}
		return total, write(CRLF)
	}

	width := vf.foldLength
	for {
		cut := byteOffset(line, width)
		if cut >= len(line) {
			break
		}

		if err := write(line[:cut]); err != nil {
			return total, err
		}
		if err := write(CRLF + vf.foldIndent); err != nil {
			return total, err
		}

		line = line[cut:]
		width = vf.foldLength - utf8.RuneCountInString(vf.foldIndent)
	}

	if err := write(line); err != nil {
		return total, err
	}
	return total, write(CRLF)
}

// FoldString returns the folded form of line as a string.
func (vf *FoldEncoding) FoldString(line string) string {
	var sb strings.Builder
	_, _ = vf.Fold(&sb, line)
	return sb.String()
}

// byteOffset returns the byte offset just past the first n code points of s,
// or len(s) if s is shorter than that.
func byteOffset(s string, n int) int {
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}
