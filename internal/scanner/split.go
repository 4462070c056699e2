package scanner

import (
	"bufio"
	"bytes"
	"errors"
)

// ErrContinue is a SplitFunc signal that asks MakeSplitFuncExitByAdvance to
// keep going after consuming some input that did not produce a token.
var ErrContinue = errors.New("split func continue")

var endMarker = []byte("END:VCARD")

// MakeSplitFuncExitByAdvance wraps a bufio.SplitFunc so that it may consume
// input without returning a token and without the scanner treating that as the
// end of input. The inner split func signals this by returning ErrContinue.
//
// The wrapper stops as soon as the inner func returns a token, asks for more
// data (advance == 0), runs out of data, or returns a real error. Advances are
// accumulated so the scanner moves past everything that was skipped.
func MakeSplitFuncExitByAdvance(split bufio.SplitFunc) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		totalAdvance := 0
		for {
			advance, token, err := split(data, atEOF)
			if !errors.Is(err, ErrContinue) && (token != nil || advance == 0 || len(data)-advance <= 0 || err != nil) {
				return totalAdvance + advance, token, err
			}

			if errors.Is(err, ErrContinue) && advance == 0 {
				// the inner func made no progress; let the scanner fetch more
				return totalAdvance, nil, nil
			}

			data = data[advance:]
			totalAdvance += advance
		}
	}
}

// lineEnd returns the index just past the line break that ends the line
// starting at i, or -1 if the line is not terminated within data.
func lineEnd(data []byte, i int) int {
	for j := i; j < len(data); j++ {
		switch data[j] {
		case '\n':
			return j + 1
		case '\r':
			if j+1 < len(data) && data[j+1] == '\n' {
				return j + 2
			}
			if j+1 == len(data) {
				// might be the first half of a CRLF
				return -1
			}
			return j + 1
		}
	}
	return -1
}

// isEndLine reports whether line (without its break) is an END:VCARD line.
func isEndLine(line []byte) bool {
	line = bytes.TrimRight(line, " \t\r\n")
	return len(line) == len(endMarker) && bytes.EqualFold(line, endMarker)
}

// ScanCards is a bufio.SplitFunc that returns one vCard per token: everything
// up to and including the next END:VCARD line. Blank lines between cards are
// consumed with ErrContinue, so it should be wrapped by
// MakeSplitFuncExitByAdvance. Trailing text without an END:VCARD line is
// returned as a final token so the parser can decide what to make of it.
func ScanCards(data []byte, atEOF bool) (int, []byte, error) {
	// skip leading blank lines
	if len(data) > 0 {
		blank := 0
		for blank < len(data) {
			end := lineEnd(data, blank)
			if end < 0 {
				break
			}
			if len(bytes.TrimSpace(data[blank:end])) > 0 {
				break
			}
			blank = end
		}
		if blank > 0 {
			return blank, nil, ErrContinue
		}
	}

	for i := 0; i < len(data); {
		end := lineEnd(data, i)
		if end < 0 {
			if atEOF && isEndLine(data[i:]) {
				return len(data), data, nil
			}
			break
		}
		if isEndLine(data[i:end]) {
			return end, data[:end], nil
		}
		i = end
	}

	if !atEOF {
		return 0, nil, nil
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return len(data), nil, nil
	}

	return len(data), data, nil
}
