package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zostay/go-vcard/card"
	_ "github.com/zostay/go-vcard/card/attribute/encoding"
)

var oneCmd = &cobra.Command{
	Use:   "one file",
	Short: "Shows the diff of the cards in a single file after a round-trip",
	Args:  cobra.ExactArgs(1),
	RunE:  RunOne,
}

func init() {
	rootCmd.AddCommand(oneCmd)
}

func RunOne(cmd *cobra.Command, args []string) error {
	path := args[0]
	vcfFile, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = vcfFile.Close() }()

	orig, err := io.ReadAll(vcfFile)
	if err != nil {
		return err
	}

	rt, err := RoundTrip(string(orig))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "path = %s\n", path)
	fmt.Fprint(cmd.OutOrStdout(), Diff(string(orig), rt))
	return nil
}

// RoundTrip parses every card in the input and writes them back out, one
// after the other, each followed by a line break.
func RoundTrip(in string) (string, error) {
	var sb strings.Builder
	dec := card.NewDecoder(strings.NewReader(in))
	for {
		c, err := dec.Decode()
		switch {
		case errors.Is(err, io.EOF):
			return sb.String(), nil
		case errors.Is(err, card.ErrNoAttributes):
			continue
		case err != nil:
			return sb.String(), err
		}

		if _, err := c.WriteTo(&sb); err != nil {
			return sb.String(), err
		}
		sb.WriteString("\r\n")
	}
}

// Diff returns a line-by-line diff of a and b. Unchanged lines are prefixed
// with a space, removed lines with "-" and added lines with "+". Line endings
// are shown so that CRLF changes are visible.
func Diff(a, b string) string {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(showBreaks(a), showBreaks(b))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}

		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
		}
	}

	return sb.String()
}

// showBreaks makes every line break visible and splits the text into LF
// terminated lines.
func showBreaks(s string) string {
	return strings.NewReplacer("\r\n", "\\r\\n\n", "\r", "\\r\n", "\n", "\\n\n").Replace(s)
}
