package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/emersion/go-vcard"
	"github.com/spf13/cobra"

	"github.com/zostay/go-vcard/card"
)

var checkCmd = &cobra.Command{
	Use:   "check file",
	Short: "Report problems found while reading a file",
	Long: `Reads every card in the file, reporting each problem the parser
works around. The file is also read with a strict decoder and the number of
cards and properties each found is compared.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		r, err := Check(data, slog.NewTextHandler(cmd.ErrOrStderr(), nil))
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], r)
		if !r.OK() {
			return errors.New("problems found")
		}
		return nil
	},
}

// CheckReport summarizes what was found by Check.
type CheckReport struct {
	Cards      int
	Attributes int
	Problems   int

	StrictCards  int
	StrictFields int
	StrictErr    error
}

// OK returns true if no problems were found and the strict decoder agrees.
func (r *CheckReport) OK() bool {
	return r.Problems == 0 &&
		r.StrictErr == nil &&
		r.Cards == r.StrictCards &&
		r.Attributes == r.StrictFields
}

func (r *CheckReport) String() string {
	s := fmt.Sprintf("%d cards, %d attributes, %d problems; strict decoder: %d cards, %d properties",
		r.Cards, r.Attributes, r.Problems, r.StrictCards, r.StrictFields)
	if r.StrictErr != nil {
		s += fmt.Sprintf(" (%v)", r.StrictErr)
	}
	return s
}

// Check reads every card in data, sending each problem found to h, and then
// reads data again with the strict decoder from github.com/emersion/go-vcard
// to compare the results.
func Check(data []byte, h slog.Handler) (*CheckReport, error) {
	r := &CheckReport{}
	counter := &countingHandler{Handler: h, n: &r.Problems}

	err := decodeEach(bytes.NewReader(data), slog.New(counter), func(_ int, c *card.Card) error {
		r.Cards++
		r.Attributes += c.Len()
		return nil
	})
	if err != nil {
		return r, err
	}

	dec := vcard.NewDecoder(bytes.NewReader(data))
	for {
		vc, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			r.StrictErr = err
			break
		}

		r.StrictCards++
		for _, fs := range vc {
			r.StrictFields += len(fs)
		}
	}

	return r, nil
}

// countingHandler counts the records it passes on.
type countingHandler struct {
	slog.Handler
	n *int
}

func (h *countingHandler) Handle(ctx context.Context, rec slog.Record) error {
	*h.n++
	return h.Handler.Handle(ctx, rec)
}

func (h *countingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &countingHandler{Handler: h.Handler.WithAttrs(attrs), n: h.n}
}

func (h *countingHandler) WithGroup(name string) slog.Handler {
	return &countingHandler{Handler: h.Handler.WithGroup(name), n: h.n}
}
