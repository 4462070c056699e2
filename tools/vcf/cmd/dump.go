package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zostay/go-vcard/card"
	"github.com/zostay/go-vcard/card/transfer"
)

var dumpCmd = &cobra.Command{
	Use:   "dump file",
	Short: "Print every attribute of every card in a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return eachCard(args[0], logger(), func(n int, c *card.Card) error {
			return Dump(cmd.OutOrStdout(), n, c)
		})
	},
}

// Dump writes a readable listing of the attributes of the card to w.
func Dump(w io.Writer, n int, c *card.Card) error {
	if _, err := fmt.Fprintf(w, "card %d\n", n); err != nil {
		return err
	}

	for _, a := range c.Attributes() {
		name := a.Name()
		if a.Group() != "" {
			name = a.Group() + "." + name
		}

		ps := make([]string, 0, len(a.Params()))
		for _, p := range a.Params() {
			ps = append(ps, p.String())
		}

		params := ""
		if len(ps) > 0 {
			params = " [" + strings.Join(ps, ";") + "]"
		}

		var value string
		if a.Encoding() == transfer.Base64 {
			ds, err := a.DecodedValues()
			if err != nil {
				value = fmt.Sprintf("<%s: %v>", a.Encoding(), err)
			} else {
				sizes := make([]string, len(ds))
				for i, d := range ds {
					sizes[i] = fmt.Sprintf("%d bytes", len(d))
				}
				value = "<" + a.Encoding().String() + ": " + strings.Join(sizes, ", ") + ">"
			}
		} else {
			vs := make([]string, len(a.Values()))
			for i, v := range a.Values() {
				vs[i] = fmt.Sprintf("%q", v)
			}
			value = strings.Join(vs, ", ")
		}

		if _, err := fmt.Fprintf(w, "  %s%s = %s\n", name, params, value); err != nil {
			return err
		}
	}

	return nil
}
