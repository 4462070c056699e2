package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zostay/go-vcard/card"
)

var addrsCmd = &cobra.Command{
	Use:   "addrs file",
	Short: "Print the email addresses of every card in a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return eachCard(args[0], logger(), func(_ int, c *card.Card) error {
			return Addrs(cmd.OutOrStdout(), c)
		})
	},
}

// Addrs writes the email addresses of the card to w, one per line, using the
// formatted name of the card as the display name. Cards without any EMAIL
// attributes are skipped.
func Addrs(w io.Writer, c *card.Card) error {
	al, err := c.GetAddressList(card.Email)
	if errors.Is(err, card.ErrNoSuchAttribute) {
		return nil
	} else if err != nil {
		return err
	}

	for _, a := range al {
		line := a.Address()
		if named, ok := a.(interface{ DisplayName() string }); ok && named.DisplayName() != "" {
			line = fmt.Sprintf("%s <%s>", named.DisplayName(), a.Address())
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}
