package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zostay/go-vcard/card"
	_ "github.com/zostay/go-vcard/card/attribute/encoding"
)

var (
	rootCmd = &cobra.Command{
		Use:   "vcf",
		Short: "Tools for inspecting vCard files",
	}

	verbose bool
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "report problems found while parsing to stderr")

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(addrsCmd)
	rootCmd.AddCommand(checkCmd)
}

func Execute() {
	err := rootCmd.Execute()
	cobra.CheckErr(err)
}

// logger returns the logger parse problems are sent to.
func logger() *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// eachCard calls fn with every card found in the named file. Chunks of the
// file without any readable attributes are skipped.
func eachCard(path string, logger *slog.Logger, fn func(int, *card.Card) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return decodeEach(f, logger.With("file", path), fn)
}

func decodeEach(r io.Reader, logger *slog.Logger, fn func(int, *card.Card) error) error {
	dec := card.NewDecoder(r, card.WithParseOptions(card.WithLogger(logger)))
	cs, err := dec.DecodeAll()
	for i, c := range cs {
		if ferr := fn(i+1, c); ferr != nil {
			return ferr
		}
	}
	return err
}
