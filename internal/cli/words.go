package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parley/parley-go/internal/client"
	"github.com/parley/parley-go/internal/crypto"
	"github.com/parley/parley-go/internal/wordlist"
)

const defaultWords = 3

func newWordsCommand() *cobra.Command {
	var (
		count   int
		seed    string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "words",
		Short: "Print a hyphen-joined passphrase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				count = defaultWords
			}
			if count > crypto.MaxWords {
				count = crypto.MaxWords
			}

			server, _ := cmd.Flags().GetString("server")
			if server != "" {
				phrase, err := client.New(server).RandomWord(cmd.Context(), count)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), phrase)
				return nil
			}

			words, err := wordlist.Default()
			if err != nil {
				return err
			}

			kind := crypto.SourceSystem
			if seed != "" {
				kind = crypto.SourceKeyed
			}
			src, err := crypto.NewSource(kind, seed)
			if err != nil {
				return err
			}

			gen := crypto.NewGenerator(words, src)
			phrase, err := gen.Generate(count)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), phrase)
			if verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d words, %.1f bits of entropy\n", count, gen.Entropy(count))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", defaultWords, "number of words")
	cmd.Flags().StringVar(&seed, "seed", "", "derive words deterministically from this seed (not for real secrets)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print entropy to stderr")

	return cmd
}
