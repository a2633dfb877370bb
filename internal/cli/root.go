package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the phrase command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "phrase",
		Short:         "Generate memorable passphrases and room feature queries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("server", "", "base URL of a running API; computed locally when empty")

	root.AddCommand(newWordsCommand(), newRoomCommand())
	return root
}
