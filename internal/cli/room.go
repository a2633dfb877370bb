package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parley/parley-go/internal/client"
	"github.com/parley/parley-go/internal/room"
)

func newRoomCommand() *cobra.Command {
	var sel room.Selection

	cmd := &cobra.Command{
		Use:   "room",
		Short: "Print the query string selecting room features",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := room.Encode(sel)

			server, _ := cmd.Flags().GetString("server")
			if server != "" {
				var err error
				query, err = client.New(server).Room(cmd.Context(), sel)
				if err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), query)
			return nil
		},
	}

	cmd.Flags().BoolVar(&sel.Chat, room.FeatureChat, false, "enable text chat")
	cmd.Flags().BoolVar(&sel.Audio, room.FeatureAudio, false, "enable audio")
	cmd.Flags().BoolVar(&sel.Video, room.FeatureVideo, false, "enable video")

	return cmd
}
