package cmd

import (
	"context"

	"github.com/nfrund/postwall/internal/modules/feed"
	"github.com/nfrund/postwall/internal/viewstate"
	"github.com/spf13/cobra"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show the shared feed",
	Long: `Fetch the feed from GET /posts and print it in backend order.

Examples:
  postwall-cli feed
  postwall-cli feed --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		st := feed.NewLoader(client).Load(ctx, currentSession(), viewstate.New())
		if err := stateError(st); err != nil {
			return err
		}
		return newPrinter(cmd).Posts(st.Posts, "")
	},
}

func init() {
	rootCmd.AddCommand(feedCmd)
}
