package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nfrund/postwall/internal/domain"
	"github.com/nfrund/postwall/internal/modules/wall"
	"github.com/spf13/cobra"
)

var postCmd = &cobra.Command{
	Use:   "post <text>...",
	Short: "Publish a post on your wall",
	Long: `Publish a post with POST /users/{id}/posts and print the refreshed wall.
Arguments are joined with spaces. Blank text is rejected without a request.

Examples:
  postwall-cli post "Hej allihop"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		st := wall.NewState()
		st.Draft = strings.Join(args, " ")

		st, result := wall.NewController(client, nil).Submit(ctx, currentSession(), st)
		switch result {
		case wall.SubmitSkipped:
			return domain.ErrEmptyPost
		case wall.SubmitNotAuthenticated:
			return fmt.Errorf("%w: set --token and --user-id", domain.ErrNotAuthenticated)
		case wall.SubmitFailed:
			return errors.New("post was not published")
		}

		fmt.Fprintln(cmd.ErrOrStderr(), "Published.")
		if !st.Ready() {
			return nil
		}
		return newPrinter(cmd).Wall(st.User, st.Posts)
	},
}

func init() {
	rootCmd.AddCommand(postCmd)
}
