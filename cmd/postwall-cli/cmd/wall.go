package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/nfrund/postwall/internal/backend"
	"github.com/nfrund/postwall/internal/domain"
	"github.com/nfrund/postwall/internal/modules/wall"
	"github.com/nfrund/postwall/internal/viewstate"
	"github.com/spf13/cobra"
)

var wallCmd = &cobra.Command{
	Use:   "wall",
	Short: "Show your profile and posts",
	Long: `Fetch GET /users/{id}/with-posts for the signed-in user and print the
profile followed by the posts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		st := wall.NewController(client, nil).Fetch(ctx, currentSession(), wall.NewState())
		if err := stateError(st.State); err != nil {
			return err
		}
		return newPrinter(cmd).Wall(st.User, st.Posts)
	},
}

func init() {
	rootCmd.AddCommand(wallCmd)
}

// stateError turns a finished fetch into a command error.
func stateError(st viewstate.State) error {
	switch st.Outcome {
	case viewstate.OutcomeNotAuthenticated:
		return fmt.Errorf("%w: set --token and --user-id", domain.ErrNotAuthenticated)
	case viewstate.OutcomeFailed:
		if backend.IsStatus(st.Err, http.StatusUnauthorized) {
			return fmt.Errorf("%w: token rejected: %w", domain.ErrNotAuthenticated, st.Err)
		}
		return st.Err
	case viewstate.OutcomeCanceled:
		return errors.New("request canceled")
	}
	return nil
}
