package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/nfrund/postwall/cmd/postwall-cli/internal/output"
	"github.com/nfrund/postwall/internal/backend"
	"github.com/nfrund/postwall/internal/domain"
	gview "github.com/nfrund/postwall/internal/view"
	"github.com/spf13/cobra"
)

var (
	apiURL       string
	token        string
	userID       string
	outputFormat string
	lang         string
	timeout      time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "postwall-cli",
	Short: "postwall command-line client",
	Long: `postwall-cli reads the feed and your wall from the posts backend and
publishes new posts, using the same bearer-token session as the web client.

Credentials are taken from flags or from the environment:
  API_BASE_URL       Backend base URL (--api-url)
  POSTWALL_TOKEN     Bearer token (--token)
  POSTWALL_USER_ID   User id (--user-id)

Use "postwall-cli [command] --help" for more information about a specific command.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		apiURL = orEnv(apiURL, "API_BASE_URL")
		token = orEnv(token, "POSTWALL_TOKEN")
		userID = orEnv(userID, "POSTWALL_USER_ID")
		if outputFormat != output.FormatTable && outputFormat != output.FormatJSON {
			return fmt.Errorf("unknown output format %q", outputFormat)
		}
		return nil
	},
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend base URL (default $API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token (default $POSTWALL_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&userID, "user-id", "", "User id (default $POSTWALL_USER_ID)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", output.FormatTable, "Output format (table, json)")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "sv", "Language used for timestamps")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
}

func orEnv(v, key string) string {
	if v != "" {
		return v
	}
	return os.Getenv(key)
}

func currentSession() domain.Session {
	return domain.Session{Token: token, UserID: userID}
}

func newClient() (*backend.Client, error) {
	if apiURL == "" {
		return nil, fmt.Errorf("no backend URL: set --api-url or API_BASE_URL")
	}
	return backend.NewClient(apiURL), nil
}

func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), outputFormat, gview.NewTimeFormatter(time.Local).For(lang))
}
