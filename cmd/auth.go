package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/teemow/groupavail/internal/google"
)

func newAuthCmd() *cobra.Command {
	var (
		account string
		code    string
	)

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize read access to Google Calendar",
		Long: `Run the OAuth authorization code flow for a Google account and store the
resulting token. GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set.

Visit the printed URL, grant read-only calendar access and paste the code
from the redirect URL (the "code" query parameter). Tokens are refreshed
automatically afterwards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := google.OAuthConfig()
			if err != nil {
				return err
			}

			store := google.DefaultStore()
			if _, err := store.TokenPath(account); err != nil {
				return err
			}

			if code == "" {
				url := conf.AuthCodeURL("groupavail", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
				fmt.Fprintf(cmd.OutOrStdout(), "Visit this URL in your browser and authorize access:\n\n  %s\n\nAuthorization code: ", url)

				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read authorization code: %w", err)
				}
				code = line
			}
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("authorization code cannot be empty")
			}

			if err := store.Exchange(cmd.Context(), conf, account, code); err != nil {
				return err
			}
			path, _ := store.TokenPath(account)
			fmt.Fprintf(cmd.OutOrStdout(), "Token for account %q saved to %s\n", account, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Account name the token is stored under")
	cmd.Flags().StringVar(&code, "code", "", "Authorization code; prompted for when empty")
	return cmd
}
