package command

// root.go defines the festival-cli root command and its global flags.

import (
	"errors"
	"fmt"
	"os"

	"festivalhub/cmd/festival-cli/authentication"
	"festivalhub/cmd/festival-cli/command/client"

	"github.com/spf13/cobra"
)

var (
	apiURL string // global flag for API server URL
	token  string // overrides the stored token when set
)

var rootCmd = &cobra.Command{
	Use:   "festival-cli",
	Short: "festival-cli - FestivalHub command line interface",
	Long: `festival-cli talks to a FestivalHub API server. Use it to:
- log in and keep the token in the OS keyring
- read and acknowledge notifications
- watch the live notification stream over the websocket

Use "festival-cli <command> -h" to see the flags of a command.`,
	SilenceUsage: true,
}

// Execute is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultAPI := os.Getenv("FESTIVALHUB_API")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:8080"
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultAPI, "API server URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "JWT access token (defaults to the stored login)")
}

// credentials returns the stored login, or nil when the user never logged in.
func credentials() (*authentication.StoredCredentials, error) {
	creds, err := authentication.GetTokens()
	if errors.Is(err, authentication.ErrNotLoggedIn) {
		return nil, nil
	}
	return creds, err
}

// newClient returns an API client carrying the --token flag or the stored token.
func newClient() (*client.HTTPClient, error) {
	c := client.NewHTTPClient(apiURL)
	if token != "" {
		c.SetToken(token)
		return c, nil
	}
	creds, err := credentials()
	if err != nil {
		return nil, err
	}
	if creds != nil {
		c.SetToken(creds.AccessToken)
	}
	return c, nil
}
