package command

// listen.go streams live websocket events to the terminal.

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"festivalhub/cmd/festival-cli/command/client"

	"github.com/spf13/cobra"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Watch live notifications and list updates",
	Long: `Connects to the websocket, authenticates and prints every pushed event until interrupted.
The identity comes from the stored login unless --role is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		identity := client.Identity{Token: token}

		role, _ := cmd.Flags().GetString("role")
		user, _ := cmd.Flags().GetString("user")
		if role != "" {
			identity.Role, identity.UserID = role, user
		} else {
			creds, err := credentials()
			if err != nil {
				return err
			}
			if creds == nil {
				return fmt.Errorf("not logged in, run 'festival-cli auth login' first or pass --role")
			}
			identity.Role, identity.UserID = creds.Role, creds.UserID
			if identity.Token == "" {
				identity.Token = creds.AccessToken
			}
		}

		wsURL, err := client.WebsocketURL(apiURL)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "🔌 Connecting to %s as %s...\n", wsURL, identity.Role)
		keepAlive, _ := cmd.Flags().GetDuration("keepalive")
		return client.Listen(ctx, wsURL, identity, cmd.OutOrStdout(), keepAlive)
	},
}

func init() {
	rootCmd.AddCommand(listenCmd)

	listenCmd.Flags().String("role", "", "Role to authenticate as (admin, vendor or user)")
	listenCmd.Flags().String("user", "", "User id to authenticate as")
	listenCmd.Flags().Duration("keepalive", 30*time.Second, "Interval between ping frames")
}
