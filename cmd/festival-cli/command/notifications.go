package command

// notifications.go lists and acknowledges notifications.

import (
	"fmt"
	"text/tabwriter"

	"festivalhub/cmd/festival-cli/command/client"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var scopeRole, scopeUser string

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notif"},
	Short:   "Read and acknowledge notifications",
	Long: `Without a token the --role and --user flags choose whose notifications are read.
With a token the server uses the identity inside it.`,
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		skip, _ := cmd.Flags().GetInt("skip")

		items, err := c.ListNotifications(cmd.Context(), scope(), limit, skip)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("No notifications.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTIME\tTYPE\tMESSAGE")
		for _, n := range items {
			marker := ""
			if !n.Read {
				marker = color.New(color.Bold).Sprint("● ")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s%s\n", n.ID, n.Timestamp.Local().Format("2006-01-02 15:04"), n.Type, marker, n.Message)
		}
		return w.Flush()
	},
}

var notificationsUnreadCmd = &cobra.Command{
	Use:   "unread",
	Short: "Show the unread count",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		count, err := c.UnreadCount(cmd.Context(), scope())
		if err != nil {
			return err
		}
		fmt.Printf("%d unread\n", count)
		return nil
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark one notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		if _, err := c.MarkRead(cmd.Context(), args[0], scope()); err != nil {
			return err
		}
		fmt.Println("✓ Marked as read.")
		return nil
	},
}

var notificationsReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every notification in scope as read",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		updated, err := c.MarkAllRead(cmd.Context(), scope())
		if err != nil {
			return err
		}
		fmt.Printf("✓ %d marked as read.\n", updated)
		return nil
	},
}

func scope() client.Scope {
	return client.Scope{Role: scopeRole, UserID: scopeUser}
}

func init() {
	notificationsCmd.AddCommand(notificationsListCmd, notificationsUnreadCmd, notificationsReadCmd, notificationsReadAllCmd)
	rootCmd.AddCommand(notificationsCmd)

	notificationsCmd.PersistentFlags().StringVar(&scopeRole, "role", "", "Role scope when no token is used")
	notificationsCmd.PersistentFlags().StringVar(&scopeUser, "user", "", "User id scope when no token is used")

	notificationsListCmd.Flags().IntP("limit", "l", 20, "Maximum notifications to show")
	notificationsListCmd.Flags().Int("skip", 0, "Notifications to skip")
}
