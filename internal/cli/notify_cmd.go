package cli

import (
	"fmt"

	"github.com/alexanderramin/officeflow/internal/cli/formatter"
	"github.com/alexanderramin/officeflow/internal/domain"
	"github.com/spf13/cobra"
)

func newNotifyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notify",
		Aliases: []string{"inbox"},
		Short:   "Read notifications sent to position levels",
	}

	cmd.AddCommand(
		newNotifyListCmd(app),
		newNotifyReadCmd(app),
	)

	return cmd
}

func newNotifyListCmd(app *App) *cobra.Command {
	var unreadOnly bool
	cmd := &cobra.Command{
		Use:   "list LEVEL",
		Short: "List notifications for a position level, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := domain.ParsePositionLevel(args[0])
			if err != nil {
				return err
			}
			records, err := app.Notifications.GetNotificationsFor(cmd.Context(), level)
			if err != nil {
				return err
			}
			if unreadOnly {
				unread := records[:0]
				for _, n := range records {
					if !n.IsRead {
						unread = append(unread, n)
					}
				}
				records = unread
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNotifications(level, records))
			return nil
		},
	}
	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "only show unread notifications")
	return cmd
}

func newNotifyReadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "read ID...",
		Short: "Mark notifications as read",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range args {
				if err := app.Notifications.MarkRead(cmd.Context(), id); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %d notification(s) read\n", len(args))
			return nil
		},
	}
}
