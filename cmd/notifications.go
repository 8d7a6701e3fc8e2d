package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/hashboard/internal/notify"
	"github.com/abhisek/hashboard/internal/store"
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"alerts"},
	Short:   "Inspect the notification log",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged notifications, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		kindFilter, _ := cmd.Flags().GetString("kind")

		var want notify.Kind
		if kindFilter != "" {
			k, err := notify.ParseKind(kindFilter)
			if err != nil {
				return err
			}
			want = k
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		events, err := e.store.EventRepo().QueryNotificationEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return err
		}

		var rows [][]string
		for _, ev := range events {
			if want != "" && notify.Kind(ev.Kind) != want {
				continue
			}
			rows = append(rows, []string{
				ev.Timestamp.Local().Format("2006-01-02 15:04"),
				notify.Kind(ev.Kind).Icon() + " " + ev.Kind,
				ev.Title,
				ev.Message,
			})
		}
		if len(rows) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No notifications.")
			return nil
		}
		printTable(cmd.OutOrStdout(), []string{"TIME", "KIND", "TITLE", "MESSAGE"}, rows)
		return nil
	},
}

var notificationsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the notification log",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		n, err := e.store.EventRepo().ClearNotificationEvents(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d notifications.\n", n)
		return nil
	},
}

func init() {
	notificationsListCmd.Flags().Int("limit", 50, "Maximum number of notifications to show")
	notificationsListCmd.Flags().String("kind", "", "Only show one kind: success, error, warning or info")
	notificationsCmd.AddCommand(notificationsListCmd, notificationsClearCmd)
}
