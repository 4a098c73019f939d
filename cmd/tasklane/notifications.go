package main

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"tasklane/internal/api"
	"tasklane/internal/config"
)

func newNotificationsCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	var (
		unread bool
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "List your notifications, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if unread {
				query.Set("status", "unread")
			}
			if limit > 0 {
				query.Set("limit", strconv.Itoa(limit))
			}

			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.ListNotifications(cmd.Context(), query)
				if err != nil {
					return err
				}
				if out.structured() {
					return out.write(resp)
				}
				if len(resp.Notifications) == 0 {
					return writePlain("no notifications\n")
				}
				for _, n := range resp.Notifications {
					if err := writePlain("%s [%s] %s %s (%s)\n", formatTime(n.CreatedAt), n.Status, n.EventType, n.Message, n.ReferenceID); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&unread, "unread", false, "only unread notifications")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum notifications (default from server config)")
	return cmd
}
