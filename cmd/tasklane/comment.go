package main

import (
	"strings"

	"github.com/spf13/cobra"

	"tasklane/internal/api"
	"tasklane/internal/config"
)

func newCommentCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Discuss tasks",
	}
	cmd.AddCommand(newCommentAddCmd(cfg, out), newCommentListCmd(cfg, out))
	return cmd
}

func newCommentAddCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <task-id> <text>",
		Short: "Comment on a task and notify its assignees",
		Args:  requireAtLeastArgs(2, "task id and comment text are required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.AddComment(cmd.Context(), args[0], strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				return writeActivity(out, resp)
			})
		},
	}
}

func newCommentListCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list <task-id>",
		Short: "List a task's comments, oldest first",
		Args:  requireExactlyArgs(1, "task id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				comments, err := client.ListComments(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if out.structured() {
					return out.write(comments)
				}
				for _, c := range comments {
					if err := writePlain("%s %s: %s\n", formatTime(c.CreatedAt), c.UserID, c.Body); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
