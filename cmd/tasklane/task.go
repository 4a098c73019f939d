package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tasklane/internal/api"
	"tasklane/internal/config"
	"tasklane/internal/models"
)

func newTaskCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Create, inspect, and advance tasks",
	}
	cmd.AddCommand(
		newTaskCreateCmd(cfg, out),
		newTaskListCmd(cfg, out),
		newTaskShowCmd(cfg, out),
		newTaskAdvanceCmd(cfg, out),
		newTaskProgressCmd(cfg, out),
		newTaskHistoryCmd(cfg, out),
	)
	return cmd
}

func newTaskCreateCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	flags := &taskFlags{}

	cmd := &cobra.Command{
		Use:   "create <project-id> <title>",
		Short: "Create a task in a project",
		Args:  requireAtLeastArgs(2, "project id and title are required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(cmd, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.CreateTask(cmd.Context(), args[0], req)
				if err != nil {
					return err
				}
				return writeActivity(out, resp)
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func newTaskListCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list <project-id>",
		Short: "List the tasks of a project",
		Args:  requireExactlyArgs(1, "project id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				tasks, err := client.ListProjectTasks(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if out.structured() {
					return out.write(tasks)
				}
				return writeTaskList(tasks)
			})
		},
	}
}

func newTaskShowCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show task details",
		Args:  requireExactlyArgs(1, "task id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				task, err := client.GetTask(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if out.structured() {
					return out.write(task)
				}
				return writeTaskDetail(task)
			})
		},
	}
}

func newTaskAdvanceCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	var commit string

	cmd := &cobra.Command{
		Use:   "advance <task-id>",
		Short: "Move a task to its next status",
		Long: "Move a task to its next status: todo -> in_progress -> resolved -> closed -> todo.\n" +
			"--commit takes a commit hash or commit URL and is recorded when the task is resolved.",
		Args: requireExactlyArgs(1, "task id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.AdvanceTask(cmd.Context(), args[0], api.AdvanceRequest{Commit: commit})
				if err != nil {
					return err
				}
				return writeActivity(out, resp)
			})
		},
	}

	cmd.Flags().StringVar(&commit, "commit", "", "commit hash or URL to record on resolve")
	return cmd
}

func newTaskProgressCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "progress <task-id> <percent>",
		Short: "Set how far along a leaf task is",
		Args:  requireExactlyArgs(2, "task id and percent are required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			percent, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(args[1]), "%"))
			if err != nil || !models.IsValidPercentDone(percent) {
				return fmt.Errorf("percent must be an integer between 0 and 100")
			}
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.UpdateProgress(cmd.Context(), args[0], percent)
				if err != nil {
					return err
				}
				return writeActivity(out, resp)
			})
		},
	}
}

func newTaskHistoryCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history <task-id>",
		Short: "Show a task's change history",
		Args:  requireExactlyArgs(1, "task id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				entries, err := client.ListHistory(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if out.structured() {
					return out.write(entries)
				}
				for _, entry := range entries {
					if err := writePlain("%s %s %s\n", formatTime(entry.Timestamp), entry.UserID, formatHistoryEntry(entry)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func formatHistoryEntry(entry models.HistoryEntry) string {
	parts := make([]string, 0, len(entry.Changes))
	for _, change := range entry.Changes {
		if change.OldValue == nil {
			parts = append(parts, fmt.Sprintf("%s=%v", change.Field, change.NewValue))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %v -> %v", change.Field, change.OldValue, change.NewValue))
	}
	line := strings.Join(parts, "; ")
	if entry.Comment != "" {
		if line != "" {
			line += " "
		}
		line += "(" + entry.Comment + ")"
	}
	return line
}
