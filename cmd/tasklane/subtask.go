package main

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tasklane/internal/api"
	"tasklane/internal/config"
)

func newSubtaskCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtask",
		Short: "Create and browse subtasks",
	}
	cmd.AddCommand(newSubtaskCreateCmd(cfg, out), newSubtaskListCmd(cfg, out))
	return cmd
}

func newSubtaskCreateCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	flags := &taskFlags{}

	cmd := &cobra.Command{
		Use:   "create <parent-id> <title>",
		Short: "Create a subtask; the parent's progress is recomputed",
		Args:  requireAtLeastArgs(2, "parent id and title are required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(cmd, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.CreateSubtask(cmd.Context(), args[0], req)
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

type subtaskListFlags struct {
	statuses   []string
	types      []string
	priorities []string
	assignees  []string
	page       int
	pageSize   int
}

func (f subtaskListFlags) query() url.Values {
	values := url.Values{}
	for key, list := range map[string][]string{
		"status":   f.statuses,
		"type":     f.types,
		"priority": f.priorities,
		"assignee": f.assignees,
	} {
		for _, v := range list {
			if v = strings.TrimSpace(v); v != "" {
				values.Add(key, v)
			}
		}
	}
	if f.page > 0 {
		values.Set("page", strconv.Itoa(f.page))
	}
	if f.pageSize > 0 {
		values.Set("page_size", strconv.Itoa(f.pageSize))
	}
	return values
}

func newSubtaskListCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	var flags subtaskListFlags

	cmd := &cobra.Command{
		Use:   "list <parent-id>",
		Short: "List a task's subtasks, filtered and paged",
		Long: "List a task's subtasks. Values within one facet are ORed and facets are ANDed.\n" +
			"--assignee me keeps only subtasks assigned to you.",
		Args: requireExactlyArgs(1, "parent id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				page, err := client.ListSubtasks(cmd.Context(), args[0], flags.query())
				if err != nil {
					return err
				}
				if out.structured() {
					return out.write(page)
				}
				if err := writeTaskList(page.Items); err != nil {
					return err
				}
				return writePlain("page %d/%d (%d subtasks)\n", page.Page, page.TotalPages, page.TotalItems)
			})
		},
	}

	fs := cmd.Flags()
	fs.StringSliceVar(&flags.statuses, "status", nil, "filter by status (repeatable)")
	fs.StringSliceVar(&flags.types, "type", nil, "filter by type (repeatable)")
	fs.StringSliceVar(&flags.priorities, "priority", nil, "filter by priority (repeatable)")
	fs.StringSliceVar(&flags.assignees, "assignee", nil, "filter by assignee (repeatable)")
	fs.IntVar(&flags.page, "page", 1, "page number")
	fs.IntVar(&flags.pageSize, "page-size", 0, "items per page (default from server config)")
	return cmd
}
