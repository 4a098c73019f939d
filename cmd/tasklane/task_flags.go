package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tasklane/internal/api"
	"tasklane/internal/models"
)

// taskFlags holds the optional fields shared by task and subtask creation.
type taskFlags struct {
	description string
	taskType    string
	priority    string
	assignees   []string
	dueDate     string
	estimate    float64
	tags        []string
	media       []string
}

func (f *taskFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.description, "description", "d", "", "task description")
	flags.StringVarP(&f.taskType, "type", "t", "", "bug, feature, enhancement, or documentation (default feature)")
	flags.StringVarP(&f.priority, "priority", "p", "", "low, medium, high, or critical (default medium)")
	flags.StringSliceVarP(&f.assignees, "assign", "a", nil, "assignee user id (repeatable)")
	flags.StringVar(&f.dueDate, "due", "", "due date (YYYY-MM-DD or RFC3339)")
	flags.Float64Var(&f.estimate, "estimate", 0, "estimated hours")
	flags.StringSliceVar(&f.tags, "tag", nil, "tag (repeatable)")
	flags.StringSliceVar(&f.media, "media", nil, "media attachment as url[|resource_type] (repeatable)")
}

func (f *taskFlags) request(cmd *cobra.Command, title string) (api.TaskCreateRequest, error) {
	req := api.TaskCreateRequest{
		Title:       title,
		Description: f.description,
		Type:        f.taskType,
		Priority:    f.priority,
		AssignedTo:  f.assignees,
		DueDate:     f.dueDate,
		Tags:        f.tags,
	}
	if cmd.Flags().Changed("estimate") {
		if f.estimate < 0 {
			return api.TaskCreateRequest{}, fmt.Errorf("--estimate must be >= 0")
		}
		estimate := f.estimate
		req.EstimatedTime = &estimate
	}
	for _, raw := range f.media {
		attachment, err := parseMediaFlag(raw)
		if err != nil {
			return api.TaskCreateRequest{}, err
		}
		req.MediaAttachments = append(req.MediaAttachments, attachment)
	}
	return req, nil
}

func parseMediaFlag(raw string) (models.MediaAttachment, error) {
	url, resourceType, _ := strings.Cut(strings.TrimSpace(raw), "|")
	url = strings.TrimSpace(url)
	if url == "" {
		return models.MediaAttachment{}, fmt.Errorf("--media requires a url")
	}
	resourceType = strings.TrimSpace(resourceType)
	if resourceType == "" {
		resourceType = "image"
	}
	format := ""
	if dot := strings.LastIndex(url, "."); dot >= 0 && dot > strings.LastIndex(url, "/") {
		format = strings.ToLower(url[dot+1:])
	}
	return models.MediaAttachment{URL: url, ResourceType: resourceType, Format: format}, nil
}
