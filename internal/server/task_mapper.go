package server

import (
	"tasklane/internal/activity"
	"tasklane/internal/api"
)

func taskInputFromRequest(req api.TaskCreateRequest) (activity.TaskInput, error) {
	taskType, err := normalizeType(req.Type)
	if err != nil {
		return activity.TaskInput{}, err
	}
	priority, err := normalizePriority(req.Priority)
	if err != nil {
		return activity.TaskInput{}, err
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return activity.TaskInput{}, err
	}
	return activity.TaskInput{
		Title:            req.Title,
		Description:      req.Description,
		Type:             taskType,
		Priority:         priority,
		AssignedTo:       req.AssignedTo,
		DueDate:          dueDate,
		EstimatedTime:    req.EstimatedTime,
		Tags:             req.Tags,
		MediaAttachments: req.MediaAttachments,
	}, nil
}

func warningsFrom(failures []activity.StepFailure) []api.Warning {
	out := make([]api.Warning, 0, len(failures))
	for _, failure := range failures {
		message := ""
		if failure.Err != nil {
			message = failure.Err.Error()
		}
		out = append(out, api.Warning{Step: string(failure.Step), Error: message})
	}
	return out
}

func taskActivityResponse(out activity.Outcome) api.TaskActivityResponse {
	resp := api.TaskActivityResponse{
		Comment:       out.Comment,
		History:       nonNil(out.History),
		Notifications: nonNil(out.Notifications),
		Warnings:      warningsFrom(out.Failures),
	}
	if out.Task != nil {
		resp.Task = *out.Task
	}
	if out.Propagation != nil {
		resp.Propagation = &api.Propagation{
			ParentID: out.Propagation.ParentID,
			Changed:  out.Propagation.Changed,
			Old:      out.Propagation.Old,
			New:      out.Propagation.New,
		}
	}
	return resp
}

func membershipResponse(out activity.Outcome) api.MembershipResponse {
	resp := api.MembershipResponse{
		Notifications: nonNil(out.Notifications),
		Warnings:      warningsFrom(out.Failures),
	}
	if out.Membership != nil {
		resp.Membership = *out.Membership
	}
	return resp
}

func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
