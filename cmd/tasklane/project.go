package main

import (
	"github.com/spf13/cobra"

	"tasklane/internal/api"
	"tasklane/internal/config"
)

func newProjectCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Create projects and manage their members",
	}
	cmd.AddCommand(
		newProjectCreateCmd(cfg, out),
		newProjectShowCmd(cfg, out),
		newProjectMembersCmd(cfg, out),
		newProjectInviteCmd(cfg, out),
		newProjectRolesCmd(cfg, out),
		newProjectRemoveCmd(cfg, out),
	)
	return cmd
}

func newProjectCreateCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project owned by the current user",
		Args:  requireExactlyArgs(1, "project name is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				project, err := client.CreateProject(cmd.Context(), api.ProjectCreateRequest{Name: args[0], Description: description})
				if err != nil {
					return err
				}
				if out.structured() {
					return out.write(project)
				}
				return writePlain("%s %s\n", project.ID, project.Name)
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "project description")
	return cmd
}

func newProjectShowCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show project details",
		Args:  requireExactlyArgs(1, "project id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				project, err := client.GetProject(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if out.structured() {
					return out.write(project)
				}
				return writePlain("id: %s\nname: %s\nowner: %s\ndescription: %s\ncreated_at: %s\n",
					project.ID, project.Name, project.OwnerID, project.Description, formatTime(project.CreatedAt))
			})
		},
	}
}

func newProjectMembersCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "members <project-id>",
		Short: "List project members and their roles",
		Args:  requireExactlyArgs(1, "project id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				members, err := client.ListMembers(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if out.structured() {
					return out.write(members)
				}
				for _, m := range members {
					if err := writePlain("%s\t%s\n", m.UserID, joinRoles(m.Roles)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newProjectInviteCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	var roles []string

	cmd := &cobra.Command{
		Use:   "invite <project-id> <user-id>",
		Short: "Add a user to a project",
		Args:  requireExactlyArgs(2, "project id and user id are required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.InviteMember(cmd.Context(), args[0], api.MemberInviteRequest{UserID: args[1], Roles: roles})
				if err != nil {
					return err
				}
				return writeMembership(out, resp, "invited")
			})
		},
	}

	cmd.Flags().StringSliceVarP(&roles, "role", "r", nil, "role to grant: admin, dev, tester, documentWriter (repeatable)")
	return cmd
}

func newProjectRolesCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	var roles []string

	cmd := &cobra.Command{
		Use:   "roles <project-id> <user-id>",
		Short: "Replace a member's roles",
		Args:  requireExactlyArgs(2, "project id and user id are required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.UpdateMemberRoles(cmd.Context(), args[0], args[1], api.MemberRolesRequest{Roles: roles})
				if err != nil {
					return err
				}
				return writeMembership(out, resp, "updated")
			})
		},
	}

	cmd.Flags().StringSliceVarP(&roles, "role", "r", nil, "new role set (repeatable)")
	return cmd
}

func newProjectRemoveCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <project-id> <user-id>",
		Short: "Remove a member from a project",
		Args:  requireExactlyArgs(2, "project id and user id are required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.RemoveMember(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				return writeMembership(out, resp, "removed")
			})
		},
	}
}
