package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	internalauth "tasklane/internal/auth"
	"tasklane/internal/config"
	"tasklane/internal/store"
)

var stdin io.Reader = os.Stdin

func newAdminCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative commands run directly against the database",
	}
	user := &cobra.Command{
		Use:   "user",
		Short: "Manage login accounts",
	}
	user.AddCommand(
		newAdminUserAddCmd(cfg, out),
		newAdminUserListCmd(cfg, out),
		newAdminUserSetDisabledCmd(cfg, out, "disable", "Disable one user", true),
		newAdminUserSetDisabledCmd(cfg, out, "enable", "Enable one user", false),
	)
	cmd.AddCommand(user)
	return cmd
}

func withStore(cfg *config.Config, fn func(*store.Store) error) error {
	if cfg.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

func newAdminUserAddCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	var (
		displayName   string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "add <user-id>",
		Short: "Create one user",
		Args:  requireExactlyArgs(1, "user id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !passwordStdin {
				return fmt.Errorf("--password-stdin is required")
			}
			userID, err := internalauth.NormalizeUserID(args[0])
			if err != nil {
				return err
			}
			password, err := readStdinSecret()
			if err != nil {
				return err
			}
			if err := internalauth.ValidatePassword(password); err != nil {
				return err
			}
			hash, err := internalauth.HashPassword(password)
			if err != nil {
				return err
			}

			return withStore(cfg, func(st *store.Store) error {
				created, err := st.CreateUser(cmd.Context(), userID, displayName, hash, time.Now().UTC())
				if err != nil {
					return err
				}
				if out.structured() {
					return out.write(created)
				}
				return writePlain("created user %s (%s)\n", created.ID, created.DisplayName)
			})
		},
	}

	cmd.Flags().StringVar(&displayName, "name", "", "display name used in notifications (default: user id)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read password from stdin")
	return cmd
}

func newAdminUserListCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cfg, func(st *store.Store) error {
				users, err := st.ListUsers(cmd.Context())
				if err != nil {
					return err
				}
				if out.structured() {
					return out.write(map[string]any{"count": len(users), "users": users})
				}
				if len(users) == 0 {
					return writePlain("no users configured\n")
				}
				if err := writePlain("USER\tNAME\tSTATUS\n"); err != nil {
					return err
				}
				for _, user := range users {
					status := "enabled"
					if user.Disabled {
						status = "disabled"
					}
					if err := writePlain("%s\t%s\t%s\n", user.ID, user.DisplayName, status); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newAdminUserSetDisabledCmd(cfg *config.Config, out *outputOptions, name, short string, disabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <user-id>",
		Short: short,
		Args:  requireExactlyArgs(1, "user id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := internalauth.NormalizeUserID(args[0])
			if err != nil {
				return err
			}
			return withStore(cfg, func(st *store.Store) error {
				updated, err := st.SetUserDisabled(cmd.Context(), userID, disabled, time.Now().UTC())
				if err != nil {
					return err
				}
				if updated == nil {
					return fmt.Errorf("user %s not found", userID)
				}
				if out.structured() {
					return out.write(updated)
				}
				return writePlain("%sd user %s\n", name, updated.ID)
			})
		},
	}
}

func readStdinSecret() (string, error) {
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
