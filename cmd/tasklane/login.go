package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tasklane/internal/api"
	"tasklane/internal/config"
)

func newLoginCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "login <user-id>",
		Short: "Open a session and print its token",
		Long: "Open a session and print its token. Export it as TASKLANE_TOKEN so\n" +
			"later commands act as this user.",
		Args: requireExactlyArgs(1, "user id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !passwordStdin {
				return fmt.Errorf("--password-stdin is required")
			}
			password, err := readStdinSecret()
			if err != nil {
				return err
			}

			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.Login(cmd.Context(), args[0], password)
				if err != nil {
					return err
				}
				if out.structured() {
					return out.write(resp)
				}
				return writePlain("export TASKLANE_TOKEN=%s\n# logged in as %s until %s\n", resp.Token, resp.UserID, resp.ExpiresAt)
			})
		},
	}

	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read password from stdin")
	return cmd
}
