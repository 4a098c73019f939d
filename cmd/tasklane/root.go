package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tasklane/internal/config"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var (
		logLevel string
		apiURL   string
	)
	out := &outputOptions{}

	cmd := &cobra.Command{
		Use:           "tasklane",
		Short:         "Tasklane tracks project tasks, their workflow, and who gets told about it",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}
			if apiURL != "" {
				cfg.APIURL = apiURL
			}
			warning, err := configureLoggerForCLI(logLevel, cfg.LogLevel, cfg.LogFile)
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintln(os.Stderr, warning)
			}
			return nil
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().StringVarP(&out.format, "output", "o", "", "output format: text, json, or yaml")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL (overrides config)")

	cmd.AddCommand(
		newSrvCmd(cfg),
		newMigrateCmd(cfg, out),
		newConfigCmd(cfg),
		newAdminCmd(cfg, out),
		newLoginCmd(cfg, out),
		newProjectCmd(cfg, out),
		newTaskCmd(cfg, out),
		newSubtaskCmd(cfg, out),
		newCommentCmd(cfg, out),
		newNotificationsCmd(cfg, out),
	)

	return cmd
}
