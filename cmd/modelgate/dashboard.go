package main

import (
	"os"

	"github.com/spf13/cobra"

	"modelgate/internal/launcher"
)

func newDashboardCmd(a *app) *cobra.Command {
	var appPath string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Launch the dashboard UI",
		Example: "  modelgate dashboard\n" +
			"  modelgate dashboard --app src/app/main.py",
		RunE: func(cmd *cobra.Command, args []string) error {
			if appPath != "" {
				a.cfg.Dashboard.AppPath = appPath
			}
			if err := launcher.DisableTelemetry(); err != nil {
				return err
			}
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			return launcher.RunDashboard(cmd.Context(), launcher.Dashboard{
				Command: a.cfg.Dashboard.Command,
				Args:    a.cfg.Dashboard.Args,
				AppPath: a.cfg.Dashboard.AppPath,
				Dir:     wd,
				Stdout:  cmd.OutOrStdout(),
				Stderr:  cmd.ErrOrStderr(),
			}, a.log)
		},
	}
	cmd.Flags().StringVar(&appPath, "app", "", "Dashboard entry point (defaults src/app/main.py)")
	return cmd
}
