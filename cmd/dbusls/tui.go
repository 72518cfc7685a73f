package main

import (
	"github.com/spf13/cobra"

	"dbusls/internal/app"
	"dbusls/internal/tui"
)

func init() {
	rootCmd.AddCommand(cmdTUI)
}

var cmdTUI = &cobra.Command{
	Use:   "tui (--system | --session)",
	Short: "Browse bus services interactively",
	Long:  "Opens an interactive browser over the enumerated services with a detail panel showing each service's objects and interfaces.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, cleanup, err := newApp()
		if err != nil {
			return err
		}
		defer cleanup()

		return tui.Run(a, app.EnumerateOptions{
			IncludePrivate: includePrivate,
			Wakeup:         wakeup,
		})
	},
}
