package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jorgeparavicini/lazycloud/internal/app"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var errorColor = color.New(color.FgRed, color.Bold)

func main() {
	os.Exit(run())
}

func run() int {
	var opts app.Options

	root := &cobra.Command{
		Use:   "lazycloud",
		Short: "Terminal UI for browsing cloud resources",
		Long: `lazycloud is an interactive terminal application for browsing and
mutating cloud provider resources. Pick a context (account and project),
pick a service, then navigate lists and details with vim-style keys.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return app.Run(ctx, opts)
		},
	}

	root.Flags().StringVarP(&opts.Context, "context", "c", "", "preselect a context by name")
	root.Flags().StringVarP(&opts.Service, "service", "s", "", "preselect a service by key")
	root.Flags().BoolVar(&opts.Debug, "debug", false, "write debug entries to the log file")

	if err := root.Execute(); err != nil {
		errorColor.Fprintf(os.Stderr, "lazycloud: %v\n", err)
		return 1
	}
	return 0
}
