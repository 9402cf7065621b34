package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/lerenn/push-issues/cmd/push-issues/internal/cli"
	"github.com/lerenn/push-issues/pkg/config"
	"github.com/lerenn/push-issues/pkg/pusher"
	"github.com/lerenn/push-issues/pkg/report"
	"github.com/spf13/cobra"
)

type pushFlags struct {
	repository  string
	tokenEnv    string
	dryRun      bool
	workers     int
	maxAttempts int
	yes         bool
	output      string
}

func createRootCmd() *cobra.Command {
	var flags pushFlags

	rootCmd := &cobra.Command{
		Use:   "push-issues [flags] <template-dir-or-archive-url>",
		Short: "Push milestone and issue templates to a GitHub repository",
		Long: `Create the milestones and issues described by a template directory in a
GitHub repository. Items that already exist, matched by exact title, are
left untouched, so the command can be re-run safely after a failure.

The template holds one directory per milestone. Each directory contains a
README.md describing the milestone and one markdown file per issue; the
first line of every file is its title.

Examples:
  push-issues --repo owner/name ./course
  push-issues -r owner/name --dry-run ./course
  push-issues -r owner/name -y https://example.com/course/archive/main.zip`,
		Version:      version,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPush(cmd, args[0], flags)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&cli.Quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVarP(&cli.Verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&cli.ConfigPath, "config", "c", config.DefaultConfigPath,
		"Specify a custom config file path")

	rootCmd.Flags().StringVarP(&flags.repository, "repo", "r", "", "Target repository as owner/name")
	rootCmd.Flags().StringVar(&flags.tokenEnv, "token-env", "", "Environment variable holding the API token")
	rootCmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "Show what would be created without writing")
	rootCmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "Concurrent issue creations within a milestone")
	rootCmd.Flags().IntVar(&flags.maxAttempts, "max-attempts", 0, "Attempts per item for transient failures")
	rootCmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Create items without asking for confirmation")
	rootCmd.Flags().StringVarP(&flags.output, "output", "o", string(report.FormatText), "Output format (text|yaml)")

	return rootCmd
}

func runPush(cmd *cobra.Command, source string, flags pushFlags) error {
	format, err := report.ParseFormat(flags.output)
	if err != nil {
		return err
	}
	if flags.workers < 0 || flags.maxAttempts < 0 {
		return fmt.Errorf("%w: --workers and --max-attempts cannot be negative", config.ErrInvalidConfig)
	}

	p, err := cli.NewPusher()
	if err != nil {
		return err
	}

	r, err := p.Push(cmd.Context(), source, pusher.PushOpts{
		Repository:  flags.repository,
		TokenEnv:    flags.tokenEnv,
		Workers:     flags.workers,
		MaxAttempts: flags.maxAttempts,
		DryRun:      flags.dryRun,
		Yes:         flags.yes,
	})
	if r != nil {
		if renderErr := writeReport(cmd.OutOrStdout(), cmd.ErrOrStderr(), r, format); renderErr != nil {
			return errors.Join(err, renderErr)
		}
	}
	return err
}

// writeReport renders the report on out. In quiet mode only the failed
// items are listed, on errOut.
func writeReport(out, errOut io.Writer, r *report.Report, format report.Format) error {
	if !cli.Quiet {
		return report.Render(out, r, format)
	}

	for _, o := range r.Failed() {
		if _, err := fmt.Fprintf(errOut, "failed to create %s %q: %s\n", o.Kind, o.Title, o.Error); err != nil {
			return err
		}
	}
	return nil
}
