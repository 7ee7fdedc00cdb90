package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/aretw0/envcheck"
	"github.com/aretw0/envcheck/internal/cli"
	"github.com/spf13/cobra"
)

// errMissing makes the process exit non-zero without printing twice.
var errMissing = errors.New("required environment variables are missing")

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Check env files against the declared variables",
	Long: `Reads every schema in the workspace and checks the configured env files.
Exits with status 1 when a required variable is missing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonMode, _ := cmd.Flags().GetBool("json")
		watch, _ := cmd.Flags().GetBool("watch")
		fix, _ := cmd.Flags().GetBool("fix")
		noFail, _ := cmd.Flags().GetBool("no-fail")

		eng, closeFn, opts, err := newEngine(cmd, args, nil)
		if err != nil {
			return err
		}
		defer closeFn()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		if fix {
			return runFix(ctx, cmd, eng)
		}

		runner := &envcheck.Runner{
			Output:  out,
			Palette: cli.Palette(out, opts.NoColor || jsonMode),
			JSON:    jsonMode,
			Watch:   watch,
		}
		if !watch {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		report, err := runner.Run(ctx, eng)
		if err != nil {
			return err
		}
		if !watch && !noFail && !report.OK() {
			cmd.SilenceErrors = true
			return errMissing
		}
		return nil
	},
}

func runFix(ctx context.Context, cmd *cobra.Command, eng *envcheck.Engine) error {
	if _, err := eng.Check(ctx); err != nil {
		return err
	}
	path, n, err := eng.AppendMissing(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing to add")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "added %d variable(s) to %s\n", n, path)
	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("json", false, "Print the report as JSON")
	checkCmd.Flags().BoolP("watch", "w", false, "Re-check whenever a schema or env file changes")
	checkCmd.Flags().Bool("fix", false, "Append missing required variables to the primary env file")
	checkCmd.Flags().Bool("no-fail", false, "Exit 0 even when variables are missing")
}
