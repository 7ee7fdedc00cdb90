package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/envcheck"
	"github.com/aretw0/envcheck/internal/cli"
	"github.com/aretw0/envcheck/internal/logging"
	"github.com/aretw0/envcheck/pkg/observability"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "envcheck",
	Short: "envcheck validates .env files against the variables your schemas declare",
	Long: `envcheck reads the environment variables a project declares in its Zod,
Pydantic or YAML schemas and checks the project's .env files against them:
missing required variables, entries no schema declares, and values of the
wrong type.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errMissing) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Workspace directory")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logs on stderr")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: 'text' or 'json'")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable coloured output")
	rootCmd.PersistentFlags().String("redis-url", os.Getenv("ENVCHECK_REDIS_URL"), "Keep reports in Redis (redis://host:port/db)")
	rootCmd.PersistentFlags().String("redis-prefix", "", "Key prefix for reports in Redis")
	rootCmd.PersistentFlags().String("report-key", os.Getenv("ENVCHECK_REPORT_KEY"), "Encrypt stored reports with this AES-256 key (hex or base64)")
	rootCmd.PersistentFlags().Duration("report-ttl", 0, "Expire reports stored in Redis after this long (0 keeps them)")

	rootCmd.Version = envcheck.Version
}

// options reads the persistent flags. A positional argument overrides
// --dir when the flag was not set explicitly.
func options(cmd *cobra.Command, args []string) cli.Options {
	flags := cmd.Flags()
	dir, _ := flags.GetString("dir")
	if !flags.Changed("dir") && len(args) > 0 {
		dir = args[0]
	}
	debug, _ := flags.GetBool("debug")
	format, _ := flags.GetString("log-format")
	noColor, _ := flags.GetBool("no-color")
	redisURL, _ := flags.GetString("redis-url")
	prefix, _ := flags.GetString("redis-prefix")
	ttl, _ := flags.GetDuration("report-ttl")
	key, _ := flags.GetString("report-key")

	return cli.Options{
		Dir:         dir,
		Debug:       debug,
		LogFormat:   logging.Format(format),
		RedisURL:    redisURL,
		RedisPrefix: prefix,
		ReportTTL:   ttl,
		ReportKey:   key,
		NoColor:     noColor || os.Getenv("NO_COLOR") != "",
	}
}

// newEngine creates the engine for a command.
func newEngine(cmd *cobra.Command, args []string, metrics *observability.Metrics) (*envcheck.Engine, func() error, cli.Options, error) {
	opts := options(cmd, args)
	logger := cli.CreateLoggerWithFormat(opts.Debug, opts.LogFormat)
	eng, closeFn, err := cli.CreateEngine(opts, logger, metrics)
	return eng, closeFn, opts, err
}

// timeout bounds one-shot commands.
const timeout = time.Minute
