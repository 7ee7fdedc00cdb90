package main

import (
	"fmt"

	"github.com/aretw0/envcheck/internal/cli"
	"github.com/aretw0/envcheck/internal/presentation/hover"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <name>",
	Short: "Show what a variable is for, its type and default",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeFn, _, err := newEngine(cmd, nil, nil)
		if err != nil {
			return err
		}
		defer closeFn()

		v, err := eng.Variable(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		rendered, err := cli.MarkdownRenderer(out)(hover.Titled(v))
		if err != nil {
			return err
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
