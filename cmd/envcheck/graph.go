package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/envcheck/pkg/domain"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph [dir]",
	Short: "Export the declared variables as a Mermaid diagram",
	Long: `Outputs a Mermaid diagram (graph TD) with one subgraph per variable group.
With --check, variables are coloured by the result of a fresh check.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		withCheck, _ := cmd.Flags().GetBool("check")

		eng, closeFn, _, err := newEngine(cmd, args, nil)
		if err != nil {
			return err
		}
		defer closeFn()

		var report *domain.Report
		if withCheck {
			report, err = eng.Check(cmd.Context())
		} else {
			report, err = eng.LastReport(cmd.Context())
			if errors.Is(err, domain.ErrReportNotFound) {
				err = nil
			}
		}
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), eng.Graph(report))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("check", false, "Run a check and highlight missing variables")
}
