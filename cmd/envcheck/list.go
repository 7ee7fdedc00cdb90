package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List the declared variables by group",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonMode, _ := cmd.Flags().GetBool("json")

		eng, closeFn, _, err := newEngine(cmd, args, nil)
		if err != nil {
			return err
		}
		defer closeFn()

		out := cmd.OutOrStdout()
		if jsonMode {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(eng.Variables())
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, g := range eng.Groups() {
			fmt.Fprintf(tw, "%s\n", g.Name)
			for _, v := range g.Variables {
				req := "optional"
				if v.Required() {
					req = "required"
				}
				fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", v.Name, v.Type, req, v.Description)
			}
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("json", false, "Print variables as JSON")
}
