package main

import (
	"fmt"

	"github.com/aretw0/envcheck"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of envcheck",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "envcheck version %s\n", envcheck.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
