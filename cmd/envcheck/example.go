package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var exampleCmd = &cobra.Command{
	Use:   "example [dir]",
	Short: "Generate a .env.example from the declared variables",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		force, _ := cmd.Flags().GetBool("force")

		eng, closeFn, _, err := newEngine(cmd, args, nil)
		if err != nil {
			return err
		}
		defer closeFn()

		content := eng.Example() + "\n"
		if output == "-" {
			_, err := fmt.Fprint(cmd.OutOrStdout(), content)
			return err
		}

		path := output
		if !filepath.IsAbs(path) {
			path = filepath.Join(eng.Root(), path)
		}
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d variables)\n", path, len(eng.Variables()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exampleCmd)
	exampleCmd.Flags().StringP("output", "o", ".env.example", "File to write, relative to the workspace; '-' prints to stdout")
	exampleCmd.Flags().BoolP("force", "f", false, "Overwrite an existing file")
}
