package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// newManCmd creates the hidden man subcommand, which documents root and its children
func newManCmd(root *cobra.Command) *cobra.Command {
	manCmd := &cobra.Command{
		Use:    "man",
		Short:  "Generate man pages for babel",
		Long:   `This command generates the man pages for the babel CLI.`,
		Hidden: true, // hide this from the public help output
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cmd.Flags().GetString("dir")
			if err != nil {
				return fmt.Errorf("failed to get dir flag: %w", err)
			}

			header := &doc.GenManHeader{
				Title:   "BABEL",
				Section: "1", // section 1 is for executable programs and shell commands
				Source:  "Babel CLI",
			}

			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return fmt.Errorf("failed to create man directory: %w", err)
			}

			if err := doc.GenManTree(root, header, dir); err != nil {
				return fmt.Errorf("failed to generate man pages: %w", err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Man pages successfully generated in %s\n", dir)
			return nil
		},
	}

	manCmd.Flags().String("dir", "./man", "Directory to write the man pages to")
	return manCmd
}
