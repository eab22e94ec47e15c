package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/chriscorrea/babel/internal/lang"

	"github.com/spf13/cobra"
)

// newLanguagesCmd creates the languages subcommand
func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List common language codes",
		Long: `List language codes that translation models handle well, with their English names.
Any valid BCP 47 tag is accepted by --source and --target; "auto" detects the source language.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, code := range lang.Common() {
				fmt.Fprintf(w, "%s\t%s\n", code, lang.DisplayName(code))
			}
			return w.Flush()
		},
	}
}
