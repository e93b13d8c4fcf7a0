package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func analyzeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Suggest title, description, category and tags for a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd.Context(), setupOptions{})
			if err != nil {
				return err
			}
			defer e.close()

			result := e.enricher.Analyze(cmd.Context(), args[0])
			if result.Fallback {
				fmt.Fprintf(cmd.ErrOrStderr(), "Analysis failed, showing placeholders: %v\n", result.Err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			md := result.Metadata
			fmt.Fprintf(out, "Title:       %s\n", md.Title)
			fmt.Fprintf(out, "Description: %s\n", md.Description)
			fmt.Fprintf(out, "Category:    %s\n", md.Category)
			fmt.Fprintf(out, "Tags:        %s\n", strings.Join(md.Tags, ", "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
