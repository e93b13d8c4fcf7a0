package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/nexus/internal/theme"
)

func themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme [light|dark|system|cycle]",
		Short: "Show or set the theme preference",
		Long: `Without arguments, print the theme preference and the scheme it
resolves to. "cycle" advances system -> light -> dark -> system.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "system", "cycle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd.Context(), setupOptions{})
			if err != nil {
				return err
			}
			defer e.close()

			mode := e.themes.Load(cmd.Context())
			if len(args) == 1 {
				if args[0] == "cycle" {
					mode = mode.Next()
				} else if mode, err = theme.Parse(args[0]); err != nil {
					return err
				}
				if err := e.themes.Save(cmd.Context(), mode); err != nil {
					return fmt.Errorf("save theme: %w", err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", mode, theme.Resolve(mode, e.signal()))
			return nil
		},
	}
}
