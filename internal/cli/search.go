package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/nexus/internal/browser"
	"github.com/nikbrunner/nexus/internal/model"
	"github.com/nikbrunner/nexus/internal/picker"
	"github.com/nikbrunner/nexus/internal/search"
	"github.com/nikbrunner/nexus/internal/theme"
)

func searchCmd() *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Fuzzy search, pick and open a bookmark",
		Long: `Fuzzy search bookmark titles. A single match is opened directly;
several matches open a picker.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			e, err := setup(cmd.Context(), setupOptions{})
			if err != nil {
				return err
			}
			defer e.close()

			out := cmd.OutOrStdout()
			results := search.FuzzySearchBookmarks(e.lib.Bookmarks(), query)
			if len(results) == 0 {
				fmt.Fprintf(out, "No bookmarks found for '%s'\n", query)
				return nil
			}

			if printOnly {
				for _, r := range results {
					fmt.Fprintf(out, "%s\t%s\n", r.Bookmark.Title, r.Bookmark.URL)
				}
				return nil
			}

			var selected *model.Bookmark
			if len(results) == 1 {
				selected = results[0].Bookmark
			} else {
				scheme := theme.Resolve(e.themes.Load(cmd.Context()), e.signal())
				program := tea.NewProgram(picker.New(results, query, scheme),
					tea.WithContext(cmd.Context()),
					tea.WithInput(cmd.InOrStdin()),
					tea.WithOutput(cmd.ErrOrStderr()))
				finalModel, err := program.Run()
				if err != nil {
					return fmt.Errorf("run picker: %w", err)
				}
				p := finalModel.(picker.Picker)
				if p.Cancelled() {
					return nil
				}
				selected = p.SelectedBookmark()
			}
			if selected == nil {
				return nil
			}

			fmt.Fprintf(out, "Opening: %s\n", selected.Title)
			return browser.Open(selected.URL)
		},
	}

	cmd.Flags().BoolVarP(&printOnly, "print", "p", false, "print matches instead of opening one")
	return cmd
}
