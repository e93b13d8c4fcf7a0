package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/nexus/internal/browser"
	"github.com/nikbrunner/nexus/internal/tui"
)

var (
	configPath string
	verbose    bool
	rootCmd    *cobra.Command
)

func init() {
	rootCmd = newRootCmd()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nexus",
		Short: "nexus - personal bookmark manager",
		Long: `nexus keeps a categorized, tagged and voted collection of links.

Run without arguments for the interactive TUI.`,
		RunE:          runTUI,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ~/.config/nexus/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		addCmd(),
		rmCmd(),
		voteCmd(),
		lsCmd(),
		categoriesCmd(),
		searchCmd(),
		analyzeCmd(),
		importCmd(),
		exportCmd(),
		checkCmd(),
		themeCmd(),
		serveCmd(),
	)
	return cmd
}

// Execute runs the root command.
func Execute(version string) error {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// runTUI runs the full interactive TUI.
func runTUI(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	e, err := setup(ctx, setupOptions{logToFile: true})
	if err != nil {
		return err
	}
	defer e.close()

	app := tui.NewApp(tui.AppParams{
		Context:      ctx,
		Library:      e.lib,
		Themes:       e.themes,
		Analyzer:     e.enricher,
		Signal:       e.signal(),
		Opener:       browser.Open,
		Copier:       clipboard.WriteAll,
		Log:          e.log,
		PollInterval: 2 * time.Second,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run app: %w", err)
	}
	return nil
}
