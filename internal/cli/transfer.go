package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/nexus/internal/exporter"
	"github.com/nikbrunner/nexus/internal/importer"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.html>",
		Short: "Import bookmarks from a browser HTML export",
		Long: `Import a Netscape bookmark file. The enclosing folder becomes the
category. URLs that are already saved are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer file.Close()

			bookmarks, err := importer.ParseHTMLBookmarks(file)
			if err != nil {
				return fmt.Errorf("parse HTML: %w", err)
			}

			e, err := setup(cmd.Context(), setupOptions{})
			if err != nil {
				return err
			}
			defer e.close()

			added, skipped, err := e.lib.Import(cmd.Context(), bookmarks)
			if err := warnUnsaved(cmd, err); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d bookmarks", added)
			if skipped > 0 {
				fmt.Fprintf(out, " (%d duplicates skipped)", skipped)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Export bookmarks as browser HTML",
		Long:  "Export bookmarks as a Netscape bookmark file, one folder per category.\nThe default path is ~/Downloads/nexus-export-<date>.html.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var outputPath string
			if len(args) == 1 {
				outputPath = args[0]
			} else {
				var err error
				outputPath, err = exporter.DefaultExportPath()
				if err != nil {
					return fmt.Errorf("default export path: %w", err)
				}
			}

			e, err := setup(cmd.Context(), setupOptions{})
			if err != nil {
				return err
			}
			defer e.close()

			bookmarks := e.lib.Bookmarks()
			if err := os.WriteFile(outputPath, []byte(exporter.ExportHTML(bookmarks)), 0644); err != nil {
				return fmt.Errorf("write file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bookmarks to %s\n", len(bookmarks), outputPath)
			return nil
		},
	}
}
