package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/nexus/internal/culler"
)

func checkCmd() *cobra.Command {
	var prune, yes bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Find dead links",
		Long: `Check every bookmark URL. 404 and 410 responses count as dead unless
the domain is listed in check.exclude_domains. With --prune, dead bookmarks
are deleted after confirmation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd.Context(), setupOptions{})
			if err != nil {
				return err
			}
			defer e.close()

			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			results := culler.CheckURLs(cmd.Context(), e.lib.Bookmarks(), culler.Options{
				Concurrency:    e.cfg.Check.Concurrency,
				Timeout:        e.cfg.Check.Timeout,
				ExcludeDomains: e.cfg.Check.ExcludeDomains,
			}, func(completed, total int) {
				fmt.Fprintf(errOut, "\rChecked %d/%d", completed, total)
			})
			if len(results) > 0 {
				fmt.Fprintln(errOut)
			}

			var unreachable int
			for _, r := range results {
				switch r.Status {
				case culler.Dead:
					fmt.Fprintf(out, "dead  %d  %s  %s  (%s)\n", r.StatusCode, r.Bookmark.ID, r.Bookmark.URL, r.Bookmark.Title)
				case culler.Unreachable:
					unreachable++
					fmt.Fprintf(out, "unreachable  %s  %s  (%s)\n", r.Bookmark.ID, r.Bookmark.URL, r.Error)
				}
			}

			dead := culler.DeadIDs(results)
			fmt.Fprintf(out, "%d checked, %d dead, %d unreachable\n", len(results), len(dead), unreachable)

			if !prune || len(dead) == 0 {
				return nil
			}
			if !yes && !confirm(cmd.InOrStdin(), out, fmt.Sprintf("Delete %d dead bookmark(s)?", len(dead))) {
				fmt.Fprintln(out, "Aborted")
				return nil
			}

			n, err := e.lib.DeleteMany(cmd.Context(), dead)
			if err := warnUnsaved(cmd, err); err != nil {
				return err
			}
			fmt.Fprintf(out, "Deleted %d bookmark(s)\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&prune, "prune", false, "delete dead bookmarks")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask before pruning")
	return cmd
}
