package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/nexus/internal/library"
	"github.com/nikbrunner/nexus/internal/logger"
	"github.com/nikbrunner/nexus/internal/model"
	"github.com/nikbrunner/nexus/internal/search"
	"github.com/nikbrunner/nexus/internal/storage"
)

// warnUnsaved reports ErrPersist as a warning and passes other errors on.
func warnUnsaved(cmd *cobra.Command, err error) error {
	if errors.Is(err, library.ErrPersist) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning: change applied but could not be saved:", err)
		return nil
	}
	return err
}

func printBookmark(w io.Writer, b model.Bookmark) {
	vote := ""
	if b.UserVote != model.VoteNone {
		vote = " (" + b.UserVote.String() + "d)"
	}
	fmt.Fprintf(w, "%s  +%d -%d%s  %s\n", b.ID, b.Likes, b.Dislikes, vote, b.Title)
	fmt.Fprintf(w, "    %s · %s", b.URL, b.Category)
	if len(b.Tags) > 0 {
		fmt.Fprintf(w, " · #%s", strings.Join(b.Tags, " #"))
	}
	fmt.Fprintln(w)
}

func addCmd() *cobra.Command {
	var (
		title, description, category string
		tags                         []string
		analyze                      bool
	)

	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Add a bookmark",
		Long: `Add a bookmark. With --analyze, empty fields are filled in by AI
analysis of the URL; explicit flags always win.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := strings.TrimSpace(args[0])
			if url == "" {
				return errors.New("url is required")
			}

			e, err := setup(cmd.Context(), setupOptions{})
			if err != nil {
				return err
			}
			defer e.close()

			params := model.NewBookmarkParams{
				URL:         url,
				Title:       title,
				Description: description,
				Category:    category,
				Tags:        tags,
			}

			if analyze {
				result := e.enricher.Analyze(cmd.Context(), url)
				if result.Fallback {
					fmt.Fprintf(cmd.ErrOrStderr(), "Could not analyze %s: %v\n", url, result.Err)
				}
				md := result.Metadata
				if params.Title == "" {
					params.Title = md.Title
				}
				if params.Description == "" {
					params.Description = md.Description
				}
				if params.Category == "" {
					params.Category = md.Category
				}
				if len(params.Tags) == 0 {
					params.Tags = md.Tags
				}
			}

			added, err := e.lib.Add(cmd.Context(), params)
			if err := warnUnsaved(cmd, err); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Added:")
			printBookmark(cmd.OutOrStdout(), added)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "title (defaults to the URL)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "description")
	cmd.Flags().StringVarP(&category, "category", "C", "", "category (defaults to "+model.DefaultCategory+")")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "comma separated tags")
	cmd.Flags().BoolVarP(&analyze, "analyze", "a", false, "fill empty fields from AI analysis")
	return cmd
}

func rmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"delete"},
		Short:   "Delete bookmarks",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd.Context(), setupOptions{})
			if err != nil {
				return err
			}
			defer e.close()

			out := cmd.OutOrStdout()
			var ids []string
			for _, id := range args {
				b := e.lib.Get(id)
				if b == nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "No bookmark with id %s\n", id)
					continue
				}
				ids = append(ids, id)
				fmt.Fprintf(out, "  %s  %s\n", b.Title, b.URL)
			}
			if len(ids) == 0 {
				return nil
			}

			if !yes && !confirm(cmd.InOrStdin(), out, fmt.Sprintf("Delete %d bookmark(s)?", len(ids))) {
				fmt.Fprintln(out, "Aborted")
				return nil
			}

			n, err := e.lib.DeleteMany(cmd.Context(), ids)
			if err := warnUnsaved(cmd, err); err != nil {
				return err
			}
			e.log.Info("deleted bookmarks", logger.Int("count", n))
			fmt.Fprintf(out, "Deleted %d bookmark(s)\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func voteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vote <id> <like|dislike>",
		Short: "Toggle your vote on a bookmark",
		Long: `Toggle your vote. Voting the same way twice withdraws the vote;
voting the other way switches it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			vote, err := model.ParseVote(args[1])
			if err != nil {
				return err
			}

			e, err := setup(cmd.Context(), setupOptions{})
			if err != nil {
				return err
			}
			defer e.close()

			updated, err := e.lib.Vote(cmd.Context(), args[0], vote)
			if errors.Is(err, model.ErrBookmarkNotFound) {
				return fmt.Errorf("%w: %s", err, args[0])
			}
			if err := warnUnsaved(cmd, err); err != nil {
				return err
			}
			printBookmark(cmd.OutOrStdout(), updated)
			return nil
		},
	}
}

func lsCmd() *cobra.Command {
	var (
		category, query string
		asJSON          bool
	)

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List bookmarks, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd.Context(), setupOptions{})
			if err != nil {
				return err
			}
			defer e.close()

			view := search.View{Category: category, Query: query}
			bookmarks := e.lib.View(view)

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := storage.EncodeBookmarks(bookmarks)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}

			if len(bookmarks) == 0 {
				fmt.Fprintln(out, "No bookmarks found")
				return nil
			}
			for _, b := range bookmarks {
				printBookmark(out, b)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "C", search.AllCategories, "only this category")
	cmd.Flags().StringVarP(&query, "query", "q", "", "substring to match in title, description, URL or tags")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stored JSON format")
	return cmd
}

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories in first-seen order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd.Context(), setupOptions{})
			if err != nil {
				return err
			}
			defer e.close()

			counts := map[string]int{}
			bookmarks := e.lib.Bookmarks()
			for _, b := range bookmarks {
				counts[b.Category]++
			}
			counts[search.AllCategories] = len(bookmarks)

			for _, c := range e.lib.Categories() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-28s %d\n", c, counts[c])
			}
			return nil
		},
	}
}
