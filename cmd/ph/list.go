package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/paperhub/pkg/model"
	"github.com/vanderheijden86/paperhub/pkg/summary"
	"github.com/vanderheijden86/paperhub/pkg/ui"
)

// ListResponse is the --json output of ph list.
type ListResponse struct {
	Page        int           `json:"page"`
	TotalPages  int           `json:"total_pages"`
	TotalPapers int           `json:"total_papers"`
	Sort        string        `json:"sort"`
	Search      string        `json:"search,omitempty"`
	Papers      []model.Paper `json:"papers"`
}

func newListCmd(a *app) *cobra.Command {
	var (
		page      int
		sortBy    string
		search    string
		asJSON    bool
		summaries bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of papers",
		Long: `List one page of papers, filtered by title and sorted.

Examples:
  ph list
  ph list --page 2 --sort title
  ph list --search transformer --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sortBy == "" {
				sortBy = a.cfg.UI.DefaultSort
			}
			if sortBy != "date" && sortBy != "title" {
				return fmt.Errorf("invalid --sort %q: want date or title", sortBy)
			}
			mode := ui.ParseSortMode(sortBy)

			res, err := a.client().ListPapers(context.Background(), page)
			if err != nil {
				return err
			}
			papers := ui.FilterAndSort(res.Papers, search, mode)

			out := cmd.OutOrStdout()
			if asJSON {
				return outputJSON(out, ListResponse{
					Page:        res.Page,
					TotalPages:  res.TotalPages,
					TotalPapers: res.TotalPapers,
					Sort:        mode.String(),
					Search:      search,
					Papers:      papers,
				})
			}

			fmt.Fprintf(out, "page %d of %d (%d papers, sorted by %s)\n\n", res.Page, max(1, res.TotalPages), res.TotalPapers, mode)
			if len(papers) == 0 {
				if search != "" {
					fmt.Fprintf(out, "No papers match %q.\n", search)
				} else {
					fmt.Fprintln(out, "No papers found.")
				}
				return nil
			}
			for _, p := range papers {
				date := p.PublishedDate
				if date == "" {
					date = "undated"
				}
				fmt.Fprintf(out, "  %-6d %-10s %s\n", p.ID, date, truncateString(p.Title, ListTitleMaxLen))
				if summaries {
					if s := summary.Snippet(p.SummaryShort, TextWrapWidth); s != "" {
						fmt.Fprintf(out, "%s\n\n", indent(s, "                    "))
					}
				}
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&page, "page", 1, "page number (1-based)")
	f.StringVar(&sortBy, "sort", "", "sort by date or title (default from config)")
	f.StringVar(&search, "search", "", "case-insensitive title filter")
	f.BoolVar(&asJSON, "json", false, "output JSON")
	f.BoolVar(&summaries, "summaries", false, "print the short summary below each paper")
	return cmd
}
