package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vanderheijden86/paperhub/pkg/mindmap"
	"github.com/vanderheijden86/paperhub/pkg/model"
	"github.com/vanderheijden86/paperhub/pkg/summary"
)

// stdinIsTerminal is swapped out in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// promptPaperID asks for a paper id interactively.
var promptPaperID = func() (string, error) {
	var value string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Paper ID").
			Placeholder("42").
			Value(&value).
			Validate(func(s string) error {
				_, err := parseID(strings.TrimSpace(s))
				return err
			}),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func newShowCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show the details of one paper",
		Long: `Show a paper's metadata, summaries, facts, entities and mindmap status.
When the id is omitted and stdin is a terminal, ph prompts for it.

Examples:
  ph show 42
  ph show 42 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw string
			switch {
			case len(args) == 1:
				raw = args[0]
			case stdinIsTerminal():
				v, err := promptPaperID()
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				if err != nil {
					return err
				}
				raw = v
			default:
				return errors.New("missing paper id")
			}
			id, err := parseID(raw)
			if err != nil {
				return err
			}

			d, err := a.client().GetPaper(context.Background(), id)
			if err != nil {
				return err
			}
			if asJSON {
				return outputJSON(cmd.OutOrStdout(), d)
			}
			printDetail(cmd.OutOrStdout(), d)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}

// printDetail writes the human-readable paper report.
func printDetail(w io.Writer, d *model.PaperDetail) {
	p := d.Paper
	fmt.Fprintf(w, "%s\n", wordwrap.String(p.Title, TextWrapWidth))
	fmt.Fprintf(w, "%s\n", strings.Repeat("=", min(TextWrapWidth, max(3, len([]rune(p.Title))))))
	if p.Authors != "" {
		fmt.Fprintf(w, "Authors:   %s\n", p.Authors)
	}
	if p.PublishedDate != "" {
		fmt.Fprintf(w, "Published: %s\n", p.PublishedDate)
	}
	if p.Source != "" {
		fmt.Fprintf(w, "Source:    %s\n", p.Source)
	}
	if p.PDFURL != "" {
		fmt.Fprintf(w, "Link:      %s\n", p.PDFURL)
	}

	if short := summary.Plain(summary.Clean(d.Summaries.Short, summary.Short)); short != "" {
		fmt.Fprintf(w, "\n%s\n", wordwrap.String(short, TextWrapWidth))
	}
	if long := strings.TrimSpace(summary.Clean(d.Summaries.Long, summary.Long)); long != "" {
		fmt.Fprintf(w, "\nLong Summary:\n%s\n", indent(wordwrap.String(long, TextWrapWidth-2), "  "))
	}

	if len(d.Facts) > 0 {
		fmt.Fprintln(w, "\nFacts:")
		for _, f := range d.Facts {
			fmt.Fprintf(w, "  %s: %s\n", f.Type, f.Value)
		}
	}
	if len(d.Entities) > 0 {
		fmt.Fprintln(w, "\nEntities:")
		for _, e := range d.Entities {
			fmt.Fprintf(w, "  %s (%s)\n", e.Entity, e.Type)
		}
	}

	h, err := mindmap.ParsePayload(d.Mindmap)
	switch {
	case errors.Is(err, mindmap.ErrNoPayload):
		fmt.Fprintln(w, "\nMindmap:   none")
	case err != nil:
		fmt.Fprintf(w, "\nMindmap:   unavailable (%v)\n", err)
	default:
		fmt.Fprintf(w, "\nMindmap:   %d nodes, %d levels (ph mindmap %d -o FILE)\n", h.Count(), h.Depth(), d.ID)
	}
}
