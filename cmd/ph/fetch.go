package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newFetchCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Ask the catalog to fetch and summarise new papers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.client().TriggerFetch(context.Background())
			out := cmd.OutOrStdout()
			if res != nil && asJSON {
				if jerr := outputJSON(out, res); jerr != nil {
					return jerr
				}
			} else if res != nil {
				fmt.Fprintf(out, "status: %s\n", res.Status)
				if o := strings.TrimSpace(res.Output); o != "" {
					fmt.Fprintln(out, o)
				}
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}
