package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/paperhub/pkg/settings"
)

func newPrefsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prefs [key [value]]",
		Short: "Read or write viewer preferences",
		Long: `Read or write preferences shared with the viewer. The running viewer
picks up changes immediately.

Examples:
  ph prefs
  ph prefs dark-mode
  ph prefs dark-mode true`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := settings.Open()
			if err != nil {
				return fmt.Errorf("%w: %v", errConfig, err)
			}
			out := cmd.OutOrStdout()
			switch len(args) {
			case 0:
				v, _ := store.Get(settings.KeyDarkMode)
				fmt.Fprintf(out, "%s: %s\n", settings.KeyDarkMode, v)
				return nil
			case 1:
				v, err := store.Get(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(out, v)
				return nil
			}
			if err := store.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := store.Save(); err != nil {
				return fmt.Errorf("%w: %v", errConfig, err)
			}
			v, _ := store.Get(args[0])
			fmt.Fprintf(out, "%s: %s\n", args[0], v)
			return nil
		},
	}
}
