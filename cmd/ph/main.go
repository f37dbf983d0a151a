// Package main provides the ph CLI entry point.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/paperhub/pkg/api"
	"github.com/vanderheijden86/paperhub/pkg/config"
	"github.com/vanderheijden86/paperhub/pkg/debug"
	"github.com/vanderheijden86/paperhub/pkg/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
}

// app holds the global flags and the configuration they resolve to.
type app struct {
	configPath string
	apiBase    string
	perPage    int
	debug      bool

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "ph",
		Short: "Terminal client for the research-paper catalog",
		Long: `ph browses a research-paper catalog: paginated listings, paper details
with summaries, facts and entities, and an interactive mindmap of each paper.

Run without a subcommand to start the interactive viewer.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(0)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/paperhub/config.yaml)")
	pf.StringVar(&a.apiBase, "api", "", "paper API base URL (overrides config and "+config.EnvAPIBase+")")
	pf.IntVar(&a.perPage, "per-page", 0, "papers per page (overrides config and "+config.EnvPerPage+")")
	pf.BoolVar(&a.debug, "debug", false, "enable debug logging (same as PH_DEBUG=1)")

	root.AddCommand(
		newTUICmd(a),
		newListCmd(a),
		newShowCmd(a),
		newMindmapCmd(a),
		newFetchCmd(a),
		newPrefsCmd(a),
	)
	return root
}

// load resolves the configuration: file, then environment, then flags.
func (a *app) load() error {
	if a.debug {
		debug.SetEnabled(true)
	}
	var (
		cfg config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFrom(a.configPath)
		if err == nil {
			err = cfg.ApplyEnv()
		}
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("%w: %v", errConfig, err)
	}
	if a.apiBase != "" {
		cfg.API.BaseURL = a.apiBase
	}
	if a.perPage < 0 {
		return fmt.Errorf("%w: --per-page must be positive", errConfig)
	}
	if a.perPage > 0 {
		cfg.API.PerPage = a.perPage
	}
	a.cfg = cfg
	debug.Dump("config", cfg)
	return nil
}

func (a *app) client() *api.Client {
	return api.NewClient(
		api.WithBaseURL(a.cfg.API.BaseURL),
		api.WithPerPage(a.cfg.API.PerPage),
		api.WithHTTPClient(&http.Client{Timeout: a.cfg.API.Timeout}),
		api.WithUserAgent("ph/"+version.Version),
	)
}
