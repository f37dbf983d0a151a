package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vanderheijden86/paperhub/pkg/debug"
	"github.com/vanderheijden86/paperhub/pkg/settings"
	"github.com/vanderheijden86/paperhub/pkg/ui"
	"github.com/vanderheijden86/paperhub/pkg/watcher"
)

func newTUICmd(a *app) *cobra.Command {
	var paperID int
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive viewer (default)",
		Long: `Start the interactive viewer.

Examples:
  ph tui
  ph tui --paper 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if paperID < 0 {
				return fmt.Errorf("invalid --paper %d", paperID)
			}
			return a.runTUI(paperID)
		},
	}
	cmd.Flags().IntVar(&paperID, "paper", 0, "open this paper's detail view first")
	return cmd
}

func (a *app) runTUI(paperID int) error {
	// Logs go to a file so they never corrupt the alt screen.
	logPath := a.cfg.UI.LogFile
	if logPath == "" {
		logPath = a.cfg.LogPath()
	}
	if debug.Enabled() && logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err == nil {
			if f, err := tea.LogToFile(logPath, "ph"); err == nil {
				debug.SetOutput(f)
				defer f.Close()
			}
		}
	}

	store, err := settings.Open()
	if err != nil {
		// Non-fatal: run with default preferences
		debug.Log("prefs: %v", err)
		if store == nil {
			store = settings.NewStore(settings.DefaultPath())
		}
	}

	var w *watcher.Watcher
	if store.Path() != "" {
		w, err = watcher.NewWatcher(store.Path(),
			watcher.WithOnError(func(err error) { debug.Log("prefs watcher: %v", err) }),
		)
		if err == nil {
			if err := w.Start(); err != nil {
				debug.Log("prefs watcher: %v", err)
				w = nil
			} else {
				defer w.Stop()
			}
		}
	}

	m := ui.NewModel(ui.Options{
		Client:   a.client(),
		Settings: store,
		Watcher:  w,
		Sort:     ui.ParseSortMode(a.cfg.UI.DefaultSort),
		Layout: ui.MindmapLayout{
			DepthSpacing:   a.cfg.UI.DepthSpacing,
			SiblingSpacing: a.cfg.UI.SiblingSpacing,
		},
		PaperID: paperID,
	})
	if err := runTUIProgram(m); err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set PH_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("PH_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}
