package ui

import (
	"os"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/paperhub/pkg/api"
	"github.com/vanderheijden86/paperhub/pkg/debug"
	"github.com/vanderheijden86/paperhub/pkg/settings"
	"github.com/vanderheijden86/paperhub/pkg/watcher"
)

// route is the view that receives keys and is drawn.
type route int

const (
	routeList route = iota
	routeDetail
)

// prefsChangedMsg is sent when the preferences file changes on disk.
type prefsChangedMsg struct{}

// WatchPrefsCmd returns a command that waits for the preferences file to
// change and sends prefsChangedMsg.
func WatchPrefsCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return prefsChangedMsg{}
	}
}

// Options configure NewModel.
type Options struct {
	Client   *api.Client
	Settings *settings.Store    // optional; dark mode is not persisted without it
	Watcher  *watcher.Watcher   // optional; watches the preferences file
	Renderer *lipgloss.Renderer // optional; defaults to stdout
	Sort     SortMode
	Layout   MindmapLayout
	PaperID  int // open this paper's detail view first when > 0
}

// Model is the root Bubble Tea model. It routes between the list and the
// detail view and owns the request generations both use.
type Model struct {
	settings *settings.Store
	watcher  *watcher.Watcher
	requests *api.Requests
	theme    Theme
	keys     globalKeys

	route  route
	list   ListView
	detail DetailView

	dark     bool
	status   string
	initCmds []tea.Cmd

	width  int
	height int
}

// NewModel creates the root model and queues the first request.
func NewModel(opts Options) Model {
	client := opts.Client
	if client == nil {
		client = api.NewClient()
	}
	dark := opts.Settings != nil && opts.Settings.DarkMode()
	r := opts.Renderer
	if r == nil {
		r = lipgloss.NewRenderer(os.Stdout)
	}
	r.SetHasDarkBackground(dark)
	theme := DefaultTheme(r)

	requests := api.NewRequests()
	m := Model{
		settings: opts.Settings,
		watcher:  opts.Watcher,
		requests: requests,
		theme:    theme,
		keys:     defaultGlobalKeys,
		list:     NewListView(theme, client, requests, opts.Sort),
		detail:   NewDetailView(theme, client, requests, opts.Layout),
		dark:     dark,
		width:    80,
		height:   24,
	}
	m.resize(m.width, m.height)

	var cmd tea.Cmd
	if opts.PaperID > 0 {
		m.route = routeDetail
		m.detail, cmd = m.detail.Load(opts.PaperID)
	} else {
		m.list, cmd = m.list.Load(1)
	}
	m.initCmds = append(m.initCmds, cmd)
	if m.watcher != nil {
		m.initCmds = append(m.initCmds, WatchPrefsCmd(m.watcher))
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.initCmds...)
}

// DarkMode reports whether the dark scheme is active.
func (m Model) DarkMode() bool { return m.dark }

// List returns the list view.
func (m Model) List() ListView { return m.list }

// Detail returns the detail view.
func (m Model) Detail() DetailView { return m.detail }

// InDetail reports whether the detail view is shown.
func (m Model) InDetail() bool { return m.route == routeDetail }

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.list.SetSize(w, h)
	m.detail.SetSize(w, h)
}

func (m *Model) setDark(dark bool) {
	if dark == m.dark {
		return
	}
	m.dark = dark
	m.theme.Renderer.SetHasDarkBackground(dark)
	m.theme = DefaultTheme(m.theme.Renderer)
	m.list.SetTheme(m.theme)
	m.detail.SetTheme(m.theme)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case prefsChangedMsg:
		if m.settings != nil {
			if err := m.settings.Load(); err != nil {
				debug.Log("prefs: reload: %v", err)
			} else {
				m.setDark(m.settings.DarkMode())
			}
		}
		if m.watcher != nil {
			return m, WatchPrefsCmd(m.watcher)
		}
		return m, nil

	case openPaperMsg:
		m.route = routeDetail
		m.detail, cmd = m.detail.Load(msg.id)
		return m, cmd

	case papersLoadedMsg, fetchDoneMsg:
		m.list, cmd = m.list.Update(msg)
		return m, cmd

	case paperLoadedMsg, mindmapFrameMsg:
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		var listCmd, detailCmd tea.Cmd
		m.list, listCmd = m.list.Update(msg)
		m.detail, detailCmd = m.detail.Update(msg)
		return m, tea.Batch(listCmd, detailCmd)

	case tea.MouseMsg:
		if m.route == routeDetail {
			m.detail, cmd = m.detail.Update(msg)
		}
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if msg.String() == "ctrl+c" {
		m.requests.CancelAll()
		return m, tea.Quit
	}
	if m.route == routeList && m.list.Typing() {
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.requests.CancelAll()
		return m, tea.Quit

	case key.Matches(msg, m.keys.DarkMode):
		dark := !m.dark
		if m.settings != nil {
			var err error
			if dark, err = m.settings.ToggleDarkMode(); err != nil {
				debug.Log("prefs: save: %v", err)
			}
		}
		m.setDark(dark)
		return m, nil
	}

	if m.route == routeDetail {
		if key.Matches(msg, m.detail.keys.Back) {
			m.route = routeList
			if !m.list.Loaded() && !m.list.Loading() {
				m.list, cmd = m.list.Load(1)
			}
			return m, cmd
		}
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.route == routeDetail {
		return m.detail.View()
	}
	return m.list.View()
}
