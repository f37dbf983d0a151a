package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/vanderheijden86/paperhub/pkg/api"
	"github.com/vanderheijden86/paperhub/pkg/debug"
	"github.com/vanderheijden86/paperhub/pkg/model"
	"github.com/vanderheijden86/paperhub/pkg/summary"
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

type paperLoadedMsg struct {
	ticket api.Ticket
	detail *model.PaperDetail
	err    error
}

type detailFocus int

const (
	focusText detailFocus = iota
	focusMindmap
)

// DetailView shows one paper: its metadata, summary, facts, entities and
// the mindmap pane.
type DetailView struct {
	theme    Theme
	client   *api.Client
	requests *api.Requests
	keys     detailKeys
	layout   MindmapLayout

	id       int
	detail   *model.PaperDetail
	viewport viewport.Model
	mindmap  MindmapPane
	focus    detailFocus
	spinner  spinner.Model

	loading bool
	err     error
	status  string

	md      *glamour.TermRenderer
	mdWidth int
	mdDark  bool

	width  int
	height int
}

// NewDetailView returns an empty detail view; call Load to show a paper.
func NewDetailView(theme Theme, client *api.Client, requests *api.Requests, layout MindmapLayout) DetailView {
	s := spinner.New()
	s.Spinner = spinner.Dot
	d := DetailView{
		client:   client,
		requests: requests,
		keys:     defaultDetailKeys,
		layout:   layout,
		viewport: viewport.New(78, 10),
		spinner:  s,
		width:    80,
		height:   24,
	}
	d.mindmap = NewMindmapPane(theme, nil, layout)
	d.SetTheme(theme)
	return d
}

// SetTheme restyles the view, re-rendering the body for the new scheme.
func (d *DetailView) SetTheme(t Theme) {
	d.theme = t
	d.spinner.Style = t.PrimaryBold
	d.mindmap.SetTheme(t)
	d.refresh()
}

// SetSize splits the area between the text viewport and the mindmap pane.
func (d *DetailView) SetSize(width, height int) {
	d.width = width
	d.height = height
	textH, mapH := d.split()
	d.viewport.Width = max(1, width-2)
	d.viewport.Height = max(1, textH-2)
	d.mindmap.SetSize(max(1, width-2), max(1, mapH-2))
	d.refresh()
}

// split returns the outer heights of the text panel and the mindmap panel.
func (d DetailView) split() (int, int) {
	avail := max(6, d.height-3) // header, status and help lines
	textH := avail / 2
	return textH, avail - textH
}

// ID returns the id of the paper shown.
func (d DetailView) ID() int { return d.id }

// Detail returns the loaded paper, or nil.
func (d DetailView) Detail() *model.PaperDetail { return d.detail }

// Mindmap returns the mindmap pane.
func (d DetailView) Mindmap() MindmapPane { return d.mindmap }

// Loading reports whether a request is in flight.
func (d DetailView) Loading() bool { return d.loading }

// Load requests paper id, superseding any detail request in flight.
func (d DetailView) Load(id int) (DetailView, tea.Cmd) {
	if id != d.id {
		d.detail = nil
		d.mindmap = NewMindmapPane(d.theme, nil, d.layout)
		d.focus = focusText
	}
	d.id = id
	d.loading = true
	d.err = nil
	d.status = ""
	ticket := d.requests.Begin(context.Background(), api.DetailRequest)
	client := d.client
	debug.Log("detail: loading paper %d (gen %d)", id, ticket.Gen)
	load := func() tea.Msg {
		detail, err := client.GetPaper(ticket.Ctx, id)
		return paperLoadedMsg{ticket: ticket, detail: detail, err: err}
	}
	return d, tea.Batch(load, d.spinner.Tick)
}

// Update handles messages addressed to the detail view.
func (d DetailView) Update(msg tea.Msg) (DetailView, tea.Cmd) {
	switch msg := msg.(type) {
	case paperLoadedMsg:
		if !d.requests.Finish(msg.ticket) {
			debug.Log("detail: dropping stale response (gen %d)", msg.ticket.Gen)
			return d, nil
		}
		d.loading = false
		if msg.err != nil {
			d.err = msg.err
			d.refresh()
			return d, nil
		}
		d.detail = msg.detail
		d.mindmap = NewMindmapPane(d.theme, msg.detail.Mindmap, d.layout)
		_, mapH := d.split()
		d.mindmap.SetSize(max(1, d.width-2), max(1, mapH-2))
		d.viewport.GotoTop()
		d.refresh()
		return d, nil

	case mindmapFrameMsg:
		var cmd tea.Cmd
		d.mindmap, cmd = d.mindmap.Update(msg)
		return d, cmd

	case spinner.TickMsg:
		if !d.loading {
			return d, nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, d.keys.Focus):
			if d.focus == focusText {
				d.focus = focusMindmap
			} else {
				d.focus = focusText
			}
			return d, nil
		case key.Matches(msg, d.keys.Copy):
			d.copyLink()
			return d, nil
		case key.Matches(msg, d.keys.Reload):
			return d.Load(d.id)
		}
		var cmd tea.Cmd
		if d.focus == focusMindmap {
			d.mindmap, cmd = d.mindmap.Update(msg)
		} else {
			d.viewport, cmd = d.viewport.Update(msg)
		}
		return d, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		d.viewport, cmd = d.viewport.Update(msg)
		return d, cmd
	}
	return d, nil
}

func (d *DetailView) copyLink() {
	if d.detail == nil || d.detail.Paper.PDFURL == "" {
		d.status = "no link to copy"
		return
	}
	if err := clipboardWrite(d.detail.Paper.PDFURL); err != nil {
		debug.Log("detail: clipboard: %v", err)
		d.status = "copy failed: " + err.Error()
		return
	}
	d.status = "link copied"
}

// refresh re-renders the text body into the viewport.
func (d *DetailView) refresh() {
	defer debug.LogEnterExit("detail: refresh")()
	d.viewport.SetContent(d.renderBody(max(20, d.viewport.Width)))
}

func (d *DetailView) renderBody(width int) string {
	t := d.theme
	if d.detail == nil {
		switch {
		case d.err != nil:
			return t.ErrorText.Render(errorMessage(d.err))
		case d.loading:
			return t.MutedText.Render("loading paper…")
		default:
			return ""
		}
	}

	p := d.detail.Paper
	var sections []string

	head := []string{t.Title.Render(wordwrap.String(p.Title, width))}
	if p.Authors != "" {
		head = append(head, t.SecondaryText.Render(wordwrap.String(p.Authors, width)))
	}
	meta := formatPublished(p)
	if p.Source != "" {
		meta += " · " + p.Source
	}
	head = append(head, t.MutedText.Render(meta))
	if p.PDFURL != "" {
		head = append(head, t.Link.Render(p.PDFURL))
	} else {
		head = append(head, t.MutedText.Render("no source link"))
	}
	sections = append(sections, strings.Join(head, "\n"))

	if long := strings.TrimSpace(summary.Clean(d.detail.Summaries.Long, summary.Long)); long != "" {
		sections = append(sections, t.PrimaryBold.Render("Summary")+"\n"+d.renderMarkdown(long, width))
	}

	if len(d.detail.Facts) > 0 {
		lines := []string{t.PrimaryBold.Render("Facts")}
		for _, f := range d.detail.Facts {
			lines = append(lines, wordwrap.String(RenderFact(t, f.Type, f.Value), width))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if len(d.detail.Entities) > 0 {
		sections = append(sections, t.PrimaryBold.Render("Entities")+"\n"+d.renderEntities(width))
	}
	return strings.Join(sections, "\n\n")
}

// renderMarkdown renders markdown through glamour, caching the renderer per
// width and scheme. Plain wrapped text is used when glamour fails.
func (d *DetailView) renderMarkdown(src string, width int) string {
	if d.md == nil || d.mdWidth != width || d.mdDark != d.theme.Dark {
		style := "light"
		if d.theme.Dark {
			style = "dark"
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			debug.Log("detail: glamour: %v", err)
			return wordwrap.String(src, width)
		}
		d.md, d.mdWidth, d.mdDark = r, width, d.theme.Dark
	}
	out, err := d.md.Render(src)
	if err != nil {
		debug.Log("detail: glamour render: %v", err)
		return wordwrap.String(src, width)
	}
	return strings.Trim(out, "\n")
}

// renderEntities flows entity tags into lines no wider than width.
func (d DetailView) renderEntities(width int) string {
	var lines []string
	var line string
	for _, e := range d.detail.Entities {
		tag := RenderEntityTag(d.theme, e.Entity, e.Type)
		switch {
		case line == "":
			line = tag
		case lipgloss.Width(line)+1+lipgloss.Width(tag) > width:
			lines = append(lines, line)
			line = tag
		default:
			line += " " + tag
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// View renders the detail view.
func (d DetailView) View() string {
	t := d.theme
	title := fmt.Sprintf("Paper #%d", d.id)
	if d.detail != nil {
		title += "  " + truncate(d.detail.Paper.Title, max(10, d.width-20))
	}
	header := t.Header.Render(title)
	if d.loading {
		header += " " + d.spinner.View()
	}

	textH, mapH := d.split()
	textPanel, mapPanel := t.Panel, t.Panel
	if d.focus == focusText {
		textPanel = t.FocusedPanel
	} else {
		mapPanel = t.FocusedPanel
	}
	text := textPanel.Width(max(1, d.width-2)).Height(max(1, textH-2)).Render(d.viewport.View())
	mm := mapPanel.Width(max(1, d.width-2)).Height(max(1, mapH-2)).Render(d.mindmap.View())

	var status string
	switch {
	case d.err != nil && d.detail != nil:
		status = t.ErrorText.Render(errorMessage(d.err))
	case d.status != "":
		status = t.SuccessText.Render(d.status)
	default:
		status = t.MutedText.Render(fmt.Sprintf("%3.f%%", d.viewport.ScrollPercent()*100))
	}

	var help string
	if d.focus == focusMindmap {
		k := d.mindmap.keys
		help = helpLine(t, k.Up, k.Parent, k.Toggle, k.PanLeft, k.ZoomIn, k.Reset, k.ExpandAll, k.Outline, d.keys.Focus, d.keys.Back)
	} else {
		help = helpLine(t, d.keys.Back, d.keys.Focus, d.keys.Copy, d.keys.Reload, defaultGlobalKeys.DarkMode, defaultGlobalKeys.Quit)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, text, mm, status, help)
}

// errorMessage turns API errors into one-line messages.
func errorMessage(err error) string {
	switch {
	case api.IsNotFound(err):
		return "paper not found"
	case api.IsNetworkError(err):
		return "cannot reach the paper API: " + err.Error()
	default:
		return "error: " + err.Error()
	}
}
