package ui

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/paperhub/pkg/api"
	"github.com/vanderheijden86/paperhub/pkg/debug"
	"github.com/vanderheijden86/paperhub/pkg/model"
	"github.com/vanderheijden86/paperhub/pkg/summary"
)

// SortMode orders the cards of the current page.
type SortMode int

const (
	SortByDate  SortMode = iota // published date, newest first
	SortByTitle                 // title, A to Z
)

func (s SortMode) String() string {
	switch s {
	case SortByTitle:
		return "title"
	default:
		return "date"
	}
}

// ParseSortMode maps a config or flag value to a SortMode. Unknown values
// sort by date.
func ParseSortMode(s string) SortMode {
	if strings.EqualFold(strings.TrimSpace(s), "title") {
		return SortByTitle
	}
	return SortByDate
}

// FilterAndSort keeps the papers whose title contains term, ignoring case,
// and orders them by mode. The input slice is not modified.
func FilterAndSort(papers []model.Paper, term string, mode SortMode) []model.Paper {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]model.Paper, 0, len(papers))
	for _, p := range papers {
		if term == "" || strings.Contains(strings.ToLower(p.Title), term) {
			out = append(out, p)
		}
	}

	switch mode {
	case SortByTitle:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Published().After(out[j].Published())
		})
	}
	return out
}

type papersLoadedMsg struct {
	ticket api.Ticket
	page   *model.PaperPage
	err    error
}

type fetchDoneMsg struct {
	ticket api.Ticket
	result *model.FetchResult
	err    error
}

// openPaperMsg asks the root model to show a paper's detail view.
type openPaperMsg struct{ id int }

// ListView shows one page of papers as cards.
type ListView struct {
	theme    Theme
	client   *api.Client
	requests *api.Requests
	keys     listKeys

	page      *model.PaperPage
	visible   []model.Paper
	cursor    int
	search    textinput.Model
	searching bool
	sortMode  SortMode
	pager     paginator.Model
	spinner   spinner.Model

	loading bool
	err     error
	status  string

	width  int
	height int
}

// NewListView returns an empty list; call Load to request the first page.
func NewListView(theme Theme, client *api.Client, requests *api.Requests, mode SortMode) ListView {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search titles"
	ti.CharLimit = 200

	p := paginator.New()
	p.Type = paginator.Arabic
	p.SetTotalPages(1)

	s := spinner.New()
	s.Spinner = spinner.Dot

	l := ListView{
		client:   client,
		requests: requests,
		keys:     defaultListKeys,
		search:   ti,
		sortMode: mode,
		pager:    p,
		spinner:  s,
		width:    80,
		height:   24,
	}
	l.SetTheme(theme)
	return l
}

// SetTheme restyles the view.
func (l *ListView) SetTheme(t Theme) {
	l.theme = t
	l.search.PromptStyle = t.PrimaryBold
	l.search.TextStyle = t.Base
	l.search.PlaceholderStyle = t.MutedText
	l.spinner.Style = t.PrimaryBold
}

// SetSize sets the area available to the view.
func (l *ListView) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.search.Width = max(10, width-4)
}

// Typing reports whether the search input has focus.
func (l ListView) Typing() bool { return l.searching }

// Loaded reports whether a page has been received.
func (l ListView) Loaded() bool { return l.page != nil }

// Loading reports whether a request is in flight.
func (l ListView) Loading() bool { return l.loading }

// CurrentPage returns the 1-based page shown, or 1 before the first load.
func (l ListView) CurrentPage() int { return l.pager.Page + 1 }

// TotalPages returns the page count last reported by the API.
func (l ListView) TotalPages() int { return l.pager.TotalPages }

// Visible returns the filtered and sorted papers of the page.
func (l ListView) Visible() []model.Paper { return l.visible }

// Selected returns the paper under the cursor.
func (l ListView) Selected() (model.Paper, bool) {
	if l.cursor < 0 || l.cursor >= len(l.visible) {
		return model.Paper{}, false
	}
	return l.visible[l.cursor], true
}

// Load requests page n. A request already in flight is superseded.
func (l ListView) Load(n int) (ListView, tea.Cmd) {
	if n < 1 {
		n = 1
	}
	l.loading = true
	l.err = nil
	ticket := l.requests.Begin(context.Background(), api.ListRequest)
	client := l.client
	debug.Log("list: loading page %d (gen %d)", n, ticket.Gen)
	load := func() tea.Msg {
		page, err := client.ListPapers(ticket.Ctx, n)
		return papersLoadedMsg{ticket: ticket, page: page, err: err}
	}
	return l, tea.Batch(load, l.spinner.Tick)
}

func (l ListView) triggerFetch() (ListView, tea.Cmd) {
	l.loading = true
	l.status = "fetching new papers…"
	ticket := l.requests.Begin(context.Background(), api.FetchRequest)
	client := l.client
	fetch := func() tea.Msg {
		res, err := client.TriggerFetch(ticket.Ctx)
		return fetchDoneMsg{ticket: ticket, result: res, err: err}
	}
	return l, tea.Batch(fetch, l.spinner.Tick)
}

// applyView re-derives the visible cards from the received page.
func (l *ListView) applyView() {
	var papers []model.Paper
	if l.page != nil {
		papers = l.page.Papers
	}
	l.visible = FilterAndSort(papers, l.search.Value(), l.sortMode)
	l.cursor = clampInt(l.cursor, 0, max(0, len(l.visible)-1))
}

// Update handles messages addressed to the list.
func (l ListView) Update(msg tea.Msg) (ListView, tea.Cmd) {
	switch msg := msg.(type) {
	case papersLoadedMsg:
		if !l.requests.Finish(msg.ticket) {
			debug.Log("list: dropping stale response (gen %d)", msg.ticket.Gen)
			return l, nil
		}
		l.loading = false
		debug.LogIf(msg.err != nil, "list: page load failed: %v", msg.err)
		if msg.err != nil {
			l.err = msg.err
			return l, nil
		}
		l.err = nil
		l.page = msg.page
		l.pager.TotalPages = max(1, msg.page.TotalPages)
		l.pager.Page = clampInt(msg.page.Page-1, 0, l.pager.TotalPages-1)
		l.cursor = 0
		l.applyView()
		return l, nil

	case fetchDoneMsg:
		if !l.requests.Finish(msg.ticket) {
			return l, nil
		}
		l.loading = false
		if msg.err != nil {
			l.status = "fetch failed: " + msg.err.Error()
			if msg.result != nil && msg.result.Output != "" {
				l.status += " (" + firstLine(msg.result.Output) + ")"
			}
			return l, nil
		}
		l.status = "fetch " + msg.result.Status
		if out := firstLine(msg.result.Output); out != "" {
			l.status += ": " + out
		}
		return l.Load(l.CurrentPage())

	case spinner.TickMsg:
		if !l.loading {
			return l, nil
		}
		var cmd tea.Cmd
		l.spinner, cmd = l.spinner.Update(msg)
		return l, cmd

	case tea.KeyMsg:
		if l.searching {
			return l.updateSearch(msg)
		}
		return l.updateKeys(msg)
	}
	return l, nil
}

func (l ListView) updateSearch(msg tea.KeyMsg) (ListView, tea.Cmd) {
	switch msg.String() {
	case "esc":
		l.searching = false
		l.search.Blur()
		l.search.SetValue("")
		l.applyView()
		return l, nil
	case "enter":
		l.searching = false
		l.search.Blur()
		return l, nil
	}
	var cmd tea.Cmd
	l.search, cmd = l.search.Update(msg)
	l.cursor = 0
	l.applyView()
	return l, cmd
}

func (l ListView) updateKeys(msg tea.KeyMsg) (ListView, tea.Cmd) {
	switch {
	case key.Matches(msg, l.keys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(msg, l.keys.Down):
		if l.cursor < len(l.visible)-1 {
			l.cursor++
		}
	case key.Matches(msg, l.keys.Open):
		if p, ok := l.Selected(); ok {
			id := p.ID
			return l, func() tea.Msg { return openPaperMsg{id: id} }
		}
	case key.Matches(msg, l.keys.Search):
		l.searching = true
		return l, l.search.Focus()
	case key.Matches(msg, l.keys.Clear):
		if l.search.Value() != "" {
			l.search.SetValue("")
			l.applyView()
		}
	case key.Matches(msg, l.keys.Sort):
		if l.sortMode == SortByDate {
			l.sortMode = SortByTitle
		} else {
			l.sortMode = SortByDate
		}
		l.applyView()
	case key.Matches(msg, l.keys.Next):
		if l.CurrentPage() < l.pager.TotalPages {
			return l.Load(l.CurrentPage() + 1)
		}
	case key.Matches(msg, l.keys.Prev):
		if l.CurrentPage() > 1 {
			return l.Load(l.CurrentPage() - 1)
		}
	case key.Matches(msg, l.keys.Reload):
		return l.Load(l.CurrentPage())
	case key.Matches(msg, l.keys.Fetch):
		return l.triggerFetch()
	default:
		if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= l.pager.TotalPages && n != l.CurrentPage() {
			return l.Load(n)
		}
	}
	return l, nil
}

// View renders the list.
func (l ListView) View() string {
	t := l.theme
	var header strings.Builder
	header.WriteString(t.Header.Render("Papers"))
	header.WriteString(" ")
	header.WriteString(t.MutedText.Render("sort: " + l.sortMode.String()))
	if l.page != nil {
		header.WriteString(t.MutedText.Render(fmt.Sprintf("  %d papers", l.page.TotalPapers)))
	}
	if l.loading {
		header.WriteString(" " + l.spinner.View())
	}

	var footer []string
	if l.searching || l.search.Value() != "" {
		footer = append(footer, l.search.View())
	}
	footer = append(footer, l.renderPageControls())
	if l.err != nil {
		footer = append(footer, t.ErrorText.Render(errorMessage(l.err)))
	} else if l.status != "" {
		footer = append(footer, t.SecondaryText.Render(truncate(l.status, l.width)))
	}
	footer = append(footer, helpLine(t, l.keys.Open, l.keys.Search, l.keys.Sort, l.keys.Next, l.keys.Prev, l.keys.Fetch, defaultGlobalKeys.DarkMode, defaultGlobalKeys.Quit))

	bodyHeight := max(1, l.height-1-len(footer))
	body := l.renderCards(bodyHeight)

	return lipgloss.JoinVertical(lipgloss.Left,
		header.String(),
		t.Renderer.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body),
		strings.Join(footer, "\n"),
	)
}

func (l ListView) renderCards(height int) string {
	t := l.theme
	switch {
	case l.page == nil && l.loading:
		return t.MutedText.Render(l.spinner.View() + " loading papers…")
	case l.page == nil:
		return t.MutedText.Render("no papers loaded")
	case len(l.page.Papers) == 0:
		return t.MutedText.Render("No papers found.")
	case len(l.visible) == 0:
		return t.MutedText.Render(fmt.Sprintf("No papers match %q.", l.search.Value()))
	}

	cards := make([]string, len(l.visible))
	heights := make([]int, len(l.visible))
	for i, p := range l.visible {
		cards[i] = l.renderCard(p, i == l.cursor)
		heights[i] = lipgloss.Height(cards[i]) + 1
	}

	// Scroll so the cursor card is the last one that fits.
	start := 0
	used := 0
	for i := 0; i <= l.cursor; i++ {
		used += heights[i]
	}
	for used > height && start < l.cursor {
		used -= heights[start]
		start++
	}

	var out []string
	used = 0
	for i := start; i < len(cards); i++ {
		if used+heights[i]-1 > height && i > start {
			break
		}
		out = append(out, cards[i])
		used += heights[i]
	}
	return strings.Join(out, "\n\n")
}

func (l ListView) renderCard(p model.Paper, selected bool) string {
	t := l.theme
	w := max(20, l.width-4)

	title := truncate(p.Title, w)
	if selected {
		title = t.Selected.Render(title)
	} else {
		title = "  " + t.Title.Render(title)
	}

	meta := []string{formatPublished(p)}
	if p.Authors != "" {
		meta = append([]string{p.Authors}, meta...)
	}
	if p.Source != "" {
		meta = append(meta, p.Source)
	}
	lines := []string{title, "  " + t.SecondaryText.Render(truncate(strings.Join(meta, " · "), w))}

	snippet := summary.Snippet(p.SummaryShort, w)
	if snippet != "" {
		snipLines := strings.Split(snippet, "\n")
		if len(snipLines) > 3 {
			snipLines = append(snipLines[:3:3], "…")
		}
		for _, s := range snipLines {
			lines = append(lines, "  "+t.Base.Render(s))
		}
	}
	return strings.Join(lines, "\n")
}

// renderPageControls draws numbered page buttons around the current page.
func (l ListView) renderPageControls() string {
	t := l.theme
	total := l.pager.TotalPages
	current := l.CurrentPage()
	if total <= 1 {
		return t.MutedText.Render("page " + l.pager.View())
	}

	const window = 9
	lo, hi := 1, total
	if total > window {
		lo = max(1, current-window/2)
		hi = lo + window - 1
		if hi > total {
			hi = total
			lo = hi - window + 1
		}
	}

	parts := []string{t.MutedText.Render("‹")}
	if lo > 1 {
		parts = append(parts, t.MutedText.Render("…"))
	}
	for n := lo; n <= hi; n++ {
		label := strconv.Itoa(n)
		if n == current {
			parts = append(parts, t.PrimaryBold.Render("["+label+"]"))
		} else {
			parts = append(parts, t.SecondaryText.Render(label))
		}
	}
	if hi < total {
		parts = append(parts, t.MutedText.Render("…"))
	}
	parts = append(parts, t.MutedText.Render("›"), t.MutedText.Render("page "+l.pager.View()))
	return strings.Join(parts, " ")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
