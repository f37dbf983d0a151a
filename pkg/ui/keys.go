package ui

import "github.com/charmbracelet/bubbles/key"

// listKeys are the bindings of the paper list.
type listKeys struct {
	Up, Down   key.Binding
	Open       key.Binding
	Search     key.Binding
	Sort       key.Binding
	Next, Prev key.Binding
	Fetch      key.Binding
	Reload     key.Binding
	Clear      key.Binding
}

var defaultListKeys = listKeys{
	Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
	Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Sort:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
	Next:   key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n/→", "next page")),
	Prev:   key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p/←", "prev page")),
	Fetch:  key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "fetch new")),
	Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Clear:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
}

// detailKeys are the bindings of the detail view.
type detailKeys struct {
	Back   key.Binding
	Focus  key.Binding
	Copy   key.Binding
	Reload key.Binding
}

var defaultDetailKeys = detailKeys{
	Back:   key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Focus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
	Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link")),
	Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
}

// mindmapKeys drive the mindmap pane when it has focus.
type mindmapKeys struct {
	Up, Down, Parent, Child key.Binding
	Toggle                  key.Binding
	PanLeft, PanRight       key.Binding
	PanUp, PanDown          key.Binding
	ZoomIn, ZoomOut         key.Binding
	Reset                   key.Binding
	ExpandAll, CollapseAll  key.Binding
	Outline                 key.Binding
}

var defaultMindmapKeys = mindmapKeys{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "select")),
	Down:        key.NewBinding(key.WithKeys("down", "j")),
	Parent:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "parent/child")),
	Child:       key.NewBinding(key.WithKeys("right", "l")),
	Toggle:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "toggle")),
	PanLeft:     key.NewBinding(key.WithKeys("H"), key.WithHelp("HJKL", "pan")),
	PanDown:     key.NewBinding(key.WithKeys("J")),
	PanUp:       key.NewBinding(key.WithKeys("K")),
	PanRight:    key.NewBinding(key.WithKeys("L")),
	ZoomIn:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
	ZoomOut:     key.NewBinding(key.WithKeys("-", "_")),
	Reset:       key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset view")),
	ExpandAll:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e/c", "expand/collapse all")),
	CollapseAll: key.NewBinding(key.WithKeys("c")),
	Outline:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "outline")),
}

// globalKeys work everywhere except while a text input has focus.
type globalKeys struct {
	Quit     key.Binding
	DarkMode key.Binding
}

var defaultGlobalKeys = globalKeys{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	DarkMode: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "dark mode")),
}

// helpLine joins the help text of bindings that carry one.
func helpLine(t Theme, bindings ...key.Binding) string {
	var out string
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		if out != "" {
			out += t.MutedText.Render("  ")
		}
		out += t.SecondaryText.Render(h.Key) + " " + t.MutedText.Render(h.Desc)
	}
	return out
}
