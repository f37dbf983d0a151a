package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// cellKind selects the style a canvas cell is drawn with.
type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellLink
	cellMarker
	cellCollapsed
	cellLabel
	cellRoot
	cellSelected
)

// Connector directions, combined per cell into a box-drawing rune.
const (
	dirUp uint8 = 1 << iota
	dirDown
	dirLeft
	dirRight
)

var boxRunes = map[uint8]rune{
	dirLeft:                             '─',
	dirRight:                            '─',
	dirLeft | dirRight:                  '─',
	dirUp:                               '│',
	dirDown:                             '│',
	dirUp | dirDown:                     '│',
	dirDown | dirRight:                  '┌',
	dirDown | dirLeft:                   '┐',
	dirUp | dirRight:                    '└',
	dirUp | dirLeft:                     '┘',
	dirUp | dirDown | dirRight:          '├',
	dirUp | dirDown | dirLeft:           '┤',
	dirLeft | dirRight | dirDown:        '┬',
	dirLeft | dirRight | dirUp:          '┴',
	dirUp | dirDown | dirLeft | dirRight: '┼',
}

// canvas is a fixed-size grid of terminal cells. Connectors are accumulated
// as direction masks so crossing links merge into junctions; text drawn on
// top replaces them.
type canvas struct {
	w, h  int
	runes [][]rune
	cont  [][]bool // right half of a wide rune
	masks [][]uint8
	kinds [][]cellKind
}

func newCanvas(w, h int) *canvas {
	w, h = max(0, w), max(0, h)
	c := &canvas{w: w, h: h}
	c.runes = make([][]rune, h)
	c.cont = make([][]bool, h)
	c.masks = make([][]uint8, h)
	c.kinds = make([][]cellKind, h)
	for y := range h {
		c.runes[y] = make([]rune, w)
		c.cont[y] = make([]bool, w)
		c.masks[y] = make([]uint8, w)
		c.kinds[y] = make([]cellKind, w)
	}
	return c
}

func (c *canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.w && y < c.h
}

func (c *canvas) mark(x, y int, dir uint8) {
	if !c.inside(x, y) {
		return
	}
	c.masks[y][x] |= dir
	if c.kinds[y][x] == cellEmpty {
		c.kinds[y][x] = cellLink
	}
}

// hline connects (x1,y) to (x2,y).
func (c *canvas) hline(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if x > x1 {
			c.mark(x, y, dirLeft)
		}
		if x < x2 {
			c.mark(x, y, dirRight)
		}
	}
}

// vline connects (x,y1) to (x,y2).
func (c *canvas) vline(x, y1, y2 int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if y > y1 {
			c.mark(x, y, dirUp)
		}
		if y < y2 {
			c.mark(x, y, dirDown)
		}
	}
}

// elbow draws a link starting at (sx,py) and ending next to a child marker
// at (cx,cy): right, then vertically two cells before the child, then right.
func (c *canvas) elbow(sx, py, cx, cy int) {
	mx := max(sx, cx-2)
	c.hline(sx, mx, py)
	c.vline(mx, py, cy)
	if cx-1 > mx {
		c.hline(mx, cx-1, cy)
	}
}

// text writes s starting at (x,y), clipped to the canvas.
func (c *canvas) text(x, y int, s string, kind cellKind) {
	if y < 0 || y >= c.h {
		return
	}
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x >= 0 && x+rw <= c.w {
			c.runes[y][x] = r
			c.masks[y][x] = 0
			c.kinds[y][x] = kind
			for i := 1; i < rw; i++ {
				c.runes[y][x+i] = 0
				c.cont[y][x+i] = true
				c.masks[y][x+i] = 0
				c.kinds[y][x+i] = kind
			}
		}
		x += rw
	}
}

func (c *canvas) cell(x, y int) rune {
	if r := c.runes[y][x]; r != 0 {
		return r
	}
	if m := c.masks[y][x]; m != 0 {
		if r, ok := boxRunes[m]; ok {
			return r
		}
	}
	return ' '
}

// render joins the rows, styling each run of same-kind cells once.
func (c *canvas) render(style func(cellKind) lipgloss.Style) string {
	rows := make([]string, c.h)
	for y := range c.h {
		var sb strings.Builder
		var run strings.Builder
		runKind := cellEmpty
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runKind == cellEmpty {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(style(runKind).Render(run.String()))
			}
			run.Reset()
		}
		for x := range c.w {
			if c.cont[y][x] {
				continue
			}
			k := c.kinds[y][x]
			if k != runKind {
				flush()
				runKind = k
			}
			run.WriteRune(c.cell(x, y))
		}
		flush()
		rows[y] = sb.String()
	}
	return strings.Join(rows, "\n")
}

// plain renders the canvas without styling.
func (c *canvas) plain() string {
	return c.render(func(cellKind) lipgloss.Style { return lipgloss.NewStyle() })
}
