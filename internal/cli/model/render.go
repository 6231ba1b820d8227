package model

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/phreebee/dockyard/internal/domain/entity"
)

type cellStyle uint8

const (
	stylePlain cellStyle = iota
	styleDocument
	styleFrame
	styleFocused
	styleTitle
	styleSpacer
)

type cell struct {
	r     rune
	style cellStyle
}

// canvas is a grid of styled runes addressed in terminal cells.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: max(w, 0), h: max(h, 0)}
	c.cells = make([]cell, c.w*c.h)
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
	return c
}

func (c *canvas) set(x, y int, r rune, s cellStyle) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell{r: r, style: s}
}

func (c *canvas) text(x, y, limit int, s string, style cellStyle) {
	for _, r := range s {
		if limit <= 0 {
			return
		}
		c.set(x, y, r, style)
		x++
		limit--
	}
}

func (c *canvas) box(r cellRect, style cellStyle) {
	if r.w < 2 || r.h < 2 {
		return
	}
	x1, y1 := r.x+r.w-1, r.y+r.h-1
	for x := r.x + 1; x < x1; x++ {
		c.set(x, r.y, '─', style)
		c.set(x, y1, '─', style)
	}
	for y := r.y + 1; y < y1; y++ {
		c.set(r.x, y, '│', style)
		c.set(x1, y, '│', style)
	}
	c.set(r.x, r.y, '┌', style)
	c.set(x1, r.y, '┐', style)
	c.set(r.x, y1, '└', style)
	c.set(x1, y1, '┘', style)
}

func (c *canvas) fill(r cellRect, ch rune, style cellStyle) {
	for y := r.y; y < r.y+r.h; y++ {
		for x := r.x; x < r.x+r.w; x++ {
			c.set(x, y, ch, style)
		}
	}
}

// render joins runs of equally styled cells into lipgloss-rendered strings.
func (c *canvas) render(styles map[cellStyle]lipgloss.Style) string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		row := c.cells[y*c.w : (y+1)*c.w]
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].style == row[start].style {
				continue
			}
			run := make([]rune, 0, x-start)
			for _, cl := range row[start:x] {
				run = append(run, cl.r)
			}
			b.WriteString(styles[row[start].style].Render(string(run)))
			start = x
		}
		if y < c.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

type cellRect struct {
	x, y, w, h int
}

// toCells maps a pixel rectangle onto the terminal grid.
func toCells(r entity.Rect) cellRect {
	x0, y0 := r.X/CellWidth, r.Y/CellHeight
	x1, y1 := (r.X+r.W)/CellWidth, (r.Y+r.H)/CellHeight
	return cellRect{x: x0, y: y0, w: x1 - x0, h: y1 - y0}
}

// View implements tea.Model.
func (m DockModel) View() string {
	t := m.theme
	rows := max(m.height-footerRows, 0)
	c := newCanvas(m.width, rows)

	m.drawDocument(c)
	for _, p := range m.dock.Panels() {
		if p.Hidden() {
			continue
		}
		m.drawPanel(c, p)
	}
	if sp, ok := m.dock.Hovered(); ok {
		ch := '┃'
		if sp.Axis == entity.AxisVertical {
			ch = '━'
		}
		c.fill(toCells(sp.Rect), ch, styleSpacer)
	}

	canvasStyles := map[cellStyle]lipgloss.Style{
		stylePlain:    lipgloss.NewStyle(),
		styleDocument: t.Document,
		styleFrame:    t.PanelFrame,
		styleFocused:  t.PanelFocused,
		styleTitle:    t.PanelTitle,
		styleSpacer:   t.Spacer,
	}

	var b strings.Builder
	if rows > 0 {
		b.WriteString(c.render(canvasStyles))
		b.WriteString("\n")
	}
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m DockModel) drawDocument(c *canvas) {
	r := toCells(m.dock.Center())
	if r.w <= 0 || r.h <= 0 {
		return
	}
	c.box(r, styleDocument)

	label := "no document"
	if k, ok := m.shell.CurrentContext(); ok {
		label = string(k)
	}
	x := r.x + max((r.w-len([]rune(label)))/2, 1)
	c.text(x, r.y+r.h/2, r.w-2, label, styleDocument)

	docs := m.shell.Documents()
	if len(docs) > 0 && r.h > 3 {
		tabs := strings.Join(docs, " │ ")
		c.text(r.x+2, r.y+1, r.w-4, tabs, styleDocument)
	}
}

func (m DockModel) drawPanel(c *canvas, p *entity.Panel) {
	r := toCells(p.Rect())
	if r.w <= 0 || r.h <= 0 {
		return
	}
	frame := styleFrame
	if p.State() == entity.ShowFocused {
		frame = styleFocused
	}

	if r.w < 2 || r.h < 2 {
		c.text(r.x, r.y, r.w, "["+p.Title+"]", frame)
		return
	}
	c.box(r, frame)
	c.text(r.x+1, r.y, r.w-2, " "+p.Title+" ", styleTitle)
	if r.h > 2 {
		c.text(r.x+1, r.y+1, r.w-2, m.panelLabel(p), stylePlain)
	}
}

func (m DockModel) panelLabel(p *entity.Panel) string {
	var content entity.ContentHandle
	if p.Mode() == entity.ContentSolo {
		content = p.Solo().Content()
	} else if k, ok := m.shell.CurrentContext(); ok {
		content = p.Collection().Find(k)
	}
	if tc, ok := content.(*TextContent); ok {
		return tc.Label
	}
	return p.Mode().String()
}

func (m DockModel) renderStatus() string {
	t := m.theme
	var parts []string
	if !m.dock.DecorVisible() {
		parts = append(parts, t.BadgeMuted.Render("sides hidden"))
	}
	if m.drag != nil {
		parts = append(parts, t.Badge.Render("dragging "+m.drag.Kind.String()))
	}
	switch {
	case m.err != nil:
		parts = append(parts, t.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.status != "":
		parts = append(parts, t.Subtle.Render(m.status))
	}
	return strings.Join(parts, " ")
}
