// Package views holds the concrete item renderers. Every renderer measures
// an item in terminal cells and draws it with the shared styles; the pane
// asks the registry for a renderer by item kind.
package views

import (
	"strings"

	"github.com/Akashdeep-Patra/spots/internal/geometry"
	"github.com/Akashdeep-Patra/spots/internal/model"
	"github.com/Akashdeep-Patra/spots/internal/registry"
	"github.com/Akashdeep-Patra/spots/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// Item kinds with a dedicated renderer. Anything else uses the default.
const (
	KindRow       = "row"
	KindCard      = "card"
	KindCell      = "cell"
	KindHeader    = "header"
	KindText      = "text"
	KindComposite = "composite"
)

// defaultCardWidth is used when a card carries no "width" meta value.
const defaultCardWidth = 24

// NewRegistry returns a registry with every renderer of this package
// registered and the plain line renderer as the fallback.
func NewRegistry(styles ui.Styles) *registry.Registry {
	reg := registry.New(nil)
	Register(reg, styles)
	return reg
}

// Register binds the renderers of this package on reg and makes the plain
// line renderer its fallback.
func Register(reg *registry.Registry, styles ui.Styles) {
	reg.RegisterDefault(func() registry.Renderer { return &lineRenderer{styles: styles} })
	reg.Register(KindRow, func() registry.Renderer { return &rowRenderer{base{styles: styles}} })
	reg.Register(KindCard, func() registry.Renderer { return &cardRenderer{base{styles: styles}} })
	reg.Register(KindCell, func() registry.Renderer { return &cellRenderer{base{styles: styles}} })
	reg.Register(KindHeader, func() registry.Renderer { return &headerRenderer{base{styles: styles}} })
	reg.Register(KindText, func() registry.Renderer { return &textRenderer{base{styles: styles}} })
	reg.Register(KindComposite, func() registry.Renderer { return &compositeRenderer{base{styles: styles}} })
}

// base carries the configured item and implements Configure and Reset.
type base struct {
	styles ui.Styles
	item   model.Item
}

func (b *base) Configure(item model.Item) { b.item = item }
func (b *base) Reset()                    { b.item = model.Item{} }

func label(it model.Item) string {
	switch {
	case it.Title != "":
		return it.Title
	case it.Identifier != "":
		return it.Identifier
	case it.Kind != "":
		return it.Kind
	}
	return "untitled"
}

// lineRenderer draws a single line. It is the fallback for unknown kinds.
type lineRenderer struct {
	styles ui.Styles
	item   model.Item
}

func (r *lineRenderer) Configure(item model.Item) { r.item = item }
func (r *lineRenderer) Reset()                    { r.item = model.Item{} }

func (r *lineRenderer) PreferredSize(_ model.Item, width float64) geometry.Size {
	return geometry.Size{Width: width, Height: 1}
}

func (r *lineRenderer) Render(width int, selected bool) string {
	text := ui.Truncate(label(r.item), max(1, width-2))
	if selected {
		return r.styles.RowSelected.Render("›" + text)
	}
	return r.styles.Row.Render(text)
}

// rowRenderer is a list row: a title line and an optional subtitle line.
type rowRenderer struct{ base }

func (r *rowRenderer) PreferredSize(it model.Item, width float64) geometry.Size {
	h := 1.0
	if it.Subtitle != "" {
		h++
	}
	return geometry.Size{Width: width, Height: h}
}

func (r *rowRenderer) Render(width int, selected bool) string {
	avail := max(1, width-2)
	title := r.item.Title
	if title == "" {
		title = label(r.item)
	}

	var action string
	if r.item.Action != "" && width >= 40 {
		action = r.styles.Action.Render(ui.Truncate(r.item.Action, avail/3))
		avail -= lipgloss.Width(action) + 1
	}

	first := r.styles.Title.Render(ui.Truncate(title, max(1, avail)))
	if action != "" {
		gap := max(1, width-2-lipgloss.Width(first)-lipgloss.Width(action))
		first += strings.Repeat(" ", gap) + action
	}
	lines := []string{first}
	if r.item.Subtitle != "" {
		lines = append(lines, r.styles.Subtitle.Render(ui.Truncate(r.item.Subtitle, max(1, width-4))))
	}

	style := r.styles.Row
	if selected {
		style = r.styles.RowSelected
		lines[0] = "›" + lines[0]
		for i := 1; i < len(lines); i++ {
			lines[i] = " " + lines[i]
		}
	}
	return style.Render(strings.Join(lines, "\n"))
}

// headerRenderer draws a bold title over a horizontal rule.
type headerRenderer struct{ base }

func (r *headerRenderer) PreferredSize(_ model.Item, width float64) geometry.Size {
	return geometry.Size{Width: width, Height: 2}
}

func (r *headerRenderer) Render(width int, _ bool) string {
	title := r.styles.Header.Render(ui.Truncate(label(r.item), max(1, width-2)))
	if r.item.Subtitle != "" && width >= 30 {
		title += "  " + r.styles.Muted.Render(ui.Truncate(r.item.Subtitle, max(1, width/3)))
	}
	rule := r.styles.Rule.Render(strings.Repeat("─", max(0, width)))
	return title + "\n" + rule
}

// textRenderer wraps the item's text to the available width.
type textRenderer struct{ base }

func (r *textRenderer) body(it model.Item) string {
	if it.Text != "" {
		return it.Text
	}
	return label(it)
}

func (r *textRenderer) wrap(it model.Item, width int) string {
	return lipgloss.NewStyle().Width(max(1, width-2)).PaddingLeft(2).Render(r.body(it))
}

func (r *textRenderer) PreferredSize(it model.Item, width float64) geometry.Size {
	return geometry.Size{Width: width, Height: float64(lipgloss.Height(r.wrap(it, int(width))))}
}

func (r *textRenderer) Render(width int, selected bool) string {
	out := r.wrap(r.item, width)
	if selected {
		return r.styles.Bold.Render(out)
	}
	return r.styles.Body.Render(out)
}

// compositeRenderer draws a title followed by one indented line per child.
type compositeRenderer struct{ base }

func (r *compositeRenderer) PreferredSize(it model.Item, width float64) geometry.Size {
	return geometry.Size{Width: width, Height: float64(1 + len(it.Children))}
}

func (r *compositeRenderer) Render(width int, selected bool) string {
	lines := []string{r.styles.Title.Render(ui.Truncate(label(r.item), max(1, width-2)))}
	for _, child := range r.item.Children {
		lines = append(lines, r.styles.Muted.Render("  • "+ui.Truncate(label(child), max(1, width-6))))
	}
	style := r.styles.Row
	if selected {
		style = r.styles.RowSelected
		lines[0] = "›" + lines[0]
		for i := 1; i < len(lines); i++ {
			lines[i] = " " + lines[i]
		}
	}
	return style.Render(strings.Join(lines, "\n"))
}
