package pane

import (
	"math"
	"strings"

	"github.com/Akashdeep-Patra/spots/internal/component"
	"github.com/Akashdeep-Patra/spots/internal/geometry"
	"github.com/Akashdeep-Patra/spots/internal/model"
	"github.com/Akashdeep-Patra/spots/internal/ui"
)

func (p *Pane) invalidate() {
	p.lines = nil
	p.rects = nil
}

// Lines returns the whole rendered content, one string per cell row.
func (p *Pane) Lines() []string {
	p.ensureRendered()
	return p.lines
}

// Visible returns the content rows shown in the current frame, starting at
// the content offset. Rows past the end of the content are not returned, so
// a frame taller than its remaining content leaves the space below to
// whatever is drawn there.
func (p *Pane) Visible() []string {
	lines := p.Lines()
	top := int(p.offset.Y)
	if p.ScrollsHorizontally() {
		top = 0
	}
	if top >= len(lines) {
		return nil
	}
	bottom := min(len(lines), top+int(p.frame.Size.Height))
	out := make([]string, 0, max(0, bottom-top))
	w := int(p.width)
	for _, l := range lines[top:bottom] {
		if p.ScrollsHorizontally() {
			l = ui.CutColumns(l, int(p.offset.X), w)
		}
		out = append(out, l)
	}
	return out
}

func (p *Pane) ensureRendered() {
	if p.lines != nil {
		return
	}
	p.lines, p.rects = p.render()
}

// render lays out the rows the same way component.Height sums them and
// returns the content lines with the rectangle of every row.
func (p *Pane) render() ([]string, []geometry.Rect) {
	l := p.layout
	width := int(p.width)
	left := int(l.Inset.Left)
	rects := make([]geometry.Rect, len(p.rows))
	var lines []string

	blank := func(n int) {
		for range max(0, n) {
			lines = append(lines, "")
		}
	}

	if len(p.rows) == 0 && !l.ShowEmptyComponent {
		return []string{}, rects
	}

	blank(int(l.Inset.Top))
	if p.header != nil {
		lines = append(lines, p.block(*p.header, width, false, markNone)...)
	}

	itemW := int(component.ItemWidth(p.presentation(), p.width))
	spacing := int(l.ItemSpacing)
	switch p.kind {
	case model.KindCarousel:
		lines = append(lines, p.band(0, len(p.rows), itemW, spacing, left, len(lines), rects)...)
	case model.KindGrid:
		cols := l.Columns()
		for start := 0; start < len(p.rows); start += cols {
			if start > 0 {
				blank(int(l.LineSpacing))
			}
			lines = append(lines, p.band(start, min(start+cols, len(p.rows)), itemW, spacing, left, len(lines), rects)...)
		}
	default:
		for i, r := range p.rows {
			if i > 0 && p.kind != model.KindCustom {
				blank(spacing)
			}
			block := p.block(r.item, itemW, p.isSelected(i), r.mark)
			rects[i] = geometry.Rect{
				Origin: geometry.Point{X: float64(left), Y: float64(len(lines))},
				Size:   geometry.Size{Width: float64(itemW), Height: float64(len(block))},
			}
			lines = append(lines, indent(block, left)...)
		}
	}

	if p.footer != nil {
		lines = append(lines, p.block(*p.footer, width, false, markNone)...)
	}
	blank(int(l.Inset.Bottom))
	if lines == nil {
		lines = []string{}
	}
	return lines, rects
}

// band renders rows [from, to) side by side starting at line y.
func (p *Pane) band(from, to, itemW, spacing, left, y int, rects []geometry.Rect) []string {
	blocks := make([][]string, 0, to-from)
	widths := make([]int, 0, to-from)
	height := 0
	x := left
	for i := from; i < to; i++ {
		r := p.rows[i]
		w := itemW
		if p.kind == model.KindCarousel && r.item.Size.Width > 0 {
			w = int(math.Ceil(r.item.Size.Width))
		}
		block := p.block(r.item, w, p.isSelected(i), r.mark)
		rects[i] = geometry.Rect{
			Origin: geometry.Point{X: float64(x), Y: float64(y)},
			Size:   geometry.Size{Width: float64(w), Height: float64(len(block))},
		}
		x += w + spacing
		blocks = append(blocks, block)
		widths = append(widths, w)
		height = max(height, len(block))
	}

	out := make([]string, height)
	gap := strings.Repeat(" ", max(0, spacing))
	for line := range out {
		var sb strings.Builder
		sb.WriteString(strings.Repeat(" ", left))
		for n, block := range blocks {
			if n > 0 {
				sb.WriteString(gap)
			}
			var s string
			if line < len(block) {
				s = block[line]
			}
			sb.WriteString(ui.FitWidth(s, widths[n]))
		}
		out[line] = sb.String()
	}
	return out
}

// block renders one item to exactly its measured height.
func (p *Pane) block(it model.Item, width int, selected bool, m mark) []string {
	r := p.registry.Make(it.Kind)
	r.Configure(it)
	size := it.Size
	if size.IsZero() {
		size = r.PreferredSize(it, float64(width))
	}
	h := int(math.Ceil(size.Height))
	if h <= 0 {
		return nil
	}
	lines := ui.FitLines(r.Render(width, selected), width, h)
	if m != markNone && width > 1 {
		gutter := p.styles.Inserted.Render("▎")
		if m == markReloaded {
			gutter = p.styles.Reloaded.Render("▎")
		}
		for i, l := range lines {
			lines[i] = gutter + ui.CutColumns(l, 1, width-1)
		}
	}
	return lines
}

func (p *Pane) isSelected(i int) bool {
	return p.focused && i == p.selected
}

// presentation rebuilds the item-less model used for width math.
func (p *Pane) presentation() model.ComponentModel {
	return model.ComponentModel{Kind: p.kind, Layout: p.layout}
}

func indent(lines []string, n int) []string {
	if n <= 0 {
		return lines
	}
	pad := strings.Repeat(" ", n)
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return lines
}
