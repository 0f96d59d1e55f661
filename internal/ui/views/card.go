package views

import (
	"strings"

	"github.com/Akashdeep-Patra/spots/internal/geometry"
	"github.com/Akashdeep-Patra/spots/internal/model"
	"github.com/Akashdeep-Patra/spots/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// maxCardTextLines bounds how much body text a card shows.
const maxCardTextLines = 3

// cardRenderer draws a bordered card of fixed width, the natural item of
// a carousel.
type cardRenderer struct{ base }

func cardWidth(it model.Item, width float64) float64 {
	if w := it.Meta.Float("width", 0); w > 0 {
		return w
	}
	if it.Size.Width > 0 && it.Size.Width < width {
		return it.Size.Width
	}
	return defaultCardWidth
}

// content lays out the lines inside the border for the given outer width.
func (r *cardRenderer) content(it model.Item, outer int) []string {
	inner := max(1, outer-4)
	lines := []string{r.styles.Title.Render(ui.Truncate(label(it), inner))}
	if it.Subtitle != "" {
		lines = append(lines, r.styles.Subtitle.Render(ui.Truncate(it.Subtitle, inner)))
	}
	if it.Text != "" {
		wrapped := strings.Split(lipgloss.NewStyle().Width(inner).Render(it.Text), "\n")
		if len(wrapped) > maxCardTextLines {
			wrapped = wrapped[:maxCardTextLines]
		}
		for _, l := range wrapped {
			lines = append(lines, r.styles.Body.Render(strings.TrimRight(l, " ")))
		}
	}
	if it.Action != "" {
		lines = append(lines, r.styles.Action.Render(ui.Truncate(it.Action, inner)))
	}
	return lines
}

func (r *cardRenderer) PreferredSize(it model.Item, width float64) geometry.Size {
	w := cardWidth(it, width)
	return geometry.Size{Width: w, Height: float64(len(r.content(it, int(w))) + 2)}
}

func (r *cardRenderer) Render(width int, selected bool) string {
	style := r.styles.Card
	if selected {
		style = r.styles.CardSelected
	}
	return style.Width(max(1, width-2)).Render(strings.Join(r.content(r.item, width), "\n"))
}

// cellRenderer draws a boxed grid cell that fills the column width.
type cellRenderer struct{ base }

func (r *cellRenderer) PreferredSize(it model.Item, width float64) geometry.Size {
	h := 3.0
	if it.Subtitle != "" {
		h++
	}
	return geometry.Size{Width: width, Height: h}
}

func (r *cellRenderer) Render(width int, selected bool) string {
	inner := max(1, width-2)
	lines := []string{r.styles.Title.Render(ui.Truncate(label(r.item), inner))}
	if r.item.Subtitle != "" {
		lines = append(lines, r.styles.Subtitle.Render(ui.Truncate(r.item.Subtitle, inner)))
	}
	style := r.styles.Cell
	if selected {
		style = r.styles.CellSelected
	}
	return style.Width(inner).Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
}
