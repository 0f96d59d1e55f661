package components

import (
	"math"

	"github.com/Akashdeep-Patra/spots/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// Scrollbar returns one cell per row of a vertical scrollbar track for the
// outer viewport. The thumb length is proportional to the visible share of
// the stitched content and its position follows the external offset.
//
// Returns nil when everything fits and no scrolling is possible.
//
//	Parameters:
//	  styles   – application styles (for theming)
//	  height   – rows of the track
//	  content  – stitched content height
//	  visible  – viewport height
//	  offset   – external content offset
func Scrollbar(styles ui.Styles, height int, content, visible, offset float64) []string {
	if content <= visible || height < 1 || visible <= 0 {
		return nil
	}
	t := styles.Theme

	thumb := int(math.Round(float64(height) * visible / content))
	thumb = min(max(thumb, 1), height)

	travel := height - thumb
	pct := offset / (content - visible)
	start := int(math.Round(pct * float64(travel)))
	start = min(max(start, 0), travel)

	thumbCell := lipgloss.NewStyle().Foreground(t.Primary).Render("█")
	trackCell := lipgloss.NewStyle().Foreground(t.Border).Render("░")

	out := make([]string, height)
	for i := range out {
		if i >= start && i < start+thumb {
			out[i] = thumbCell
		} else {
			out[i] = trackCell
		}
	}
	return out
}
