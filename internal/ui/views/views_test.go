package views

import (
	"strings"
	"testing"

	"github.com/Akashdeep-Patra/spots/internal/model"
	"github.com/Akashdeep-Patra/spots/internal/registry"
	"github.com/Akashdeep-Patra/spots/internal/ui"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryKinds(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(ui.DefaultStyles())
	for _, kind := range []string{KindRow, KindCard, KindCell, KindHeader, KindText, KindComposite} {
		assert.True(t, reg.Has(kind), kind)
	}
	assert.False(t, reg.Has("banner"))

	r := reg.Make("banner")
	require.NotNil(t, r)
	assert.Equal(t, 1.0, r.PreferredSize(model.Item{Title: "x"}, 40).Height)
}

func TestRegisterInstallsLineFallback(t *testing.T) {
	t.Parallel()

	reg := registry.New(nil)
	Register(reg, ui.DefaultStyles())

	_, ok := reg.Make("banner").(*lineRenderer)
	assert.True(t, ok)
	_, ok = reg.Make(KindRow).(*rowRenderer)
	assert.True(t, ok)
}

func TestPreferredHeights(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(ui.DefaultStyles())
	tests := []struct {
		name string
		item model.Item
		want float64
	}{
		{"row", model.Item{Kind: KindRow, Title: "a"}, 1},
		{"row with subtitle", model.Item{Kind: KindRow, Title: "a", Subtitle: "b"}, 2},
		{"header", model.Item{Kind: KindHeader, Title: "Section"}, 2},
		{"cell", model.Item{Kind: KindCell, Title: "a"}, 3},
		{"cell with subtitle", model.Item{Kind: KindCell, Title: "a", Subtitle: "b"}, 4},
		{"card", model.Item{Kind: KindCard, Title: "a"}, 3},
		{"card with action", model.Item{Kind: KindCard, Title: "a", Subtitle: "b", Action: "open"}, 5},
		{"composite", model.Item{Kind: KindComposite, Title: "a", Children: []model.Item{{Title: "x"}, {Title: "y"}}}, 3},
		{"short text", model.Item{Kind: KindText, Text: "hello"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := reg.Make(tt.item.Kind)
			r.Configure(tt.item)
			assert.Equal(t, tt.want, r.PreferredSize(tt.item, 40).Height)
		})
	}
}

func TestTextWraps(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(ui.DefaultStyles())
	it := model.Item{Kind: KindText, Text: strings.Repeat("word ", 20)}
	r := reg.Make(KindText)
	r.Configure(it)

	narrow := r.PreferredSize(it, 20).Height
	wide := r.PreferredSize(it, 200).Height
	assert.Greater(t, narrow, wide)
	assert.Equal(t, 1.0, wide)
}

func TestCardWidth(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(ui.DefaultStyles())
	r := reg.Make(KindCard)

	plain := model.Item{Kind: KindCard, Title: "a"}
	assert.Equal(t, float64(defaultCardWidth), r.PreferredSize(plain, 80).Width)

	wide := model.Item{Kind: KindCard, Title: "a", Meta: model.NewMeta("width", 30)}
	assert.Equal(t, 30.0, r.PreferredSize(wide, 80).Width)
}

func TestRenderMatchesMeasuredHeight(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(ui.DefaultStyles())
	items := []model.Item{
		{Kind: KindRow, Title: "Row", Subtitle: "sub"},
		{Kind: KindHeader, Title: "Header"},
		{Kind: KindCard, Title: "Card", Text: "body"},
		{Kind: KindCell, Title: "Cell"},
		{Kind: KindComposite, Title: "Group", Children: []model.Item{{Title: "one"}}},
		{Kind: "unknown", Title: "Line"},
	}
	for _, it := range items {
		r := reg.Make(it.Kind)
		r.Configure(it)
		size := r.PreferredSize(it, 40)
		out := r.Render(int(size.Width), false)
		assert.Equal(t, int(size.Height), lipgloss.Height(out), it.Kind)
		assert.Contains(t, out, it.Title, it.Kind)
	}
}

func TestSelectedRowIsMarked(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(ui.DefaultStyles())
	r := reg.Make(KindRow)
	r.Configure(model.Item{Title: "pick me"})

	assert.Contains(t, r.Render(30, true), "›")
	assert.NotContains(t, r.Render(30, false), "›")
}

func TestLabelFallbacks(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "t", label(model.Item{Title: "t", Identifier: "id"}))
	assert.Equal(t, "id", label(model.Item{Identifier: "id", Kind: "row"}))
	assert.Equal(t, "row", label(model.Item{Kind: "row"}))
	assert.Equal(t, "untitled", label(model.Item{}))
}
