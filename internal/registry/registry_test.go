package registry

import (
	"sync"
	"testing"

	"github.com/Akashdeep-Patra/spots/internal/geometry"
	"github.com/Akashdeep-Patra/spots/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRenderer struct {
	height float64
	item   model.Item
	resets int
}

func (f *fixedRenderer) Configure(item model.Item) { f.item = item }

func (f *fixedRenderer) PreferredSize(_ model.Item, width float64) geometry.Size {
	return geometry.Size{Width: width, Height: f.height}
}

func (f *fixedRenderer) Render(int, bool) string { return f.item.Title }

func (f *fixedRenderer) Reset() {
	f.item = model.Item{}
	f.resets++
}

type otherRenderer struct{ fixedRenderer }

func factory(h float64) Factory {
	return func() Renderer { return &fixedRenderer{height: h} }
}

func TestResolveFallsBackToDefault(t *testing.T) {
	t.Parallel()

	r := New(factory(1))
	r.Register("card", factory(4))

	assert.True(t, r.Has("card"))
	assert.False(t, r.Has("unknown"))
	assert.Equal(t, 4.0, r.Resolve("card")().PreferredSize(model.Item{}, 10).Height)
	assert.Equal(t, 1.0, r.Resolve("unknown")().PreferredSize(model.Item{}, 10).Height)
	assert.Equal(t, []string{"card", "default"}, r.Identifiers())
}

func TestRegisterDefaultReplacesFallback(t *testing.T) {
	t.Parallel()

	r := New(factory(1))
	first := r.Make("unknown")
	r.RegisterDefault(factory(7))

	second := r.Make("unknown")
	assert.NotSame(t, first, second)
	assert.Equal(t, 7.0, second.PreferredSize(model.Item{}, 10).Height)
	assert.False(t, r.Has("unknown"))

	r.RegisterDefault(nil)
	assert.Equal(t, 7.0, r.Resolve("unknown")().PreferredSize(model.Item{}, 10).Height)
}

func TestMakeReusesCachedInstance(t *testing.T) {
	t.Parallel()

	r := New(factory(1))
	first := r.Make("row")
	first.Configure(model.Item{Title: "x"})

	second := r.Make("row")
	require.Same(t, first, second)
	assert.Equal(t, 1, second.(*fixedRenderer).resets)
	assert.Empty(t, second.Render(10, false))

	// Unknown kinds share the default slot.
	assert.Same(t, first, r.Make("other"))
	assert.Equal(t, 1, r.Cached())
}

func TestRegisterReplacesCachedInstance(t *testing.T) {
	t.Parallel()

	r := New(factory(1))
	r.Register("card", factory(2))
	before := r.Make("card")

	r.Register("card", func() Renderer { return &otherRenderer{fixedRenderer{height: 3}} })
	after := r.Make("card")

	assert.NotSame(t, before, after)
	_, ok := after.(*otherRenderer)
	assert.True(t, ok)
	assert.Equal(t, 3.0, after.PreferredSize(model.Item{}, 1).Height)
}

func TestRegisterIgnoresNilFactory(t *testing.T) {
	t.Parallel()

	r := New(factory(1))
	r.Register("card", nil)
	assert.False(t, r.Has("card"))
}

func TestPurgeKeepsFactories(t *testing.T) {
	t.Parallel()

	r := New(factory(1))
	r.Register("card", factory(2))
	r.Make("card")
	r.Make("row")
	require.Equal(t, 2, r.Cached())

	r.Purge()
	assert.Equal(t, 0, r.Cached())
	assert.True(t, r.Has("card"))
	assert.Equal(t, 2.0, r.Make("card").PreferredSize(model.Item{}, 1).Height)
}

func TestCacheIsBounded(t *testing.T) {
	t.Parallel()

	r := New(factory(1))
	for i := 0; i < maxCachedRenderers+5; i++ {
		id := string(rune('a'+i%26)) + string(rune('a'+i/26))
		r.Register(id, factory(1))
		r.Make(id)
	}
	assert.LessOrEqual(t, r.Cached(), maxCachedRenderers)
}

func TestConcurrentUse(t *testing.T) {
	t.Parallel()

	r := New(factory(1))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Register("card", factory(2))
				r.Resolve("card")
				r.Purge()
			}
		}()
	}
	wg.Wait()
	assert.True(t, r.Has("card"))
}
