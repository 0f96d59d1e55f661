package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sahilm/fuzzy"
)

// hit is one searchable item.
type hit struct {
	component int
	item      int
	text      string
}

// corpus adapts the items of every component to fuzzy.Source.
type corpus []hit

func (c corpus) String(i int) string { return c[i].text }
func (c corpus) Len() int            { return len(c) }

// search is the state of the fuzzy finder prompt.
type search struct {
	input   textinput.Model
	corpus  corpus
	matches fuzzy.Matches
	cursor  int
}

func newSearch(c corpus) *search {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search items"
	ti.CharLimit = 120
	ti.Width = 40
	ti.Focus()
	return &search{input: ti, corpus: c}
}

// refresh recomputes the matches for the current query.
func (s *search) refresh() {
	q := strings.TrimSpace(s.input.Value())
	s.cursor = 0
	if q == "" {
		s.matches = nil
		return
	}
	s.matches = fuzzy.FindFrom(q, s.corpus)
}

// move cycles through the matches.
func (s *search) move(delta int) {
	if n := len(s.matches); n > 0 {
		s.cursor = (s.cursor + delta + n) % n
	}
}

// current returns the selected match.
func (s *search) current() (hit, bool) {
	if s.cursor < 0 || s.cursor >= len(s.matches) {
		return hit{}, false
	}
	return s.corpus[s.matches[s.cursor].Index], true
}

// summary describes the match count for the search bar.
func (s *search) summary() string {
	switch {
	case s.input.Value() == "":
		return ""
	case len(s.matches) == 0:
		return "no matches"
	}
	return fmt.Sprintf("%d/%d", s.cursor+1, len(s.matches))
}
