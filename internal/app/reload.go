package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/Akashdeep-Patra/spots/internal/common"
	"github.com/Akashdeep-Patra/spots/internal/diff"
	"github.com/Akashdeep-Patra/spots/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

type stepKind int

const (
	stepKeep stepKind = iota
	// stepItems replays an item change set on an existing component.
	stepItems
	// stepReplace swaps the model of an existing component in place.
	stepReplace
	stepAdd
	stepRemove
)

func (k stepKind) String() string {
	switch k {
	case stepItems:
		return "items"
	case stepReplace:
		return "replace"
	case stepAdd:
		return "add"
	case stepRemove:
		return "remove"
	}
	return "keep"
}

// step is the planned change for one component position.
type step struct {
	kind   stepKind
	index  int
	model  model.ComponentModel
	change diff.ComponentDiff
	// base and changes are set for stepItems.
	base    []model.Item
	changes *diff.ChangeSet
}

// reloadMsg carries a plan computed off the event loop.
type reloadMsg struct {
	seq   int
	steps []step
}

// plan compares the current component models with the new ones position by
// position. Kind or identifier changes rebuild a component, item changes are
// diffed, any other difference replaces the model in place.
func plan(old, new []model.ComponentModel, removeEmpty bool) []step {
	if removeEmpty {
		kept := make([]model.ComponentModel, 0, len(new))
		for _, m := range new {
			if len(m.Items) > 0 {
				kept = append(kept, m)
			}
		}
		new = kept
	}

	steps := make([]step, 0, max(len(old), len(new)))
	for i := range max(len(old), len(new)) {
		switch {
		case i >= len(new):
			steps = append(steps, step{kind: stepRemove, index: i})
		case i >= len(old):
			steps = append(steps, step{kind: stepAdd, index: i, model: new[i]})
		default:
			change := diff.CompareComponents(old[i], new[i])
			s := step{index: i, model: new[i], change: change}
			switch {
			case change == diff.ComponentNone:
				s.kind = stepKeep
			case change == diff.ComponentItems:
				s.kind = stepItems
				s.base = old[i].Items
				s.changes = diff.Diff(old[i].Items, new[i].Items)
			default:
				s.kind = stepReplace
			}
			steps = append(steps, s)
		}
	}
	return steps
}

// planCmd decodes data and plans the reload against current in a
// background goroutine.
func planCmd(seq int, data []byte, current []model.ComponentModel, kind model.Kind, removeEmpty bool) tea.Cmd {
	return func() tea.Msg {
		if !model.Valid(data) {
			return common.ErrMsg{Err: errors.New("layout file is not a components document")}
		}
		next := model.Decode(data, model.WithDefaultKind(kind))
		return reloadMsg{seq: seq, steps: plan(current, next, removeEmpty)}
	}
}

// readFileCmd reads the layout file for a manual refresh.
func readFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return common.ErrMsg{Err: fmt.Errorf("read layout: %w", err)}
		}
		return common.FileChangedMsg{Path: path, Data: data}
	}
}
