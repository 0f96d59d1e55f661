package diff

import "github.com/Akashdeep-Patra/spots/internal/model"

// ComponentDiff classifies the first difference between two component models.
type ComponentDiff int

const (
	ComponentNone ComponentDiff = iota
	ComponentKind
	ComponentIdentifier
	ComponentLayout
	ComponentHeader
	ComponentFooter
	ComponentMeta
	ComponentItems
	ComponentTitle
)

func (c ComponentDiff) String() string {
	switch c {
	case ComponentKind:
		return "kind"
	case ComponentIdentifier:
		return "identifier"
	case ComponentLayout:
		return "layout"
	case ComponentHeader:
		return "header"
	case ComponentFooter:
		return "footer"
	case ComponentMeta:
		return "meta"
	case ComponentItems:
		return "items"
	case ComponentTitle:
		return "title"
	}
	return "none"
}

// RequiresRebuild reports whether the difference cannot be expressed as
// item mutations and the whole component has to be replaced.
func (c ComponentDiff) RequiresRebuild() bool {
	return c == ComponentKind || c == ComponentIdentifier
}

// CompareComponents checks kind, identifier, title, layout, header, footer,
// meta and finally items, returning the first mismatch.
func CompareComponents(old, new model.ComponentModel) ComponentDiff {
	switch {
	case old.Kind != new.Kind:
		return ComponentKind
	case old.Identifier != new.Identifier:
		return ComponentIdentifier
	case old.Title != new.Title:
		return ComponentTitle
	case old.Layout != new.Layout:
		return ComponentLayout
	case !model.OptionalItemsEqual(old.Header, new.Header):
		return ComponentHeader
	case !model.OptionalItemsEqual(old.Footer, new.Footer):
		return ComponentFooter
	case !model.MetaEqual(old.Meta, new.Meta):
		return ComponentMeta
	case !model.ItemsEqual(old.Items, new.Items):
		return ComponentItems
	}
	return ComponentNone
}
