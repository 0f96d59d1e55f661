package components

import (
	"github.com/Akashdeep-Patra/spots/internal/ui"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DialogKind specifies the type of dialog.
type DialogKind int

const (
	DialogConfirm DialogKind = iota
	DialogInput
)

// DialogResult is sent when the dialog is dismissed.
type DialogResult struct {
	Confirmed bool
	Value     string
	Tag       string // identifies which dialog this was
	// Target is the component handle and Index the item the dialog acts on.
	Target string
	Index  int
}

var dialogKeys = struct {
	Cancel, Submit, Toggle key.Binding
}{
	Cancel: key.NewBinding(key.WithKeys("esc")),
	Submit: key.NewBinding(key.WithKeys("enter")),
	Toggle: key.NewBinding(key.WithKeys("tab", "left", "right", "h", "l")),
}

// Dialog is a modal confirmation or input dialog.
type Dialog struct {
	Kind    DialogKind
	Title   string
	Message string
	Tag     string
	Target  string
	Index   int
	input   textinput.Model
	focused int // 0 = yes/input, 1 = no
	styles  ui.Styles
	visible bool
}

// NewConfirmDialog creates a Yes/No confirmation dialog.
func NewConfirmDialog(styles ui.Styles, title, message, tag string) Dialog {
	return Dialog{
		Kind:    DialogConfirm,
		Title:   title,
		Message: message,
		Tag:     tag,
		styles:  styles,
		visible: true,
	}
}

// NewInputDialog creates a text input dialog.
func NewInputDialog(styles ui.Styles, title, placeholder, tag string) Dialog {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 50
	return Dialog{
		Kind:    DialogInput,
		Title:   title,
		Tag:     tag,
		input:   ti,
		styles:  styles,
		visible: true,
	}
}

// For binds the dialog to an item of a component.
func (d Dialog) For(target string, index int) Dialog {
	d.Target = target
	d.Index = index
	return d
}

// Visible returns whether the dialog is showing.
func (d Dialog) Visible() bool { return d.visible }

func (d Dialog) result(confirmed bool, value string) tea.Cmd {
	r := DialogResult{Confirmed: confirmed, Value: value, Tag: d.Tag, Target: d.Target, Index: d.Index}
	return func() tea.Msg { return r }
}

// Update handles key events for the dialog.
func (d Dialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.visible {
		return d, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, dialogKeys.Cancel):
			d.visible = false
			return d, d.result(false, "")

		case key.Matches(keyMsg, dialogKeys.Submit):
			d.visible = false
			if d.Kind == DialogInput {
				return d, d.result(d.input.Value() != "", d.input.Value())
			}
			return d, d.result(d.focused == 0, "")

		case d.Kind == DialogConfirm && key.Matches(keyMsg, dialogKeys.Toggle):
			d.focused = 1 - d.focused
			return d, nil
		}
	}

	if d.Kind == DialogInput {
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return d, cmd
	}
	return d, nil
}

// View renders the dialog.
func (d Dialog) View() string {
	if !d.visible {
		return ""
	}
	t := d.styles.Theme

	title := d.styles.DialogTitle.Render(d.Title)
	var content string

	if d.Kind == DialogConfirm {
		message := lipgloss.NewStyle().Foreground(t.TextMuted).Render(d.Message)
		yes, no := "Yes", "No"
		inactive := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Padding(0, 3)
		if d.focused == 0 {
			yes = d.styles.DialogButton.Render(yes)
			no = inactive.Render(no)
		} else {
			yes = inactive.Render(yes)
			no = d.styles.DialogButton.Render(no)
		}
		buttons := lipgloss.JoinHorizontal(lipgloss.Top, yes, "  ", no)
		content = title + "\n\n" + message + "\n\n" + buttons
	} else {
		content = title + "\n\n" + d.input.View()
	}

	return d.styles.Dialog.Render(content)
}
