package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds all colours for the application.
// The dark palette is Catppuccin Mocha, the light one Catppuccin Latte.
type Theme struct {
	Name string

	Bg            lipgloss.Color
	Surface       lipgloss.Color
	SurfaceHover  lipgloss.Color
	Border        lipgloss.Color
	BorderFocused lipgloss.Color

	Text        lipgloss.Color
	TextMuted   lipgloss.Color
	TextSubtle  lipgloss.Color
	TextInverse lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// Inserted and Reloaded tint rows while a structural change settles.
	Inserted lipgloss.Color
	Reloaded lipgloss.Color

	// KindColors tint the badge of each component kind.
	KindColors map[string]lipgloss.Color
}

// DarkTheme returns the default dark theme.
func DarkTheme() Theme {
	return Theme{
		Name: "dark",

		Bg:            lipgloss.Color("#1e1e2e"),
		Surface:       lipgloss.Color("#282840"),
		SurfaceHover:  lipgloss.Color("#313152"),
		Border:        lipgloss.Color("#3b3b5c"),
		BorderFocused: lipgloss.Color("#7c7cf0"),

		Text:        lipgloss.Color("#cdd6f4"),
		TextMuted:   lipgloss.Color("#9399b2"),
		TextSubtle:  lipgloss.Color("#6c7086"),
		TextInverse: lipgloss.Color("#1e1e2e"),

		Primary:   lipgloss.Color("#89b4fa"),
		Secondary: lipgloss.Color("#b4befe"),
		Accent:    lipgloss.Color("#f5c2e7"),

		Success: lipgloss.Color("#a6e3a1"),
		Warning: lipgloss.Color("#f9e2af"),
		Error:   lipgloss.Color("#f38ba8"),
		Info:    lipgloss.Color("#89b4fa"),

		Inserted: lipgloss.Color("#a6e3a1"),
		Reloaded: lipgloss.Color("#f9e2af"),

		KindColors: map[string]lipgloss.Color{
			"list":     "#89b4fa",
			"grid":     "#a6e3a1",
			"carousel": "#f5c2e7",
			"custom":   "#fab387",
		},
	}
}

// LightTheme returns the light variant.
func LightTheme() Theme {
	return Theme{
		Name: "light",

		Bg:            lipgloss.Color("#eff1f5"),
		Surface:       lipgloss.Color("#e6e9ef"),
		SurfaceHover:  lipgloss.Color("#ccd0da"),
		Border:        lipgloss.Color("#bcc0cc"),
		BorderFocused: lipgloss.Color("#7287fd"),

		Text:        lipgloss.Color("#4c4f69"),
		TextMuted:   lipgloss.Color("#6c6f85"),
		TextSubtle:  lipgloss.Color("#9ca0b0"),
		TextInverse: lipgloss.Color("#eff1f5"),

		Primary:   lipgloss.Color("#1e66f5"),
		Secondary: lipgloss.Color("#7287fd"),
		Accent:    lipgloss.Color("#ea76cb"),

		Success: lipgloss.Color("#40a02b"),
		Warning: lipgloss.Color("#df8e1d"),
		Error:   lipgloss.Color("#d20f39"),
		Info:    lipgloss.Color("#1e66f5"),

		Inserted: lipgloss.Color("#40a02b"),
		Reloaded: lipgloss.Color("#df8e1d"),

		KindColors: map[string]lipgloss.Color{
			"list":     "#1e66f5",
			"grid":     "#40a02b",
			"carousel": "#ea76cb",
			"custom":   "#fe640b",
		},
	}
}

// ThemeByName resolves a configured theme name; unknown names fall back to
// the dark theme.
func ThemeByName(name string) Theme {
	if strings.EqualFold(strings.TrimSpace(name), "light") {
		return LightTheme()
	}
	return DarkTheme()
}

// Styles holds pre-computed lipgloss styles derived from a Theme.
type Styles struct {
	Theme Theme

	// Layout
	StatusBar lipgloss.Style
	HelpBar   lipgloss.Style
	SearchBar lipgloss.Style

	// Items
	Row          lipgloss.Style
	RowSelected  lipgloss.Style
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	Cell         lipgloss.Style
	CellSelected lipgloss.Style
	Header       lipgloss.Style
	Rule         lipgloss.Style
	Inserted     lipgloss.Style
	Reloaded     lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Action   lipgloss.Style
	Match    lipgloss.Style
	KeyBind  lipgloss.Style
	KeyDesc  lipgloss.Style

	// Dialogs
	Dialog       lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogButton lipgloss.Style
}

// NewStyles builds all styles from the given theme.
func NewStyles(t Theme) Styles {
	s := Styles{Theme: t}

	s.StatusBar = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Padding(0, 1)
	s.HelpBar = lipgloss.NewStyle().Foreground(t.TextSubtle).Padding(0, 1)
	s.SearchBar = lipgloss.NewStyle().Foreground(t.Text).Background(t.Surface).Padding(0, 1)

	s.Row = lipgloss.NewStyle().Foreground(t.Text).PaddingLeft(2)
	s.RowSelected = lipgloss.NewStyle().Foreground(t.Text).Background(t.SurfaceHover).Bold(true).PaddingLeft(1)
	s.Card = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1)
	s.CardSelected = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.BorderFocused).Padding(0, 1)
	s.Cell = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.Border)
	s.CellSelected = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.BorderFocused)
	s.Header = lipgloss.NewStyle().Foreground(t.Primary).Bold(true).PaddingLeft(1)
	s.Rule = lipgloss.NewStyle().Foreground(t.Border)
	s.Inserted = lipgloss.NewStyle().Foreground(t.Inserted)
	s.Reloaded = lipgloss.NewStyle().Foreground(t.Reloaded)

	s.Title = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.Subtitle = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.Body = lipgloss.NewStyle().Foreground(t.Text)
	s.Muted = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.Bold = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.Action = lipgloss.NewStyle().Foreground(t.Accent).Italic(true)
	s.Match = lipgloss.NewStyle().Foreground(t.Warning).Bold(true).Underline(true)
	s.KeyBind = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.KeyDesc = lipgloss.NewStyle().Foreground(t.TextMuted)

	s.Dialog = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(t.Primary).Padding(1, 2).Width(60)
	s.DialogTitle = lipgloss.NewStyle().Foreground(t.Text).Bold(true).Align(lipgloss.Center)
	s.DialogButton = lipgloss.NewStyle().Foreground(t.TextInverse).Background(t.Primary).Padding(0, 3).Bold(true)

	return s
}

// KindBadge renders a short coloured tag for a component kind.
func (s Styles) KindBadge(kind string) string {
	c, ok := s.Theme.KindColors[kind]
	if !ok {
		c = s.Theme.TextMuted
	}
	return lipgloss.NewStyle().Foreground(s.Theme.TextInverse).Background(c).Bold(true).Padding(0, 1).Render(kind)
}

// DefaultStyles returns styles using the dark theme.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}
