package config

// KeyBindings defines the mapping of actions to keys. Any binding left
// empty in the config file keeps its default.
type KeyBindings struct {
	Quit      string `mapstructure:"quit"`
	Help      string `mapstructure:"help"`
	Tab       string `mapstructure:"tab"`
	ShiftTab  string `mapstructure:"shift_tab"`
	Up        string `mapstructure:"up"`
	Down      string `mapstructure:"down"`
	Left      string `mapstructure:"left"`
	Right     string `mapstructure:"right"`
	PageUp    string `mapstructure:"page_up"`
	PageDown  string `mapstructure:"page_down"`
	Top       string `mapstructure:"top"`
	Bottom    string `mapstructure:"bottom"`
	Enter     string `mapstructure:"enter"`
	Append    string `mapstructure:"append"`
	Delete    string `mapstructure:"delete"`
	MoveToTop string `mapstructure:"move_to_top"`
	Search    string `mapstructure:"search"`
	Refresh   string `mapstructure:"refresh"`
	Back      string `mapstructure:"back"`
}

// DefaultKeyBindings returns the default key bindings.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Quit:      "q",
		Help:      "?",
		Tab:       "tab",
		ShiftTab:  "shift+tab",
		Up:        "k",
		Down:      "j",
		Left:      "h",
		Right:     "l",
		PageUp:    "pgup",
		PageDown:  "pgdown",
		Top:       "g",
		Bottom:    "G",
		Enter:     "enter",
		Append:    "a",
		Delete:    "x",
		MoveToTop: "u",
		Search:    "/",
		Refresh:   "r",
		Back:      "esc",
	}
}

// WithDefaults fills every empty binding from DefaultKeyBindings.
func (k KeyBindings) WithDefaults() KeyBindings {
	d := DefaultKeyBindings()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&k.Quit, d.Quit)
	fill(&k.Help, d.Help)
	fill(&k.Tab, d.Tab)
	fill(&k.ShiftTab, d.ShiftTab)
	fill(&k.Up, d.Up)
	fill(&k.Down, d.Down)
	fill(&k.Left, d.Left)
	fill(&k.Right, d.Right)
	fill(&k.PageUp, d.PageUp)
	fill(&k.PageDown, d.PageDown)
	fill(&k.Top, d.Top)
	fill(&k.Bottom, d.Bottom)
	fill(&k.Enter, d.Enter)
	fill(&k.Append, d.Append)
	fill(&k.Delete, d.Delete)
	fill(&k.MoveToTop, d.MoveToTop)
	fill(&k.Search, d.Search)
	fill(&k.Refresh, d.Refresh)
	fill(&k.Back, d.Back)
	return k
}
