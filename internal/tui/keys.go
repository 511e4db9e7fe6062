package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left     key.Binding
	Right    key.Binding
	Toggle   key.Binding
	Reset    key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "type")),
		Right:    key.NewBinding(key.WithKeys("right", "l")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("espace", "filtrer")),
		Reset:    key.NewBinding(key.WithKeys("r", "c"), key.WithHelp("r", "réinitialiser")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "élection")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup/pgdn", "défiler")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quitter")),
	}
}

// help lists the bindings worth advertising in the current state.
func (k keyMap) help(haveTypes, filtered, haveEntries, scrolls bool) []key.Binding {
	var out []key.Binding
	if haveTypes {
		out = append(out, k.Left, k.Toggle)
	}
	if filtered {
		out = append(out, k.Reset)
	}
	if haveEntries {
		out = append(out, k.Up)
	}
	if scrolls {
		out = append(out, k.PageUp)
	}
	return append(out, k.Quit)
}
