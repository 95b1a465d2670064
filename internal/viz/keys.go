package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	PrevCat    key.Binding
	NextCat    key.Binding
	PrevVar    key.Binding
	NextVar    key.Binding
	Play       key.Binding
	Reset      key.Binding
	Yoyo       key.Binding
	ToggleCode key.Binding
	Edit       key.Binding
	Theme      key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	Help       key.Binding
	Dismiss    key.Binding

	// edit mode
	Run    key.Binding
	Revert key.Binding
	Leave  key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	PrevCat:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("h/←", "prev category")),
	NextCat:    key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("l/→", "next category")),
	PrevVar:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/↑", "prev variant")),
	NextVar:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/↓", "next variant")),
	Play:       key.NewBinding(key.WithKeys("enter", " ", "p"), key.WithHelp("enter", "play")),
	Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Yoyo:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yoyo")),
	ToggleCode: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "show/hide code")),
	Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit code")),
	Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	ZoomIn:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
	ZoomOut:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Dismiss:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),

	Run:    key.NewBinding(key.WithKeys("ctrl+s", "ctrl+r"), key.WithHelp("ctrl+s", "run edited code")),
	Revert: key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "revert")),
	Leave:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop editing")),
}

func (k keyMap) browse() []key.Binding {
	return []key.Binding{k.PrevCat, k.NextCat, k.PrevVar, k.NextVar, k.Play, k.Reset, k.Yoyo,
		k.ToggleCode, k.Edit, k.Theme, k.ZoomIn, k.ZoomOut, k.Help, k.Quit}
}

func (k keyMap) editing() []key.Binding {
	return []key.Binding{k.Run, k.Revert, k.Leave}
}
